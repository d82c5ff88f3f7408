package measurement

import (
	"reflect"
	"testing"
)

// TestBuildFilter verifies predicate assembly from optional criteria.
func TestBuildFilter(t *testing.T) {
	tests := []struct {
		name      string
		criteria  Criteria
		wantWhere string
		wantLimit string
		wantArgs  []any
	}{
		{
			name:      "empty criteria",
			criteria:  Criteria{},
			wantWhere: "",
			wantLimit: "",
			wantArgs:  nil,
		},
		{
			name:      "device only",
			criteria:  Criteria{DeviceID: 1},
			wantWhere: "device_id = ?",
			wantArgs:  []any{int64(1)},
		},
		{
			name:      "type only",
			criteria:  Criteria{Type: TypeGas},
			wantWhere: "type = ?",
			wantArgs:  []any{TypeGas},
		},
		{
			name:      "unknown type is ignored",
			criteria:  Criteria{Type: "humedad"},
			wantWhere: "",
			wantArgs:  nil,
		},
		{
			name:      "date range",
			criteria:  Criteria{DateFrom: "2026-08-01T00:00:00Z", DateTo: "2026-08-31T23:59:59Z"},
			wantWhere: "timestamp >= ? AND timestamp <= ?",
			wantArgs:  []any{"2026-08-01T00:00:00Z", "2026-08-31T23:59:59Z"},
		},
		{
			name:      "limit only binds one parameter",
			criteria:  Criteria{Limit: 50},
			wantWhere: "",
			wantLimit: "LIMIT ?",
			wantArgs:  []any{50},
		},
		{
			name: "all criteria combined",
			criteria: Criteria{
				DeviceID: 1,
				Type:     TypeTemperature,
				DateFrom: "2026-08-01T00:00:00Z",
				DateTo:   "2026-08-31T23:59:59Z",
				Limit:    25,
			},
			wantWhere: "device_id = ? AND type = ? AND timestamp >= ? AND timestamp <= ?",
			wantLimit: "LIMIT ?",
			wantArgs:  []any{int64(1), TypeTemperature, "2026-08-01T00:00:00Z", "2026-08-31T23:59:59Z", 25},
		},
		{
			name:      "limit at bounds",
			criteria:  Criteria{Limit: 1000},
			wantLimit: "LIMIT ?",
			wantArgs:  []any{1000},
		},
		{
			name:      "limit above bounds is omitted",
			criteria:  Criteria{Limit: 1001},
			wantLimit: "",
			wantArgs:  nil,
		},
		{
			name:      "negative limit is omitted",
			criteria:  Criteria{Limit: -5},
			wantLimit: "",
			wantArgs:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fq := BuildFilter(tt.criteria)

			if fq.Where != tt.wantWhere {
				t.Errorf("Where = %q, want %q", fq.Where, tt.wantWhere)
			}
			if fq.Limit != tt.wantLimit {
				t.Errorf("Limit = %q, want %q", fq.Limit, tt.wantLimit)
			}
			if !reflect.DeepEqual(fq.Args, tt.wantArgs) {
				t.Errorf("Args = %#v, want %#v", fq.Args, tt.wantArgs)
			}
		})
	}
}

// TestBuildFilterParameterisation verifies values never leak into SQL text.
func TestBuildFilterParameterisation(t *testing.T) {
	fq := BuildFilter(Criteria{
		DeviceID: 1,
		DateFrom: "2026-08-01'; DROP TABLE measurements; --",
		Limit:    10,
	})

	if fq.Where != "device_id = ? AND timestamp >= ?" {
		t.Errorf("Where = %q, want placeholders only", fq.Where)
	}
	if fq.Limit != "LIMIT ?" {
		t.Errorf("Limit = %q, want %q", fq.Limit, "LIMIT ?")
	}
	if len(fq.Args) != 3 {
		t.Fatalf("Args length = %d, want 3", len(fq.Args))
	}
	if fq.Args[1] != "2026-08-01'; DROP TABLE measurements; --" {
		t.Errorf("Args[1] = %v, want the raw value bound as a parameter", fq.Args[1])
	}
	if fq.Args[2] != 10 {
		t.Errorf("Args[2] = %v, want the limit bound as a parameter", fq.Args[2])
	}
}
