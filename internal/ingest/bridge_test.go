package ingest

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/nerrad567/airgrid-core/internal/measurement"
)

func setupTestService(t *testing.T) *measurement.Service {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	schema := `
		CREATE TABLE measurements (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			device_id INTEGER NOT NULL DEFAULT 1,
			type TEXT NOT NULL CHECK (type IN ('temperatura', 'gas')),
			value REAL NOT NULL,
			timestamp TEXT NOT NULL
		) STRICT;
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		t.Fatalf("failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return measurement.NewService(measurement.NewSQLiteRepository(db), nil, nil)
}

// TestHandleReading verifies valid payloads reach the store.
func TestHandleReading(t *testing.T) {
	svc := setupTestService(t)
	bridge := NewBridge(nil, svc, nil)

	err := bridge.handleReading("airgrid/readings/greenhouse-01", []byte(`{"tipo":"temperatura","valor":21.5}`))
	if err != nil {
		t.Fatalf("handleReading() error = %v", err)
	}

	latest, err := svc.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if latest.Type != measurement.TypeTemperature || latest.Value != 21.5 {
		t.Errorf("stored = %+v, want the published reading", latest)
	}
}

// TestHandleReadingNumericString verifies string values coerce like HTTP ingest.
func TestHandleReadingNumericString(t *testing.T) {
	svc := setupTestService(t)
	bridge := NewBridge(nil, svc, nil)

	err := bridge.handleReading("airgrid/readings/greenhouse-01", []byte(`{"tipo":"gas","valor":"412.5"}`))
	if err != nil {
		t.Fatalf("handleReading() error = %v", err)
	}

	latest, err := svc.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if latest.Value != 412.5 {
		t.Errorf("Value = %v, want 412.5", latest.Value)
	}
}

// TestHandleReadingDropsInvalid verifies bad payloads are dropped, not retried.
func TestHandleReadingDropsInvalid(t *testing.T) {
	svc := setupTestService(t)
	bridge := NewBridge(nil, svc, nil)

	payloads := [][]byte{
		[]byte(`not json at all`),
		[]byte(`{"tipo":"humedad","valor":40}`),
		[]byte(`{"valor":21.5}`),
		[]byte(`{"tipo":"gas","valor":"caliente"}`),
		[]byte(`{"tipo":"gas","valor":99999}`),
	}

	for _, payload := range payloads {
		if err := bridge.handleReading("airgrid/readings/greenhouse-01", payload); err != nil {
			t.Errorf("handleReading(%s) error = %v, want nil (drop)", payload, err)
		}
	}

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Total != 0 {
		t.Errorf("Total = %d, want 0 after dropped payloads", stats.Total)
	}
}

// TestDeviceTagFromTopic verifies topic parsing.
func TestDeviceTagFromTopic(t *testing.T) {
	tests := []struct {
		topic string
		want  string
	}{
		{"airgrid/readings/greenhouse-01", "greenhouse-01"},
		{"airgrid/readings/rooftop", "rooftop"},
	}

	for _, tt := range tests {
		if got := deviceTagFromTopic(tt.topic); got != tt.want {
			t.Errorf("deviceTagFromTopic(%q) = %q, want %q", tt.topic, got, tt.want)
		}
	}
}
