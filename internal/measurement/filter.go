package measurement

import "strings"

// FilterQuery is a parameterised query fragment built from Criteria.
//
// Where is the WHERE clause body (empty when no criteria apply) and
// Limit is a "LIMIT ?" fragment (empty when no limit clause should be
// emitted). Args holds the bound values in placeholder emission order,
// the limit value last. Caller-supplied values are never interpolated
// into SQL text; they only ever cross the store boundary as bound
// parameters.
type FilterQuery struct {
	Where string
	Limit string
	Args  []any
}

// BuildFilter translates optional filter criteria into a parameterised
// predicate. Conditions are combined with AND; result ordering is
// always newest-first by timestamp and is not caller-configurable.
//
// Lenient-filter policy: an unknown reading type or an out-of-range
// limit is silently dropped rather than rejected. Ingestion validation
// stays strict; filters only narrow what an otherwise-valid query
// returns.
func BuildFilter(c Criteria) FilterQuery {
	var conditions []string
	var args []any

	if c.DeviceID > 0 {
		conditions = append(conditions, "device_id = ?")
		args = append(args, c.DeviceID)
	}

	if c.Type != "" {
		if c.Type == TypeTemperature || c.Type == TypeGas {
			conditions = append(conditions, "type = ?")
			args = append(args, c.Type)
		}
		// Unknown types impose no constraint.
	}

	if c.DateFrom != "" {
		conditions = append(conditions, "timestamp >= ?")
		args = append(args, c.DateFrom)
	}

	if c.DateTo != "" {
		conditions = append(conditions, "timestamp <= ?")
		args = append(args, c.DateTo)
	}

	limit := ""
	if c.Limit >= 1 && c.Limit <= MaxQueryLimit {
		limit = "LIMIT ?"
		args = append(args, c.Limit)
	}

	return FilterQuery{
		Where: strings.Join(conditions, " AND "),
		Limit: limit,
		Args:  args,
	}
}
