package search

// SortDirection is asc or desc.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortField is one sort key of a search.
type SortField struct {
	Field     string
	Direction SortDirection
}

// SortClause renders the sort keys for the search body. Documents missing
// the key sort last in either direction.
func SortClause(fields []SortField) []interface{} {
	out := make([]interface{}, 0, len(fields))
	for _, f := range fields {
		dir := f.Direction
		if dir != SortAsc {
			dir = SortDesc
		}
		out = append(out, map[string]interface{}{
			f.Field: map[string]interface{}{"order": string(dir), "missing": "_last"},
		})
	}
	return out
}
