package search

// Page is a 1-based offset page.
type Page struct {
	Number int
	Limit  int
}

// Offset is the number of records skipped before this page.
func (p Page) Offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Limit
}

// Pages returns ceil(total / limit).
func (p Page) Pages(total int64) int {
	if p.Limit <= 0 || total <= 0 {
		return 0
	}
	limit := int64(p.Limit)
	return int((total + limit - 1) / limit)
}

// Result is the envelope returned by every list endpoint.
type Result[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
}

func NewResult[T any](items []T, total int64, page Page) *Result[T] {
	if items == nil {
		items = []T{}
	}
	return &Result[T]{
		Items: items,
		Total: total,
		Page:  page.Number,
		Pages: page.Pages(total),
	}
}

// Spec is a fully composed search: clauses, sort order, page and the stored
// fields to return (nil means all of them).
type Spec struct {
	Clauses []Clause
	Sort    []SortField
	Page    Page
	Fields  []string
}

// Body renders the Elasticsearch search request body.
func (s Spec) Body() map[string]interface{} {
	body := map[string]interface{}{
		"query":            Query(s.Clauses),
		"from":             s.Page.Offset(),
		"size":             s.Page.Limit,
		"track_total_hits": true,
	}
	if len(s.Sort) > 0 {
		body["sort"] = SortClause(s.Sort)
	}
	if len(s.Fields) > 0 {
		body["_source"] = map[string]interface{}{"includes": s.Fields}
	}
	return body
}
