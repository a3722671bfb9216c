package search

import (
	"strings"
	"time"
)

// Builder accumulates clauses. Every method ignores empty input, so an absent
// parameter never adds a constraint.
type Builder struct {
	clauses []Clause
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) add(c Clause) *Builder {
	b.clauses = append(b.clauses, c)
	return b
}

// Text adds a full-text match over fields.
func (b *Builder) Text(query string, fields ...string) *Builder {
	query = strings.TrimSpace(query)
	if query == "" || len(fields) == 0 {
		return b
	}
	return b.add(TextMatch{Query: query, Fields: fields})
}

// Term adds an exact equality. Empty strings and nil are skipped.
func (b *Builder) Term(field string, value interface{}) *Builder {
	switch v := value.(type) {
	case nil:
		return b
	case string:
		if v == "" {
			return b
		}
	}
	return b.add(Term{Field: field, Value: value})
}

// Substring adds a case-insensitive literal substring match over any of fields.
func (b *Builder) Substring(value string, fields ...string) *Builder {
	value = strings.TrimSpace(value)
	if value == "" || len(fields) == 0 {
		return b
	}
	return b.add(Regex{Fields: fields, Substring: value})
}

// AnyOf matches when field holds at least one of values.
func (b *Builder) AnyOf(field string, values []string, caseInsensitive bool) *Builder {
	return b.set(field, values, MatchAny, caseInsensitive)
}

// AllOf matches when field holds every one of values.
func (b *Builder) AllOf(field string, values []string, caseInsensitive bool) *Builder {
	return b.set(field, values, MatchAll, caseInsensitive)
}

func (b *Builder) set(field string, values []string, mode MatchMode, caseInsensitive bool) *Builder {
	cleaned := cleanValues(values)
	if len(cleaned) == 0 {
		return b
	}
	return b.add(SetMembership{Field: field, Values: cleaned, Mode: mode, CaseInsensitive: caseInsensitive})
}

// Overlap adds a range-overlap test between the stored [minField, maxField]
// range and the requested bounds.
func (b *Builder) Overlap(minField, maxField string, min, max *float64) *Builder {
	if min == nil && max == nil {
		return b
	}
	return b.add(RangeOverlap{MinField: minField, MaxField: maxField, Min: min, Max: max})
}

// Between adds a closed date interval on field.
func (b *Builder) Between(field string, after, before *time.Time) *Builder {
	if after == nil && before == nil {
		return b
	}
	return b.add(DateInterval{Field: field, After: after, Before: before})
}

// Exists requires field to be present.
func (b *Builder) Exists(field string) *Builder {
	if field == "" {
		return b
	}
	return b.add(Exists{Field: field})
}

// Clauses returns a copy of the accumulated clauses.
func (b *Builder) Clauses() []Clause {
	out := make([]Clause, len(b.clauses))
	copy(out, b.clauses)
	return out
}

// cleanValues trims, drops blanks and removes case-insensitive duplicates
// while keeping the first spelling.
func cleanValues(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
