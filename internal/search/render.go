package search

import (
	"fmt"
	"strings"
	"time"
)

// Query renders clauses as a single Elasticsearch bool query. Full-text
// clauses go to "must" so they score; everything else goes to "filter". Both
// live in the same bool, so every clause is part of one conjunction.
func Query(clauses []Clause) map[string]interface{} {
	if len(clauses) == 0 {
		return map[string]interface{}{"match_all": map[string]interface{}{}}
	}

	var must, filter []interface{}
	for _, c := range clauses {
		rendered := renderClause(c)
		if _, ok := c.(TextMatch); ok {
			must = append(must, rendered)
			continue
		}
		filter = append(filter, rendered)
	}

	boolQuery := map[string]interface{}{}
	if len(must) > 0 {
		boolQuery["must"] = must
	}
	if len(filter) > 0 {
		boolQuery["filter"] = filter
	}
	return map[string]interface{}{"bool": boolQuery}
}

func renderClause(c Clause) map[string]interface{} {
	switch v := c.(type) {
	case TextMatch:
		return map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":    v.Query,
				"fields":   v.Fields,
				"type":     "best_fields",
				"operator": "or",
			},
		}
	case Term:
		return map[string]interface{}{
			"term": map[string]interface{}{v.Field: map[string]interface{}{"value": v.Value}},
		}
	case SetMembership:
		return renderSet(v)
	case Regex:
		return renderRegex(v)
	case RangeOverlap:
		return renderOverlap(v)
	case DateInterval:
		bounds := map[string]interface{}{}
		if v.After != nil {
			bounds["gte"] = v.After.UTC().Format(time.RFC3339Nano)
		}
		if v.Before != nil {
			bounds["lte"] = v.Before.UTC().Format(time.RFC3339Nano)
		}
		return rangeQuery(v.Field, bounds)
	case Exists:
		return map[string]interface{}{"exists": map[string]interface{}{"field": v.Field}}
	default:
		panic(fmt.Sprintf("search: unknown clause type %T", c))
	}
}

func renderSet(s SetMembership) map[string]interface{} {
	if !s.CaseInsensitive && s.Mode == MatchAny {
		return map[string]interface{}{"terms": map[string]interface{}{s.Field: s.Values}}
	}

	terms := make([]interface{}, 0, len(s.Values))
	for _, value := range s.Values {
		inner := map[string]interface{}{"value": value}
		if s.CaseInsensitive {
			inner["case_insensitive"] = true
		}
		terms = append(terms, map[string]interface{}{"term": map[string]interface{}{s.Field: inner}})
	}

	if s.Mode == MatchAll {
		return map[string]interface{}{"bool": map[string]interface{}{"filter": terms}}
	}
	return anyOf(terms)
}

func renderRegex(r Regex) map[string]interface{} {
	pattern := ".*" + EscapeRegexp(r.Substring) + ".*"
	queries := make([]interface{}, 0, len(r.Fields))
	for _, field := range r.Fields {
		queries = append(queries, map[string]interface{}{
			"regexp": map[string]interface{}{
				field: map[string]interface{}{
					"value":            pattern,
					"case_insensitive": true,
				},
			},
		})
	}
	if len(queries) == 1 {
		return queries[0].(map[string]interface{})
	}
	return anyOf(queries)
}

// renderOverlap builds (max >= Min OR min >= Min) AND (min <= Max OR max <= Max).
func renderOverlap(r RangeOverlap) map[string]interface{} {
	var groups []interface{}
	if r.Min != nil {
		groups = append(groups, anyOf([]interface{}{
			rangeQuery(r.MaxField, map[string]interface{}{"gte": *r.Min}),
			rangeQuery(r.MinField, map[string]interface{}{"gte": *r.Min}),
		}))
	}
	if r.Max != nil {
		groups = append(groups, anyOf([]interface{}{
			rangeQuery(r.MinField, map[string]interface{}{"lte": *r.Max}),
			rangeQuery(r.MaxField, map[string]interface{}{"lte": *r.Max}),
		}))
	}
	if len(groups) == 1 {
		return groups[0].(map[string]interface{})
	}
	return map[string]interface{}{"bool": map[string]interface{}{"filter": groups}}
}

func rangeQuery(field string, bounds map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{"range": map[string]interface{}{field: bounds}}
}

func anyOf(queries []interface{}) map[string]interface{} {
	return map[string]interface{}{
		"bool": map[string]interface{}{
			"should":               queries,
			"minimum_should_match": 1,
		},
	}
}

// regexpReserved are the characters with a meaning in Lucene regular
// expressions, including the optional operators.
const regexpReserved = `.?+*|{}[]()"\#@&<>~^$`

// EscapeRegexp quotes every reserved character so the input matches literally.
func EscapeRegexp(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 2)
	for _, r := range s {
		if strings.ContainsRune(regexpReserved, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
