// Package search composes offer and jobseeker searches from validated query
// parameters. Parameters become a typed list of clauses which is rendered to
// the Elasticsearch query DSL only when the request is sent.
package search

import "time"

// Clause is one constraint of a search. The concrete types below are the only
// implementations.
type Clause interface {
	isClause()
}

// TextMatch is a full-text match of Query against Fields.
type TextMatch struct {
	Query  string
	Fields []string
}

// Term requires Field to equal Value exactly.
type Term struct {
	Field string
	Value interface{}
}

// MatchMode selects how SetMembership combines its values.
type MatchMode int

const (
	MatchAny MatchMode = iota
	MatchAll
)

// SetMembership tests a multi-valued field against Values.
type SetMembership struct {
	Field           string
	Values          []string
	Mode            MatchMode
	CaseInsensitive bool
}

// Regex is a case-insensitive substring match of Substring, taken literally,
// against any of Fields.
type Regex struct {
	Fields    []string
	Substring string
}

// RangeOverlap matches documents whose [MinField, MaxField] range overlaps
// the requested bounds. Min matches when either stored bound is >= Min, Max
// when either stored bound is <= Max; with both set both groups must hold.
type RangeOverlap struct {
	MinField string
	MaxField string
	Min      *float64
	Max      *float64
}

// DateInterval is the closed interval After <= Field <= Before. Either bound
// may be nil.
type DateInterval struct {
	Field  string
	After  *time.Time
	Before *time.Time
}

// Exists requires Field to hold a non-null value.
type Exists struct {
	Field string
}

func (TextMatch) isClause()     {}
func (Term) isClause()          {}
func (SetMembership) isClause() {}
func (Regex) isClause()         {}
func (RangeOverlap) isClause()  {}
func (DateInterval) isClause()  {}
func (Exists) isClause()        {}
