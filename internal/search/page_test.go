package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jobboard-api/internal/models"
)

func TestPage_OffsetAndPages(t *testing.T) {
	tests := []struct {
		name   string
		page   Page
		total  int64
		offset int
		pages  int
	}{
		{"second page of three", Page{Number: 2, Limit: 10}, 25, 10, 3},
		{"first page", Page{Number: 1, Limit: 20}, 20, 0, 1},
		{"exact multiple", Page{Number: 3, Limit: 5}, 15, 10, 3},
		{"no results", Page{Number: 1, Limit: 20}, 0, 0, 0},
		{"past the end", Page{Number: 9, Limit: 10}, 25, 80, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.offset, tt.page.Offset())
			assert.Equal(t, tt.pages, tt.page.Pages(tt.total))
		})
	}
}

func TestNewResult(t *testing.T) {
	r := NewResult[string](nil, 25, Page{Number: 2, Limit: 10})
	assert.Equal(t, []string{}, r.Items)
	assert.Equal(t, int64(25), r.Total)
	assert.Equal(t, 2, r.Page)
	assert.Equal(t, 3, r.Pages)

	assert.JSONEq(t, `{"items":[],"total":25,"page":2,"pages":3}`, toJSON(t, r))
}

func TestSpec_Body(t *testing.T) {
	spec := Spec{
		Clauses: []Clause{Term{Field: "role", Value: "jobseeker"}},
		Sort:    []SortField{{Field: "updatedAt", Direction: SortDesc}},
		Page:    Page{Number: 2, Limit: 10},
		Fields:  []string{"id", "firstName"},
	}
	assert.JSONEq(t, `{
		"query":{"bool":{"filter":[{"term":{"role":{"value":"jobseeker"}}}]}},
		"from":10,
		"size":10,
		"track_total_hits":true,
		"sort":[{"updatedAt":{"order":"desc","missing":"_last"}}],
		"_source":{"includes":["id","firstName"]}
	}`, toJSON(t, spec.Body()))

	bare := Spec{Page: Page{Number: 1, Limit: 20}}.Body()
	assert.NotContains(t, bare, "sort")
	assert.NotContains(t, bare, "_source")
}

func TestSavedSet(t *testing.T) {
	set := NewSavedSet([]string{"a", "b"})
	assert.True(t, set.Contains("a"))
	assert.False(t, set.Contains("c"))

	var empty SavedSet
	assert.False(t, empty.Contains("a"))
}

func TestMarkOffers(t *testing.T) {
	offers := []models.Offer{{ID: "o1"}, {ID: "o2"}}
	MarkOffers(offers, nil)
	assert.Nil(t, offers[0].IsSaved)

	MarkOffers(offers, NewSavedSet([]string{"o2"}))
	assert.False(t, *offers[0].IsSaved)
	assert.True(t, *offers[1].IsSaved)

	MarkOffers(offers, NewSavedSet(nil))
	assert.False(t, *offers[1].IsSaved, "an empty saved list still marks every item")
}
