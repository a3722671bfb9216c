package search

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard-api/internal/common/errors"
	"jobboard-api/internal/common/validation"
)

func newTestParser() *Parser {
	return NewParser(Limits{DefaultLimit: 20, MaxLimit: 100})
}

func fieldNames(t *testing.T, err error) []string {
	t.Helper()
	stdErr := errors.Normalize(err)
	require.Equal(t, errors.ErrCodeValidationFailed, stdErr.Code)
	assert.Equal(t, "Invalid query", stdErr.Message)
	names := make([]string, 0, len(stdErr.Fields))
	for _, f := range stdErr.Fields {
		names = append(names, f.Field)
	}
	return names
}

func TestParser_OffersDefaults(t *testing.T) {
	q, err := newTestParser().Offers(url.Values{})
	require.NoError(t, err)

	require.NotNil(t, q.IsActive)
	assert.True(t, *q.IsActive)
	assert.Equal(t, Page{Number: 1, Limit: 20}, q.Page)

	spec := q.Spec()
	assert.Equal(t, []Clause{Term{Field: OfferFieldIsActive, Value: true}}, spec.Clauses)
	assert.Equal(t, []SortField{
		{Field: OfferFieldPostedAt, Direction: SortDesc},
		{Field: OfferFieldScrapedAt, Direction: SortDesc},
	}, spec.Sort)
}

func TestParser_OffersExplicitInactive(t *testing.T) {
	q, err := newTestParser().Offers(url.Values{"isActive": {"false"}})
	require.NoError(t, err)
	assert.Contains(t, q.Spec().Clauses, Clause(Term{Field: OfferFieldIsActive, Value: false}))
}

func TestParser_OffersFullQuery(t *testing.T) {
	values := url.Values{
		"q":              {"golang"},
		"source":         {"linkedin_api"},
		"workMode":       {"remote"},
		"employmentType": {"fulltime"},
		"city":           {"Kyiv"},
		"country":        {"Ukraine"},
		"company":        {"Acme"},
		"salaryMin":      {"1500.5"},
		"salaryMax":      {"4000"},
		"skills":         {"Go,SQL", "Docker"},
		"postedAfter":    {"2024-03-01"},
		"postedBefore":   {"2024-03-31T23:59:59Z"},
		"sortBy":         {"salary"},
		"sortDir":        {"asc"},
		"page":           {"3"},
		"limit":          {"15"},
		"unknown":        {"ignored"},
	}

	q, err := newTestParser().Offers(values)
	require.NoError(t, err)

	assert.Equal(t, "golang", q.Q)
	assert.Equal(t, []string{"Go", "SQL", "Docker"}, q.Skills)
	require.NotNil(t, q.SalaryMin)
	assert.Equal(t, 1500.5, *q.SalaryMin)
	require.NotNil(t, q.PostedAfter)
	assert.True(t, q.PostedAfter.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, Page{Number: 3, Limit: 15}, q.Page)

	spec := q.Spec()
	// text, source, workMode, employmentType, isActive, city, country, company, salary, skills, postedAt
	assert.Len(t, spec.Clauses, 11)
	assert.IsType(t, TextMatch{}, spec.Clauses[0])
	assert.Equal(t, []SortField{
		{Field: OfferFieldSalaryMin, Direction: SortAsc},
		{Field: OfferFieldScrapedAt, Direction: SortDesc},
	}, spec.Sort)

	body := spec.Body()
	assert.Equal(t, 30, body["from"])
	assert.Equal(t, 15, body["size"])
	assert.Equal(t, true, body["track_total_hits"])
}

func TestParser_OffersValidation(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
		fields []string
	}{
		{"bad enum", url.Values{"workMode": {"onsite"}}, []string{"workMode"}},
		{"bad boolean", url.Values{"isActive": {"maybe"}}, []string{"isActive"}},
		{"non numeric salary", url.Values{"salaryMin": {"lots"}}, []string{"salaryMin"}},
		{"negative salary", url.Values{"salaryMax": {"-1"}}, []string{"salaryMax"}},
		{"bad date", url.Values{"postedAfter": {"yesterday"}}, []string{"postedAfter"}},
		{"page zero", url.Values{"page": {"0"}}, []string{"page"}},
		{"limit too large", url.Values{"limit": {"101"}}, []string{"limit"}},
		{"limit not integer", url.Values{"limit": {"2.5"}}, []string{"limit"}},
		{"bad sort", url.Values{"sortBy": {"random"}}, []string{"sortBy"}},
		{"bad direction", url.Values{"sortDir": {"up"}}, []string{"sortDir"}},
		{
			"all problems reported together",
			url.Values{"isActive": {"x"}, "source": {"ftp"}, "limit": {"0"}},
			[]string{"isActive", "limit", "source"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestParser().Offers(tt.values)
			require.Error(t, err)
			assert.ElementsMatch(t, tt.fields, fieldNames(t, err))
		})
	}
}

func TestParser_BlankValuesAreAbsent(t *testing.T) {
	q, err := newTestParser().Offers(url.Values{"q": {""}, "salaryMin": {"  "}, "skills": {","}, "page": {""}})
	require.NoError(t, err)
	assert.Equal(t, []Clause{Term{Field: OfferFieldIsActive, Value: true}}, q.Spec().Clauses)
	assert.Equal(t, 1, q.Page.Number)
}

// An inverted range is accepted and simply matches nothing.
func TestParser_InvertedRangesAccepted(t *testing.T) {
	q, err := newTestParser().Offers(url.Values{
		"salaryMin":    {"500"},
		"salaryMax":    {"100"},
		"postedAfter":  {"2024-05-01"},
		"postedBefore": {"2024-04-01"},
	})
	require.NoError(t, err)

	posted := time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)
	job := doc{OfferFieldIsActive: true, OfferFieldSalaryMin: 200.0, OfferFieldSalaryMax: 300.0, OfferFieldPostedAt: posted}
	assert.False(t, matches(job, q.Spec().Clauses))
}

func TestOfferSortOrder(t *testing.T) {
	tests := []struct {
		by   OfferSort
		dir  SortDirection
		want []SortField
	}{
		{"", "", []SortField{{OfferFieldPostedAt, SortDesc}, {OfferFieldScrapedAt, SortDesc}}},
		{OfferSortTitle, SortAsc, []SortField{{OfferFieldTitleKeyword, SortAsc}, {OfferFieldScrapedAt, SortDesc}}},
		{OfferSortCompanyName, "", []SortField{{OfferFieldCompanyKeyword, SortDesc}, {OfferFieldScrapedAt, SortDesc}}},
		{OfferSortScrapedAt, SortAsc, []SortField{{OfferFieldScrapedAt, SortAsc}}},
		{OfferSortCreatedAt, SortDesc, []SortField{{OfferFieldCreatedAt, SortDesc}, {OfferFieldScrapedAt, SortDesc}}},
	}
	for _, tt := range tests {
		t.Run(string(tt.by)+"/"+string(tt.dir), func(t *testing.T) {
			assert.Equal(t, tt.want, OfferSortOrder(tt.by, tt.dir))
		})
	}
}

func TestParser_Page(t *testing.T) {
	p := newTestParser()

	page, err := p.Page(url.Values{"page": {"2"}, "limit": {"10"}, "q": {"ignored"}})
	require.NoError(t, err)
	assert.Equal(t, Page{Number: 2, Limit: 10}, page)

	_, err = p.Page(url.Values{"page": {"-1"}})
	require.Error(t, err)
	assert.Equal(t, []string{"page"}, fieldNames(t, err))
}

func TestParser_PageBounds(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
		fields []string
	}{
		{"offset overflows int", url.Values{"page": {"100000000000000000"}, "limit": {"100"}}, []string{"page"}},
		{"max int64", url.Values{"page": {"9223372036854775807"}}, []string{"page"}},
		{"past result window", url.Values{"page": {"101"}, "limit": {"100"}}, []string{"page"}},
		{"past result window with default limit", url.Values{"page": {"501"}}, []string{"page"}},
		{"beyond int64", url.Values{"page": {"99999999999999999999"}}, []string{"page"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestParser().Offers(tt.values)
			require.Error(t, err)
			assert.Equal(t, 400, errors.Normalize(err).HTTPStatus())
			assert.Equal(t, tt.fields, fieldNames(t, err))

			_, err = newTestParser().Jobseekers(tt.values)
			require.Error(t, err)
			assert.Equal(t, tt.fields, fieldNames(t, err))
		})
	}
}

func TestParser_LastPageInWindow(t *testing.T) {
	q, err := newTestParser().Offers(url.Values{"page": {"100"}, "limit": {"100"}})
	require.NoError(t, err)
	assert.Equal(t, 9900, q.Page.Offset())

	body := q.Spec().Body()
	assert.Equal(t, 9900, body["from"])
	assert.Equal(t, 100, body["size"])

	page, err := newTestParser().Page(url.Values{"page": {"500"}})
	require.NoError(t, err)
	assert.Equal(t, Page{Number: 500, Limit: 20}, page)
}

func TestDecodeError(t *testing.T) {
	var out pageParams
	err := validation.Decode(map[string]interface{}{"page": 1e19}, &out)
	require.Error(t, err)

	converted := decodeError(err)
	assert.Equal(t, []string{"page"}, fieldNames(t, converted))
}

func TestNewParser_NormalizesLimits(t *testing.T) {
	p := NewParser(Limits{})
	q, err := p.Offers(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, 20, q.Page.Limit)

	p = NewParser(Limits{DefaultLimit: 50, MaxLimit: 10})
	q, err = p.Offers(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, 10, q.Page.Limit)
}
