package search

import (
	"net/url"
	"time"

	"jobboard-api/internal/common/validation"
	"jobboard-api/internal/models"
)

// Offer index fields referenced by the composer.
const (
	OfferFieldTitle          = "title"
	OfferFieldDescription    = "descriptionText"
	OfferFieldCompanyName    = "companyName"
	OfferFieldCompanyKeyword = "companyName.keyword"
	OfferFieldTitleKeyword   = "title.keyword"
	OfferFieldCity           = "location.city"
	OfferFieldCountry        = "location.country"
	OfferFieldSource         = "source"
	OfferFieldWorkMode       = "workMode"
	OfferFieldEmploymentType = "employmentType"
	OfferFieldIsActive       = "isActive"
	OfferFieldSkills         = "skills"
	OfferFieldSalaryMin      = "salary.min"
	OfferFieldSalaryMax      = "salary.max"
	OfferFieldPostedAt       = "postedAt"
	OfferFieldScrapedAt      = "scrapedAt"
	OfferFieldCreatedAt      = "createdAt"
	OfferFieldCreatedBy      = "createdBy"
	OfferFieldID             = "id"
)

// OfferTextFields are searched by the free-text parameter.
var OfferTextFields = []string{OfferFieldTitle, OfferFieldDescription, OfferFieldCompanyName}

// OfferSort is an accepted sortBy value for offers.
type OfferSort string

const (
	OfferSortPostedAt    OfferSort = "postedAt"
	OfferSortScrapedAt   OfferSort = "scrapedAt"
	OfferSortCompanyName OfferSort = "companyName"
	OfferSortTitle       OfferSort = "title"
	OfferSortCreatedAt   OfferSort = "createdAt"
	OfferSortSalary      OfferSort = "salary"
)

var offerSortFields = map[OfferSort]string{
	OfferSortPostedAt:    OfferFieldPostedAt,
	OfferSortScrapedAt:   OfferFieldScrapedAt,
	OfferSortCompanyName: OfferFieldCompanyKeyword,
	OfferSortTitle:       OfferFieldTitleKeyword,
	OfferSortCreatedAt:   OfferFieldCreatedAt,
	OfferSortSalary:      OfferFieldSalaryMin,
}

// OfferQuery is a validated offer search request.
type OfferQuery struct {
	Q              string                `json:"q"`
	Source         models.OfferSource    `json:"source"`
	WorkMode       models.WorkMode       `json:"workMode"`
	EmploymentType models.EmploymentType `json:"employmentType"`
	IsActive       *bool                 `json:"isActive"`
	City           string                `json:"city"`
	Country        string                `json:"country"`
	Company        string                `json:"company"`
	SalaryMin      *float64              `json:"salaryMin"`
	SalaryMax      *float64              `json:"salaryMax"`
	Skills         []string              `json:"skills"`
	PostedAfter    *time.Time            `json:"postedAfter"`
	PostedBefore   *time.Time            `json:"postedBefore"`
	SortBy         OfferSort             `json:"sortBy"`
	SortDir        SortDirection         `json:"sortDir"`

	Page Page `json:"-"`
}

var offerParams = append([]validation.Param{
	{Name: "q", Kind: validation.KindString},
	{Name: "source", Kind: validation.KindString},
	{Name: "workMode", Kind: validation.KindString},
	{Name: "employmentType", Kind: validation.KindString},
	{Name: "isActive", Kind: validation.KindBoolean},
	{Name: "city", Kind: validation.KindString},
	{Name: "country", Kind: validation.KindString},
	{Name: "company", Kind: validation.KindString},
	{Name: "salaryMin", Kind: validation.KindNumber},
	{Name: "salaryMax", Kind: validation.KindNumber},
	{Name: "skills", Kind: validation.KindList},
	{Name: "postedAfter", Kind: validation.KindDate},
	{Name: "postedBefore", Kind: validation.KindDate},
	{Name: "sortBy", Kind: validation.KindString},
	{Name: "sortDir", Kind: validation.KindString},
}, pagingParams...)

func offerSchema(limits Limits) map[string]interface{} {
	props := pagingProperties(limits)
	props["q"] = stringProperty(200)
	props["source"] = enumProperty(models.OfferSources...)
	props["workMode"] = enumProperty(models.WorkModes...)
	props["employmentType"] = enumProperty(models.EmploymentTypes...)
	props["isActive"] = map[string]interface{}{"type": "boolean"}
	props["city"] = stringProperty(100)
	props["country"] = stringProperty(100)
	props["company"] = stringProperty(200)
	props["salaryMin"] = map[string]interface{}{"type": "number", "minimum": 0}
	props["salaryMax"] = map[string]interface{}{"type": "number", "minimum": 0}
	props["skills"] = stringListProperty(50, 100)
	props["postedAfter"] = dateProperty()
	props["postedBefore"] = dateProperty()
	props["sortBy"] = enumProperty(
		string(OfferSortPostedAt), string(OfferSortScrapedAt), string(OfferSortCompanyName),
		string(OfferSortTitle), string(OfferSortCreatedAt), string(OfferSortSalary),
	)
	props["sortDir"] = enumProperty(string(SortAsc), string(SortDesc))
	return objectSchema(props)
}

// Offers parses GET /offers parameters. isActive defaults to true.
func (p *Parser) Offers(values url.Values) (OfferQuery, error) {
	var raw struct {
		OfferQuery
		pageParams
	}
	if err := p.parse(values, offerParams, p.offers, &raw); err != nil {
		return OfferQuery{}, err
	}

	q := raw.OfferQuery
	page, err := p.page(raw.pageParams)
	if err != nil {
		return OfferQuery{}, err
	}
	q.Page = page
	if q.IsActive == nil {
		active := true
		q.IsActive = &active
	}
	return q, nil
}

// Spec composes the clauses, sort and page of the query.
func (q OfferQuery) Spec() Spec {
	b := NewBuilder().
		Text(q.Q, OfferTextFields...).
		Term(OfferFieldSource, string(q.Source)).
		Term(OfferFieldWorkMode, string(q.WorkMode)).
		Term(OfferFieldEmploymentType, string(q.EmploymentType))
	if q.IsActive != nil {
		b.Term(OfferFieldIsActive, *q.IsActive)
	}
	b.Substring(q.City, OfferFieldCity).
		Substring(q.Country, OfferFieldCountry).
		Substring(q.Company, OfferFieldCompanyKeyword).
		Overlap(OfferFieldSalaryMin, OfferFieldSalaryMax, q.SalaryMin, q.SalaryMax).
		AllOf(OfferFieldSkills, q.Skills, true).
		Between(OfferFieldPostedAt, q.PostedAfter, q.PostedBefore)

	return Spec{
		Clauses: b.Clauses(),
		Sort:    OfferSortOrder(q.SortBy, q.SortDir),
		Page:    q.Page,
	}
}

// OfferSortOrder returns the primary key followed by the scrapedAt desc
// tie-break. The default is postedAt desc.
func OfferSortOrder(by OfferSort, dir SortDirection) []SortField {
	field, ok := offerSortFields[by]
	if !ok {
		field = OfferFieldPostedAt
	}
	if dir != SortAsc {
		dir = SortDesc
	}

	order := []SortField{{Field: field, Direction: dir}}
	if field != OfferFieldScrapedAt {
		order = append(order, SortField{Field: OfferFieldScrapedAt, Direction: SortDesc})
	}
	return order
}
