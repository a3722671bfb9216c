package search

import (
	"net/url"
	"time"

	"jobboard-api/internal/common/validation"
	"jobboard-api/internal/models"
)

// User index fields referenced by the composer.
const (
	UserFieldID              = "id"
	UserFieldRole            = "role"
	UserFieldFirstName       = "firstName.keyword"
	UserFieldLastName        = "lastName.keyword"
	UserFieldDescription     = "description.raw"
	UserFieldDateOfBirth     = "dateOfBirth"
	UserFieldOpenToWork      = "jobseekerProfile.openToWork"
	UserFieldStack           = "jobseekerProfile.stack"
	UserFieldEmploymentTypes = "jobseekerProfile.preferences.employmentTypes"
	UserFieldWorkModes       = "jobseekerProfile.preferences.workModes"
	UserFieldCreatedAt       = "createdAt"
	UserFieldUpdatedAt       = "updatedAt"
)

// JobseekerTextFields are searched by substring for the free-text parameter.
var JobseekerTextFields = []string{UserFieldFirstName, UserFieldLastName, UserFieldDescription}

// JobseekerSort is an accepted sortBy value for jobseekers.
type JobseekerSort string

const (
	JobseekerSortNewest      JobseekerSort = "newest"
	JobseekerSortOldest      JobseekerSort = "oldest"
	JobseekerSortFirstName   JobseekerSort = "firstName"
	JobseekerSortLastName    JobseekerSort = "lastName"
	JobseekerSortDateOfBirth JobseekerSort = "dateOfBirth"
	JobseekerSortCreatedAt   JobseekerSort = "createdAt"
	JobseekerSortUpdatedAt   JobseekerSort = "updatedAt"
)

var jobseekerSortFields = map[JobseekerSort]string{
	JobseekerSortNewest:      UserFieldUpdatedAt,
	JobseekerSortOldest:      UserFieldUpdatedAt,
	JobseekerSortFirstName:   UserFieldFirstName,
	JobseekerSortLastName:    UserFieldLastName,
	JobseekerSortDateOfBirth: UserFieldDateOfBirth,
	JobseekerSortCreatedAt:   UserFieldCreatedAt,
	JobseekerSortUpdatedAt:   UserFieldUpdatedAt,
}

// JobseekerQuery is a validated jobseeker search request.
type JobseekerQuery struct {
	Q               string        `json:"q"`
	OpenToWork      *bool         `json:"openToWork"`
	EmploymentTypes []string      `json:"employmentTypes"`
	WorkModes       []string      `json:"workModes"`
	Skills          []string      `json:"skills"`
	CreatedAfter    *time.Time    `json:"createdAfter"`
	CreatedBefore   *time.Time    `json:"createdBefore"`
	UpdatedAfter    *time.Time    `json:"updatedAfter"`
	UpdatedBefore   *time.Time    `json:"updatedBefore"`
	SortBy          JobseekerSort `json:"sortBy"`
	SortDir         SortDirection `json:"sortDir"`

	Page Page `json:"-"`
}

var jobseekerParams = append([]validation.Param{
	{Name: "q", Kind: validation.KindString},
	{Name: "openToWork", Kind: validation.KindBoolean},
	{Name: "employmentTypes", Kind: validation.KindList},
	{Name: "workModes", Kind: validation.KindList},
	{Name: "skills", Kind: validation.KindList},
	{Name: "createdAfter", Kind: validation.KindDate},
	{Name: "createdBefore", Kind: validation.KindDate},
	{Name: "updatedAfter", Kind: validation.KindDate},
	{Name: "updatedBefore", Kind: validation.KindDate},
	{Name: "sortBy", Kind: validation.KindString},
	{Name: "sortDir", Kind: validation.KindString},
}, pagingParams...)

func jobseekerSchema(limits Limits) map[string]interface{} {
	props := pagingProperties(limits)
	props["q"] = stringProperty(200)
	props["openToWork"] = map[string]interface{}{"type": "boolean"}
	props["employmentTypes"] = enumListProperty(models.PreferenceEmploymentTypes...)
	props["workModes"] = enumListProperty(models.PreferenceWorkModes...)
	props["skills"] = stringListProperty(50, 100)
	props["createdAfter"] = dateProperty()
	props["createdBefore"] = dateProperty()
	props["updatedAfter"] = dateProperty()
	props["updatedBefore"] = dateProperty()
	props["sortBy"] = enumProperty(
		string(JobseekerSortNewest), string(JobseekerSortOldest), string(JobseekerSortFirstName),
		string(JobseekerSortLastName), string(JobseekerSortDateOfBirth), string(JobseekerSortCreatedAt),
		string(JobseekerSortUpdatedAt),
	)
	props["sortDir"] = enumProperty(string(SortAsc), string(SortDesc))
	return objectSchema(props)
}

// Jobseekers parses GET /jobseekers parameters. openToWork defaults to true.
func (p *Parser) Jobseekers(values url.Values) (JobseekerQuery, error) {
	var raw struct {
		JobseekerQuery
		pageParams
	}
	if err := p.parse(values, jobseekerParams, p.jobseekers, &raw); err != nil {
		return JobseekerQuery{}, err
	}

	q := raw.JobseekerQuery
	page, err := p.page(raw.pageParams)
	if err != nil {
		return JobseekerQuery{}, err
	}
	q.Page = page
	if q.OpenToWork == nil {
		open := true
		q.OpenToWork = &open
	}
	return q, nil
}

// Spec composes the clauses, sort and page of the query. Results are always
// limited to jobseekers and project the public profile fields.
func (q JobseekerQuery) Spec() Spec {
	b := NewBuilder().
		Term(UserFieldRole, string(models.RoleJobseeker)).
		Substring(q.Q, JobseekerTextFields...)
	if q.OpenToWork != nil {
		b.Term(UserFieldOpenToWork, *q.OpenToWork)
	}
	b.AnyOf(UserFieldEmploymentTypes, q.EmploymentTypes, false).
		AnyOf(UserFieldWorkModes, q.WorkModes, false).
		AllOf(UserFieldStack, q.Skills, true).
		Between(UserFieldCreatedAt, q.CreatedAfter, q.CreatedBefore).
		Between(UserFieldUpdatedAt, q.UpdatedAfter, q.UpdatedBefore)

	return Spec{
		Clauses: b.Clauses(),
		Sort:    JobseekerSortOrder(q.SortBy, q.SortDir),
		Page:    q.Page,
		Fields:  models.PublicFields,
	}
}

// JobseekerSortOrder maps newest/oldest onto updatedAt. Without an explicit
// direction oldest sorts ascending and everything else descending. Ties are
// broken by id so pages stay stable.
func JobseekerSortOrder(by JobseekerSort, dir SortDirection) []SortField {
	field, ok := jobseekerSortFields[by]
	if !ok {
		field = UserFieldUpdatedAt
	}
	switch dir {
	case SortAsc, SortDesc:
	default:
		dir = SortDesc
		if by == JobseekerSortOldest {
			dir = SortAsc
		}
	}
	return []SortField{{Field: field, Direction: dir}, {Field: UserFieldID, Direction: SortAsc}}
}
