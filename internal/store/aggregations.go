package store

import (
	"context"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"jobboard-api/internal/analytics"
	"jobboard-api/internal/common/errors"
	"jobboard-api/internal/models"
	"jobboard-api/internal/search"
)

// maxGroups caps a breakdown that asks for every value.
const maxGroups = 1000

var _ analytics.Source = (*Store)(nil)

func (s *Store) index(c analytics.Collection) (string, error) {
	switch c {
	case analytics.Offers:
		return s.offers, nil
	case analytics.Users:
		return s.users, nil
	}
	return "", errors.NewInternalError(fmt.Errorf("unknown collection %q", c))
}

func (s *Store) Count(ctx context.Context, c analytics.Collection, clauses []search.Clause) (int64, error) {
	index, err := s.index(c)
	if err != nil {
		return 0, err
	}
	body, err := jsonBody(map[string]interface{}{"query": search.Query(clauses)})
	if err != nil {
		return 0, err
	}
	res, err := s.do(ctx, "count", index, esapi.CountRequest{Index: []string{index}, Body: body})
	if err != nil {
		return 0, err
	}
	var out struct {
		Count int64 `json:"count"`
	}
	if err := decode(res, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

type termsBucket struct {
	Key      interface{} `json:"key"`
	DocCount int64       `json:"doc_count"`
}

func (s *Store) Group(ctx context.Context, c analytics.Collection, g analytics.Grouping) ([]analytics.GroupCount, error) {
	index, err := s.index(c)
	if err != nil {
		return nil, err
	}

	size := g.Limit
	if size <= 0 || size > maxGroups {
		size = maxGroups
	}
	terms := map[string]interface{}{
		"field": g.Field,
		"size":  size,
		"order": []interface{}{
			map[string]interface{}{"_count": "desc"},
			map[string]interface{}{"_key": "asc"},
		},
	}
	if g.Missing != "" {
		terms["missing"] = g.Missing
	}
	if len(g.Exclude) > 0 {
		terms["exclude"] = g.Exclude
	}

	var out struct {
		Aggregations struct {
			Groups struct {
				Buckets []termsBucket `json:"buckets"`
			} `json:"groups"`
		} `json:"aggregations"`
	}
	if err := s.aggregate(ctx, "group", index, nil, map[string]interface{}{"groups": map[string]interface{}{"terms": terms}}, &out); err != nil {
		return nil, err
	}

	groups := make([]analytics.GroupCount, 0, len(out.Aggregations.Groups.Buckets))
	for _, b := range out.Aggregations.Groups.Buckets {
		groups = append(groups, analytics.GroupCount{Value: fmt.Sprint(b.Key), Count: b.DocCount})
	}
	return groups, nil
}

// aggregate runs a size-0 search with aggs and decodes the response into out.
func (s *Store) aggregate(ctx context.Context, op, index string, clauses []search.Clause, aggs map[string]interface{}, out interface{}) error {
	body, err := jsonBody(map[string]interface{}{
		"size":  0,
		"query": search.Query(clauses),
		"aggs":  aggs,
	})
	if err != nil {
		return err
	}
	res, err := s.do(ctx, op, index, esapi.SearchRequest{Index: []string{index}, Body: body})
	if err != nil {
		return err
	}
	return decode(res, out)
}

// histogram is a date_histogram over field with one bucket per non-empty
// period. Week buckets are shifted from Monday to Sunday.
func histogram(field string, g analytics.Granularity, subAggs map[string]interface{}) map[string]interface{} {
	h := map[string]interface{}{
		"field":             field,
		"calendar_interval": calendarInterval(g),
		"min_doc_count":     1,
		"time_zone":         "UTC",
	}
	if g == analytics.ByWeek {
		h["offset"] = "-1d"
	}
	agg := map[string]interface{}{"date_histogram": h}
	if len(subAggs) > 0 {
		agg["aggs"] = subAggs
	}
	return map[string]interface{}{"buckets": agg}
}

func calendarInterval(g analytics.Granularity) string {
	switch g {
	case analytics.ByWeek:
		return "week"
	case analytics.ByMonth:
		return "month"
	case analytics.ByYear:
		return "year"
	default:
		return "day"
	}
}

func within(field string, w analytics.Window) search.Clause {
	return search.DateInterval{Field: field, After: &w.Start, Before: &w.End}
}

type docCount struct {
	DocCount int64 `json:"doc_count"`
}

type sumValue struct {
	Value float64 `json:"value"`
}

func bucketStart(key int64) time.Time {
	return time.UnixMilli(key).UTC()
}

func (s *Store) JobsHistogram(ctx context.Context, w analytics.Window, g analytics.Granularity) ([]analytics.JobBucket, error) {
	var out struct {
		Aggregations struct {
			Buckets struct {
				Buckets []struct {
					Key      int64    `json:"key"`
					DocCount int64    `json:"doc_count"`
					Active   docCount `json:"active"`
				} `json:"buckets"`
			} `json:"buckets"`
		} `json:"aggregations"`
	}
	aggs := histogram(search.OfferFieldPostedAt, g, map[string]interface{}{
		"active": map[string]interface{}{
			"filter": map[string]interface{}{"term": map[string]interface{}{search.OfferFieldIsActive: true}},
		},
	})
	if err := s.aggregate(ctx, "jobs_histogram", s.offers, []search.Clause{within(search.OfferFieldPostedAt, w)}, aggs, &out); err != nil {
		return nil, err
	}

	buckets := make([]analytics.JobBucket, 0, len(out.Aggregations.Buckets.Buckets))
	for _, b := range out.Aggregations.Buckets.Buckets {
		buckets = append(buckets, analytics.JobBucket{Start: bucketStart(b.Key), Count: b.DocCount, Active: b.Active.DocCount})
	}
	return buckets, nil
}

func (s *Store) SalaryHistogram(ctx context.Context, w analytics.Window, g analytics.Granularity) ([]analytics.SalaryBucket, error) {
	var out struct {
		Aggregations struct {
			Buckets struct {
				Buckets []struct {
					Key      int64    `json:"key"`
					DocCount int64    `json:"doc_count"`
					SumMin   sumValue `json:"sum_min"`
					SumMax   sumValue `json:"sum_max"`
				} `json:"buckets"`
			} `json:"buckets"`
		} `json:"aggregations"`
	}
	aggs := histogram(search.OfferFieldPostedAt, g, map[string]interface{}{
		"sum_min": map[string]interface{}{"sum": map[string]interface{}{"field": search.OfferFieldSalaryMin}},
		"sum_max": map[string]interface{}{"sum": map[string]interface{}{"field": search.OfferFieldSalaryMax}},
	})
	clauses := []search.Clause{
		within(search.OfferFieldPostedAt, w),
		search.Exists{Field: search.OfferFieldSalaryMin},
		search.Exists{Field: search.OfferFieldSalaryMax},
	}
	if err := s.aggregate(ctx, "salary_histogram", s.offers, clauses, aggs, &out); err != nil {
		return nil, err
	}

	buckets := make([]analytics.SalaryBucket, 0, len(out.Aggregations.Buckets.Buckets))
	for _, b := range out.Aggregations.Buckets.Buckets {
		buckets = append(buckets, analytics.SalaryBucket{
			Start:  bucketStart(b.Key),
			Count:  b.DocCount,
			SumMin: b.SumMin.Value,
			SumMax: b.SumMax.Value,
		})
	}
	return buckets, nil
}

func (s *Store) UsersHistogram(ctx context.Context, w analytics.Window, g analytics.Granularity) ([]analytics.UserBucket, error) {
	var out struct {
		Aggregations struct {
			Buckets struct {
				Buckets []struct {
					Key   int64 `json:"key"`
					Roles struct {
						Buckets []termsBucket `json:"buckets"`
					} `json:"roles"`
				} `json:"buckets"`
			} `json:"buckets"`
		} `json:"aggregations"`
	}
	aggs := histogram(search.UserFieldCreatedAt, g, map[string]interface{}{
		"roles": map[string]interface{}{"terms": map[string]interface{}{"field": search.UserFieldRole, "size": 10}},
	})
	if err := s.aggregate(ctx, "users_histogram", s.users, []search.Clause{within(search.UserFieldCreatedAt, w)}, aggs, &out); err != nil {
		return nil, err
	}

	buckets := make([]analytics.UserBucket, 0, len(out.Aggregations.Buckets.Buckets))
	for _, b := range out.Aggregations.Buckets.Buckets {
		byRole := make(map[models.Role]int64, len(b.Roles.Buckets))
		for _, r := range b.Roles.Buckets {
			byRole[models.Role(fmt.Sprint(r.Key))] = r.DocCount
		}
		buckets = append(buckets, analytics.UserBucket{Start: bucketStart(b.Key), ByRole: byRole})
	}
	return buckets, nil
}

func (s *Store) Engagement(ctx context.Context) (analytics.EngagementTotals, error) {
	var out struct {
		Aggregations struct {
			SavedOffers         sumValue `json:"saved_offers"`
			SavedJobseekers     sumValue `json:"saved_jobseekers"`
			JobseekersWithSaves docCount `json:"jobseekers_with_saves"`
		} `json:"aggregations"`
	}
	aggs := map[string]interface{}{
		"saved_offers":     map[string]interface{}{"sum": map[string]interface{}{"field": fieldSavedOffersCount}},
		"saved_jobseekers": map[string]interface{}{"sum": map[string]interface{}{"field": fieldSavedJobseekersCount}},
		"jobseekers_with_saves": map[string]interface{}{
			"filter": map[string]interface{}{
				"bool": map[string]interface{}{
					"filter": []interface{}{
						map[string]interface{}{"term": map[string]interface{}{search.UserFieldRole: string(models.RoleJobseeker)}},
						map[string]interface{}{"range": map[string]interface{}{fieldSavedOffersCount: map[string]interface{}{"gt": 0}}},
					},
				},
			},
		},
	}
	if err := s.aggregate(ctx, "engagement", s.users, nil, aggs, &out); err != nil {
		return analytics.EngagementTotals{}, err
	}
	return analytics.EngagementTotals{
		SavedOffers:         int64(out.Aggregations.SavedOffers.Value),
		SavedJobseekers:     int64(out.Aggregations.SavedJobseekers.Value),
		JobseekersWithSaves: out.Aggregations.JobseekersWithSaves.DocCount,
	}, nil
}
