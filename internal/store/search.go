package store

import (
	"context"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"jobboard-api/internal/common/metrics"
	"jobboard-api/internal/models"
	"jobboard-api/internal/search"
)

type hit[T any] struct {
	ID     string `json:"_id"`
	Source T      `json:"_source"`
}

type searchResponse[T any] struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []hit[T] `json:"hits"`
	} `json:"hits"`
}

// searchIndex runs a rendered search body and returns the decoded sources
// with the exact total.
func searchIndex[T any](ctx context.Context, s *Store, op, index string, body map[string]interface{}) ([]hit[T], int64, error) {
	reader, err := jsonBody(body)
	if err != nil {
		return nil, 0, err
	}
	res, err := s.do(ctx, op, index, esapi.SearchRequest{
		Index: []string{index},
		Body:  reader,
	})
	if err != nil {
		return nil, 0, err
	}

	var out searchResponse[T]
	if err := decode(res, &out); err != nil {
		return nil, 0, err
	}
	return out.Hits.Hits, out.Hits.Total.Value, nil
}

// SearchOffers runs a composed offer search.
func (s *Store) SearchOffers(ctx context.Context, spec search.Spec) ([]models.Offer, int64, error) {
	hits, total, err := searchIndex[models.Offer](ctx, s, "search_offers", s.offers, spec.Body())
	if err != nil {
		return nil, 0, err
	}
	offers := make([]models.Offer, 0, len(hits))
	for _, h := range hits {
		if h.Source.ID == "" {
			h.Source.ID = h.ID
		}
		offers = append(offers, h.Source)
	}
	metrics.SearchResultsReturned.WithLabelValues("offers").Observe(float64(len(offers)))
	return offers, total, nil
}

// SearchUsers runs a composed user search.
func (s *Store) SearchUsers(ctx context.Context, spec search.Spec) ([]models.User, int64, error) {
	hits, total, err := searchIndex[models.User](ctx, s, "search_users", s.users, spec.Body())
	if err != nil {
		return nil, 0, err
	}
	users := make([]models.User, 0, len(hits))
	for _, h := range hits {
		if h.Source.ID == "" {
			h.Source.ID = h.ID
		}
		users = append(users, h.Source)
	}
	metrics.SearchResultsReturned.WithLabelValues("jobseekers").Observe(float64(len(users)))
	return users, total, nil
}
