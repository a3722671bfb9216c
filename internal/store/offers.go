package store

import (
	"context"
	stderrors "errors"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"jobboard-api/internal/common/errors"
	"jobboard-api/internal/models"
	"jobboard-api/internal/search"
)

type getResponse[T any] struct {
	ID     string `json:"_id"`
	Found  bool   `json:"found"`
	Source T      `json:"_source"`
}

func getDocument[T any](ctx context.Context, s *Store, op, index, id string, includes ...string) (*getResponse[T], error) {
	res, err := s.do(ctx, op, index, esapi.GetRequest{
		Index:          index,
		DocumentID:     id,
		SourceIncludes: includes,
	})
	if err != nil {
		return nil, err
	}
	var out getResponse[T]
	if err := decode(res, &out); err != nil {
		return nil, err
	}
	if !out.Found {
		return nil, errNotFound
	}
	return &out, nil
}

type mgetResponse[T any] struct {
	Docs []getResponse[T] `json:"docs"`
}

func (s *Store) GetOffer(ctx context.Context, id string) (*models.Offer, error) {
	doc, err := getDocument[models.Offer](ctx, s, "get_offer", s.offers, id)
	if stderrors.Is(err, errNotFound) {
		return nil, errors.NewResourceNotFoundError("Offer", id)
	}
	if err != nil {
		return nil, err
	}
	offer := doc.Source
	if offer.ID == "" {
		offer.ID = doc.ID
	}
	return &offer, nil
}

// CreateOffer indexes a new offer under offer.ID. An existing id is a
// query failure, never an overwrite.
func (s *Store) CreateOffer(ctx context.Context, offer *models.Offer) error {
	return s.putDocument(ctx, "create_offer", s.offers, offer.ID, offer, "create")
}

// PutOffer indexes offer, replacing any document with the same id.
func (s *Store) PutOffer(ctx context.Context, offer *models.Offer) error {
	return s.putDocument(ctx, "put_offer", s.offers, offer.ID, offer, "index")
}

func (s *Store) putDocument(ctx context.Context, op, index, id string, doc interface{}, opType string) error {
	body, err := jsonBody(doc)
	if err != nil {
		return err
	}
	res, err := s.do(ctx, op, index, esapi.IndexRequest{
		Index:      index,
		DocumentID: id,
		Body:       body,
		OpType:     opType,
		Refresh:    s.refresh,
	})
	if err != nil {
		return err
	}
	res.Body.Close()
	return nil
}

// UpdateOffer merges fields into the stored offer and returns the result.
func (s *Store) UpdateOffer(ctx context.Context, id string, fields map[string]interface{}) (*models.Offer, error) {
	err := s.mergeDocument(ctx, "update_offer", s.offers, id, fields)
	if stderrors.Is(err, errNotFound) {
		return nil, errors.NewResourceNotFoundError("Offer", id)
	}
	if err != nil {
		return nil, err
	}
	return s.GetOffer(ctx, id)
}

// mergeDocument applies a partial update. Objects in fields are merged into
// the stored ones, arrays and scalars replace them.
func (s *Store) mergeDocument(ctx context.Context, op, index, id string, fields map[string]interface{}) error {
	body, err := jsonBody(map[string]interface{}{"doc": fields})
	if err != nil {
		return err
	}
	res, err := s.do(ctx, op, index, esapi.UpdateRequest{
		Index:      index,
		DocumentID: id,
		Body:       body,
		Refresh:    s.refresh,
	})
	if err != nil {
		return err
	}
	res.Body.Close()
	return nil
}

func (s *Store) DeleteOffer(ctx context.Context, id string) error {
	res, err := s.do(ctx, "delete_offer", s.offers, esapi.DeleteRequest{
		Index:      s.offers,
		DocumentID: id,
		Refresh:    s.refresh,
	})
	if stderrors.Is(err, errNotFound) {
		return errors.NewResourceNotFoundError("Offer", id)
	}
	if err != nil {
		return err
	}
	res.Body.Close()
	return nil
}

// OffersByCreator pages through the offers a user created, newest first.
func (s *Store) OffersByCreator(ctx context.Context, userID string, page search.Page) ([]models.Offer, int64, error) {
	return s.SearchOffers(ctx, search.Spec{
		Clauses: search.NewBuilder().Term(search.OfferFieldCreatedBy, userID).Clauses(),
		Sort:    []search.SortField{{Field: search.OfferFieldCreatedAt, Direction: search.SortDesc}},
		Page:    page,
	})
}

// OffersByIDs loads offers in the order of ids. Missing ids are skipped.
func (s *Store) OffersByIDs(ctx context.Context, ids []string) ([]models.Offer, error) {
	docs, err := mgetDocuments[models.Offer](ctx, s, "mget_offers", s.offers, ids)
	if err != nil {
		return nil, err
	}
	offers := make([]models.Offer, 0, len(docs))
	for _, d := range docs {
		if d.Source.ID == "" {
			d.Source.ID = d.ID
		}
		offers = append(offers, d.Source)
	}
	return offers, nil
}

// mgetDocuments loads the found documents among ids, in request order.
func mgetDocuments[T any](ctx context.Context, s *Store, op, index string, ids []string) ([]getResponse[T], error) {
	if len(ids) == 0 {
		return nil, nil
	}
	body, err := jsonBody(map[string]interface{}{"ids": ids})
	if err != nil {
		return nil, err
	}
	res, err := s.do(ctx, op, index, esapi.MgetRequest{Index: index, Body: body})
	if err != nil {
		return nil, err
	}

	var out mgetResponse[T]
	if err := decode(res, &out); err != nil {
		return nil, err
	}
	found := out.Docs[:0]
	for _, d := range out.Docs {
		if d.Found {
			found = append(found, d)
		}
	}
	return found, nil
}
