package store

import (
	"context"
	stderrors "errors"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"jobboard-api/internal/common/errors"
	"jobboard-api/internal/models"
)

// toggleSavedScript adds or removes params.id in a saved array and keeps
// the matching counter equal to the array size.
const toggleSavedScript = `
if (ctx._source[params.field] == null) { ctx._source[params.field] = []; }
def saved = ctx._source[params.field];
if (params.add) {
  if (!saved.contains(params.id)) { saved.add(params.id); } else { ctx.op = 'noop'; }
} else {
  if (!saved.removeIf(v -> v == params.id)) { ctx.op = 'noop'; }
}
ctx._source[params.count] = saved.size();
`

const (
	fieldSavedOffers          = "savedOffers"
	fieldSavedOffersCount     = "savedOffersCount"
	fieldSavedJobseekers      = "savedJobseekers"
	fieldSavedJobseekersCount = "savedJobseekersCount"
)

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	doc, err := getDocument[models.User](ctx, s, "get_user", s.users, id)
	if stderrors.Is(err, errNotFound) {
		return nil, errors.NewResourceNotFoundError("User", id)
	}
	if err != nil {
		return nil, err
	}
	user := doc.Source
	if user.ID == "" {
		user.ID = doc.ID
	}
	return &user, nil
}

// UsersByIDs loads users in the order of ids. Missing ids are skipped.
func (s *Store) UsersByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	docs, err := mgetDocuments[models.User](ctx, s, "mget_users", s.users, ids)
	if err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(docs))
	for _, d := range docs {
		if d.Source.ID == "" {
			d.Source.ID = d.ID
		}
		users = append(users, d.Source)
	}
	return users, nil
}

// PutUser indexes user, replacing any document with the same id.
func (s *Store) PutUser(ctx context.Context, user *models.User) error {
	return s.putDocument(ctx, "put_user", s.users, user.ID, user, "index")
}

// UpdateUser merges profile fields into the stored user and returns the result.
func (s *Store) UpdateUser(ctx context.Context, id string, fields map[string]interface{}) (*models.User, error) {
	err := s.mergeDocument(ctx, "update_user", s.users, id, fields)
	if stderrors.Is(err, errNotFound) {
		return nil, errors.NewResourceNotFoundError("User", id)
	}
	if err != nil {
		return nil, err
	}
	return s.GetUser(ctx, id)
}

// SavedOfferIDs returns the offers a user bookmarked. An unknown user has
// none.
func (s *Store) SavedOfferIDs(ctx context.Context, userID string) ([]string, error) {
	return s.savedIDs(ctx, userID, fieldSavedOffers)
}

// SavedJobseekerIDs returns the jobseekers a user bookmarked.
func (s *Store) SavedJobseekerIDs(ctx context.Context, userID string) ([]string, error) {
	return s.savedIDs(ctx, userID, fieldSavedJobseekers)
}

func (s *Store) savedIDs(ctx context.Context, userID, field string) ([]string, error) {
	doc, err := getDocument[models.User](ctx, s, "get_saved", s.users, userID, field)
	if stderrors.Is(err, errNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	if field == fieldSavedJobseekers {
		return nonNil(doc.Source.SavedJobseekers), nil
	}
	return nonNil(doc.Source.SavedOffers), nil
}

func (s *Store) SaveOffer(ctx context.Context, userID, offerID string) error {
	return s.toggleSaved(ctx, userID, fieldSavedOffers, fieldSavedOffersCount, offerID, true)
}

func (s *Store) UnsaveOffer(ctx context.Context, userID, offerID string) error {
	return s.toggleSaved(ctx, userID, fieldSavedOffers, fieldSavedOffersCount, offerID, false)
}

func (s *Store) SaveJobseeker(ctx context.Context, userID, jobseekerID string) error {
	return s.toggleSaved(ctx, userID, fieldSavedJobseekers, fieldSavedJobseekersCount, jobseekerID, true)
}

func (s *Store) UnsaveJobseeker(ctx context.Context, userID, jobseekerID string) error {
	return s.toggleSaved(ctx, userID, fieldSavedJobseekers, fieldSavedJobseekersCount, jobseekerID, false)
}

func (s *Store) toggleSaved(ctx context.Context, userID, field, countField, id string, add bool) error {
	body, err := jsonBody(map[string]interface{}{
		"script": map[string]interface{}{
			"lang":   "painless",
			"source": toggleSavedScript,
			"params": map[string]interface{}{
				"field": field,
				"count": countField,
				"id":    id,
				"add":   add,
			},
		},
	})
	if err != nil {
		return err
	}
	retries := 3
	res, err := s.do(ctx, "update_saved", s.users, esapi.UpdateRequest{
		Index:           s.users,
		DocumentID:      userID,
		Body:            body,
		Refresh:         s.refresh,
		RetryOnConflict: &retries,
	})
	if stderrors.Is(err, errNotFound) {
		return errors.NewResourceNotFoundError("User", userID)
	}
	if err != nil {
		return err
	}
	res.Body.Close()
	return nil
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
