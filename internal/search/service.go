package search

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"jobboard-api/internal/common/auth"
	"jobboard-api/internal/common/logger"
	"jobboard-api/internal/models"
)

// OfferSearcher runs a composed offer search and returns one page plus the total.
type OfferSearcher interface {
	SearchOffers(ctx context.Context, spec Spec) ([]models.Offer, int64, error)
}

// JobseekerSearcher runs a composed user search and returns one page plus the total.
type JobseekerSearcher interface {
	SearchUsers(ctx context.Context, spec Spec) ([]models.User, int64, error)
}

// SavedLookup loads the ids a user has bookmarked.
type SavedLookup interface {
	SavedOfferIDs(ctx context.Context, userID string) ([]string, error)
	SavedJobseekerIDs(ctx context.Context, userID string) ([]string, error)
}

// Service runs offer and jobseeker searches. The result page and the
// caller's saved set are read concurrently.
type Service struct {
	offers     OfferSearcher
	jobseekers JobseekerSearcher
	saved      SavedLookup
	timeout    time.Duration
	logger     logger.Logger
}

func NewService(offers OfferSearcher, jobseekers JobseekerSearcher, saved SavedLookup, timeout time.Duration, log logger.Logger) *Service {
	return &Service{
		offers:     offers,
		jobseekers: jobseekers,
		saved:      saved,
		timeout:    timeout,
		logger:     log,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// SearchOffers returns a page of offers. Jobseeker callers get isSaved on
// every item.
func (s *Service) SearchOffers(ctx context.Context, q OfferQuery, viewer *auth.Identity) (*Result[models.Offer], error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	spec := q.Spec()
	g, gctx := errgroup.WithContext(ctx)

	var (
		items []models.Offer
		total int64
		saved SavedSet
	)
	g.Go(func() error {
		var err error
		items, total, err = s.offers.SearchOffers(gctx, spec)
		return err
	})
	if viewer.Is(models.RoleJobseeker) {
		g.Go(func() error {
			ids, err := s.saved.SavedOfferIDs(gctx, viewer.UserID)
			if err != nil {
				return err
			}
			saved = NewSavedSet(ids)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	MarkOffers(items, saved)
	s.logger.Debug("offer search", map[string]interface{}{
		"clauses": len(spec.Clauses),
		"total":   total,
		"page":    spec.Page.Number,
	})
	return NewResult(items, total, spec.Page), nil
}

// SearchJobseekers returns a page of public jobseeker profiles. Employer
// callers get isSaved on every item.
func (s *Service) SearchJobseekers(ctx context.Context, q JobseekerQuery, viewer *auth.Identity) (*Result[models.PublicProfile], error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	spec := q.Spec()
	g, gctx := errgroup.WithContext(ctx)

	var (
		users []models.User
		total int64
		saved SavedSet
	)
	g.Go(func() error {
		var err error
		users, total, err = s.jobseekers.SearchUsers(gctx, spec)
		return err
	})
	if viewer.Is(models.RoleEmployer) {
		g.Go(func() error {
			ids, err := s.saved.SavedJobseekerIDs(gctx, viewer.UserID)
			if err != nil {
				return err
			}
			saved = NewSavedSet(ids)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	profiles := make([]models.PublicProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].Public())
	}
	MarkProfiles(profiles, saved)
	s.logger.Debug("jobseeker search", map[string]interface{}{
		"clauses": len(spec.Clauses),
		"total":   total,
		"page":    spec.Page.Number,
	})
	return NewResult(profiles, total, spec.Page), nil
}
