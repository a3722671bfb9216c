// Package api is the HTTP surface of the job board: routing, middleware,
// request decoding and the handlers behind every /api route.
package api

import (
	"context"
	"time"

	"jobboard-api/internal/analytics"
	"jobboard-api/internal/common/auth"
	"jobboard-api/internal/models"
	"jobboard-api/internal/search"
)

// Searcher answers the two composed list endpoints.
type Searcher interface {
	SearchOffers(ctx context.Context, q search.OfferQuery, viewer *auth.Identity) (*search.Result[models.Offer], error)
	SearchJobseekers(ctx context.Context, q search.JobseekerQuery, viewer *auth.Identity) (*search.Result[models.PublicProfile], error)
}

type Reporter interface {
	Report(ctx context.Context, req analytics.Request) (*analytics.Report, error)
}

type OfferStore interface {
	GetOffer(ctx context.Context, id string) (*models.Offer, error)
	CreateOffer(ctx context.Context, offer *models.Offer) error
	UpdateOffer(ctx context.Context, id string, fields map[string]interface{}) (*models.Offer, error)
	DeleteOffer(ctx context.Context, id string) error
	OffersByCreator(ctx context.Context, userID string, page search.Page) ([]models.Offer, int64, error)
	OffersByIDs(ctx context.Context, ids []string) ([]models.Offer, error)
}

type UserStore interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	UsersByIDs(ctx context.Context, ids []string) ([]models.User, error)
	UpdateUser(ctx context.Context, id string, fields map[string]interface{}) (*models.User, error)
	SavedOfferIDs(ctx context.Context, userID string) ([]string, error)
	SavedJobseekerIDs(ctx context.Context, userID string) ([]string, error)
	SaveOffer(ctx context.Context, userID, offerID string) error
	UnsaveOffer(ctx context.Context, userID, offerID string) error
	SaveJobseeker(ctx context.Context, userID, jobseekerID string) error
	UnsaveJobseeker(ctx context.Context, userID, jobseekerID string) error
}

// Revoker stores logged out tokens until they expire.
type Revoker interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
}

// Pinger is a dependency checked by the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}
