package api

import (
	"net/http"
	"time"

	"jobboard-api/internal/common/auth"
	"jobboard-api/internal/common/errors"
	"jobboard-api/internal/common/logger"
	"jobboard-api/internal/models"
	"jobboard-api/internal/search"
)

type Deps struct {
	Search   Searcher
	Parser   *search.Parser
	Reporter Reporter
	Offers   OfferStore
	Users    UserStore

	Auth    *auth.Authenticator
	Tokens  *auth.Tokens
	Revoker Revoker

	Errors      *errors.ErrorHandler
	Logger      logger.Logger
	CORSOrigins []string

	// Now defaults to time.Now.
	Now func() time.Time
}

// NewRouter returns the /api handler with the middleware stack applied.
func NewRouter(d Deps) http.Handler {
	if d.Now == nil {
		d.Now = time.Now
	}

	offers := &OffersHandler{
		search: d.Search,
		parser: d.Parser,
		offers: d.Offers,
		users:  d.Users,
		errs:   d.Errors,
		logger: d.Logger,
		now:    d.Now,
	}
	jobseekers := &JobseekersHandler{search: d.Search, parser: d.Parser, users: d.Users, errs: d.Errors}
	saved := &SavedHandler{offers: d.Offers, users: d.Users, errs: d.Errors, logger: d.Logger}
	report := &AnalyticsHandler{reporter: d.Reporter, errs: d.Errors}
	profile := &ProfileHandler{users: d.Users, errs: d.Errors, logger: d.Logger, now: d.Now}
	session := &SessionHandler{tokens: d.Tokens, revoker: d.Revoker, errs: d.Errors, logger: d.Logger}

	a := d.Auth
	public := func(h http.HandlerFunc) http.Handler { return a.Optional(h) }
	signedIn := func(h http.HandlerFunc) http.Handler { return a.Optional(a.Require(h)) }
	as := func(role models.Role, h http.HandlerFunc) http.Handler { return a.Optional(a.RequireRole(role, h)) }

	mux := http.NewServeMux()

	mux.Handle("GET /api/offers", public(offers.List))
	mux.Handle("GET /api/offers/mine", as(models.RoleEmployer, offers.Mine))
	mux.Handle("GET /api/offers/{id}", public(offers.Get))
	mux.Handle("POST /api/offers", as(models.RoleEmployer, offers.Create))
	mux.Handle("PATCH /api/offers/{id}", as(models.RoleEmployer, offers.Update))
	mux.Handle("DELETE /api/offers/{id}", as(models.RoleEmployer, offers.Delete))

	mux.Handle("GET /api/jobseekers", public(jobseekers.List))
	mux.Handle("GET /api/jobseekers/{id}", public(jobseekers.Get))

	mux.Handle("GET /api/analytics", public(report.Report))

	mux.Handle("GET /api/me", signedIn(profile.Me))
	mux.Handle("PATCH /api/me/profile", signedIn(profile.Update))
	mux.Handle("GET /api/me/saved-offers", as(models.RoleJobseeker, saved.ListOffers))
	mux.Handle("POST /api/me/saved-offers/{offerId}", as(models.RoleJobseeker, saved.SaveOffer))
	mux.Handle("DELETE /api/me/saved-offers/{offerId}", as(models.RoleJobseeker, saved.UnsaveOffer))
	mux.Handle("GET /api/me/saved-jobseekers", as(models.RoleEmployer, saved.ListJobseekers))
	mux.Handle("POST /api/me/saved-jobseekers/{userId}", as(models.RoleEmployer, saved.SaveJobseeker))
	mux.Handle("DELETE /api/me/saved-jobseekers/{userId}", as(models.RoleEmployer, saved.UnsaveJobseeker))

	mux.Handle("POST /api/auth/logout", signedIn(session.Logout))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		d.Errors.Write(w, r, errors.NewResourceNotFoundError("Route", r.Method+" "+r.URL.Path))
	})

	return Chain(mux,
		RequestID,
		Recover(d.Errors, d.Logger),
		AccessLog(d.Logger),
		CORS(d.CORSOrigins),
		Metrics,
	)
}
