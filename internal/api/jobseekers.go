package api

import (
	"net/http"

	"jobboard-api/internal/common/auth"
	"jobboard-api/internal/common/errors"
	"jobboard-api/internal/models"
	"jobboard-api/internal/search"
)

type JobseekersHandler struct {
	search Searcher
	parser *search.Parser
	users  UserStore
	errs   *errors.ErrorHandler
}

// List serves GET /api/jobseekers.
func (h *JobseekersHandler) List(w http.ResponseWriter, r *http.Request) {
	q, err := h.parser.Jobseekers(r.URL.Query())
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	result, err := h.search.SearchJobseekers(r.Context(), q, auth.FromContext(r.Context()))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *JobseekersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	user, err := jobseeker(r, h.users, id)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	profiles := []models.PublicProfile{user.Public()}
	if viewer := auth.FromContext(r.Context()); viewer.Is(models.RoleEmployer) {
		ids, err := h.users.SavedJobseekerIDs(r.Context(), viewer.UserID)
		if err != nil {
			h.errs.Write(w, r, err)
			return
		}
		search.MarkProfiles(profiles, search.NewSavedSet(ids))
	}
	writeJSON(w, http.StatusOK, profiles[0])
}

// jobseeker loads a user and hides every account that is not a jobseeker.
func jobseeker(r *http.Request, users UserStore, id string) (*models.User, error) {
	user, err := users.GetUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, errors.ErrCodeResourceNotFound) {
			return nil, errors.NewResourceNotFoundError("Jobseeker", id)
		}
		return nil, err
	}
	if user.Role != models.RoleJobseeker {
		return nil, errors.NewResourceNotFoundError("Jobseeker", id)
	}
	return user, nil
}
