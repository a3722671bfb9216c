package api

import (
	"net/http"

	"jobboard-api/internal/common/auth"
	"jobboard-api/internal/common/errors"
	"jobboard-api/internal/common/logger"
	"jobboard-api/internal/models"
	"jobboard-api/internal/search"
)

// SavedHandler serves the caller's bookmarks: offers for jobseekers,
// jobseekers for employers.
type SavedHandler struct {
	offers OfferStore
	users  UserStore
	errs   *errors.ErrorHandler
	logger logger.Logger
}

type savedList[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

func newSavedList[T any](items []T) savedList[T] {
	if items == nil {
		items = []T{}
	}
	return savedList[T]{Items: items, Total: len(items)}
}

func (h *SavedHandler) ListOffers(w http.ResponseWriter, r *http.Request) {
	viewer := auth.FromContext(r.Context())
	ids, err := h.users.SavedOfferIDs(r.Context(), viewer.UserID)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	offers, err := h.offers.OffersByIDs(r.Context(), ids)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	search.MarkOffers(offers, search.NewSavedSet(ids))
	writeJSON(w, http.StatusOK, newSavedList(offers))
}

func (h *SavedHandler) SaveOffer(w http.ResponseWriter, r *http.Request) {
	offerID := r.PathValue("offerId")
	if _, err := h.offers.GetOffer(r.Context(), offerID); err != nil {
		h.errs.Write(w, r, err)
		return
	}
	viewer := auth.FromContext(r.Context())
	if err := h.users.SaveOffer(r.Context(), viewer.UserID, offerID); err != nil {
		h.errs.Write(w, r, err)
		return
	}
	h.logger.Debug("offer saved", map[string]interface{}{"userId": viewer.UserID, "offerId": offerID})
	w.WriteHeader(http.StatusNoContent)
}

func (h *SavedHandler) UnsaveOffer(w http.ResponseWriter, r *http.Request) {
	viewer := auth.FromContext(r.Context())
	if err := h.users.UnsaveOffer(r.Context(), viewer.UserID, r.PathValue("offerId")); err != nil {
		h.errs.Write(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SavedHandler) ListJobseekers(w http.ResponseWriter, r *http.Request) {
	viewer := auth.FromContext(r.Context())
	ids, err := h.users.SavedJobseekerIDs(r.Context(), viewer.UserID)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	users, err := h.users.UsersByIDs(r.Context(), ids)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	profiles := make([]models.PublicProfile, 0, len(users))
	for i := range users {
		if users[i].Role == models.RoleJobseeker {
			profiles = append(profiles, users[i].Public())
		}
	}
	search.MarkProfiles(profiles, search.NewSavedSet(ids))
	writeJSON(w, http.StatusOK, newSavedList(profiles))
}

func (h *SavedHandler) SaveJobseeker(w http.ResponseWriter, r *http.Request) {
	jobseekerID := r.PathValue("userId")
	if _, err := jobseeker(r, h.users, jobseekerID); err != nil {
		h.errs.Write(w, r, err)
		return
	}
	viewer := auth.FromContext(r.Context())
	if err := h.users.SaveJobseeker(r.Context(), viewer.UserID, jobseekerID); err != nil {
		h.errs.Write(w, r, err)
		return
	}
	h.logger.Debug("jobseeker saved", map[string]interface{}{"userId": viewer.UserID, "jobseekerId": jobseekerID})
	w.WriteHeader(http.StatusNoContent)
}

func (h *SavedHandler) UnsaveJobseeker(w http.ResponseWriter, r *http.Request) {
	viewer := auth.FromContext(r.Context())
	if err := h.users.UnsaveJobseeker(r.Context(), viewer.UserID, r.PathValue("userId")); err != nil {
		h.errs.Write(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
