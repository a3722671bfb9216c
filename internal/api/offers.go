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

type OffersHandler struct {
	search Searcher
	parser *search.Parser
	offers OfferStore
	users  UserStore
	errs   *errors.ErrorHandler
	logger logger.Logger
	now    func() time.Time
}

// List serves GET /api/offers.
func (h *OffersHandler) List(w http.ResponseWriter, r *http.Request) {
	q, err := h.parser.Offers(r.URL.Query())
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	result, err := h.search.SearchOffers(r.Context(), q, auth.FromContext(r.Context()))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *OffersHandler) Get(w http.ResponseWriter, r *http.Request) {
	offer, err := h.offers.GetOffer(r.Context(), r.PathValue("id"))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	if viewer := auth.FromContext(r.Context()); viewer.Is(models.RoleJobseeker) {
		ids, err := h.users.SavedOfferIDs(r.Context(), viewer.UserID)
		if err != nil {
			h.errs.Write(w, r, err)
			return
		}
		offers := []models.Offer{*offer}
		search.MarkOffers(offers, search.NewSavedSet(ids))
		offer = &offers[0]
	}
	writeJSON(w, http.StatusOK, offer)
}

func (h *OffersHandler) Create(w http.ResponseWriter, r *http.Request) {
	doc, err := readJSON(r, createOfferSchema, "Invalid offer", salaryOrder)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	viewer := auth.FromContext(r.Context())
	offer, err := newOffer(doc, viewer.UserID, h.now().UTC())
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	if err := h.offers.CreateOffer(r.Context(), offer); err != nil {
		h.errs.Write(w, r, err)
		return
	}
	h.logger.Info("offer created", map[string]interface{}{"offerId": offer.ID, "createdBy": viewer.UserID})
	writeJSON(w, http.StatusCreated, offer)
}

func (h *OffersHandler) Update(w http.ResponseWriter, r *http.Request) {
	doc, err := readJSON(r, updateOfferSchema, "Invalid offer", salaryOrder)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	id := r.PathValue("id")
	if _, err := h.owned(r, id); err != nil {
		h.errs.Write(w, r, err)
		return
	}

	doc["updatedAt"] = h.now().UTC()
	offer, err := h.offers.UpdateOffer(r.Context(), id, doc)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, offer)
}

func (h *OffersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := h.owned(r, id); err != nil {
		h.errs.Write(w, r, err)
		return
	}
	if err := h.offers.DeleteOffer(r.Context(), id); err != nil {
		h.errs.Write(w, r, err)
		return
	}
	h.logger.Info("offer deleted", map[string]interface{}{"offerId": id})
	w.WriteHeader(http.StatusNoContent)
}

// owned loads offer id and checks that the caller created it.
func (h *OffersHandler) owned(r *http.Request, id string) (*models.Offer, error) {
	offer, err := h.offers.GetOffer(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if !offer.OwnedBy(auth.FromContext(r.Context()).UserID) {
		return nil, errors.NewForbiddenError("offer belongs to another employer")
	}
	return offer, nil
}

// Mine serves the caller's own offers, newest first.
func (h *OffersHandler) Mine(w http.ResponseWriter, r *http.Request) {
	page, err := h.parser.Page(r.URL.Query())
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	offers, total, err := h.offers.OffersByCreator(r.Context(), auth.FromContext(r.Context()).UserID, page)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, search.NewResult(offers, total, page))
}
