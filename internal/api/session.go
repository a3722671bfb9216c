package api

import (
	"net/http"

	"jobboard-api/internal/common/auth"
	"jobboard-api/internal/common/errors"
	"jobboard-api/internal/common/logger"
)

type SessionHandler struct {
	tokens  *auth.Tokens
	revoker Revoker
	errs    *errors.ErrorHandler
	logger  logger.Logger
}

// Logout revokes the bearer token of the request for the rest of its
// lifetime.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	viewer := auth.FromContext(r.Context())
	claims, err := h.tokens.Verify(viewer.Token)
	if err != nil {
		h.errs.Write(w, r, errors.NewUnauthorizedError(err.Error()))
		return
	}
	if err := h.revoker.Revoke(r.Context(), viewer.Token, claims.ExpiresAt.Time); err != nil {
		h.errs.Write(w, r, errors.NewCacheUnavailableError(err))
		return
	}
	h.logger.Info("logged out", map[string]interface{}{"userId": viewer.UserID})
	w.WriteHeader(http.StatusNoContent)
}
