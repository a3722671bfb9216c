// internal/common/auth/middleware.go
package auth

import (
	"context"
	"net/http"
	"strings"

	"jobboard-api/internal/common/errors"
	"jobboard-api/internal/common/logger"
	"jobboard-api/internal/models"
)

// RevocationChecker reports whether a token was logged out.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// Authenticator resolves bearer tokens into identities.
type Authenticator struct {
	tokens      *Tokens
	revocations RevocationChecker
	errs        *errors.ErrorHandler
	logger      logger.Logger
}

func NewAuthenticator(tokens *Tokens, revocations RevocationChecker, errs *errors.ErrorHandler, log logger.Logger) *Authenticator {
	return &Authenticator{tokens: tokens, revocations: revocations, errs: errs, logger: log}
}

// BearerToken extracts the token of an "Authorization: Bearer" header.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Identify returns the caller of r, nil when no token is sent.
func (a *Authenticator) Identify(r *http.Request) (*Identity, error) {
	token := BearerToken(r)
	if token == "" {
		return nil, nil
	}
	claims, err := a.tokens.Verify(token)
	if err != nil {
		return nil, errors.NewUnauthorizedError(err.Error())
	}
	if a.revocations != nil {
		revoked, err := a.revocations.IsRevoked(r.Context(), token)
		if err != nil {
			return nil, errors.NewCacheUnavailableError(err)
		}
		if revoked {
			return nil, errors.NewUnauthorizedError("token revoked")
		}
	}
	return &Identity{UserID: claims.Subject, Email: claims.Email, Role: claims.Role, Token: token}, nil
}

// Optional attaches the caller to the request context when the token is
// valid. Requests with a missing or bad token continue anonymously.
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := a.Identify(r)
		if err != nil {
			a.logger.Debug("continuing anonymously", map[string]interface{}{
				"path":  r.URL.Path,
				"error": err.Error(),
			})
		}
		if id != nil {
			r = r.WithContext(WithIdentity(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

// Require rejects anonymous callers with 401.
func (a *Authenticator) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if FromContext(r.Context()) == nil {
			a.errs.Write(w, r, errors.NewUnauthorizedError("authentication required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects anonymous callers with 401 and other roles with 403.
func (a *Authenticator) RequireRole(role models.Role, next http.Handler) http.Handler {
	return a.Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !FromContext(r.Context()).Is(role) {
			a.errs.Write(w, r, errors.NewForbiddenError("requires role "+string(role)))
			return
		}
		next.ServeHTTP(w, r)
	}))
}
