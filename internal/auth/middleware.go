package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/gear-planner/internal/domain"
)

var errMissingToken = fmt.Errorf("%w: missing bearer token", domain.ErrUnauthorized)

// TokenValidator verifies a bearer token and returns the user it belongs to.
type TokenValidator interface {
	ValidateToken(token string) (uuid.UUID, error)
}

// RequireUser rejects requests without a valid "Authorization: Bearer" token
// by calling unauthorized, and otherwise stores the user ID in the context.
func RequireUser(v TokenValidator, unauthorized func(http.ResponseWriter, *http.Request, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				unauthorized(w, r, errMissingToken)
				return
			}
			id, err := v.ValidateToken(token)
			if err != nil {
				unauthorized(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
