package controllers

import (
	"aurora/internal/models"
	"aurora/internal/services"
	"context"
	"net/http"
)

type sessionKey struct{}

func SessionFromContext(ctx context.Context) *models.Session {
	s, _ := ctx.Value(sessionKey{}).(*models.Session)
	return s
}

// RequireRole rejects callers whose session lacks every one of roles with a
// JSON 401 and passes the session down in the request context otherwise.
func RequireRole(gate *services.RoleGate, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := gate.Require(r, roles...)
			if err != nil {
				writeError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, session)))
		})
	}
}
