package services

import (
	"aurora/internal/models"
	"aurora/internal/storage/interfaces"
	"aurora/internal/structures"
	"net/http"
	"strings"
)

type RoleGate struct {
	sessions   SessionServiceInterface
	store      interfaces.CredentialStoreInterface
	cookieName string
}

func NewRoleGate(conf *structures.Config, sessions SessionServiceInterface, store interfaces.CredentialStoreInterface) *RoleGate {
	return &RoleGate{sessions: sessions, store: store, cookieName: conf.Auth.CookieName}
}

// Token reads the session cookie, falling back to a bearer header.
func (g *RoleGate) Token(r *http.Request) string {
	if c, err := r.Cookie(g.cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}

// Require returns the caller's session when it carries one of roles and the
// account still holds that role. Sessions of removed contacts are dropped.
func (g *RoleGate) Require(r *http.Request, roles ...string) (*models.Session, error) {
	session, ok := g.sessions.Get(g.Token(r))
	if !ok || !session.HasRole(roles...) {
		return nil, models.ErrUnauthorized
	}
	user, err := g.store.Get(session.Username)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Role != session.Role {
		g.sessions.Delete(session.Token)
		return nil, models.ErrUnauthorized
	}
	return session, nil
}
