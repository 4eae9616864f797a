package services

import (
	"aurora/internal/models"
	"aurora/internal/providers"
	"aurora/internal/storage/interfaces"
	"fmt"
)

type AuthServiceInterface interface {
	Login(role, username, password string) (*models.Session, error)
	Logout(token string)
	DisplayName(username string) (string, error)
}

type AuthService struct {
	store    interfaces.CredentialStoreInterface
	sessions SessionServiceInterface
	logger   providers.Logger
}

func NewAuthService(store interfaces.CredentialStoreInterface, sessions SessionServiceInterface, logger providers.Logger) AuthServiceInterface {
	return &AuthService{store: store, sessions: sessions, logger: logger}
}

// Login opens a session only when the password verifies and the stored role
// equals the requested one.
func (as *AuthService) Login(role, username, password string) (*models.Session, error) {
	username = models.NormalizeUsername(username)
	if role != models.RoleAdmin && role != models.RoleTrusted {
		return nil, models.ErrUnauthorized
	}

	user, err := as.store.Get(username)
	if err != nil {
		return nil, fmt.Errorf("login lookup: %w", err)
	}
	if !as.store.Verify(username, password) || user == nil || user.Role != role {
		as.logger.Warnf(providers.TypeApp, "Failed %s login for %q", role, username)
		return nil, models.ErrUnauthorized
	}

	session, err := as.sessions.Create(username, role)
	if err != nil {
		return nil, err
	}
	as.logger.Infof(providers.TypeApp, "%s %s logged in", role, username)
	return session, nil
}

func (as *AuthService) Logout(token string) {
	as.sessions.Delete(token)
}

func (as *AuthService) DisplayName(username string) (string, error) {
	user, err := as.store.Get(username)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", models.ErrUnauthorized
	}
	return user.Name, nil
}
