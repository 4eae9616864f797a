package services

import (
	"aurora/internal/models"
	"aurora/internal/providers"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	json "github.com/goccy/go-json"
	"time"
)

const sessionKeyPrefix = "session:"

type SessionServiceInterface interface {
	Create(username, role string) (*models.Session, error)
	Get(token string) (*models.Session, bool)
	Delete(token string)
	Count() int
}

// SessionService keeps opaque tokens in the TTL cache; expiry is the
// cache's.
type SessionService struct {
	cache providers.CacheProviderInterface
	now   func() time.Time
}

func NewSessionService(cache providers.CacheProviderInterface) SessionServiceInterface {
	return &SessionService{cache: cache, now: time.Now}
}

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func (s *SessionService) Create(username, role string) (*models.Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}
	session := &models.Session{
		Token:     token,
		Username:  username,
		Role:      role,
		CreatedAt: s.now(),
	}
	data, err := json.Marshal(session)
	if err != nil {
		return nil, err
	}
	s.cache.Set(sessionKeyPrefix+token, data)
	return session, nil
}

func (s *SessionService) Get(token string) (*models.Session, bool) {
	if token == "" {
		return nil, false
	}
	data, ok := s.cache.Get(sessionKeyPrefix + token)
	if !ok {
		return nil, false
	}
	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, false
	}
	session.Token = token
	return &session, true
}

func (s *SessionService) Delete(token string) {
	if token != "" {
		s.cache.Del(sessionKeyPrefix + token)
	}
}

func (s *SessionService) Count() int {
	return s.cache.Len()
}
