package testutil

import (
	"aurora/internal/models"
	"aurora/internal/providers"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.Logs {
		if l.Level == level {
			n++
		}
	}
	return n
}

// Contains reports whether any rendered message at level contains substr.
func (m *MockLogger) Contains(level, substr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.Logs {
		if l.Level == level && strings.Contains(fmt.Sprintf(l.Format, l.Args...), substr) {
			return true
		}
	}
	return false
}

// MockMetrics implements providers.MetricsProviderInterface with plain counters.
type MockMetrics struct {
	mu              sync.Mutex
	Requests        map[string]int
	CacheHits       int
	CacheMisses     int
	Alerts          int
	RateLimited     int
	Recoveries      map[string]int
	Persistence     int
	RateLimiterKeys int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{Requests: map[string]int{}, Recoveries: map[string]int{}}
}

func (m *MockMetrics) IncRequestsTotal(endpoint string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests[fmt.Sprintf("%s:%d", endpoint, status)]++
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) IncAlerts() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Alerts++
}
func (m *MockMetrics) IncRateLimited() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RateLimited++
}
func (m *MockMetrics) IncStoreRecoveries(store string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Recoveries[store]++
}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persistence++
}
func (m *MockMetrics) SetRateLimiterKeys(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RateLimiterKeys = count
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
}

func (m *MockCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Data)
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

// MockCredentialStore implements interfaces.CredentialStoreInterface in
// memory. Passwords are kept in the clear.
type MockCredentialStore struct {
	mu        sync.Mutex
	Users     models.Users
	Passwords map[string]string
	Limit     int
	Err       error
}

// NewMockCredentialStore starts with one admin, "admin"/"admin123".
func NewMockCredentialStore(limit int) *MockCredentialStore {
	return &MockCredentialStore{
		Users:     models.Users{"admin": {Role: models.RoleAdmin, Name: "Admin Aurora"}},
		Passwords: map[string]string{"admin": "admin123"},
		Limit:     limit,
	}
}

func (m *MockCredentialStore) Init() error { return m.Err }

func (m *MockCredentialStore) Load() (models.Users, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := make(models.Users, len(m.Users))
	for k, v := range m.Users {
		u := *v
		out[k] = &u
	}
	return out, nil
}

func (m *MockCredentialStore) Save(users models.Users) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Users = users
	return m.Err
}

func (m *MockCredentialStore) Verify(username, password string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Passwords[models.NormalizeUsername(username)]
	return ok && p == password
}

func (m *MockCredentialStore) Get(username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	u, ok := m.Users[models.NormalizeUsername(username)]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (m *MockCredentialStore) AddTrusted(name, username, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	username = models.NormalizeUsername(username)
	if _, ok := m.Users[username]; ok {
		return fmt.Errorf("%w: %s", models.ErrDuplicateUser, username)
	}
	if m.Users.CountRole(models.RoleTrusted) >= m.Limit {
		return fmt.Errorf("%w: max %d", models.ErrLimitExceeded, m.Limit)
	}
	m.Users[username] = &models.User{Role: models.RoleTrusted, Name: name}
	m.Passwords[username] = password
	return nil
}

func (m *MockCredentialStore) RemoveTrusted(username string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	username = models.NormalizeUsername(username)
	u, ok := m.Users[username]
	if !ok || u.Role != models.RoleTrusted {
		return false, nil
	}
	delete(m.Users, username)
	delete(m.Passwords, username)
	return true, nil
}

func (m *MockCredentialStore) ChangePassword(username, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	username = models.NormalizeUsername(username)
	if _, ok := m.Users[username]; !ok {
		return fmt.Errorf("%w: unknown user %s", models.ErrInvalidInput, username)
	}
	m.Passwords[username] = password
	return nil
}

func (m *MockCredentialStore) Trusted() ([]models.Contact, error) {
	users, err := m.Load()
	if err != nil {
		return nil, err
	}
	return users.Trusted(), nil
}

func (m *MockCredentialStore) MaxTrusted() int { return m.Limit }

// MockAlertLog implements interfaces.AlertLogInterface in memory.
type MockAlertLog struct {
	mu     sync.Mutex
	Alerts []*models.Alert
	nextId int
	Err    error
}

func (m *MockAlertLog) Init() error { return m.Err }

func (m *MockAlertLog) Append(alert *models.Alert) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	m.nextId++
	alert.Id = m.nextId
	a := *alert
	m.Alerts = append(m.Alerts, &a)
	return m.nextId, nil
}

func (m *MockAlertLog) Last() (*models.Alert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Alerts) == 0 {
		return nil, nil
	}
	return m.Alerts[len(m.Alerts)-1], nil
}

func (m *MockAlertLog) Recent(n int) ([]*models.Alert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if n <= 0 {
		return []*models.Alert{}, nil
	}
	start := max(len(m.Alerts)-n, 0)
	out := make([]*models.Alert, len(m.Alerts)-start)
	copy(out, m.Alerts[start:])
	return out, nil
}

func (m *MockAlertLog) LastId() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.nextId
}

// Usernames returns the stored usernames, sorted.
func (m *MockCredentialStore) Usernames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.Users))
	for k := range m.Users {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

var ErrMockIO = errors.New("mock i/o failure")
