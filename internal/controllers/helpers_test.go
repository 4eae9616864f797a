package controllers

import (
	"aurora/internal/backends"
	"aurora/internal/services"
	"aurora/internal/structures"
	"aurora/internal/testutil"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type harness struct {
	conf     *structures.Config
	logger   *testutil.MockLogger
	store    *testutil.MockCredentialStore
	log      *testutil.MockAlertLog
	sessions services.SessionServiceInterface
	gate     *services.RoleGate
	auth     services.AuthServiceInterface
	contacts services.ContactServiceInterface
	alerts   services.AlertServiceInterface
	registry backends.RegistryInterface
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	conf := &structures.Config{
		RateLimit: structures.RateLimitConfig{Cooldown: 5 * time.Second},
		Contacts:  structures.ContactsConfig{MaxTrusted: 3},
		Auth: structures.AuthConfig{
			MinPasswordLength: 6,
			SessionTTL:        time.Hour,
			CookieName:        "aurora_session",
		},
		Backends: []structures.BackendConfig{{Name: "render", Url: "https://render.example"}},
	}
	h := &harness{
		conf:     conf,
		logger:   &testutil.MockLogger{},
		store:    testutil.NewMockCredentialStore(conf.Contacts.MaxTrusted),
		log:      &testutil.MockAlertLog{},
		sessions: services.NewSessionService(testutil.NewMockCache()),
		registry: backends.NewRegistry(conf),
	}
	h.gate = services.NewRoleGate(conf, h.sessions, h.store)
	h.auth = services.NewAuthService(h.store, h.sessions, h.logger)
	h.contacts = services.NewContactService(conf, h.store)
	h.alerts = services.NewAlertService(h.log, services.NewRateLimiter(conf), h.logger, testutil.NewMockMetrics())
	return h
}

// token logs in directly through the session service.
func (h *harness) token(t *testing.T, username, role string) string {
	t.Helper()
	s, err := h.sessions.Create(username, role)
	require.NoError(t, err)
	return s.Token
}

func (h *harness) addTrusted(t *testing.T, name, username string) {
	t.Helper()
	require.NoError(t, h.store.AddTrusted(name, username, "segredo1"))
}

func newRequest(method, target, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	r.RemoteAddr = "10.0.0.1:40000"
	return r
}

func withCookie(r *http.Request, token string) *http.Request {
	r.AddCookie(&http.Cookie{Name: "aurora_session", Value: token})
	return r
}

func serve(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, r)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	return resp
}

func requireError(t *testing.T, rr *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	require.Equal(t, status, rr.Code, rr.Body.String())
	resp := decode(t, rr)
	require.Equal(t, false, resp["ok"])
	require.Equal(t, code, resp["error"])
}
