package controllers

import (
	"aurora/internal/models"
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminRequest(method, target, body string) *http.Request {
	r := newRequest(method, target, body)
	session := &models.Session{Username: "admin", Role: models.RoleAdmin}
	return r.WithContext(context.WithValue(r.Context(), sessionKey{}, session))
}

func TestPanel_ListsContactsAndLimit(t *testing.T) {
	h := newHarness(t)
	h.addTrusted(t, "Maria", "maria")
	pc := NewPanelController(h.logger, h.contacts, h.registry)

	rr := serve(http.HandlerFunc(pc.Panel), adminRequest(http.MethodGet, "/panel", ""))

	require.Equal(t, http.StatusOK, rr.Code)
	resp := decode(t, rr)
	assert.Equal(t, float64(3), resp["limit"])
	assert.Equal(t, []interface{}{map[string]interface{}{"username": "maria", "name": "Maria"}}, resp["trusted"])
}

func TestPanel_EmptyList(t *testing.T) {
	h := newHarness(t)
	pc := NewPanelController(h.logger, h.contacts, h.registry)

	rr := serve(http.HandlerFunc(pc.Panel), adminRequest(http.MethodGet, "/panel", ""))
	assert.Equal(t, []interface{}{}, decode(t, rr)["trusted"])
}

func TestAddTrusted(t *testing.T) {
	h := newHarness(t)
	pc := NewPanelController(h.logger, h.contacts, h.registry)

	rr := serve(http.HandlerFunc(pc.AddTrusted), adminRequest(http.MethodPost, "/panel/add_trusted",
		`{"name":"Maria","username":"Maria","password":"segredo1"}`))

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, true, decode(t, rr)["ok"])
	assert.True(t, h.store.Verify("maria", "segredo1"))
}

func TestAddTrusted_Errors(t *testing.T) {
	h := newHarness(t)
	h.addTrusted(t, "Maria", "maria")
	pc := NewPanelController(h.logger, h.contacts, h.registry)
	add := http.HandlerFunc(pc.AddTrusted)

	rr := serve(add, adminRequest(http.MethodPost, "/panel/add_trusted", `{"name":"M","username":"maria","password":"segredo1"}`))
	requireError(t, rr, http.StatusConflict, "duplicate")

	rr = serve(add, adminRequest(http.MethodPost, "/panel/add_trusted", `{"name":"M","username":"m2","password":"abc"}`))
	requireError(t, rr, http.StatusBadRequest, "invalid_input")

	rr = serve(add, adminRequest(http.MethodPost, "/panel/add_trusted",
		`{"name":"M","username":"m3","password":"`+strings.Repeat("ç", 40)+`"}`))
	requireError(t, rr, http.StatusBadRequest, "invalid_input")

	rr = serve(add, adminRequest(http.MethodPost, "/panel/add_trusted", `not json`))
	requireError(t, rr, http.StatusBadRequest, "invalid_input")

	h.addTrusted(t, "B", "b")
	h.addTrusted(t, "C", "c")
	rr = serve(add, adminRequest(http.MethodPost, "/panel/add_trusted", `{"name":"D","username":"d","password":"segredo1"}`))
	requireError(t, rr, http.StatusConflict, "limit_exceeded")

	assert.Zero(t, h.logger.Count("error"), "client errors are not logged as failures")
}

func TestDeleteTrusted(t *testing.T) {
	h := newHarness(t)
	h.addTrusted(t, "Maria", "maria")
	pc := NewPanelController(h.logger, h.contacts, h.registry)

	rr := serve(http.HandlerFunc(pc.DeleteTrusted), adminRequest(http.MethodPost, "/panel/delete_trusted", `{"username":"maria"}`))
	require.Equal(t, http.StatusOK, rr.Code)
	resp := decode(t, rr)
	assert.Equal(t, true, resp["ok"])
	assert.Equal(t, true, resp["removed"])

	rr = serve(http.HandlerFunc(pc.DeleteTrusted), adminRequest(http.MethodPost, "/panel/delete_trusted", `{"username":"maria"}`))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, false, decode(t, rr)["removed"])

	rr = serve(http.HandlerFunc(pc.DeleteTrusted), adminRequest(http.MethodPost, "/panel/delete_trusted", `{"username":"admin"}`))
	assert.Equal(t, false, decode(t, rr)["removed"])
	assert.Contains(t, h.store.Usernames(), "admin")
}

func TestChangePassword(t *testing.T) {
	h := newHarness(t)
	pc := NewPanelController(h.logger, h.contacts, h.registry)

	rr := serve(http.HandlerFunc(pc.ChangePassword), adminRequest(http.MethodPost, "/panel/password", `{"password":"abc"}`))
	requireError(t, rr, http.StatusBadRequest, "invalid_input")

	rr = serve(http.HandlerFunc(pc.ChangePassword), adminRequest(http.MethodPost, "/panel/password", `{"password":"nova-senha"}`))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, h.store.Verify("admin", "nova-senha"))
}

func TestChangePassword_NoSession(t *testing.T) {
	h := newHarness(t)
	pc := NewPanelController(h.logger, h.contacts, h.registry)

	rr := serve(http.HandlerFunc(pc.ChangePassword), newRequest(http.MethodPost, "/panel/password", `{"password":"nova-senha"}`))
	requireError(t, rr, http.StatusUnauthorized, "unauthorized")
}

func TestBackends(t *testing.T) {
	h := newHarness(t)
	pc := NewPanelController(h.logger, h.contacts, h.registry)

	rr := serve(http.HandlerFunc(pc.Backends), adminRequest(http.MethodGet, "/panel/backends", ""))

	require.Equal(t, http.StatusOK, rr.Code)
	resp := decode(t, rr)
	assert.Equal(t, "render", resp["current"])
	assert.Len(t, resp["backends"], 1)
	assert.Contains(t, resp, "stats")
}
