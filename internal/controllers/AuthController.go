package controllers

import (
	"aurora/internal/providers"
	"aurora/internal/services"
	"aurora/internal/structures"
	"net/http"
)

type AuthController struct {
	logger providers.Logger
	auth   services.AuthServiceInterface
	gate   *services.RoleGate
	conf   structures.AuthConfig
}

func NewAuthController(conf *structures.Config, logger providers.Logger, auth services.AuthServiceInterface, gate *services.RoleGate) *AuthController {
	return &AuthController{
		logger: logger,
		auth:   auth,
		gate:   gate,
		conf:   conf.Auth,
	}
}

type loginRequest struct {
	Role     string `json:"role"`
	Username string `json:"username"`
	Password string `json:"password"`
	// Bearer asks for the token in the body, for clients without a cookie jar.
	Bearer bool `json:"bearer"`
}

type loginResponse struct {
	Ok    bool   `json:"ok"`
	Role  string `json:"role"`
	Token string `json:"token,omitempty"`
}

func (ac *AuthController) setCookie(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     ac.conf.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   ac.conf.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (ac *AuthController) login(w http.ResponseWriter, r *http.Request, role string) {
	var req loginRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if role == "" {
		role = req.Role
	}

	session, err := ac.auth.Login(role, req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	ac.setCookie(w, session.Token, int(ac.conf.SessionTTL.Seconds()))
	resp := loginResponse{Ok: true, Role: session.Role}
	if req.Bearer {
		resp.Token = session.Token
	}
	writeJSON(w, http.StatusOK, resp)
}

// Login takes the role from the request body.
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	ac.login(w, r, "")
}

// LoginAs binds the role to the endpoint, ignoring any role in the body.
func (ac *AuthController) LoginAs(role string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ac.login(w, r, role)
	}
}

func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	ac.auth.Logout(ac.gate.Token(r))
	ac.setCookie(w, "", -1)
	writeJSON(w, http.StatusOK, okResponse{Ok: true})
}
