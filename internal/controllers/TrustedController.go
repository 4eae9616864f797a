package controllers

import (
	"aurora/internal/models"
	"aurora/internal/providers"
	"aurora/internal/services"
	"net/http"
)

type TrustedController struct {
	logger providers.Logger
	auth   services.AuthServiceInterface
}

func NewTrustedController(logger providers.Logger, auth services.AuthServiceInterface) *TrustedController {
	return &TrustedController{logger: logger, auth: auth}
}

type trustedHomeResponse struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

func (tc *TrustedController) Home(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	if session == nil {
		writeError(w, models.ErrUnauthorized)
		return
	}
	name, err := tc.auth.DisplayName(session.Username)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trustedHomeResponse{Username: session.Username, DisplayName: name})
}
