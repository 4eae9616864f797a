package controllers

import (
	"aurora/internal/backends"
	"aurora/internal/models"
	"aurora/internal/providers"
	"aurora/internal/services"
	"net/http"
)

type PanelController struct {
	logger   providers.Logger
	contacts services.ContactServiceInterface
	registry backends.RegistryInterface
}

func NewPanelController(logger providers.Logger, contacts services.ContactServiceInterface, registry backends.RegistryInterface) *PanelController {
	return &PanelController{
		logger:   logger,
		contacts: contacts,
		registry: registry,
	}
}

type panelResponse struct {
	Trusted []models.Contact `json:"trusted"`
	Limit   int              `json:"limit"`
}

type removeRequest struct {
	Username string `json:"username"`
}

type removeResponse struct {
	Ok      bool `json:"ok"`
	Removed bool `json:"removed"`
}

type passwordRequest struct {
	Password string `json:"password"`
}

func (pc *PanelController) Panel(w http.ResponseWriter, r *http.Request) {
	contacts, err := pc.contacts.List()
	if err != nil {
		pc.logger.Errorf(providers.TypeGet, "Unable to list trusted contacts: %s", err)
		writeError(w, err)
		return
	}
	if contacts == nil {
		contacts = []models.Contact{}
	}
	writeJSON(w, http.StatusOK, panelResponse{Trusted: contacts, Limit: pc.contacts.Limit()})
}

func (pc *PanelController) AddTrusted(w http.ResponseWriter, r *http.Request) {
	var req services.RegistrationInput
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := pc.contacts.Add(&req); err != nil {
		if status, _ := errorStatus(err); status == http.StatusInternalServerError {
			pc.logger.Errorf(providers.TypePost, "Unable to add trusted contact: %s", err)
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse{Ok: true})
}

func (pc *PanelController) DeleteTrusted(w http.ResponseWriter, r *http.Request) {
	var req removeRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	removed, err := pc.contacts.Remove(req.Username)
	if err != nil {
		pc.logger.Errorf(providers.TypePost, "Unable to remove trusted contact: %s", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, removeResponse{Ok: true, Removed: removed})
}

// ChangePassword updates the password of the logged-in admin.
func (pc *PanelController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	if session == nil {
		writeError(w, models.ErrUnauthorized)
		return
	}
	var req passwordRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := pc.contacts.ChangePassword(session.Username, req.Password); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse{Ok: true})
}

func (pc *PanelController) Backends(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pc.registry.Status())
}
