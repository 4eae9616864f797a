package controllers

import (
	"aurora/internal/models"
	"aurora/internal/providers"
	"aurora/internal/services"
	"net/http"
	"strconv"
)

type AlertController struct {
	logger   providers.Logger
	alerts   services.AlertServiceInterface
	contacts services.ContactServiceInterface
}

func NewAlertController(logger providers.Logger, alerts services.AlertServiceInterface, contacts services.ContactServiceInterface) *AlertController {
	return &AlertController{
		logger:   logger,
		alerts:   alerts,
		contacts: contacts,
	}
}

type sendAlertResponse struct {
	Ok bool `json:"ok"`
	Id int  `json:"id"`
}

type lastAlertResponse struct {
	Last *models.Alert `json:"last"`
}

type recentAlertsResponse struct {
	Alerts []*models.Alert `json:"alerts"`
}

type trustedNamesResponse struct {
	Trusted []string `json:"trusted"`
}

func (ac *AlertController) SendAlert(w http.ResponseWriter, r *http.Request) {
	var payload models.AlertInput
	if err := decodeBody(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}

	alert, err := ac.alerts.Submit(&payload, services.ClientKey(r))
	if err != nil {
		if status, _ := errorStatus(err); status == http.StatusInternalServerError {
			ac.logger.Errorf(providers.TypePost, "Unable to store alert: %s", err)
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sendAlertResponse{Ok: true, Id: alert.Id})
}

func (ac *AlertController) LastAlert(w http.ResponseWriter, r *http.Request) {
	last, err := ac.alerts.Last()
	if err != nil {
		ac.logger.Errorf(providers.TypeGet, "Unable to read last alert: %s", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lastAlertResponse{Last: last})
}

func (ac *AlertController) RecentAlerts(w http.ResponseWriter, r *http.Request) {
	n := services.DefaultRecentAlerts
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, models.ErrInvalidInput)
			return
		}
		n = parsed
	}

	alerts, err := ac.alerts.Recent(n)
	if err != nil {
		ac.logger.Errorf(providers.TypeGet, "Unable to read alerts: %s", err)
		writeError(w, err)
		return
	}
	if alerts == nil {
		alerts = []*models.Alert{}
	}
	writeJSON(w, http.StatusOK, recentAlertsResponse{Alerts: alerts})
}

// TrustedNames lists display names only; the panic page shows who will be
// notified.
func (ac *AlertController) TrustedNames(w http.ResponseWriter, r *http.Request) {
	names, err := ac.contacts.Names()
	if err != nil {
		ac.logger.Errorf(providers.TypeGet, "Unable to list trusted contacts: %s", err)
		writeError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, trustedNamesResponse{Trusted: names})
}
