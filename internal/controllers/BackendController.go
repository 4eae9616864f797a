package controllers

import (
	"aurora/internal/backends"
	"aurora/internal/providers"
	"net/http"
)

// BackendController exposes the backend registry to clients. Reports only
// feed counters; nothing here changes which backend is served.
type BackendController struct {
	logger   providers.Logger
	registry backends.RegistryInterface
}

func NewBackendController(logger providers.Logger, registry backends.RegistryInterface) *BackendController {
	return &BackendController{logger: logger, registry: registry}
}

type activeBackendResponse struct {
	Url string `json:"url"`
}

type failureReport struct {
	Backend string `json:"backend"`
}

func (bc *BackendController) Active(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, activeBackendResponse{Url: bc.registry.ActiveURL()})
}

func (bc *BackendController) ReportFailure(w http.ResponseWriter, r *http.Request) {
	var req failureReport
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	bc.registry.ReportFailure(req.Backend)
	bc.logger.Warnf(providers.TypePost, "Client reported failure of backend %q", req.Backend)
	writeJSON(w, http.StatusOK, okResponse{Ok: true})
}
