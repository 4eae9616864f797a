package controllers

import (
	"aurora/internal/backends"
	"aurora/internal/services"
	"fmt"
	"net/http"
	"time"
)

// HealthController answers liveness probes from the hosting platform.
type HealthController struct {
	alerts   services.AlertServiceInterface
	sessions services.SessionServiceInterface
	registry backends.RegistryInterface
	started  time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	AlertsLastId  int     `json:"alerts_last_id"`
	Sessions      int     `json:"sessions"`
	Backend       string  `json:"backend"`
}

func NewHealthController(alerts services.AlertServiceInterface, sessions services.SessionServiceInterface, registry backends.RegistryInterface) *HealthController {
	return &HealthController{
		alerts:   alerts,
		sessions: sessions,
		registry: registry,
		started:  time.Now(),
	}
}

// Health reads the registry through Status so probes do not count as
// backend requests.
func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Ok: false, Error: "method_not_allowed"})
		return
	}

	uptime := time.Since(hc.started)
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		Uptime:        formatUptime(uptime),
		UptimeSeconds: uptime.Seconds(),
		AlertsLastId:  hc.alerts.LastId(),
		Sessions:      hc.sessions.Count(),
		Backend:       hc.registry.Status().Current,
	})
}

func formatUptime(d time.Duration) string {
	d = d.Truncate(time.Second)
	return fmt.Sprintf("%dh%02dm%02ds", int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60)
}
