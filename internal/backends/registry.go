// Package backends tracks the configured deployment URLs for status
// reporting only. It never probes a backend and never switches the active
// one: the first configured backend stays active for the process lifetime.
package backends

import (
	"aurora/internal/structures"
	"context"
	"sync"
	"time"
)

type Backend struct {
	Name         string     `json:"name"`
	Url          string     `json:"url"`
	Healthy      bool       `json:"healthy"`
	Failures     int        `json:"failures"`
	ResponseTime *float64   `json:"response_time"`
	LastCheck    *time.Time `json:"last_check"`
	Active       bool       `json:"active"`
}

type Stats struct {
	TotalSwitches  int        `json:"total_switches"`
	LastSwitch     *time.Time `json:"last_switch"`
	TotalRequests  int        `json:"total_requests"`
	FailedRequests int        `json:"failed_requests"`
}

type Status struct {
	Current  string    `json:"current"`
	Backends []Backend `json:"backends"`
	Stats    Stats     `json:"stats"`
}

type RegistryInterface interface {
	ActiveURL() string
	ReportFailure(name string)
	Status() Status
	Monitor(ctx context.Context)
}

type Registry struct {
	mu       sync.Mutex
	backends []Backend
	stats    Stats
}

func NewRegistry(conf *structures.Config) RegistryInterface {
	r := &Registry{}
	for i, b := range conf.Backends {
		r.backends = append(r.backends, Backend{
			Name:    b.Name,
			Url:     b.Url,
			Healthy: true,
			Active:  i == 0,
		})
	}
	return r
}

// ActiveURL counts a request and returns the first backend's URL, or "" when
// none is configured.
func (r *Registry) ActiveURL() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats.TotalRequests++
	if len(r.backends) == 0 {
		return ""
	}
	return r.backends[0].Url
}

// ReportFailure only counts. Health flags and the active backend are left
// as they are.
func (r *Registry) ReportFailure(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats.FailedRequests++
	for i := range r.backends {
		if r.backends[i].Name == name {
			r.backends[i].Failures++
		}
	}
}

func (r *Registry) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := Status{
		Backends: make([]Backend, len(r.backends)),
		Stats:    r.stats,
	}
	copy(s.Backends, r.backends)
	if len(r.backends) > 0 {
		s.Current = r.backends[0].Name
	}
	return s
}

// Monitor blocks until ctx is done. No health checks are performed.
func (r *Registry) Monitor(ctx context.Context) {
	<-ctx.Done()
}
