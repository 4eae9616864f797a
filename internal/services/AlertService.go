package services

import (
	"aurora/internal/models"
	"aurora/internal/providers"
	"aurora/internal/storage/interfaces"
	"fmt"
	"time"
)

const (
	DefaultRecentAlerts = 20
	MaxRecentAlerts     = 200
)

type AlertServiceInterface interface {
	Submit(in *models.AlertInput, clientKey string) (*models.Alert, error)
	Last() (*models.Alert, error)
	Recent(n int) ([]*models.Alert, error)
	LastId() int
}

type AlertService struct {
	log     interfaces.AlertLogInterface
	limiter RateLimiterInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	now     func() time.Time
}

func NewAlertService(log interfaces.AlertLogInterface, limiter RateLimiterInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) AlertServiceInterface {
	return &AlertService{
		log:     log,
		limiter: limiter,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

// Submit validates first so malformed requests never start a cooldown.
func (as *AlertService) Submit(in *models.AlertInput, clientKey string) (*models.Alert, error) {
	if in == nil {
		in = &models.AlertInput{}
	}
	if in.Location != nil {
		if err := in.Location.Validate(); err != nil {
			return nil, err
		}
	}
	if !as.limiter.Admit(clientKey) {
		as.metrics.IncRateLimited()
		as.logger.Warnf(providers.TypePost, "Alert from %s rejected by cooldown", clientKey)
		return nil, models.ErrRateLimited
	}

	alert := in.ToAlert(as.now(), clientKey)
	if _, err := as.log.Append(alert); err != nil {
		return nil, fmt.Errorf("store alert: %w", err)
	}
	as.metrics.IncAlerts()
	as.logger.Warnf(providers.TypeApp, "ALERT #%d from %s: %s (location consent: %t)", alert.Id, clientKey, alert.Situation, alert.ConsentLocation)
	return alert, nil
}

func (as *AlertService) Last() (*models.Alert, error) {
	return as.log.Last()
}

func (as *AlertService) Recent(n int) ([]*models.Alert, error) {
	if n > MaxRecentAlerts {
		n = MaxRecentAlerts
	}
	return as.log.Recent(n)
}

func (as *AlertService) LastId() int {
	return as.log.LastId()
}
