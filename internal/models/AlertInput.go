package models

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// LocationInput accepts both "accuracy_m" (panic page) and "accuracy".
type LocationInput struct {
	Lat       *float64 `json:"lat"`
	Lon       *float64 `json:"lon"`
	AccuracyM *float64 `json:"accuracy_m"`
	Accuracy  *float64 `json:"accuracy"`
	Timestamp string   `json:"timestamp"`
}

type AlertInput struct {
	Name      string         `json:"name"`
	Situation string         `json:"situation"`
	Message   string         `json:"message"`
	Location  *LocationInput `json:"location"`
}

func (l *LocationInput) accuracy() *float64 {
	if l.AccuracyM != nil {
		return l.AccuracyM
	}
	return l.Accuracy
}

func (l *LocationInput) Validate() error {
	if l.Lat == nil || l.Lon == nil {
		return fmt.Errorf("%w: location needs lat and lon", ErrInvalidInput)
	}
	if math.IsNaN(*l.Lat) || *l.Lat < -90 || *l.Lat > 90 {
		return fmt.Errorf("%w: lat out of range", ErrInvalidInput)
	}
	if math.IsNaN(*l.Lon) || *l.Lon < -180 || *l.Lon > 180 {
		return fmt.Errorf("%w: lon out of range", ErrInvalidInput)
	}
	if acc := l.accuracy(); acc != nil && (math.IsNaN(*acc) || *acc < 0) {
		return fmt.Errorf("%w: accuracy must be non-negative", ErrInvalidInput)
	}
	return nil
}

// ToAlert fills placeholders for absent fields. Id is assigned by the log.
func (in *AlertInput) ToAlert(now time.Time, client string) *Alert {
	alert := &Alert{
		Timestamp: now,
		Name:      strings.TrimSpace(in.Name),
		Situation: strings.TrimSpace(in.Situation),
		Message:   strings.TrimSpace(in.Message),
		Client:    client,
	}
	if alert.Name == "" {
		alert.Name = DefaultAlertName
	}
	if alert.Situation == "" {
		alert.Situation = DefaultAlertSituation
	}
	if in.Location != nil && in.Location.Lat != nil && in.Location.Lon != nil {
		alert.Location = &Location{
			Lat:       *in.Location.Lat,
			Lon:       *in.Location.Lon,
			Accuracy:  in.Location.accuracy(),
			Timestamp: in.Location.Timestamp,
		}
		alert.ConsentLocation = true
	}
	return alert
}
