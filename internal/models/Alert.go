package models

import "time"

const (
	DefaultAlertName      = "Não informado"
	DefaultAlertSituation = "Não informado"
)

type Location struct {
	Lat       float64  `json:"lat"`
	Lon       float64  `json:"lon"`
	Accuracy  *float64 `json:"accuracy_m,omitempty"`
	Timestamp string   `json:"timestamp,omitempty"`
}

type Alert struct {
	Id              int       `json:"id"`
	Timestamp       time.Time `json:"timestamp"`
	Name            string    `json:"name"`
	Situation       string    `json:"situation"`
	Message         string    `json:"message"`
	Location        *Location `json:"location,omitempty"`
	ConsentLocation bool      `json:"consent_location"`
	Client          string    `json:"client,omitempty"`
}
