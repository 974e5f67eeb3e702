package models

import "time"

// AlertType discriminates which threshold rule produced an alert.
type AlertType string

const (
	AlertTypeGas   AlertType = "gas"
	AlertTypeNoise AlertType = "noise"
	AlertTypeFall  AlertType = "fall"
)

// Alert is derived from a reading on demand and never persisted.
type Alert struct {
	DeviceID  string    `json:"device_id"`
	Type      AlertType `json:"type"`
	Value     *float64  `json:"value"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
