// Package alerting derives alerts from stored readings using fixed
// threshold rules. Rules are an ordered list evaluated with early exit:
// a single reading yields at most one alert, whichever rule matches first,
// so one bad sample cannot flood the alert feed.
package alerting

import "sentinel-backend/internal/models"

const (
	// GasThresholdPPM is the gas concentration above which an alert fires.
	GasThresholdPPM = 1000.0
	// NoiseThresholdDB is the noise level above which an alert fires.
	NoiseThresholdDB = 100.0
)

type thresholdRule struct {
	matches func(models.Reading) bool
	build   func(models.Reading) models.Alert
}

// rules in priority order: gas, then noise, then fall.
var rules = []thresholdRule{
	{
		matches: func(r models.Reading) bool {
			return r.Gas != nil && *r.Gas > GasThresholdPPM
		},
		build: func(r models.Reading) models.Alert {
			return models.Alert{
				DeviceID:  r.DeviceID,
				Type:      models.AlertTypeGas,
				Value:     r.Gas,
				Message:   "High gas level detected",
				Timestamp: r.CreatedAt,
			}
		},
	},
	{
		matches: func(r models.Reading) bool {
			return r.NoiseLevel != nil && *r.NoiseLevel > NoiseThresholdDB
		},
		build: func(r models.Reading) models.Alert {
			return models.Alert{
				DeviceID:  r.DeviceID,
				Type:      models.AlertTypeNoise,
				Value:     r.NoiseLevel,
				Message:   "High noise level detected",
				Timestamp: r.CreatedAt,
			}
		},
	},
	{
		matches: func(r models.Reading) bool {
			return r.FallDetected != nil && *r.FallDetected
		},
		build: func(r models.Reading) models.Alert {
			return models.Alert{
				DeviceID:  r.DeviceID,
				Type:      models.AlertTypeFall,
				Value:     nil,
				Message:   "Fall detected",
				Timestamp: r.CreatedAt,
			}
		},
	},
}

// Evaluate scans the readings in order and returns the alerts they trigger,
// preserving input order.
func Evaluate(readings []models.Reading) []models.Alert {
	var alerts []models.Alert
	for _, reading := range readings {
		for _, rule := range rules {
			if rule.matches(reading) {
				alerts = append(alerts, rule.build(reading))
				break
			}
		}
	}
	return alerts
}
