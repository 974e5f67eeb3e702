// Package validation checks raw ingestion payloads for structural
// completeness and normalizes them into flat readings. It is a pure
// transformation: errors are returned, nothing is persisted here.
package validation

import (
	"net/http"
	"time"

	"sentinel-backend/internal/models"
)

// NormalizeReading validates a flat-schema payload and produces a reading
// ready for persistence. The creation timestamp is the supplied timestamp
// when present, otherwise now. Unreported sensor values stay nil.
func NormalizeReading(payload models.SensorPayload, now time.Time) (models.Reading, error) {
	var missing []string
	if payload.DeviceID == "" {
		missing = append(missing, "device_id")
	}
	if payload.Sensors == nil {
		missing = append(missing, "sensors")
	}
	if len(missing) > 0 {
		return models.Reading{}, models.NewAPIError(
			models.ErrorCodeValidationFailed,
			"Missing required fields",
			map[string]any{"missing": missing},
			http.StatusBadRequest,
		)
	}

	createdAt := now
	if payload.Timestamp != "" {
		parsed, err := time.Parse(time.RFC3339, payload.Timestamp)
		if err != nil {
			return models.Reading{}, models.NewAPIError(
				models.ErrorCodeInvalidFormat,
				"Invalid timestamp format. Expected ISO 8601.",
				nil,
				http.StatusBadRequest,
			)
		}
		createdAt = parsed
	}

	sensors := payload.Sensors
	return models.Reading{
		DeviceID:         payload.DeviceID,
		CreatedAt:        createdAt,
		Temperature:      sensors.Temperature,
		Humidity:         sensors.Humidity,
		Gas:              sensors.Gas,
		FallDetected:     sensors.FallDetected,
		HeartRate:        sensors.HeartRate,
		NoiseLevel:       sensors.NoiseLevel,
		Steps:            sensors.Steps,
		DeviceBattery:    sensors.DeviceBattery,
		AuxiliaryBattery: sensors.AuxiliaryBattery,
	}, nil
}
