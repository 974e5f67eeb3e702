package validation

import "sentinel-backend/internal/models"

// First-generation firmware reports a vertical acceleration sample instead
// of an explicit fall flag; readings below this threshold indicate free fall.
const legacyFallAccelZ = 3.0

// AdaptLegacy converts the nested first-generation schema into the flat one
// so it can go through the same validator. The two schemas are incompatible
// and are deliberately not merged into a single code path.
func AdaptLegacy(payload models.LegacySensorPayload) models.SensorPayload {
	adapted := models.SensorPayload{
		DeviceID:  payload.DeviceID,
		Timestamp: payload.Timestamp,
	}
	if payload.Sensors == nil {
		return adapted
	}

	sensors := &models.Sensors{
		Temperature:   payload.Sensors.Temperature,
		Humidity:      payload.Sensors.Humidity,
		HeartRate:     payload.Sensors.HeartRate,
		NoiseLevel:    payload.Sensors.NoiseLevel,
		DeviceBattery: payload.Sensors.Battery,
	}
	if payload.Sensors.Gas != nil {
		sensors.Gas = payload.Sensors.Gas.PPM
	}
	if payload.Sensors.Accel != nil && payload.Sensors.Accel.Z != nil {
		fall := *payload.Sensors.Accel.Z < legacyFallAccelZ
		sensors.FallDetected = &fall
	}

	adapted.Sensors = sensors
	return adapted
}
