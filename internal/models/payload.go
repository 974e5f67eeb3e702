package models

// SensorPayload is the raw ingestion body using the flat sensor schema.
type SensorPayload struct {
	DeviceID  string   `json:"device_id"`
	UserID    *uint    `json:"user_id,omitempty"`
	Timestamp string   `json:"timestamp,omitempty"`
	Sensors   *Sensors `json:"sensors"`
}

// Sensors carries the optional per-sample values. Pointers distinguish
// "not reported" from a real zero.
type Sensors struct {
	Temperature      *float64 `json:"temperature"`
	Humidity         *float64 `json:"humidity"`
	Gas              *float64 `json:"gas"`
	FallDetected     *bool    `json:"fall_detected"`
	HeartRate        *float64 `json:"heart_rate"`
	NoiseLevel       *float64 `json:"noise_level"`
	Steps            *float64 `json:"steps"`
	DeviceBattery    *float64 `json:"device_battery"`
	AuxiliaryBattery *float64 `json:"auxiliary_battery"`
}

// LegacySensorPayload is the older nested schema still emitted by
// first-generation firmware. It is adapted, never validated directly.
type LegacySensorPayload struct {
	DeviceID  string         `json:"device_id"`
	Timestamp string         `json:"timestamp,omitempty"`
	Sensors   *LegacySensors `json:"sensors"`
}

type LegacySensors struct {
	Temperature *float64            `json:"temperature"`
	Humidity    *float64            `json:"humidity"`
	Gas         *LegacyGas          `json:"gas"`
	Accel       *LegacyAcceleration `json:"acceleration"`
	HeartRate   *float64            `json:"heart_rate"`
	NoiseLevel  *float64            `json:"noise_level"`
	Battery     *float64            `json:"battery"`
}

type LegacyGas struct {
	PPM *float64 `json:"ppm"`
}

type LegacyAcceleration struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
	Z *float64 `json:"z"`
}
