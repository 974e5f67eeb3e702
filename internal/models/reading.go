package models

import "time"

// Reading is one normalized sensor snapshot. Sensor fields are pointers so
// that an unreported value stays absent instead of collapsing to zero, which
// would corrupt the aggregate averages.
type Reading struct {
	UserID           uint      `json:"user_id"`
	DeviceID         string    `json:"device_id"`
	CreatedAt        time.Time `json:"createdAt"`
	Temperature      *float64  `json:"temperature,omitempty"`
	Humidity         *float64  `json:"humidity,omitempty"`
	Gas              *float64  `json:"gas,omitempty"`
	FallDetected     *bool     `json:"fall_detected,omitempty"`
	HeartRate        *float64  `json:"heart_rate,omitempty"`
	NoiseLevel       *float64  `json:"noise_level,omitempty"`
	Steps            *float64  `json:"steps,omitempty"`
	DeviceBattery    *float64  `json:"device_battery,omitempty"`
	AuxiliaryBattery *float64  `json:"auxiliary_battery,omitempty"`
}
