package models

// Averages holds per-field arithmetic means. A field with no present values
// across the reading set stays nil and serializes as null, never NaN or zero.
type Averages struct {
	AvgTemperature      *float64 `json:"avg_temperature"`
	AvgHumidity         *float64 `json:"avg_humidity"`
	AvgGas              *float64 `json:"avg_gas"`
	AvgHeartRate        *float64 `json:"avg_heart_rate"`
	AvgNoiseLevel       *float64 `json:"avg_noise_level"`
	AvgDeviceBattery    *float64 `json:"avg_device_battery"`
	AvgAuxiliaryBattery *float64 `json:"avg_auxiliary_battery"`
	AvgSteps            *float64 `json:"avg_steps"`
}

// StatsSummary is the aggregate view over a reading set.
type StatsSummary struct {
	TotalEntries int      `json:"totalEntries"`
	DeviceCount  int      `json:"deviceCount"`
	Averages     Averages `json:"averages"`
}
