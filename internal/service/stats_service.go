package service

import (
	"context"

	"sentinel-backend/internal/models"
	"sentinel-backend/internal/repository"
)

// StatsService computes aggregate statistics over the reading set.
type StatsService struct {
	readings repository.ReadingRepository
}

func NewStatsService(readings repository.ReadingRepository) *StatsService {
	return &StatsService{readings: readings}
}

// Summary aggregates the full reading set, or one owner's set when a scope
// is given. A store failure fails the whole aggregation; partial results are
// never returned.
func (s *StatsService) Summary(ctx context.Context, ownerID *uint) (models.StatsSummary, error) {
	var (
		readings []models.Reading
		err      error
	)
	if ownerID != nil {
		readings, err = s.readings.FindAllForOwner(ctx, *ownerID)
	} else {
		readings, err = s.readings.FindAll(ctx)
	}
	if err != nil {
		return models.StatsSummary{}, storeError("stats summary", err)
	}
	return Aggregate(readings), nil
}

// meanAccumulator tracks a running mean over present values only.
type meanAccumulator struct {
	sum float64
	n   int
}

func (a *meanAccumulator) add(value *float64) {
	if value != nil {
		a.sum += *value
		a.n++
	}
}

// value returns nil when no values were present, never NaN or zero.
func (a *meanAccumulator) value() *float64 {
	if a.n == 0 {
		return nil
	}
	mean := a.sum / float64(a.n)
	return &mean
}

// Aggregate computes entry count, distinct device count, and per-field
// averages. Absent values are excluded from both numerator and denominator.
func Aggregate(readings []models.Reading) models.StatsSummary {
	devices := make(map[string]struct{})
	var temperature, humidity, gas, heartRate, noiseLevel, deviceBattery, auxiliaryBattery, steps meanAccumulator

	for _, reading := range readings {
		devices[reading.DeviceID] = struct{}{}
		temperature.add(reading.Temperature)
		humidity.add(reading.Humidity)
		gas.add(reading.Gas)
		heartRate.add(reading.HeartRate)
		noiseLevel.add(reading.NoiseLevel)
		deviceBattery.add(reading.DeviceBattery)
		auxiliaryBattery.add(reading.AuxiliaryBattery)
		steps.add(reading.Steps)
	}

	return models.StatsSummary{
		TotalEntries: len(readings),
		DeviceCount:  len(devices),
		Averages: models.Averages{
			AvgTemperature:      temperature.value(),
			AvgHumidity:         humidity.value(),
			AvgGas:              gas.value(),
			AvgHeartRate:        heartRate.value(),
			AvgNoiseLevel:       noiseLevel.value(),
			AvgDeviceBattery:    deviceBattery.value(),
			AvgAuxiliaryBattery: auxiliaryBattery.value(),
			AvgSteps:            steps.value(),
		},
	}
}
