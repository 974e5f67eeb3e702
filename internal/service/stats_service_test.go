package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentinel-backend/internal/models"
)

func TestAggregateExcludesAbsentValues(t *testing.T) {
	readings := []models.Reading{
		{DeviceID: "band-001", Temperature: f64(20)},
		{DeviceID: "band-001"}, // no temperature reported
		{DeviceID: "band-002", Temperature: f64(30)},
	}

	summary := Aggregate(readings)

	assert.Equal(t, 3, summary.TotalEntries)
	assert.Equal(t, 2, summary.DeviceCount)
	require.NotNil(t, summary.Averages.AvgTemperature)
	assert.Equal(t, 25.0, *summary.Averages.AvgTemperature, "absent values stay out of the denominator")
}

func TestAggregateEmptySet(t *testing.T) {
	summary := Aggregate(nil)

	assert.Equal(t, 0, summary.TotalEntries)
	assert.Equal(t, 0, summary.DeviceCount)
	assert.Nil(t, summary.Averages.AvgTemperature)
	assert.Nil(t, summary.Averages.AvgHumidity)
	assert.Nil(t, summary.Averages.AvgGas)
	assert.Nil(t, summary.Averages.AvgHeartRate)
	assert.Nil(t, summary.Averages.AvgNoiseLevel)
	assert.Nil(t, summary.Averages.AvgDeviceBattery)
	assert.Nil(t, summary.Averages.AvgAuxiliaryBattery)
	assert.Nil(t, summary.Averages.AvgSteps)
}

func TestSummaryScopesToOwner(t *testing.T) {
	at := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	store := &fakeReadingRepo{readings: []models.Reading{
		{UserID: 3, DeviceID: "band-001", CreatedAt: at, HeartRate: f64(60)},
		{UserID: 3, DeviceID: "band-002", CreatedAt: at, HeartRate: f64(80)},
		{UserID: 9, DeviceID: "band-003", CreatedAt: at, HeartRate: f64(200)},
	}}
	svc := NewStatsService(store)
	ctx := context.Background()

	owner := uint(3)
	scoped, err := svc.Summary(ctx, &owner)
	require.NoError(t, err)
	assert.Equal(t, 2, scoped.TotalEntries)
	require.NotNil(t, scoped.Averages.AvgHeartRate)
	assert.Equal(t, 70.0, *scoped.Averages.AvgHeartRate)

	global, err := svc.Summary(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, global.TotalEntries)
	assert.Equal(t, 3, global.DeviceCount)
}

func TestSummaryStoreFailure(t *testing.T) {
	svc := NewStatsService(&fakeReadingRepo{err: errStoreDown})

	_, err := svc.Summary(context.Background(), nil)
	var apiErr models.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, models.ErrorCodeStoreError, apiErr.Code)
}
