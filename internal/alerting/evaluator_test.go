package alerting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentinel-backend/internal/models"
)

func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

func TestEvaluateRulePriorityAndSingleAlertPerReading(t *testing.T) {
	now := time.Now()
	readings := []models.Reading{
		{
			DeviceID:     "SENTINEL-001",
			CreatedAt:    now,
			Gas:          floatPtr(1200),
			NoiseLevel:   floatPtr(10),
			FallDetected: boolPtr(false),
		},
		{
			DeviceID:     "SENTINEL-001",
			CreatedAt:    now.Add(-time.Minute),
			Gas:          floatPtr(0),
			NoiseLevel:   floatPtr(150),
			FallDetected: boolPtr(true),
		},
	}

	alerts := Evaluate(readings)
	require.Len(t, alerts, 2)

	// First reading: only the gas rule triggered.
	assert.Equal(t, models.AlertTypeGas, alerts[0].Type)
	assert.Equal(t, 1200.0, *alerts[0].Value)
	assert.Equal(t, "High gas level detected", alerts[0].Message)

	// Second reading: noise and fall both exceeded, but the noise rule is
	// checked first and wins.
	assert.Equal(t, models.AlertTypeNoise, alerts[1].Type)
	assert.Equal(t, 150.0, *alerts[1].Value)
}

func TestEvaluateFallAlertHasNullValue(t *testing.T) {
	readings := []models.Reading{
		{DeviceID: "SENTINEL-002", CreatedAt: time.Now(), FallDetected: boolPtr(true)},
	}

	alerts := Evaluate(readings)
	require.Len(t, alerts, 1)
	assert.Equal(t, models.AlertTypeFall, alerts[0].Type)
	assert.Nil(t, alerts[0].Value)
	assert.Equal(t, "Fall detected", alerts[0].Message)
}

func TestEvaluateThresholdsAreExclusive(t *testing.T) {
	// Values exactly at the threshold do not trigger.
	readings := []models.Reading{
		{DeviceID: "d", Gas: floatPtr(1000), NoiseLevel: floatPtr(100), FallDetected: boolPtr(false)},
	}

	assert.Empty(t, Evaluate(readings))
}

func TestEvaluateSkipsQuietReadingsAndAbsentFields(t *testing.T) {
	readings := []models.Reading{
		{DeviceID: "d1", Temperature: floatPtr(21)},
		{DeviceID: "d2"},
		{DeviceID: "d3", NoiseLevel: floatPtr(120)},
	}

	alerts := Evaluate(readings)
	require.Len(t, alerts, 1)
	assert.Equal(t, "d3", alerts[0].DeviceID)
}

func TestEvaluatePreservesInputOrder(t *testing.T) {
	readings := []models.Reading{
		{DeviceID: "newest", Gas: floatPtr(1500)},
		{DeviceID: "middle", NoiseLevel: floatPtr(130)},
		{DeviceID: "oldest", FallDetected: boolPtr(true)},
	}

	alerts := Evaluate(readings)
	require.Len(t, alerts, 3)
	assert.Equal(t, "newest", alerts[0].DeviceID)
	assert.Equal(t, "middle", alerts[1].DeviceID)
	assert.Equal(t, "oldest", alerts[2].DeviceID)
}
