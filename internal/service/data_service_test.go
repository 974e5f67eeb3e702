package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentinel-backend/internal/auth"
	"sentinel-backend/internal/models"
)

func f64(v float64) *float64 { return &v }

func deviceClaims(ownerID uint, deviceID string) *auth.Claims {
	return &auth.Claims{Kind: auth.TokenKindDevice, UserID: ownerID, DeviceID: deviceID}
}

func userClaims(userID uint) *auth.Claims {
	return &auth.Claims{Kind: auth.TokenKindUser, UserID: userID, Username: "alice"}
}

func TestIngestDeviceTokenOverridesBodyOwner(t *testing.T) {
	store := &fakeReadingRepo{}
	svc := NewDataService(store, false)

	bodyOwner := uint(99)
	payload := models.SensorPayload{
		DeviceID: "band-001",
		UserID:   &bodyOwner,
		Sensors:  &models.Sensors{Temperature: f64(36.6)},
	}

	stored, err := svc.Ingest(context.Background(), deviceClaims(7, "band-001"), payload)
	require.NoError(t, err)
	assert.Equal(t, uint(7), stored.UserID, "attribution comes from the token, never the body")
	require.Len(t, store.readings, 1)
	assert.Equal(t, uint(7), store.readings[0].UserID)
}

func TestIngestUserTokenAttributesToAccount(t *testing.T) {
	store := &fakeReadingRepo{}
	svc := NewDataService(store, false)

	payload := models.SensorPayload{
		DeviceID: "band-001",
		Sensors:  &models.Sensors{HeartRate: f64(72)},
	}

	stored, err := svc.Ingest(context.Background(), userClaims(3), payload)
	require.NoError(t, err)
	assert.Equal(t, uint(3), stored.UserID)
}

func TestIngestValidationFailureNeverReachesStore(t *testing.T) {
	store := &fakeReadingRepo{}
	svc := NewDataService(store, false)

	// Missing device_id and sensors.
	_, err := svc.Ingest(context.Background(), userClaims(3), models.SensorPayload{})
	var apiErr models.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, models.ErrorCodeValidationFailed, apiErr.Code)
	assert.Empty(t, store.readings, "invalid payloads must not be persisted")
}

func TestIngestPreservesSuppliedTimestamp(t *testing.T) {
	store := &fakeReadingRepo{}
	svc := NewDataService(store, false)

	payload := models.SensorPayload{
		DeviceID:  "band-001",
		Timestamp: "2026-08-27T10:15:00Z",
		Sensors:   &models.Sensors{Gas: f64(400)},
	}

	stored, err := svc.Ingest(context.Background(), userClaims(3), payload)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 27, 10, 15, 0, 0, time.UTC), stored.CreatedAt.UTC())
}

func TestHistoryDefaultsToLast24Hours(t *testing.T) {
	store := &fakeReadingRepo{}
	svc := NewDataService(store, false)
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	_, err := svc.History(context.Background(), userClaims(3), "band-001", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, now.Add(-24*time.Hour), store.lastStart)
	assert.Equal(t, now, store.lastEnd)
}

func TestHistoryHonorsExplicitBounds(t *testing.T) {
	store := &fakeReadingRepo{}
	svc := NewDataService(store, false)

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)
	_, err := svc.History(context.Background(), userClaims(3), "band-001", &start, &end)
	require.NoError(t, err)
	assert.Equal(t, start, store.lastStart)
	assert.Equal(t, end, store.lastEnd)
}

func TestHistoryBoundsAreInclusive(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	store := &fakeReadingRepo{readings: []models.Reading{
		{UserID: 3, DeviceID: "band-001", CreatedAt: start},
		{UserID: 3, DeviceID: "band-001", CreatedAt: end},
		{UserID: 3, DeviceID: "band-001", CreatedAt: end.Add(time.Second)},
	}}
	svc := NewDataService(store, false)

	readings, err := svc.History(context.Background(), userClaims(3), "band-001", &start, &end)
	require.NoError(t, err)
	assert.Len(t, readings, 2, "both endpoints belong to the range")
}

func TestHistoryScopedToTokenOwner(t *testing.T) {
	at := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	store := &fakeReadingRepo{readings: []models.Reading{
		{UserID: 3, DeviceID: "band-001", CreatedAt: at},
		{UserID: 4, DeviceID: "band-001", CreatedAt: at},
	}}
	svc := NewDataService(store, false)

	start := at.Add(-time.Hour)
	end := at.Add(time.Hour)
	readings, err := svc.History(context.Background(), userClaims(3), "band-001", &start, &end)
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.Equal(t, uint(3), readings[0].UserID)
}

func TestLatestReturnsNewestPerDevice(t *testing.T) {
	base := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	store := &fakeReadingRepo{readings: []models.Reading{
		{UserID: 3, DeviceID: "band-001", CreatedAt: base, Temperature: f64(36.0)},
		{UserID: 3, DeviceID: "band-001", CreatedAt: base.Add(time.Minute), Temperature: f64(37.0)},
		{UserID: 3, DeviceID: "band-002", CreatedAt: base.Add(2 * time.Minute)},
		{UserID: 9, DeviceID: "band-003", CreatedAt: base.Add(3 * time.Minute)},
	}}
	svc := NewDataService(store, false)

	readings, err := svc.Latest(context.Background(), userClaims(3))
	require.NoError(t, err)
	require.Len(t, readings, 2)
	assert.Equal(t, "band-002", readings[0].DeviceID)
	assert.Equal(t, "band-001", readings[1].DeviceID)
	require.NotNil(t, readings[1].Temperature)
	assert.Equal(t, 37.0, *readings[1].Temperature)
}

func TestAlertsEvaluatesStoredReadings(t *testing.T) {
	at := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	fell := true
	store := &fakeReadingRepo{readings: []models.Reading{
		{UserID: 3, DeviceID: "band-001", CreatedAt: at.Add(2 * time.Minute), Gas: f64(1500)},
		{UserID: 3, DeviceID: "band-001", CreatedAt: at.Add(time.Minute), FallDetected: &fell},
		{UserID: 3, DeviceID: "band-001", CreatedAt: at, Gas: f64(200)},
	}}
	svc := NewDataService(store, false)

	alerts, err := svc.Alerts(context.Background(), userClaims(3))
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, models.AlertTypeGas, alerts[0].Type)
	assert.Equal(t, models.AlertTypeFall, alerts[1].Type)
}

func TestIngestStoreFailureSurfacesAsStoreError(t *testing.T) {
	store := &fakeReadingRepo{err: errStoreDown}
	svc := NewDataService(store, false)

	_, err := svc.Ingest(context.Background(), userClaims(3), models.SensorPayload{
		DeviceID: "band-001",
		Sensors:  &models.Sensors{Gas: f64(10)},
	})
	var apiErr models.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, models.ErrorCodeStoreError, apiErr.Code)
}
