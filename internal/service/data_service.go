package service

import (
	"context"
	"time"

	"sentinel-backend/internal/alerting"
	"sentinel-backend/internal/auth"
	"sentinel-backend/internal/models"
	"sentinel-backend/internal/repository"
	"sentinel-backend/internal/validation"
)

// DefaultHistoryWindow is the lookback applied when a history query omits
// explicit bounds.
const DefaultHistoryWindow = 24 * time.Hour

// DataService is the ingestion and read pipeline: attribute, validate,
// persist, and derive alerts from stored readings.
type DataService struct {
	readings       repository.ReadingRepository
	trustBodyOwner bool
	now            func() time.Time
}

func NewDataService(readings repository.ReadingRepository, trustBodyOwner bool) *DataService {
	return &DataService{
		readings:       readings,
		trustBodyOwner: trustBodyOwner,
		now:            time.Now,
	}
}

// Ingest attributes and validates a payload, then appends the normalized
// reading. Attribution and validation failures return before any store
// access.
func (s *DataService) Ingest(ctx context.Context, claims *auth.Claims, payload models.SensorPayload) (models.Reading, error) {
	ownerID, err := ResolveOwner(claims, payload.UserID, s.trustBodyOwner)
	if err != nil {
		return models.Reading{}, err
	}

	reading, err := validation.NormalizeReading(payload, s.now())
	if err != nil {
		return models.Reading{}, err
	}
	reading.UserID = ownerID

	stored, err := s.readings.Insert(ctx, reading)
	if err != nil {
		return models.Reading{}, storeError("insert reading", err)
	}
	return stored, nil
}

// Latest returns the most recent reading per device for the token's owner.
func (s *DataService) Latest(ctx context.Context, claims *auth.Claims) ([]models.Reading, error) {
	readings, err := s.readings.LatestPerDevice(ctx, claims.UserID)
	if err != nil {
		return nil, storeError("latest readings", err)
	}
	return readings, nil
}

// History returns the device's readings in the requested range, newest
// first. Omitted bounds default to the last 24 hours.
func (s *DataService) History(ctx context.Context, claims *auth.Claims, deviceID string, start, end *time.Time) ([]models.Reading, error) {
	now := s.now()
	from := now.Add(-DefaultHistoryWindow)
	to := now
	if start != nil {
		from = *start
	}
	if end != nil {
		to = *end
	}

	readings, err := s.readings.FindByDeviceAndRange(ctx, claims.UserID, deviceID, from, to)
	if err != nil {
		return nil, storeError("device history", err)
	}
	return readings, nil
}

// Alerts evaluates the fixed threshold rules over the owner's readings.
func (s *DataService) Alerts(ctx context.Context, claims *auth.Claims) ([]models.Alert, error) {
	readings, err := s.readings.FindAllForOwner(ctx, claims.UserID)
	if err != nil {
		return nil, storeError("alerts", err)
	}
	return alerting.Evaluate(readings), nil
}
