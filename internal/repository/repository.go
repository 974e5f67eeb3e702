// Package repository defines the persistence contracts consumed by the
// service layer and their concrete implementations. Services depend on the
// interfaces only, so tests substitute in-memory fakes.
package repository

import (
	"context"
	"errors"
	"time"

	"sentinel-backend/internal/models"
)

// ErrNotFound is returned when a referenced entity does not exist.
var ErrNotFound = errors.New("record not found")

// UserRepository is the credential store for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
}

// DeviceRepository holds device-to-owner bindings.
type DeviceRepository interface {
	Create(ctx context.Context, device *models.Device) error
	FindByID(ctx context.Context, deviceID string) (*models.Device, error)
	DeleteByOwner(ctx context.Context, userID uint) error
}

// ReadingRepository is the append-only store for normalized readings.
type ReadingRepository interface {
	Insert(ctx context.Context, reading models.Reading) (models.Reading, error)
	// LatestPerDevice returns the most recent reading of each device owned
	// by the given account, newest first.
	LatestPerDevice(ctx context.Context, ownerID uint) ([]models.Reading, error)
	// FindByDeviceAndRange returns readings within [start, end] inclusive,
	// ordered by creation timestamp descending.
	FindByDeviceAndRange(ctx context.Context, ownerID uint, deviceID string, start, end time.Time) ([]models.Reading, error)
	FindAllForOwner(ctx context.Context, ownerID uint) ([]models.Reading, error)
	// FindAll returns the full reading set across owners (global stats).
	FindAll(ctx context.Context) ([]models.Reading, error)
}

// ResetTokenStore keeps single-use password-reset tokens with a TTL.
type ResetTokenStore interface {
	Save(ctx context.Context, token string, userID uint, ttl time.Duration) error
	// Consume looks up and invalidates the token in one step.
	Consume(ctx context.Context, token string) (uint, error)
}
