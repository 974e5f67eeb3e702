package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"sentinel-backend/internal/models"
)

// GormDeviceRepository implements DeviceRepository on a relational database.
type GormDeviceRepository struct {
	db *gorm.DB
}

func NewGormDeviceRepository(db *gorm.DB) *GormDeviceRepository {
	return &GormDeviceRepository{db: db}
}

func (r *GormDeviceRepository) Create(ctx context.Context, device *models.Device) error {
	if err := r.db.WithContext(ctx).Create(device).Error; err != nil {
		return fmt.Errorf("create device: %w", err)
	}
	return nil
}

func (r *GormDeviceRepository) FindByID(ctx context.Context, deviceID string) (*models.Device, error) {
	var device models.Device
	err := r.db.WithContext(ctx).Where("device_id = ?", deviceID).First(&device).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find device: %w", err)
	}
	return &device, nil
}

func (r *GormDeviceRepository) DeleteByOwner(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Device{}).Error; err != nil {
		return fmt.Errorf("delete devices by owner: %w", err)
	}
	return nil
}
