package models

import "time"

// Device binds a caller-supplied identifier (e.g. "SENTINEL-001") to the
// account that first requested a token for it. The identifier is immutable
// and the binding is never reassigned.
type Device struct {
	DeviceID  string    `json:"device_id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	CreatedAt time.Time `json:"createdAt"`
}
