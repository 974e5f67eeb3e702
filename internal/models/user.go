package models

import "time"

// User is a registered account. Every reading is attributed to exactly one
// user, either directly (user token) or through a device binding.
type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Username    string    `json:"username" gorm:"uniqueIndex;not null"`
	Password    string    `json:"-" gorm:"not null"`
	Email       *string   `json:"email,omitempty" gorm:"uniqueIndex"`
	PhoneNumber *string   `json:"phone_number,omitempty"`
	Workplace   *string   `json:"workplace,omitempty"`
	JobTitle    *string   `json:"job_title,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
