package model

import "time"

// Slot is one named blob in durable storage.
type Slot struct {
	Key       string `gorm:"primaryKey"`
	Value     string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
