package models

import "time"

// AuthenticityLog records one verification scan. Rows are append-only:
// every scan writes exactly one entry and nothing ever updates or
// deletes it, so the table is the full audit trail.
type AuthenticityLog struct {
	ID           uint   `gorm:"primaryKey"`
	UserID       uint   `gorm:"index"`
	MedicineID   *uint  `gorm:"index"`
	Code         string `gorm:"size:255"`
	Batch        string `gorm:"size:255"`
	Expiry       string `gorm:"size:50"`
	Manufacturer string `gorm:"size:255"`
	Status       string `gorm:"size:50;not null"` // "valid" | "fake" | "suspicious" | "unverified"
	Details      string `gorm:"type:text"`
	CreatedAt    time.Time
}
