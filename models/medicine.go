package models

import (
	"gorm.io/gorm"
)

// Medicine is a single dosing plan extracted from a prescription.
// Timing is either a comma-separated list of slot names
// ("morning,night") or a dash frequency code ("1-0-1").
type Medicine struct {
	gorm.Model
	PrescriptionID *uint  `gorm:"index"`
	UserID         uint   `gorm:"index;not null"`
	Name           string `gorm:"size:255;not null"`
	Dosage         string `gorm:"size:128;not null"`
	Timing         string `gorm:"size:128;not null"`
	Duration       int    `gorm:"not null"` // days
	Verified       string `gorm:"size:50;default:unverified"` // "valid" | "fake" | "suspicious" | "unverified"

	Reminders []Reminder
}
