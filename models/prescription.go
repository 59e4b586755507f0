package models

import (
	"gorm.io/gorm"
)

// Prescription is one uploaded prescription image plus the raw OCR text
// that was extracted from it.
type Prescription struct {
	gorm.Model
	UserID   uint   `gorm:"index;not null"`
	Filename string `gorm:"size:255;not null"`
	ImageURL string `gorm:"size:500"`
	RawText  string `gorm:"type:text"`

	Medicines []Medicine
}
