package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name     string `gorm:"size:120;not null"`
	Username string `gorm:"size:80;uniqueIndex;not null"`
	Email    string `gorm:"size:120;uniqueIndex;not null"`
	Password string `gorm:"not null"`
	Phone    string `gorm:"size:20"`
}
