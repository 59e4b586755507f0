package models

import (
	"time"

	"gorm.io/gorm"
)

// Reminder statuses. Taken, skipped and missed are terminal: once an
// entry reaches one of them no further transition is allowed.
const (
	ReminderPending = "pending"
	ReminderDue     = "due"
	ReminderTaken   = "taken"
	ReminderSkipped = "skipped"
	ReminderMissed  = "missed"
)

// NonTerminalStatuses are the statuses a reminder may still leave.
var NonTerminalStatuses = []string{ReminderPending, ReminderDue}

type Reminder struct {
	gorm.Model
	MedicineID uint      `gorm:"index;not null"`
	UserID     uint      `gorm:"index;not null"`
	RemindAt   time.Time `gorm:"index;not null"`
	Status     string    `gorm:"size:20;default:pending"`
}

func IsTerminalStatus(s string) bool {
	return s == ReminderTaken || s == ReminderSkipped || s == ReminderMissed
}
