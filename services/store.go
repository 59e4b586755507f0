package services

import (
	"errors"
	"time"

	"github.com/rajwani-7/Mediguard/models"
)

// Store interfaces keep the core logic independent of gorm: the planner
// and the scan loop only ever see these, so tests run them against
// in-memory fakes and production wires the gorm versions from
// gorm_store.go.

var ErrNotFound = errors.New("record not found")

type MedicineStore interface {
	Get(id uint) (*models.Medicine, error)
	SetVerified(id uint, verdict string) error
}

type ReminderStore interface {
	CreateBatch(reminders []models.Reminder) error
	Get(id uint) (*models.Reminder, error)
	// ListByMedicine returns every entry for a medicine ordered by
	// scheduled instant.
	ListByMedicine(medicineID uint) ([]models.Reminder, error)
	// ListDueBefore returns entries in the given status scheduled at or
	// before the cutoff, ordered by scheduled instant.
	ListDueBefore(status string, cutoff time.Time) ([]models.Reminder, error)
	// Transition commits a status change only if the entry is still in
	// one of the from statuses. Returns false when the entry was
	// already finalized by a competing writer.
	Transition(id uint, from []string, to string) (bool, error)
	DeleteIDs(ids []uint) error
	// DeleteNonTerminal removes a medicine's pending and due entries.
	DeleteNonTerminal(medicineID uint) error
	// DeleteAll removes every entry for a medicine, audit rows included.
	DeleteAll(medicineID uint) error
}

type VerificationStore interface {
	// Append inserts one audit row. Rows are never updated or deleted.
	Append(entry *models.AuthenticityLog) error
	ListByUser(userID uint, limit int) ([]models.AuthenticityLog, error)
}
