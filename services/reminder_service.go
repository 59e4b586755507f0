package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rajwani-7/Mediguard/config"
	"github.com/rajwani-7/Mediguard/models"
)

var (
	ErrInvalidDuration  = errors.New("duration must be at least one day")
	ErrAlreadyFinalized = errors.New("reminder already finalized")
	ErrInvalidOutcome   = errors.New("outcome must be taken or skipped")
)

// ReminderService plans reminder schedules for medicines and applies
// user actions to individual entries. It owns no background work; the
// scan loop lives in SchedulerService.
type ReminderService struct {
	store ReminderStore
	cfg   *config.Settings
	now   func() time.Time
}

func NewReminderService(store ReminderStore, cfg *config.Settings) *ReminderService {
	return &ReminderService{store: store, cfg: cfg, now: time.Now}
}

// Reschedule brings a medicine's reminder set in line with its current
// timing and duration. Used both for first generation (no existing
// entries) and after an edit. History is never rewritten:
//
//   - terminal entries (taken/skipped/missed) are untouched,
//   - non-terminal entries whose instant already passed are untouched,
//   - future non-terminal entries that still fit the new plan are kept
//     as-is, the rest are removed,
//   - only genuinely new instants are inserted.
//
// Running it twice without an intervening edit is therefore a no-op.
// Validation happens before any write, so a bad medicine leaves the
// store unchanged. start anchors the first day when the medicine has
// no reminders yet; afterwards the original anchor is kept.
func (s *ReminderService) Reschedule(med *models.Medicine, start time.Time) ([]models.Reminder, error) {
	if med.Duration <= 0 {
		return nil, ErrInvalidDuration
	}
	slots, err := ParseTimingPattern(med.Timing)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.ListByMedicine(med.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	anchor := startOfDay(start)
	if len(existing) > 0 {
		// keep the original schedule anchored to its first day
		anchor = startOfDay(existing[0].RemindAt)
	}

	desired := map[int64]time.Time{}
	for day := 0; day < med.Duration; day++ {
		for _, slot := range slots {
			at := anchor.AddDate(0, 0, day).Add(time.Duration(s.cfg.SlotMinutes(string(slot))) * time.Minute)
			desired[at.Unix()] = at
		}
	}

	var stale []uint
	occupied := map[int64]bool{}
	for _, r := range existing {
		key := r.RemindAt.Unix()
		if models.IsTerminalStatus(r.Status) || r.RemindAt.Before(now) {
			// history and past-due entries are preserved unchanged
			occupied[key] = true
			continue
		}
		if _, keep := desired[key]; keep {
			occupied[key] = true
			continue
		}
		stale = append(stale, r.ID)
	}

	var fresh []models.Reminder
	for key, at := range desired {
		if occupied[key] || !at.After(now) {
			continue
		}
		fresh = append(fresh, models.Reminder{
			MedicineID: med.ID,
			UserID:     med.UserID,
			RemindAt:   at,
			Status:     models.ReminderPending,
		})
	}
	sort.Slice(fresh, func(i, j int) bool { return fresh[i].RemindAt.Before(fresh[j].RemindAt) })

	if err := s.store.DeleteIDs(stale); err != nil {
		return nil, err
	}
	if err := s.store.CreateBatch(fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}

// RemoveForMedicine clears a deleted medicine's reminders. Terminal
// entries stay behind for the audit trail unless purge is set.
func (s *ReminderService) RemoveForMedicine(medicineID uint, purge bool) error {
	if purge {
		return s.store.DeleteAll(medicineID)
	}
	return s.store.DeleteNonTerminal(medicineID)
}

// Mark applies a user action to a reminder. The transition commits via
// compare-and-set: if the scan loop (or another request) finalized the
// entry first, the action is rejected as already finalized rather than
// overwriting the earlier outcome.
func (s *ReminderService) Mark(userID, reminderID uint, outcome string) (*models.Reminder, error) {
	if outcome != models.ReminderTaken && outcome != models.ReminderSkipped {
		return nil, ErrInvalidOutcome
	}

	r, err := s.store.Get(reminderID)
	if err != nil {
		return nil, err
	}
	if r.UserID != userID {
		return nil, ErrNotFound
	}

	ok, err := s.store.Transition(reminderID, models.NonTerminalStatuses, outcome)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: reminder %d", ErrAlreadyFinalized, reminderID)
	}
	r.Status = outcome
	return r, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
