package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rajwani-7/Mediguard/config"
	"github.com/rajwani-7/Mediguard/models"
)

type recordingNotifier struct {
	mu    sync.Mutex
	fired []uint
}

func (n *recordingNotifier) NotifyDue(r *models.Reminder) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.fired = append(n.fired, r.ID)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.fired)
}

func newTestScheduler(store ReminderStore, notifier ReminderNotifier, now time.Time) *SchedulerService {
	s := NewSchedulerService(store, notifier, config.DefaultSettings())
	s.now = func() time.Time { return now }
	return s
}

func TestTickPromotesPendingToDue(t *testing.T) {
	store := newMemReminderStore()
	now := time.Date(2025, 6, 10, 8, 5, 0, 0, time.UTC)
	notifier := &recordingNotifier{}
	sched := newTestScheduler(store, notifier, now)

	store.CreateBatch([]models.Reminder{
		{MedicineID: 1, UserID: 1, RemindAt: now.Add(-5 * time.Minute), Status: models.ReminderPending},
		{MedicineID: 1, UserID: 1, RemindAt: now.Add(time.Hour), Status: models.ReminderPending},
	})

	sched.Tick()

	counts := store.countByStatus()
	if counts[models.ReminderDue] != 1 || counts[models.ReminderPending] != 1 {
		t.Errorf("counts = %v, want one due and one still pending", counts)
	}
	if notifier.count() != 1 {
		t.Errorf("notifications fired = %d, want 1", notifier.count())
	}
}

func TestTickMarksLongOverduePendingMissed(t *testing.T) {
	store := newMemReminderStore()
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	notifier := &recordingNotifier{}
	sched := newTestScheduler(store, notifier, now)

	// three hours past with a two hour grace window: promoted and
	// retired within the same scan, no notification
	store.CreateBatch([]models.Reminder{
		{MedicineID: 1, UserID: 1, RemindAt: now.Add(-3 * time.Hour), Status: models.ReminderPending},
	})

	sched.Tick()

	counts := store.countByStatus()
	if counts[models.ReminderMissed] != 1 {
		t.Errorf("counts = %v, want the entry missed", counts)
	}
	if notifier.count() != 0 {
		t.Errorf("stale entry produced %d notifications", notifier.count())
	}
}

func TestTickLeavesDueInsideGrace(t *testing.T) {
	store := newMemReminderStore()
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	sched := newTestScheduler(store, nil, now)

	store.CreateBatch([]models.Reminder{
		{MedicineID: 1, UserID: 1, RemindAt: now.Add(-90 * time.Minute), Status: models.ReminderDue},
		// exactly at the grace boundary still counts as in time
		{MedicineID: 1, UserID: 1, RemindAt: now.Add(-2 * time.Hour), Status: models.ReminderDue},
		{MedicineID: 1, UserID: 1, RemindAt: now.Add(-2*time.Hour - time.Minute), Status: models.ReminderDue},
	})

	sched.Tick()

	counts := store.countByStatus()
	if counts[models.ReminderDue] != 2 {
		t.Errorf("counts = %v, want two entries still due", counts)
	}
	if counts[models.ReminderMissed] != 1 {
		t.Errorf("counts = %v, want one missed", counts)
	}
}

func TestTickDoesNotOverwriteUserOutcome(t *testing.T) {
	store := newMemReminderStore()
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	sched := newTestScheduler(store, nil, now)

	// user marked it taken after it came due but before this scan
	store.CreateBatch([]models.Reminder{
		{MedicineID: 1, UserID: 1, RemindAt: now.Add(-4 * time.Hour), Status: models.ReminderTaken},
	})

	sched.Tick()

	counts := store.countByStatus()
	if counts[models.ReminderTaken] != 1 || counts[models.ReminderMissed] != 0 {
		t.Errorf("counts = %v, taken outcome must survive the scan", counts)
	}
}

func TestTickSkipsWhenScanRunning(t *testing.T) {
	store := newMemReminderStore()
	now := time.Date(2025, 6, 10, 8, 5, 0, 0, time.UTC)
	notifier := &recordingNotifier{}
	sched := newTestScheduler(store, notifier, now)

	store.CreateBatch([]models.Reminder{
		{MedicineID: 1, UserID: 1, RemindAt: now.Add(-5 * time.Minute), Status: models.ReminderPending},
	})

	sched.scanning.Store(true)
	sched.Tick()
	if counts := store.countByStatus(); counts[models.ReminderPending] != 1 {
		t.Errorf("overlapping tick still scanned: %v", counts)
	}

	sched.scanning.Store(false)
	sched.Tick()
	if counts := store.countByStatus(); counts[models.ReminderDue] != 1 {
		t.Errorf("tick after release did not scan: %v", counts)
	}
}

func TestTickRetriesFailedEntriesNextScan(t *testing.T) {
	store := newMemReminderStore()
	now := time.Date(2025, 6, 10, 8, 5, 0, 0, time.UTC)
	notifier := &recordingNotifier{}
	sched := newTestScheduler(store, notifier, now)

	store.CreateBatch([]models.Reminder{
		{MedicineID: 1, UserID: 1, RemindAt: now.Add(-5 * time.Minute), Status: models.ReminderPending},
	})

	store.transitionErr = errors.New("connection reset")
	sched.Tick()
	if counts := store.countByStatus(); counts[models.ReminderPending] != 1 {
		t.Errorf("failed transition changed state: %v", counts)
	}
	if notifier.count() != 0 {
		t.Errorf("failed transition still notified")
	}

	store.transitionErr = nil
	sched.Tick()
	if counts := store.countByStatus(); counts[models.ReminderDue] != 1 {
		t.Errorf("entry not picked up on the next scan: %v", counts)
	}
	if notifier.count() != 1 {
		t.Errorf("notifications = %d, want 1", notifier.count())
	}
}
