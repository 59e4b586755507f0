package services

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/rajwani-7/Mediguard/config"
	"github.com/rajwani-7/Mediguard/models"
)

// ReminderNotifier delivers a reminder that just came due. The scan
// loop fires it after the status transition committed, so a delivery
// failure can never un-commit a transition.
type ReminderNotifier interface {
	NotifyDue(r *models.Reminder)
}

// SchedulerService advances reminder state on a fixed tick, off the
// request path. Each tick scans the store and commits per-entry
// transitions via compare-and-set; a tick that is still running when
// the next one fires makes the next one a no-op, so at most one scan is
// ever active.
type SchedulerService struct {
	store    ReminderStore
	notifier ReminderNotifier
	interval time.Duration
	grace    time.Duration
	now      func() time.Time
	scanning atomic.Bool
	stop     chan struct{}
}

func NewSchedulerService(store ReminderStore, notifier ReminderNotifier, cfg *config.Settings) *SchedulerService {
	return &SchedulerService{
		store:    store,
		notifier: notifier,
		interval: cfg.ScanInterval,
		grace:    cfg.GraceWindow,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
}

// Start runs the scan loop until the context is cancelled or Stop is
// called. Meant to run in its own goroutine.
func (s *SchedulerService) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Printf("Reminder scheduler started (interval %s, grace %s)", s.interval, s.grace)
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stop:
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

func (s *SchedulerService) Stop() {
	close(s.stop)
}

// Tick performs one scan. Entries are processed independently: a
// failed transition on one entry is logged and retried on the next
// tick, the rest of the scan continues.
func (s *SchedulerService) Tick() {
	if !s.scanning.CompareAndSwap(false, true) {
		return // previous scan still running
	}
	defer s.scanning.Store(false)

	now := s.now()

	pending, err := s.store.ListDueBefore(models.ReminderPending, now)
	if err != nil {
		log.Printf("Reminder scan: listing pending failed: %v", err)
		return
	}
	for _, r := range pending {
		ok, err := s.store.Transition(r.ID, []string{models.ReminderPending}, models.ReminderDue)
		if err != nil {
			log.Printf("Reminder scan: reminder %d pending->due failed: %v", r.ID, err)
			continue
		}
		// notify only entries still inside the grace window; anything
		// older is about to be marked missed below
		if ok && s.notifier != nil && now.Sub(r.RemindAt) <= s.grace {
			r.Status = models.ReminderDue
			s.notifier.NotifyDue(&r)
		}
	}

	lateCutoff := now.Add(-s.grace)
	late, err := s.store.ListDueBefore(models.ReminderDue, lateCutoff)
	if err != nil {
		log.Printf("Reminder scan: listing overdue failed: %v", err)
		return
	}
	for _, r := range late {
		if now.Sub(r.RemindAt) <= s.grace {
			continue
		}
		if _, err := s.store.Transition(r.ID, []string{models.ReminderDue}, models.ReminderMissed); err != nil {
			log.Printf("Reminder scan: reminder %d due->missed failed: %v", r.ID, err)
		}
	}
}
