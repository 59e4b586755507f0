package services

import (
	"sort"
	"sync"
	"time"

	"github.com/rajwani-7/Mediguard/models"
)

// -------------------------
// In-memory store fakes
// -------------------------

type memReminderStore struct {
	mu     sync.Mutex
	nextID uint
	items  map[uint]*models.Reminder

	transitionErr error // when set, Transition fails without changing state
}

func newMemReminderStore() *memReminderStore {
	return &memReminderStore{items: map[uint]*models.Reminder{}}
}

func (m *memReminderStore) CreateBatch(reminders []models.Reminder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range reminders {
		m.nextID++
		r := reminders[i]
		r.ID = m.nextID
		m.items[r.ID] = &r
	}
	return nil
}

func (m *memReminderStore) Get(id uint) (*models.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memReminderStore) ListByMedicine(medicineID uint) ([]models.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Reminder
	for _, r := range m.items {
		if r.MedicineID == medicineID {
			out = append(out, *r)
		}
	}
	sortByTime(out)
	return out, nil
}

func (m *memReminderStore) ListDueBefore(status string, cutoff time.Time) ([]models.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Reminder
	for _, r := range m.items {
		if r.Status == status && !r.RemindAt.After(cutoff) {
			out = append(out, *r)
		}
	}
	sortByTime(out)
	return out, nil
}

func (m *memReminderStore) Transition(id uint, from []string, to string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.transitionErr != nil {
		return false, m.transitionErr
	}
	r, ok := m.items[id]
	if !ok {
		return false, nil
	}
	for _, f := range from {
		if r.Status == f {
			r.Status = to
			return true, nil
		}
	}
	return false, nil
}

func (m *memReminderStore) DeleteIDs(ids []uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		delete(m.items, id)
	}
	return nil
}

func (m *memReminderStore) DeleteNonTerminal(medicineID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, r := range m.items {
		if r.MedicineID == medicineID && !models.IsTerminalStatus(r.Status) {
			delete(m.items, id)
		}
	}
	return nil
}

func (m *memReminderStore) DeleteAll(medicineID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, r := range m.items {
		if r.MedicineID == medicineID {
			delete(m.items, id)
		}
	}
	return nil
}

func (m *memReminderStore) all() []models.Reminder {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Reminder
	for _, r := range m.items {
		out = append(out, *r)
	}
	sortByTime(out)
	return out
}

func (m *memReminderStore) countByStatus() map[string]int {
	counts := map[string]int{}
	for _, r := range m.all() {
		counts[r.Status]++
	}
	return counts
}

func sortByTime(rs []models.Reminder) {
	sort.Slice(rs, func(i, j int) bool { return rs[i].RemindAt.Before(rs[j].RemindAt) })
}

type memVerificationStore struct {
	mu      sync.Mutex
	entries []models.AuthenticityLog
}

func (m *memVerificationStore) Append(entry *models.AuthenticityLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry.ID = uint(len(m.entries) + 1)
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *memVerificationStore) ListByUser(userID uint, limit int) ([]models.AuthenticityLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.AuthenticityLog
	for i := len(m.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if m.entries[i].UserID == userID {
			out = append(out, m.entries[i])
		}
	}
	return out, nil
}

type memMedicineStore struct {
	mu   sync.Mutex
	meds map[uint]*models.Medicine
}

func newMemMedicineStore() *memMedicineStore {
	return &memMedicineStore{meds: map[uint]*models.Medicine{}}
}

func (m *memMedicineStore) Get(id uint) (*models.Medicine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	med, ok := m.meds[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *med
	return &cp, nil
}

func (m *memMedicineStore) SetVerified(id uint, verdict string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if med, ok := m.meds[id]; ok {
		med.Verified = verdict
	}
	return nil
}
