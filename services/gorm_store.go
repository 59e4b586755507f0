package services

import (
	"errors"
	"time"

	"github.com/rajwani-7/Mediguard/models"

	"gorm.io/gorm"
)

type GormMedicineStore struct {
	db *gorm.DB
}

func NewGormMedicineStore(db *gorm.DB) *GormMedicineStore {
	return &GormMedicineStore{db: db}
}

func (s *GormMedicineStore) Get(id uint) (*models.Medicine, error) {
	var med models.Medicine
	if err := s.db.First(&med, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &med, nil
}

func (s *GormMedicineStore) SetVerified(id uint, verdict string) error {
	return s.db.Model(&models.Medicine{}).
		Where("id = ?", id).
		Update("verified", verdict).Error
}

type GormReminderStore struct {
	db *gorm.DB
}

func NewGormReminderStore(db *gorm.DB) *GormReminderStore {
	return &GormReminderStore{db: db}
}

func (s *GormReminderStore) CreateBatch(reminders []models.Reminder) error {
	if len(reminders) == 0 {
		return nil
	}
	return s.db.Create(&reminders).Error
}

func (s *GormReminderStore) Get(id uint) (*models.Reminder, error) {
	var r models.Reminder
	if err := s.db.First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

func (s *GormReminderStore) ListByMedicine(medicineID uint) ([]models.Reminder, error) {
	var out []models.Reminder
	err := s.db.
		Where("medicine_id = ?", medicineID).
		Order("remind_at").
		Find(&out).Error
	return out, err
}

func (s *GormReminderStore) ListDueBefore(status string, cutoff time.Time) ([]models.Reminder, error) {
	var out []models.Reminder
	err := s.db.
		Where("status = ? AND remind_at <= ?", status, cutoff).
		Order("remind_at").
		Find(&out).Error
	return out, err
}

// Transition is the compare-and-set for reminder status: the UPDATE is
// guarded by the current status, so of two racing writers only the
// first commits and the second sees RowsAffected == 0.
func (s *GormReminderStore) Transition(id uint, from []string, to string) (bool, error) {
	res := s.db.Model(&models.Reminder{}).
		Where("id = ? AND status IN ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *GormReminderStore) DeleteIDs(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return s.db.Delete(&models.Reminder{}, ids).Error
}

func (s *GormReminderStore) DeleteNonTerminal(medicineID uint) error {
	return s.db.
		Where("medicine_id = ? AND status IN ?", medicineID, models.NonTerminalStatuses).
		Delete(&models.Reminder{}).Error
}

func (s *GormReminderStore) DeleteAll(medicineID uint) error {
	return s.db.
		Where("medicine_id = ?", medicineID).
		Delete(&models.Reminder{}).Error
}

type GormVerificationStore struct {
	db *gorm.DB
}

func NewGormVerificationStore(db *gorm.DB) *GormVerificationStore {
	return &GormVerificationStore{db: db}
}

func (s *GormVerificationStore) Append(entry *models.AuthenticityLog) error {
	return s.db.Create(entry).Error
}

func (s *GormVerificationStore) ListByUser(userID uint, limit int) ([]models.AuthenticityLog, error) {
	if limit <= 0 {
		limit = 20
	}
	var out []models.AuthenticityLog
	err := s.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}
