package services

import (
	"math"
	"time"

	"github.com/rajwani-7/Mediguard/config"
	"github.com/rajwani-7/Mediguard/models"
)

// GetDashboard assembles the home-screen summary: reminders due in the
// next 24 hours, the latest prescriptions, and verification stats over
// the user's medicines.
func GetDashboard(userID uint) (map[string]interface{}, error) {
	now := time.Now()
	tomorrow := now.Add(24 * time.Hour)

	var upcoming []models.Reminder
	if err := config.DB.
		Where("user_id = ? AND status IN ? AND remind_at >= ? AND remind_at <= ?",
			userID, models.NonTerminalStatuses, now, tomorrow).
		Order("remind_at").
		Find(&upcoming).Error; err != nil {
		return nil, err
	}

	var recent []models.Prescription
	if err := config.DB.
		Preload("Medicines").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(3).
		Find(&recent).Error; err != nil {
		return nil, err
	}

	var meds []models.Medicine
	if err := config.DB.Where("user_id = ?", userID).Find(&meds).Error; err != nil {
		return nil, err
	}

	counts := map[string]int{}
	for _, m := range meds {
		counts[m.Verified]++
	}
	total := len(meds)
	verifiedPct := 0.0
	if total > 0 {
		verifiedPct = math.Round(float64(counts[VerdictValid])/float64(total)*1000) / 10
	}

	return map[string]interface{}{
		"upcoming_reminders":   upcoming,
		"recent_prescriptions": recent,
		"total_medicines":      total,
		"verified_count":       counts[VerdictValid],
		"fake_count":           counts[VerdictFake],
		"suspicious_count":     counts[VerdictSuspicious],
		"unverified_count":     counts[VerdictUnverified],
		"verified_percentage":  verifiedPct,
	}, nil
}

// ListUserReminders pages through a user's reminders, newest first.
func ListUserReminders(userID uint, page, perPage int) ([]models.Reminder, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 15
	}

	var total int64
	if err := config.DB.Model(&models.Reminder{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []models.Reminder
	err := config.DB.
		Where("user_id = ?", userID).
		Order("remind_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&out).Error
	return out, total, err
}

// UpcomingReminders lists non-terminal reminders within the window.
func UpcomingReminders(userID uint, within time.Duration) ([]models.Reminder, error) {
	now := time.Now()
	var out []models.Reminder
	err := config.DB.
		Where("user_id = ? AND status IN ? AND remind_at >= ? AND remind_at <= ?",
			userID, models.NonTerminalStatuses, now, now.Add(within)).
		Order("remind_at").
		Find(&out).Error
	return out, err
}
