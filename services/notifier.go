package services

import (
	"fmt"
	"log"

	"github.com/rajwani-7/Mediguard/models"
	"github.com/rajwani-7/Mediguard/utils"

	"gorm.io/gorm"
)

// FanoutNotifier delivers a due reminder over every configured channel:
// websocket broadcast, SNS push, and an SES email fallback for users
// with no enabled device. Channels are optional; a nil one is skipped.
type FanoutNotifier struct {
	db   *gorm.DB
	hub  *RealtimeHub
	push *PushService
}

func NewFanoutNotifier(db *gorm.DB, hub *RealtimeHub, push *PushService) *FanoutNotifier {
	return &FanoutNotifier{db: db, hub: hub, push: push}
}

func (n *FanoutNotifier) NotifyDue(r *models.Reminder) {
	var med models.Medicine
	if err := n.db.First(&med, r.MedicineID).Error; err != nil {
		log.Printf("Notify: medicine %d not found for reminder %d", r.MedicineID, r.ID)
		return
	}

	body := fmt.Sprintf("Time to take %s (%s)", med.Name, med.Dosage)

	if n.hub != nil {
		n.hub.Broadcast(r.UserID, "reminder.due", map[string]any{
			"reminder": r,
			"medicine": med.Name,
			"dosage":   med.Dosage,
		})
	}

	pushed := false
	if n.push != nil && n.push.HasEnabledDevice(r.UserID) {
		n.push.PushToUser(r.UserID, "Medicine reminder", body, map[string]string{
			"reminderId": fmt.Sprintf("%d", r.ID),
			"medicineId": fmt.Sprintf("%d", med.ID),
		})
		pushed = true
	}

	if !pushed {
		var user models.User
		if err := n.db.First(&user, r.UserID).Error; err == nil {
			if err := utils.SendReminderEmail(user.Email, med.Name, med.Dosage, r.RemindAt); err != nil {
				log.Printf("Notify: email fallback for reminder %d failed: %v", r.ID, err)
			}
		}
	}

	log.Printf("[REMINDER] User %d: time to take %s (reminder %d, scheduled %s)",
		r.UserID, med.Name, r.ID, r.RemindAt.Format("2006-01-02 15:04"))
}
