package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rajwani-7/Mediguard/models"
	"github.com/rajwani-7/Mediguard/services"

	"github.com/gin-gonic/gin"
)

type ReminderController struct {
	Svc *services.ReminderService
}

func NewReminderController(svc *services.ReminderService) *ReminderController {
	return &ReminderController{Svc: svc}
}

func (rc *ReminderController) List(c *gin.Context) {
	uid := c.GetUint("userID")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	reminders, total, err := services.ListUserReminders(uid, page, 15)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reminders": reminders,
		"total":     total,
		"page":      page,
	})
}

func (rc *ReminderController) Upcoming(c *gin.Context) {
	uid := c.GetUint("userID")

	reminders, err := services.UpcomingReminders(uid, 24*time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reminders": reminders})
}

func (rc *ReminderController) MarkTaken(c *gin.Context) {
	rc.mark(c, models.ReminderTaken)
}

func (rc *ReminderController) Skip(c *gin.Context) {
	rc.mark(c, models.ReminderSkipped)
}

func (rc *ReminderController) mark(c *gin.Context, outcome string) {
	uid := c.GetUint("userID")
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	r, err := rc.Svc.Mark(uid, uint(id), outcome)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadyFinalized):
			c.JSON(http.StatusConflict, gin.H{"error": "reminder already finalized"})
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "reminder not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "reminder marked " + outcome,
		"status":  r.Status,
	})
}
