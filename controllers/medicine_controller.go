package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rajwani-7/Mediguard/services"

	"github.com/gin-gonic/gin"
)

type MedicineController struct {
	Svc *services.PrescriptionService
}

func NewMedicineController(svc *services.PrescriptionService) *MedicineController {
	return &MedicineController{Svc: svc}
}

func (mc *MedicineController) List(c *gin.Context) {
	uid := c.GetUint("userID")

	grouped, err := mc.Svc.ListMedicines(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, grouped)
}

// Update edits a medicine's details; its future pending reminders are
// replanned, history untouched.
func (mc *MedicineController) Update(c *gin.Context) {
	uid := c.GetUint("userID")
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var input services.UpdateMedicineInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	med, err := mc.Svc.UpdateMedicine(uid, uint(id), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnauthorized):
			c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
		case errors.Is(err, services.ErrInvalidDuration), errors.Is(err, services.ErrEmptyTiming):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"medicine": med})
}

func (mc *MedicineController) Delete(c *gin.Context) {
	uid := c.GetUint("userID")
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	purge := c.Query("purge") == "true"

	if err := mc.Svc.DeleteMedicine(uid, uint(id), purge); err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "medicine deleted"})
}
