package controllers

import (
	"net/http"
	"strconv"

	"github.com/rajwani-7/Mediguard/services"

	"github.com/gin-gonic/gin"
)

type VerifyController struct {
	Svc *services.VerificationService
}

func NewVerifyController(svc *services.VerificationService) *VerifyController {
	return &VerifyController{Svc: svc}
}

// Verify classifies a decoded code. Decoding the barcode/QR image is
// the client's (or an upstream decoder's) job; this endpoint receives
// the payload string plus whatever was entered manually.
func (vc *VerifyController) Verify(c *gin.Context) {
	uid := c.GetUint("userID")

	var input services.ScanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := vc.Svc.Verify(uid, input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  entry.Status,
		"details": entry.Details,
		"log_id":  entry.ID,
	})
}

// History returns the most recent verification scans, newest first.
func (vc *VerifyController) History(c *gin.Context) {
	uid := c.GetUint("userID")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	logs, err := vc.Svc.History(uid, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": logs})
}
