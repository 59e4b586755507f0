package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rajwani-7/Mediguard/services"

	"github.com/gin-gonic/gin"
)

type PrescriptionController struct {
	Svc *services.PrescriptionService
}

func NewPrescriptionController(svc *services.PrescriptionService) *PrescriptionController {
	return &PrescriptionController{Svc: svc}
}

type UploadPrescriptionReq struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

// Upload stores the image, runs OCR and returns the extraction for the
// client to review before saving.
func (pc *PrescriptionController) Upload(c *gin.Context) {
	var req UploadPrescriptionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	review, err := pc.Svc.ExtractFromImage(c.Request.Context(), req.ImageBase64)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, review)
}

func (pc *PrescriptionController) Save(c *gin.Context) {
	uid := c.GetUint("userID")

	var input services.SavePrescriptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	presc, err := pc.Svc.Save(uid, input)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDuration) || errors.Is(err, services.ErrEmptyTiming) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"prescription": presc})
}

func (pc *PrescriptionController) List(c *gin.Context) {
	uid := c.GetUint("userID")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	prescs, total, err := pc.Svc.List(uid, page, 10)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"prescriptions": prescs,
		"total":         total,
		"page":          page,
	})
}

func (pc *PrescriptionController) View(c *gin.Context) {
	uid := c.GetUint("userID")
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	presc, err := pc.Svc.Get(uid, uint(id))
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "prescription not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"prescription": presc})
}

func (pc *PrescriptionController) Delete(c *gin.Context) {
	uid := c.GetUint("userID")
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := pc.Svc.Delete(uid, uint(id)); err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "prescription deleted"})
}
