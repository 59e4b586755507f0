// services/prescription_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rajwani-7/Mediguard/config"
	"github.com/rajwani-7/Mediguard/models"
	"github.com/rajwani-7/Mediguard/utils"
)

var ErrUnauthorized = errors.New("record belongs to another user")

type PrescriptionService struct {
	ocr       TextExtractor
	reminders *ReminderService
}

func NewPrescriptionService(ocr TextExtractor, reminders *ReminderService) *PrescriptionService {
	return &PrescriptionService{ocr: ocr, reminders: reminders}
}

// ExtractionReview is what the client gets back after an upload: the
// stored image, the raw OCR text, and the parsed candidates it can
// correct before saving.
type ExtractionReview struct {
	Filename      string           `json:"filename"`
	ImageURL      string           `json:"image_url"`
	RawText       string           `json:"raw_text"`
	Medicines     []ParsedMedicine `json:"medicines"`
	UnparsedLines int              `json:"unparsed_lines"`
}

// ExtractFromImage stores the uploaded image on S3, runs the selected
// OCR backend and parses the text into medicine candidates. A parse
// that finds nothing is still a success ("no medicines found").
func (s *PrescriptionService) ExtractFromImage(ctx context.Context, base64Image string) (*ExtractionReview, error) {
	data, contentType, err := utils.DecodeBase64Image(base64Image)
	if err != nil {
		return nil, err
	}

	url, key, err := utils.UploadImageToS3(data, contentType, "prescriptions")
	if err != nil {
		return nil, fmt.Errorf("image upload failed: %w", err)
	}

	rawText, err := s.ocr.ExtractText(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("text extraction failed: %w", err)
	}

	parsed := ParsePrescriptionText(rawText)
	return &ExtractionReview{
		Filename:      key,
		ImageURL:      url,
		RawText:       rawText,
		Medicines:     parsed.Medicines,
		UnparsedLines: parsed.UnparsedLines,
	}, nil
}

type SavePrescriptionInput struct {
	Filename  string           `json:"filename"`
	ImageURL  string           `json:"image_url"`
	RawText   string           `json:"raw_text"`
	Medicines []ParsedMedicine `json:"medicines" binding:"required"`
}

// Save persists the reviewed prescription with its medicines and plans
// the reminder schedule for each one.
func (s *PrescriptionService) Save(userID uint, in SavePrescriptionInput) (*models.Prescription, error) {
	presc := &models.Prescription{
		UserID:   userID,
		Filename: in.Filename,
		ImageURL: in.ImageURL,
		RawText:  in.RawText,
	}
	if err := config.DB.Create(presc).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	for _, pm := range in.Medicines {
		med := &models.Medicine{
			PrescriptionID: &presc.ID,
			UserID:         userID,
			Name:           pm.Name,
			Dosage:         pm.Dosage,
			Timing:         pm.Timing,
			Duration:       pm.Duration,
			Verified:       VerdictUnverified,
		}
		if err := config.DB.Create(med).Error; err != nil {
			return nil, err
		}
		if _, err := s.reminders.Reschedule(med, now); err != nil {
			return nil, fmt.Errorf("medicine %q: %w", med.Name, err)
		}
	}

	var populated models.Prescription
	if err := config.DB.Preload("Medicines").First(&populated, presc.ID).Error; err != nil {
		return nil, err
	}
	return &populated, nil
}

func (s *PrescriptionService) List(userID uint, page, perPage int) ([]models.Prescription, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 10
	}

	var total int64
	if err := config.DB.Model(&models.Prescription{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []models.Prescription
	err := config.DB.
		Preload("Medicines").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&out).Error
	return out, total, err
}

func (s *PrescriptionService) Get(userID, prescriptionID uint) (*models.Prescription, error) {
	var presc models.Prescription
	if err := config.DB.Preload("Medicines").First(&presc, prescriptionID).Error; err != nil {
		return nil, err
	}
	if presc.UserID != userID {
		return nil, ErrUnauthorized
	}
	return &presc, nil
}

// Delete removes a prescription and its medicines. Each medicine's
// non-terminal reminders go with it; finalized ones stay for the audit
// trail.
func (s *PrescriptionService) Delete(userID, prescriptionID uint) error {
	presc, err := s.Get(userID, prescriptionID)
	if err != nil {
		return err
	}

	for _, med := range presc.Medicines {
		if err := s.reminders.RemoveForMedicine(med.ID, false); err != nil {
			return err
		}
		if err := config.DB.Delete(&models.Medicine{}, med.ID).Error; err != nil {
			return err
		}
	}
	return config.DB.Delete(&models.Prescription{}, presc.ID).Error
}

type UpdateMedicineInput struct {
	Name     string `json:"name"`
	Dosage   string `json:"dosage"`
	Timing   string `json:"timing"`
	Duration int    `json:"duration"`
}

// UpdateMedicine edits a medicine and regenerates its future pending
// reminders. Validation runs before anything is written, so an invalid
// edit leaves both the medicine and its schedule untouched.
func (s *PrescriptionService) UpdateMedicine(userID, medicineID uint, in UpdateMedicineInput) (*models.Medicine, error) {
	var med models.Medicine
	if err := config.DB.First(&med, medicineID).Error; err != nil {
		return nil, err
	}
	if med.UserID != userID {
		return nil, ErrUnauthorized
	}

	if in.Name != "" {
		med.Name = in.Name
	}
	if in.Dosage != "" {
		med.Dosage = in.Dosage
	}
	if in.Timing != "" {
		med.Timing = in.Timing
	}
	if in.Duration != 0 {
		med.Duration = in.Duration
	}

	if med.Duration <= 0 {
		return nil, ErrInvalidDuration
	}
	if _, err := ParseTimingPattern(med.Timing); err != nil {
		return nil, err
	}

	if err := config.DB.Save(&med).Error; err != nil {
		return nil, err
	}
	if _, err := s.reminders.Reschedule(&med, time.Now()); err != nil {
		return nil, err
	}
	return &med, nil
}

func (s *PrescriptionService) DeleteMedicine(userID, medicineID uint, purge bool) error {
	var med models.Medicine
	if err := config.DB.First(&med, medicineID).Error; err != nil {
		return err
	}
	if med.UserID != userID {
		return ErrUnauthorized
	}

	if err := s.reminders.RemoveForMedicine(med.ID, purge); err != nil {
		return err
	}
	return config.DB.Delete(&med).Error
}

// ListMedicines groups a user's medicines by verification verdict, the
// shape the medicines screen renders directly.
func (s *PrescriptionService) ListMedicines(userID uint) (map[string][]models.Medicine, error) {
	var meds []models.Medicine
	if err := config.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&meds).Error; err != nil {
		return nil, err
	}

	grouped := map[string][]models.Medicine{
		VerdictValid:      {},
		VerdictFake:       {},
		VerdictSuspicious: {},
		VerdictUnverified: {},
	}
	for _, m := range meds {
		grouped[m.Verified] = append(grouped[m.Verified], m)
	}
	return grouped, nil
}
