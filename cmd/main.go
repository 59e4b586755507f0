package main

import (
	"context"
	"log"
	"os"

	"github.com/rajwani-7/Mediguard/config"
	"github.com/rajwani-7/Mediguard/controllers"
	"github.com/rajwani-7/Mediguard/routes"
	"github.com/rajwani-7/Mediguard/services"
	"github.com/rajwani-7/Mediguard/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()
	settings := config.LoadSettings()

	ocr, err := services.NewTextExtractor()
	if err != nil {
		log.Fatalf("OCR backend init failed: %v", err)
	}

	hub := services.NewRealtimeHub()
	push, err := services.NewPushService(config.DB)
	if err != nil {
		log.Printf("Push notifications disabled: %v", err)
		push = nil
	}

	reminderStore := services.NewGormReminderStore(config.DB)
	medicineStore := services.NewGormMedicineStore(config.DB)
	verificationStore := services.NewGormVerificationStore(config.DB)

	reminderSvc := services.NewReminderService(reminderStore, settings)
	verifySvc := services.NewVerificationService(verificationStore, medicineStore, settings)
	prescriptionSvc := services.NewPrescriptionService(ocr, reminderSvc)

	notifier := services.NewFanoutNotifier(config.DB, hub, push)
	scheduler := services.NewSchedulerService(reminderStore, notifier, settings)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go scheduler.Start(ctx)

	r := routes.SetupRouter(routes.Controllers{
		Prescriptions: controllers.NewPrescriptionController(prescriptionSvc),
		Medicines:     controllers.NewMedicineController(prescriptionSvc),
		Verify:        controllers.NewVerifyController(verifySvc),
		Reminders:     controllers.NewReminderController(reminderSvc),
		Devices:       controllers.NewDeviceController(push),
		Realtime:      controllers.NewRealtimeController(hub),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
