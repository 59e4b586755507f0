package routes

import (
	"github.com/rajwani-7/Mediguard/controllers"
	"github.com/rajwani-7/Mediguard/middlewares"

	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Prescriptions *controllers.PrescriptionController
	Medicines     *controllers.MedicineController
	Verify        *controllers.VerifyController
	Reminders     *controllers.ReminderController
	Devices       *controllers.DeviceController
	Realtime      *controllers.RealtimeController
}

func SetupRouter(ctrl Controllers) *gin.Engine {
	r := gin.Default()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/signup", controllers.Signup)
		auth.POST("/login", controllers.Login)
	}

	// Everything below requires a valid token
	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware())
	{
		api.GET("/dashboard", controllers.Dashboard)
		api.GET("/user/profile", controllers.GetProfile)

		api.POST("/prescriptions/upload", ctrl.Prescriptions.Upload)
		api.POST("/prescriptions", ctrl.Prescriptions.Save)
		api.GET("/prescriptions", ctrl.Prescriptions.List)
		api.GET("/prescriptions/:id", ctrl.Prescriptions.View)
		api.DELETE("/prescriptions/:id", ctrl.Prescriptions.Delete)

		api.GET("/medicines", ctrl.Medicines.List)
		api.PUT("/medicines/:id", ctrl.Medicines.Update)
		api.DELETE("/medicines/:id", ctrl.Medicines.Delete)

		api.POST("/verify", ctrl.Verify.Verify)
		api.GET("/verify/history", ctrl.Verify.History)

		api.GET("/reminders", ctrl.Reminders.List)
		api.GET("/reminders/upcoming", ctrl.Reminders.Upcoming)
		api.POST("/reminders/:id/taken", ctrl.Reminders.MarkTaken)
		api.POST("/reminders/:id/skip", ctrl.Reminders.Skip)

		api.POST("/devices/register", ctrl.Devices.Register)
		api.POST("/user/notifications/toggle", controllers.ToggleNotifications)

		api.GET("/ws/reminders", ctrl.Realtime.RemindersWS)
	}

	return r
}
