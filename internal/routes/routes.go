package routes

import (
	"hospital-app-server/internal/config"
	"hospital-app-server/internal/handlers"
	"hospital-app-server/internal/middleware"
	"hospital-app-server/internal/models"
	"hospital-app-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	SetupRoutesWithClock(router, db, cfg, utils.SystemClock{})
}

// SetupRoutesWithClock wires routes with an explicit clock so tests can pin "now".
func SetupRoutesWithClock(router *gin.Engine, db *gorm.DB, cfg *config.Config, clock utils.Clock) {
	authHandler := handlers.NewAuthHandler(db, cfg)
	patientHandler := handlers.NewPatientHandler(db)
	hospitalHandler := handlers.NewHospitalHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db, clock)
	chatbotHandler := handlers.NewChatbotHandler(db)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
		}

		// Patient profile routes
		patientRoutes := private.Group("/patients")
		patientRoutes.Use(middleware.RoleAuthMiddleware(models.RolePatient))
		{
			patientRoutes.GET("/me/profile", patientHandler.GetMyProfile)
			patientRoutes.PUT("/me/profile", patientHandler.UpdateMyProfile)
		}

		// Doctor directory is readable by any authenticated user
		private.GET("/doctors", hospitalHandler.GetDoctors)

		// Directory management (admin only, the counterpart of the old admin site)
		hospitalRoutes := private.Group("/hospitals")
		hospitalRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			hospitalRoutes.POST("", hospitalHandler.CreateHospital)
			hospitalRoutes.GET("", hospitalHandler.GetHospitals)
			hospitalRoutes.GET("/:id", hospitalHandler.GetHospitalByID)
			hospitalRoutes.PUT("/:id", hospitalHandler.UpdateHospital)
			hospitalRoutes.DELETE("/:id", hospitalHandler.DeleteHospital)
			hospitalRoutes.POST("/:id/branches", hospitalHandler.CreateBranch)
			hospitalRoutes.GET("/:id/branches", hospitalHandler.GetBranches)
		}
		branchRoutes := private.Group("/branches")
		branchRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			branchRoutes.POST("/:id/doctors", hospitalHandler.CreateDoctor)
		}
		doctorAdminRoutes := private.Group("/doctors")
		doctorAdminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			doctorAdminRoutes.PUT("/:id", hospitalHandler.UpdateDoctor)
			doctorAdminRoutes.DELETE("/:id", hospitalHandler.DeleteDoctor)
		}

		// Appointment routes
		appointmentRoutes := private.Group("/appointments")
		{
			// Only patients can book; list endpoints answer any role with a
			// (possibly empty) scoped result instead of an error
			appointmentRoutes.POST("/my", middleware.RoleAuthMiddleware(models.RolePatient), appointmentHandler.CreateAppointment)
			appointmentRoutes.GET("/my", appointmentHandler.GetMyAppointments)
			appointmentRoutes.GET("/doctor", appointmentHandler.GetDoctorAppointments)

			// Item access: visibility enforced inside the handler
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)
			appointmentRoutes.PATCH("/:id", appointmentHandler.UpdateAppointment)
			appointmentRoutes.PUT("/:id", appointmentHandler.UpdateAppointment)
			appointmentRoutes.DELETE("/:id", appointmentHandler.DeleteAppointment)
		}

		// Chatbot routes
		chatbotRoutes := private.Group("/chatbot")
		{
			chatbotRoutes.POST("", chatbotHandler.Triage)
			chatbotRoutes.GET("/sessions", chatbotHandler.GetSessions)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
