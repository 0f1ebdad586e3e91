package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/clinidesk/clinic-scheduler/internal/audit"
	"github.com/clinidesk/clinic-scheduler/internal/cache"
	"github.com/clinidesk/clinic-scheduler/internal/config"
	"github.com/clinidesk/clinic-scheduler/internal/handlers"
	infraRepo "github.com/clinidesk/clinic-scheduler/internal/infra/repository"
	"github.com/clinidesk/clinic-scheduler/internal/middleware"
	ucScheduling "github.com/clinidesk/clinic-scheduler/internal/usecase/scheduling"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	schedulingRepo := infraRepo.NewSchedulingGormRepository(db)
	slotCache := cache.NewAvailabilityCache(cfg)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES
	// ======================================================
	availabilityUC := ucScheduling.NewGetAvailability(
		schedulingRepo,
		slotCache,
	)

	createAppointmentUC := ucScheduling.NewCreateAppointment(
		schedulingRepo,
		slotCache,
		auditDispatcher,
	)

	completeAppointmentUC := ucScheduling.NewCompleteAppointment(
		schedulingRepo,
		auditDispatcher,
	)

	cancelAppointmentUC := ucScheduling.NewCancelAppointment(
		schedulingRepo,
		slotCache,
		auditDispatcher,
	)

	listAppointmentsByDateUC := ucScheduling.NewListAppointmentsByDate(
		schedulingRepo,
	)

	dayScheduleUC := ucScheduling.NewGetDaySchedule(
		schedulingRepo,
	)

	weekScheduleUC := ucScheduling.NewGetWeekSchedule(
		schedulingRepo,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	clinicHandler := handlers.NewClinicHandler(db)

	serviceTypeHandler := handlers.NewServiceTypeHandler(db)
	patientHandler := handlers.NewPatientHandler(db)
	availabilityRuleHandler := handlers.NewAvailabilityRuleHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		completeAppointmentUC,
		cancelAppointmentUC,
		listAppointmentsByDateUC,
	)

	scheduleHandler := handlers.NewScheduleHandler(
		dayScheduleUC,
		weekScheduleUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(
		db,
		availabilityUC,
		createAppointmentUC,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC API
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServiceTypes)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/clinic", clinicHandler.GetMeClinic)
			secured.PATCH("/me/clinic", middleware.RequireRole("owner"), clinicHandler.UpdateMeClinic)

			secured.GET("/me/patients", patientHandler.List)

			secured.GET("/me/services", serviceTypeHandler.List)
			secured.POST("/me/services", serviceTypeHandler.Create)
			secured.PATCH("/me/services/:id", serviceTypeHandler.Update)

			secured.GET("/me/availability", availabilityRuleHandler.Get)
			secured.PUT("/me/availability", availabilityRuleHandler.UpdateWeekly)
			secured.PUT("/me/availability/overrides", availabilityRuleHandler.UpsertOverride)
			secured.DELETE("/me/availability/overrides/:id", availabilityRuleHandler.DeleteOverride)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)

			// ------------------------------
			// SCHEDULE GRIDS
			// ------------------------------
			secured.GET("/me/schedule/day", scheduleHandler.Day)
			secured.GET("/me/schedule/week", scheduleHandler.Week)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
