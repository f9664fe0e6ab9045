package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/parlourhq/parlour-scheduler/internal/audit"
	"github.com/parlourhq/parlour-scheduler/internal/cache"
	"github.com/parlourhq/parlour-scheduler/internal/config"
	"github.com/parlourhq/parlour-scheduler/internal/handlers"
	infraRepo "github.com/parlourhq/parlour-scheduler/internal/infra/repository"
	"github.com/parlourhq/parlour-scheduler/internal/middleware"
	"github.com/parlourhq/parlour-scheduler/internal/models"
	ucBooking "github.com/parlourhq/parlour-scheduler/internal/usecase/booking"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	availabilityCache *cache.AvailabilityCache,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES: BOOKINGS
	// ======================================================
	availabilityUC := ucBooking.NewGetAvailability(bookingRepo, availabilityCache)

	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		availabilityCache,
		auditDispatcher,
	)

	rescheduleBookingUC := ucBooking.NewRescheduleBooking(
		bookingRepo,
		availabilityCache,
		auditDispatcher,
	)

	confirmBookingUC := ucBooking.NewConfirmBooking(bookingRepo, auditDispatcher)
	cancelBookingUC := ucBooking.NewCancelBooking(bookingRepo, availabilityCache, auditDispatcher)
	completeBookingUC := ucBooking.NewCompleteBooking(bookingRepo, availabilityCache, auditDispatcher)

	listBookingsByDateUC := ucBooking.NewListBookingsByDate(bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	parlourHandler := handlers.NewParlourHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	customerHandler := handlers.NewCustomerHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	bookingHandler := handlers.NewBookingHandler(
		availabilityUC,
		createBookingUC,
		rescheduleBookingUC,
		confirmBookingUC,
		cancelBookingUC,
		completeBookingUC,
		listBookingsByDateUC,
	)

	publicHandler := handlers.NewPublicHandler(db, availabilityUC, createBookingUC)

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
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/bookings", publicHandler.CreateBooking)
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

			secured.GET("/availability", bookingHandler.Availability)

			secured.GET("/bookings", bookingHandler.ListByDate)
			secured.POST("/bookings", bookingHandler.Create)
			secured.PATCH("/bookings/:id", bookingHandler.Reschedule)
			secured.POST("/bookings/:id/confirm", bookingHandler.Confirm)
			secured.POST("/bookings/:id/cancel", bookingHandler.Cancel)
			secured.POST("/bookings/:id/complete", bookingHandler.Complete)

			secured.GET("/customers", customerHandler.List)

			managers := secured.Group("/")
			managers.Use(middleware.RequireRoles(models.RoleOwner, models.RoleManager))
			{
				managers.GET("/parlour", parlourHandler.Get)
				managers.PUT("/parlour", parlourHandler.Update)

				managers.GET("/services", serviceHandler.List)
				managers.POST("/services", serviceHandler.Create)
				managers.PUT("/services/:id", serviceHandler.Update)
			}

			owners := secured.Group("/")
			owners.Use(middleware.RequireRoles(models.RoleOwner))
			{
				owners.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
