package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"mindhaven/handlers"
	"mindhaven/middleware"
)

// HandlerBundle groups the handlers routes are wired against.
type HandlerBundle struct {
	Schedule *handlers.ScheduleHandler
	Booking  *handlers.BookingHandler
	Session  *handlers.SessionHandler
	Rating   *handlers.RatingHandler
}

// RegisterScheduleRoutes registers therapist availability and schedule endpoints.
func RegisterScheduleRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/schedule")
	{
		api.Use(middleware.JWTAuthTherapistMiddleware())
		api.POST("/availability", hb.Schedule.SetAvailabilityHandler)
		api.GET("/availability", hb.Schedule.GetAvailabilityHandler)
		api.PUT("/availability/:availabilityId", hb.Schedule.EditAvailabilityHandler)
		api.DELETE("/availability/:availabilityId", hb.Schedule.DeleteAvailabilityHandler)

		api.GET("/upcoming", hb.Schedule.GetUpcomingAvailabilityHandler)
		api.GET("/day/:date", hb.Schedule.GetDayScheduleHandler)
		api.GET("/month/:year/:month", hb.Schedule.GetMonthScheduleHandler)
	}
}

// RegisterBookingRoutes registers client-facing booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/booking")
	{
		api.Use(middleware.JWTAuthClientMiddleware())
		api.GET("/therapists/:therapistId/slots", hb.Schedule.GetTherapistSlotsHandler)
		api.POST("/book", hb.Booking.CreateBookingHandler)
		api.GET("/bookings", hb.Booking.ListClientBookingsHandler)
		api.GET("/upcoming", hb.Booking.GetUpcomingSessionHandler)
		api.POST("/cancel/:sessionId", hb.Booking.CancelBookingHandler)
	}
}

// RegisterSessionRoutes registers therapist session lifecycle endpoints.
func RegisterSessionRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/sessions")
	{
		api.Use(middleware.JWTAuthTherapistMiddleware())
		api.GET("", hb.Booking.ListTherapistBookingsHandler)
		api.PUT("/:sessionId/status", hb.Session.UpdateSessionStatusHandler)
		api.POST("/:sessionId/release", hb.Session.ReleaseCancelledSlotHandler)
	}
}

// RegisterRatingRoutes registers post-session rating endpoints for clients.
func RegisterRatingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/ratings")
	{
		api.Use(middleware.JWTAuthClientMiddleware())
		api.GET("/pending", hb.Rating.GetPendingRatingHandler)
		api.POST("", hb.Rating.SubmitRatingHandler)
	}
}

// RegisterHealthRoute registers a basic liveness endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterScheduleRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterSessionRoutes(r, hb)
	RegisterRatingRoutes(r, hb)
}
