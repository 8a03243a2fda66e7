package handler

import (
	"net/http"

	"staybook/pkg/logger"
	"staybook/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const serviceName = "booking-service"

// Handlers - все обработчики Booking Service
type Handlers struct {
	Reservations *ReservationHandler
	Reviews      *ReviewHandler
	Users        *UserHandler
}

// SetupRoutes настраивает маршруты Booking Service
// /auth требует JWT, /admin дополнительно роль admin
func SetupRoutes(h Handlers, authMiddleware *AuthMiddleware) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware(serviceName))
	router.Use(propagateRequestID())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowWildcard:    true,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", logger.RequestIDHeader},
		ExposeHeaders:    []string{logger.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Публичный список отзывов
	router.GET("/hotels/:hotel_id/reviews", h.Reviews.GetHotelReviews)

	auth := router.Group("/auth")
	auth.Use(authMiddleware.Authenticate())
	{
		auth.POST("/signup", h.Users.SignUp)
		auth.POST("/signin", h.Users.SignIn)

		auth.GET("/reservations", h.Reservations.GetUserReservations)
		auth.POST("/reservations", h.Reservations.CreateReservation)
		auth.GET("/reservations/:reservation_id", h.Reservations.GetReservation)
		auth.PATCH("/reservations/:reservation_id", h.Reservations.ModifyReservation)
		auth.DELETE("/reservations/:reservation_id", h.Reservations.CancelReservation)

		auth.POST("/hotels/:hotel_id/reviews", h.Reviews.CreateReview)
		auth.PATCH("/hotels/:hotel_id/reviews", h.Reviews.UpdateReview)
		auth.DELETE("/hotels/:hotel_id/reviews", h.Reviews.DeleteReview)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware.Authenticate())
	admin.Use(authMiddleware.RequireRole("admin"))
	{
		admin.GET("/reservations/user/:user_id", h.Reservations.GetReservationsByUser)
	}

	return router
}
