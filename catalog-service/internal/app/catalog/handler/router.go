package handler

import (
	"net/http"

	"staybook/pkg/logger"
	"staybook/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const serviceName = "catalog-service"

// SetupRoutes настраивает маршруты Catalog Service
// Каталог только на чтение и открыт без аутентификации
func SetupRoutes(catalogHandler *CatalogHandler) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware(serviceName))

	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"https://*", "http://*"},
		AllowWildcard: true,
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Accept", "Content-Type", logger.RequestIDHeader},
		ExposeHeaders: []string{logger.RequestIDHeader},
		MaxAge:        300,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	hotels := router.Group("/hotels")
	{
		hotels.GET("", catalogHandler.ListHotels)
		hotels.GET("/:hotel_id", catalogHandler.GetHotel)
		hotels.GET("/:hotel_id/rooms", catalogHandler.ListRooms)
		hotels.GET("/:hotel_id/rooms/:room_id", catalogHandler.GetHotelRoom)
	}

	router.GET("/rooms/:room_id", catalogHandler.GetRoom)

	return router
}
