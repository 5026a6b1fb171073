package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes регистрирует маршруты, доступные без API-ключа
func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}

// RegisterRoutes регистрирует защищенные маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршруты для отслеживаемых сущностей
	entities := api.Group("/entities")
	{
		entities.POST("", h.registerEntity)
		entities.POST("/:id/status", h.reportStatus)
		entities.POST("/:id/samples", h.submitSample)
		entities.GET("/:id/location", h.currentLocation)
		entities.GET("/:id/history", h.history)
		entities.GET("/:id/movement", h.movement)
		entities.GET("/:id/speed", h.speed)
		entities.GET("/:id/stream", h.streamUpdates)
	}

	// Маршрут запроса отслеживания по мобильной сети
	api.POST("/mobile/track", h.requestMobileTracking)

	// Геодезическая утилита для UI
	api.POST("/geo/distance", h.distance)
}
