package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршрут Health-check доступен без ключа
	api.GET("/system/health", h.healthCheck)

	protected := api.Group("")
	protected.Use(APIKeyAuthMiddleware(h.cfg.APIKeys, h.logger))

	auth := protected.Group("/auth")
	{
		auth.POST("/login", h.login)
		auth.POST("/logout", h.logout)
		auth.GET("/me", h.me)
	}

	incidents := protected.Group("/incidents")
	{
		incidents.GET("", h.listIncidents)
		incidents.POST("", h.createIncident)
		incidents.POST("/more", h.loadMore)
		incidents.GET("/mine", h.myIncidents)
	}

	protected.GET("/categories", h.categoryCounts)
	protected.GET("/settings", h.getSettings)
	protected.PUT("/settings", h.updateSettings)
	protected.POST("/push/register", h.registerPush)
	protected.GET("/location/name", h.locationName)
}

// NewRouter создает gin-роутер шлюза с метриками и Swagger UI
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestIDMiddleware(h.logger))

	api := router.Group("/api/v1")
	h.RegisterRoutes(api)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return router
}
