package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter APIのルーティングを設定したginエンジンを返す
func NewRouter(sessionHandler *MapSessionHandler, restaurantsHandler *RestaurantsHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "MapVideo-App"})
	})
	r.GET("/api/map/config", sessionHandler.GetMapConfig)

	r.GET("/restaurants", restaurantsHandler.GetRestaurantsByBoundingBox)

	sessions := r.Group("/sessions")
	{
		sessions.POST("", sessionHandler.CreateSession)
		sessions.DELETE("/:id", sessionHandler.DeleteSession)
		sessions.POST("/:id/load", sessionHandler.LoadMap)
		sessions.POST("/:id/viewport", sessionHandler.SettleViewport)
		sessions.GET("/:id/markers", sessionHandler.GetMarkers)
		sessions.POST("/:id/markers/:markerId/click", sessionHandler.ClickMarker)
		sessions.GET("/:id/panel", sessionHandler.GetPanel)
		sessions.POST("/:id/panel/close", sessionHandler.ClosePanel)
	}

	return r
}
