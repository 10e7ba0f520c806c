package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	handlers "sitegen/internal/api"
)

// RegisterRoutes sets up the API endpoints and groups them logically.
func RegisterRoutes(router *gin.Engine, h *handlers.APIHandler) {
	// --- Site generation ---
	siteGroup := router.Group("/site")
	{
		siteGroup.POST("/generate", h.GenerateSite)
		siteGroup.GET("/style-guide", h.GetStyleGuide)
		siteGroup.GET("/layout-template", h.GetLayoutTemplate)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
