package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewApi wires all routes onto the router. uploadsDir is only set in
// local-disk storage mode; when empty no /uploads route is registered.
func NewApi(router *gin.Engine, images *ImagesHandler, uploadsDir string) {
	router.GET("/health", HealthCheck)

	apiV1 := router.Group("api")
	{
		apiV1.POST("/upload", images.UploadImage)
		apiV1.GET("/images", images.ListImages)
		apiV1.DELETE("/images/:id", images.DeleteImage)
	}

	if uploadsDir != "" {
		registerUploads(router, uploadsDir)
	}
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
