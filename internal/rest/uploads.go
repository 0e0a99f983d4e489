package rest

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// registerUploads serves stored image bytes in local-disk mode. Browsers do
// not recognize the .jfif extension, so those files are served as JPEG.
func registerUploads(router *gin.Engine, dir string) {
	router.GET("/uploads/:name", func(c *gin.Context) {
		name := c.Param("name")
		if name != filepath.Base(name) {
			c.Status(http.StatusNotFound)
			return
		}

		if strings.HasSuffix(strings.ToLower(name), ".jfif") {
			c.Header("Content-Type", "image/jpeg")
		}

		c.File(filepath.Join(dir, name))
	})
}
