package handlers

import (
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// RegisterFrontend serves index.html at / and the directory under /static.
// It reports false and registers nothing when dir has no index.html.
func RegisterFrontend(r gin.IRoutes, dir string) bool {
	index := filepath.Join(dir, "index.html")
	if info, err := os.Stat(index); err != nil || info.IsDir() {
		return false
	}

	r.Static("/static", dir)
	r.GET("/", func(c *gin.Context) {
		c.File(index)
	})
	return true
}
