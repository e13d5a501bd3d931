package middleware

import (
	"strings"
	"time"

	"laptop-price-api/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupCORS(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := strings.Split(cfg.AllowedOrigins, ",")
	for i := range allowedOrigins {
		allowedOrigins[i] = strings.TrimSpace(allowedOrigins[i])
	}

	base := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", HeaderRequestID, HeaderTraceID},
		MaxAge:        12 * time.Hour,
	}

	// Browsers refuse credentials with a wildcard origin
	if len(allowedOrigins) == 1 && allowedOrigins[0] == "*" {
		base.AllowAllOrigins = true
		return cors.New(base)
	}

	base.AllowOrigins = allowedOrigins
	base.AllowCredentials = true
	return cors.New(base)
}
