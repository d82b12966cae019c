package middleware

import (
	"strings"
	"time"

	"securecheck-api/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	allowedMethods = []string{"GET", "POST", "OPTIONS"}
	allowedHeaders = []string{"Origin", "Content-Type", "Authorization"}
)

// SetupCORS allows every origin for "*" and otherwise the listed origins,
// with credentials.
func SetupCORS(cfg config.CORSConfig) gin.HandlerFunc {
	var origins []string
	for _, o := range strings.Split(cfg.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	c := cors.Config{
		AllowMethods:  allowedMethods,
		AllowHeaders:  allowedHeaders,
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
		c.AllowCredentials = true
	}
	return cors.New(c)
}
