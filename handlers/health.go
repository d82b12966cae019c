package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health reports liveness plus the reachability of the ledger store.
func Health(ledger Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := ledger.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "DEGRADED",
				"database": "DOWN",
				"error":    err.Error(),
				"warning":  true,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "UP",
			"database": "UP",
			"message":  "SecureCheck API is running",
		})
	}
}
