package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"securecheck-api/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// PredictionFeed streams every prediction the service makes to websocket
// clients. A nil auth disables the token check; browsers cannot set headers
// on the upgrade request, so the token travels as a query parameter.
func PredictionFeed(cache *services.CacheService, auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth != nil {
			tokenStr := c.Query("token")
			if tokenStr == "" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token query parameter"})
				return
			}
			if _, err := auth.ValidateToken(tokenStr); err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
				return
			}
		}

		ctx, cancel := context.WithCancel(c.Request.Context())
		defer cancel()

		pubsub := cache.Subscribe(ctx, services.PredictionChannel)
		if pubsub == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "prediction feed requires redis", "warning": true})
			return
		}
		defer pubsub.Close()

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Warn().Err(err).Msg("websocket upgrade failed")
			return
		}
		defer conn.Close()

		// Read pump: detect client disconnect
		go func() {
			defer cancel()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				err := conn.WriteJSON(gin.H{
					"type": "prediction",
					"data": json.RawMessage(msg.Payload),
				})
				if err != nil {
					log.Debug().Err(err).Msg("ws write error")
					return
				}
			}
		}
	}
}
