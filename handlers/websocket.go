package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"laptop-price-api/logger"
	"laptop-price-api/metrics"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// LiveFeed yields raw prediction event payloads.
type LiveFeed interface {
	Available() bool
	Subscribe(ctx context.Context) (<-chan string, func() error, error)
}

func LivePredictions(feed LiveFeed, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !feed.Available() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "live prediction feed is not available"})
			return
		}

		ctx, cancel := context.WithCancel(c.Request.Context())
		defer cancel()

		events, closeFeed, err := feed.Subscribe(ctx)
		if err != nil {
			log.Error("live feed subscribe failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "live prediction feed is not available"})
			return
		}
		defer closeFeed()

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Warn("websocket upgrade failed", "error", err)
			return
		}
		defer conn.Close()

		metrics.SubscriberConnected()
		defer metrics.SubscriberDisconnected()

		// Read pump: detect client disconnect
		go func() {
			defer cancel()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case payload, ok := <-events:
				if !ok {
					return
				}
				err := conn.WriteJSON(gin.H{
					"type": "prediction",
					"data": json.RawMessage(payload),
				})
				if err != nil {
					log.Warn("ws write error", "error", err)
					return
				}
			}
		}
	}
}
