package ws

import (
	"net/http"
	"slices"

	"tasks_api/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// HandleFeed upgrades the request and streams hub events to it.
// An empty allowedOrigins list accepts any origin.
func HandleFeed(hub *Hub, allowedOrigins []string) gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if len(allowedOrigins) == 0 || origin == "" {
				return true
			}
			return slices.Contains(allowedOrigins, origin)
		},
	}

	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("feed: upgrade failed", "error", err)
			return
		}

		client := NewClient(conn, hub, c.ClientIP())
		go client.Serve()
	}
}
