package orderControllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/glowcare-gm/glowcare-api/live"
	"github.com/glowcare-gm/glowcare-api/models"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// GET /orders/ws — admin live order feed. Each message is a full order
// snapshot; dashboards treat redelivery as a repaint, not a new order.
func OrderWebSocketHandler(hub *live.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}

		client := &live.Client{Send: make(chan []byte, 16)}
		hub.Register(client)

		go func() {
			defer conn.Close()
			for msg := range client.Send {
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					return
				}
			}
		}()

		// Block on reads purely to notice the peer going away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				hub.Unregister(client)
				conn.Close()
				return
			}
		}
	}
}

// BroadcastOrder pushes a freshly placed order to every connected
// dashboard. A nil hub (tests, CLI tooling) is a no-op.
func BroadcastOrder(hub *live.Hub, order *models.Order) {
	if hub == nil {
		return
	}
	data, err := json.Marshal(order)
	if err != nil {
		return
	}
	hub.Broadcast(data)
}
