package productcontroller

import (
	"log"
	"net/http"
	"time"

	"github.com/DarshanLevi/shop-it-back/services/catalog"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const feedWriteWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// GET /ws/catalog streams catalog events as JSON text frames.
func CatalogFeed(events *catalog.Broker) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Subscribe before the handshake completes so no event published
		// after the client connects is missed.
		updates, cancel := events.Subscribe(16)
		defer cancel()

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("❌ Catalog feed upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		closed := make(chan struct{})
		go func() {
			defer close(closed)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-closed:
				return
			case event, ok := <-updates:
				if !ok {
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
				if err := conn.WriteJSON(event); err != nil {
					return
				}
			}
		}
	}
}
