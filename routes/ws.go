package routes

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust this for production
	},
}

// Connected dashboard clients with mutex for thread safety
var wsClients = make(map[*websocket.Conn]bool)
var wsMutex = &sync.Mutex{}
var broadcast = make(chan []byte, 100) // Buffered channel to prevent blocking
var broadcasterOnce sync.Once

func orderFeedHandler() fiber.Handler {
	return adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("Error upgrading:", err)
			return
		}
		defer conn.Close()

		wsMutex.Lock()
		wsClients[conn] = true
		wsMutex.Unlock()
		log.Println("Dashboard connected:", conn.RemoteAddr())

		// The feed is one-way; reads only detect disconnects.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("WebSocket read error: %v", err)
				}
				wsMutex.Lock()
				delete(wsClients, conn)
				wsMutex.Unlock()
				log.Println("Dashboard disconnected:", conn.RemoteAddr())
				break
			}
		}
	})
}

func startBroadcaster() {
	broadcasterOnce.Do(func() {
		go func() {
			for message := range broadcast {
				wsMutex.Lock()
				for client := range wsClients {
					if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
						log.Printf("WebSocket write error: %v", err)
						client.Close()
						delete(wsClients, client)
					}
				}
				wsMutex.Unlock()
			}
		}()
	})
}

// broadcastOrderEvent pushes an order lifecycle event to connected dashboards.
// Events are dropped when the buffer is full; the feed is advisory only.
func broadcastOrderEvent(event string, orderID uint, orderNumber, status string) {
	message, err := json.Marshal(fiber.Map{
		"event":        event,
		"order_id":     orderID,
		"order_number": orderNumber,
		"status":       status,
	})
	if err != nil {
		return
	}
	select {
	case broadcast <- message:
	default:
	}
}
