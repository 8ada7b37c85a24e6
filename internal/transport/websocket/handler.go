package websocket

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Handler upgrades spectator connections onto a Hub.
type Handler struct {
	Hub      *Hub
	Upgrader websocket.Upgrader
}

// NewHandler accepts connections from allowedOrigins; an empty list accepts
// any origin.
func NewHandler(hub *Hub, allowedOrigins []string) *Handler {
	return &Handler{
		Hub: hub,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return originAllowed(r.Header.Get("Origin"), allowedOrigins)
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func originAllowed(origin string, allowed []string) bool {
	if origin == "" || len(allowed) == 0 {
		return true
	}
	for _, o := range allowed {
		if o == origin {
			return true
		}
	}
	return false
}

// HandleWebSocket is the HTTP handler that upgrades the connection
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	h.handleConnection(conn)
}

// handleConnection serves one spectator until it disconnects. Spectators
// are read-only: anything they send is discarded.
func (h *Handler) handleConnection(conn *websocket.Conn) {
	client := newClient(h.Hub.newID(), conn)

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	h.Hub.register(client)
	log.Printf("[WS] Spectator %d connected (%d watching)", client.id, h.Hub.ClientCount())

	done := make(chan struct{})
	go func() {
		client.writeLoop()
		close(done)
	}()

	defer func() {
		h.Hub.unregister(client)
		<-done
		conn.Close()
		log.Printf("[WS] Spectator %d disconnected", client.id)
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WS] Spectator %d disconnected unexpectedly: %v", client.id, err)
			}
			return
		}
	}
}
