package api

import (
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/billshare/bill-engine/internal/share"
)

// WebSocket event types
const (
	EventShareCompleted = "share_completed"
	EventShareFailed    = "share_failed"
)

// wsMessage represents a WebSocket message
type wsMessage struct {
	Event string                 `json:"event"`
	Data  map[string]interface{} `json:"data"`
}

// wsClient represents a connected WebSocket client
type wsClient struct {
	conn   *websocket.Conn
	send   chan wsMessage
	server *Server
}

// handleWebSocket upgrades the connection and streams share outcomes
func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := &wsClient{
		conn:   conn,
		send:   make(chan wsMessage, 64),
		server: s,
	}

	s.addClient(client)
	s.log.Debug().Msg("websocket client connected")

	go client.writePump()
	go client.readPump()
}

func (s *Server) addClient(client *wsClient) {
	s.clientsMu.Lock()
	s.clients[client] = true
	s.clientsMu.Unlock()
}

func (s *Server) removeClient(client *wsClient) {
	s.clientsMu.Lock()
	delete(s.clients, client)
	s.clientsMu.Unlock()
}

func (c *wsClient) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			c.server.log.Debug().Err(err).Msg("websocket write failed")
			return
		}
	}
}

// readPump only watches for the close handshake; the share stream is
// one-directional.
func (c *wsClient) readPump() {
	defer func() {
		c.server.removeClient(c)
		close(c.send)
		c.conn.Close()
		c.server.log.Debug().Msg("websocket client disconnected")
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// broadcastOutcome pushes a share outcome to every connected client
func (s *Server) broadcastOutcome(outcome *share.Outcome) {
	event := EventShareCompleted
	if !outcome.OK {
		event = EventShareFailed
	}

	message := wsMessage{
		Event: event,
		Data: map[string]interface{}{
			"id":        outcome.ID,
			"action":    string(outcome.Action),
			"channel":   outcome.Channel,
			"ok":        outcome.OK,
			"cancelled": outcome.Cancelled,
			"message":   outcome.Message,
		},
	}

	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()

	for client := range s.clients {
		select {
		case client.send <- message:
		default:
			// Client send buffer full, skip
		}
	}
}
