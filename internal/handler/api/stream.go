package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	models "BitSense/internal/domain/models"
	xlogger "BitSense/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// writeWait bounds how long one client may block a broadcast.
const writeWait = 5 * time.Second

// Stream pushes the board to websocket subscribers on every refresh. Clients
// that cannot keep up are dropped; they can reconnect and will get the next
// update.
type Stream struct {
	logger   *xlogger.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func NewStream(logger *xlogger.Logger) *Stream {
	if logger == nil {
		logger = xlogger.Nop()
	}
	return &Stream{
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Serve upgrades the connection and holds it until the client goes away.
func (s *Stream) Serve(c echo.Context) error {
	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", xlogger.Error(err))
		return nil
	}

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	n := len(s.clients)
	s.mu.Unlock()
	s.logger.Debug("stream client connected", xlogger.Int("clients", n))

	// Clients only listen; the read loop exists to notice the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	s.drop(conn)
	return nil
}

// Broadcast sends the board to every connected client.
func (s *Stream) Broadcast(board models.Board) {
	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for conn := range s.clients {
		conns = append(conns, conn)
	}
	s.mu.Unlock()
	if len(conns) == 0 {
		return
	}

	payload, err := json.Marshal(board)
	if err != nil {
		s.logger.Error("stream marshal failed", xlogger.Error(err))
		return
	}

	for _, conn := range conns {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			s.logger.Debug("stream client dropped", xlogger.Error(err))
			s.drop(conn)
		}
	}
}

// Close disconnects every client.
func (s *Stream) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		_ = conn.Close()
		delete(s.clients, conn)
	}
}

func (s *Stream) drop(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[conn]; ok {
		_ = conn.Close()
		delete(s.clients, conn)
	}
}
