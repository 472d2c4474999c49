package server

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/kamstrup/intmap"
	"github.com/hersh/blockfall/internal/game"
	"github.com/hersh/blockfall/internal/player"
	"github.com/hersh/blockfall/internal/protocol"
)

// --- Configuration ---

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 64
	inboxBuffer    = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server hosts one game session per websocket connection. Sessions are
// never shared: each connection has its own run loop that owns it.
type Server struct {
	cfg     game.Config
	players *player.Registry

	mu    sync.Mutex
	conns *intmap.Map[uint64, *websocket.Conn]
}

func New(cfg game.Config) *Server {
	return &Server{
		cfg:     cfg,
		players: player.NewRegistry(),
		conns:   intmap.New[uint64, *websocket.Conn](64),
	}
}

// Close drops every live websocket connection. Each connection's pumps and
// match loop then exit on their own. Register it with
// http.Server.RegisterOnShutdown, since Shutdown does not touch hijacked
// connections.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conns.ForEach(func(id uint64, conn *websocket.Conn) bool {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		conn.Close()
		return true
	})
	s.conns.Clear()
}

// Players exposes the registry of connected players.
func (s *Server) Players() *player.Registry {
	return s.players
}

// Handler routes /ws and /health.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleConnection)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return mux
}

func (s *Server) handleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("upgrade error: %v", err)
		return
	}

	p := s.players.Add("Player")
	s.mu.Lock()
	s.conns.Put(p.ID, conn)
	s.mu.Unlock()
	c := newClient(p.ID, conn)
	m := newMatch(s.cfg, s.players, c)

	c.send(protocol.Envelope{
		Type:    protocol.MsgAssignID,
		Payload: protocol.AssignIDPayload{PlayerID: p.ID},
	})
	log.Printf("player %d connected from %s", p.ID, r.RemoteAddr)

	go c.writePump()
	go m.run()

	// Read pump (blocking)
	c.readPump()

	s.mu.Lock()
	s.conns.Del(p.ID)
	s.mu.Unlock()
	s.players.Remove(p.ID)
	log.Printf("player %d disconnected", p.ID)
}
