package netclient

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"
	"github.com/hersh/blockfall/internal/game"
	"github.com/hersh/blockfall/internal/protocol"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = (pongWait * 9) / 10
	maxMessageSize = 16384
)

// ConnectedMsg is sent when the client connects and receives its PlayerID.
type ConnectedMsg struct {
	PlayerID uint64
}

// SnapshotMsg carries the latest state of the remote session.
type SnapshotMsg struct {
	Snapshot game.Snapshot
}

// ErrorMsg is a message the server rejected.
type ErrorMsg struct {
	Message string
}

// DisconnectedMsg is sent when the WebSocket connection is lost.
type DisconnectedMsg struct {
	Err error
}

// Client manages the WebSocket connection to the game server.
type Client struct {
	mu      sync.Mutex
	conn    *websocket.Conn
	sendCh  chan []byte
	program *tea.Program
	done    chan struct{}
	closed  bool
	started bool
}

// New creates a Client connected to the given server URL.
func New(serverURL string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(serverURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", serverURL, err)
	}

	c := &Client{
		conn:   conn,
		sendCh: make(chan []byte, 256),
		done:   make(chan struct{}),
	}

	return c, nil
}

// SetProgram sets the bubbletea program so the client can send messages to it.
func (c *Client) SetProgram(p *tea.Program) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.program = p
}

// Start launches the read and write pumps.
func (c *Client) Start() {
	c.mu.Lock()
	c.started = true
	c.mu.Unlock()
	go c.writePump()
	go c.readPump()
}

// Send marshals and sends an envelope to the server.
func (c *Client) Send(env protocol.Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		log.Printf("client marshal error: %v", err)
		return
	}
	select {
	case c.sendCh <- data:
	default:
		log.Printf("client send channel full, dropping message")
	}
}

// StartGame asks the server for a new session.
func (c *Client) StartGame(name string, seed int64) {
	c.Send(protocol.Envelope{
		Type:    protocol.MsgStart,
		Payload: protocol.StartPayload{PlayerName: name, Seed: seed},
	})
}

// SendCommand forwards one input command to the remote session.
func (c *Client) SendCommand(cmd game.Command) {
	c.Send(protocol.Envelope{
		Type:    protocol.MsgCommand,
		Payload: protocol.CommandPayload{Command: cmd.String()},
	})
}

// Close shuts down the client connection. The close frame is written by
// the write pump so the connection never has two concurrent writers.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.done)
	if !c.started {
		c.conn.Close()
	}
}

// readPump reads messages from the WebSocket and sends them to the bubbletea program.
func (c *Client) readPump() {
	var readErr error
	defer func() {
		c.mu.Lock()
		p := c.program
		c.mu.Unlock()
		if p != nil {
			p.Send(DisconnectedMsg{Err: readErr})
		}
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("readPump error: %v", err)
				readErr = err
			}
			return
		}

		env, err := protocol.Decode(message)
		if err != nil {
			log.Printf("client: %v", err)
			continue
		}

		msg, err := translate(env)
		if err != nil {
			log.Printf("client: %v", err)
			continue
		}
		if msg == nil {
			continue
		}

		c.mu.Lock()
		p := c.program
		c.mu.Unlock()

		if p != nil {
			p.Send(msg)
		}
	}
}

// translate turns a server envelope into the tea.Msg the model handles.
func translate(env protocol.RawEnvelope) (tea.Msg, error) {
	switch env.Type {
	case protocol.MsgAssignID:
		var payload protocol.AssignIDPayload
		if err := env.Into(&payload); err != nil {
			return nil, err
		}
		return ConnectedMsg{PlayerID: payload.PlayerID}, nil

	case protocol.MsgSnapshot:
		var payload protocol.SnapshotPayload
		if err := env.Into(&payload); err != nil {
			return nil, err
		}
		snap, err := payload.Snapshot()
		if err != nil {
			return nil, err
		}
		return SnapshotMsg{Snapshot: snap}, nil

	case protocol.MsgError:
		var payload protocol.ErrorPayload
		if err := env.Into(&payload); err != nil {
			return nil, err
		}
		return ErrorMsg{Message: payload.Message}, nil
	}
	return nil, nil
}

// writePump writes messages from sendCh to the WebSocket.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.sendCh:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
