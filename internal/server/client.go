package server

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hersh/blockfall/internal/protocol"
)

// client is the server side of one websocket connection.
type client struct {
	id     uint64
	conn   *websocket.Conn
	sendCh chan []byte
	inbox  chan protocol.RawEnvelope
}

func newClient(id uint64, conn *websocket.Conn) *client {
	return &client{
		id:     id,
		conn:   conn,
		sendCh: make(chan []byte, sendBuffer),
		inbox:  make(chan protocol.RawEnvelope, inboxBuffer),
	}
}

// send marshals an envelope and queues it. Only the connection handler
// (before the match starts) and the match loop call send.
func (c *client) send(env protocol.Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		log.Printf("marshal error for player %d: %v", c.id, err)
		return
	}
	select {
	case c.sendCh <- data:
	default:
		log.Printf("send channel full for player %d, dropping message", c.id)
	}
}

// writePump sends messages from sendCh to the WebSocket.
func (c *client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.sendCh:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump decodes incoming envelopes into the inbox until the connection
// drops, then closes the inbox.
func (c *client) readPump() {
	defer func() {
		close(c.inbox)
		c.conn.Close()
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
				log.Printf("read error for player %d: %v", c.id, err)
			}
			return
		}

		env, err := protocol.Decode(message)
		if err != nil {
			log.Printf("player %d: %v", c.id, err)
			continue
		}
		c.inbox <- env
	}
}
