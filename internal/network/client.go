package network

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Maximum message size allowed from peer.
	maxMessageSize = 1024
	// Minimum gap between two commands of one client.
	minCommandInterval = 100 * time.Millisecond
)

// Client is one WebSocket connection.
type Client struct {
	hub             *Hub
	conn            *websocket.Conn
	send            chan []byte
	lastCommandTime time.Time
}

// NewClient creates a new WebSocket client and returns it.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, hub.opts.SendBuffer),
	}
}

// Register adds the client to the hub.
func (c *Client) Register() {
	select {
	case c.hub.register <- c:
	case <-c.hub.done:
		close(c.send)
	}
}

// ReadPump pumps commands from the websocket connection to the session.
func (c *Client) ReadPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
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
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.metrics.RecordWSError()
				c.hub.logger.Warn("WebSocket read failed: " + err.Error())
			}
			break
		}
		c.hub.metrics.RecordWSMessage(true)

		var cmd Command
		if err := json.Unmarshal(message, &cmd); err != nil {
			c.hub.logger.Warn("Failed to parse command from WebSocket: " + err.Error())
			continue
		}

		c.reply(c.handleCommand(cmd))
	}
}

func (c *Client) handleCommand(cmd Command) CommandResult {
	if time.Since(c.lastCommandTime) < minCommandInterval {
		c.hub.logger.Debug("Rate limit exceeded for command " + cmd.Type)
		return CommandResult{Command: cmd.Type, Message: "Too many commands, slow down."}
	}
	c.lastCommandTime = time.Now()

	res := Dispatch(c.hub.runner, cmd)
	c.hub.logger.Event("WS_COMMAND", "player", cmd.Type+": "+res.Message)
	return resultOf(cmd.Type, res)
}

func (c *Client) reply(res CommandResult) {
	msg := Message{Type: MsgTypeResult, Timestamp: time.Now().Unix(), Payload: res}
	if !c.hub.sendTo(c, msg) {
		c.hub.logger.Debug("Dropped reply to " + res.Command)
	}
}

// WritePump pumps messages from the hub to the websocket connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)
			c.hub.metrics.RecordWSMessage(false)

			// Add queued messages to the current websocket message.
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
				c.hub.metrics.RecordWSMessage(false)
			}

			if err := w.Close(); err != nil {
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
