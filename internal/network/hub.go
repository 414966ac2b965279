package network

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/abstogo/SpaceTycoon/internal/engine"
	"github.com/abstogo/SpaceTycoon/internal/events"
	"github.com/abstogo/SpaceTycoon/internal/platform/logger"
	"github.com/abstogo/SpaceTycoon/internal/platform/metrics"
)

// MessageType tags outgoing WebSocket messages.
type MessageType string

const (
	MsgTypeJournal MessageType = "JOURNAL"
	MsgTypeResult  MessageType = "RESULT"
	MsgTypeStatus  MessageType = "STATUS"
)

// Message is the envelope of everything sent to clients.
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp int64       `json:"timestamp"`
	Payload   any         `json:"payload"`
}

// JournalEntry is a journal event as shown to clients.
type JournalEntry struct {
	ID      string           `json:"id"`
	Type    events.EventType `json:"type"`
	Actor   string           `json:"actor"`
	Date    string           `json:"date"`
	Line    string           `json:"line"`
	Message string           `json:"message"`
	Payload any              `json:"payload,omitempty"`
}

// NewJournalEntry converts a journal event.
func NewJournalEntry(e events.GameEvent) JournalEntry {
	return JournalEntry{
		ID:      e.ID,
		Type:    e.Type,
		Actor:   e.ActorID,
		Date:    e.Date.String(),
		Line:    e.Line(),
		Message: e.Message,
		Payload: e.Payload,
	}
}

// Options tunes channel buffers and the client limit.
type Options struct {
	SendBuffer      int
	BroadcastBuffer int
	MaxClients      int
}

// DefaultOptions returns production defaults.
func DefaultOptions() Options {
	return Options{SendBuffer: 64, BroadcastBuffer: 256, MaxClients: 200}
}

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.Mutex
	runner     *engine.Runner
	opts       Options
	metrics    *metrics.Collector
	logger     *logger.Logger
}

// NewHub initializes a new WebSocket Hub serving one session runner.
func NewHub(runner *engine.Runner, log *logger.Logger, opts Options, m *metrics.Collector) *Hub {
	def := DefaultOptions()
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = def.SendBuffer
	}
	if opts.BroadcastBuffer <= 0 {
		opts.BroadcastBuffer = def.BroadcastBuffer
	}
	if opts.MaxClients <= 0 {
		opts.MaxClients = def.MaxClients
	}
	if m == nil {
		m = metrics.New()
	}
	return &Hub{
		broadcast:  make(chan []byte, opts.BroadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[*Client]bool),
		runner:     runner,
		opts:       opts,
		metrics:    m,
		logger:     log,
	}
}

// Run starts the Hub's main loop to handle client connections and broadcasts.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.logger.Info("WebSocket Hub shutting down.")
			close(h.done)
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return
		case client := <-h.register:
			h.mu.Lock()
			if len(h.clients) >= h.opts.MaxClients {
				close(client.send)
				h.mu.Unlock()
				h.logger.Warn("WebSocket client rejected, limit of " + strconv.Itoa(h.opts.MaxClients) + " reached")
				continue
			}
			h.clients[client] = true
			h.mu.Unlock()
			h.metrics.RecordWSConnection(1)
			h.logger.Info("New WebSocket client connected")
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.metrics.RecordWSConnection(-1)
				h.logger.Info("WebSocket client disconnected")
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
					h.metrics.RecordWSConnection(-1)
					h.metrics.RecordWSError()
				}
			}
			h.mu.Unlock()
		}
	}
}

// Attach subscribes the hub to a session journal.
func (h *Hub) Attach(journal *events.EventLog) {
	journal.Subscribe(h.BroadcastEvent)
}

// BroadcastEvent serializes a journal event and queues it for all clients.
// It never blocks; when the queue is full the event is dropped.
func (h *Hub) BroadcastEvent(event events.GameEvent) {
	payload, err := json.Marshal(Message{
		Type:      MsgTypeJournal,
		Timestamp: time.Now().Unix(),
		Payload:   NewJournalEntry(event),
	})
	if err != nil {
		h.logger.Err(err, "Failed to serialize journal entry for WebSocket broadcast")
		return
	}

	select {
	case h.broadcast <- payload:
	default:
		h.metrics.RecordWSError()
		h.logger.Warn("Broadcast queue full, dropped journal entry " + event.ID)
	}
}

// sendTo queues a message for one client if it is still registered.
func (h *Hub) sendTo(c *Client, msg Message) bool {
	payload, err := json.Marshal(msg)
	if err != nil {
		h.logger.Err(err, "Failed to serialize WebSocket message")
		return false
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.clients[c] {
		return false
	}
	select {
	case c.send <- payload:
		return true
	default:
		h.metrics.RecordWSError()
		return false
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
