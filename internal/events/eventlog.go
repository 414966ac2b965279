// Package events provides the session journal: an append-only log of
// everything notable that happened aboard, the captain's log.
package events

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abstogo/SpaceTycoon/internal/domain/calendar"
)

// EventType defines the category of a journal entry.
type EventType string

const (
	EventTypeEventFired     EventType = "EVENT_FIRED"
	EventTypeChoiceResolved EventType = "CHOICE_RESOLVED"
	EventTypeDeparture      EventType = "DEPARTURE"
	EventTypeArrival        EventType = "ARRIVAL"
	EventTypeMaintenance    EventType = "MAINTENANCE"
	EventTypeRefuel         EventType = "REFUEL"
	EventTypeTrade          EventType = "TRADE"
	EventTypeCrew           EventType = "CREW"
	EventTypeGameSaved      EventType = "GAME_SAVED"
	EventTypeGameLoaded     EventType = "GAME_LOADED"
	EventTypeNotice         EventType = "NOTICE"
)

// Actors recorded on journal entries.
const (
	ActorPlayer    = "player"
	ActorScheduler = "scheduler"
	ActorShip      = "ship"
	ActorCrew      = "crew"
	ActorSystem    = "system"
)

// GameEvent is an immutable journal entry.
type GameEvent struct {
	ID        string        `json:"id"`
	SessionID string        `json:"session_id"`
	Timestamp time.Time     `json:"timestamp"`
	Type      EventType     `json:"type"`
	ActorID   string        `json:"actor_id"`
	Date      calendar.Date `json:"date"`
	Message   string        `json:"message"`
	Payload   any           `json:"payload,omitempty"`
}

// Line renders the entry the way the captain's log shows it.
func (e GameEvent) Line() string {
	return fmt.Sprintf("%s: %s", e.Date, e.Message)
}

// EventPersister defines how an event is durably stored.
type EventPersister interface {
	Append(event GameEvent) error
}

// Subscriber is notified after every append.
type Subscriber func(GameEvent)

// EventLog is the in-memory append-only journal of one session.
type EventLog struct {
	mu          sync.RWMutex
	sessionID   string
	events      []GameEvent
	persister   EventPersister
	subscribers []Subscriber
}

// NewEventLog creates a journal for a session with an optional persister.
func NewEventLog(sessionID string, persister EventPersister) *EventLog {
	return &EventLog{
		sessionID: sessionID,
		events:    make([]GameEvent, 0),
		persister: persister,
	}
}

// SessionID returns the owning session's id.
func (el *EventLog) SessionID() string {
	return el.sessionID
}

// Subscribe registers fn for every future append.
func (el *EventLog) Subscribe(fn Subscriber) {
	el.mu.Lock()
	defer el.mu.Unlock()
	el.subscribers = append(el.subscribers, fn)
}

// Record builds and appends an entry stamped with a fresh id and now.
func (el *EventLog) Record(t EventType, actor string, date calendar.Date, message string, payload any) (GameEvent, error) {
	event := GameEvent{
		ID:        GenerateEventID(),
		SessionID: el.sessionID,
		Timestamp: time.Now().UTC(),
		Type:      t,
		ActorID:   actor,
		Date:      date,
		Message:   message,
		Payload:   payload,
	}
	return event, el.Append(event)
}

// Append adds an event to the log. Events are immutable once appended.
// The event stays in memory even when the persister fails.
func (el *EventLog) Append(event GameEvent) error {
	if event.SessionID == "" {
		event.SessionID = el.sessionID
	}

	el.mu.Lock()
	el.events = append(el.events, event)
	subs := append([]Subscriber(nil), el.subscribers...)
	el.mu.Unlock()

	for _, fn := range subs {
		fn(event)
	}

	if el.persister != nil {
		if err := el.persister.Append(event); err != nil {
			return fmt.Errorf("persist event %s: %w", event.ID, err)
		}
	}
	return nil
}

// Load replaces the in-memory history, e.g. after restoring a save.
// Subscribers and the persister are not notified.
func (el *EventLog) Load(history []GameEvent) {
	el.mu.Lock()
	defer el.mu.Unlock()
	el.events = append(make([]GameEvent, 0, len(history)), history...)
}

// GetByType returns all events of a type.
func (el *EventLog) GetByType(t EventType) []GameEvent {
	el.mu.RLock()
	defer el.mu.RUnlock()

	var result []GameEvent
	for _, e := range el.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// GetByDate returns all events recorded on a game date.
func (el *EventLog) GetByDate(d calendar.Date) []GameEvent {
	el.mu.RLock()
	defer el.mu.RUnlock()

	var result []GameEvent
	for _, e := range el.events {
		if e.Date == d {
			result = append(result, e)
		}
	}
	return result
}

// Since returns events recorded on or after d.
func (el *EventLog) Since(d calendar.Date) []GameEvent {
	el.mu.RLock()
	defer el.mu.RUnlock()

	var result []GameEvent
	for _, e := range el.events {
		if !e.Date.Before(d) {
			result = append(result, e)
		}
	}
	return result
}

// Tail returns the last n events.
func (el *EventLog) Tail(n int) []GameEvent {
	el.mu.RLock()
	defer el.mu.RUnlock()

	if n <= 0 || n > len(el.events) {
		n = len(el.events)
	}
	return append([]GameEvent(nil), el.events[len(el.events)-n:]...)
}

// Len returns the number of recorded events.
func (el *EventLog) Len() int {
	el.mu.RLock()
	defer el.mu.RUnlock()
	return len(el.events)
}

// Replay returns a copy of the full history.
func (el *EventLog) Replay() []GameEvent {
	el.mu.RLock()
	defer el.mu.RUnlock()
	return append([]GameEvent(nil), el.events...)
}

// GenerateEventID creates a unique event identifier.
func GenerateEventID() string {
	return uuid.NewString()
}
