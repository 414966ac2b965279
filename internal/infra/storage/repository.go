// Package storage provides the persistence layer for the game server.
// This package implements the repository pattern to keep the domain pure.
package storage

import (
	"context"
	"time"
)

// GameEvent mirrors the journal entry structure for persistence.
// The domain packages should NOT import this; use interfaces instead.
type GameEvent struct {
	ID        string         `json:"id" db:"id"`
	SessionID string         `json:"session_id" db:"session_id"`
	Timestamp time.Time      `json:"timestamp" db:"timestamp"`
	EventType string         `json:"event_type" db:"event_type"`
	ActorID   string         `json:"actor_id" db:"actor_id"`
	GameYear  int            `json:"game_year" db:"game_year"`
	GameDay   int            `json:"game_day" db:"game_day"`
	Message   string         `json:"message" db:"message"`
	Payload   map[string]any `json:"payload" db:"payload"`
}

// EventRepository defines the interface for journal persistence.
type EventRepository interface {
	// Append adds a new event to the immutable journal.
	Append(ctx context.Context, event GameEvent) error

	// GetBySessionID retrieves all events of a session in append order.
	GetBySessionID(ctx context.Context, sessionID string) ([]GameEvent, error)

	// GetByEventType retrieves all events of a specific type.
	GetByEventType(ctx context.Context, sessionID string, eventType string) ([]GameEvent, error)

	// GetSince retrieves events recorded on or after a game date.
	GetSince(ctx context.Context, sessionID string, year, day int) ([]GameEvent, error)

	// DeleteSession drops a session's journal.
	DeleteSession(ctx context.Context, sessionID string) error
}

// SaveRecord is one stored game document.
type SaveRecord struct {
	SessionID string    `json:"session_id" db:"session_id"`
	Version   int       `json:"version" db:"version"`
	Credits   int       `json:"credits" db:"credits"`
	Location  string    `json:"location" db:"location"`
	GameDate  string    `json:"game_date" db:"game_date"`
	Document  []byte    `json:"-" db:"document"`
	SavedAt   time.Time `json:"saved_at" db:"saved_at"`
}

// SaveRepository defines the interface for saved games.
type SaveRepository interface {
	// Upsert writes or replaces a session's save.
	Upsert(ctx context.Context, rec SaveRecord) error

	// Get returns a session's save, nil when there is none.
	Get(ctx context.Context, sessionID string) (*SaveRecord, error)

	// List returns save headers, most recent first. Documents are not loaded.
	List(ctx context.Context) ([]SaveRecord, error)

	// Delete removes a session's save.
	Delete(ctx context.Context, sessionID string) error
}
