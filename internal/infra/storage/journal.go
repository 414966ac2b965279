package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/abstogo/SpaceTycoon/internal/domain/calendar"
	"github.com/abstogo/SpaceTycoon/internal/events"
)

// JournalPersister writes session journal entries through to an EventRepository.
type JournalPersister struct {
	repo    EventRepository
	timeout time.Duration
}

var _ events.EventPersister = (*JournalPersister)(nil)

// NewJournalPersister creates a write-through persister.
func NewJournalPersister(repo EventRepository) *JournalPersister {
	return &JournalPersister{repo: repo, timeout: 5 * time.Second}
}

// Append implements events.EventPersister.
func (p *JournalPersister) Append(e events.GameEvent) error {
	row, err := FromJournal(e)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	return p.repo.Append(ctx, row)
}

// FromJournal converts a journal entry into its stored form.
func FromJournal(e events.GameEvent) (GameEvent, error) {
	payload := map[string]any{}
	if e.Payload != nil {
		raw, err := json.Marshal(e.Payload)
		if err != nil {
			return GameEvent{}, fmt.Errorf("failed to marshal payload: %w", err)
		}
		// scalar payloads are wrapped so the column always holds an object
		if err := json.Unmarshal(raw, &payload); err != nil {
			payload = map[string]any{"value": e.Payload}
		}
	}

	return GameEvent{
		ID:        e.ID,
		SessionID: e.SessionID,
		Timestamp: e.Timestamp,
		EventType: string(e.Type),
		ActorID:   e.ActorID,
		GameYear:  e.Date.Year,
		GameDay:   e.Date.Day,
		Message:   e.Message,
		Payload:   payload,
	}, nil
}

// ToJournal converts a stored row back into a journal entry.
func ToJournal(e GameEvent) events.GameEvent {
	var payload any
	if len(e.Payload) > 0 {
		payload = e.Payload
	}
	return events.GameEvent{
		ID:        e.ID,
		SessionID: e.SessionID,
		Timestamp: e.Timestamp,
		Type:      events.EventType(e.EventType),
		ActorID:   e.ActorID,
		Date:      calendar.Date{Year: e.GameYear, Day: e.GameDay},
		Message:   e.Message,
		Payload:   payload,
	}
}

// LoadJournal reads a session's full journal.
func LoadJournal(ctx context.Context, repo EventRepository, sessionID string) ([]events.GameEvent, error) {
	rows, err := repo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal of %s: %w", sessionID, err)
	}
	out := make([]events.GameEvent, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToJournal(r))
	}
	return out, nil
}
