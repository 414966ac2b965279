package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// SQLiteEventRepository implements EventRepository for SQLite.
type SQLiteEventRepository struct {
	db *sql.DB
}

var _ EventRepository = (*SQLiteEventRepository)(nil)

func NewSQLiteEventRepository(db *sql.DB) *SQLiteEventRepository {
	return &SQLiteEventRepository{db: db}
}

func (r *SQLiteEventRepository) Append(ctx context.Context, event GameEvent) error {
	payload := event.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	query := `
		INSERT INTO events (id, session_id, seq, timestamp, event_type, actor_id, game_year, game_day, message, payload)
		VALUES (?, ?, COALESCE((SELECT MAX(seq) FROM events WHERE session_id = ?), 0) + 1, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		event.ID, event.SessionID, event.SessionID, event.Timestamp, event.EventType, event.ActorID,
		event.GameYear, event.GameDay, event.Message, string(payloadBytes),
	)
	if err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

const eventColumns = `id, session_id, timestamp, event_type, actor_id, game_year, game_day, message, payload`

func (r *SQLiteEventRepository) getMany(ctx context.Context, query string, args ...any) ([]GameEvent, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []GameEvent
	for rows.Next() {
		var e GameEvent
		var payloadStr string
		err := rows.Scan(
			&e.ID, &e.SessionID, &e.Timestamp, &e.EventType, &e.ActorID,
			&e.GameYear, &e.GameDay, &e.Message, &payloadStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		if err := json.Unmarshal([]byte(payloadStr), &e.Payload); err != nil {
			return nil, fmt.Errorf("failed to decode payload of %s: %w", e.ID, err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *SQLiteEventRepository) GetBySessionID(ctx context.Context, sessionID string) ([]GameEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE session_id = ? ORDER BY seq ASC`
	return r.getMany(ctx, query, sessionID)
}

func (r *SQLiteEventRepository) GetByEventType(ctx context.Context, sessionID string, eventType string) ([]GameEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE session_id = ? AND event_type = ? ORDER BY seq ASC`
	return r.getMany(ctx, query, sessionID, eventType)
}

func (r *SQLiteEventRepository) GetSince(ctx context.Context, sessionID string, year, day int) ([]GameEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM events
		WHERE session_id = ? AND (game_year > ? OR (game_year = ? AND game_day >= ?))
		ORDER BY seq ASC`
	return r.getMany(ctx, query, sessionID, year, year, day)
}

func (r *SQLiteEventRepository) DeleteSession(ctx context.Context, sessionID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("failed to delete events of %s: %w", sessionID, err)
	}
	return nil
}

// ---------------------------------------------------------
// SQLiteSaveRepository
// ---------------------------------------------------------

type SQLiteSaveRepository struct {
	db *sql.DB
}

var _ SaveRepository = (*SQLiteSaveRepository)(nil)

func NewSQLiteSaveRepository(db *sql.DB) *SQLiteSaveRepository {
	return &SQLiteSaveRepository{db: db}
}

func (r *SQLiteSaveRepository) Upsert(ctx context.Context, rec SaveRecord) error {
	query := `
		INSERT INTO saves (session_id, version, credits, location, game_date, document, saved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			version=excluded.version,
			credits=excluded.credits,
			location=excluded.location,
			game_date=excluded.game_date,
			document=excluded.document,
			saved_at=excluded.saved_at
	`
	_, err := r.db.ExecContext(ctx, query,
		rec.SessionID, rec.Version, rec.Credits, rec.Location, rec.GameDate, string(rec.Document), rec.SavedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert save %s: %w", rec.SessionID, err)
	}
	return nil
}

func (r *SQLiteSaveRepository) Get(ctx context.Context, sessionID string) (*SaveRecord, error) {
	query := `SELECT session_id, version, credits, location, game_date, document, saved_at FROM saves WHERE session_id = ?`
	var rec SaveRecord
	var doc string
	err := r.db.QueryRowContext(ctx, query, sessionID).Scan(
		&rec.SessionID, &rec.Version, &rec.Credits, &rec.Location, &rec.GameDate, &doc, &rec.SavedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get save %s: %w", sessionID, err)
	}
	rec.Document = []byte(doc)
	return &rec, nil
}

func (r *SQLiteSaveRepository) List(ctx context.Context) ([]SaveRecord, error) {
	query := `SELECT session_id, version, credits, location, game_date, saved_at FROM saves ORDER BY saved_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list saves: %w", err)
	}
	defer rows.Close()

	var recs []SaveRecord
	for rows.Next() {
		var rec SaveRecord
		if err := rows.Scan(&rec.SessionID, &rec.Version, &rec.Credits, &rec.Location, &rec.GameDate, &rec.SavedAt); err != nil {
			return nil, fmt.Errorf("failed to scan save: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (r *SQLiteSaveRepository) Delete(ctx context.Context, sessionID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM saves WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("failed to delete save %s: %w", sessionID, err)
	}
	return nil
}
