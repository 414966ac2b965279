// Package network - journal.go
// Captain's log API: the session journal, recaps and per-type counts.
package network

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/abstogo/SpaceTycoon/internal/domain/calendar"
	"github.com/abstogo/SpaceTycoon/internal/engine"
	"github.com/abstogo/SpaceTycoon/internal/events"
)

// JournalResponse is the API response for the journal.
type JournalResponse struct {
	SessionID   string         `json:"session_id"`
	TotalEvents int            `json:"total_events"`
	FilteredBy  string         `json:"filtered_by,omitempty"`
	GeneratedAt string         `json:"generated_at"`
	Entries     []JournalEntry `json:"entries"`
}

func (a *API) journal() (*events.EventLog, string) {
	var journal *events.EventLog
	var id string
	a.runner.View(func(s *engine.GameSession) {
		journal = s.Journal()
		id = s.ID()
	})
	return journal, id
}

// HandleJournal returns the session journal.
// GET /api/journal?type=TRADE&since=1105-004&date=1105-006&tail=20
func (a *API) HandleJournal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	since, err := dateParam(q.Get("since"))
	if err != nil {
		a.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	on, err := dateParam(q.Get("date"))
	if err != nil {
		a.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	tail := 0
	if s := q.Get("tail"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			a.jsonError(w, "Invalid tail", http.StatusBadRequest)
			return
		}
		tail = n
	}
	eventType := events.EventType(q.Get("type"))

	journal, id := a.journal()
	var source []events.GameEvent
	switch {
	case on != nil:
		source = journal.GetByDate(*on)
	case eventType != "":
		source = journal.GetByType(eventType)
	case since != nil:
		source = journal.Since(*since)
	default:
		source = journal.Tail(tail)
	}

	entries := make([]JournalEntry, 0, len(source))
	for _, e := range source {
		if since != nil && e.Date.Before(*since) {
			continue
		}
		if eventType != "" && e.Type != eventType {
			continue
		}
		entries = append(entries, NewJournalEntry(e))
	}
	if tail > 0 && tail < len(entries) {
		entries = entries[len(entries)-tail:]
	}

	var filters []string
	if on != nil {
		filters = append(filters, "on "+on.String())
	}
	if since != nil {
		filters = append(filters, "since "+since.String())
	}
	if eventType != "" {
		filters = append(filters, "type "+string(eventType))
	}
	filterDesc := strings.Join(filters, ", ")

	a.jsonSuccess(w, JournalResponse{
		SessionID:   id,
		TotalEvents: len(entries),
		FilteredBy:  filterDesc,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Entries:     entries,
	})
}

func dateParam(s string) (*calendar.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := calendar.Parse(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// HandleRecap rebuilds a recap and the credit flow from stored history.
// GET /api/journal/recap?since=1105-001
func (a *API) HandleRecap(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if a.recon == nil {
		a.jsonError(w, "Recap requires storage", http.StatusServiceUnavailable)
		return
	}

	_, id := a.journal()
	since := calendar.Date{Year: 0, Day: 1}
	if s := r.URL.Query().Get("since"); s != "" {
		d, err := calendar.Parse(s)
		if err != nil {
			a.jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		since = d
	}

	recap, err := a.recon.GenerateRecap(r.Context(), id, since)
	if err != nil {
		a.logger.Err(err, "recap failed")
		a.jsonError(w, "Failed to build recap", http.StatusInternalServerError)
		return
	}
	flow, err := a.recon.RebuildCreditFlow(r.Context(), id)
	if err != nil {
		a.logger.Err(err, "credit flow failed")
		a.jsonError(w, "Failed to build recap", http.StatusInternalServerError)
		return
	}

	a.jsonSuccess(w, map[string]interface{}{
		"session_id": id,
		"recap":      recap,
		"credits": map[string]int{
			"earned": flow.Earned,
			"spent":  flow.Spent,
			"net":    flow.Net(),
		},
	})
}

// HandleStats returns journal entry counts by type.
// GET /api/journal/stats
func (a *API) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	journal, _ := a.journal()
	all := journal.Replay()
	stats := map[string]int{"total_events": len(all)}
	for _, e := range all {
		stats[string(e.Type)]++
	}

	a.jsonSuccess(w, map[string]interface{}{
		"generated_at": time.Now().Format(time.RFC3339),
		"stats":        stats,
	})
}
