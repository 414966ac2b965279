package metrics

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abstogo/SpaceTycoon/internal/domain/calendar"
	"github.com/abstogo/SpaceTycoon/internal/events"
)

func TestCollector_JournalSubscriber(t *testing.T) {
	// Setup
	c := New()
	journal := events.NewEventLog("m1", nil)
	journal.Subscribe(c.ObserveJournal)
	date := calendar.New(1105)

	// Act
	journal.Record(events.EventTypeEventFired, events.ActorScheduler, date, "Trade Opportunity", nil)
	journal.Record(events.EventTypeEventFired, events.ActorScheduler, date, "Ship Maintenance", nil)
	journal.Record(events.EventTypeChoiceResolved, events.ActorPlayer, date, "Accepted", nil)
	journal.Record(events.EventTypeArrival, events.ActorShip, date, "Arrived", nil)

	// Assert
	assert.Equal(t, int64(4), c.JournalEntries)
	assert.Equal(t, int64(2), c.EventsFired)
	assert.Equal(t, int64(1), c.ChoicesResolved)

	snap := c.Snapshot()
	byType := snap["journal"].(map[string]interface{})["by_type"].(map[string]int64)
	assert.Equal(t, int64(2), byType["EVENT_FIRED"])
}

func TestCollector_TicksAndSaves(t *testing.T) {
	c := New()

	c.RecordTick(2 * time.Millisecond)
	c.RecordTick(5 * time.Millisecond)
	c.RecordDays(3)
	c.RecordSave(nil)
	c.RecordSave(errors.New("locked"))

	tick := c.Snapshot()["tick"].(map[string]interface{})
	assert.Equal(t, int64(2), tick["count"])
	assert.InDelta(t, 3.5, tick["avg_latency_ms"], 1e-9)
	assert.InDelta(t, 5.0, tick["max_latency_ms"], 1e-9)
	assert.Equal(t, int64(3), tick["days_simulated"])
	assert.Equal(t, int64(1), c.SavesWritten)
	assert.Equal(t, int64(1), c.SaveErrors)
}

func TestCollector_Handlers(t *testing.T) {
	c := New()
	c.ObserveJournal(events.GameEvent{Type: events.EventTypeTrade})
	c.RecordWSConnection(1)
	c.RecordWSMessage(true)

	rec := httptest.NewRecorder()
	c.Handler()(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "journal")

	rec = httptest.NewRecorder()
	c.PrometheusHandler()(rec, httptest.NewRequest("GET", "/metrics/prometheus", nil))
	text := rec.Body.String()
	assert.Contains(t, text, `tycoon_journal_entries_total{type="TRADE"} 1`)
	assert.Contains(t, text, "tycoon_ws_connections 1")
	assert.Contains(t, text, `tycoon_ws_messages_total{direction="in"} 1`)
}
