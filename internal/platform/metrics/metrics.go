// Package metrics provides observability for the game server.
package metrics

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/abstogo/SpaceTycoon/internal/events"
)

// Collector gathers simulation and transport metrics.
type Collector struct {
	// Tick metrics
	TickCount      int64
	TickLatencySum int64 // nanoseconds
	TickLatencyMax int64
	DaysSimulated  int64
	LastTickTime   time.Time

	// Journal metrics
	EventsFired     int64
	ChoicesResolved int64
	JournalEntries  int64
	JournalErrors   int64

	// Save metrics
	SavesWritten int64
	SaveErrors   int64

	// WebSocket metrics
	WSConnectionsActive int64
	WSMessagesIn        int64
	WSMessagesOut       int64
	WSErrors            int64

	// System
	StartTime time.Time
	byType    map[events.EventType]int64
	mu        sync.RWMutex
}

// New creates an empty collector.
func New() *Collector {
	return &Collector{StartTime: time.Now(), byType: make(map[events.EventType]int64)}
}

// Global collector instance
var collector = New()

// Get returns the global collector.
func Get() *Collector {
	return collector
}

// RecordTick records a tick cycle completion.
func (c *Collector) RecordTick(latency time.Duration) {
	atomic.AddInt64(&c.TickCount, 1)
	atomic.AddInt64(&c.TickLatencySum, int64(latency))

	// Update max (non-atomic but acceptable for metrics)
	if int64(latency) > atomic.LoadInt64(&c.TickLatencyMax) {
		atomic.StoreInt64(&c.TickLatencyMax, int64(latency))
	}

	c.mu.Lock()
	c.LastTickTime = time.Now()
	c.mu.Unlock()
}

// RecordDays adds simulated days.
func (c *Collector) RecordDays(days int) {
	atomic.AddInt64(&c.DaysSimulated, int64(days))
}

// ObserveJournal counts a journal entry. It is meant to be registered as
// an events.Subscriber.
func (c *Collector) ObserveJournal(e events.GameEvent) {
	atomic.AddInt64(&c.JournalEntries, 1)
	switch e.Type {
	case events.EventTypeEventFired:
		atomic.AddInt64(&c.EventsFired, 1)
	case events.EventTypeChoiceResolved:
		atomic.AddInt64(&c.ChoicesResolved, 1)
	}

	c.mu.Lock()
	c.byType[e.Type]++
	c.mu.Unlock()
}

// RecordJournalError records a failed journal write.
func (c *Collector) RecordJournalError() {
	atomic.AddInt64(&c.JournalErrors, 1)
}

// RecordSave records a save attempt.
func (c *Collector) RecordSave(err error) {
	if err != nil {
		atomic.AddInt64(&c.SaveErrors, 1)
		return
	}
	atomic.AddInt64(&c.SavesWritten, 1)
}

// RecordWSConnection records WebSocket connection changes.
func (c *Collector) RecordWSConnection(delta int64) {
	atomic.AddInt64(&c.WSConnectionsActive, delta)
}

// RecordWSMessage records WebSocket messages.
func (c *Collector) RecordWSMessage(incoming bool) {
	if incoming {
		atomic.AddInt64(&c.WSMessagesIn, 1)
	} else {
		atomic.AddInt64(&c.WSMessagesOut, 1)
	}
}

// RecordWSError records a WebSocket error.
func (c *Collector) RecordWSError() {
	atomic.AddInt64(&c.WSErrors, 1)
}

// Snapshot returns current metrics as a map.
func (c *Collector) Snapshot() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tickCount := atomic.LoadInt64(&c.TickCount)

	var tickAvg float64
	if tickCount > 0 {
		tickAvg = float64(atomic.LoadInt64(&c.TickLatencySum)) / float64(tickCount) / 1e6 // ms
	}

	byType := make(map[string]int64, len(c.byType))
	for t, n := range c.byType {
		byType[string(t)] = n
	}

	return map[string]interface{}{
		"uptime_seconds": time.Since(c.StartTime).Seconds(),

		"tick": map[string]interface{}{
			"count":          tickCount,
			"avg_latency_ms": tickAvg,
			"max_latency_ms": float64(atomic.LoadInt64(&c.TickLatencyMax)) / 1e6,
			"days_simulated": atomic.LoadInt64(&c.DaysSimulated),
			"last_tick":      c.LastTickTime.Format(time.RFC3339),
		},

		"journal": map[string]interface{}{
			"entries":          atomic.LoadInt64(&c.JournalEntries),
			"events_fired":     atomic.LoadInt64(&c.EventsFired),
			"choices_resolved": atomic.LoadInt64(&c.ChoicesResolved),
			"errors":           atomic.LoadInt64(&c.JournalErrors),
			"by_type":          byType,
		},

		"saves": map[string]interface{}{
			"written": atomic.LoadInt64(&c.SavesWritten),
			"errors":  atomic.LoadInt64(&c.SaveErrors),
		},

		"websocket": map[string]interface{}{
			"active_connections": atomic.LoadInt64(&c.WSConnectionsActive),
			"messages_in":        atomic.LoadInt64(&c.WSMessagesIn),
			"messages_out":       atomic.LoadInt64(&c.WSMessagesOut),
			"errors":             atomic.LoadInt64(&c.WSErrors),
		},
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.HandlerFunc {
	return collector.Handler()
}

// Handler serves the collector as JSON.
func (c *Collector) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-cache")

		json.NewEncoder(w).Encode(c.Snapshot())
	}
}

// PrometheusHandler returns metrics in Prometheus format.
func PrometheusHandler() http.HandlerFunc {
	return collector.PrometheusHandler()
}

// PrometheusHandler serves the collector in Prometheus text format.
func (c *Collector) PrometheusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		// Tick metrics
		fmt.Fprintf(w, "# HELP tycoon_tick_count Total tick cycles\n")
		fmt.Fprintf(w, "# TYPE tycoon_tick_count counter\n")
		fmt.Fprintf(w, "tycoon_tick_count %d\n\n", atomic.LoadInt64(&c.TickCount))

		fmt.Fprintf(w, "# HELP tycoon_tick_latency_max_ms Maximum tick latency\n")
		fmt.Fprintf(w, "# TYPE tycoon_tick_latency_max_ms gauge\n")
		fmt.Fprintf(w, "tycoon_tick_latency_max_ms %.2f\n\n", float64(atomic.LoadInt64(&c.TickLatencyMax))/1e6)

		fmt.Fprintf(w, "# HELP tycoon_days_simulated Total game days simulated\n")
		fmt.Fprintf(w, "# TYPE tycoon_days_simulated counter\n")
		fmt.Fprintf(w, "tycoon_days_simulated %d\n\n", atomic.LoadInt64(&c.DaysSimulated))

		// Journal metrics
		fmt.Fprintf(w, "# HELP tycoon_events_fired Total random events fired\n")
		fmt.Fprintf(w, "# TYPE tycoon_events_fired counter\n")
		fmt.Fprintf(w, "tycoon_events_fired %d\n\n", atomic.LoadInt64(&c.EventsFired))

		fmt.Fprintf(w, "# HELP tycoon_choices_resolved Total event choices resolved\n")
		fmt.Fprintf(w, "# TYPE tycoon_choices_resolved counter\n")
		fmt.Fprintf(w, "tycoon_choices_resolved %d\n\n", atomic.LoadInt64(&c.ChoicesResolved))

		c.mu.RLock()
		types := make([]string, 0, len(c.byType))
		for t := range c.byType {
			types = append(types, string(t))
		}
		sort.Strings(types)
		fmt.Fprintf(w, "# HELP tycoon_journal_entries_total Journal entries by type\n")
		fmt.Fprintf(w, "# TYPE tycoon_journal_entries_total counter\n")
		for _, t := range types {
			fmt.Fprintf(w, "tycoon_journal_entries_total{type=%q} %d\n", t, c.byType[events.EventType(t)])
		}
		c.mu.RUnlock()
		fmt.Fprintln(w)

		fmt.Fprintf(w, "# HELP tycoon_journal_errors Total journal write errors\n")
		fmt.Fprintf(w, "# TYPE tycoon_journal_errors counter\n")
		fmt.Fprintf(w, "tycoon_journal_errors %d\n\n", atomic.LoadInt64(&c.JournalErrors))

		// Saves
		fmt.Fprintf(w, "# HELP tycoon_saves_total Save attempts\n")
		fmt.Fprintf(w, "# TYPE tycoon_saves_total counter\n")
		fmt.Fprintf(w, "tycoon_saves_total{result=\"ok\"} %d\n", atomic.LoadInt64(&c.SavesWritten))
		fmt.Fprintf(w, "tycoon_saves_total{result=\"error\"} %d\n\n", atomic.LoadInt64(&c.SaveErrors))

		// WebSocket metrics
		fmt.Fprintf(w, "# HELP tycoon_ws_connections Active WebSocket connections\n")
		fmt.Fprintf(w, "# TYPE tycoon_ws_connections gauge\n")
		fmt.Fprintf(w, "tycoon_ws_connections %d\n\n", atomic.LoadInt64(&c.WSConnectionsActive))

		fmt.Fprintf(w, "# HELP tycoon_ws_messages_total Total WebSocket messages\n")
		fmt.Fprintf(w, "# TYPE tycoon_ws_messages_total counter\n")
		fmt.Fprintf(w, "tycoon_ws_messages_total{direction=\"in\"} %d\n", atomic.LoadInt64(&c.WSMessagesIn))
		fmt.Fprintf(w, "tycoon_ws_messages_total{direction=\"out\"} %d\n", atomic.LoadInt64(&c.WSMessagesOut))
	}
}
