// Package autosave writes the running game to storage in the background.
package autosave

import (
	"context"
	"time"

	"github.com/abstogo/SpaceTycoon/internal/events"
	"github.com/abstogo/SpaceTycoon/internal/platform/logger"
)

// SaveFunc persists the current game.
type SaveFunc func(ctx context.Context) error

// Worker saves periodically and whenever the journal records one of the
// trigger event types.
type Worker struct {
	save     SaveFunc
	interval time.Duration
	triggers map[events.EventType]bool
	pending  chan events.EventType
	logger   *logger.Logger
}

// NewWorker creates a worker. interval <= 0 disables the periodic loop.
// With no trigger types given, arrivals trigger a save.
func NewWorker(save SaveFunc, interval time.Duration, log *logger.Logger, triggers ...events.EventType) *Worker {
	if len(triggers) == 0 {
		triggers = []events.EventType{events.EventTypeArrival}
	}
	w := &Worker{
		save:     save,
		interval: interval,
		triggers: make(map[events.EventType]bool, len(triggers)),
		pending:  make(chan events.EventType, 1),
		logger:   log,
	}
	for _, t := range triggers {
		w.triggers[t] = true
	}
	return w
}

// Watch subscribes the worker to journal.
func (w *Worker) Watch(journal *events.EventLog) {
	journal.Subscribe(w.observe)
}

// observe runs inside the journal's caller, often under the session lock,
// so it only queues the request.
func (w *Worker) observe(e events.GameEvent) {
	if !w.triggers[e.Type] {
		return
	}
	select {
	case w.pending <- e.Type:
	default:
	}
}

// Run blocks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	var tick <-chan time.Time
	if w.interval > 0 {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	w.logger.Info("Autosave worker started")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Autosave worker stopped")
			return
		case <-tick:
			w.run(ctx, "interval")
		case t := <-w.pending:
			w.run(ctx, string(t))
		}
	}
}

func (w *Worker) run(ctx context.Context, reason string) {
	if err := w.save(ctx); err != nil {
		w.logger.Err(err, "Autosave ("+reason+") failed")
		return
	}
	w.logger.Debug("Autosave (" + reason + ") complete")
}
