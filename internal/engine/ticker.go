package engine

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/abstogo/SpaceTycoon/internal/platform/logger"
)

// TickRate is how often the runner advances its session in real time.
const TickRate = 250 * time.Millisecond

// AdvanceHook is called after a tick that completed at least one game day.
type AdvanceHook func(s *GameSession, days int)

// Runner drives one session from a ticker and serializes every access to it.
// The session itself is single-threaded; all callers go through Do or View.
type Runner struct {
	mu       sync.Mutex
	session  *GameSession
	logger   *logger.Logger
	tickRate time.Duration
	hooks    []AdvanceHook
	observe  func(time.Duration)
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewRunner wraps a session. tickRate <= 0 selects TickRate.
func NewRunner(session *GameSession, log *logger.Logger, tickRate time.Duration) *Runner {
	if tickRate <= 0 {
		tickRate = TickRate
	}
	return &Runner{
		session:  session,
		logger:   log,
		tickRate: tickRate,
		stopChan: make(chan struct{}),
	}
}

// OnAdvance registers a hook run under the session lock.
func (r *Runner) OnAdvance(h AdvanceHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = append(r.hooks, h)
}

// ObserveTicks registers a function receiving the duration of every tick.
func (r *Runner) ObserveTicks(fn func(time.Duration)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observe = fn
}

// Start begins the game loop. Call in a goroutine.
func (r *Runner) Start(ctx context.Context) {
	r.logger.Info("Session runner started, tick " + r.tickRate.String())

	ticker := time.NewTicker(r.tickRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Session runner stopped by context.")
			return
		case <-r.stopChan:
			r.logger.Info("Session runner stopped manually.")
			return
		case <-ticker.C:
			r.Tick(r.tickRate)
		}
	}
}

// Stop gracefully stops the loop. It is safe to call more than once.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() { close(r.stopChan) })
}

// Tick advances the session by delta and runs hooks if days passed.
func (r *Runner) Tick(delta time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	days := r.session.Advance(delta)
	if days > 0 {
		r.logger.Debug("advanced " + strconv.Itoa(days) + " day(s) to " + r.session.Date().String())
		for _, h := range r.hooks {
			h(r.session, days)
		}
	}
	if r.observe != nil {
		r.observe(time.Since(start))
	}
	return days
}

// Do runs a mutating action against the session.
func (r *Runner) Do(fn func(s *GameSession) Result) Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.session)
}

// View runs a read-only function against the session.
func (r *Runner) View(fn func(s *GameSession)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.session)
}

// Status is a locked shortcut for the session status.
func (r *Runner) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session.Status()
}
