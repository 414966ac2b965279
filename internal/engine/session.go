package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abstogo/SpaceTycoon/internal/catalog"
	"github.com/abstogo/SpaceTycoon/internal/domain/calendar"
	"github.com/abstogo/SpaceTycoon/internal/domain/crew"
	"github.com/abstogo/SpaceTycoon/internal/domain/ledger"
	"github.com/abstogo/SpaceTycoon/internal/domain/ship"
	"github.com/abstogo/SpaceTycoon/internal/events"
	"github.com/abstogo/SpaceTycoon/internal/platform/logger"
	"github.com/abstogo/SpaceTycoon/internal/rng"
	"github.com/abstogo/SpaceTycoon/internal/savegame"
)

// DefaultRoute is the circuit of ports the ship travels.
var DefaultRoute = []string{"Port Alpha", "Port Beta", "Port Gamma", "Port Delta"}

const DefaultTravelDays = 3

// Options configures a new session.
type Options struct {
	StartingCredits int
	StartLocation   string
	StartDate       calendar.Date
	MaxCrew         int
	DegradationRate float64
	TravelDays      int
	DayLength       time.Duration
	Route           []string
}

// DefaultOptions returns the settings of a standard new game.
func DefaultOptions() Options {
	return Options{
		StartingCredits: savegame.DefaultCredits,
		StartLocation:   savegame.DefaultLocation,
		StartDate:       calendar.New(savegame.DefaultYear),
		MaxCrew:         crew.DefaultMaxCrew,
		DegradationRate: ship.DefaultDegradationRate,
		TravelDays:      DefaultTravelDays,
		DayLength:       DefaultDayLength,
		Route:           DefaultRoute,
	}
}

// Prompt is a fired event waiting for the player's choice.
type Prompt struct {
	ID          string            `json:"id"`
	Type        catalog.EventType `json:"type"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Choices     []string          `json:"choices"`
	Date        calendar.Date     `json:"date"`
}

// Travel is an in-progress jump to the next port.
type Travel struct {
	Destination   string `json:"destination"`
	DaysRemaining int    `json:"daysRemaining"`
}

// Result is returned by every player action. OK is false for expected
// failures such as insufficient credits; Message explains either way.
type Result struct {
	OK      bool     `json:"ok"`
	Message string   `json:"message"`
	Outcome *Outcome `json:"outcome,omitempty"`
}

func fail(format string, args ...any) Result {
	return Result{Message: fmt.Sprintf(format, args...)}
}

// GameSession owns the state of one game and everything that mutates it.
// It is not safe for concurrent use; wrap it in a Runner to share it.
type GameSession struct {
	id      string
	opts    Options
	catalog *catalog.Catalog
	rng     rng.Source
	logger  *logger.Logger
	journal *events.EventLog

	ledger    *ledger.Ledger
	ship      *ship.Ship
	crew      *crew.Roster
	scheduler *Scheduler
	clock     *SimulationClock

	location   string
	travel     *Travel
	prompts    []Prompt
	lastSignal crew.Signal
}

// NewGameSession creates a fresh game. The journal's session id becomes the
// session id.
func NewGameSession(opts Options, cat *catalog.Catalog, src rng.Source, journal *events.EventLog, log *logger.Logger) *GameSession {
	s := newSession(opts, cat, src, journal, log)
	s.record(events.EventTypeNotice, events.ActorSystem, "New game started at "+s.location+".", nil)
	s.logger.Info("New game session " + s.id + " at " + s.location)
	return s
}

// RestoreGameSession creates a session directly from a saved game. Unlike
// NewGameSession it journals only the load.
func RestoreGameSession(opts Options, cat *catalog.Catalog, src rng.Source, journal *events.EventLog, log *logger.Logger, snap *savegame.Snapshot) *GameSession {
	s := newSession(opts, cat, src, journal, log)
	s.Restore(snap)
	s.logger.Info("Restored game session " + s.id + " at " + s.location)
	return s
}

func newSession(opts Options, cat *catalog.Catalog, src rng.Source, journal *events.EventLog, log *logger.Logger) *GameSession {
	if len(opts.Route) == 0 {
		opts.Route = DefaultRoute
	}
	if opts.StartLocation == "" {
		opts.StartLocation = opts.Route[0]
	}
	if !opts.StartDate.Valid() {
		opts.StartDate = calendar.New(savegame.DefaultYear)
	}

	s := &GameSession{
		id:        journal.SessionID(),
		opts:      opts,
		catalog:   cat,
		rng:       src,
		logger:    log,
		journal:   journal,
		ledger:    ledger.New(opts.StartingCredits),
		ship:      ship.New(),
		crew:      crew.NewRoster(src, opts.MaxCrew),
		scheduler: NewScheduler(src, log),
		clock:     NewClock(opts.StartDate, opts.DayLength),
		location:  opts.StartLocation,
	}
	if opts.DegradationRate > 0 {
		s.ship.DegradationRate = opts.DegradationRate
	}
	for _, c := range crew.StartingCrew() {
		s.crew.Hire(c, opts.StartDate)
	}
	s.clock.OnDay(s.onDay)
	return s
}

// ID returns the session id.
func (s *GameSession) ID() string { return s.id }

// Credits returns the ledger balance.
func (s *GameSession) Credits() int { return s.ledger.Balance() }

// Location returns the current location string.
func (s *GameSession) Location() string { return s.location }

// Context returns the derived context tag of the current location.
func (s *GameSession) Context() ContextTag { return DeriveContext(s.location) }

// Date returns the current game date.
func (s *GameSession) Date() calendar.Date { return s.clock.Date() }

// Ship exposes the live ship.
func (s *GameSession) Ship() *ship.Ship { return s.ship }

// Crew exposes the live roster.
func (s *GameSession) Crew() *crew.Roster { return s.crew }

// Scheduler exposes the event scheduler.
func (s *GameSession) Scheduler() *Scheduler { return s.scheduler }

// Journal exposes the captain's log.
func (s *GameSession) Journal() *events.EventLog { return s.journal }

// Ledger exposes the credit ledger.
func (s *GameSession) Ledger() *ledger.Ledger { return s.ledger }

// Travel returns the jump in progress, if any.
func (s *GameSession) Travel() (Travel, bool) {
	if s.travel == nil {
		return Travel{}, false
	}
	return *s.travel, true
}

// Prompts returns the queued prompts, oldest first.
func (s *GameSession) Prompts() []Prompt {
	return append([]Prompt(nil), s.prompts...)
}

// Docked reports whether the ship is at a port.
func (s *GameSession) Docked() bool {
	return s.Context() == TagDocked
}

func (s *GameSession) state() State {
	return State{Ledger: s.ledger, Ship: s.ship, Crew: s.crew}
}

// record writes a journal entry dated today. Persistence failures are logged
// and never interrupt the game.
func (s *GameSession) record(t events.EventType, actor, message string, payload any) {
	if _, err := s.journal.Record(t, actor, s.clock.Date(), message, payload); err != nil {
		s.logger.Err(err, "journal write failed")
	}
}

// Advance moves the game forward by real elapsed time.
func (s *GameSession) Advance(delta time.Duration) int {
	return s.clock.Advance(delta)
}

// AdvanceDays runs n whole game days.
func (s *GameSession) AdvanceDays(n int) {
	s.clock.AdvanceDays(n)
}

// onDay is the per-day hook: wear, crew drift, daily events, travel
// progress, then trigger evaluation against the resulting context.
func (s *GameSession) onDay(date calendar.Date) {
	s.ship.Tick(1)
	s.crew.Tick(1)
	s.logger.Debug("day " + date.String())

	for _, t := range s.scheduler.OnDailyTick() {
		s.queue(t, events.ActorScheduler)
	}

	if s.travel != nil {
		s.travel.DaysRemaining--
		if s.travel.DaysRemaining <= 0 {
			s.arrive()
		}
	}

	for _, t := range s.scheduler.Evaluate(s.Context()) {
		s.queue(t, events.ActorScheduler)
	}

	s.checkCrew()
}

func (s *GameSession) checkCrew() {
	sig := s.crew.Signal()
	if sig == s.lastSignal {
		return
	}
	s.lastSignal = sig
	if sig == crew.SignalLowMorale {
		s.record(events.EventTypeCrew, events.ActorCrew, "Crew morale is running low.", nil)
	}
}

// queue turns a fired event type into a prompt.
func (s *GameSession) queue(t catalog.EventType, actor string) (Prompt, bool) {
	def, ok := s.catalog.Lookup(t)
	if !ok {
		s.logger.Warn("no definition for event " + string(t))
		return Prompt{}, false
	}

	p := Prompt{
		ID:          uuid.NewString(),
		Type:        t,
		Title:       def.Title,
		Description: def.Description,
		Choices:     def.ChoiceTexts(),
		Date:        s.clock.Date(),
	}
	s.prompts = append(s.prompts, p)
	s.record(events.EventTypeEventFired, actor, def.Title+": "+def.Description, map[string]string{
		"prompt_id": p.ID,
		"type":      string(t),
	})
	return p, true
}

// Trigger fires an event on the player's request.
func (s *GameSession) Trigger(t catalog.EventType) Result {
	if !s.catalog.Has(t) {
		return fail("Event not found.")
	}
	p, ok := s.queue(t, events.ActorPlayer)
	if !ok {
		return fail("Event not found.")
	}
	return Result{OK: true, Message: p.Title}
}

// Resolve applies one choice of a queued prompt and removes the prompt.
// A declined payment still resolves the prompt.
func (s *GameSession) Resolve(promptID string, choice int) Result {
	idx := -1
	for i, p := range s.prompts {
		if p.ID == promptID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fail("Event not found.")
	}

	p := s.prompts[idx]
	def, ok := s.catalog.Lookup(p.Type)
	if !ok {
		s.prompts = append(s.prompts[:idx], s.prompts[idx+1:]...)
		return fail("Event not found.")
	}
	if choice < 0 || choice >= len(def.Choices) {
		return fail("Invalid choice %d for %s.", choice, def.Title)
	}

	out := ApplyEffect(def.Choices[choice].Effect, s.state(), s.rng)
	s.prompts = append(s.prompts[:idx], s.prompts[idx+1:]...)

	s.record(events.EventTypeChoiceResolved, events.ActorPlayer, out.Log, map[string]any{
		"type":     string(p.Type),
		"kind":     string(out.Kind),
		"choice":   choice,
		"amount":   out.Amount,
		"declined": out.Declined,
	})
	s.logger.Event("CHOICE_RESOLVED", events.ActorPlayer, fmt.Sprintf("%s #%d: %s", p.Type, choice, out.Message))
	return Result{OK: true, Message: out.Message, Outcome: &out}
}

// NextDestination is the port after the current one on the route.
func (s *GameSession) NextDestination() string {
	for i, port := range s.opts.Route {
		if port == s.location {
			return s.opts.Route[(i+1)%len(s.opts.Route)]
		}
	}
	return s.opts.Route[0]
}

// Depart jumps toward the next port. The ship stays in transit for the
// configured number of days.
func (s *GameSession) Depart() Result {
	if s.travel != nil {
		return fail("Already in transit to %s.", s.travel.Destination)
	}
	if !s.ship.PerformJump() {
		return fail("The ship cannot jump: it needs %v fuel and engines above %v%%.",
			ship.JumpFuelCost, ship.MinJumpEngine)
	}

	dest := s.NextDestination()
	s.travel = &Travel{Destination: dest, DaysRemaining: s.opts.TravelDays}
	s.location = LocationInTransit
	eta := s.clock.Date().AddDays(s.opts.TravelDays)
	s.record(events.EventTypeDeparture, events.ActorShip, "Departed for "+dest+", arriving "+eta.String()+".", nil)

	if s.opts.TravelDays <= 0 {
		s.arrive()
	}
	return Result{OK: true, Message: "Jumping to " + dest + "."}
}

func (s *GameSession) arrive() {
	dest := s.travel.Destination
	s.travel = nil
	s.location = dest
	s.record(events.EventTypeArrival, events.ActorShip, "Arrived at "+dest+".", nil)

	for _, t := range s.scheduler.OnArrival(dest) {
		s.queue(t, events.ActorScheduler)
	}
}

// Refuel buys fuel at the current port. The purchase is capped at the space
// left in the tank and paid before any fuel is added.
func (s *GameSession) Refuel(amount int) Result {
	if !s.Docked() {
		return fail("Refueling is only possible while docked.")
	}
	if amount <= 0 {
		return fail("Refuel amount must be positive.")
	}
	if space := int(ship.MaxFuel - s.ship.Fuel); amount > space {
		amount = space
	}
	if amount == 0 {
		return fail("The tank is already full.")
	}

	cost := ship.RefuelCost(amount)
	if !s.ledger.Spend(cost) {
		return fail("Not enough credits to refuel: %s needed.", FormatCredits(cost))
	}
	s.ship.Refuel(amount)
	msg := fmt.Sprintf("Refueled %d units for %s.", amount, FormatCredits(cost))
	s.record(events.EventTypeRefuel, events.ActorPlayer, msg, map[string]int{"amount": amount, "cost": cost})
	return Result{OK: true, Message: msg}
}

// Maintain pays for and performs a service.
func (s *GameSession) Maintain(kind ship.MaintenanceKind) Result {
	if kind != ship.MaintenanceBasic && kind != ship.MaintenanceFull {
		return fail("Unknown maintenance type %q.", kind)
	}
	cost, _ := ship.MaintenanceCost(kind)
	if !s.ledger.Spend(cost) {
		return fail("You don't have enough credits for %s maintenance.", kind)
	}
	res := s.ship.PerformMaintenance(kind)
	msg := fmt.Sprintf("%s maintenance completed for %s.", titleCase(string(kind)), FormatCredits(res.Cost))
	s.record(events.EventTypeMaintenance, events.ActorPlayer, msg, res)
	return Result{OK: true, Message: msg}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
