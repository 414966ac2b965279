package engine

import (
	"fmt"

	"github.com/abstogo/SpaceTycoon/internal/catalog"
	"github.com/abstogo/SpaceTycoon/internal/platform/logger"
	"github.com/abstogo/SpaceTycoon/internal/rng"
)

// Instance is a pending, one-shot event entry.
type Instance struct {
	Type        catalog.EventType `json:"type"`
	Probability float64           `json:"probability"`
	Context     ActivationContext `json:"context"`
	Source      string            `json:"source"`
}

const (
	SourceSeed  = "seed"
	SourceDaily = "daily"
)

// Daily and arrival probabilities.
const (
	DailyMaintenanceChance = 0.3
	DailyEncounterChance   = 0.5
	DailyMarketChance      = 0.4

	ArrivalTradeChance   = 0.6
	ArrivalMissionChance = 0.4
)

// Scheduler keeps the stack of pending event instances and decides which fire.
// Not safe for concurrent use; the owning session serializes access.
type Scheduler struct {
	pending []Instance
	rng     rng.Source
	logger  *logger.Logger
}

// NewScheduler creates a scheduler seeded with the default instances.
func NewScheduler(src rng.Source, log *logger.Logger) *Scheduler {
	s := &Scheduler{rng: src, logger: log}
	s.SeedDefaults()
	return s
}

// SeedDefaults resets the stack to the three default instances.
func (s *Scheduler) SeedDefaults() {
	s.pending = []Instance{
		{Type: catalog.RandomEncounter, Probability: 0.3, Context: ContextInTransit, Source: SourceSeed},
		{Type: catalog.MarketFluctuation, Probability: 0.4, Context: ContextDocked, Source: SourceSeed},
		{Type: catalog.RandomEncounter, Probability: 0.2, Context: ContextAny, Source: SourceSeed},
	}
}

// Push appends an instance to the stack.
func (s *Scheduler) Push(inst Instance) {
	s.pending = append(s.pending, inst)
	s.logger.Debug(fmt.Sprintf("queued %s@%.2f/%s", inst.Type, inst.Probability, inst.Context))
}

// Pending returns a copy of the stack.
func (s *Scheduler) Pending() []Instance {
	return append([]Instance(nil), s.pending...)
}

// Restore replaces the stack, e.g. from a saved game.
func (s *Scheduler) Restore(pending []Instance) {
	s.pending = append([]Instance(nil), pending...)
}

// Evaluate rolls every pending instance whose context matches tag. Each one
// that fires is removed from the stack; the fired types are returned in stack
// order. Non-matching instances do not draw.
func (s *Scheduler) Evaluate(tag ContextTag) []catalog.EventType {
	var fired []catalog.EventType
	kept := s.pending[:0]

	for _, inst := range s.pending {
		if inst.Context.Matches(tag) && rng.Chance(s.rng, inst.Probability) {
			fired = append(fired, inst.Type)
			s.logger.Event("EVENT_FIRED", "scheduler", string(inst.Type))
			continue
		}
		kept = append(kept, inst)
	}
	s.pending = kept
	return fired
}

// OnDailyTick may force a maintenance event and queue new encounter and
// market instances. Forced events are returned and never enter the stack.
func (s *Scheduler) OnDailyTick() []catalog.EventType {
	var fired []catalog.EventType

	if rng.Chance(s.rng, DailyMaintenanceChance) {
		fired = append(fired, catalog.ShipMaintenance)
		s.logger.Event("EVENT_FIRED", "scheduler", string(catalog.ShipMaintenance))
	}
	if rng.Chance(s.rng, DailyEncounterChance) {
		s.Push(Instance{Type: catalog.RandomEncounter, Probability: 0.2, Context: ContextInTransit, Source: SourceDaily})
	}
	if rng.Chance(s.rng, DailyMarketChance) {
		s.Push(Instance{Type: catalog.MarketFluctuation, Probability: 0.3, Context: ContextDocked, Source: SourceDaily})
	}
	return fired
}

// OnArrival rolls the port events for a newly reached location.
func (s *Scheduler) OnArrival(location string) []catalog.EventType {
	if !IsPort(location) {
		return nil
	}

	var fired []catalog.EventType
	if rng.Chance(s.rng, ArrivalTradeChance) {
		fired = append(fired, catalog.TradeOpportunity)
	}
	if rng.Chance(s.rng, ArrivalMissionChance) {
		fired = append(fired, catalog.MissionAvailable)
	}
	for _, t := range fired {
		s.logger.Event("EVENT_FIRED", "scheduler", string(t)+" at "+location)
	}
	return fired
}
