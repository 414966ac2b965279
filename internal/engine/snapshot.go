package engine

import (
	"github.com/abstogo/SpaceTycoon/internal/catalog"
	"github.com/abstogo/SpaceTycoon/internal/domain/ledger"
	"github.com/abstogo/SpaceTycoon/internal/events"
	"github.com/abstogo/SpaceTycoon/internal/savegame"
)

// Snapshot captures the session for the persistence collaborator.
func (s *GameSession) Snapshot() *savegame.Snapshot {
	snap := &savegame.Snapshot{
		Version:  savegame.Version,
		Credits:  s.ledger.Balance(),
		Location: s.location,
		Date:     s.clock.Date(),
		Ship:     savegame.StateOf(s.ship),
		Crew:     s.crew.Members(),
		Morale:   s.crew.Morale(),
		Pending:  []savegame.PendingEvent{},
	}
	if s.travel != nil {
		snap.Travel = &savegame.Travel{Destination: s.travel.Destination, DaysRemaining: s.travel.DaysRemaining}
	}
	for _, inst := range s.scheduler.Pending() {
		snap.Pending = append(snap.Pending, savegame.PendingEvent{
			Type:        string(inst.Type),
			Probability: inst.Probability,
			Context:     string(inst.Context),
			Source:      inst.Source,
		})
	}
	for _, p := range s.prompts {
		snap.Prompts = append(snap.Prompts, savegame.PromptRecord{ID: p.ID, Type: string(p.Type), Date: p.Date})
	}
	return snap
}

// Restore replaces the session state with a validated snapshot. A snapshot
// without a pending list gets the default instances.
func (s *GameSession) Restore(snap *savegame.Snapshot) {
	s.ledger = ledger.New(snap.Credits)
	s.location = snap.Location
	s.clock.SetDate(snap.Date)
	snap.Ship.Apply(s.ship)
	s.crew.Restore(snap.Crew)

	s.travel = nil
	if snap.Travel != nil {
		s.travel = &Travel{Destination: snap.Travel.Destination, DaysRemaining: snap.Travel.DaysRemaining}
	}

	if snap.Pending == nil {
		s.scheduler.SeedDefaults()
	} else {
		pending := make([]Instance, 0, len(snap.Pending))
		for _, p := range snap.Pending {
			pending = append(pending, Instance{
				Type:        catalog.EventType(p.Type),
				Probability: p.Probability,
				Context:     ActivationContext(p.Context),
				Source:      p.Source,
			})
		}
		s.scheduler.Restore(pending)
	}

	s.prompts = s.prompts[:0]
	for _, rec := range snap.Prompts {
		def, ok := s.catalog.Lookup(catalog.EventType(rec.Type))
		if !ok {
			continue
		}
		s.prompts = append(s.prompts, Prompt{
			ID:          rec.ID,
			Type:        def.Type,
			Title:       def.Title,
			Description: def.Description,
			Choices:     def.ChoiceTexts(),
			Date:        rec.Date,
		})
	}
	s.lastSignal = s.crew.Signal()

	s.record(events.EventTypeGameLoaded, events.ActorSystem, "Game loaded.", nil)
}
