package engine

import (
	"github.com/abstogo/SpaceTycoon/internal/catalog"
	"github.com/abstogo/SpaceTycoon/internal/domain/ship"
)

// worstCaseCost is the most an effect can take from the ledger.
func worstCaseCost(e catalog.Effect) int {
	switch e.Kind {
	case catalog.KindSpendAttempt:
		return e.Max
	case catalog.KindShipMaintenance:
		if e.Cost > 0 {
			return e.Cost
		}
		cost, _ := ship.MaintenanceCost(ship.MaintenanceKind(e.Maintenance))
		return cost
	case catalog.KindCrewTrain:
		return e.Cost
	case catalog.KindGamble:
		var worst int
		for _, b := range []*catalog.Effect{e.Win, e.Lose} {
			if b != nil {
				worst = max(worst, worstCaseCost(*b))
			}
		}
		return worst
	}
	return 0
}

// AutoChoice picks the first choice the ledger can cover in the worst case.
// When nothing is affordable it picks the last choice, which in every
// shipped template costs nothing.
func (s *GameSession) AutoChoice(def catalog.Definition) int {
	for i, c := range def.Choices {
		if s.ledger.CanAfford(worstCaseCost(c.Effect)) {
			return i
		}
	}
	return len(def.Choices) - 1
}

// AutoResolve resolves every queued prompt in order with AutoChoice.
func (s *GameSession) AutoResolve() []Result {
	var results []Result
	for len(s.prompts) > 0 {
		p := s.prompts[0]
		def, ok := s.catalog.Lookup(p.Type)
		if !ok {
			s.prompts = s.prompts[1:]
			continue
		}
		results = append(results, s.Resolve(p.ID, s.AutoChoice(def)))
	}
	return results
}
