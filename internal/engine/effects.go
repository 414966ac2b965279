package engine

import (
	"github.com/abstogo/SpaceTycoon/internal/catalog"
	"github.com/abstogo/SpaceTycoon/internal/domain/crew"
	"github.com/abstogo/SpaceTycoon/internal/domain/ledger"
	"github.com/abstogo/SpaceTycoon/internal/domain/ship"
	"github.com/abstogo/SpaceTycoon/internal/rng"
)

// State is the live game state an effect may touch.
type State struct {
	Ledger *ledger.Ledger
	Ship   *ship.Ship
	Crew   *crew.Roster
}

// Outcome reports what an effect did.
type Outcome struct {
	Kind catalog.EffectKind `json:"kind"`
	// Message is shown to the player, Log is written to the journal.
	Message string `json:"message"`
	Log     string `json:"log"`
	// Amount is the number of credits gained or spent, 0 when none moved.
	Amount int `json:"amount"`
	// Declined is set when a required payment could not be made; nothing
	// else was changed in that case.
	Declined bool `json:"declined"`
}

const defaultDeclinedMessage = "You don't have enough credits."

// ApplyEffect interprets e against st. It is the only place choice effects
// mutate game state.
func ApplyEffect(e catalog.Effect, st State, src rng.Source) Outcome {
	out := Outcome{Kind: e.Kind}

	switch e.Kind {
	case catalog.KindCreditDelta:
		out.Amount = rng.Between(src, e.Min, e.Max)
		st.Ledger.Add(out.Amount)

	case catalog.KindSpendAttempt:
		out.Amount = rng.Between(src, e.Min, e.Max)
		if !st.Ledger.Spend(out.Amount) {
			return declined(e, out)
		}

	case catalog.KindShipMaintenance:
		kind := ship.MaintenanceKind(e.Maintenance)
		cost, _ := ship.MaintenanceCost(kind)
		if e.Cost > 0 {
			cost = e.Cost
		}
		out.Amount = cost
		if !st.Ledger.Spend(cost) {
			return declined(e, out)
		}
		st.Ship.PerformMaintenance(kind)

	case catalog.KindShipWear:
		st.Ship.Wear(e.Amount)

	case catalog.KindCrewTrain:
		out.Amount = e.Cost
		if !st.Ledger.Spend(e.Cost) {
			return declined(e, out)
		}
		st.Crew.ImproveAllSkillsRandomly()

	case catalog.KindCrewRest:
		st.Crew.RestAll()

	case catalog.KindGamble:
		branch := e.Lose
		if src.Float64() > e.Threshold {
			branch = e.Win
		}
		if branch == nil {
			break
		}
		return ApplyEffect(*branch, st, src)

	case catalog.KindNoop:
	}

	out.Message = catalog.Render(e.Outcome, out.Amount)
	out.Log = out.Message
	if e.Log != "" {
		out.Log = catalog.Render(e.Log, out.Amount)
	}
	return out
}

func declined(e catalog.Effect, out Outcome) Outcome {
	out.Declined = true
	out.Message = defaultDeclinedMessage
	if e.Failure != "" {
		out.Message = catalog.Render(e.Failure, out.Amount)
	}
	out.Log = out.Message
	return out
}
