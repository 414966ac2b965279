package engine

import (
	"fmt"

	"github.com/abstogo/SpaceTycoon/internal/domain/ship"
	"github.com/abstogo/SpaceTycoon/internal/events"
)

// BuyGoods purchases qty units of goods at base value. Nothing changes
// unless both the credits and the hold space are available.
func (s *GameSession) BuyGoods(id ship.GoodsID, qty int) Result {
	if !s.Docked() {
		return fail("Trading is only possible while docked.")
	}
	g, ok := ship.LookupGoods(id)
	if !ok {
		return fail("Unknown goods %q.", id)
	}
	if qty <= 0 {
		return fail("Quantity must be positive.")
	}
	if need := qty * g.Weight; need > s.ship.Cargo.Free() {
		return fail("Not enough cargo space: %d needed, %d free.", need, s.ship.Cargo.Free())
	}

	cost := g.BaseValue * qty
	if !s.ledger.Spend(cost) {
		return fail("Not enough credits: %s needed.", FormatCredits(cost))
	}
	s.ship.AddCargo(g.CargoItem(), qty)

	msg := fmt.Sprintf("Bought %d %s for %s.", qty, g.Name, FormatCredits(cost))
	s.record(events.EventTypeTrade, events.ActorPlayer, msg, map[string]any{"goods": id, "quantity": qty, "credits": -cost})
	return Result{OK: true, Message: msg}
}

// SellGoods sells qty units from the hold at base value.
func (s *GameSession) SellGoods(id ship.GoodsID, qty int) Result {
	if !s.Docked() {
		return fail("Trading is only possible while docked.")
	}
	g, ok := ship.LookupGoods(id)
	if !ok {
		return fail("Unknown goods %q.", id)
	}
	if !s.ship.RemoveCargo(g.Name, qty) {
		return fail("You do not hold %d %s.", qty, g.Name)
	}

	earned := g.BaseValue * qty
	s.ledger.Add(earned)

	msg := fmt.Sprintf("Sold %d %s for %s.", qty, g.Name, FormatCredits(earned))
	s.record(events.EventTypeTrade, events.ActorPlayer, msg, map[string]any{"goods": id, "quantity": qty, "credits": earned})
	return Result{OK: true, Message: msg}
}
