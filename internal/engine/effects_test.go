package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abstogo/SpaceTycoon/internal/catalog"
	"github.com/abstogo/SpaceTycoon/internal/domain/calendar"
	"github.com/abstogo/SpaceTycoon/internal/domain/crew"
	"github.com/abstogo/SpaceTycoon/internal/domain/ledger"
	"github.com/abstogo/SpaceTycoon/internal/domain/ship"
	"github.com/abstogo/SpaceTycoon/internal/rng"
)

func newState(credits int, src rng.Source) State {
	roster := crew.NewRoster(src, 0)
	for _, c := range crew.StartingCrew() {
		roster.Hire(c, calendar.New(1105))
	}
	return State{Ledger: ledger.New(credits), Ship: ship.New(), Crew: roster}
}

func choice(t *testing.T, et catalog.EventType, i int) catalog.Effect {
	t.Helper()
	def, ok := catalog.MustDefault().Lookup(et)
	require.True(t, ok)
	return def.Choices[i].Effect
}

func TestApplyEffect_CreditDelta(t *testing.T) {
	src := &rng.Fixed{Ints: []int{250}}
	st := newState(1000, src)

	out := ApplyEffect(choice(t, catalog.TradeOpportunity, 0), st, src)

	assert.Equal(t, 750, out.Amount)
	assert.Equal(t, 1750, st.Ledger.Balance())
	assert.Equal(t, "You negotiate a good deal and earn 750 credits.", out.Message)
	assert.Equal(t, "Trade deal completed. Earned 750 credits.", out.Log)
	assert.False(t, out.Declined)
}

func TestApplyEffect_Noop(t *testing.T) {
	src := rng.NewFixed()
	st := newState(1000, src)

	out := ApplyEffect(choice(t, catalog.MissionAvailable, 1), st, src)
	assert.Equal(t, "The mission involves transporting sensitive cargo to a nearby system.", out.Message)
	assert.Equal(t, "Requested mission details.", out.Log)
	assert.Equal(t, 1000, st.Ledger.Balance())
}

func TestApplyEffect_GambleWin(t *testing.T) {
	src := &rng.Fixed{Floats: []float64{0.8}, Ints: []int{0}}
	st := newState(1000, src)

	out := ApplyEffect(choice(t, catalog.RandomEncounter, 0), st, src)
	assert.Equal(t, catalog.KindCreditDelta, out.Kind)
	assert.Equal(t, 1500, st.Ledger.Balance())
	assert.Equal(t, "You discover valuable salvage worth 500 credits.", out.Message)
}

func TestApplyEffect_GambleLose(t *testing.T) {
	src := &rng.Fixed{Floats: []float64{0.7}, Ints: []int{50}}
	st := newState(1000, src)

	out := ApplyEffect(choice(t, catalog.RandomEncounter, 0), st, src)
	assert.Equal(t, catalog.KindSpendAttempt, out.Kind)
	assert.Equal(t, 150, out.Amount)
	assert.Equal(t, 850, st.Ledger.Balance())
}

func TestApplyEffect_SpendDeclinedLeavesBalance(t *testing.T) {
	src := &rng.Fixed{Floats: []float64{0.1}, Ints: []int{0}}
	st := newState(50, src)

	out := ApplyEffect(choice(t, catalog.RandomEncounter, 0), st, src)
	assert.True(t, out.Declined)
	assert.Equal(t, 50, st.Ledger.Balance())
	assert.Equal(t, "The encounter proves dangerous, and you cannot cover the 100 credits in repairs.", out.Message)
}

func TestApplyEffect_ShipMaintenance(t *testing.T) {
	src := rng.NewFixed()

	t.Run("paid", func(t *testing.T) {
		st := newState(1000, src)
		st.Ship.SetCondition(ship.Engines, 40)
		st.Ship.Condition = 60

		out := ApplyEffect(choice(t, catalog.ShipMaintenance, 0), st, src)
		assert.Equal(t, 500, out.Amount)
		assert.Equal(t, 500, st.Ledger.Balance())
		assert.Equal(t, 100.0, st.Ship.SystemCondition(ship.Engines))
		assert.Equal(t, 100.0, st.Ship.Condition)
		assert.Equal(t, "Your ship is now in excellent condition.", out.Message)
	})

	t.Run("basic", func(t *testing.T) {
		st := newState(1000, src)
		st.Ship.SetCondition(ship.Engines, 40)

		ApplyEffect(choice(t, catalog.ShipMaintenance, 1), st, src)
		assert.Equal(t, 800, st.Ledger.Balance())
		assert.Equal(t, 70.0, st.Ship.SystemCondition(ship.Engines))
	})

	t.Run("declined", func(t *testing.T) {
		st := newState(100, src)
		st.Ship.SetCondition(ship.Engines, 40)

		out := ApplyEffect(choice(t, catalog.ShipMaintenance, 0), st, src)
		assert.True(t, out.Declined)
		assert.Equal(t, "You don't have enough credits for full maintenance.", out.Message)
		assert.Equal(t, 100, st.Ledger.Balance())
		assert.Equal(t, 40.0, st.Ship.SystemCondition(ship.Engines))
	})
}

func TestApplyEffect_ShipWear(t *testing.T) {
	src := rng.NewFixed()
	st := newState(1000, src)

	out := ApplyEffect(choice(t, catalog.ShipMaintenance, 2), st, src)
	assert.Equal(t, 90.0, st.Ship.Condition)
	assert.Equal(t, "Your ship's condition has deteriorated slightly.", out.Message)
}

func TestApplyEffect_CrewTrain(t *testing.T) {
	src := &rng.Fixed{Ints: []int{0, 0, 0}}
	st := newState(1000, src)

	out := ApplyEffect(choice(t, catalog.CrewActivity, 0), st, src)
	assert.False(t, out.Declined)
	assert.Equal(t, 700, st.Ledger.Balance())
	assert.Equal(t, 3.5, st.Crew.Members()[0].Skills["leadership"])
	assert.Equal(t, 3, src.IntsUsed())

	poor := newState(100, src)
	out = ApplyEffect(choice(t, catalog.CrewActivity, 0), poor, src)
	assert.True(t, out.Declined)
	assert.Equal(t, 3.0, poor.Crew.Members()[0].Skills["leadership"])
}

func TestApplyEffect_CrewRest(t *testing.T) {
	src := rng.NewFixed()
	st := newState(1000, src)

	ApplyEffect(choice(t, catalog.CrewActivity, 1), st, src)
	assert.InDelta(t, 85.0, st.Crew.Morale(), 1e-9)
}

func TestApplyEffect_UnknownDeclinedMessage(t *testing.T) {
	src := rng.NewFixed()
	st := newState(0, src)

	out := ApplyEffect(catalog.Effect{Kind: catalog.KindCrewTrain, Cost: 10, Outcome: "ok"}, st, src)
	assert.True(t, out.Declined)
	assert.Equal(t, defaultDeclinedMessage, out.Message)
}
