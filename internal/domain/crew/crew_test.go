package crew

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abstogo/SpaceTycoon/internal/domain/calendar"
	"github.com/abstogo/SpaceTycoon/internal/rng"
)

var hireDate = calendar.Date{Year: 1105, Day: 1}

func startingRoster(t *testing.T, src rng.Source) *Roster {
	t.Helper()
	r := NewRoster(src, DefaultMaxCrew)
	for _, c := range StartingCrew() {
		_, ok := r.Hire(c, hireDate)
		require.True(t, ok)
	}
	return r
}

func TestHire_RespectsMaxCrew(t *testing.T) {
	r := NewRoster(rng.NewFixed(), 0)
	assert.Equal(t, DefaultMaxCrew, r.MaxCrew())

	pool := append(StartingCrew(), HiringPool()...)
	require.Len(t, pool, 6)
	for _, c := range pool {
		m, ok := r.Hire(c, hireDate)
		require.True(t, ok)
		assert.NotEmpty(t, m.ID)
		assert.Equal(t, 100.0, m.Performance)
		assert.Equal(t, "1105-001", m.Hired)
	}

	before := r.Members()
	_, ok := r.Hire(HiringPool()[0], hireDate)
	assert.False(t, ok)
	assert.Equal(t, 6, r.Len())
	assert.Equal(t, before, r.Members())
}

func TestHire_CopiesSkillsAndDefaultsMorale(t *testing.T) {
	r := NewRoster(rng.NewFixed(), 0)
	c := HiringPool()[0]
	m, ok := r.Hire(c, hireDate)
	require.True(t, ok)

	c.Skills["pilot"] = 0
	assert.Equal(t, 3.0, m.Skills["pilot"])
	assert.Equal(t, DefaultMorale, m.Morale)
}

func TestDismiss(t *testing.T) {
	r := startingRoster(t, rng.NewFixed())
	id := r.Members()[1].ID

	assert.True(t, r.Dismiss(id))
	assert.Equal(t, 2, r.Len())
	assert.False(t, r.Dismiss(id))
	assert.InDelta(t, 75.0, r.Morale(), 1e-9)
}

func TestTick_PerformanceDriftAndMorale(t *testing.T) {
	r := startingRoster(t, rng.NewFixed(0.5, 0.5, 0.005))
	members := r.Members()
	captain, _ := r.Member(members[0].ID)
	medic, _ := r.Member(members[2].ID)

	captain.Morale = 90
	captain.Performance = 99
	medic.Morale = 30
	medic.Performance = 50.5

	r.Tick(1)

	assert.Equal(t, 100.0, captain.Performance)
	assert.Equal(t, MinPerformance, medic.Performance)
	assert.InDelta(t, 4.1, medic.Experience, 1e-9)
	assert.InDelta(t, 5.0, captain.Experience, 1e-9)
	assert.InDelta(t, (90.0+75.0+30.0)/3, r.Morale(), 1e-9)
}

func TestTick_EmptyRosterMorale(t *testing.T) {
	r := NewRoster(rng.NewFixed(), 0)
	r.Tick(1)
	assert.Equal(t, EmptyRosterMorale, r.Morale())
}

func TestTrainSkill(t *testing.T) {
	r := startingRoster(t, rng.NewFixed())
	captain := r.Members()[0]

	assert.True(t, r.TrainSkill(captain.ID, "leadership"))
	m, _ := r.Member(captain.ID)
	assert.Equal(t, 3.5, m.Skills["leadership"])
	assert.Equal(t, 85.0, m.Morale)

	for i := 0; i < 10; i++ {
		r.TrainSkill(captain.ID, "leadership")
	}
	assert.Equal(t, MaxSkill, m.Skills["leadership"])
	assert.Equal(t, 100.0, m.Morale)

	assert.False(t, r.TrainSkill(captain.ID, "gunnery"))
	assert.False(t, r.TrainSkill("nobody", "pilot"))
}

func TestImproveAllSkillsRandomly(t *testing.T) {
	src := &rng.Fixed{Ints: []int{0, 1, 2}}
	r := startingRoster(t, src)
	r.ImproveAllSkillsRandomly()

	members := r.Members()
	// sorted skill names: leadership, navigation, pilot
	assert.Equal(t, 3.5, members[0].Skills["leadership"])
	// electronics, engineering, mechanics
	assert.Equal(t, 3.5, members[1].Skills["engineering"])
	// biology, firstAid, medicine
	assert.Equal(t, 3.5, members[2].Skills["medicine"])
	assert.Equal(t, 3, src.IntsUsed())
}

func TestRestAll(t *testing.T) {
	r := startingRoster(t, rng.NewFixed())
	r.RestAll()

	members := r.Members()
	assert.Equal(t, 90.0, members[0].Morale)
	assert.Equal(t, 85.0, members[1].Morale)
	assert.Equal(t, 80.0, members[2].Morale)
	assert.InDelta(t, 85.0, r.Morale(), 1e-9)

	r.RestAll()
	r.RestAll()
	assert.Equal(t, 100.0, r.Members()[0].Morale)
}

func TestSummaryAndSignal(t *testing.T) {
	r := startingRoster(t, rng.NewFixed())
	s := r.Summary()

	assert.Equal(t, 3, s.TotalCrew)
	assert.Equal(t, 6, s.MaxCrew)
	assert.Equal(t, 2700, s.TotalSalaries)
	assert.InDelta(t, 4.0, s.AverageExperience, 1e-9)
	assert.Equal(t, map[string]int{"Captain": 1, "Engineer": 1, "Medic": 1}, s.Roles)
	assert.Len(t, r.ByRole("Engineer"), 1)

	// fresh hires start at full performance
	assert.Equal(t, SignalHighPerformance, r.Signal())

	for _, m := range r.Members() {
		live, _ := r.Member(m.ID)
		live.Morale = 20
		live.Performance = 60
	}
	r.Tick(1)
	assert.Equal(t, SignalLowMorale, r.Signal())
}

func TestRestore(t *testing.T) {
	r := startingRoster(t, rng.NewFixed())
	saved := r.Members()

	other := NewRoster(rng.NewFixed(), 0)
	other.Restore(saved)
	assert.Equal(t, saved, other.Members())
	assert.InDelta(t, r.Morale(), other.Morale(), 1e-9)
}

func TestRestore_RecomputesMorale(t *testing.T) {
	// Setup
	r := NewRoster(rng.NewFixed(), 0)
	low := Member{ID: "m1", Name: "Solo", Role: "Pilot", Morale: 20, Performance: 80}

	// Act
	r.Restore([]Member{low})

	// Assert
	assert.Equal(t, 20.0, r.Morale())
	assert.Equal(t, SignalLowMorale, r.Signal())

	r.Restore(nil)
	assert.Equal(t, EmptyRosterMorale, r.Morale())
}

func TestMember_UnmarshalNumericID(t *testing.T) {
	var members []Member
	err := json.Unmarshal([]byte(`[
		{"id": 1714557600000.1234, "name": "Sarah Chen", "role": "Captain"},
		{"id": "abc", "name": "Marcus Rodriguez", "role": "Engineer"},
		{"name": "Nobody"}
	]`), &members)
	require.NoError(t, err)

	assert.Equal(t, "1714557600000.1234", members[0].ID)
	assert.Equal(t, "Sarah Chen", members[0].Name)
	assert.Equal(t, "abc", members[1].ID)
	assert.Empty(t, members[2].ID)
}

func TestMember_UnmarshalRejectsBadID(t *testing.T) {
	var m Member
	assert.Error(t, json.Unmarshal([]byte(`{"id": true}`), &m))
}
