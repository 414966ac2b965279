package crew

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abstogo/SpaceTycoon/internal/rng"
)

func TestBestAt(t *testing.T) {
	r := startingRoster(t, rng.NewFixed())

	m, level := r.BestAt("pilot")
	require.NotNil(t, m)
	assert.Equal(t, "Captain Sarah Chen", m.Name)
	assert.Equal(t, 2.0, level)

	_, ok := r.Hire(HiringPool()[0], hireDate)
	require.True(t, ok)
	m, level = r.BestAt("pilot")
	assert.Equal(t, "Pilot Alex Johnson", m.Name)
	assert.Equal(t, 3.0, level)

	m, level = r.BestAt("gunnery")
	assert.Nil(t, m)
	assert.Zero(t, level)
}

func TestSkillCheck_ForcedDice(t *testing.T) {
	// dice 3 and 4
	src := &rng.Fixed{Ints: []int{2, 3}}
	r := startingRoster(t, src)

	res := r.SkillCheck("pilot", DefaultDifficulty)
	assert.True(t, res.Success)
	assert.Equal(t, 9.0, res.Roll)
	assert.Equal(t, 2.0, res.Skill)
	assert.Equal(t, DefaultDifficulty, res.Difficulty)
	require.NotNil(t, res.Member)
	assert.Equal(t, "Captain Sarah Chen", res.Member.Name)
}

func TestSkillCheck_FailsBelowDifficulty(t *testing.T) {
	// dice 1 and 1
	src := &rng.Fixed{Ints: []int{0, 0}}
	r := startingRoster(t, src)

	res := r.SkillCheck("pilot", 8)
	assert.False(t, res.Success)
	assert.Equal(t, 4.0, res.Roll)
}

func TestSkillCheck_NobodySkilledDrawsNothing(t *testing.T) {
	src := &rng.Fixed{Ints: []int{5, 5}}
	r := startingRoster(t, src)

	res := r.SkillCheck("gunnery", 8)
	assert.Equal(t, SkillCheckResult{Difficulty: 8}, res)
	assert.Zero(t, src.IntsUsed())
}

func TestResolveConflict(t *testing.T) {
	tests := []struct {
		name     string
		draw     float64
		resolved bool
		delta    float64
	}{
		{"amicable", 0.9, true, 5},
		{"failed", 0.2, false, -10},
		{"boundary fails", 0.5, false, -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := startingRoster(t, rng.NewFixed(tt.draw))
			members := r.Members()

			res := r.ResolveConflict(members[0].ID, members[1].ID)
			assert.True(t, res.Valid)
			assert.Equal(t, tt.resolved, res.Resolved)

			a, _ := r.Member(members[0].ID)
			b, _ := r.Member(members[1].ID)
			assert.Equal(t, members[0].Morale+tt.delta, a.Morale)
			assert.Equal(t, members[1].Morale+tt.delta, b.Morale)
		})
	}
}

func TestResolveConflict_MoraleIsNotClamped(t *testing.T) {
	r := startingRoster(t, rng.NewFixed(0.1))
	members := r.Members()
	a, _ := r.Member(members[0].ID)
	a.Morale = 5

	r.ResolveConflict(members[0].ID, members[1].ID)
	assert.Equal(t, -5.0, a.Morale)
}

func TestResolveConflict_UnknownMember(t *testing.T) {
	src := rng.NewFixed(0.9)
	r := startingRoster(t, src)

	res := r.ResolveConflict(r.Members()[0].ID, "ghost")
	assert.False(t, res.Valid)
	assert.Equal(t, "Invalid crew members.", res.Message)
	assert.Zero(t, src.FloatsUsed())
}
