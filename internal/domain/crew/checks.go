package crew

import "github.com/abstogo/SpaceTycoon/internal/rng"

// BestAt returns the member with the strictly highest level in skill. Ties go
// to the earliest hire. A nil member and level 0 mean nobody has the skill.
func (r *Roster) BestAt(skill string) (*Member, float64) {
	var best *Member
	level := 0.0
	for _, m := range r.members {
		if v, ok := m.Skills[skill]; ok && v > level {
			best = m
			level = v
		}
	}
	return best, level
}

// SkillCheckResult is the outcome of a 2d6 + skill roll.
type SkillCheckResult struct {
	Success    bool    `json:"success"`
	Member     *Member `json:"member,omitempty"`
	Skill      float64 `json:"skill"`
	Roll       float64 `json:"roll"`
	Difficulty int     `json:"difficulty"`
}

// SkillCheck rolls two dice plus the best crew level in skill against
// difficulty. Without anyone holding the skill the check fails with no dice drawn.
func (r *Roster) SkillCheck(skill string, difficulty int) SkillCheckResult {
	m, level := r.BestAt(skill)
	if m == nil {
		return SkillCheckResult{Difficulty: difficulty}
	}

	roll := float64(rng.RollD6(r.rng)+rng.RollD6(r.rng)) + level
	return SkillCheckResult{
		Success:    roll >= float64(difficulty),
		Member:     m,
		Skill:      level,
		Roll:       roll,
		Difficulty: difficulty,
	}
}

// ConflictResult describes a conflict resolution attempt.
type ConflictResult struct {
	Valid    bool   `json:"valid"`
	Resolved bool   `json:"resolved"`
	Message  string `json:"message"`
}

const (
	conflictResolvedMorale = 5.0
	conflictFailedMorale   = 10.0
)

// ResolveConflict settles a dispute between two members with a single draw.
// Morale is deliberately left unclamped here, so a failed resolution can
// push it below zero.
func (r *Roster) ResolveConflict(idA, idB string) ConflictResult {
	a, okA := r.Member(idA)
	b, okB := r.Member(idB)
	if !okA || !okB {
		return ConflictResult{Message: "Invalid crew members."}
	}

	if r.rng.Float64() > 0.5 {
		a.Morale += conflictResolvedMorale
		b.Morale += conflictResolvedMorale
		return ConflictResult{Valid: true, Resolved: true, Message: "Conflict resolved amicably."}
	}
	a.Morale -= conflictFailedMorale
	b.Morale -= conflictFailedMorale
	return ConflictResult{Valid: true, Message: "Conflict resolution failed."}
}
