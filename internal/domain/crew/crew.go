// Package crew manages the ship's crew roster: hiring, morale and
// performance drift, training and skill checks.
// This package is PURE and must NOT import any infrastructure packages.
package crew

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/abstogo/SpaceTycoon/internal/domain/calendar"
	"github.com/abstogo/SpaceTycoon/internal/rng"
)

const (
	DefaultMaxCrew    = 6
	DefaultDifficulty = 8

	// EmptyRosterMorale is the roster morale when nobody is aboard.
	EmptyRosterMorale = 50.0
	// DefaultMorale is given to candidates hired without a morale value.
	DefaultMorale = 75.0

	MaxSkill         = 5.0
	SkillStep        = 0.5
	TrainingMorale   = 5.0
	RestMorale       = 10.0
	MinPerformance   = 50.0
	MaxPerformance   = 100.0
	ExperienceChance = 0.01
	ExperienceStep   = 0.1
)

// Member is one crew member. Skills range 0..5, Morale 0..100 (except after
// a failed conflict resolution), Performance 50..100, Experience in years.
type Member struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Role        string             `json:"role"`
	Skills      map[string]float64 `json:"skills"`
	Morale      float64            `json:"morale"`
	Performance float64            `json:"performance"`
	Experience  float64            `json:"experience"`
	Salary      int                `json:"salary"`
	Hired       string             `json:"hired"`
}

// Clone returns a deep copy of the member.
func (m Member) Clone() Member {
	skills := make(map[string]float64, len(m.Skills))
	for k, v := range m.Skills {
		skills[k] = v
	}
	m.Skills = skills
	return m
}

// UnmarshalJSON accepts numeric ids, which older saves wrote, and keeps
// their literal text as the id.
func (m *Member) UnmarshalJSON(data []byte) error {
	type plain Member
	aux := struct {
		*plain
		ID json.RawMessage `json:"id"`
	}{plain: (*plain)(m)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	raw := bytes.TrimSpace(aux.ID)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
	case raw[0] == '"':
		if err := json.Unmarshal(raw, &m.ID); err != nil {
			return fmt.Errorf("crew id: %w", err)
		}
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return fmt.Errorf("crew id: %w", err)
		}
		m.ID = n.String()
	}
	return nil
}

// Candidate is a prospective hire.
type Candidate struct {
	Name       string             `json:"name" yaml:"name"`
	Role       string             `json:"role" yaml:"role"`
	Skills     map[string]float64 `json:"skills" yaml:"skills"`
	Morale     float64            `json:"morale" yaml:"morale"`
	Experience float64            `json:"experience" yaml:"experience"`
	Salary     int                `json:"salary" yaml:"salary"`
}

// Roster owns every crew member and enforces the headcount limit.
type Roster struct {
	members []*Member
	maxCrew int
	morale  float64
	rng     rng.Source
}

// NewRoster creates an empty roster. maxCrew <= 0 selects DefaultMaxCrew.
func NewRoster(src rng.Source, maxCrew int) *Roster {
	if maxCrew <= 0 {
		maxCrew = DefaultMaxCrew
	}
	return &Roster{
		members: make([]*Member, 0, maxCrew),
		maxCrew: maxCrew,
		morale:  EmptyRosterMorale,
		rng:     src,
	}
}

// Len returns the headcount.
func (r *Roster) Len() int { return len(r.members) }

// MaxCrew returns the headcount limit.
func (r *Roster) MaxCrew() int { return r.maxCrew }

// Morale returns the roster-wide morale.
func (r *Roster) Morale() float64 { return r.morale }

// Hire adds a candidate as a new member with a fresh id and full performance.
// It returns false when the roster is full.
func (r *Roster) Hire(c Candidate, on calendar.Date) (*Member, bool) {
	if len(r.members) >= r.maxCrew {
		return nil, false
	}

	skills := make(map[string]float64, len(c.Skills))
	for k, v := range c.Skills {
		skills[k] = v
	}
	morale := c.Morale
	if morale <= 0 {
		morale = DefaultMorale
	}

	m := &Member{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Role:        c.Role,
		Skills:      skills,
		Morale:      morale,
		Performance: MaxPerformance,
		Experience:  c.Experience,
		Salary:      c.Salary,
		Hired:       on.String(),
	}
	r.members = append(r.members, m)
	r.recomputeMorale()
	return m, true
}

// Dismiss removes a member. It returns false when the id is unknown.
func (r *Roster) Dismiss(memberID string) bool {
	for i, m := range r.members {
		if m.ID == memberID {
			r.members = append(r.members[:i], r.members[i+1:]...)
			r.recomputeMorale()
			return true
		}
	}
	return false
}

// Member returns the live member with the given id.
func (r *Roster) Member(memberID string) (*Member, bool) {
	for _, m := range r.members {
		if m.ID == memberID {
			return m, true
		}
	}
	return nil, false
}

// Members returns copies of every member in hire order.
func (r *Roster) Members() []Member {
	out := make([]Member, 0, len(r.members))
	for _, m := range r.members {
		out = append(out, m.Clone())
	}
	return out
}

// ByRole returns copies of the members holding role.
func (r *Roster) ByRole(role string) []Member {
	var out []Member
	for _, m := range r.members {
		if m.Role == role {
			out = append(out, m.Clone())
		}
	}
	return out
}

// Restore replaces the roster contents, typically from a saved game, and
// recomputes roster morale from the members. Members beyond the headcount
// limit are dropped.
func (r *Roster) Restore(members []Member) {
	r.members = r.members[:0]
	for _, m := range members {
		if len(r.members) >= r.maxCrew {
			break
		}
		c := m.Clone()
		r.members = append(r.members, &c)
	}
	r.recomputeMorale()
}

// Tick applies morale-driven performance drift and the occasional experience
// gain to every member, then recomputes roster morale.
func (r *Roster) Tick(deltaDays float64) {
	if deltaDays <= 0 {
		return
	}
	for _, m := range r.members {
		if m.Morale < 50 {
			m.Performance = math.Max(MinPerformance, m.Performance-1)
		} else if m.Morale > 80 {
			m.Performance = math.Min(MaxPerformance, m.Performance+1)
		}

		if rng.Chance(r.rng, ExperienceChance) {
			m.Experience += ExperienceStep
		}
	}
	r.recomputeMorale()
}

func (r *Roster) recomputeMorale() {
	if len(r.members) == 0 {
		r.morale = EmptyRosterMorale
		return
	}
	total := 0.0
	for _, m := range r.members {
		total += m.Morale
	}
	r.morale = total / float64(len(r.members))
}

// TrainSkill raises one skill of one member by half a level and lifts their
// morale. It fails when the member or the skill is unknown.
func (r *Roster) TrainSkill(memberID, skill string) bool {
	m, ok := r.Member(memberID)
	if !ok {
		return false
	}
	level, ok := m.Skills[skill]
	if !ok {
		return false
	}
	m.Skills[skill] = math.Min(MaxSkill, level+SkillStep)
	m.Morale = math.Min(100, m.Morale+TrainingMorale)
	return true
}

// ImproveAllSkillsRandomly raises one randomly chosen skill of every member.
func (r *Roster) ImproveAllSkillsRandomly() {
	for _, m := range r.members {
		if len(m.Skills) == 0 {
			continue
		}
		names := sortedSkills(m)
		pick := names[r.rng.IntN(len(names))]
		m.Skills[pick] = math.Min(MaxSkill, m.Skills[pick]+SkillStep)
	}
}

func sortedSkills(m *Member) []string {
	names := make([]string, 0, len(m.Skills))
	for k := range m.Skills {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// RestAll lifts every member's morale.
func (r *Roster) RestAll() {
	for _, m := range r.members {
		m.Morale = math.Min(100, m.Morale+RestMorale)
	}
	r.recomputeMorale()
}
