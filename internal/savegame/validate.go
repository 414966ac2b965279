package savegame

import (
	"fmt"

	"github.com/abstogo/SpaceTycoon/internal/domain/crew"
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidSnapshot, fmt.Sprintf(format, args...))
}

func inPercent(v float64) bool { return v >= 0 && v <= 100 }

// Validate rejects documents the engine must never see.
func (s *Snapshot) Validate(maxCrew int) error {
	if maxCrew <= 0 {
		maxCrew = crew.DefaultMaxCrew
	}

	if s.Credits < 0 {
		return invalid("negative credits %d", s.Credits)
	}
	if s.Location == "" {
		return invalid("empty location")
	}
	if !s.Date.Valid() {
		return invalid("date %d-%d out of range", s.Date.Year, s.Date.Day)
	}
	if err := s.validateShip(); err != nil {
		return err
	}
	if err := s.validateCrew(maxCrew); err != nil {
		return err
	}
	if s.Travel != nil && s.Travel.DaysRemaining < 0 {
		return invalid("negative travel days")
	}
	for _, p := range s.Pending {
		if p.Probability < 0 || p.Probability > 1 {
			return invalid("pending %s probability %v", p.Type, p.Probability)
		}
	}
	return nil
}

func (s *Snapshot) validateShip() error {
	st := s.Ship
	if !inPercent(st.Condition) {
		return invalid("ship condition %v", st.Condition)
	}
	if !inPercent(st.Fuel) {
		return invalid("fuel %v", st.Fuel)
	}
	for id, sys := range st.Systems {
		if !inPercent(sys.Condition) {
			return invalid("system %s condition %v", id, sys.Condition)
		}
	}

	used := 0
	for _, it := range st.Cargo.Items {
		if it.Quantity < 0 || it.Weight < 0 || it.Value < 0 {
			return invalid("cargo item %q has negative fields", it.Name)
		}
		used += it.Quantity * it.Weight
	}
	if used != st.Cargo.Used {
		return invalid("cargo used %d, items weigh %d", st.Cargo.Used, used)
	}
	if st.Cargo.Used > st.Cargo.Capacity {
		return invalid("cargo used %d exceeds capacity %d", st.Cargo.Used, st.Cargo.Capacity)
	}
	return nil
}

func (s *Snapshot) validateCrew(maxCrew int) error {
	if len(s.Crew) > maxCrew {
		return invalid("%d crew exceeds maximum %d", len(s.Crew), maxCrew)
	}
	seen := make(map[string]bool, len(s.Crew))
	for _, m := range s.Crew {
		if m.ID == "" {
			return invalid("crew member %q has no id", m.Name)
		}
		if seen[m.ID] {
			return invalid("duplicate crew id %s", m.ID)
		}
		seen[m.ID] = true
		for skill, level := range m.Skills {
			if level < 0 || level > crew.MaxSkill {
				return invalid("%s skill %s level %v", m.Name, skill, level)
			}
		}
	}
	return nil
}
