package engine

import (
	"fmt"

	"github.com/abstogo/SpaceTycoon/internal/domain/crew"
	"github.com/abstogo/SpaceTycoon/internal/events"
)

// HireCandidate hires from the port's hiring pool by index.
func (s *GameSession) HireCandidate(index int) Result {
	if !s.Docked() {
		return fail("Crew can only be hired in port.")
	}
	pool := crew.HiringPool()
	if index < 0 || index >= len(pool) {
		return fail("Invalid candidate %d.", index)
	}
	m, ok := s.crew.Hire(pool[index], s.clock.Date())
	if !ok {
		return fail("The crew roster is full (%d).", s.crew.MaxCrew())
	}
	msg := fmt.Sprintf("Hired %s as %s.", m.Name, m.Role)
	s.record(events.EventTypeCrew, events.ActorPlayer, msg, map[string]string{"member_id": m.ID})
	return Result{OK: true, Message: msg}
}

// Dismiss removes a crew member.
func (s *GameSession) Dismiss(memberID string) Result {
	m, ok := s.crew.Member(memberID)
	if !ok {
		return fail("Unknown crew member.")
	}
	name := m.Name
	s.crew.Dismiss(memberID)
	msg := name + " has left the ship."
	s.record(events.EventTypeCrew, events.ActorPlayer, msg, map[string]string{"member_id": memberID})
	return Result{OK: true, Message: msg}
}

// TrainCrew trains one skill of one member.
func (s *GameSession) TrainCrew(memberID, skill string) Result {
	if !s.crew.TrainSkill(memberID, skill) {
		return fail("Cannot train %s for that crew member.", skill)
	}
	m, _ := s.crew.Member(memberID)
	msg := fmt.Sprintf("%s trained %s to %.1f.", m.Name, skill, m.Skills[skill])
	s.record(events.EventTypeCrew, events.ActorPlayer, msg, nil)
	return Result{OK: true, Message: msg}
}

// RestCrew gives the whole crew time off.
func (s *GameSession) RestCrew() Result {
	s.crew.RestAll()
	msg := "Crew morale improved."
	s.record(events.EventTypeCrew, events.ActorPlayer, msg, nil)
	return Result{OK: true, Message: msg}
}

// ResolveConflict settles a dispute between two crew members.
func (s *GameSession) ResolveConflict(idA, idB string) Result {
	res := s.crew.ResolveConflict(idA, idB)
	if !res.Valid {
		return fail("%s", res.Message)
	}
	s.record(events.EventTypeCrew, events.ActorPlayer, res.Message, nil)
	return Result{OK: true, Message: res.Message}
}

// SkillCheck rolls the crew's best level in skill against difficulty.
func (s *GameSession) SkillCheck(skill string, difficulty int) crew.SkillCheckResult {
	if difficulty <= 0 {
		difficulty = crew.DefaultDifficulty
	}
	return s.crew.SkillCheck(skill, difficulty)
}
