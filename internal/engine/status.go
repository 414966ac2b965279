package engine

import (
	"github.com/dustin/go-humanize"

	"github.com/abstogo/SpaceTycoon/internal/domain/calendar"
	"github.com/abstogo/SpaceTycoon/internal/domain/crew"
	"github.com/abstogo/SpaceTycoon/internal/domain/ship"
)

// FormatCredits renders an amount with thousands separators.
func FormatCredits(amount int) string {
	return humanize.Comma(int64(amount)) + " Cr"
}

// CrewView groups the roster for presentation.
type CrewView struct {
	Members []crew.Member `json:"members"`
	Morale  float64       `json:"morale"`
	Summary crew.Summary  `json:"summary"`
}

// Status is the read-only view of a session served to clients.
type Status struct {
	SessionID   string         `json:"sessionId"`
	Credits     int            `json:"credits"`
	CreditsText string         `json:"creditsText"`
	Location    string         `json:"location"`
	Context     ContextTag     `json:"context"`
	Date        calendar.Date  `json:"date"`
	DateText    string         `json:"dateText"`
	DayProgress float64        `json:"dayProgress"`
	Travel      *Travel        `json:"travel,omitempty"`
	Arrival     *calendar.Date `json:"arrival,omitempty"`
	Ship        ship.Details   `json:"ship"`
	Crew        CrewView       `json:"crew"`
	Prompts     []Prompt       `json:"prompts"`
	Pending     int            `json:"pendingEvents"`
}

// Status builds the presentation view.
func (s *GameSession) Status() Status {
	st := Status{
		SessionID:   s.id,
		Credits:     s.ledger.Balance(),
		CreditsText: FormatCredits(s.ledger.Balance()),
		Location:    s.location,
		Context:     s.Context(),
		Date:        s.clock.Date(),
		DateText:    s.clock.Date().String(),
		DayProgress: s.clock.Progress(),
		Ship:        s.ship.Details(),
		Crew: CrewView{
			Members: s.crew.Members(),
			Morale:  s.crew.Morale(),
			Summary: s.crew.Summary(),
		},
		Prompts: s.Prompts(),
		Pending: len(s.scheduler.Pending()),
	}
	if t, ok := s.Travel(); ok {
		st.Travel = &t
		eta := s.clock.Date().AddDays(t.DaysRemaining)
		st.Arrival = &eta
	}
	if st.Prompts == nil {
		st.Prompts = []Prompt{}
	}
	return st
}
