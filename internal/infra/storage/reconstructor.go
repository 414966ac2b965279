// Package storage - reconstructor.go
// Recap: rebuilds a readable history and the credit flow from the journal.
package storage

import (
	"context"
	"fmt"

	"github.com/abstogo/SpaceTycoon/internal/domain/calendar"
)

// Reconstructor rebuilds summaries from the stored journal.
// This is used for:
// 1. The "while you were away" recap after loading a game
// 2. The end-of-run report of the headless simulator
type Reconstructor struct {
	eventRepo EventRepository
}

// NewReconstructor creates a new reconstructor.
func NewReconstructor(eventRepo EventRepository) *Reconstructor {
	return &Reconstructor{eventRepo: eventRepo}
}

// RecapEvent is a simplified event for the recap screen.
type RecapEvent struct {
	Date      string `json:"date"`
	EventType string `json:"event_type"`
	Summary   string `json:"summary"`
	Impact    string `json:"impact"` // "POSITIVE", "NEGATIVE", "NEUTRAL"
}

// CreditFlow totals the credits earned and spent according to the journal.
type CreditFlow struct {
	Earned int `json:"earned"`
	Spent  int `json:"spent"`
}

// Net is earned minus spent.
func (f CreditFlow) Net() int { return f.Earned - f.Spent }

// GenerateRecap lists journal lines recorded on or after since.
func (r *Reconstructor) GenerateRecap(ctx context.Context, sessionID string, since calendar.Date) ([]RecapEvent, error) {
	rows, err := r.eventRepo.GetSince(ctx, sessionID, since.Year, since.Day)
	if err != nil {
		return nil, fmt.Errorf("failed to get events for recap: %w", err)
	}

	recap := make([]RecapEvent, 0, len(rows))
	for _, e := range rows {
		recap = append(recap, RecapEvent{
			Date:      calendar.Date{Year: e.GameYear, Day: e.GameDay}.String(),
			EventType: e.EventType,
			Summary:   e.Message,
			Impact:    determineImpact(e),
		})
	}
	return recap, nil
}

// RebuildCreditFlow replays the journal's credit movements.
func (r *Reconstructor) RebuildCreditFlow(ctx context.Context, sessionID string) (CreditFlow, error) {
	rows, err := r.eventRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return CreditFlow{}, fmt.Errorf("failed to get events for credit flow: %w", err)
	}

	var flow CreditFlow
	for _, e := range rows {
		applyCredits(&flow, e)
	}
	return flow, nil
}

func applyCredits(flow *CreditFlow, e GameEvent) {
	switch e.EventType {
	case "CHOICE_RESOLVED":
		if declined, _ := e.Payload["declined"].(bool); declined {
			return
		}
		amount := intField(e.Payload, "amount")
		switch e.Payload["kind"] {
		case "credit_delta":
			flow.Earned += amount
		case "spend_attempt", "ship_maintenance", "crew_train":
			flow.Spent += amount
		}
	case "TRADE":
		if c := intField(e.Payload, "credits"); c > 0 {
			flow.Earned += c
		} else {
			flow.Spent -= c
		}
	case "REFUEL", "MAINTENANCE":
		flow.Spent += intField(e.Payload, "cost")
	}
}

func intField(payload map[string]any, key string) int {
	if v, ok := payload[key].(float64); ok {
		return int(v)
	}
	return 0
}

// determineImpact classifies the event impact.
func determineImpact(e GameEvent) string {
	switch e.EventType {
	case "CHOICE_RESOLVED":
		if declined, _ := e.Payload["declined"].(bool); declined {
			return "NEGATIVE"
		}
		switch e.Payload["kind"] {
		case "credit_delta", "crew_rest":
			return "POSITIVE"
		case "spend_attempt", "ship_wear":
			return "NEGATIVE"
		}
	case "TRADE":
		if intField(e.Payload, "credits") > 0 {
			return "POSITIVE"
		}
	case "CREW":
		if e.ActorID == "crew" {
			return "NEGATIVE"
		}
	}
	return "NEUTRAL"
}
