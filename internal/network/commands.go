package network

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abstogo/SpaceTycoon/internal/catalog"
	"github.com/abstogo/SpaceTycoon/internal/domain/ship"
	"github.com/abstogo/SpaceTycoon/internal/engine"
)

// Command types accepted from clients.
const (
	CmdTravel   = "TRAVEL"
	CmdResolve  = "RESOLVE"
	CmdMaintain = "MAINTAIN"
	CmdRefuel   = "REFUEL"
	CmdTrigger  = "TRIGGER"
	CmdRest     = "REST"
	CmdTrain    = "TRAIN"
	CmdHire     = "HIRE"
	CmdBuy      = "BUY"
	CmdSell     = "SELL"
)

// Command is an incoming player command.
type Command struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// CommandResult is the reply to a command.
type CommandResult struct {
	Command string          `json:"command"`
	OK      bool            `json:"ok"`
	Message string          `json:"message"`
	Outcome *engine.Outcome `json:"outcome,omitempty"`
}

type resolvePayload struct {
	PromptID string `json:"prompt_id"`
	Choice   int    `json:"choice"`
}

type maintainPayload struct {
	Kind string `json:"kind"`
}

type refuelPayload struct {
	Amount int `json:"amount"`
}

type triggerPayload struct {
	EventType string `json:"event_type"`
}

type trainPayload struct {
	MemberID string `json:"member_id"`
	Skill    string `json:"skill"`
}

type hirePayload struct {
	Index int `json:"index"`
}

type tradePayload struct {
	Goods    string `json:"goods"`
	Quantity int    `json:"quantity"`
}

// Dispatch routes a command to the session behind r.
func Dispatch(r *engine.Runner, cmd Command) engine.Result {
	switch strings.ToUpper(cmd.Type) {
	case CmdTravel:
		return r.Do(func(s *engine.GameSession) engine.Result { return s.Depart() })

	case CmdResolve:
		var p resolvePayload
		if err := decode(cmd.Payload, &p); err != nil {
			return invalid(cmd, err)
		}
		return r.Do(func(s *engine.GameSession) engine.Result { return s.Resolve(p.PromptID, p.Choice) })

	case CmdMaintain:
		p := maintainPayload{Kind: string(ship.MaintenanceBasic)}
		if err := decode(cmd.Payload, &p); err != nil {
			return invalid(cmd, err)
		}
		kind := ship.MaintenanceKind(strings.ToLower(p.Kind))
		return r.Do(func(s *engine.GameSession) engine.Result { return s.Maintain(kind) })

	case CmdRefuel:
		var p refuelPayload
		if err := decode(cmd.Payload, &p); err != nil {
			return invalid(cmd, err)
		}
		return r.Do(func(s *engine.GameSession) engine.Result {
			amount := p.Amount
			if amount <= 0 {
				// fill the tank
				amount = int(ship.MaxFuel - s.Ship().Fuel)
			}
			return s.Refuel(amount)
		})

	case CmdTrigger:
		var p triggerPayload
		if err := decode(cmd.Payload, &p); err != nil {
			return invalid(cmd, err)
		}
		return r.Do(func(s *engine.GameSession) engine.Result { return s.Trigger(catalog.EventType(p.EventType)) })

	case CmdRest:
		return r.Do(func(s *engine.GameSession) engine.Result { return s.RestCrew() })

	case CmdTrain:
		var p trainPayload
		if err := decode(cmd.Payload, &p); err != nil {
			return invalid(cmd, err)
		}
		return r.Do(func(s *engine.GameSession) engine.Result { return s.TrainCrew(p.MemberID, p.Skill) })

	case CmdHire:
		var p hirePayload
		if err := decode(cmd.Payload, &p); err != nil {
			return invalid(cmd, err)
		}
		return r.Do(func(s *engine.GameSession) engine.Result { return s.HireCandidate(p.Index) })

	case CmdBuy, CmdSell:
		var p tradePayload
		if err := decode(cmd.Payload, &p); err != nil {
			return invalid(cmd, err)
		}
		buy := strings.ToUpper(cmd.Type) == CmdBuy
		return r.Do(func(s *engine.GameSession) engine.Result {
			if buy {
				return s.BuyGoods(ship.GoodsID(strings.ToUpper(p.Goods)), p.Quantity)
			}
			return s.SellGoods(ship.GoodsID(strings.ToUpper(p.Goods)), p.Quantity)
		})

	default:
		return engine.Result{Message: fmt.Sprintf("Unknown command %q.", cmd.Type)}
	}
}

func decode(raw json.RawMessage, v any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, v)
}

func invalid(cmd Command, err error) engine.Result {
	return engine.Result{Message: fmt.Sprintf("Invalid %s payload: %v", cmd.Type, err)}
}

func resultOf(cmdType string, res engine.Result) CommandResult {
	return CommandResult{Command: strings.ToUpper(cmdType), OK: res.OK, Message: res.Message, Outcome: res.Outcome}
}
