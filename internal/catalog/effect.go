package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// EffectKind tags the variant held by an Effect.
type EffectKind string

const (
	// KindCreditDelta adds a uniform amount in [Min, Max].
	KindCreditDelta EffectKind = "credit_delta"
	// KindSpendAttempt tries to spend a uniform amount in [Min, Max].
	KindSpendAttempt EffectKind = "spend_attempt"
	// KindShipMaintenance pays for and performs Maintenance.
	KindShipMaintenance EffectKind = "ship_maintenance"
	// KindShipWear removes Amount from the hull condition.
	KindShipWear EffectKind = "ship_wear"
	// KindCrewTrain pays Cost and improves one random skill per member.
	KindCrewTrain EffectKind = "crew_train"
	// KindCrewRest rests the whole crew.
	KindCrewRest EffectKind = "crew_rest"
	// KindNoop only reports its outcome.
	KindNoop EffectKind = "noop"
	// KindGamble draws once: above Threshold applies Win, otherwise Lose.
	KindGamble EffectKind = "gamble"
)

// Effect is a serializable description of what a choice does. Only the
// fields relevant to Kind are read.
type Effect struct {
	Kind EffectKind `yaml:"kind" json:"kind"`

	Min         int     `yaml:"min,omitempty" json:"min,omitempty"`
	Max         int     `yaml:"max,omitempty" json:"max,omitempty"`
	Cost        int     `yaml:"cost,omitempty" json:"cost,omitempty"`
	Maintenance string  `yaml:"maintenance,omitempty" json:"maintenance,omitempty"`
	Amount      float64 `yaml:"amount,omitempty" json:"amount,omitempty"`
	Threshold   float64 `yaml:"threshold,omitempty" json:"threshold,omitempty"`

	Win  *Effect `yaml:"win,omitempty" json:"win,omitempty"`
	Lose *Effect `yaml:"lose,omitempty" json:"lose,omitempty"`

	// Outcome is shown to the player, Log goes to the journal and Failure
	// replaces Outcome when a payment is declined.
	Outcome string `yaml:"outcome" json:"outcome"`
	Log     string `yaml:"log,omitempty" json:"log,omitempty"`
	Failure string `yaml:"failure,omitempty" json:"failure,omitempty"`
}

// Validate checks the parameters required by the effect's kind.
func (e Effect) Validate() error {
	switch e.Kind {
	case KindCreditDelta, KindSpendAttempt:
		if e.Min < 0 || e.Max < e.Min {
			return fmt.Errorf("%w: %s range [%d, %d]", ErrInvalidCatalog, e.Kind, e.Min, e.Max)
		}
	case KindShipMaintenance:
		if e.Maintenance != "basic" && e.Maintenance != "full" {
			return fmt.Errorf("%w: unknown maintenance kind %q", ErrInvalidCatalog, e.Maintenance)
		}
	case KindShipWear:
		if e.Amount <= 0 {
			return fmt.Errorf("%w: ship_wear amount must be positive", ErrInvalidCatalog)
		}
	case KindCrewTrain:
		if e.Cost < 0 {
			return fmt.Errorf("%w: negative training cost", ErrInvalidCatalog)
		}
	case KindCrewRest, KindNoop:
	case KindGamble:
		if e.Threshold < 0 || e.Threshold > 1 {
			return fmt.Errorf("%w: gamble threshold %v outside [0,1]", ErrInvalidCatalog, e.Threshold)
		}
		if e.Win == nil || e.Lose == nil {
			return fmt.Errorf("%w: gamble needs win and lose branches", ErrInvalidCatalog)
		}
		for _, branch := range []*Effect{e.Win, e.Lose} {
			if branch.Kind == KindGamble {
				return fmt.Errorf("%w: nested gamble", ErrInvalidCatalog)
			}
			if err := branch.Validate(); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown effect kind %q", ErrInvalidCatalog, e.Kind)
	}

	if e.Outcome == "" {
		return fmt.Errorf("%w: %s effect has no outcome text", ErrInvalidCatalog, e.Kind)
	}
	return nil
}

// Render substitutes {amount} in a message template.
func Render(template string, amount int) string {
	return strings.ReplaceAll(template, "{amount}", strconv.Itoa(amount))
}
