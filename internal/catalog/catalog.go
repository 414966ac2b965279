// Package catalog holds the static event templates: each event has a title,
// a description and two or three choices, and every choice carries a
// data-only Effect that the engine interprets.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidCatalog is wrapped by every validation failure.
var ErrInvalidCatalog = errors.New("invalid event catalog")

//go:embed events.yaml
var defaultEvents []byte

// EventType names an event definition.
type EventType string

const (
	TradeOpportunity  EventType = "trade_opportunity"
	MissionAvailable  EventType = "mission_available"
	ShipMaintenance   EventType = "ship_maintenance"
	CrewActivity      EventType = "crew_activity"
	RandomEncounter   EventType = "random_encounter"
	MarketFluctuation EventType = "market_fluctuation"
)

const (
	MinChoices = 2
	MaxChoices = 3
)

// Choice is one option offered to the player.
type Choice struct {
	Text   string `yaml:"text" json:"text"`
	Effect Effect `yaml:"effect" json:"effect"`
}

// Definition is an immutable event template.
type Definition struct {
	Type        EventType `yaml:"type" json:"type"`
	Title       string    `yaml:"title" json:"title"`
	Description string    `yaml:"description" json:"description"`
	Choices     []Choice  `yaml:"choices" json:"choices"`
}

// ChoiceTexts returns the display text of every choice in order.
func (d Definition) ChoiceTexts() []string {
	out := make([]string, len(d.Choices))
	for i, c := range d.Choices {
		out[i] = c.Text
	}
	return out
}

type document struct {
	Events []Definition `yaml:"events"`
}

// Catalog is a validated, read-only set of definitions.
type Catalog struct {
	defs  map[EventType]Definition
	order []EventType
}

// Load parses and validates a YAML catalog.
func Load(r io.Reader) (*Catalog, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return parse(raw)
}

// LoadFile reads a catalog from disk.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return parse(raw)
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return parse(defaultEvents)
}

// Open loads the catalog at path, or the embedded one when path is empty.
func Open(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

// MustDefault is Default for package initialisation and tests.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

func parse(raw []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if len(doc.Events) == 0 {
		return nil, fmt.Errorf("%w: no events defined", ErrInvalidCatalog)
	}

	c := &Catalog{defs: make(map[EventType]Definition, len(doc.Events))}
	for _, def := range doc.Events {
		if err := validateDefinition(def); err != nil {
			return nil, err
		}
		if _, dup := c.defs[def.Type]; dup {
			return nil, fmt.Errorf("%w: duplicate event type %q", ErrInvalidCatalog, def.Type)
		}
		c.defs[def.Type] = def
		c.order = append(c.order, def.Type)
	}
	return c, nil
}

func validateDefinition(def Definition) error {
	if def.Type == "" {
		return fmt.Errorf("%w: event without type", ErrInvalidCatalog)
	}
	if def.Title == "" {
		return fmt.Errorf("%w: event %q has no title", ErrInvalidCatalog, def.Type)
	}
	if n := len(def.Choices); n < MinChoices || n > MaxChoices {
		return fmt.Errorf("%w: event %q has %d choices, want %d..%d",
			ErrInvalidCatalog, def.Type, n, MinChoices, MaxChoices)
	}
	for i, ch := range def.Choices {
		if ch.Text == "" {
			return fmt.Errorf("%w: event %q choice %d has no text", ErrInvalidCatalog, def.Type, i)
		}
		if err := ch.Effect.Validate(); err != nil {
			return fmt.Errorf("event %q choice %d: %w", def.Type, i, err)
		}
	}
	return nil
}

// Lookup returns the definition for t.
func (c *Catalog) Lookup(t EventType) (Definition, bool) {
	d, ok := c.defs[t]
	return d, ok
}

// Has reports whether t is defined.
func (c *Catalog) Has(t EventType) bool {
	_, ok := c.defs[t]
	return ok
}

// Types lists the defined event types in file order.
func (c *Catalog) Types() []EventType {
	return append([]EventType(nil), c.order...)
}
