// Package savegame defines the persisted game document and the rules for
// decoding it. Documents written by older versions may omit fields; those
// take the values of a fresh game.
package savegame

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/abstogo/SpaceTycoon/internal/domain/calendar"
	"github.com/abstogo/SpaceTycoon/internal/domain/crew"
	"github.com/abstogo/SpaceTycoon/internal/domain/ship"
)

// Version is written into every new document.
const Version = 2

// Fresh game values.
const (
	DefaultCredits  = 10000
	DefaultLocation = "Port Alpha"
	DefaultYear     = 1105
)

// ErrInvalidSnapshot is wrapped by every decode and validation failure.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// ShipState is the mutable part of the ship.
type ShipState struct {
	Condition            float64                       `json:"condition"`
	Fuel                 float64                       `json:"fuel"`
	Systems              map[ship.SystemID]ship.System `json:"systems"`
	Cargo                ship.Cargo                    `json:"cargo"`
	DaysSinceMaintenance float64                       `json:"daysSinceMaintenance"`
}

// Travel is an in-progress jump.
type Travel struct {
	Destination   string `json:"destination"`
	DaysRemaining int    `json:"daysRemaining"`
}

// PendingEvent is a scheduled event instance.
type PendingEvent struct {
	Type        string  `json:"type"`
	Probability float64 `json:"probability"`
	Context     string  `json:"context"`
	Source      string  `json:"source,omitempty"`
}

// PromptRecord is an event waiting for the player's choice.
type PromptRecord struct {
	ID   string        `json:"id"`
	Type string        `json:"type"`
	Date calendar.Date `json:"date"`
}

// Snapshot is the full saved state of one game.
type Snapshot struct {
	Version   int            `json:"version"`
	Credits   int            `json:"credits"`
	Location  string         `json:"location"`
	Date      calendar.Date  `json:"date"`
	Ship      ShipState      `json:"ship"`
	Crew      []crew.Member  `json:"crew"`
	Morale    float64        `json:"morale"`
	Travel    *Travel        `json:"travel,omitempty"`
	Pending   []PendingEvent `json:"pending,omitempty"`
	Prompts   []PromptRecord `json:"prompts,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Layouts tried for the save time, after RFC 3339. Older saves wrote local
// ISO times without a zone.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// UnmarshalJSON decodes over the current values. A save time in an unknown
// shape leaves Timestamp zero instead of failing the whole document.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	type plain Snapshot
	aux := struct {
		*plain
		Timestamp json.RawMessage `json:"timestamp"`
	}{plain: (*plain)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	s.Timestamp = parseTimestamp(aux.Timestamp)
	return nil
}

func parseTimestamp(raw json.RawMessage) time.Time {
	var ms int64
	if err := json.Unmarshal(raw, &ms); err == nil && ms > 0 {
		return time.UnixMilli(ms).UTC()
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil || text == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339Nano, text); err == nil {
		return t
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Default returns the snapshot of a brand new game. Pending is left nil so
// the engine seeds its defaults.
func Default() *Snapshot {
	s := ship.New()
	roster := crew.NewRoster(nil, crew.DefaultMaxCrew)
	start := calendar.New(DefaultYear)
	for _, c := range crew.StartingCrew() {
		roster.Hire(c, start)
	}

	return &Snapshot{
		Version:  Version,
		Credits:  DefaultCredits,
		Location: DefaultLocation,
		Date:     start,
		Ship:     StateOf(s),
		Crew:     roster.Members(),
		Morale:   roster.Morale(),
	}
}

// StateOf copies the mutable state out of a ship.
func StateOf(s *ship.Ship) ShipState {
	systems := make(map[ship.SystemID]ship.System, len(s.Systems))
	for id, sys := range s.Systems {
		systems[id] = sys
	}
	cargo := s.Cargo
	cargo.Items = append([]ship.CargoItem{}, s.Cargo.Items...)

	return ShipState{
		Condition:            s.Condition,
		Fuel:                 s.Fuel,
		Systems:              systems,
		Cargo:                cargo,
		DaysSinceMaintenance: s.DaysSinceMaintenance,
	}
}

// Apply writes the state onto a ship, recomputing subsystem efficiency.
func (st ShipState) Apply(s *ship.Ship) {
	s.Condition = st.Condition
	s.Fuel = st.Fuel
	for id, sys := range st.Systems {
		s.SetCondition(id, sys.Condition)
	}
	s.Cargo = st.Cargo
	s.Cargo.Items = append([]ship.CargoItem{}, st.Cargo.Items...)
	s.DaysSinceMaintenance = st.DaysSinceMaintenance
}

// Encode stamps and marshals a snapshot.
func Encode(s *Snapshot) ([]byte, error) {
	if s.Version == 0 {
		s.Version = Version
	}
	if s.Timestamp.IsZero() {
		s.Timestamp = time.Now().UTC()
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a document over a fresh game so that missing fields keep
// their defaults, then normalizes derived values. It does not validate.
func Decode(data []byte) (*Snapshot, error) {
	fresh := Default()
	s := Default()
	s.Version = 0
	// json merges array elements into existing ones, so lists start empty
	s.Crew = nil
	s.Ship.Cargo.Items = nil
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if s.Crew == nil {
		s.Crew = fresh.Crew
	}
	if s.Version == 0 {
		s.Version = 1
	}
	s.normalize()
	return s, nil
}

// Load decodes and validates a document.
func Load(data []byte, maxCrew int) (*Snapshot, error) {
	s, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(maxCrew); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Snapshot) normalize() {
	for id, sys := range s.Ship.Systems {
		sys.Efficiency = sys.Condition / 100
		s.Ship.Systems[id] = sys
	}

	if s.Ship.Cargo.Capacity == 0 {
		s.Ship.Cargo.Capacity = ship.DefaultCargoSpace
	}
	if s.Ship.Cargo.Items == nil {
		s.Ship.Cargo.Items = []ship.CargoItem{}
	}
	used := 0
	for i, it := range s.Ship.Cargo.Items {
		if it.Weight == 0 {
			s.Ship.Cargo.Items[i].Weight = 1
			it.Weight = 1
		}
		used += it.Quantity * it.Weight
	}
	// older saves did not store the used figure
	if s.Ship.Cargo.Used == 0 {
		s.Ship.Cargo.Used = used
	}

	for i := range s.Crew {
		if s.Crew[i].Skills == nil {
			s.Crew[i].Skills = map[string]float64{}
		}
		if s.Crew[i].Performance == 0 {
			s.Crew[i].Performance = crew.MaxPerformance
		}
	}

	// roster morale is derived from the members
	s.Morale = crew.EmptyRosterMorale
	if len(s.Crew) > 0 {
		total := 0.0
		for _, m := range s.Crew {
			total += m.Morale
		}
		s.Morale = total / float64(len(s.Crew))
	}
}
