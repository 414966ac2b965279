// Package ship models the player's vessel: hull condition, fuel, subsystems
// and the cargo hold.
// This package is PURE and must NOT import any infrastructure packages.
package ship

import "math"

// SystemID names a maintainable subsystem.
type SystemID string

const (
	Engines     SystemID = "engines"
	LifeSupport SystemID = "lifeSupport"
	Weapons     SystemID = "weapons"
	Sensors     SystemID = "sensors"
	Computers   SystemID = "computers"
)

// SystemIDs lists every subsystem in display order.
var SystemIDs = []SystemID{Engines, LifeSupport, Weapons, Sensors, Computers}

const (
	// DefaultDegradationRate is condition lost per day by each subsystem.
	DefaultDegradationRate = 0.1

	// MaintenanceThreshold is the subsystem condition below which maintenance is needed.
	MaintenanceThreshold = 30.0
	// MaintenanceInterval is the number of days after which maintenance is overdue.
	MaintenanceInterval = 30.0

	JumpFuelCost      = 10.0
	JumpEngineWear    = 5.0
	MinJumpEngine     = 20.0
	MaxFuel           = 100.0
	FuelPricePerUnit  = 10
	DefaultCargoSpace = 100
)

// System is one subsystem. Efficiency always equals Condition/100.
type System struct {
	Condition  float64 `json:"condition"`
	Efficiency float64 `json:"efficiency"`
}

// Specs are the static hull specifications.
type Specs struct {
	Tonnage   int `json:"tonnage"`
	JumpRange int `json:"jumpRange"`
	Maneuver  int `json:"maneuver"`
	Armor     int `json:"armor"`
	Hull      int `json:"hull"`
}

// Ship is the player's vessel.
type Ship struct {
	Name      string              `json:"name"`
	Type      string              `json:"type"`
	Condition float64             `json:"condition"` // 0-100
	Fuel      float64             `json:"fuel"`      // 0-100
	Systems   map[SystemID]System `json:"systems"`
	Cargo     Cargo               `json:"cargo"`
	Specs     Specs               `json:"specs"`

	DaysSinceMaintenance float64 `json:"daysSinceMaintenance"`
	DegradationRate      float64 `json:"-"`
}

// New creates a fully serviced "Free Trader" with a full tank and an empty hold.
func New() *Ship {
	s := &Ship{
		Name:            "Free Trader",
		Type:            "Type A2",
		Condition:       100,
		Fuel:            MaxFuel,
		Systems:         make(map[SystemID]System, len(SystemIDs)),
		Cargo:           Cargo{Capacity: DefaultCargoSpace, Items: []CargoItem{}},
		Specs:           Specs{Tonnage: 200, JumpRange: 1, Maneuver: 1, Armor: 0, Hull: 100},
		DegradationRate: DefaultDegradationRate,
	}
	for _, id := range SystemIDs {
		s.SetCondition(id, 100)
	}
	return s
}

// SetCondition stores a subsystem condition, clamped to 0..100, and recomputes its efficiency.
func (s *Ship) SetCondition(id SystemID, condition float64) {
	condition = clamp(condition)
	s.Systems[id] = System{Condition: condition, Efficiency: condition / 100}
}

// SystemCondition returns the condition of one subsystem.
func (s *Ship) SystemCondition(id SystemID) float64 {
	return s.Systems[id].Condition
}

// Tick applies deltaDays of natural wear: every subsystem loses
// DegradationRate per day and the hull loses half that.
func (s *Ship) Tick(deltaDays float64) {
	if deltaDays <= 0 {
		return
	}
	rate := s.rate()
	for _, id := range SystemIDs {
		s.SetCondition(id, s.Systems[id].Condition-rate*deltaDays)
	}
	s.Condition = math.Max(0, s.Condition-rate*0.5*deltaDays)
	s.DaysSinceMaintenance += deltaDays
}

func (s *Ship) rate() float64 {
	if s.DegradationRate <= 0 {
		return DefaultDegradationRate
	}
	return s.DegradationRate
}

// NeedsMaintenance reports whether any subsystem has fallen below MaintenanceThreshold.
func (s *Ship) NeedsMaintenance() bool {
	for _, id := range SystemIDs {
		if s.Systems[id].Condition < MaintenanceThreshold {
			return true
		}
	}
	return false
}

// MaintenanceOverdue reports whether the last service is older than MaintenanceInterval days.
func (s *Ship) MaintenanceOverdue() bool {
	return s.DaysSinceMaintenance > MaintenanceInterval
}

// Wear removes amount from the overall hull condition, floored at 0.
func (s *Ship) Wear(amount float64) {
	s.Condition = math.Max(0, s.Condition-amount)
}

// CanJump reports whether there is fuel for a jump and the engines can take it.
func (s *Ship) CanJump() bool {
	return s.Fuel >= JumpFuelCost && s.SystemCondition(Engines) > MinJumpEngine
}

// PerformJump burns fuel and wears the engines. It fails without mutation when CanJump is false.
func (s *Ship) PerformJump() bool {
	if !s.CanJump() {
		return false
	}
	s.Fuel -= JumpFuelCost
	s.SetCondition(Engines, s.SystemCondition(Engines)-JumpEngineWear)
	return true
}

// RefuelCost is the price of amount fuel units.
func RefuelCost(amount int) int {
	return amount * FuelPricePerUnit
}

// Refuel tops up the tank by amount (capped at MaxFuel) and returns the
// advisory cost. The caller settles the cost with the ledger.
func (s *Ship) Refuel(amount int) int {
	s.Fuel = math.Min(MaxFuel, s.Fuel+float64(amount))
	return RefuelCost(amount)
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
