package ship

// Status is a coarse condition band.
type Status string

const (
	StatusExcellent Status = "Excellent"
	StatusGood      Status = "Good"
	StatusFair      Status = "Fair"
	StatusPoor      Status = "Poor"
	StatusCritical  Status = "Critical"
)

// Classify maps a 0..100 condition onto a Status band.
func Classify(condition float64) Status {
	switch {
	case condition > 80:
		return StatusExcellent
	case condition > 60:
		return StatusGood
	case condition > 40:
		return StatusFair
	case condition > 20:
		return StatusPoor
	default:
		return StatusCritical
	}
}

// OverallStatus classifies the hull condition.
func (s *Ship) OverallStatus() Status {
	return Classify(s.Condition)
}

// SystemStatus classifies every subsystem.
func (s *Ship) SystemStatus() map[SystemID]Status {
	out := make(map[SystemID]Status, len(SystemIDs))
	for _, id := range SystemIDs {
		out[id] = Classify(s.Systems[id].Condition)
	}
	return out
}

// Details is the full read-only view of the ship for presentation layers.
type Details struct {
	Name          string              `json:"name"`
	Type          string              `json:"type"`
	Specs         Specs               `json:"specifications"`
	Condition     float64             `json:"condition"`
	Fuel          float64             `json:"fuel"`
	Systems       map[SystemID]System `json:"systems"`
	SystemStatus  map[SystemID]Status `json:"systemStatus"`
	Cargo         Cargo               `json:"cargo"`
	CargoValue    int                 `json:"cargoValue"`
	OverallStatus Status              `json:"overallStatus"`
	NeedsService  bool                `json:"needsMaintenance"`
	ServiceDue    bool                `json:"maintenanceOverdue"`
}

// Details returns a copy of the ship state with derived statuses.
func (s *Ship) Details() Details {
	systems := make(map[SystemID]System, len(s.Systems))
	for id, sys := range s.Systems {
		systems[id] = sys
	}
	cargo := s.Cargo
	cargo.Items = append([]CargoItem(nil), s.Cargo.Items...)

	return Details{
		Name:          s.Name,
		Type:          s.Type,
		Specs:         s.Specs,
		Condition:     s.Condition,
		Fuel:          s.Fuel,
		Systems:       systems,
		SystemStatus:  s.SystemStatus(),
		Cargo:         cargo,
		CargoValue:    s.CargoValue(),
		OverallStatus: s.OverallStatus(),
		NeedsService:  s.NeedsMaintenance(),
		ServiceDue:    s.MaintenanceOverdue(),
	}
}
