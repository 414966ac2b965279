package ship

// MaintenanceKind selects how thorough a service is.
type MaintenanceKind string

const (
	MaintenanceBasic MaintenanceKind = "basic"
	MaintenanceFull  MaintenanceKind = "full"
)

// MaintenanceResult describes a completed service. Cost is advisory; the
// caller deducts it through the ledger.
type MaintenanceResult struct {
	Cost            int     `json:"cost"`
	Effectiveness   float64 `json:"effectiveness"`
	SystemsImproved int     `json:"systemsImproved"`
}

// MaintenanceCost returns the price and effectiveness of a service kind.
// Anything other than a full service is priced as basic.
func MaintenanceCost(kind MaintenanceKind) (cost int, effectiveness float64) {
	if kind == MaintenanceFull {
		return 500, 1.0
	}
	return 200, 0.5
}

// PerformMaintenance closes a share of the gap to 100 on every subsystem and
// on the hull: all of it for a full service, half for a basic one.
func (s *Ship) PerformMaintenance(kind MaintenanceKind) MaintenanceResult {
	cost, effectiveness := MaintenanceCost(kind)

	for _, id := range SystemIDs {
		s.SetCondition(id, restore(s.Systems[id].Condition, effectiveness))
	}
	s.Condition = restore(s.Condition, effectiveness)
	s.DaysSinceMaintenance = 0

	return MaintenanceResult{
		Cost:            cost,
		Effectiveness:   effectiveness,
		SystemsImproved: len(SystemIDs),
	}
}

func restore(current, effectiveness float64) float64 {
	if effectiveness >= 1 {
		return 100
	}
	improvement := (100 - current) * effectiveness
	return clamp(current + improvement)
}
