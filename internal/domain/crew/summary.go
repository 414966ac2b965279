package crew

// Summary aggregates roster figures for presentation.
type Summary struct {
	TotalCrew         int            `json:"totalCrew"`
	MaxCrew           int            `json:"maxCrew"`
	OverallMorale     float64        `json:"overallMorale"`
	TotalSalaries     int            `json:"totalSalaries"`
	Roles             map[string]int `json:"roles"`
	AverageExperience float64        `json:"averageExperience"`
}

// Signal is a roster condition the event layer may react to.
type Signal string

const (
	SignalNone            Signal = ""
	SignalLowMorale       Signal = "low_morale"
	SignalHighPerformance Signal = "high_performance"
)

// Payroll sums every member's salary.
func (r *Roster) Payroll() int {
	total := 0
	for _, m := range r.members {
		total += m.Salary
	}
	return total
}

// AverageExperience is the mean experience, 0 for an empty roster.
func (r *Roster) AverageExperience() float64 {
	if len(r.members) == 0 {
		return 0
	}
	total := 0.0
	for _, m := range r.members {
		total += m.Experience
	}
	return total / float64(len(r.members))
}

// Summary returns the roster summary.
func (r *Roster) Summary() Summary {
	roles := make(map[string]int)
	for _, m := range r.members {
		roles[m.Role]++
	}
	return Summary{
		TotalCrew:         len(r.members),
		MaxCrew:           r.maxCrew,
		OverallMorale:     r.morale,
		TotalSalaries:     r.Payroll(),
		Roles:             roles,
		AverageExperience: r.AverageExperience(),
	}
}

// Signal reports low roster morale first, then any standout performer.
func (r *Roster) Signal() Signal {
	if r.morale < 40 {
		return SignalLowMorale
	}
	for _, m := range r.members {
		if m.Performance > 90 {
			return SignalHighPerformance
		}
	}
	return SignalNone
}
