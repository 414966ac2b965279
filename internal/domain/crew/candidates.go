package crew

// StartingCrew is the crew aboard at the start of a new game.
func StartingCrew() []Candidate {
	return []Candidate{
		{
			Name:       "Captain Sarah Chen",
			Role:       "Captain",
			Skills:     map[string]float64{"pilot": 2, "navigation": 2, "leadership": 3},
			Morale:     80,
			Experience: 5,
			Salary:     1000,
		},
		{
			Name:       "Engineer Marcus Rodriguez",
			Role:       "Engineer",
			Skills:     map[string]float64{"engineering": 3, "mechanics": 2, "electronics": 2},
			Morale:     75,
			Experience: 3,
			Salary:     800,
		},
		{
			Name:       "Medic Dr. Emily Watson",
			Role:       "Medic",
			Skills:     map[string]float64{"medicine": 3, "biology": 2, "firstAid": 2},
			Morale:     70,
			Experience: 4,
			Salary:     900,
		},
	}
}

// HiringPool lists the candidates available at a port.
func HiringPool() []Candidate {
	return []Candidate{
		{
			Name:       "Pilot Alex Johnson",
			Role:       "Pilot",
			Skills:     map[string]float64{"pilot": 3, "navigation": 2},
			Experience: 4,
			Salary:     850,
		},
		{
			Name:       "Gunner Mike Thompson",
			Role:       "Gunner",
			Skills:     map[string]float64{"gunnery": 3, "tactics": 2},
			Experience: 3,
			Salary:     750,
		},
		{
			Name:       "Scientist Dr. Lisa Park",
			Role:       "Scientist",
			Skills:     map[string]float64{"science": 3, "research": 2},
			Experience: 6,
			Salary:     950,
		},
	}
}
