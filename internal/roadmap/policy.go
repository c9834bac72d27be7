package roadmap

// Policy bounds the generated plan.
type Policy struct {
	MaxWeeks             int `json:"maxWeeks"`
	MaxSkillsPerWeek     int `json:"maxSkillsPerWeek"`
	MaxDifficultyPerWeek int `json:"maxDifficultyPerWeek"`
	HoursPerDay          int `json:"hoursPerDay"`
}

// DefaultPolicy returns 8 weeks of at most 3 skills and 8 difficulty points each,
// studied 2 hours a day.
func DefaultPolicy() Policy {
	return Policy{
		MaxWeeks:             8,
		MaxSkillsPerWeek:     3,
		MaxDifficultyPerWeek: 8,
		HoursPerDay:          2,
	}
}

func (p Policy) withDefaults() Policy {
	def := DefaultPolicy()
	if p.MaxWeeks <= 0 {
		p.MaxWeeks = def.MaxWeeks
	}
	if p.MaxSkillsPerWeek <= 0 {
		p.MaxSkillsPerWeek = def.MaxSkillsPerWeek
	}
	if p.MaxDifficultyPerWeek <= 0 {
		p.MaxDifficultyPerWeek = def.MaxDifficultyPerWeek
	}
	if p.HoursPerDay <= 0 {
		p.HoursPerDay = def.HoursPerDay
	}
	return p
}
