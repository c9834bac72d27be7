package roadmap

import "skillpath-backend/internal/catalog"

// WeekBlock is one week of the plan.
type WeekBlock struct {
	Week       int                   `json:"week"`
	Focus      []string              `json:"focus"`
	Skills     []catalog.SkillRecord `json:"skills"`
	Difficulty int                   `json:"difficulty"`
	Days       int                   `json:"days"`
	Outcome    string                `json:"outcome"`
}

// Deferral reasons.
const (
	ReasonWeekBudget   = "week_budget"
	ReasonOverCapacity = "over_capacity"
)

// DeferredSkill is a skill left out of the plan.
type DeferredSkill struct {
	Skill      string `json:"skill"`
	Difficulty int    `json:"difficulty"`
	Reason     string `json:"reason"`
}

// Milestone marks progress through the scheduled skill sequence.
type Milestone struct {
	Percentage  int    `json:"percentage"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Skill       string `json:"skill"`
	Week        int    `json:"week"`
	Day         int    `json:"day"`
}

// Plan is a time-boxed learning roadmap.
type Plan struct {
	Weeks               []WeekBlock     `json:"weeks"`
	Deferred            []DeferredSkill `json:"deferred"`
	TotalWeeks          int             `json:"totalWeeks"`
	TotalDays           int             `json:"totalDays"`
	TotalDuration       string          `json:"totalDuration"`
	AverageDifficulty   float64         `json:"averageDifficulty"`
	Complexity          string          `json:"complexity"`
	StudyHours          int             `json:"studyHours"`
	EstimatedCompletion string          `json:"estimatedCompletion"`
	NextStep            string          `json:"nextStep"`
	Milestones          []Milestone     `json:"milestones"`
	Tips                []string        `json:"tips"`
}

// ScheduledSkills lists scheduled skill identities in plan order.
func (p Plan) ScheduledSkills() []string {
	var out []string
	for _, w := range p.Weeks {
		out = append(out, w.Focus...)
	}
	return out
}
