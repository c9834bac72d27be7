package recommendations

const (
	TypeSkillGap             = "skill_gap"
	TypeLearningStrategy     = "learning_strategy"
	TypeCareerSuggestion     = "career_suggestion"
	TypeCompetitiveAdvantage = "competitive_advantage"
	TypePartialSkills        = "partial_skills"
)

const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// Recommendation represents a deterministic suggestion derived from a combined analysis.
type Recommendation struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Priority string `json:"priority"`
	Title    string `json:"title"`
	Why      string `json:"why"`
	Action   string `json:"action"`
	Order    int    `json:"order"`
}

// Partial is a required skill only approximately covered by a candidate skill.
type Partial struct {
	Required  string
	Candidate string
}

// Alternative is the best scoring role from the suggester.
type Alternative struct {
	RoleID string
	Title  string
	Score  float64
}

// Input is the data needed for recommendation generation.
type Input struct {
	TargetRoleID     string
	MatchPercentage  int
	MissingSkills    []string
	AdditionalSkills []string
	PartialMatches   []Partial
	RoadmapDays      int
	RoadmapDuration  string
	TopAlternative   *Alternative
}
