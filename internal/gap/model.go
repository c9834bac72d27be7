package gap

// PartialMatch pairs a required skill with the candidate skill that approximately covers it.
type PartialMatch struct {
	Required   string  `json:"required"`
	Candidate  string  `json:"candidate"`
	Similarity float64 `json:"similarity"`
}

// Summary counts the partition of the required skills.
type Summary struct {
	Total   int `json:"total"`
	Matched int `json:"matched"`
	Partial int `json:"partial"`
	Missing int `json:"missing"`
}

// Result is the gap between a candidate's skills and one role.
type Result struct {
	RoleID             string         `json:"roleId"`
	TargetRole         string         `json:"targetRole"`
	MatchedSkills      []string       `json:"matchedSkills"`
	PartialMatches     []PartialMatch `json:"partialMatches"`
	MissingSkills      []string       `json:"missingSkills"`
	AdditionalSkills   []string       `json:"additionalSkills"`
	MatchedPreferred   []string       `json:"matchedPreferred"`
	MatchPercentage    int            `json:"matchPercentage"`
	SkillGapPercentage int            `json:"skillGapPercentage"`
	ReadinessScore     int            `json:"readinessScore"`
	SkillLevel         string         `json:"skillLevel"`
	Summary            Summary        `json:"summary"`
}

// PartialSkills lists the required side of every partial match.
func (r Result) PartialSkills() []string {
	out := make([]string, 0, len(r.PartialMatches))
	for _, pm := range r.PartialMatches {
		out = append(out, pm.Required)
	}
	return out
}

const (
	LevelExpert       = "Expert"
	LevelAdvanced     = "Advanced"
	LevelIntermediate = "Intermediate"
	LevelBeginner     = "Beginner"
	LevelNovice       = "Novice"
)

// Level maps a match percentage onto a skill level. Thresholds are inclusive lower bounds.
func Level(matchPercentage int) string {
	switch {
	case matchPercentage >= 80:
		return LevelExpert
	case matchPercentage >= 60:
		return LevelAdvanced
	case matchPercentage >= 40:
		return LevelIntermediate
	case matchPercentage >= 20:
		return LevelBeginner
	default:
		return LevelNovice
	}
}
