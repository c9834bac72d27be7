package recommendations

import (
	"fmt"
	"strings"
)

const (
	skillGapThreshold      = 50
	longRoadmapDays        = 30
	additionalSkillsNeeded = 2
)

// highValueSkills are canonical skill identities that stand out to employers.
var highValueSkills = map[string]bool{
	"docker":             true,
	"kubernetes":         true,
	"cloud platforms":    true,
	"machine learning":   true,
	"blockchain":         true,
	"react":              true,
	"vue.js":             true,
	"angular":            true,
	"typescript":         true,
	"leadership":         true,
	"project management": true,
	"agile":              true,
	"scrum":              true,
}

func fromSkillGap(in Input) []Recommendation {
	if in.MatchPercentage >= skillGapThreshold || len(in.MissingSkills) == 0 {
		return nil
	}
	return []Recommendation{
		{
			ID:       "SKILL_GAP_CORE",
			Type:     TypeSkillGap,
			Priority: PriorityHigh,
			Title:    "Focus on Core Skills",
			Why:      fmt.Sprintf("You're missing %d essential skills for this role. Prioritize learning these first.", len(in.MissingSkills)),
			Action:   "Follow the generated roadmap and focus on high-priority skills: " + strings.Join(in.MissingSkills, ", "),
		},
	}
}

func fromRoadmap(in Input) []Recommendation {
	if in.RoadmapDays < longRoadmapDays {
		return nil
	}
	return []Recommendation{
		{
			ID:       "LEARNING_SCHEDULE",
			Type:     TypeLearningStrategy,
			Priority: PriorityMedium,
			Title:    "Create a Learning Schedule",
			Why:      fmt.Sprintf("Your learning journey will take about %s. Create a consistent study schedule.", in.RoadmapDuration),
			Action:   "Dedicate 10-15 hours per week and track your progress.",
		},
	}
}

func fromAlternative(in Input) []Recommendation {
	alt := in.TopAlternative
	if alt == nil || alt.RoleID == in.TargetRoleID || alt.Score <= float64(in.MatchPercentage) {
		return nil
	}
	return []Recommendation{
		{
			ID:       "CAREER_" + slugify(alt.RoleID),
			Type:     TypeCareerSuggestion,
			Priority: PriorityMedium,
			Title:    "Consider Alternative Roles",
			Why:      fmt.Sprintf("You might be a better fit for %s (%.1f%% match).", alt.Title, alt.Score),
			Action:   "Explore roles that better match your current skill set.",
		},
	}
}

func fromAdditionalSkills(in Input) []Recommendation {
	if len(in.AdditionalSkills) <= additionalSkillsNeeded {
		return nil
	}
	why := fmt.Sprintf("You have %d skills that set you apart from other candidates.", len(in.AdditionalSkills))
	var valuable []string
	for _, skill := range in.AdditionalSkills {
		if highValueSkills[strings.ToLower(strings.TrimSpace(skill))] {
			valuable = append(valuable, skill)
		}
	}
	if len(valuable) > 0 {
		why += " High-value: " + strings.Join(valuable, ", ") + "."
	}
	return []Recommendation{
		{
			ID:       "COMPETITIVE_ADVANTAGE",
			Type:     TypeCompetitiveAdvantage,
			Priority: PriorityLow,
			Title:    "Leverage Your Unique Skills",
			Why:      why,
			Action:   "Highlight these unique skills in your resume and interviews.",
		},
	}
}

func fromPartialMatches(in Input) []Recommendation {
	out := make([]Recommendation, 0, len(in.PartialMatches))
	for _, pm := range in.PartialMatches {
		required := strings.TrimSpace(pm.Required)
		if required == "" {
			continue
		}
		out = append(out, Recommendation{
			ID:       "PARTIAL_" + slugify(required),
			Type:     TypePartialSkills,
			Priority: PriorityMedium,
			Title:    "Confirm your " + required + " experience",
			Why:      fmt.Sprintf("%q only approximately matches the required skill %q.", pm.Candidate, required),
			Action:   "List " + required + " explicitly or build a small project that demonstrates it.",
		})
	}
	return out
}
