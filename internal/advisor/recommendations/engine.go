package recommendations

import (
	"sort"
	"strings"
	"unicode"
)

// MaxRecommendations caps the generated list.
const MaxRecommendations = 7

// GenerateRecommendations builds deterministic recommendations from a combined analysis.
func GenerateRecommendations(input Input) []Recommendation {
	candidates := make([]Recommendation, 0, 8)
	mappers := []func(Input) []Recommendation{
		fromSkillGap,
		fromRoadmap,
		fromAlternative,
		fromAdditionalSkills,
		fromPartialMatches,
	}
	for _, mapper := range mappers {
		candidates = append(candidates, mapper(input)...)
	}

	deduped := dedupe(candidates)
	sortRecommendations(deduped)
	if len(deduped) > MaxRecommendations {
		deduped = deduped[:MaxRecommendations]
	}
	for i := range deduped {
		deduped[i].Order = i + 1
	}
	return deduped
}

func priorityRank(value string) int {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "high":
		return 3
	case "medium":
		return 2
	default:
		return 1
	}
}

func typeRank(value string) int {
	switch strings.TrimSpace(value) {
	case TypeSkillGap:
		return 5
	case TypePartialSkills:
		return 4
	case TypeLearningStrategy:
		return 3
	case TypeCareerSuggestion:
		return 2
	case TypeCompetitiveAdvantage:
		return 1
	default:
		return 0
	}
}

func slugify(input string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(input)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "item"
	}
	return out
}

func dedupe(items []Recommendation) []Recommendation {
	seen := make(map[string]Recommendation, len(items))
	order := make([]string, 0, len(items))
	for _, item := range items {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			continue
		}
		if existing, ok := seen[id]; ok {
			seen[id] = mergeRecommendation(existing, item)
			continue
		}
		seen[id] = item
		order = append(order, id)
	}
	out := make([]Recommendation, 0, len(order))
	for _, id := range order {
		out = append(out, seen[id])
	}
	return out
}

func mergeRecommendation(a, b Recommendation) Recommendation {
	if strings.TrimSpace(a.Title) == "" {
		a.Title = b.Title
	}
	if strings.TrimSpace(a.Why) == "" {
		a.Why = b.Why
	}
	if strings.TrimSpace(a.Action) == "" {
		a.Action = b.Action
	}
	if strings.TrimSpace(a.Type) == "" {
		a.Type = b.Type
	}
	if strings.TrimSpace(a.Priority) == "" {
		a.Priority = b.Priority
	}
	return a
}

func sortRecommendations(items []Recommendation) {
	sort.SliceStable(items, func(i, j int) bool {
		a := items[i]
		b := items[j]
		if priorityRank(a.Priority) != priorityRank(b.Priority) {
			return priorityRank(a.Priority) > priorityRank(b.Priority)
		}
		if typeRank(a.Type) != typeRank(b.Type) {
			return typeRank(a.Type) > typeRank(b.Type)
		}
		return strings.ToLower(a.Title) < strings.ToLower(b.Title)
	})
}
