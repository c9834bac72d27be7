package suggest

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"skillpath-backend/internal/catalog"
	"skillpath-backend/internal/skills"
)

// DefaultLimit is used when callers pass a non-positive limit.
const DefaultLimit = 5

// MinScore is the score a role must exceed to be suggested.
const MinScore = 20.0

const (
	coreWeight      = 50.0
	preferredWeight = 30.0
	bonusWeight     = 20.0
)

// Suggestion is a ranked role for a candidate.
type Suggestion struct {
	RoleID           string   `json:"roleId"`
	Title            string   `json:"title"`
	Score            float64  `json:"score"`
	CoreMatches      int      `json:"coreMatches"`
	PreferredMatches int      `json:"preferredMatches"`
	BonusMatches     int      `json:"bonusMatches"`
	MatchedSkills    []string `json:"matchedSkills"`
	Reason           string   `json:"reason"`
	Growth           []string `json:"growth"`
}

// Overview wraps the ranked suggestions with totals.
type Overview struct {
	Suggestions         []Suggestion `json:"suggestions"`
	TotalCandidates     int          `json:"totalCandidates"`
	TopScore            float64      `json:"topScore"`
	GrowthOpportunities []string     `json:"growthOpportunities"`
}

// RoleSource lists the roles to score against.
type RoleSource interface {
	Roles() []catalog.Role
}

// Suggester ranks catalog roles by tiered skill coverage.
type Suggester struct {
	roles RoleSource
	norm  *skills.Normalizer
}

// NewSuggester constructs a Suggester.
func NewSuggester(roles RoleSource, norm *skills.Normalizer) *Suggester {
	return &Suggester{roles: roles, norm: norm}
}

// Suggest returns at most limit roles scoring above MinScore, best first.
func (s *Suggester) Suggest(candidate []string, limit int) []Suggestion {
	return s.Summary(candidate, limit).Suggestions
}

// Summary ranks every role and reports how many qualified before truncation.
func (s *Suggester) Summary(candidate []string, limit int) Overview {
	if limit <= 0 {
		limit = DefaultLimit
	}
	have := make(map[string]struct{})
	for _, skill := range s.norm.NormalizeAll(candidate) {
		have[skill] = struct{}{}
	}

	var ranked []Suggestion
	for _, role := range s.roles.Roles() {
		sg, raw := score(role, have, s.norm)
		if raw <= MinScore {
			continue
		}
		ranked = append(ranked, sg)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Title < ranked[j].Title
	})

	out := Overview{
		Suggestions:         []Suggestion{},
		TotalCandidates:     len(ranked),
		GrowthOpportunities: []string{},
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	if len(ranked) > 0 {
		out.Suggestions = ranked
		out.TopScore = ranked[0].Score
		out.GrowthOpportunities = append(out.GrowthOpportunities, ranked[0].Growth...)
	}
	return out
}

func score(role catalog.Role, have map[string]struct{}, norm *skills.Normalizer) (Suggestion, float64) {
	core := matches(norm.NormalizeAll(role.Core), have)
	preferred := matches(norm.NormalizeAll(role.Preferred), have)
	bonus := matches(norm.NormalizeAll(role.Bonus), have)

	raw := tier(len(core), len(role.Core), coreWeight) +
		tier(len(preferred), len(role.Preferred), preferredWeight) +
		tier(len(bonus), len(role.Bonus), bonusWeight)

	matched := make([]string, 0, len(core)+len(preferred)+len(bonus))
	matched = append(matched, core...)
	matched = append(matched, preferred...)
	matched = append(matched, bonus...)

	sg := Suggestion{
		RoleID:           role.ID,
		Title:            role.Name,
		Score:            math.Round(raw*100) / 100,
		CoreMatches:      len(core),
		PreferredMatches: len(preferred),
		BonusMatches:     len(bonus),
		MatchedSkills:    matched,
		Growth:           append([]string{}, role.Growth...),
	}
	sg.Reason = reason(raw, core, preferred)
	return sg, raw
}

func matches(required []string, have map[string]struct{}) []string {
	out := []string{}
	for _, skill := range required {
		if _, ok := have[skill]; ok {
			out = append(out, skill)
		}
	}
	return out
}

// tier guards against roles that leave a tier empty.
func tier(matched, total int, weight float64) float64 {
	if total == 0 {
		return 0
	}
	return float64(matched) / float64(total) * weight
}

func reason(score float64, core, preferred []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Strong match with %.1f%% compatibility. ", score)
	if len(core) > 0 {
		fmt.Fprintf(&b, "Has core skills: %s. ", strings.Join(core, ", "))
	}
	if len(preferred) > 0 {
		fmt.Fprintf(&b, "Also knows preferred technologies: %s. ", strings.Join(preferred, ", "))
	}
	switch {
	case score >= 70:
		b.WriteString("Excellent fit for this role with strong foundational knowledge.")
	case score >= 50:
		b.WriteString("Good fit with room to grow in preferred technologies.")
	default:
		b.WriteString("Potential fit with focus on core skill development.")
	}
	return b.String()
}
