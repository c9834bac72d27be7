package suggest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillpath-backend/internal/catalog"
	"skillpath-backend/internal/skills"
)

func newDefaultSuggester(t *testing.T) *Suggester {
	t.Helper()
	c, err := catalog.LoadDefault()
	require.NoError(t, err)
	return NewSuggester(c, skills.NewNormalizer(c.Aliases()))
}

func titles(in []Suggestion) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, s.Title)
	}
	return out
}

func TestSuggestRanksByScoreThenTitle(t *testing.T) {
	s := newDefaultSuggester(t)

	got := s.Suggest([]string{"HTML", "css", "js"}, 0)

	assert.Equal(t, []string{
		"Frontend Developer",
		"Full Stack Developer",
		"Junior Developer",
		"UI/UX Designer",
		"Mobile Developer",
	}, titles(got))
	assert.Equal(t, 50.0, got[0].Score)
	assert.Equal(t, 37.5, got[1].Score)
	assert.Equal(t, 37.5, got[2].Score)
	assert.Equal(t, 26.67, got[3].Score)
	assert.Equal(t, 25.0, got[4].Score)
}

func TestSuggestDetails(t *testing.T) {
	s := newDefaultSuggester(t)

	got := s.Suggest([]string{"html", "css", "javascript"}, 1)
	require.Len(t, got, 1)

	top := got[0]
	assert.Equal(t, "frontend_developer", top.RoleID)
	assert.Equal(t, 3, top.CoreMatches)
	assert.Zero(t, top.PreferredMatches)
	assert.Zero(t, top.BonusMatches)
	assert.Equal(t, []string{"html", "css", "javascript"}, top.MatchedSkills)
	assert.Equal(t,
		"Strong match with 50.0% compatibility. Has core skills: html, css, javascript. Good fit with room to grow in preferred technologies.",
		top.Reason)
	assert.Contains(t, top.Growth, "Frontend Architect")
}

func TestSuggestDropsWeakMatches(t *testing.T) {
	s := newDefaultSuggester(t)

	for _, sg := range s.Suggest([]string{"html", "css", "javascript"}, 20) {
		assert.Greater(t, sg.Score, MinScore, sg.Title)
		assert.NotEqual(t, "QA Engineer", sg.Title)
		assert.NotEqual(t, "Technical Writer", sg.Title)
	}
}

func TestSuggestNoSkills(t *testing.T) {
	s := newDefaultSuggester(t)

	ov := s.Summary(nil, 3)
	assert.NotNil(t, ov.Suggestions)
	assert.Empty(t, ov.Suggestions)
	assert.Zero(t, ov.TotalCandidates)
	assert.Zero(t, ov.TopScore)
	assert.NotNil(t, ov.GrowthOpportunities)
}

func TestSummaryCountsBeforeLimit(t *testing.T) {
	s := newDefaultSuggester(t)

	ov := s.Summary([]string{"html", "css", "javascript"}, 2)
	assert.Len(t, ov.Suggestions, 2)
	assert.Equal(t, 5, ov.TotalCandidates)
	assert.Equal(t, 50.0, ov.TopScore)
	assert.Equal(t, ov.Suggestions[0].Growth, ov.GrowthOpportunities)
}

func TestSuggestEmptyTiers(t *testing.T) {
	c, err := catalog.New(catalog.Data{
		Roles: map[string]catalog.RoleData{
			"shell_scripter": {Name: "Shell Scripter", Core: []string{"bash"}},
		},
	})
	require.NoError(t, err)
	s := NewSuggester(c, skills.NewNormalizer(c.Aliases()))

	got := s.Suggest([]string{"bash"}, 5)
	require.Len(t, got, 1)
	assert.Equal(t, 50.0, got[0].Score)
	assert.True(t, strings.HasSuffix(got[0].Reason, "Good fit with room to grow in preferred technologies."))
	assert.NotContains(t, got[0].Reason, "preferred technologies:")
}

func TestSuggestExcellentFit(t *testing.T) {
	s := newDefaultSuggester(t)

	got := s.Suggest([]string{"linux", "docker", "git", "kubernetes", "ci/cd", "aws", "monitoring"}, 1)
	require.Len(t, got, 1)
	assert.Equal(t, "DevOps Engineer", got[0].Title)
	assert.Equal(t, 80.0, got[0].Score)
	assert.True(t, strings.HasSuffix(got[0].Reason, "Excellent fit for this role with strong foundational knowledge."))
	assert.Contains(t, got[0].Reason, "Also knows preferred technologies: kubernetes, ci/cd, cloud platforms, monitoring. ")
}

func TestScoreMonotonicInCoverage(t *testing.T) {
	s := newDefaultSuggester(t)

	find := func(in []Suggestion, id string) float64 {
		for _, sg := range in {
			if sg.RoleID == id {
				return sg.Score
			}
		}
		return 0
	}
	base := find(s.Suggest([]string{"python", "statistics"}, 10), "data_scientist")
	more := find(s.Suggest([]string{"python", "statistics", "sql"}, 10), "data_scientist")
	assert.Greater(t, more, base)
}
