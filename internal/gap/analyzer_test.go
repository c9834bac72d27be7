package gap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillpath-backend/internal/catalog"
	"skillpath-backend/internal/skills"
)

func newTestAnalyzer(t *testing.T, opts ...Option) (*Analyzer, *catalog.Catalog) {
	t.Helper()
	c, err := catalog.LoadDefault()
	require.NoError(t, err)
	return NewAnalyzer(skills.NewNormalizer(c.Aliases()), c, opts...), c
}

func TestAnalyzeExactMatch(t *testing.T) {
	a, _ := newTestAnalyzer(t)
	role := catalog.Role{ID: "web", Name: "Web", Core: []string{"HTML", "CSS", "JavaScript", "React"}}

	res := a.Analyze([]string{"HTML", "CSS", "JavaScript", "React"}, role)

	assert.Equal(t, 100, res.MatchPercentage)
	assert.Equal(t, 0, res.SkillGapPercentage)
	assert.Empty(t, res.MissingSkills)
	assert.Empty(t, res.PartialMatches)
	assert.Equal(t, LevelExpert, res.SkillLevel)
	assert.Equal(t, 100, res.ReadinessScore)
	assert.Equal(t, []string{"html", "css", "javascript", "react"}, res.MatchedSkills)
}

func TestAnalyzeAliasesResolveToExactMatches(t *testing.T) {
	a, _ := newTestAnalyzer(t)
	role := catalog.Role{ID: "node", Name: "Node", Core: []string{"React", "Node.js"}}

	res := a.Analyze([]string{"ReactJS", "Node"}, role)

	assert.Equal(t, 100, res.MatchPercentage)
	assert.Equal(t, []string{"react", "node.js"}, res.MatchedSkills)
	assert.Empty(t, res.PartialMatches)
	assert.Empty(t, res.AdditionalSkills)
}

func TestAnalyzeReadinessBonus(t *testing.T) {
	a, _ := newTestAnalyzer(t)
	role := catalog.Role{
		ID:        "fe",
		Name:      "Frontend",
		Core:      []string{"html", "css", "javascript", "react"},
		Preferred: []string{"typescript", "webpack", "redux", "jest", "sass"},
	}

	res := a.Analyze([]string{"html", "css", "typescript", "webpack", "redux", "jest", "sass"}, role)

	assert.Equal(t, 78, res.MatchPercentage)
	assert.Equal(t, 22, res.SkillGapPercentage)
	assert.Equal(t, 98, res.ReadinessScore)
	assert.Equal(t, LevelAdvanced, res.SkillLevel)
	assert.Equal(t, []string{"javascript", "react"}, res.MissingSkills)
	assert.Len(t, res.MatchedPreferred, 5)
}

func TestAnalyzePartialMatches(t *testing.T) {
	a, _ := newTestAnalyzer(t)

	cases := []struct {
		name      string
		required  string
		candidate []string
		want      string
		partial   bool
	}{
		{name: "substring", required: "kubernetes", candidate: []string{"kube"}, want: "kube", partial: true},
		{name: "typo", required: "kubernetes", candidate: []string{"kubernetis"}, want: "kubernetis", partial: true},
		{name: "below_threshold", required: "docker", candidate: []string{"dockre"}, partial: false},
		{name: "best_similarity_wins", required: "javascript", candidate: []string{"java", "javascripts"}, want: "javascripts", partial: true},
		{name: "tie_keeps_input_order", required: "golang", candidate: []string{"golangx", "xgolang"}, want: "golangx", partial: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			role := catalog.Role{ID: "r", Name: "R", Core: []string{tc.required}}
			res := a.Analyze(tc.candidate, role)
			if !tc.partial {
				assert.Empty(t, res.PartialMatches)
				assert.Equal(t, []string{tc.required}, res.MissingSkills)
				return
			}
			require.Len(t, res.PartialMatches, 1)
			pm := res.PartialMatches[0]
			assert.Equal(t, tc.required, pm.Required)
			assert.Equal(t, tc.want, pm.Candidate)
			assert.GreaterOrEqual(t, pm.Similarity, 0.0)
			assert.LessOrEqual(t, pm.Similarity, 1.0)
			assert.Empty(t, res.MissingSkills)
			assert.Equal(t, 0, res.MatchPercentage)
		})
	}
}

func TestAnalyzeThresholdOption(t *testing.T) {
	a, _ := newTestAnalyzer(t, WithPartialThreshold(0.95))
	role := catalog.Role{ID: "r", Name: "R", Core: []string{"kubernetes"}}

	res := a.Analyze([]string{"kubernetis"}, role)
	assert.Empty(t, res.PartialMatches)
	assert.Equal(t, []string{"kubernetes"}, res.MissingSkills)
}

func TestAnalyzeEmptyRoleIsZero(t *testing.T) {
	a, _ := newTestAnalyzer(t)

	res := a.Analyze([]string{"go", "rust"}, catalog.Role{ID: "empty", Name: "Empty"})

	assert.Equal(t, 0, res.MatchPercentage)
	assert.Equal(t, 0, res.SkillGapPercentage)
	assert.Equal(t, 0, res.ReadinessScore)
	assert.Equal(t, LevelNovice, res.SkillLevel)
	assert.Equal(t, []string{"go", "rust"}, res.AdditionalSkills)
}

func TestAnalyzePartitionIsComplete(t *testing.T) {
	a, c := newTestAnalyzer(t)
	candidates := [][]string{
		nil,
		{"js", "html5", "css3", "kube", "pythn"},
		{"python", "statistics", "r", "sql", "tableau"},
		{"Docker", "k8s", "AWS", "terraform", "bash"},
		{"", "  ", "communication", "problem-solving"},
	}

	for _, role := range c.Roles() {
		for _, cand := range candidates {
			res := a.Analyze(cand, role)
			required := skills.NewNormalizer(c.Aliases()).NormalizeAll(append(append([]string{}, role.Core...), role.Preferred...))

			seen := map[string]int{}
			for _, s := range res.MatchedSkills {
				seen[s]++
			}
			for _, s := range res.PartialSkills() {
				seen[s]++
			}
			for _, s := range res.MissingSkills {
				seen[s]++
			}
			assert.Len(t, seen, len(required), "role %s", role.ID)
			for _, s := range required {
				assert.Equal(t, 1, seen[s], "role %s skill %s", role.ID, s)
			}
			assert.GreaterOrEqual(t, res.MatchPercentage, 0)
			assert.LessOrEqual(t, res.MatchPercentage, 100)
			assert.GreaterOrEqual(t, res.SkillGapPercentage, 0)
			assert.LessOrEqual(t, res.SkillGapPercentage, 100)
			assert.LessOrEqual(t, res.ReadinessScore, 100)
			assert.Equal(t, res.Summary.Total, len(required))
		}
	}
}

func TestAnalyzeRole(t *testing.T) {
	a, _ := newTestAnalyzer(t)

	res, err := a.AnalyzeRole([]string{"HTML", "css"}, "Frontend Developer")
	require.NoError(t, err)
	assert.Equal(t, "frontend_developer", res.RoleID)
	assert.Equal(t, "Frontend Developer", res.TargetRole)
	assert.Contains(t, res.MatchedSkills, "html")
	assert.Contains(t, res.MissingSkills, "javascript")

	_, err = a.AnalyzeRole([]string{"html"}, "astronaut")
	var unknown *catalog.UnknownRoleError
	require.True(t, errors.As(err, &unknown))
	assert.NotEmpty(t, unknown.Known)
}

func TestLevel(t *testing.T) {
	cases := []struct {
		pct  int
		want string
	}{
		{100, LevelExpert},
		{80, LevelExpert},
		{79, LevelAdvanced},
		{60, LevelAdvanced},
		{59, LevelIntermediate},
		{40, LevelIntermediate},
		{39, LevelBeginner},
		{20, LevelBeginner},
		{19, LevelNovice},
		{0, LevelNovice},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Level(tc.pct), "pct=%d", tc.pct)
	}
}
