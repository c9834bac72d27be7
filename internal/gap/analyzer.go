package gap

import (
	"math"
	"strings"

	"skillpath-backend/internal/catalog"
	"skillpath-backend/internal/skills"
)

// DefaultPartialThreshold is the similarity a candidate must exceed to partially match.
const DefaultPartialThreshold = 0.7

const (
	preferredBonusPerSkill = 5
	preferredBonusCap      = 20
)

// RoleResolver resolves a free-text role target.
type RoleResolver interface {
	ResolveRole(target string) (catalog.Role, error)
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithPartialThreshold overrides the fuzzy match threshold. Values outside (0,1] are ignored.
func WithPartialThreshold(threshold float64) Option {
	return func(a *Analyzer) {
		if threshold > 0 && threshold <= 1 {
			a.threshold = threshold
		}
	}
}

// Analyzer computes skill gaps against role requirements.
type Analyzer struct {
	norm      *skills.Normalizer
	roles     RoleResolver
	threshold float64
}

// NewAnalyzer constructs an Analyzer.
func NewAnalyzer(norm *skills.Normalizer, roles RoleResolver, opts ...Option) *Analyzer {
	a := &Analyzer{
		norm:      norm,
		roles:     roles,
		threshold: DefaultPartialThreshold,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeRole resolves target against the role catalog and analyzes the gap.
// Unresolvable targets return *catalog.UnknownRoleError.
func (a *Analyzer) AnalyzeRole(candidate []string, target string) (Result, error) {
	role, err := a.roles.ResolveRole(target)
	if err != nil {
		return Result{}, err
	}
	return a.Analyze(candidate, role), nil
}

// Analyze partitions the role's core and preferred skills into matched, partial and
// missing against the candidate's skills.
func (a *Analyzer) Analyze(candidate []string, role catalog.Role) Result {
	have := a.norm.NormalizeAll(candidate)
	core := a.norm.NormalizeAll(role.Core)
	preferred := a.norm.NormalizeAll(role.Preferred)
	required := a.norm.NormalizeAll(append(append([]string{}, core...), preferred...))

	haveSet := toSet(have)
	requiredSet := toSet(required)
	coreSet := toSet(core)

	res := Result{
		RoleID:           role.ID,
		TargetRole:       role.Name,
		MatchedSkills:    []string{},
		PartialMatches:   []PartialMatch{},
		MissingSkills:    []string{},
		AdditionalSkills: []string{},
		MatchedPreferred: []string{},
	}

	for _, req := range required {
		if _, ok := haveSet[req]; ok {
			res.MatchedSkills = append(res.MatchedSkills, req)
			continue
		}
		if pm, ok := a.bestPartial(req, have); ok {
			res.PartialMatches = append(res.PartialMatches, pm)
			continue
		}
		res.MissingSkills = append(res.MissingSkills, req)
	}

	for _, skill := range have {
		if _, ok := requiredSet[skill]; !ok {
			res.AdditionalSkills = append(res.AdditionalSkills, skill)
		}
	}

	for _, skill := range preferred {
		if _, isCore := coreSet[skill]; isCore {
			continue
		}
		if _, ok := haveSet[skill]; ok {
			res.MatchedPreferred = append(res.MatchedPreferred, skill)
		}
	}

	total := len(required)
	res.MatchPercentage = percentage(len(res.MatchedSkills), total)
	res.SkillGapPercentage = percentage(len(res.MissingSkills), total)
	bonus := min(preferredBonusCap, preferredBonusPerSkill*len(res.MatchedPreferred))
	res.ReadinessScore = min(100, res.MatchPercentage+bonus)
	res.SkillLevel = Level(res.MatchPercentage)
	res.Summary = Summary{
		Total:   total,
		Matched: len(res.MatchedSkills),
		Partial: len(res.PartialMatches),
		Missing: len(res.MissingSkills),
	}
	return res
}

// bestPartial picks the qualifying candidate with the highest similarity to req.
// Equal similarities keep the earliest candidate in input order.
func (a *Analyzer) bestPartial(req string, have []string) (PartialMatch, bool) {
	var best PartialMatch
	found := false
	for _, cand := range have {
		sim := skills.Similarity(cand, req)
		contains := strings.Contains(cand, req) || strings.Contains(req, cand)
		if !contains && sim <= a.threshold {
			continue
		}
		if !found || sim > best.Similarity {
			best = PartialMatch{Required: req, Candidate: cand, Similarity: sim}
			found = true
		}
	}
	if found {
		best.Similarity = math.Round(best.Similarity*1000) / 1000
	}
	return best, found
}

func percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(total)))
}

func toSet(items []string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, item := range items {
		out[item] = struct{}{}
	}
	return out
}
