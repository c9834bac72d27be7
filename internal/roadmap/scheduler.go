package roadmap

import (
	"fmt"
	"math"
	"net/url"
	"sort"
	"strings"

	"skillpath-backend/internal/catalog"
	"skillpath-backend/internal/skills"
)

// Fallback record values for skills missing from the catalog.
const (
	FallbackDifficulty = 3
	FallbackDuration   = 14 * catalog.Day
)

const noMissingSkillsOutcome = "No missing skills identified. Continue practicing current skills!"

var baseTips = []string{
	"Create a consistent study schedule and stick to it",
	"Practice coding every day, even if it's just for 30 minutes",
	"Build projects as you learn to reinforce your understanding",
	"Join online communities related to your target role",
	"Don't be afraid to ask questions and seek help",
}

// SkillSource looks up skill records by canonical identity.
type SkillSource interface {
	Skill(name string) (catalog.SkillRecord, bool)
}

// Scheduler packs missing skills into week blocks.
type Scheduler struct {
	skills SkillSource
	norm   *skills.Normalizer
	policy Policy
}

// NewScheduler constructs a Scheduler. Zero policy fields use DefaultPolicy values.
func NewScheduler(src SkillSource, norm *skills.Normalizer, policy Policy) *Scheduler {
	return &Scheduler{
		skills: src,
		norm:   norm,
		policy: policy.withDefaults(),
	}
}

// Policy returns the effective policy.
func (s *Scheduler) Policy() Policy {
	return s.policy
}

// Schedule builds a plan for the given skills. Skills with no prerequisites come
// first, then lower difficulty; input order breaks remaining ties. Weeks are filled
// greedily and a week is closed as soon as the next skill would exceed either cap.
// Skills that do not fit in MaxWeeks are returned in Plan.Deferred.
func (s *Scheduler) Schedule(missing []string) Plan {
	names := s.norm.NormalizeAll(missing)
	if len(names) == 0 {
		return emptyPlan()
	}

	records := make([]catalog.SkillRecord, 0, len(names))
	for _, name := range names {
		records = append(records, s.resolve(name))
	}
	sort.SliceStable(records, func(i, j int) bool {
		pi, pj := len(records[i].Prerequisites) > 0, len(records[j].Prerequisites) > 0
		if pi != pj {
			return !pi
		}
		return records[i].Difficulty < records[j].Difficulty
	})

	p := s.policy
	plan := Plan{Deferred: []DeferredSkill{}}
	var current []catalog.SkillRecord
	currentDifficulty := 0

	for i := 0; i < len(records); i++ {
		rec := records[i]
		if rec.Difficulty > p.MaxDifficultyPerWeek {
			plan.Deferred = append(plan.Deferred, deferred(rec, ReasonOverCapacity))
			continue
		}
		if len(current) > 0 && (len(current)+1 > p.MaxSkillsPerWeek || currentDifficulty+rec.Difficulty > p.MaxDifficultyPerWeek) {
			plan.Weeks = append(plan.Weeks, newWeek(len(plan.Weeks)+1, current))
			current, currentDifficulty = nil, 0
			if len(plan.Weeks) == p.MaxWeeks {
				for _, rest := range records[i:] {
					plan.Deferred = append(plan.Deferred, deferred(rest, ReasonWeekBudget))
				}
				break
			}
		}
		current = append(current, rec)
		currentDifficulty += rec.Difficulty
	}
	if len(current) > 0 {
		plan.Weeks = append(plan.Weeks, newWeek(len(plan.Weeks)+1, current))
	}
	if len(plan.Weeks) == 0 {
		// Everything was over capacity.
		empty := emptyPlan()
		empty.Deferred = plan.Deferred
		return empty
	}

	s.aggregate(&plan)
	return plan
}

func (s *Scheduler) resolve(name string) catalog.SkillRecord {
	if s.skills != nil {
		if rec, ok := s.skills.Skill(name); ok {
			if rec.Prerequisites == nil {
				rec.Prerequisites = []string{}
			}
			return rec
		}
	}
	return fallbackRecord(name)
}

func fallbackRecord(name string) catalog.SkillRecord {
	query := url.QueryEscape(name + " tutorial")
	return catalog.SkillRecord{
		Name:          name,
		Difficulty:    FallbackDifficulty,
		Duration:      FallbackDuration,
		Prerequisites: []string{},
		Resources: []catalog.Resource{
			{
				Title: fmt.Sprintf("Search: %s tutorials", name),
				URL:   "https://www.google.com/search?q=" + query,
				Kind:  "search",
				Level: "all",
			},
			{
				Title: fmt.Sprintf("Video tutorials: %s", name),
				URL:   "https://www.youtube.com/results?search_query=" + query,
				Kind:  "video",
				Level: "all",
			},
		},
		Fallback: true,
	}
}

func deferred(rec catalog.SkillRecord, reason string) DeferredSkill {
	return DeferredSkill{Skill: rec.Name, Difficulty: rec.Difficulty, Reason: reason}
}

func newWeek(index int, recs []catalog.SkillRecord) WeekBlock {
	w := WeekBlock{
		Week:   index,
		Focus:  make([]string, 0, len(recs)),
		Skills: recs,
	}
	for _, rec := range recs {
		w.Focus = append(w.Focus, rec.Name)
		w.Difficulty += rec.Difficulty
		w.Days += rec.DurationDays()
	}
	w.Outcome = outcome(w.Focus)
	return w
}

func (s *Scheduler) aggregate(plan *Plan) {
	type step struct {
		name string
		week int
		day  int
	}
	var seq []step
	difficulty := 0
	for _, w := range plan.Weeks {
		for _, rec := range w.Skills {
			plan.TotalDays += rec.DurationDays()
			difficulty += rec.Difficulty
			seq = append(seq, step{name: rec.Name, week: w.Week, day: plan.TotalDays})
		}
	}

	n := len(seq)
	plan.TotalWeeks = len(plan.Weeks)
	plan.TotalDuration = catalog.FormatDays(plan.TotalDays)
	plan.AverageDifficulty = math.Round(float64(difficulty)/float64(n)*10) / 10
	plan.Complexity = complexity(plan.AverageDifficulty)
	plan.StudyHours = plan.TotalDays * s.policy.HoursPerDay
	plan.EstimatedCompletion = weeksLabel(plan.TotalWeeks)
	plan.NextStep = "Start with Week 1: " + strings.Join(plan.Weeks[0].Focus, ", ")

	plan.Milestones = make([]Milestone, 0, 4)
	for _, pct := range []int{25, 50, 75, 100} {
		idx := (n*pct+99)/100 - 1
		st := seq[idx]
		plan.Milestones = append(plan.Milestones, Milestone{
			Percentage:  pct,
			Title:       fmt.Sprintf("%d%% Complete", pct),
			Description: fmt.Sprintf("Complete %s learning", st.name),
			Skill:       st.name,
			Week:        st.week,
			Day:         st.day,
		})
	}

	plan.Tips = append([]string{}, baseTips...)
	if n > 3 {
		plan.Tips = append(plan.Tips, "Focus on one skill at a time to avoid overwhelm")
	}
	if len(plan.Deferred) > 0 {
		plan.Tips = append(plan.Tips, "Revisit the deferred skills once the scheduled weeks are complete")
	}
}

func emptyPlan() Plan {
	return Plan{
		Weeks: []WeekBlock{{
			Week:    1,
			Focus:   []string{},
			Skills:  []catalog.SkillRecord{},
			Outcome: noMissingSkillsOutcome,
		}},
		Deferred:            []DeferredSkill{},
		TotalWeeks:          1,
		TotalDuration:       catalog.FormatDays(0),
		Complexity:          complexity(0),
		EstimatedCompletion: weeksLabel(1),
		NextStep:            "Keep practicing your current skills with new projects",
		Milestones:          []Milestone{},
		Tips:                append([]string{}, baseTips...),
	}
}

func complexity(avg float64) string {
	switch {
	case avg < 3:
		return "Low"
	case avg < 4.5:
		return "Medium"
	default:
		return "High"
	}
}

func weeksLabel(n int) string {
	if n == 1 {
		return "1 week"
	}
	return fmt.Sprintf("%d weeks", n)
}
