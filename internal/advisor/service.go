package advisor

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"skillpath-backend/internal/advisor/recommendations"
	"skillpath-backend/internal/catalog"
	"skillpath-backend/internal/gap"
	"skillpath-backend/internal/roadmap"
	"skillpath-backend/internal/shared/metrics"
	"skillpath-backend/internal/shared/telemetry"
	"skillpath-backend/internal/skills"
	"skillpath-backend/internal/suggest"
)

var tracer = telemetry.Tracer("skillpath-backend/internal/advisor")

// Options tunes the engines behind the Service.
type Options struct {
	Policy           roadmap.Policy
	PartialThreshold float64
	SuggestionLimit  int
}

// Service is the request-facing facade over the matching engines.
type Service struct {
	Catalog    *catalog.Catalog
	Normalizer *skills.Normalizer
	Analyzer   *gap.Analyzer
	Scheduler  *roadmap.Scheduler
	Suggester  *suggest.Suggester
	Repo       Repo

	suggestionLimit int
	now             func() time.Time
	newID           func() string
}

// NewService wires every engine over one immutable catalog.
func NewService(cat *catalog.Catalog, repo Repo, opts Options) *Service {
	norm := skills.NewNormalizer(cat.Aliases())
	limit := opts.SuggestionLimit
	if limit <= 0 {
		limit = suggest.DefaultLimit
	}
	if repo == nil {
		repo = NewMemoryRepo()
	}
	return &Service{
		Catalog:         cat,
		Normalizer:      norm,
		Analyzer:        gap.NewAnalyzer(norm, cat, gap.WithPartialThreshold(opts.PartialThreshold)),
		Scheduler:       roadmap.NewScheduler(cat, norm, opts.Policy),
		Suggester:       suggest.NewSuggester(cat, norm),
		Repo:            repo,
		suggestionLimit: limit,
		now:             func() time.Time { return time.Now().UTC() },
		newID:           uuid.NewString,
	}
}

// Normalize maps one raw spelling onto its canonical skill identity.
func (s *Service) Normalize(raw string) string {
	return s.Normalizer.Normalize(raw)
}

// NormalizeAll normalizes, drops empties and dedupes, keeping first-seen order.
func (s *Service) NormalizeAll(raw []string) []string {
	return s.Normalizer.NormalizeAll(raw)
}

// Roles lists the catalog's roles.
func (s *Service) Roles() []catalog.RoleSummary {
	return s.Catalog.Summaries()
}

// AnalyzeGap compares candidate skills against the role target resolves to.
func (s *Service) AnalyzeGap(ctx context.Context, candidate []string, target string) (gap.Result, error) {
	_, span := tracer.Start(ctx, "advisor.AnalyzeGap", trace.WithAttributes(
		attribute.String("skillpath.target_role", target),
		attribute.Int("skillpath.skill_count", len(candidate)),
	))
	defer span.End()

	res, err := s.analyzeGap(candidate, target)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return gap.Result{}, err
	}
	span.SetAttributes(
		attribute.String("skillpath.role_id", res.RoleID),
		attribute.Int("skillpath.match_percentage", res.MatchPercentage),
	)
	return res, nil
}

func (s *Service) analyzeGap(candidate []string, target string) (gap.Result, error) {
	if strings.TrimSpace(target) == "" {
		return gap.Result{}, invalid("targetRole", "is required")
	}
	if err := requireSkills("skills", candidate); err != nil {
		return gap.Result{}, err
	}
	res, err := s.Analyzer.AnalyzeRole(candidate, target)
	if err != nil {
		return gap.Result{}, err
	}
	metrics.IncGapAnalysis(res.SkillLevel)
	return res, nil
}

// GenerateRoadmap schedules missing skills into weekly blocks. It never fails;
// skills that do not fit are reported in Plan.Deferred.
func (s *Service) GenerateRoadmap(ctx context.Context, missing []string) roadmap.Plan {
	_, span := tracer.Start(ctx, "advisor.GenerateRoadmap", trace.WithAttributes(
		attribute.Int("skillpath.skill_count", len(missing)),
	))
	defer span.End()

	plan := s.Scheduler.Schedule(missing)
	s.reportDeferred(plan)
	span.SetAttributes(
		attribute.Int("skillpath.weeks", plan.TotalWeeks),
		attribute.Int("skillpath.deferred", len(plan.Deferred)),
	)
	return plan
}

func (s *Service) reportDeferred(plan roadmap.Plan) {
	if len(plan.Deferred) == 0 {
		return
	}
	byReason := map[string]int{}
	names := make([]string, 0, len(plan.Deferred))
	for _, d := range plan.Deferred {
		byReason[d.Reason]++
		names = append(names, d.Skill)
	}
	for reason, n := range byReason {
		metrics.AddDeferredSkills(reason, n)
	}
	telemetry.Warn("roadmap.skills_deferred", map[string]any{
		"count":     len(plan.Deferred),
		"by_reason": byReason,
		"skills":    names,
		"max_weeks": s.Scheduler.Policy().MaxWeeks,
	})
}

// SuggestRoles ranks catalog roles for the candidate. A non-positive limit
// uses the configured default.
func (s *Service) SuggestRoles(ctx context.Context, candidate []string, limit int) suggest.Overview {
	_, span := tracer.Start(ctx, "advisor.SuggestRoles", trace.WithAttributes(
		attribute.Int("skillpath.skill_count", len(candidate)),
	))
	defer span.End()

	if limit <= 0 {
		limit = s.suggestionLimit
	}
	out := s.Suggester.Summary(candidate, limit)
	metrics.IncSuggestions()
	span.SetAttributes(attribute.Int("skillpath.suggestions", len(out.Suggestions)))
	return out
}

// Analyze runs gap analysis, schedules the missing skills, ranks alternative
// roles and derives recommendations. The result is persisted as a Report.
func (s *Service) Analyze(ctx context.Context, req AnalyzeRequest) (Report, error) {
	ctx, span := tracer.Start(ctx, "advisor.Analyze", trace.WithAttributes(
		attribute.String("skillpath.target_role", req.TargetRole),
	))
	defer span.End()

	fail := func(err error) (Report, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Report{}, err
	}

	if req.SuggestionLimit < 0 {
		return fail(invalid("suggestionLimit", "must not be negative"))
	}
	res, err := s.AnalyzeGap(ctx, req.Skills, req.TargetRole)
	if err != nil {
		return fail(err)
	}
	plan := s.GenerateRoadmap(ctx, res.MissingSkills)
	overview := s.SuggestRoles(ctx, req.Skills, req.SuggestionLimit)

	report := Report{
		ID:              s.newID(),
		RoleID:          res.RoleID,
		TargetRole:      res.TargetRole,
		Skills:          s.Normalizer.NormalizeAll(req.Skills),
		Gap:             res,
		Roadmap:         plan,
		Suggestions:     overview,
		Recommendations: recommendations.GenerateRecommendations(recommendationInput(res, plan, overview)),
		CreatedAt:       s.now(),
	}
	if err := s.Repo.Create(ctx, report); err != nil {
		telemetry.Error("report.store_failed", map[string]any{
			"report_id": report.ID,
			"error":     err.Error(),
		})
		return fail(err)
	}
	metrics.IncReportsStored()
	span.SetAttributes(attribute.String("skillpath.report_id", report.ID))
	telemetry.Info("report.created", map[string]any{
		"report_id":        report.ID,
		"role_id":          report.RoleID,
		"match_percentage": res.MatchPercentage,
		"roadmap_weeks":    plan.TotalWeeks,
	})
	return report, nil
}

// GetReport loads a stored report.
func (s *Service) GetReport(ctx context.Context, id string) (Report, error) {
	if strings.TrimSpace(id) == "" {
		return Report{}, invalid("id", "is required")
	}
	return s.Repo.GetByID(ctx, id)
}

// ListReports returns recent reports, optionally for one role target.
func (s *Service) ListReports(ctx context.Context, target string, limit int) ([]Report, error) {
	roleID := ""
	if strings.TrimSpace(target) != "" {
		role, err := s.Catalog.ResolveRole(target)
		if err != nil {
			return nil, err
		}
		roleID = role.ID
	}
	return s.Repo.ListRecent(ctx, roleID, limit)
}

func recommendationInput(res gap.Result, plan roadmap.Plan, overview suggest.Overview) recommendations.Input {
	in := recommendations.Input{
		TargetRoleID:     res.RoleID,
		MatchPercentage:  res.MatchPercentage,
		MissingSkills:    res.MissingSkills,
		AdditionalSkills: res.AdditionalSkills,
		RoadmapDays:      plan.TotalDays,
		RoadmapDuration:  plan.TotalDuration,
	}
	for _, pm := range res.PartialMatches {
		in.PartialMatches = append(in.PartialMatches, recommendations.Partial{
			Required:  pm.Required,
			Candidate: pm.Candidate,
		})
	}
	for _, sg := range overview.Suggestions {
		if sg.RoleID == res.RoleID {
			continue
		}
		in.TopAlternative = &recommendations.Alternative{
			RoleID: sg.RoleID,
			Title:  sg.Title,
			Score:  sg.Score,
		}
		break
	}
	return in
}
