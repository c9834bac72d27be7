package advisor

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"skillpath-backend/internal/catalog"
	"skillpath-backend/internal/shared/server/middleware"
	"skillpath-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the advisor service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches advisor routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/roles", h.listRoles)
	rg.POST("/skills/normalize", h.normalize)
	rg.POST("/skills/gap", h.analyzeGap)
	rg.POST("/roadmap", h.generateRoadmap)
	rg.POST("/roles/suggestions", h.suggestRoles)
	rg.POST("/analyze", h.analyze)
	rg.GET("/reports", h.listReports)
	rg.GET("/reports/:id", h.getReport)
}

func (h *Handler) listRoles(c *gin.Context) {
	respond.OK(c, gin.H{"roles": h.Svc.Roles()})
}

type normalizedSkill struct {
	Input      string `json:"input"`
	Normalized string `json:"normalized"`
}

func (h *Handler) normalize(c *gin.Context) {
	var req NormalizeRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := requireSkills("skills", req.Skills); err != nil {
		writeError(c, err, "failed to normalize skills")
		return
	}
	c.Set(middleware.SkillCountKey, len(req.Skills))

	mappings := make([]normalizedSkill, 0, len(req.Skills))
	for _, raw := range req.Skills {
		mappings = append(mappings, normalizedSkill{Input: raw, Normalized: h.Svc.Normalize(raw)})
	}
	respond.OK(c, gin.H{
		"skills":   h.Svc.NormalizeAll(req.Skills),
		"mappings": mappings,
	})
}

func (h *Handler) analyzeGap(c *gin.Context) {
	var req GapRequest
	if !bindJSON(c, &req) {
		return
	}
	c.Set(middleware.TargetRoleKey, req.TargetRole)
	c.Set(middleware.SkillCountKey, len(req.Skills))

	res, err := h.Svc.AnalyzeGap(c.Request.Context(), req.Skills, req.TargetRole)
	if err != nil {
		writeError(c, err, "failed to analyze skill gap")
		return
	}
	respond.OK(c, res)
}

func (h *Handler) generateRoadmap(c *gin.Context) {
	var req RoadmapRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := requireSkills("missingSkills", req.MissingSkills); err != nil {
		writeError(c, err, "failed to generate roadmap")
		return
	}
	c.Set(middleware.SkillCountKey, len(req.MissingSkills))
	respond.OK(c, h.Svc.GenerateRoadmap(c.Request.Context(), req.MissingSkills))
}

func (h *Handler) suggestRoles(c *gin.Context) {
	var req SuggestRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := requireSkills("skills", req.Skills); err != nil {
		writeError(c, err, "failed to suggest roles")
		return
	}
	if req.Limit < 0 {
		writeError(c, invalid("limit", "must not be negative"), "failed to suggest roles")
		return
	}
	c.Set(middleware.SkillCountKey, len(req.Skills))
	respond.OK(c, h.Svc.SuggestRoles(c.Request.Context(), req.Skills, req.Limit))
}

func (h *Handler) analyze(c *gin.Context) {
	var req AnalyzeRequest
	if !bindJSON(c, &req) {
		return
	}
	c.Set(middleware.TargetRoleKey, req.TargetRole)
	c.Set(middleware.SkillCountKey, len(req.Skills))

	report, err := h.Svc.Analyze(c.Request.Context(), req)
	if err != nil {
		writeError(c, err, "failed to analyze skills")
		return
	}
	c.Set(middleware.ReportIDKey, report.ID)
	c.Header("Location", "/api/v1/reports/"+report.ID)
	respond.JSON(c, http.StatusCreated, report)
}

func (h *Handler) getReport(c *gin.Context) {
	reportID := c.Param("id")
	c.Set(middleware.ReportIDKey, reportID)

	report, err := h.Svc.GetReport(c.Request.Context(), reportID)
	if err != nil {
		writeError(c, err, "failed to fetch report")
		return
	}
	respond.OK(c, report)
}

func (h *Handler) listReports(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	reports, err := h.Svc.ListReports(c.Request.Context(), c.Query("role"), limit)
	if err != nil {
		writeError(c, err, "failed to list reports")
		return
	}

	resp := make([]gin.H, 0, len(reports))
	for _, r := range reports {
		resp = append(resp, gin.H{
			"id":              r.ID,
			"roleId":          r.RoleID,
			"targetRole":      r.TargetRole,
			"matchPercentage": r.Gap.MatchPercentage,
			"readinessScore":  r.Gap.ReadinessScore,
			"createdAt":       r.CreatedAt,
		})
	}
	respond.OK(c, resp)
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var invalidErr *InvalidInputError
		if errors.As(err, &invalidErr) {
			writeError(c, invalidErr, "")
			return false
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "request body must be valid JSON", nil)
		return false
	}
	return true
}

func writeError(c *gin.Context, err error, fallback string) {
	var (
		invalidErr *InvalidInputError
		unknownErr *catalog.UnknownRoleError
	)
	switch {
	case errors.As(err, &invalidErr):
		respond.Error(c, http.StatusBadRequest, "validation_error", invalidErr.Error(), []map[string]string{
			{"field": invalidErr.Field, "issue": invalidErr.Reason},
		})
	case errors.As(err, &unknownErr):
		respond.Error(c, http.StatusNotFound, "unknown_role", "Target role not recognized. Please check available roles.", gin.H{
			"targetRole":     unknownErr.Target,
			"availableRoles": unknownErr.Known,
		})
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "report not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
