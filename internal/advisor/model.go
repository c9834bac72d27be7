package advisor

import (
	"time"

	"skillpath-backend/internal/advisor/recommendations"
	"skillpath-backend/internal/gap"
	"skillpath-backend/internal/roadmap"
	"skillpath-backend/internal/suggest"
)

// Report is a persisted combined analysis.
type Report struct {
	ID              string                           `json:"id"`
	RoleID          string                           `json:"roleId"`
	TargetRole      string                           `json:"targetRole"`
	Skills          []string                         `json:"skills"`
	Gap             gap.Result                       `json:"skillGapAnalysis"`
	Roadmap         roadmap.Plan                     `json:"roadmap"`
	Suggestions     suggest.Overview                 `json:"roleSuggestions"`
	Recommendations []recommendations.Recommendation `json:"recommendations"`
	CreatedAt       time.Time                        `json:"createdAt"`
}

// reportBody is the JSONB payload stored alongside the indexed columns.
type reportBody struct {
	Gap             gap.Result                       `json:"skillGapAnalysis"`
	Roadmap         roadmap.Plan                     `json:"roadmap"`
	Suggestions     suggest.Overview                 `json:"roleSuggestions"`
	Recommendations []recommendations.Recommendation `json:"recommendations"`
}
