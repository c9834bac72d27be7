package advisor

import (
	"bytes"
	"encoding/json"
)

const maxSkillsPerRequest = 200

// SkillList decodes either a JSON array of strings or a JSON string that
// itself holds such an array. An absent or null field leaves it nil, which
// requireSkills rejects; an empty array decodes to an empty, non-nil list.
type SkillList []string

func (l *SkillList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*l = items
		return nil
	}
	var encoded string
	if err := json.Unmarshal(data, &encoded); err != nil {
		return invalid("skills", "expected an array of strings")
	}
	if err := json.Unmarshal([]byte(encoded), &items); err != nil || items == nil {
		return invalid("skills", "string value must encode an array of strings")
	}
	*l = items
	return nil
}

type NormalizeRequest struct {
	Skills SkillList `json:"skills"`
}

type GapRequest struct {
	Skills     SkillList `json:"skills"`
	TargetRole string    `json:"targetRole"`
}

type RoadmapRequest struct {
	MissingSkills SkillList `json:"missingSkills"`
}

type SuggestRequest struct {
	Skills SkillList `json:"skills"`
	Limit  int       `json:"limit"`
}

// AnalyzeRequest drives the combined analysis.
type AnalyzeRequest struct {
	Skills          SkillList `json:"skills"`
	TargetRole      string    `json:"targetRole"`
	SuggestionLimit int       `json:"suggestionLimit"`
}

// requireSkills rejects a skills field that was absent or null.
func requireSkills(field string, skills []string) error {
	if skills == nil {
		return invalid(field, "is required")
	}
	return validateSkills(field, skills)
}

func validateSkills(field string, skills []string) error {
	if len(skills) > maxSkillsPerRequest {
		return invalid(field, "too many skills")
	}
	return nil
}
