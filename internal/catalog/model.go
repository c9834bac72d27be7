package catalog

import (
	"encoding/json"
	"slices"
	"time"
)

// Resource is a learning resource attached to a skill.
type Resource struct {
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`
	Kind  string `json:"kind" yaml:"kind"`
	Level string `json:"level" yaml:"level"`
}

// SkillRecord describes how a single skill is learned.
type SkillRecord struct {
	Name          string        `json:"name"`
	Difficulty    int           `json:"difficulty"`
	Duration      time.Duration `json:"-"`
	Prerequisites []string      `json:"prerequisites"`
	Resources     []Resource    `json:"resources"`
	// Fallback is set on records synthesized for skills missing from the catalog.
	Fallback bool `json:"fallback,omitempty"`
}

// DurationDays returns the estimated duration in whole days.
func (s SkillRecord) DurationDays() int {
	return int(s.Duration / Day)
}

// MarshalJSON renders the duration as whole days.
func (s SkillRecord) MarshalJSON() ([]byte, error) {
	type view SkillRecord
	return json.Marshal(struct {
		view
		DurationDays int `json:"durationDays"`
	}{view: view(s), DurationDays: s.DurationDays()})
}

func (s SkillRecord) clone() SkillRecord {
	s.Prerequisites = slices.Clone(s.Prerequisites)
	s.Resources = slices.Clone(s.Resources)
	return s
}

// Role is the requirement profile of a job role.
type Role struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Core      []string `json:"core"`
	Preferred []string `json:"preferred"`
	Bonus     []string `json:"bonus,omitempty"`
	Growth    []string `json:"growth,omitempty"`
}

// Required returns core followed by preferred skills without duplicates.
func (r Role) Required() []string {
	out := make([]string, 0, len(r.Core)+len(r.Preferred))
	seen := make(map[string]struct{}, cap(out))
	for _, group := range [][]string{r.Core, r.Preferred} {
		for _, skill := range group {
			if _, ok := seen[skill]; ok {
				continue
			}
			seen[skill] = struct{}{}
			out = append(out, skill)
		}
	}
	return out
}

func (r Role) clone() Role {
	r.Core = slices.Clone(r.Core)
	r.Preferred = slices.Clone(r.Preferred)
	r.Bonus = slices.Clone(r.Bonus)
	r.Growth = slices.Clone(r.Growth)
	return r
}

// RoleSummary is the listing shape of a role.
type RoleSummary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	CoreCount      int    `json:"coreCount"`
	PreferredCount int    `json:"preferredCount"`
	BonusCount     int    `json:"bonusCount"`
}

// Data is the serialized catalog form shared by every loader.
type Data struct {
	Aliases map[string]string    `yaml:"aliases"`
	Skills  map[string]SkillData `yaml:"skills"`
	Roles   map[string]RoleData  `yaml:"roles"`
}

// SkillData is the serialized form of a SkillRecord. DurationDays wins over Duration.
type SkillData struct {
	Difficulty    int        `yaml:"difficulty"`
	Duration      string     `yaml:"duration,omitempty"`
	DurationDays  int        `yaml:"duration_days,omitempty"`
	Prerequisites []string   `yaml:"prerequisites"`
	Resources     []Resource `yaml:"resources"`
}

// RoleData is the serialized form of a Role.
type RoleData struct {
	Name      string   `yaml:"name"`
	Core      []string `yaml:"core"`
	Preferred []string `yaml:"preferred"`
	Bonus     []string `yaml:"bonus"`
	Growth    []string `yaml:"growth"`
}
