package catalog

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"
	"time"
)

// Catalog is the immutable set of aliases, skill records and roles.
// It is safe for concurrent use; accessors return copies.
type Catalog struct {
	aliases map[string]string
	skills  map[string]SkillRecord
	roles   map[string]Role
	roleIDs []string
}

// New validates data and builds a Catalog.
func New(data Data) (*Catalog, error) {
	c, err := build(data)
	if err != nil {
		return nil, &CatalogLoadError{Source: "inline", Err: err}
	}
	return c, nil
}

func build(data Data) (*Catalog, error) {
	var errs []error

	aliases := make(map[string]string, len(data.Aliases))
	for _, raw := range sortedKeys(data.Aliases) {
		alias := cleanSkill(raw)
		canonical := cleanSkill(data.Aliases[raw])
		switch {
		case alias == "":
			errs = append(errs, fmt.Errorf("alias %q: empty alias", raw))
			continue
		case canonical == "":
			errs = append(errs, fmt.Errorf("alias %q: empty canonical skill", raw))
			continue
		case alias == canonical:
			continue
		}
		aliases[alias] = canonical
	}
	// Alias chains would make normalization order dependent.
	for _, alias := range sortedKeys(aliases) {
		if next, ok := aliases[aliases[alias]]; ok {
			errs = append(errs, fmt.Errorf("alias %q: canonical %q is itself an alias of %q", alias, aliases[alias], next))
		}
	}

	canon := func(s string) string {
		s = cleanSkill(s)
		if c, ok := aliases[s]; ok {
			return c
		}
		return s
	}

	skills := make(map[string]SkillRecord, len(data.Skills))
	for _, raw := range sortedKeys(data.Skills) {
		sd := data.Skills[raw]
		name := cleanSkill(raw)
		if name == "" {
			errs = append(errs, fmt.Errorf("skill %q: empty name", raw))
			continue
		}
		if c, ok := aliases[name]; ok {
			errs = append(errs, fmt.Errorf("skill %q: name is an alias of %q", raw, c))
			continue
		}
		if sd.Difficulty < 1 {
			errs = append(errs, fmt.Errorf("skill %q: difficulty must be >= 1, got %d", raw, sd.Difficulty))
			continue
		}
		dur, err := skillDuration(sd)
		if err != nil {
			errs = append(errs, fmt.Errorf("skill %q: %w", raw, err))
			continue
		}
		if _, dup := skills[name]; dup {
			errs = append(errs, fmt.Errorf("skill %q: duplicate after normalization", raw))
			continue
		}
		skills[name] = SkillRecord{
			Name:          name,
			Difficulty:    sd.Difficulty,
			Duration:      dur,
			Prerequisites: cleanList(sd.Prerequisites, canon),
			Resources:     slices.Clone(sd.Resources),
		}
	}

	roles := make(map[string]Role, len(data.Roles))
	for _, raw := range sortedKeys(data.Roles) {
		rd := data.Roles[raw]
		id := roleKey(raw)
		name := strings.TrimSpace(rd.Name)
		if id == "" {
			errs = append(errs, fmt.Errorf("role %q: empty id", raw))
			continue
		}
		if name == "" {
			errs = append(errs, fmt.Errorf("role %q: name is required", raw))
			continue
		}
		role := Role{
			ID:        id,
			Name:      name,
			Core:      cleanList(rd.Core, canon),
			Preferred: cleanList(rd.Preferred, canon),
			Bonus:     cleanList(rd.Bonus, canon),
			Growth:    trimList(rd.Growth),
		}
		if len(role.Core) == 0 {
			errs = append(errs, fmt.Errorf("role %q: at least one core skill is required", raw))
			continue
		}
		if _, dup := roles[id]; dup {
			errs = append(errs, fmt.Errorf("role %q: duplicate id %q", raw, id))
			continue
		}
		roles[id] = role
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if len(roles) == 0 {
		return nil, errors.New("catalog has no roles")
	}

	return &Catalog{
		aliases: aliases,
		skills:  skills,
		roles:   roles,
		roleIDs: sortedKeys(roles),
	}, nil
}

func skillDuration(sd SkillData) (time.Duration, error) {
	if sd.DurationDays > 0 {
		return time.Duration(sd.DurationDays) * Day, nil
	}
	if sd.DurationDays < 0 {
		return 0, fmt.Errorf("duration_days must be positive, got %d", sd.DurationDays)
	}
	if strings.TrimSpace(sd.Duration) == "" {
		return 0, errors.New("duration or duration_days is required")
	}
	return ParseDuration(sd.Duration)
}

// Aliases returns a copy of the alias table.
func (c *Catalog) Aliases() map[string]string {
	return maps.Clone(c.aliases)
}

// Skill looks up a skill record by canonical identity.
func (c *Catalog) Skill(name string) (SkillRecord, bool) {
	rec, ok := c.skills[name]
	if !ok {
		return SkillRecord{}, false
	}
	return rec.clone(), true
}

// SkillNames returns every catalog skill identity in sorted order.
func (c *Catalog) SkillNames() []string {
	return sortedKeys(c.skills)
}

// Role looks up a role by ID.
func (c *Catalog) Role(id string) (Role, bool) {
	role, ok := c.roles[id]
	if !ok {
		return Role{}, false
	}
	return role.clone(), true
}

// Roles returns every role ordered by ID.
func (c *Catalog) Roles() []Role {
	out := make([]Role, 0, len(c.roleIDs))
	for _, id := range c.roleIDs {
		out = append(out, c.roles[id].clone())
	}
	return out
}

// RoleNames returns the display names of every role, sorted.
func (c *Catalog) RoleNames() []string {
	out := make([]string, 0, len(c.roleIDs))
	for _, id := range c.roleIDs {
		out = append(out, c.roles[id].Name)
	}
	sort.Strings(out)
	return out
}

// Summaries lists roles with their tier sizes.
func (c *Catalog) Summaries() []RoleSummary {
	out := make([]RoleSummary, 0, len(c.roleIDs))
	for _, id := range c.roleIDs {
		r := c.roles[id]
		out = append(out, RoleSummary{
			ID:             r.ID,
			Name:           r.Name,
			CoreCount:      len(r.Core),
			PreferredCount: len(r.Preferred),
			BonusCount:     len(r.Bonus),
		})
	}
	return out
}

// ResolveRole finds the role a free-text target refers to. Exact ID and display
// name matches win; otherwise the first ID (in sorted order) that contains the
// target, or is contained by it, is used.
func (c *Catalog) ResolveRole(target string) (Role, error) {
	key := roleKey(target)
	if key == "" {
		return Role{}, &UnknownRoleError{Target: target, Known: c.RoleNames()}
	}
	if role, ok := c.roles[key]; ok {
		return role.clone(), nil
	}
	for _, id := range c.roleIDs {
		if roleKey(c.roles[id].Name) == key {
			return c.roles[id].clone(), nil
		}
	}
	for _, id := range c.roleIDs {
		if strings.Contains(id, key) || strings.Contains(key, id) {
			return c.roles[id].clone(), nil
		}
	}
	return Role{}, &UnknownRoleError{Target: target, Known: c.RoleNames()}
}

func cleanSkill(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// roleKey turns "Full Stack Developer" or "full-stack developer" into "full_stack_developer".
func roleKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("/", "_", "-", "_", " ", "_").Replace(s)
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return strings.Trim(s, "_")
}

func cleanList(items []string, canon func(string) string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		c := canon(item)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

func trimList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if t := strings.TrimSpace(item); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
