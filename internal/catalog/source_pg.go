package catalog

import (
	"context"
	"database/sql"
	"fmt"
)

// PGSource reads and writes the catalog tables created by the storage migrations.
type PGSource struct {
	DB *sql.DB
}

const (
	tierCore      = "core"
	tierPreferred = "preferred"
	tierBonus     = "bonus"
	tierGrowth    = "growth"
)

// Load reads the seeded catalog tables and builds a Catalog.
func (s *PGSource) Load(ctx context.Context) (*Catalog, error) {
	data, err := s.ReadData(ctx)
	if err != nil {
		return nil, &CatalogLoadError{Source: "postgres", Err: err}
	}
	c, err := build(data)
	if err != nil {
		return nil, &CatalogLoadError{Source: "postgres", Err: err}
	}
	return c, nil
}

// ReadData reads the catalog tables into their serialized form.
func (s *PGSource) ReadData(ctx context.Context) (Data, error) {
	data := Data{
		Aliases: map[string]string{},
		Skills:  map[string]SkillData{},
		Roles:   map[string]RoleData{},
	}

	if err := s.each(ctx, `SELECT alias, canonical FROM catalog_aliases`, func(rows *sql.Rows) error {
		var alias, canonical string
		if err := rows.Scan(&alias, &canonical); err != nil {
			return err
		}
		data.Aliases[alias] = canonical
		return nil
	}); err != nil {
		return Data{}, fmt.Errorf("read aliases: %w", err)
	}

	if err := s.each(ctx, `SELECT name, difficulty, duration_days FROM catalog_skills`, func(rows *sql.Rows) error {
		var name string
		var sd SkillData
		if err := rows.Scan(&name, &sd.Difficulty, &sd.DurationDays); err != nil {
			return err
		}
		data.Skills[name] = sd
		return nil
	}); err != nil {
		return Data{}, fmt.Errorf("read skills: %w", err)
	}

	if err := s.each(ctx, `SELECT skill, prerequisite FROM catalog_skill_prerequisites ORDER BY skill, position`, func(rows *sql.Rows) error {
		var skill, prereq string
		if err := rows.Scan(&skill, &prereq); err != nil {
			return err
		}
		sd, ok := data.Skills[skill]
		if !ok {
			return fmt.Errorf("prerequisite for unknown skill %q", skill)
		}
		sd.Prerequisites = append(sd.Prerequisites, prereq)
		data.Skills[skill] = sd
		return nil
	}); err != nil {
		return Data{}, fmt.Errorf("read prerequisites: %w", err)
	}

	if err := s.each(ctx, `SELECT skill, title, url, kind, level FROM catalog_skill_resources ORDER BY skill, position`, func(rows *sql.Rows) error {
		var skill string
		var res Resource
		if err := rows.Scan(&skill, &res.Title, &res.URL, &res.Kind, &res.Level); err != nil {
			return err
		}
		sd, ok := data.Skills[skill]
		if !ok {
			return fmt.Errorf("resource for unknown skill %q", skill)
		}
		sd.Resources = append(sd.Resources, res)
		data.Skills[skill] = sd
		return nil
	}); err != nil {
		return Data{}, fmt.Errorf("read resources: %w", err)
	}

	if err := s.each(ctx, `SELECT id, name FROM catalog_roles`, func(rows *sql.Rows) error {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return err
		}
		data.Roles[id] = RoleData{Name: name}
		return nil
	}); err != nil {
		return Data{}, fmt.Errorf("read roles: %w", err)
	}

	if err := s.each(ctx, `SELECT role_id, tier, value FROM catalog_role_skills ORDER BY role_id, tier, position`, func(rows *sql.Rows) error {
		var roleID, tier, value string
		if err := rows.Scan(&roleID, &tier, &value); err != nil {
			return err
		}
		rd, ok := data.Roles[roleID]
		if !ok {
			return fmt.Errorf("entry for unknown role %q", roleID)
		}
		switch tier {
		case tierCore:
			rd.Core = append(rd.Core, value)
		case tierPreferred:
			rd.Preferred = append(rd.Preferred, value)
		case tierBonus:
			rd.Bonus = append(rd.Bonus, value)
		case tierGrowth:
			rd.Growth = append(rd.Growth, value)
		default:
			return fmt.Errorf("role %q: unknown tier %q", roleID, tier)
		}
		data.Roles[roleID] = rd
		return nil
	}); err != nil {
		return Data{}, fmt.Errorf("read role skills: %w", err)
	}

	return data, nil
}

func (s *PGSource) each(ctx context.Context, query string, fn func(*sql.Rows) error) error {
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := fn(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Seed validates data and replaces the contents of the catalog tables with it
// in a single transaction.
func (s *PGSource) Seed(ctx context.Context, data Data) error {
	c, err := build(data)
	if err != nil {
		return &CatalogLoadError{Source: "seed", Err: err}
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{
		"catalog_role_skills",
		"catalog_roles",
		"catalog_skill_resources",
		"catalog_skill_prerequisites",
		"catalog_skills",
		"catalog_aliases",
	} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, alias := range sortedKeys(c.aliases) {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO catalog_aliases (alias, canonical) VALUES ($1, $2)`,
			alias, c.aliases[alias],
		); err != nil {
			return fmt.Errorf("insert alias %q: %w", alias, err)
		}
	}

	for _, name := range sortedKeys(c.skills) {
		rec := c.skills[name]
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO catalog_skills (name, difficulty, duration_days) VALUES ($1, $2, $3)`,
			rec.Name, rec.Difficulty, rec.DurationDays(),
		); err != nil {
			return fmt.Errorf("insert skill %q: %w", name, err)
		}
		for i, prereq := range rec.Prerequisites {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO catalog_skill_prerequisites (skill, position, prerequisite) VALUES ($1, $2, $3)`,
				rec.Name, i, prereq,
			); err != nil {
				return fmt.Errorf("insert prerequisite for %q: %w", name, err)
			}
		}
		for i, res := range rec.Resources {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO catalog_skill_resources (skill, position, title, url, kind, level) VALUES ($1, $2, $3, $4, $5, $6)`,
				rec.Name, i, res.Title, res.URL, res.Kind, res.Level,
			); err != nil {
				return fmt.Errorf("insert resource for %q: %w", name, err)
			}
		}
	}

	for _, id := range c.roleIDs {
		role := c.roles[id]
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO catalog_roles (id, name) VALUES ($1, $2)`,
			role.ID, role.Name,
		); err != nil {
			return fmt.Errorf("insert role %q: %w", id, err)
		}
		tiers := []struct {
			name  string
			items []string
		}{
			{tierCore, role.Core},
			{tierPreferred, role.Preferred},
			{tierBonus, role.Bonus},
			{tierGrowth, role.Growth},
		}
		for _, tier := range tiers {
			for i, value := range tier.items {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO catalog_role_skills (role_id, tier, position, value) VALUES ($1, $2, $3, $4)`,
					role.ID, tier.name, i, value,
				); err != nil {
					return fmt.Errorf("insert %s entry for %q: %w", tier.name, id, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}
