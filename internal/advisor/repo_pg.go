package advisor

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new report.
func (r *PGRepo) Create(ctx context.Context, report Report) error {
	const query = `
INSERT INTO skill_reports (id, role_id, target_role, skills, result, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	skillsPayload, err := marshalJSONB(report.Skills, "[]")
	if err != nil {
		return err
	}
	resultPayload, err := marshalJSONB(reportBody{
		Gap:             report.Gap,
		Roadmap:         report.Roadmap,
		Suggestions:     report.Suggestions,
		Recommendations: report.Recommendations,
	}, "{}")
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		report.ID,
		report.RoleID,
		report.TargetRole,
		skillsPayload,
		resultPayload,
		report.CreatedAt,
	)
	return err
}

// GetByID returns a report by ID.
func (r *PGRepo) GetByID(ctx context.Context, reportID string) (Report, error) {
	const query = `
SELECT id, role_id, target_role, skills, result, created_at
FROM skill_reports
WHERE id = $1
LIMIT 1`
	report, err := scanReport(r.DB.QueryRowContext(ctx, query, reportID))
	if errors.Is(err, sql.ErrNoRows) {
		return Report{}, ErrNotFound
	}
	return report, err
}

// ListRecent returns reports newest first, optionally filtered by role.
func (r *PGRepo) ListRecent(ctx context.Context, roleID string, limit int) ([]Report, error) {
	const query = `
SELECT id, role_id, target_role, skills, result, created_at
FROM skill_reports
WHERE ($1 = '' OR role_id = $1)
ORDER BY created_at DESC, id
LIMIT $2`
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.DB.QueryContext(ctx, query, roleID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Report{}
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, report)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (Report, error) {
	var (
		report    Report
		skillsRaw []byte
		resultRaw []byte
		body      reportBody
	)
	if err := row.Scan(&report.ID, &report.RoleID, &report.TargetRole, &skillsRaw, &resultRaw, &report.CreatedAt); err != nil {
		return Report{}, err
	}
	if len(skillsRaw) > 0 {
		if err := json.Unmarshal(skillsRaw, &report.Skills); err != nil {
			return Report{}, fmt.Errorf("decode report %s skills: %w", report.ID, err)
		}
	}
	if len(resultRaw) > 0 {
		if err := json.Unmarshal(resultRaw, &body); err != nil {
			return Report{}, fmt.Errorf("decode report %s result: %w", report.ID, err)
		}
	}
	report.Gap = body.Gap
	report.Roadmap = body.Roadmap
	report.Suggestions = body.Suggestions
	report.Recommendations = body.Recommendations
	report.CreatedAt = report.CreatedAt.UTC()
	return report, nil
}

func marshalJSONB(value any, empty string) ([]byte, error) {
	if value == nil {
		return []byte(empty), nil
	}
	return json.Marshal(value)
}
