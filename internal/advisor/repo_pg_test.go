package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"skillpath-backend/internal/gap"
)

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	report := Report{
		ID:         "report-1",
		RoleID:     "frontend_developer",
		TargetRole: "Frontend Developer",
		Skills:     []string{"html", "css"},
		Gap:        gap.Result{RoleID: "frontend_developer", MatchPercentage: 25},
		CreatedAt:  time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
	}

	mock.ExpectExec("INSERT INTO skill_reports").
		WithArgs(
			report.ID,
			report.RoleID,
			report.TargetRole,
			[]byte(`["html","css"]`),
			sqlmock.AnyArg(), // result
			report.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), report); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	created := time.Date(2026, time.February, 3, 4, 5, 6, 0, time.UTC)
	result, err := json.Marshal(reportBody{Gap: gap.Result{RoleID: "data_scientist", MatchPercentage: 57}})
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	rows := sqlmock.NewRows([]string{"id", "role_id", "target_role", "skills", "result", "created_at"}).
		AddRow("report-2", "data_scientist", "Data Scientist", []byte(`["python"]`), result, created)
	mock.ExpectQuery("FROM skill_reports").
		WithArgs("report-2").
		WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	report, err := repo.GetByID(context.Background(), "report-2")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if report.RoleID != "data_scientist" || report.Gap.MatchPercentage != 57 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(report.Skills) != 1 || report.Skills[0] != "python" {
		t.Fatalf("unexpected skills: %v", report.Skills)
	}
	if !report.CreatedAt.Equal(created) {
		t.Fatalf("expected created_at %s, got %s", created, report.CreatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("FROM skill_reports").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "role_id", "target_role", "skills", "result", "created_at"}))

	repo := &PGRepo{DB: db}
	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoListRecent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "role_id", "target_role", "skills", "result", "created_at"}).
		AddRow("r2", "frontend_developer", "Frontend Developer", []byte(`[]`), []byte(`{}`), now).
		AddRow("r1", "frontend_developer", "Frontend Developer", []byte(`[]`), []byte(`{}`), now.Add(-time.Hour))
	mock.ExpectQuery("ORDER BY created_at DESC").
		WithArgs("frontend_developer", 20).
		WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	reports, err := repo.ListRecent(context.Background(), "frontend_developer", 0)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(reports) != 2 || reports[0].ID != "r2" {
		t.Fatalf("unexpected reports: %+v", reports)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
