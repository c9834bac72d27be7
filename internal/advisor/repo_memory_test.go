package advisor

import (
	"context"
	"testing"
	"time"
)

func TestMemoryRepoListRecent(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	reports := []Report{
		{ID: "a", RoleID: "frontend_developer", CreatedAt: base},
		{ID: "b", RoleID: "data_scientist", CreatedAt: base.Add(time.Hour)},
		{ID: "c", RoleID: "frontend_developer", CreatedAt: base.Add(2 * time.Hour)},
	}
	for _, r := range reports {
		if err := repo.Create(ctx, r); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	all, err := repo.ListRecent(ctx, "", 0)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(all) != 3 || all[0].ID != "c" || all[2].ID != "a" {
		t.Fatalf("expected newest first, got %+v", all)
	}

	fe, err := repo.ListRecent(ctx, "frontend_developer", 1)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(fe) != 1 || fe[0].ID != "c" {
		t.Fatalf("expected latest frontend report, got %+v", fe)
	}
}

func TestMemoryRepoHonorsCanceledContext(t *testing.T) {
	repo := NewMemoryRepo()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := repo.Create(ctx, Report{ID: "x"}); err == nil {
		t.Fatalf("expected canceled context error")
	}
	if _, err := repo.GetByID(ctx, "x"); err == nil {
		t.Fatalf("expected canceled context error")
	}
}

func TestMemoryRepoEvictsOldestPastLimit(t *testing.T) {
	repo := NewBoundedMemoryRepo(2)
	ctx := context.Background()
	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		if err := repo.Create(ctx, Report{ID: id, CreatedAt: base.Add(time.Duration(i) * time.Minute)}); err != nil {
			t.Fatalf("Create %s: %v", id, err)
		}
	}

	if _, err := repo.GetByID(ctx, "a"); err != ErrNotFound {
		t.Fatalf("expected oldest report evicted, got %v", err)
	}
	all, err := repo.ListRecent(ctx, "", 0)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(all) != 2 || all[0].ID != "c" || all[1].ID != "b" {
		t.Fatalf("unexpected reports after eviction: %+v", all)
	}
}

func TestMemoryRepoReplaceDoesNotEvict(t *testing.T) {
	repo := NewBoundedMemoryRepo(2)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "a"} {
		if err := repo.Create(ctx, Report{ID: id}); err != nil {
			t.Fatalf("Create %s: %v", id, err)
		}
	}
	for _, id := range []string{"a", "b"} {
		if _, err := repo.GetByID(ctx, id); err != nil {
			t.Fatalf("expected %s kept, got %v", id, err)
		}
	}
}
