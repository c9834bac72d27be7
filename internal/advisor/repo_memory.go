package advisor

import (
	"context"
	"sort"
	"sync"
)

// DefaultMemoryReportLimit bounds how many reports a MemoryRepo keeps.
const DefaultMemoryReportLimit = 1000

// MemoryRepo stores reports in memory and is safe for concurrent use. Once it
// holds its limit, each new report evicts the oldest stored one.
type MemoryRepo struct {
	mu    sync.RWMutex
	byID  map[string]Report
	order []string
	limit int
}

// NewMemoryRepo constructs a MemoryRepo holding at most DefaultMemoryReportLimit reports.
func NewMemoryRepo() *MemoryRepo {
	return NewBoundedMemoryRepo(DefaultMemoryReportLimit)
}

// NewBoundedMemoryRepo constructs a MemoryRepo holding at most limit reports.
// A non-positive limit falls back to DefaultMemoryReportLimit.
func NewBoundedMemoryRepo(limit int) *MemoryRepo {
	if limit <= 0 {
		limit = DefaultMemoryReportLimit
	}
	return &MemoryRepo{byID: make(map[string]Report), limit: limit}
}

// Create stores the report.
func (r *MemoryRepo) Create(ctx context.Context, report Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[report.ID]; !ok {
		r.order = append(r.order, report.ID)
	}
	r.byID[report.ID] = report
	for len(r.order) > r.limit {
		delete(r.byID, r.order[0])
		r.order = r.order[1:]
	}
	return nil
}

// GetByID returns a report by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, reportID string) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	report, ok := r.byID[reportID]
	if !ok {
		return Report{}, ErrNotFound
	}
	return report, nil
}

// ListRecent returns reports newest first, optionally filtered by role.
func (r *MemoryRepo) ListRecent(ctx context.Context, roleID string, limit int) ([]Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Report, 0, len(r.byID))
	for _, report := range r.byID {
		if roleID == "" || report.RoleID == roleID {
			out = append(out, report)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
