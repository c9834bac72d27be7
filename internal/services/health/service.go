package health

import (
	"context"
	"time"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RoleCounter reports how many roles the loaded catalog holds.
type RoleCounter interface {
	RoleNames() []string
}

// Status is the health payload.
type Status struct {
	OK       bool   `json:"ok"`
	Catalog  string `json:"catalog"`
	Roles    int    `json:"roles"`
	Database string `json:"database"`
}

// Service encapsulates health-related checks.
type Service struct {
	catalogSource string
	roles         RoleCounter
	db            Pinger
}

// NewService constructs a new health service. db may be nil when reports are
// kept in memory.
func NewService(catalogSource string, roles RoleCounter, db Pinger) *Service {
	return &Service{catalogSource: catalogSource, roles: roles, db: db}
}

// Status reports catalog and database readiness.
func (s *Service) Status(ctx context.Context) Status {
	st := Status{OK: true, Catalog: s.catalogSource, Database: "disabled"}
	if s.roles != nil {
		st.Roles = len(s.roles.RoleNames())
	}
	if st.Roles == 0 {
		st.OK = false
	}
	if s.db != nil {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := s.db.PingContext(pingCtx); err != nil {
			st.OK = false
			st.Database = "unavailable"
		} else {
			st.Database = "ok"
		}
	}
	return st
}
