package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"skillpath-backend/internal/advisor"
	"skillpath-backend/internal/catalog"
	"skillpath-backend/internal/roadmap"
	"skillpath-backend/internal/services/health"
	"skillpath-backend/internal/shared/config"
	"skillpath-backend/internal/shared/server"
	"skillpath-backend/internal/shared/storage/db"
	"skillpath-backend/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	DB             *sql.DB
	Catalog        *catalog.Catalog
	ReportsRepo    advisor.Repo
	AdvisorService *advisor.Service
	AdvisorHandler *advisor.Handler
	Health         *health.Service
}

// Build prepares shared dependencies and wires routes. A catalog that cannot
// be loaded is returned as a *catalog.CatalogLoadError.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	cat, err := buildCatalog(ctx, cfg, sqlDB)
	if err != nil {
		closeDB(sqlDB)
		return nil, err
	}

	app := &App{
		Config:  cfg,
		DB:      sqlDB,
		Catalog: cat,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         app.Config,
		AdvisorHandler: app.AdvisorHandler,
		Health:         app.Health,
	})

	telemetry.Info("bootstrap ready", map[string]any{
		"catalog_source": cfg.CatalogSource,
		"report_store":   storeName(app.ReportsRepo),
		"roles":          len(cat.RoleNames()),
	})
	return app, nil
}

// Close releases the database pool, if any.
func (a *App) Close() {
	closeDB(a.DB)
}

func needsDB(cfg config.Config) bool {
	return cfg.CatalogSource == config.CatalogPostgres || cfg.ReportStore == config.StorePostgres
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if !needsDB(cfg) {
		return nil, nil
	}
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) && cfg.CatalogSource != config.CatalogPostgres {
			telemetry.Warn("bootstrap: DATABASE_URL empty; using in-memory report store", nil)
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) && cfg.CatalogSource != config.CatalogPostgres {
			telemetry.Warn("bootstrap: database connect failed; using in-memory report store", map[string]any{
				"error": err.Error(),
			})
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildCatalog(ctx context.Context, cfg config.Config, sqlDB *sql.DB) (*catalog.Catalog, error) {
	switch cfg.CatalogSource {
	case config.CatalogFile:
		if strings.TrimSpace(cfg.CatalogPath) == "" {
			return nil, &catalog.CatalogLoadError{Source: "file", Err: fmt.Errorf("CATALOG_PATH is required")}
		}
		return catalog.LoadFile(cfg.CatalogPath)
	case config.CatalogPostgres:
		if sqlDB == nil {
			return nil, &catalog.CatalogLoadError{Source: "postgres", Err: fmt.Errorf("database is not configured")}
		}
		src := &catalog.PGSource{DB: sqlDB}
		return src.Load(ctx)
	default:
		return catalog.LoadDefault()
	}
}

func buildServices(app *App) {
	cfg := app.Config

	var repo advisor.Repo
	if app.DB != nil && cfg.ReportStore == config.StorePostgres {
		repo = &advisor.PGRepo{DB: app.DB}
	} else {
		repo = advisor.NewMemoryRepo()
	}

	svc := advisor.NewService(app.Catalog, repo, advisor.Options{
		Policy: roadmap.Policy{
			MaxWeeks:             cfg.RoadmapMaxWeeks,
			MaxSkillsPerWeek:     cfg.RoadmapMaxSkillsPerWeek,
			MaxDifficultyPerWeek: cfg.RoadmapMaxDifficulty,
		},
		PartialThreshold: cfg.PartialMatchThreshold,
		SuggestionLimit:  cfg.SuggestionLimit,
	})

	var pinger health.Pinger
	if app.DB != nil {
		pinger = app.DB
	}

	app.ReportsRepo = repo
	app.AdvisorService = svc
	app.AdvisorHandler = advisor.NewHandler(svc)
	app.Health = health.NewService(cfg.CatalogSource, app.Catalog, pinger)
}

func storeName(repo advisor.Repo) string {
	if _, ok := repo.(*advisor.PGRepo); ok {
		return config.StorePostgres
	}
	return config.StoreMemory
}

func closeDB(sqlDB *sql.DB) {
	if sqlDB != nil {
		_ = sqlDB.Close()
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local", "test":
		return true
	default:
		return false
	}
}
