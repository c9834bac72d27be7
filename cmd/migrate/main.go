package main

// Run database migrations:
//   go run ./cmd/migrate
// Seed the catalog tables from the embedded catalog as well:
//   go run ./cmd/migrate -seed

import (
	"context"
	"flag"
	"os"

	"skillpath-backend/internal/catalog"
	"skillpath-backend/internal/shared/config"
	"skillpath-backend/internal/shared/storage/db"
	"skillpath-backend/internal/shared/telemetry"
)

func main() {
	seed := flag.Bool("seed", false, "replace catalog tables with the embedded catalog")
	catalogPath := flag.String("catalog", "", "seed from this YAML file instead of the embedded catalog")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		telemetry.Error("failed to connect database", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		telemetry.Error("failed to run migrations", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	if !*seed {
		return
	}

	data, err := seedData(*catalogPath)
	if err != nil {
		telemetry.Error("failed to read catalog", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	src := &catalog.PGSource{DB: sqlDB}
	if err := src.Seed(ctx, data); err != nil {
		telemetry.Error("failed to seed catalog", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	telemetry.Info("catalog seeded", map[string]any{
		"skills": len(data.Skills),
		"roles":  len(data.Roles),
	})
}

func seedData(path string) (catalog.Data, error) {
	if path == "" {
		return catalog.DefaultData()
	}
	f, err := os.Open(path)
	if err != nil {
		return catalog.Data{}, err
	}
	defer f.Close()
	return catalog.DecodeData(f)
}
