package config

import (
	"strings"

	"github.com/spf13/viper"

	"skillpath-backend/internal/shared/telemetry"
)

const (
	CatalogEmbedded = "embedded"
	CatalogFile     = "file"
	CatalogPostgres = "postgres"

	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	DatabaseURL     string

	CatalogSource string
	CatalogPath   string
	ReportStore   string

	RoadmapMaxWeeks         int
	RoadmapMaxSkillsPerWeek int
	RoadmapMaxDifficulty    int
	PartialMatchThreshold   float64
	SuggestionLimit         int

	RateLimitRPS   float64
	RateLimitBurst int

	LogLevel string
	LogFile  string

	ServiceName      string
	OTelEnabled      bool
	OTelEndpoint     string
	OTelInsecure     bool
	OTelSamplerRatio float64
}

var defaults = map[string]any{
	"PORT":                            "8080",
	"ENV":                             "dev",
	"CORS_ALLOW_ORIGINS":              "http://localhost:5173",
	"DATABASE_URL":                    "",
	"CATALOG_SOURCE":                  CatalogEmbedded,
	"CATALOG_PATH":                    "",
	"REPORT_STORE":                    StoreMemory,
	"ROADMAP_MAX_WEEKS":               8,
	"ROADMAP_MAX_SKILLS_PER_WEEK":     3,
	"ROADMAP_MAX_DIFFICULTY_PER_WEEK": 8,
	"PARTIAL_MATCH_THRESHOLD":         0.7,
	"SUGGESTION_LIMIT":                5,
	"RATE_LIMIT_RPS":                  10.0,
	"RATE_LIMIT_BURST":                20,
	"LOG_LEVEL":                       "info",
	"LOG_FILE":                        "",
	"SERVICE_NAME":                    "skillpath-api",
	"OTEL_ENABLED":                    false,
	"OTEL_EXPORTER_OTLP_ENDPOINT":     "",
	"OTEL_EXPORTER_OTLP_INSECURE":     false,
	"OTEL_SAMPLER_RATIO":              0.1,
}

// Load reads configuration from the environment, falling back to optional
// .env and config.yaml files in the working directory, then to defaults.
func Load() Config {
	return load(".env", "cmd/.env", "config.yaml")
}

func load(files ...string) Config {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	// Best-effort load of local files for dev convenience.
	for _, path := range files {
		mergeFile(v, path)
	}
	v.AutomaticEnv()

	env := normalizeEnv(v.GetString("ENV"))
	dbURL := strings.TrimSpace(v.GetString("DATABASE_URL"))

	cfg := Config{
		Port:                    v.GetString("PORT"),
		Env:                     env,
		CORSAllowOrigin:         splitAndTrim(v.GetString("CORS_ALLOW_ORIGINS")),
		DatabaseURL:             dbURL,
		CatalogSource:           normalizeCatalogSource(v.GetString("CATALOG_SOURCE")),
		CatalogPath:             strings.TrimSpace(v.GetString("CATALOG_PATH")),
		ReportStore:             normalizeStore(v.GetString("REPORT_STORE")),
		RoadmapMaxWeeks:         v.GetInt("ROADMAP_MAX_WEEKS"),
		RoadmapMaxSkillsPerWeek: v.GetInt("ROADMAP_MAX_SKILLS_PER_WEEK"),
		RoadmapMaxDifficulty:    v.GetInt("ROADMAP_MAX_DIFFICULTY_PER_WEEK"),
		PartialMatchThreshold:   v.GetFloat64("PARTIAL_MATCH_THRESHOLD"),
		SuggestionLimit:         v.GetInt("SUGGESTION_LIMIT"),
		RateLimitRPS:            v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst:          v.GetInt("RATE_LIMIT_BURST"),
		LogLevel:                strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))),
		LogFile:                 strings.TrimSpace(v.GetString("LOG_FILE")),
		ServiceName:             v.GetString("SERVICE_NAME"),
		OTelEnabled:             v.GetBool("OTEL_ENABLED"),
		OTelEndpoint:            strings.TrimSpace(v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT")),
		OTelInsecure:            v.GetBool("OTEL_EXPORTER_OTLP_INSECURE"),
		OTelSamplerRatio:        v.GetFloat64("OTEL_SAMPLER_RATIO"),
	}

	if env == "production" && dbURL == "" {
		telemetry.Warn("config.database_url_missing", map[string]any{"env": env})
	}
	if cfg.CatalogSource == CatalogFile && cfg.CatalogPath == "" {
		telemetry.Warn("config.catalog_path_missing", map[string]any{"catalog_source": cfg.CatalogSource})
	}
	return cfg
}

func mergeFile(v *viper.Viper, path string) {
	fv := viper.New()
	fv.SetConfigFile(path)
	if strings.HasSuffix(path, ".env") {
		fv.SetConfigType("env")
	}
	if err := fv.ReadInConfig(); err != nil {
		return
	}
	// Merged values sit below environment variables in viper's precedence.
	_ = v.MergeConfigMap(fv.AllSettings())
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeCatalogSource(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case CatalogFile:
		return CatalogFile
	case CatalogPostgres, "pg":
		return CatalogPostgres
	default:
		return CatalogEmbedded
	}
}

func normalizeStore(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case StorePostgres, "pg":
		return StorePostgres
	default:
		return StoreMemory
	}
}
