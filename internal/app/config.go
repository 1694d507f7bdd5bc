package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/prepgenius-backend/internal/data/db"
	"github.com/yungbote/prepgenius-backend/internal/observability"
	"github.com/yungbote/prepgenius-backend/internal/platform/envutil"
	"github.com/yungbote/prepgenius-backend/internal/platform/logger"
	"github.com/yungbote/prepgenius-backend/internal/platform/ollama"
)

const configFileEnv = "PREPGENIUS_CONFIG"

type Config struct {
	Port    string `yaml:"port"`
	LogMode string `yaml:"log_mode"`

	DBDriver string `yaml:"db_driver"`
	DBDSN    string `yaml:"db_dsn"`

	UploadDir      string `yaml:"upload_dir"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`

	OllamaURL     string        `yaml:"ollama_url"`
	OllamaModel   string        `yaml:"ollama_model"`
	OllamaTimeout time.Duration `yaml:"ollama_timeout"`

	StreakTimezone string `yaml:"streak_timezone"`

	CORSOrigins []string `yaml:"cors_origins"`

	OtelExporter    string  `yaml:"otel_exporter"`
	OtelEndpoint    string  `yaml:"otel_endpoint"`
	OtelSampleRatio float64 `yaml:"otel_sample_ratio"`
	MetricsEnabled  bool    `yaml:"metrics_enabled"`
}

func DefaultConfig() Config {
	return Config{
		Port:           "5000",
		LogMode:        "development",
		DBDriver:       db.DriverSQLite,
		DBDSN:          db.DefaultSQLitePath,
		UploadDir:      "uploads",
		MaxUploadBytes: 32 << 20,
		OllamaURL:      ollama.DefaultBaseURL,
		OllamaModel:    ollama.DefaultModel,
		OllamaTimeout:  ollama.DefaultTimeout,
		StreakTimezone: "UTC",
		OtelExporter:   observability.ExporterNone,
		MetricsEnabled: true,
	}
}

// LoadConfig starts from defaults, applies the YAML file named by
// PREPGENIUS_CONFIG when set, then lets environment variables override.
func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := DefaultConfig()

	if path := envutil.String(configFileEnv, ""); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		log.Info("Loaded config file", "path", path)
	}

	cfg.Port = envutil.String("PORT", cfg.Port)
	cfg.LogMode = envutil.String("LOG_MODE", cfg.LogMode)
	cfg.DBDriver = envutil.String("DB_DRIVER", cfg.DBDriver)
	cfg.DBDSN = envutil.String("DB_DSN", cfg.DBDSN)
	cfg.UploadDir = envutil.String("UPLOAD_DIR", cfg.UploadDir)
	cfg.MaxUploadBytes = envutil.Int64("MAX_UPLOAD_BYTES", cfg.MaxUploadBytes)
	cfg.OllamaURL = envutil.String("OLLAMA_URL", cfg.OllamaURL)
	cfg.OllamaModel = envutil.String("OLLAMA_MODEL", cfg.OllamaModel)
	cfg.OllamaTimeout = envutil.Duration("OLLAMA_TIMEOUT", cfg.OllamaTimeout)
	cfg.StreakTimezone = envutil.String("STREAK_TIMEZONE", cfg.StreakTimezone)
	cfg.OtelExporter = envutil.String("OTEL_EXPORTER", cfg.OtelExporter)
	cfg.OtelEndpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.OtelEndpoint)
	cfg.MetricsEnabled = envutil.Bool("METRICS_ENABLED", cfg.MetricsEnabled)
	if v := envutil.String("CORS_ORIGINS", ""); v != "" {
		cfg.CORSOrigins = splitList(v)
	}

	if _, err := cfg.Location(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Location resolves StreakTimezone; empty means UTC.
func (c Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.StreakTimezone)
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("STREAK_TIMEZONE %q: %w", name, err)
	}
	return loc, nil
}

func (c Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
