package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/prepgenius-backend/internal/data/db"
	"github.com/yungbote/prepgenius-backend/internal/http"
	"github.com/yungbote/prepgenius-backend/internal/observability"
	"github.com/yungbote/prepgenius-backend/internal/platform/logger"
)

const (
	serviceName     = "prepgenius-backend"
	shutdownTimeout = 15 * time.Second
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Cfg      Config
	Repos    Repos
	Services Services
	Metrics  *observability.Metrics
	Server   *http.Server

	dbService    *db.Service
	otelShutdown func(context.Context) error
}

func newLogger() (*logger.Logger, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return log, nil
}

func openDB(log *logger.Logger, cfg Config) (*db.Service, error) {
	svc, err := db.NewService(log, db.Config{Driver: cfg.DBDriver, DSN: cfg.DBDSN})
	if err != nil {
		return nil, fmt.Errorf("init db: %w", err)
	}
	if err := svc.AutoMigrateAll(); err != nil {
		_ = svc.Close()
		return nil, fmt.Errorf("db automigrate: %w", err)
	}
	return svc, nil
}

func New(ctx context.Context) (*App, error) {
	log, err := newLogger()
	if err != nil {
		return nil, err
	}

	log.Info("Loading configuration...")
	cfg, err := LoadConfig(log)
	if err != nil {
		log.Sync()
		return nil, err
	}
	if cfg.LogMode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	dbService, err := openDB(log, cfg)
	if err != nil {
		log.Sync()
		return nil, err
	}

	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: serviceName,
		Environment: cfg.LogMode,
		Exporter:    cfg.OtelExporter,
		Endpoint:    cfg.OtelEndpoint,
		SampleRatio: cfg.OtelSampleRatio,
	})

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
	}

	a := &App{
		Log:          log,
		DB:           dbService.DB(),
		Cfg:          cfg,
		Metrics:      metrics,
		dbService:    dbService,
		otelShutdown: otelShutdown,
	}

	a.Repos = wireRepos(a.DB, log)
	a.Services, err = wireServices(log, cfg, a.Repos, metrics)
	if err != nil {
		a.Close()
		return nil, err
	}
	handlerset, err := wireHandlers(log, a.Services, dbService.Ping)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Server = wireServer(log, cfg, handlerset, metrics)
	return a, nil
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Log.Info("Server listening", "addr", a.Server.Addr(), "model", a.Services.Gateway.Model(), "upload_dir", a.Services.Uploads.Dir())
		return a.Server.Run()
	})
	g.Go(func() error {
		<-gctx.Done()
		a.Log.Info("Shutting down server...")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.Server.Shutdown(sctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.otelShutdown(ctx); err != nil && a.Log != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		cancel()
		a.otelShutdown = nil
	}
	if a.dbService != nil {
		if err := a.dbService.Close(); err != nil && a.Log != nil {
			a.Log.Warn("db close failed", "error", err)
		}
		a.dbService = nil
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}

// Migrate opens the configured store, applies the schema and exits.
func Migrate() error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg, err := LoadConfig(log)
	if err != nil {
		return err
	}
	svc, err := openDB(log, cfg)
	if err != nil {
		return err
	}
	log.Info("Migration complete", "driver", cfg.DBDriver)
	return svc.Close()
}
