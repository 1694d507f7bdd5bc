package app

import (
	"github.com/yungbote/prepgenius-backend/internal/http"
	"github.com/yungbote/prepgenius-backend/internal/observability"
	"github.com/yungbote/prepgenius-backend/internal/platform/logger"
	"github.com/yungbote/prepgenius-backend/internal/web"
)

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, metrics *observability.Metrics) *http.Server {
	log.Info("Wiring router...")
	return http.NewServer(cfg.Addr(), http.RouterConfig{
		Log:              log,
		Metrics:          metrics,
		ServiceName:      serviceName,
		CORSOrigins:      cfg.CORSOrigins,
		MaxUploadBytes:   cfg.MaxUploadBytes,
		StudyHandler:     handlers.Study,
		DashboardHandler: handlers.Dashboard,
		HealthHandler:    handlers.Health,
		WebHandler:       handlers.Web,
		StaticFS:         web.Static(),
	})
}
