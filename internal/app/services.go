package app

import (
	"time"

	"github.com/yungbote/prepgenius-backend/internal/observability"
	"github.com/yungbote/prepgenius-backend/internal/platform/logger"
	"github.com/yungbote/prepgenius-backend/internal/platform/ollama"
	"github.com/yungbote/prepgenius-backend/internal/platform/pdftext"
	"github.com/yungbote/prepgenius-backend/internal/platform/uploads"
	"github.com/yungbote/prepgenius-backend/internal/services"
)

type Services struct {
	Uploads   *uploads.Store
	Gateway   *ollama.Client
	Activity  services.ActivityLogService
	Study     services.StudyService
	Dashboard services.DashboardService
	History   services.HistoryService
}

func wireServices(log *logger.Logger, cfg Config, reposet Repos, metrics *observability.Metrics) (Services, error) {
	log.Info("Wiring services...")

	store, err := uploads.NewStore(cfg.UploadDir, log)
	if err != nil {
		return Services{}, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return Services{}, err
	}

	gateway := ollama.New(log, ollama.Config{
		BaseURL: cfg.OllamaURL,
		Model:   cfg.OllamaModel,
		Timeout: cfg.OllamaTimeout,
	})
	if metrics != nil {
		gateway = gateway.WithObserver(metrics)
	}

	activity := services.NewActivityLogService(log, reposet.Activity, time.Now, metrics)
	study := services.NewStudyService(log, store, pdftext.NewExtractor(), gateway, activity, metrics)

	return Services{
		Uploads:   store,
		Gateway:   gateway,
		Activity:  activity,
		Study:     study,
		Dashboard: services.NewDashboardService(log, reposet.Activity, time.Now, loc),
		History:   services.NewHistoryService(log, reposet.Activity),
	}, nil
}
