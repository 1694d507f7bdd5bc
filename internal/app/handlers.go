package app

import (
	"context"
	"fmt"

	httpH "github.com/yungbote/prepgenius-backend/internal/http/handlers"
	"github.com/yungbote/prepgenius-backend/internal/platform/logger"
	"github.com/yungbote/prepgenius-backend/internal/web"
)

type Handlers struct {
	Health    *httpH.HealthHandler
	Study     *httpH.StudyHandler
	Dashboard *httpH.DashboardHandler
	Web       *httpH.WebHandler
}

func wireHandlers(log *logger.Logger, serviceset Services, ping func(context.Context) error) (Handlers, error) {
	log.Info("Wiring handlers...")
	index, err := web.Index()
	if err != nil {
		return Handlers{}, fmt.Errorf("load embedded index: %w", err)
	}
	return Handlers{
		Health:    httpH.NewHealthHandler(ping),
		Study:     httpH.NewStudyHandler(log, serviceset.Study),
		Dashboard: httpH.NewDashboardHandler(log, serviceset.Dashboard, serviceset.History),
		Web:       httpH.NewWebHandler(index),
	}, nil
}
