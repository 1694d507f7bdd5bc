package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/prepgenius-backend/internal/http/response"
	"github.com/yungbote/prepgenius-backend/internal/platform/logger"
	"github.com/yungbote/prepgenius-backend/internal/services"
)

type DashboardHandler struct {
	log       *logger.Logger
	dashboard services.DashboardService
	history   services.HistoryService
}

func NewDashboardHandler(log *logger.Logger, dashboard services.DashboardService, history services.HistoryService) *DashboardHandler {
	return &DashboardHandler{
		log:       log.With("handler", "DashboardHandler"),
		dashboard: dashboard,
		history:   history,
	}
}

// GET /api/dashboard
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	summary, err := h.dashboard.Summary(c.Request.Context())
	if err != nil {
		h.log.Error("Dashboard failed", "error", err)
		response.RespondAPIError(c, err, "dashboard_failed")
		return
	}
	response.RespondOK(c, summary)
}

// GET /api/history
func (h *DashboardHandler) History(c *gin.Context) {
	items, err := h.history.Recent(c.Request.Context())
	if err != nil {
		h.log.Error("History failed", "error", err)
		response.RespondAPIError(c, err, "history_failed")
		return
	}
	response.RespondOK(c, gin.H{"items": items})
}
