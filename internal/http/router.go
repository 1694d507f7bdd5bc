package http

import (
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/prepgenius-backend/internal/http/handlers"
	httpMW "github.com/yungbote/prepgenius-backend/internal/http/middleware"
	"github.com/yungbote/prepgenius-backend/internal/observability"
	"github.com/yungbote/prepgenius-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log     *logger.Logger
	Metrics *observability.Metrics

	ServiceName    string
	CORSOrigins    []string
	MaxUploadBytes int64

	StudyHandler     *httpH.StudyHandler
	DashboardHandler *httpH.DashboardHandler
	HealthHandler    *httpH.HealthHandler
	WebHandler       *httpH.WebHandler
	StaticFS         fs.FS
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))
	if cfg.MaxUploadBytes > 0 {
		r.MaxMultipartMemory = cfg.MaxUploadBytes
	}

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	// UI
	if cfg.WebHandler != nil {
		r.GET("/", cfg.WebHandler.Index)
	}
	if cfg.StaticFS != nil {
		r.StaticFS("/static", http.FS(cfg.StaticFS))
	}

	api := r.Group("/api")
	api.Use(httpMW.BodyLimit(cfg.MaxUploadBytes))
	{
		if cfg.DashboardHandler != nil {
			api.GET("/dashboard", cfg.DashboardHandler.Dashboard)
			api.GET("/history", cfg.DashboardHandler.History)
		}

		if cfg.StudyHandler != nil {
			api.POST("/notes", cfg.StudyHandler.Notes)
			api.POST("/quiz", cfg.StudyHandler.Quiz)
			api.POST("/questions", cfg.StudyHandler.Questions)
			api.POST("/chat", cfg.StudyHandler.Chat)
			api.POST("/mentor", cfg.StudyHandler.Mentor)
		}
	}

	return r
}
