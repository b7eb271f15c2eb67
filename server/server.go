package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"link_tracker/clock"
	"link_tracker/config"
	"link_tracker/handlers"
	"link_tracker/middleware"
	"link_tracker/services"
	"link_tracker/store"
)

type Server struct {
	config *config.Config
	logger *zap.SugaredLogger
	router *gin.Engine
	server *http.Server
}

func NewServer(cfg *config.Config, logger *zap.SugaredLogger) *Server {
	gin.SetMode(cfg.Server.GinMode)

	fileStore := store.NewFileStore(cfg.Tracker.DataFile, cfg.Tracker.CSVFile, logger)
	clicks := services.NewClickService(fileStore, cfg.Tracker.TargetURL, clock.Real{}, logger)

	s := &Server{
		config: cfg,
		logger: logger,
		router: gin.New(),
	}
	s.setupRoutes(handlers.NewClickHandler(clicks, cfg))
	s.server = &http.Server{
		Addr:    cfg.Server.Port,
		Handler: s.router,
	}
	return s
}

func (s *Server) setupRoutes(h *handlers.ClickHandler) {
	s.router.Use(gin.Recovery(), middleware.RequestLogger(s.logger))
	if s.config.Metrics.Enabled {
		s.router.Use(middleware.RequestMetrics())
		s.router.GET(s.config.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	s.router.SetHTMLTemplate(handlers.Templates())

	s.router.GET("/", h.Home)
	s.router.GET("/track", h.Track)
	s.router.GET("/stats", h.Stats)
	s.router.GET("/api/stats", h.APIStats)
	s.router.GET("/health", handlers.HealthHandler())
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks until the listener fails or Stop is called.
func (s *Server) Start() error {
	s.logger.Infow("link tracker starting",
		"addr", s.config.Server.Port,
		"target_url", s.config.Tracker.TargetURL,
		"data_file", s.config.Tracker.DataFile,
		"csv_file", s.config.Tracker.CSVFile,
	)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
