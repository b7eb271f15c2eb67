package main

import (
	"context"
	"log"
	"os/signal"
	"strings"
	"syscall"

	"link_tracker/config"
	"link_tracker/logging"
	"link_tracker/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	srv := server.NewServer(cfg, logger)

	base := cfg.Server.PublicURL
	if base == "" {
		base = "http://localhost" + cfg.Server.Port
		if !strings.HasPrefix(cfg.Server.Port, ":") {
			base = "http://" + cfg.Server.Port
		}
	}
	base = strings.TrimRight(base, "/")
	logger.Infof("Stats will be available at: %s/stats", base)
	logger.Infof("Share this tracking link: %s/track", base)
	logger.Infof("Redirects to: %s", cfg.Tracker.TargetURL)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatalf("Failed to start server: %v", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			logger.Errorw("graceful shutdown failed", "error", err)
		}
	}
}
