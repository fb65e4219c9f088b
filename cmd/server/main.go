package main

import (
	"context"
	"log"
	"net"
	"os"
	"syscall"
	"time"

	"github.com/honeycarbs/course-aggregator/internal/config"
	"github.com/honeycarbs/course-aggregator/internal/mcp"
	"github.com/honeycarbs/course-aggregator/pkg/logging"
	"github.com/honeycarbs/course-aggregator/pkg/shutdown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	srv, err := mcp.NewServer(context.Background(), logger, cfg)
	if err != nil {
		logger.Error("failed to initialize server", "err", err)
		os.Exit(1)
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		_ = shutdown.Graceful(
			context.Background(),
			[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
			10*time.Second,
			logger,
			srv,
		)
	}()

	logger.Info("course aggregator starting", "addr", net.JoinHostPort(cfg.Host, cfg.Port), "providers", cfg.Providers)

	if err := srv.Run(); err != nil {
		logger.Error("server exited with error", "err", err)
		os.Exit(1)
	}

	// Run returns as soon as the listener closes; wait for the remaining cleanup
	<-stopped
	logger.Info("server stopped")
}
