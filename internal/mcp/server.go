package mcp

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/course-aggregator/internal/api"
	"github.com/honeycarbs/course-aggregator/internal/config"
	"github.com/honeycarbs/course-aggregator/pkg/logging"
)

const streamPath = "/mcp/stream"

// Server serves the REST API and the MCP streamable endpoint on one listener
type Server struct {
	logger *logging.Logger
	config config.Config

	srv     *http.Server
	cleanup func()
	started atomic.Bool
}

// NewServer wires resources and builds the HTTP server
func NewServer(ctx context.Context, log *logging.Logger, cfg config.Config) (*Server, error) {
	res, cleanup, err := initializeResources(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	return &Server{
		logger:  log,
		config:  cfg,
		srv:     newHTTPServer(log, cfg, res),
		cleanup: cleanup,
	}, nil
}

func newHTTPServer(log *logging.Logger, cfg config.Config, res *Resources) *http.Server {
	mcpServer := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "course-aggregator",
		Version: "0.1.0",
	}, nil)

	NewToolRegistry(log.Named("mcp")).RegisterAll(mcpServer, res)

	handler := sdkmcp.NewStreamableHTTPHandler(func(req *http.Request) *sdkmcp.Server {
		return mcpServer
	}, nil)

	if !log.DebugEnabled() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(res.CourseService, log.Named("http"))
	router.Any(streamPath, gin.WrapH(handler))

	return &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// Run starts the HTTP server and blocks until shutdown
func (s *Server) Run() error {
	if !s.started.CompareAndSwap(false, true) {
		return nil
	}

	s.logger.Info("HTTP server listening", "addr", s.srv.Addr, "mcp", streamPath)

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutdown requested for HTTP server")
	defer s.cleanup()

	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Warn("HTTP server shutdown with error", "err", err)
		return err
	}

	s.logger.Info("HTTP server shutdown complete")
	return nil
}
