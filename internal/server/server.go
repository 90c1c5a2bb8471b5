package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vk/seriesreg/internal/ctxlog"
	"github.com/vk/seriesreg/internal/registry"
	"github.com/vk/seriesreg/internal/settings"
)

// ShutdownTimeout bounds how long Shutdown waits for in-flight requests.
const ShutdownTimeout = 5 * time.Second

// Server is the introspection HTTP server.
type Server struct {
	logger     *slog.Logger
	registry   *registry.Registry
	settings   *settings.Settings
	router     *gin.Engine
	httpServer *http.Server
}

func init() {
	gin.SetMode(gin.ReleaseMode)
}

// New builds a server listening on addr. The registry should already be
// sealed.
func New(ctx context.Context, addr string, reg *registry.Registry, st *settings.Settings) *Server {
	s := &Server{
		logger:   ctxlog.FromContext(ctx).With("component", "server"),
		registry: reg,
		settings: st,
	}

	router := gin.New()
	router.Use(gin.Recovery(), s.logRequests())
	router.GET("/health", s.health)
	router.GET("/series", s.listSeries)
	router.GET("/series/:series/coefficients", s.coefficients)
	router.GET("/series/:series/coefficients/:coefficient", s.resolve)
	router.GET("/symbols/:symbol", s.symbol)
	router.GET("/settings", s.currentSettings)
	s.router = router

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routed handler, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Serve accepts connections on ln until Shutdown is called. It returns nil
// after a graceful shutdown.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("🩺 Introspection server starting", "address", fmt.Sprintf("http://%s/health", ln.Addr()))
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("Introspection server failed unexpectedly", "error", err)
		return err
	}
	return nil
}

// Start listens on the configured address and serves until Shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ln)
}

// Shutdown stops the server gracefully, waiting at most ShutdownTimeout.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, ShutdownTimeout)
	defer cancel()

	s.logger.Info("🩺 Shutting down introspection server...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Introspection server shutdown failed", "error", err)
		return err
	}
	s.logger.Debug("Introspection server shut down gracefully.")
	return nil
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("Request served.",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"remote_addr", c.ClientIP(),
			"duration", time.Since(start),
		)
	}
}
