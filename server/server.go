package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/communitymap/communitymap/internal/profile"
	"github.com/communitymap/communitymap/server/middleware"
	apiv1 "github.com/communitymap/communitymap/server/router/api/v1"
	"github.com/communitymap/communitymap/server/stats"
	"github.com/communitymap/communitymap/store"
)

// Server wires the echo instance, middleware stack and API services.
type Server struct {
	Secret  string
	Profile *profile.Profile
	Store   *store.Store

	echoServer     *echo.Echo
	statsCollector *stats.Collector
}

// NewServer creates a server with the full middleware and route stack.
func NewServer(ctx context.Context, profile *profile.Profile, store *store.Store) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
	}))
	e.Use(middleware.AuditLog(slog.Default()))

	secret, err := resolveSecret(profile)
	if err != nil {
		return nil, err
	}

	statsCollector := stats.NewCollector(store)
	statsCollector.Start(ctx)

	s := &Server{
		Secret:         secret,
		Profile:        profile,
		Store:          store,
		echoServer:     e,
		statsCollector: statsCollector,
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "Service ready.")
	})

	apiV1Service := apiv1.NewAPIV1Service(secret, profile, store)
	apiV1Service.StatsCollector = statsCollector
	apiV1Service.Register(e)

	return s, nil
}

// Start begins serving and blocks until the server stops.
func (s *Server) Start() error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	slog.Info("server started", slog.String("address", address), slog.String("mode", s.Profile.Mode))
	if err := s.echoServer.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "failed to start echo server")
	}
	return nil
}

// Shutdown stops the HTTP server and closes the store.
func (s *Server) Shutdown(ctx context.Context) {
	s.statsCollector.Stop()
	if err := s.echoServer.Shutdown(ctx); err != nil {
		slog.Error("failed to shutdown server", slog.String("error", err.Error()))
	}
	if err := s.Store.Close(); err != nil {
		slog.Error("failed to close store", slog.String("error", err.Error()))
	}
	slog.Info("server shutdown complete")
}

// resolveSecret picks the token-signing secret: the configured one, a fixed
// value in demo mode, or a random one per process otherwise.
func resolveSecret(profile *profile.Profile) (string, error) {
	if profile.Secret != "" {
		return profile.Secret, nil
	}
	if profile.Mode == "demo" {
		return "communitymap", nil
	}
	return uuid.New().String(), nil
}
