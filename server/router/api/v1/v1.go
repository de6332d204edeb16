// Package v1 exposes the REST JSON API: public resource listing and lookup
// with computed open/closed status, comments, and the authenticated admin
// surface for editing the directory.
package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/communitymap/communitymap/internal/profile"
	apierrors "github.com/communitymap/communitymap/server/internal/errors"
	"github.com/communitymap/communitymap/server/middleware"
	"github.com/communitymap/communitymap/server/service/resource"
	"github.com/communitymap/communitymap/server/stats"
	"github.com/communitymap/communitymap/store"
)

// APIV1Service holds the dependencies of the v1 REST handlers.
type APIV1Service struct {
	Secret          string
	Profile         *profile.Profile
	Store           *store.Store
	ResourceService resource.Service
	StatsCollector  *stats.Collector

	markdown    goldmark.Markdown
	rateLimiter *middleware.RateLimiter
}

// NewAPIV1Service creates a new API v1 service.
func NewAPIV1Service(secret string, profile *profile.Profile, store *store.Store) *APIV1Service {
	return &APIV1Service{
		Secret:          secret,
		Profile:         profile,
		Store:           store,
		ResourceService: resource.NewService(store),
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.Linkify),
		),
		rateLimiter: middleware.NewRateLimiter(middleware.DefaultRequestsPerMinute, middleware.DefaultBurst),
	}
}

// Register registers the v1 routes with the given echo instance.
func (s *APIV1Service) Register(echoServer *echo.Echo) {
	rateLimited := middleware.RateLimit(s.rateLimiter)

	apiGroup := echoServer.Group("/api/v1", rateLimited)
	apiGroup.GET("/resources", s.listResources)
	apiGroup.GET("/resources/:uid", s.getResource)
	apiGroup.GET("/resources/:uid/comments", s.listResourceComments)
	apiGroup.POST("/comments", s.createComment)
	apiGroup.POST("/auth/login", s.login)

	adminGroup := apiGroup.Group("/admin", s.requireAdmin)
	adminGroup.POST("/resources", s.createResource)
	adminGroup.PATCH("/resources/:uid", s.updateResource)
	adminGroup.DELETE("/resources/:uid", s.deleteResource)
	adminGroup.POST("/resources/:uid/verify", s.verifyResource)
	adminGroup.GET("/comments", s.listPendingComments)
	adminGroup.PATCH("/comments/:id", s.moderateComment)
	adminGroup.DELETE("/comments/:id", s.deleteComment)
	adminGroup.GET("/stats", s.getStats)

	echoServer.GET("/feed.rss", s.getFeed, rateLimited)
}

// okResponse is the envelope for successful responses.
func okResponse(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"data":    data,
	})
}

// errorResponse maps a service error to its HTTP status and JSON body.
func errorResponse(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	message := "internal server error"
	if serviceErr, ok := err.(*apierrors.ServiceError); ok {
		status = serviceErr.HTTPStatus()
		message = serviceErr.Message
	}
	return c.JSON(status, map[string]any{
		"success": false,
		"error":   message,
	})
}
