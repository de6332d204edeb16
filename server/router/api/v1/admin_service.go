package v1

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v4"
	"golang.org/x/crypto/bcrypt"

	apierrors "github.com/communitymap/communitymap/server/internal/errors"
	"github.com/communitymap/communitymap/server/internal/observability"
	"github.com/communitymap/communitymap/server/service/hours"
	"github.com/communitymap/communitymap/store"
)

const (
	// adminTokenDuration is the lifetime of an issued admin token.
	adminTokenDuration = 24 * time.Hour
	adminSubject       = "admin"
)

type loginRequest struct {
	Password string `json:"password"`
}

func (s *APIV1Service) login(c echo.Context) error {
	if !s.Profile.IsAdminEnabled() {
		return errorResponse(c, apierrors.Unauthorized("admin access is not configured"))
	}

	var request loginRequest
	if err := c.Bind(&request); err != nil {
		return errorResponse(c, apierrors.InvalidArgument("malformed request body"))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.Profile.AdminPasswordHash), []byte(request.Password)); err != nil {
		return errorResponse(c, apierrors.Unauthorized("invalid password"))
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   adminSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(adminTokenDuration)),
	})
	signed, err := token.SignedString([]byte(s.Secret))
	if err != nil {
		return errorResponse(c, apierrors.Internal("failed to sign token", err))
	}
	return okResponse(c, map[string]any{
		"token":     signed,
		"expiresAt": now.Add(adminTokenDuration).Unix(),
	})
}

// requireAdmin verifies the bearer token issued by login.
func (s *APIV1Service) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			return errorResponse(c, apierrors.Unauthorized("missing bearer token"))
		}

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, apierrors.Unauthorized("unexpected signing method")
			}
			return []byte(s.Secret), nil
		})
		if err != nil || !token.Valid || claims.Subject != adminSubject {
			return errorResponse(c, apierrors.Unauthorized("invalid or expired token"))
		}
		return next(c)
	}
}

type upsertResourceRequest struct {
	Name         string         `json:"name"`
	Category     string         `json:"category"`
	Type         *string        `json:"type"`
	Address      *string        `json:"address"`
	Lat          *float64       `json:"lat"`
	Lng          *float64       `json:"lng"`
	Phone        *string        `json:"phone"`
	Website      *string        `json:"website"`
	Schedule     hours.Schedule `json:"schedule"`
	Offerings    []string       `json:"offerings"`
	Requirements []string       `json:"requirements"`
}

func (s *APIV1Service) createResource(c echo.Context) error {
	var request upsertResourceRequest
	if err := c.Bind(&request); err != nil {
		return errorResponse(c, apierrors.InvalidArgument("malformed request body"))
	}

	request.Name = strings.TrimSpace(request.Name)
	if request.Name == "" {
		return errorResponse(c, apierrors.InvalidArgument("name is required"))
	}
	if !store.IsValidCategory(request.Category) {
		return errorResponse(c, apierrors.InvalidArgumentf("invalid category: %s", request.Category))
	}
	if request.Lat == nil || request.Lng == nil {
		return errorResponse(c, apierrors.InvalidArgument("lat and lng are required"))
	}
	if *request.Lat < -90 || *request.Lat > 90 || *request.Lng < -180 || *request.Lng > 180 {
		return errorResponse(c, apierrors.InvalidArgument("coordinates out of range"))
	}

	create := &store.Resource{
		UID:          shortuuid.New(),
		Name:         request.Name,
		Category:     store.Category(request.Category),
		Lat:          *request.Lat,
		Lng:          *request.Lng,
		Schedule:     request.Schedule,
		Offerings:    request.Offerings,
		Requirements: request.Requirements,
	}
	if request.Type != nil {
		create.Type = *request.Type
	}
	if request.Address != nil {
		create.Address = *request.Address
	}
	if request.Phone != nil {
		create.Phone = *request.Phone
	}
	if request.Website != nil {
		create.Website = *request.Website
	}

	resource, err := s.Store.CreateResource(c.Request().Context(), create)
	if err != nil {
		return errorResponse(c, apierrors.Internal("failed to create resource", err))
	}
	return okResponse(c, convertResource(resource))
}

func (s *APIV1Service) updateResource(c echo.Context) error {
	ctx := c.Request().Context()
	existing, err := s.ResourceService.GetResourceByUID(ctx, c.Param("uid"))
	if err != nil {
		return errorResponse(c, err)
	}

	var request upsertResourceRequest
	if err := c.Bind(&request); err != nil {
		return errorResponse(c, apierrors.InvalidArgument("malformed request body"))
	}

	update := &store.UpdateResource{ID: existing.ID}
	if name := strings.TrimSpace(request.Name); name != "" {
		update.Name = &name
	}
	if request.Category != "" {
		if !store.IsValidCategory(request.Category) {
			return errorResponse(c, apierrors.InvalidArgumentf("invalid category: %s", request.Category))
		}
		category := store.Category(request.Category)
		update.Category = &category
	}
	if request.Lat != nil {
		if *request.Lat < -90 || *request.Lat > 90 {
			return errorResponse(c, apierrors.InvalidArgument("latitude out of range"))
		}
		update.Lat = request.Lat
	}
	if request.Lng != nil {
		if *request.Lng < -180 || *request.Lng > 180 {
			return errorResponse(c, apierrors.InvalidArgument("longitude out of range"))
		}
		update.Lng = request.Lng
	}
	update.Type = request.Type
	update.Address = request.Address
	update.Phone = request.Phone
	update.Website = request.Website
	if request.Schedule != nil {
		update.Schedule = &request.Schedule
	}
	if request.Offerings != nil {
		update.Offerings = &request.Offerings
	}
	if request.Requirements != nil {
		update.Requirements = &request.Requirements
	}

	if err := s.Store.UpdateResource(ctx, update); err != nil {
		return errorResponse(c, apierrors.Internal("failed to update resource", err))
	}

	updated, err := s.ResourceService.GetResourceByUID(ctx, existing.UID)
	if err != nil {
		return errorResponse(c, err)
	}
	return okResponse(c, convertResource(updated))
}

func (s *APIV1Service) deleteResource(c echo.Context) error {
	ctx := c.Request().Context()
	existing, err := s.ResourceService.GetResourceByUID(ctx, c.Param("uid"))
	if err != nil {
		return errorResponse(c, err)
	}

	if err := s.Store.DeleteResource(ctx, &store.DeleteResource{ID: existing.ID}); err != nil {
		return errorResponse(c, apierrors.Internal("failed to delete resource", err))
	}
	return okResponse(c, map[string]any{"uid": existing.UID})
}

func (s *APIV1Service) verifyResource(c echo.Context) error {
	ctx := c.Request().Context()
	existing, err := s.ResourceService.GetResourceByUID(ctx, c.Param("uid"))
	if err != nil {
		return errorResponse(c, err)
	}

	verified := true
	if err := s.Store.UpdateResource(ctx, &store.UpdateResource{
		ID:       existing.ID,
		Verified: &verified,
	}); err != nil {
		return errorResponse(c, apierrors.Internal("failed to verify resource", err))
	}
	return okResponse(c, map[string]any{"uid": existing.UID, "verified": true})
}

func (s *APIV1Service) getStats(c echo.Context) error {
	snapshot := observability.GlobalMetrics().Snapshot()
	response := map[string]any{
		"requests":    snapshot,
		"successRate": snapshot.SuccessRate(),
	}
	if s.StatsCollector != nil {
		response["directory"] = s.StatsCollector.GetStats()
	}
	return okResponse(c, response)
}
