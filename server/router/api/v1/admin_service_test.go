package v1

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/communitymap/communitymap/internal/profile"
)

func newTestAPIService(t *testing.T) *APIV1Service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	testProfile := &profile.Profile{
		Mode:              "dev",
		AdminPasswordHash: string(hash),
		InstanceURL:       "http://localhost:8230",
	}
	return NewAPIV1Service("test-secret", testProfile, nil)
}

func doLogin(t *testing.T, svc *APIV1Service, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, svc.login(e.NewContext(req, rec)))
	return rec
}

func TestLogin(t *testing.T) {
	svc := newTestAPIService(t)

	rec := doLogin(t, svc, `{"password":"hunter2"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.NotEmpty(t, body.Data.Token)

	rec = doLogin(t, svc, `{"password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginDisabledWithoutPasswordHash(t *testing.T) {
	svc := NewAPIV1Service("test-secret", &profile.Profile{Mode: "dev"}, nil)
	rec := doLogin(t, svc, `{"password":"anything"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	svc := newTestAPIService(t)
	e := echo.New()
	handler := svc.requireAdmin(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	// Valid token from login passes through.
	rec := doLogin(t, svc, `{"password":"hunter2"}`)
	var body struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+body.Data.Token)
	rec = httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	// Missing header is rejected.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats", nil)
	rec = httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Garbage token is rejected.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-jwt")
	rec = httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
