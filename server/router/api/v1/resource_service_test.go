package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/communitymap/communitymap/server/service/hours"
	"github.com/communitymap/communitymap/server/service/resource"
	"github.com/communitymap/communitymap/store"
)

// fakeResourceService records the last request and returns a fixed list.
type fakeResourceService struct {
	lastRequest *resource.ListRequest
	resources   []*store.Resource
}

func (f *fakeResourceService) ListResources(_ context.Context, request *resource.ListRequest) ([]*store.Resource, error) {
	f.lastRequest = request
	return f.resources, nil
}

func (f *fakeResourceService) GetResourceByUID(_ context.Context, uid string) (*store.Resource, error) {
	for _, r := range f.resources {
		if r.UID == uid {
			return r, nil
		}
	}
	return nil, echo.ErrNotFound
}

func TestListResourcesHandler(t *testing.T) {
	svc := newTestAPIService(t)
	fake := &fakeResourceService{
		resources: []*store.Resource{
			{
				UID: "abc", Name: "Mission Food Bank", Category: store.CategoryFood,
				Schedule: hours.Schedule{"monday": "9:00-17:00"},
			},
		},
	}
	svc.ResourceService = fake

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/resources?category=food&openNow=true&lat=37.76&lng=-122.41", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, svc.listResources(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, fake.lastRequest)
	require.Equal(t, "food", fake.lastRequest.Category)
	require.True(t, fake.lastRequest.OpenNow)
	require.NotNil(t, fake.lastRequest.Lat)
	require.InDelta(t, 37.76, *fake.lastRequest.Lat, 1e-9)

	var body struct {
		Success bool `json:"success"`
		Data    []struct {
			UID    string       `json:"uid"`
			Name   string       `json:"name"`
			Status hours.Status `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.Len(t, body.Data, 1)
	require.Equal(t, "abc", body.Data[0].UID)
	require.NotEmpty(t, body.Data[0].Status.Text)
}

func TestListResourcesHandlerRejectsBadParams(t *testing.T) {
	svc := newTestAPIService(t)
	svc.ResourceService = &fakeResourceService{}
	e := echo.New()

	for _, target := range []string{
		"/api/v1/resources?north=abc",
		"/api/v1/resources?limit=-1",
		"/api/v1/resources?limit=ten",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		require.NoError(t, svc.listResources(e.NewContext(req, rec)))
		require.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestConvertCommentRendersMarkdown(t *testing.T) {
	svc := newTestAPIService(t)
	response := svc.convertComment(&store.Comment{
		ID:      1,
		Author:  "sam",
		Content: "They were **very** helpful",
		Status:  store.CommentApproved,
	})
	require.Contains(t, response.ContentHTML, "<strong>very</strong>")
	require.Equal(t, "They were **very** helpful", response.Content)
}
