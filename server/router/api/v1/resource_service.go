package v1

import (
	"strconv"

	"github.com/labstack/echo/v4"

	apierrors "github.com/communitymap/communitymap/server/internal/errors"
	"github.com/communitymap/communitymap/server/service/hours"
	"github.com/communitymap/communitymap/server/service/resource"
	"github.com/communitymap/communitymap/store"
)

// resourceResponse is the wire shape of a resource, including its computed
// open/closed status at serving time.
type resourceResponse struct {
	UID          string         `json:"uid"`
	Name         string         `json:"name"`
	Category     string         `json:"category"`
	Type         string         `json:"type"`
	Address      string         `json:"address"`
	Lat          float64        `json:"lat"`
	Lng          float64        `json:"lng"`
	Phone        string         `json:"phone"`
	Website      string         `json:"website"`
	Schedule     hours.Schedule `json:"schedule"`
	Offerings    []string       `json:"offerings"`
	Requirements []string       `json:"requirements"`
	Verified     bool           `json:"verified"`
	Status       hours.Status   `json:"status"`
	CreatedTs    int64          `json:"createdTs"`
	UpdatedTs    int64          `json:"updatedTs"`
}

func convertResource(r *store.Resource) *resourceResponse {
	return &resourceResponse{
		UID:          r.UID,
		Name:         r.Name,
		Category:     string(r.Category),
		Type:         r.Type,
		Address:      r.Address,
		Lat:          r.Lat,
		Lng:          r.Lng,
		Phone:        r.Phone,
		Website:      r.Website,
		Schedule:     r.Schedule,
		Offerings:    r.Offerings,
		Requirements: r.Requirements,
		Verified:     r.Verified,
		Status:       hours.GetStatus(r.Schedule),
		CreatedTs:    r.CreatedTs,
		UpdatedTs:    r.UpdatedTs,
	}
}

func (s *APIV1Service) listResources(c echo.Context) error {
	request := &resource.ListRequest{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		OpenNow:  c.QueryParam("openNow") == "true",
	}

	for param, target := range map[string]**float64{
		"north": &request.North,
		"south": &request.South,
		"east":  &request.East,
		"west":  &request.West,
		"lat":   &request.Lat,
		"lng":   &request.Lng,
	} {
		raw := c.QueryParam(param)
		if raw == "" {
			continue
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return errorResponse(c, apierrors.InvalidArgumentf("invalid %s: %s", param, raw))
		}
		*target = &value
	}

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return errorResponse(c, apierrors.InvalidArgumentf("invalid limit: %s", raw))
		}
		request.Limit = limit
	}

	list, err := s.ResourceService.ListResources(c.Request().Context(), request)
	if err != nil {
		return errorResponse(c, err)
	}

	responses := make([]*resourceResponse, 0, len(list))
	for _, r := range list {
		responses = append(responses, convertResource(r))
	}
	return okResponse(c, responses)
}

func (s *APIV1Service) getResource(c echo.Context) error {
	r, err := s.ResourceService.GetResourceByUID(c.Request().Context(), c.Param("uid"))
	if err != nil {
		return errorResponse(c, err)
	}
	return okResponse(c, convertResource(r))
}
