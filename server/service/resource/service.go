// Package resource implements the listing pipeline for community resources:
// filter validation, text search sanitization, bounding box checks, the
// open-now predicate, and distance ordering around a reference point.
package resource

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	apierrors "github.com/communitymap/communitymap/server/internal/errors"
	"github.com/communitymap/communitymap/server/service/hours"
	"github.com/communitymap/communitymap/store"
)

const (
	// MaxSearchLength is the maximum accepted length of a search term.
	MaxSearchLength = 100
	// DefaultListLimit caps the number of resources returned by a listing.
	DefaultListLimit = 200

	earthRadiusKm = 6371.0
)

// ListRequest carries the validated-at-the-edge filters for a listing.
// Pointer fields are optional.
type ListRequest struct {
	Category string
	Search   string

	// Bounding box. All four must be set together.
	North *float64
	South *float64
	East  *float64
	West  *float64

	// OpenNow keeps only resources whose schedule is open at Now.
	OpenNow bool
	// Now is the evaluation instant for OpenNow. Zero means time.Now().
	Now time.Time

	// Reference point for distance ordering.
	Lat *float64
	Lng *float64

	Limit int
}

type service struct {
	store Store
}

// NewService creates a new resource service.
func NewService(store Store) Service {
	return &service{store: store}
}

func (s *service) ListResources(ctx context.Context, request *ListRequest) ([]*store.Resource, error) {
	find, err := buildFind(request)
	if err != nil {
		return nil, err
	}

	list, err := s.store.ListResources(ctx, find)
	if err != nil {
		return nil, apierrors.Internal("failed to list resources", err)
	}

	if request.OpenNow {
		now := request.Now
		if now.IsZero() {
			now = time.Now()
		}
		open := list[:0]
		for _, r := range list {
			if hours.IsOpenAt(r.Schedule, now) {
				open = append(open, r)
			}
		}
		list = open
	}

	if request.Lat != nil && request.Lng != nil {
		sortByDistance(list, *request.Lat, *request.Lng)
	}

	limit := request.Limit
	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (s *service) GetResourceByUID(ctx context.Context, uid string) (*store.Resource, error) {
	if uid == "" {
		return nil, apierrors.InvalidArgument("uid is required")
	}
	normalStatus := store.Normal
	resource, err := s.store.GetResource(ctx, &store.FindResource{UID: &uid, RowStatus: &normalStatus})
	if err != nil {
		return nil, apierrors.Internal("failed to get resource", err)
	}
	if resource == nil {
		return nil, apierrors.NotFound("resource not found")
	}
	return resource, nil
}

// buildFind translates a ListRequest into a store find condition, rejecting
// invalid filters.
func buildFind(request *ListRequest) (*store.FindResource, error) {
	normalStatus := store.Normal
	find := &store.FindResource{RowStatus: &normalStatus}

	if request.Category != "" && request.Category != "all" {
		if !store.IsValidCategory(request.Category) {
			return nil, apierrors.InvalidArgumentf("invalid category: %s", request.Category)
		}
		category := store.Category(request.Category)
		find.Category = &category
	}

	if request.Search != "" {
		if len(request.Search) > MaxSearchLength {
			return nil, apierrors.InvalidArgumentf("search term too long (max %d characters)", MaxSearchLength)
		}
		sanitized := SanitizeSearch(request.Search)
		if sanitized == "" {
			return nil, apierrors.InvalidArgument("search term cannot be empty")
		}
		find.Search = &sanitized
	}

	boxFields := 0
	for _, v := range []*float64{request.North, request.South, request.East, request.West} {
		if v != nil {
			boxFields++
		}
	}
	if boxFields > 0 {
		if boxFields < 4 {
			return nil, apierrors.InvalidArgument("bounding box requires north, south, east and west")
		}
		if err := validateBounds(*request.North, *request.South, *request.East, *request.West); err != nil {
			return nil, err
		}
		find.North, find.South = request.North, request.South
		find.East, find.West = request.East, request.West
	}

	if request.Lat != nil || request.Lng != nil {
		if request.Lat == nil || request.Lng == nil {
			return nil, apierrors.InvalidArgument("distance ordering requires both lat and lng")
		}
		if *request.Lat < -90 || *request.Lat > 90 || *request.Lng < -180 || *request.Lng > 180 {
			return nil, apierrors.InvalidArgument("invalid reference coordinates")
		}
	}

	return find, nil
}

// SanitizeSearch normalizes a raw search term: trims, strips angle brackets
// and quotes, and collapses runs of whitespace.
func SanitizeSearch(search string) string {
	search = strings.TrimSpace(search)
	if len(search) > MaxSearchLength {
		search = search[:MaxSearchLength]
	}
	replacer := strings.NewReplacer("<", "", ">", "", "'", "", `"`, "")
	search = replacer.Replace(search)
	return strings.Join(strings.Fields(search), " ")
}

func validateBounds(north, south, east, west float64) error {
	if north < -90 || north > 90 || south < -90 || south > 90 {
		return apierrors.InvalidArgument("latitude must be between -90 and 90")
	}
	if east < -180 || east > 180 || west < -180 || west > 180 {
		return apierrors.InvalidArgument("longitude must be between -180 and 180")
	}
	if north <= south || east <= west {
		return apierrors.InvalidArgument("invalid coordinate bounds")
	}
	return nil
}

// Distance returns the great-circle distance in kilometers between two points.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// sortByDistance orders resources by distance from the reference point.
// The sort is stable so equidistant resources keep their name ordering.
func sortByDistance(list []*store.Resource, lat, lng float64) {
	sort.SliceStable(list, func(i, j int) bool {
		return Distance(lat, lng, list[i].Lat, list[i].Lng) <
			Distance(lat, lng, list[j].Lat, list[j].Lng)
	})
}
