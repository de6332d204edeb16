package resource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apierrors "github.com/communitymap/communitymap/server/internal/errors"
	"github.com/communitymap/communitymap/server/service/hours"
	"github.com/communitymap/communitymap/store"
)

// fakeStore serves a fixed resource list and applies the subset of find
// conditions the service relies on.
type fakeStore struct {
	resources []*store.Resource
}

func (f *fakeStore) ListResources(_ context.Context, find *store.FindResource) ([]*store.Resource, error) {
	list := make([]*store.Resource, 0, len(f.resources))
	for _, r := range f.resources {
		if find.Category != nil && r.Category != *find.Category {
			continue
		}
		if find.UID != nil && r.UID != *find.UID {
			continue
		}
		if find.North != nil {
			if r.Lat < *find.South || r.Lat > *find.North || r.Lng < *find.West || r.Lng > *find.East {
				continue
			}
		}
		list = append(list, r)
	}
	return list, nil
}

func (f *fakeStore) GetResource(ctx context.Context, find *store.FindResource) (*store.Resource, error) {
	list, err := f.ListResources(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func newTestService() (Service, *fakeStore) {
	fs := &fakeStore{
		resources: []*store.Resource{
			{
				ID: 1, UID: "food-bank", Name: "Mission Food Bank", Category: store.CategoryFood,
				Lat: 37.7589, Lng: -122.4096,
				Schedule: hours.Schedule{"monday": "9:00-12:00"},
			},
			{
				ID: 2, UID: "shelter", Name: "Harbor Shelter", Category: store.CategoryShelter,
				Lat: 37.7962, Lng: -122.2730,
				Schedule: hours.Schedule{
					"monday": "open 24 hours", "tuesday": "open 24 hours", "wednesday": "open 24 hours",
					"thursday": "open 24 hours", "friday": "open 24 hours",
					"saturday": "open 24 hours", "sunday": "open 24 hours",
				},
			},
			{
				ID: 3, UID: "clinic", Name: "Bayview Clinic", Category: store.CategoryHealth,
				Lat: 37.7190, Lng: -122.4520,
				Schedule: hours.Schedule{"monday": "by appointment"},
			},
		},
	}
	return NewService(fs), fs
}

func TestListResourcesCategoryFilter(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	list, err := svc.ListResources(ctx, &ListRequest{Category: "food"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Mission Food Bank", list[0].Name)

	list, err = svc.ListResources(ctx, &ListRequest{Category: "all"})
	require.NoError(t, err)
	require.Len(t, list, 3)

	_, err = svc.ListResources(ctx, &ListRequest{Category: "laundry"})
	require.Error(t, err)
	require.True(t, apierrors.IsCode(err, apierrors.ErrCodeInvalidArgument))
}

func TestListResourcesOpenNow(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	// Monday 10:00, inside the food bank window and the 24h shelter.
	monday10 := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	list, err := svc.ListResources(ctx, &ListRequest{OpenNow: true, Now: monday10})
	require.NoError(t, err)
	require.Len(t, list, 2)

	// Monday 13:00, only the shelter remains.
	monday13 := time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC)
	list, err = svc.ListResources(ctx, &ListRequest{OpenNow: true, Now: monday13})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Harbor Shelter", list[0].Name)
}

func TestListResourcesDistanceOrdering(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	// Reference point in the Mission district, closest to the food bank.
	lat, lng := 37.76, -122.41
	list, err := svc.ListResources(ctx, &ListRequest{Lat: &lat, Lng: &lng})
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "Mission Food Bank", list[0].Name)

	_, err = svc.ListResources(ctx, &ListRequest{Lat: &lat})
	require.Error(t, err)
	require.True(t, apierrors.IsCode(err, apierrors.ErrCodeInvalidArgument))
}

func TestListResourcesBoundingBox(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	north, south := 37.80, 37.75
	east, west := -122.40, -122.42
	list, err := svc.ListResources(ctx, &ListRequest{
		North: &north, South: &south, East: &east, West: &west,
	})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Mission Food Bank", list[0].Name)

	// Partial box is rejected.
	_, err = svc.ListResources(ctx, &ListRequest{North: &north, South: &south})
	require.Error(t, err)

	// Inverted bounds are rejected.
	_, err = svc.ListResources(ctx, &ListRequest{
		North: &south, South: &north, East: &east, West: &west,
	})
	require.Error(t, err)

	// Out-of-range latitude is rejected.
	badNorth := 95.0
	_, err = svc.ListResources(ctx, &ListRequest{
		North: &badNorth, South: &south, East: &east, West: &west,
	})
	require.Error(t, err)
}

func TestListResourcesSearchValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	long := make([]byte, MaxSearchLength+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err := svc.ListResources(ctx, &ListRequest{Search: string(long)})
	require.Error(t, err)
	require.True(t, apierrors.IsCode(err, apierrors.ErrCodeInvalidArgument))

	_, err = svc.ListResources(ctx, &ListRequest{Search: `<">'`})
	require.Error(t, err)
}

func TestGetResourceByUID(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	resource, err := svc.GetResourceByUID(ctx, "clinic")
	require.NoError(t, err)
	require.Equal(t, "Bayview Clinic", resource.Name)

	_, err = svc.GetResourceByUID(ctx, "missing")
	require.Error(t, err)
	require.True(t, apierrors.IsCode(err, apierrors.ErrCodeNotFound))

	_, err = svc.GetResourceByUID(ctx, "")
	require.Error(t, err)
	require.True(t, apierrors.IsCode(err, apierrors.ErrCodeInvalidArgument))
}

func TestSanitizeSearch(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  food bank  ", "food bank"},
		{"so<u>p 'kitchen'", "soup kitchen"},
		{"a   b\t c", "a b c"},
		{`"quoted"`, "quoted"},
	}
	for _, tt := range tests {
		if got := SanitizeSearch(tt.in); got != tt.want {
			t.Errorf("SanitizeSearch(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDistance(t *testing.T) {
	// San Francisco to Oakland, roughly 13 km.
	d := Distance(37.7749, -122.4194, 37.8044, -122.2712)
	require.InDelta(t, 13.4, d, 1.0)

	require.InDelta(t, 0.0, Distance(37.0, -122.0, 37.0, -122.0), 1e-9)
}
