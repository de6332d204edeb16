package store

import (
	"context"

	"github.com/communitymap/communitymap/server/service/hours"
)

// RowStatus is the lifecycle status of a stored row.
type RowStatus string

const (
	// Normal is the status for a visible row.
	Normal RowStatus = "NORMAL"
	// Archived is the status for a soft-deleted row.
	Archived RowStatus = "ARCHIVED"
)

// Category is the top-level grouping of a resource.
type Category string

const (
	CategoryFood      Category = "food"
	CategoryShelter   Category = "shelter"
	CategoryHealth    Category = "health"
	CategoryEducation Category = "education"
)

// Categories lists every valid resource category.
var Categories = []Category{CategoryFood, CategoryShelter, CategoryHealth, CategoryEducation}

// IsValidCategory reports whether s names a known category.
func IsValidCategory(s string) bool {
	for _, c := range Categories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// Resource is the object representing a community resource (food bank,
// shelter, clinic, ...). Schedule, Offerings and Requirements are persisted
// as JSON columns.
type Resource struct {
	ID           int32
	UID          string
	RowStatus    RowStatus
	CreatedTs    int64
	UpdatedTs    int64
	Name         string
	Category     Category
	Type         string
	Address      string
	Lat          float64
	Lng          float64
	Phone        string
	Website      string
	Schedule     hours.Schedule
	Offerings    []string
	Requirements []string
	Verified     bool
}

// FindResource is the find condition for resources.
type FindResource struct {
	ID        *int32
	UID       *string
	RowStatus *RowStatus
	Category  *Category

	// Bounding box filter (all four must be set together).
	North *float64
	South *float64
	East  *float64
	West  *float64

	// Search matches name and address, case-insensitively.
	Search *string

	Limit  *int
	Offset *int
}

// UpdateResource is the update request for a resource. Nil fields are left
// untouched.
type UpdateResource struct {
	ID           int32
	RowStatus    *RowStatus
	Name         *string
	Category     *Category
	Type         *string
	Address      *string
	Lat          *float64
	Lng          *float64
	Phone        *string
	Website      *string
	Schedule     *hours.Schedule
	Offerings    *[]string
	Requirements *[]string
	Verified     *bool
}

// DeleteResource is the delete request for a resource.
type DeleteResource struct {
	ID int32
}

// CreateResource creates a new resource.
func (s *Store) CreateResource(ctx context.Context, create *Resource) (*Resource, error) {
	resource, err := s.driver.CreateResource(ctx, create)
	if err != nil {
		return nil, err
	}
	s.resourceCache.Clear(ctx)
	return resource, nil
}

// ListResources lists resources matching the find condition.
func (s *Store) ListResources(ctx context.Context, find *FindResource) ([]*Resource, error) {
	return s.driver.ListResources(ctx, find)
}

// GetResource returns the first resource matching the find condition, or nil.
func (s *Store) GetResource(ctx context.Context, find *FindResource) (*Resource, error) {
	if find.UID != nil {
		if cached, ok := s.resourceCache.Get(ctx, *find.UID); ok {
			if resource, ok := cached.(*Resource); ok {
				return resource, nil
			}
		}
	}

	list, err := s.driver.ListResources(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	resource := list[0]
	s.resourceCache.Set(ctx, resource.UID, resource)
	return resource, nil
}

// UpdateResource updates a resource.
func (s *Store) UpdateResource(ctx context.Context, update *UpdateResource) error {
	if err := s.driver.UpdateResource(ctx, update); err != nil {
		return err
	}
	s.resourceCache.Clear(ctx)
	return nil
}

// DeleteResource deletes a resource and its comments.
func (s *Store) DeleteResource(ctx context.Context, delete *DeleteResource) error {
	if err := s.driver.DeleteResource(ctx, delete); err != nil {
		return err
	}
	s.resourceCache.Clear(ctx)
	return nil
}
