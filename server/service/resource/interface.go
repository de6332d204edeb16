package resource

import (
	"context"

	"github.com/communitymap/communitymap/store"
)

// Service is the interface for resource listing and lookup operations.
type Service interface {
	// ListResources returns resources matching the request filters, ordered by
	// name, or by distance when a reference point is provided.
	ListResources(ctx context.Context, request *ListRequest) ([]*store.Resource, error)
	// GetResourceByUID returns the resource with the given UID, or a not-found
	// error.
	GetResourceByUID(ctx context.Context, uid string) (*store.Resource, error)
}

// Store is the interface for store operations needed by the resource service.
type Store interface {
	ListResources(ctx context.Context, find *store.FindResource) ([]*store.Resource, error)
	GetResource(ctx context.Context, find *store.FindResource) (*store.Resource, error)
}
