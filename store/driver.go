package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	IsInitialized(ctx context.Context) (bool, error)

	// Resource model related methods.
	CreateResource(ctx context.Context, create *Resource) (*Resource, error)
	ListResources(ctx context.Context, find *FindResource) ([]*Resource, error)
	UpdateResource(ctx context.Context, update *UpdateResource) error
	DeleteResource(ctx context.Context, delete *DeleteResource) error

	// Comment model related methods.
	CreateComment(ctx context.Context, create *Comment) (*Comment, error)
	ListComments(ctx context.Context, find *FindComment) ([]*Comment, error)
	UpdateComment(ctx context.Context, update *UpdateComment) error
	DeleteComment(ctx context.Context, delete *DeleteComment) error
}
