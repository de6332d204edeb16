package store

import "context"

// CommentStatus is the moderation state of a comment.
type CommentStatus string

const (
	// CommentPending is the state of a freshly submitted comment awaiting review.
	CommentPending CommentStatus = "PENDING"
	// CommentApproved is the state of a comment visible to the public.
	CommentApproved CommentStatus = "APPROVED"
)

// Comment is a public note attached to a resource.
type Comment struct {
	ID         int32
	ResourceID int32
	CreatedTs  int64
	Author     string
	Content    string
	Status     CommentStatus
}

// FindComment is the find condition for comments.
type FindComment struct {
	ID         *int32
	ResourceID *int32
	Status     *CommentStatus
	Limit      *int
	Offset     *int
}

// UpdateComment is the update request for a comment.
type UpdateComment struct {
	ID     int32
	Status *CommentStatus
}

// DeleteComment is the delete request for a comment.
type DeleteComment struct {
	ID int32
}

// CreateComment creates a new comment.
func (s *Store) CreateComment(ctx context.Context, create *Comment) (*Comment, error) {
	return s.driver.CreateComment(ctx, create)
}

// ListComments lists comments matching the find condition.
func (s *Store) ListComments(ctx context.Context, find *FindComment) ([]*Comment, error) {
	return s.driver.ListComments(ctx, find)
}

// GetComment returns the first comment matching the find condition, or nil.
func (s *Store) GetComment(ctx context.Context, find *FindComment) (*Comment, error) {
	list, err := s.driver.ListComments(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// UpdateComment updates a comment's moderation state.
func (s *Store) UpdateComment(ctx context.Context, update *UpdateComment) error {
	return s.driver.UpdateComment(ctx, update)
}

// DeleteComment deletes a comment.
func (s *Store) DeleteComment(ctx context.Context, delete *DeleteComment) error {
	return s.driver.DeleteComment(ctx, delete)
}
