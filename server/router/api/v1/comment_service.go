package v1

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	apierrors "github.com/communitymap/communitymap/server/internal/errors"
	"github.com/communitymap/communitymap/store"
)

const (
	maxCommentAuthorLength  = 100
	maxCommentContentLength = 1000
)

type commentResponse struct {
	ID          int32  `json:"id"`
	ResourceUID string `json:"resourceUid,omitempty"`
	Author      string `json:"author"`
	Content     string `json:"content"`
	ContentHTML string `json:"contentHtml"`
	Status      string `json:"status"`
	CreatedTs   int64  `json:"createdTs"`
}

type createCommentRequest struct {
	ResourceUID string `json:"resourceUid"`
	Author      string `json:"author"`
	Content     string `json:"content"`
}

func (s *APIV1Service) convertComment(comment *store.Comment) *commentResponse {
	var buf bytes.Buffer
	html := comment.Content
	if err := s.markdown.Convert([]byte(comment.Content), &buf); err == nil {
		html = buf.String()
	}
	return &commentResponse{
		ID:          comment.ID,
		Author:      comment.Author,
		Content:     comment.Content,
		ContentHTML: html,
		Status:      string(comment.Status),
		CreatedTs:   comment.CreatedTs,
	}
}

func (s *APIV1Service) listResourceComments(c echo.Context) error {
	ctx := c.Request().Context()
	resource, err := s.ResourceService.GetResourceByUID(ctx, c.Param("uid"))
	if err != nil {
		return errorResponse(c, err)
	}

	approved := store.CommentApproved
	comments, err := s.Store.ListComments(ctx, &store.FindComment{
		ResourceID: &resource.ID,
		Status:     &approved,
	})
	if err != nil {
		return errorResponse(c, apierrors.Internal("failed to list comments", err))
	}

	responses := make([]*commentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, s.convertComment(comment))
	}
	return okResponse(c, responses)
}

func (s *APIV1Service) createComment(c echo.Context) error {
	var request createCommentRequest
	if err := c.Bind(&request); err != nil {
		return errorResponse(c, apierrors.InvalidArgument("malformed request body"))
	}

	request.Author = strings.TrimSpace(request.Author)
	request.Content = strings.TrimSpace(request.Content)
	if request.Content == "" {
		return errorResponse(c, apierrors.InvalidArgument("content is required"))
	}
	if len(request.Content) > maxCommentContentLength {
		return errorResponse(c, apierrors.InvalidArgumentf("content too long (max %d characters)", maxCommentContentLength))
	}
	if len(request.Author) > maxCommentAuthorLength {
		return errorResponse(c, apierrors.InvalidArgumentf("author too long (max %d characters)", maxCommentAuthorLength))
	}
	if request.Author == "" {
		request.Author = "Anonymous"
	}

	ctx := c.Request().Context()
	resource, err := s.ResourceService.GetResourceByUID(ctx, request.ResourceUID)
	if err != nil {
		return errorResponse(c, err)
	}

	comment, err := s.Store.CreateComment(ctx, &store.Comment{
		ResourceID: resource.ID,
		Author:     request.Author,
		Content:    request.Content,
		Status:     store.CommentPending,
	})
	if err != nil {
		return errorResponse(c, apierrors.Internal("failed to create comment", err))
	}

	response := s.convertComment(comment)
	response.ResourceUID = resource.UID
	return okResponse(c, response)
}

func (s *APIV1Service) listPendingComments(c echo.Context) error {
	pending := store.CommentPending
	comments, err := s.Store.ListComments(c.Request().Context(), &store.FindComment{Status: &pending})
	if err != nil {
		return errorResponse(c, apierrors.Internal("failed to list comments", err))
	}

	responses := make([]*commentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, s.convertComment(comment))
	}
	return okResponse(c, responses)
}

type moderateCommentRequest struct {
	Status string `json:"status"`
}

func (s *APIV1Service) moderateComment(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return errorResponse(c, apierrors.InvalidArgument("invalid comment id"))
	}

	var request moderateCommentRequest
	if err := c.Bind(&request); err != nil {
		return errorResponse(c, apierrors.InvalidArgument("malformed request body"))
	}
	status := store.CommentStatus(request.Status)
	if status != store.CommentApproved && status != store.CommentPending {
		return errorResponse(c, apierrors.InvalidArgumentf("invalid status: %s", request.Status))
	}

	if err := s.Store.UpdateComment(c.Request().Context(), &store.UpdateComment{
		ID:     int32(id),
		Status: &status,
	}); err != nil {
		return errorResponse(c, apierrors.Internal("failed to update comment", err))
	}
	return okResponse(c, map[string]any{"id": id, "status": string(status)})
}

func (s *APIV1Service) deleteComment(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return errorResponse(c, apierrors.InvalidArgument("invalid comment id"))
	}

	if err := s.Store.DeleteComment(c.Request().Context(), &store.DeleteComment{ID: int32(id)}); err != nil {
		return errorResponse(c, apierrors.Internal("failed to delete comment", err))
	}
	return okResponse(c, map[string]any{"id": id})
}
