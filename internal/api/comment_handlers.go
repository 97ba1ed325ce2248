package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/service"
)

func (s *Server) registerCommentRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "addComment",
		Method:        http.MethodPost,
		Path:          "/add_comment",
		Summary:       "Add comment",
		Description:   "Creates a comment on a review. The author's username is copied onto the comment at creation time.",
		Tags:          []string{"Comments"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleAddComment)

	huma.Register(s.api, huma.Operation{
		OperationID: "editComment",
		Method:      http.MethodPut,
		Path:        "/edit_comment/{id}",
		Summary:     "Edit comment",
		Description: "Replaces a comment's content. Only the author or an admin may do this.",
		Tags:        []string{"Comments"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleEditComment)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteComment",
		Method:      http.MethodDelete,
		Path:        "/delete_comment/{id}",
		Summary:     "Delete comment",
		Description: "Removes a comment. Only the author or an admin may do this.",
		Tags:        []string{"Comments"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteComment)
}

// === DTOs ===

// AddCommentRequest is the request body for creating a comment.
type AddCommentRequest struct {
	ReviewID int64  `json:"review_id" validate:"required" doc:"Review being commented on"`
	Content  string `json:"content" validate:"required,max=5000" doc:"Comment text"`
}

// AddCommentInput wraps the add comment request for Huma.
type AddCommentInput struct {
	Body AddCommentRequest
}

// EditCommentRequest is the request body for editing a comment.
type EditCommentRequest struct {
	Content string `json:"content" validate:"required,max=5000" doc:"Replacement comment text"`
}

// EditCommentInput wraps the edit comment request for Huma.
type EditCommentInput struct {
	ID   int64 `path:"id" doc:"Comment ID"`
	Body EditCommentRequest
}

// DeleteCommentInput contains parameters for deleting a comment.
type DeleteCommentInput struct {
	ID int64 `path:"id" doc:"Comment ID"`
}

// CommentResponse contains comment data in API responses. Username is the
// creation-time snapshot, not the live value.
type CommentResponse struct {
	ID          int64     `json:"id" doc:"Comment ID"`
	Content     string    `json:"content" doc:"Comment text"`
	DateCreated time.Time `json:"date_created" doc:"Creation timestamp"`
	Username    string    `json:"username" doc:"Author's username at creation time"`
	UserID      int64     `json:"user_id" doc:"Author's user ID"`
	ReviewID    int64     `json:"review_id" doc:"Parent review ID"`
}

// CommentOutput wraps the comment response for Huma.
type CommentOutput struct {
	Body CommentResponse
}

// === Handlers ===

func (s *Server) handleAddComment(ctx context.Context, input *AddCommentInput) (*CommentOutput, error) {
	user, err := GetAuthUser(ctx)
	if err != nil {
		return nil, err
	}

	comment, err := s.services.Comment.CreateComment(ctx, user, service.CreateCommentRequest{
		ReviewID: input.Body.ReviewID,
		Content:  input.Body.Content,
	})
	if err != nil {
		return nil, err
	}

	return &CommentOutput{Body: mapCommentResponse(comment)}, nil
}

func (s *Server) handleEditComment(ctx context.Context, input *EditCommentInput) (*CommentOutput, error) {
	user, err := GetAuthUser(ctx)
	if err != nil {
		return nil, err
	}

	comment, err := s.services.Comment.UpdateComment(ctx, user, input.ID, service.UpdateCommentRequest{
		Content: input.Body.Content,
	})
	if err != nil {
		return nil, err
	}

	return &CommentOutput{Body: mapCommentResponse(comment)}, nil
}

func (s *Server) handleDeleteComment(ctx context.Context, input *DeleteCommentInput) (*MessageOutput, error) {
	user, err := GetAuthUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Comment.DeleteComment(ctx, user, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Comment deleted"}}, nil
}

// === Helpers ===

func mapCommentResponse(comment *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:          comment.ID,
		Content:     comment.Content,
		DateCreated: comment.DateCreated,
		Username:    comment.Username,
		UserID:      comment.UserID,
		ReviewID:    comment.ReviewID,
	}
}
