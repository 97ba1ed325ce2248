package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	domainerrors "github.com/inkwellapp/inkwell-server/internal/errors"
	"github.com/inkwellapp/inkwell-server/internal/store"
)

// CommentService manages comments on reviews. Like reviews, comments
// snapshot the author's username at creation time.
type CommentService struct {
	store  store.Store
	logger *slog.Logger
}

// NewCommentService creates a new comment service.
func NewCommentService(store store.Store, logger *slog.Logger) *CommentService {
	return &CommentService{
		store:  store,
		logger: logger,
	}
}

// CreateCommentRequest contains the data for a new comment.
type CreateCommentRequest struct {
	ReviewID int64  `json:"review_id" validate:"required"`
	Content  string `json:"content" validate:"required,max=5000"`
}

// UpdateCommentRequest replaces a comment's content.
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,max=5000"`
}

// CreateComment adds a comment to a review on behalf of the given user.
func (s *CommentService) CreateComment(ctx context.Context, user *domain.User, req CreateCommentRequest) (*domain.Comment, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	// Verify the review exists before writing.
	if _, err := s.store.GetReview(ctx, req.ReviewID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("review does not exist")
		}
		return nil, fmt.Errorf("get review: %w", err)
	}

	comment := &domain.Comment{
		Content:     req.Content,
		DateCreated: time.Now().UTC(),
		Username:    user.Username, // snapshot
		UserID:      user.ID,
		ReviewID:    req.ReviewID,
	}

	if err := s.store.CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	comment.OwnerEmail = user.Email

	s.logger.Info("comment created",
		"comment_id", comment.ID,
		"review_id", comment.ReviewID,
		"user_id", user.ID,
	)

	return comment, nil
}

// GetComment retrieves a single comment.
func (s *CommentService) GetComment(ctx context.Context, id int64) (*domain.Comment, error) {
	comment, err := s.store.GetComment(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("comment does not exist")
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return comment, nil
}

// UpdateComment replaces a comment's content. Owner-or-admin only;
// existence is checked before the ownership guard.
func (s *CommentService) UpdateComment(ctx context.Context, user *domain.User, id int64, req UpdateCommentRequest) (*domain.Comment, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	comment, err := s.store.GetComment(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("comment does not exist")
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}

	if !user.CanModerate(comment.OwnerEmail) {
		return nil, domainerrors.Unauthorized("you may only modify your own comments")
	}

	comment.Content = req.Content

	if err := s.store.UpdateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}

	s.logger.Info("comment updated", "comment_id", comment.ID, "by_user_id", user.ID)

	return comment, nil
}

// DeleteComment removes a comment. Owner-or-admin only.
func (s *CommentService) DeleteComment(ctx context.Context, user *domain.User, id int64) error {
	comment, err := s.store.GetComment(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("comment does not exist")
		}
		return fmt.Errorf("get comment: %w", err)
	}

	if !user.CanModerate(comment.OwnerEmail) {
		return domainerrors.Unauthorized("you may only delete your own comments")
	}

	if err := s.store.DeleteComment(ctx, id); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	s.logger.Info("comment deleted", "comment_id", id, "by_user_id", user.ID)

	return nil
}
