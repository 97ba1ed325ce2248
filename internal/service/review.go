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

// ReviewService manages book reviews. Reviews snapshot the author's
// username and the book's title at creation time; those snapshots never
// track later renames.
type ReviewService struct {
	store  store.Store
	logger *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(store store.Store, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		store:  store,
		logger: logger,
	}
}

// CreateReviewRequest contains the data for a new review.
type CreateReviewRequest struct {
	BookID  int64  `json:"book_id" validate:"required"`
	Content string `json:"content" validate:"required,max=10000"`
}

// UpdateReviewRequest replaces a review's record wholesale. The snapshot
// fields and the displayed timestamp come from the caller, not from the
// live user or book, so an edit can move them further out of sync.
type UpdateReviewRequest struct {
	Content     string    `json:"content" validate:"required,max=10000"`
	Username    string    `json:"username" validate:"required,max=80"`
	BookTitle   string    `json:"book_title" validate:"required,max=200"`
	DateCreated time.Time `json:"date_created" validate:"required"`
}

// CreateReview adds a review for a book on behalf of the given user.
func (s *ReviewService) CreateReview(ctx context.Context, user *domain.User, req CreateReviewRequest) (*domain.Review, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	book, err := s.store.GetBook(ctx, req.BookID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("book does not exist")
		}
		return nil, fmt.Errorf("get book: %w", err)
	}

	review := &domain.Review{
		Content:     req.Content,
		DateCreated: time.Now().UTC(),
		Username:    user.Username, // snapshot, not re-derived on later reads
		BookTitle:   book.Title,    // snapshot
		UserID:      user.ID,
		BookID:      book.ID,
	}

	if err := s.store.CreateReview(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	review.OwnerEmail = user.Email

	s.logger.Info("review created",
		"review_id", review.ID,
		"book_id", book.ID,
		"user_id", user.ID,
	)

	return review, nil
}

// GetReview retrieves a review with its comments.
func (s *ReviewService) GetReview(ctx context.Context, id int64) (*domain.Review, error) {
	review, err := s.store.GetReview(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("review does not exist")
		}
		return nil, fmt.Errorf("get review: %w", err)
	}

	comments, err := s.store.ListReviewComments(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	review.Comments = comments

	return review, nil
}

// UpdateReview replaces a review's fields wholesale; the review keeps
// its author and book. Only the review's author or an admin may do
// this; existence is checked first so a missing review reports not
// found rather than unauthorized.
func (s *ReviewService) UpdateReview(ctx context.Context, user *domain.User, id int64, req UpdateReviewRequest) (*domain.Review, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	review, err := s.store.GetReview(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("review does not exist")
		}
		return nil, fmt.Errorf("get review: %w", err)
	}

	if !user.CanModerate(review.OwnerEmail) {
		return nil, domainerrors.Unauthorized("you may only modify your own reviews")
	}

	review.Content = req.Content
	review.Username = req.Username
	review.BookTitle = req.BookTitle
	review.DateCreated = req.DateCreated

	if err := s.store.UpdateReview(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}

	s.logger.Info("review updated", "review_id", review.ID, "by_user_id", user.ID)

	return review, nil
}

// DeleteReview removes a review and its comments. Owner-or-admin only.
func (s *ReviewService) DeleteReview(ctx context.Context, user *domain.User, id int64) error {
	review, err := s.store.GetReview(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("review does not exist")
		}
		return fmt.Errorf("get review: %w", err)
	}

	if !user.CanModerate(review.OwnerEmail) {
		return domainerrors.Unauthorized("you may only delete your own reviews")
	}

	if err := s.store.DeleteReview(ctx, id); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	s.logger.Info("review deleted", "review_id", id, "by_user_id", user.ID)

	return nil
}
