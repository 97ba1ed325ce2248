package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/service"
)

func (s *Server) registerReviewRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "addReview",
		Method:        http.MethodPost,
		Path:          "/add_review",
		Summary:       "Add review",
		Description:   "Creates a review for a book. The author's username and the book's title are copied onto the review at creation time.",
		Tags:          []string{"Reviews"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleAddReview)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateReview",
		Method:      http.MethodPut,
		Path:        "/update_review",
		Summary:     "Update review",
		Description: "Replaces a review's record wholesale. Only the author or an admin may do this.",
		Tags:        []string{"Reviews"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateReview)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteReview",
		Method:      http.MethodDelete,
		Path:        "/delete_review/{id}",
		Summary:     "Delete review",
		Description: "Removes a review and its comments. Only the author or an admin may do this.",
		Tags:        []string{"Reviews"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteReview)
}

// === DTOs ===

// AddReviewRequest is the request body for creating a review.
type AddReviewRequest struct {
	BookID  int64  `json:"book_id" validate:"required" doc:"Book being reviewed"`
	Content string `json:"content" validate:"required,max=10000" doc:"Review text"`
}

// AddReviewInput wraps the add review request for Huma.
type AddReviewInput struct {
	Body AddReviewRequest
}

// UpdateReviewRequest is the request body for updating a review. The
// full record is replaced, including the displayed username, book title
// and timestamp; the review's author and book are unchanged.
type UpdateReviewRequest struct {
	ReviewID    int64     `json:"review_id" validate:"required" doc:"Review to update"`
	Content     string    `json:"content" validate:"required,max=10000" doc:"Replacement review text"`
	Username    string    `json:"username" validate:"required,max=80" doc:"Replacement displayed author name"`
	BookTitle   string    `json:"book_title" validate:"required,max=200" doc:"Replacement displayed book title"`
	DateCreated time.Time `json:"date_created" validate:"required" doc:"Replacement displayed timestamp"`
}

// UpdateReviewInput wraps the update review request for Huma.
type UpdateReviewInput struct {
	Body UpdateReviewRequest
}

// DeleteReviewInput contains parameters for deleting a review.
type DeleteReviewInput struct {
	ID int64 `path:"id" doc:"Review ID"`
}

// ReviewResponse contains review data in API responses. Username and
// BookTitle are the creation-time snapshots, not live values.
type ReviewResponse struct {
	ID          int64             `json:"id" doc:"Review ID"`
	Content     string            `json:"content" doc:"Review text"`
	DateCreated time.Time         `json:"date_created" doc:"Creation timestamp"`
	Username    string            `json:"username" doc:"Author's username at creation time"`
	BookTitle   string            `json:"book_title" doc:"Book's title at creation time"`
	UserID      int64             `json:"user_id" doc:"Author's user ID"`
	BookID      int64             `json:"book_id" doc:"Reviewed book ID"`
	Comments    []CommentResponse `json:"comments,omitempty" doc:"Comments on this review"`
}

// ReviewOutput wraps the review response for Huma.
type ReviewOutput struct {
	Body ReviewResponse
}

// === Handlers ===

func (s *Server) handleAddReview(ctx context.Context, input *AddReviewInput) (*ReviewOutput, error) {
	user, err := GetAuthUser(ctx)
	if err != nil {
		return nil, err
	}

	review, err := s.services.Review.CreateReview(ctx, user, service.CreateReviewRequest{
		BookID:  input.Body.BookID,
		Content: input.Body.Content,
	})
	if err != nil {
		return nil, err
	}

	return &ReviewOutput{Body: mapReviewResponse(review)}, nil
}

func (s *Server) handleUpdateReview(ctx context.Context, input *UpdateReviewInput) (*ReviewOutput, error) {
	user, err := GetAuthUser(ctx)
	if err != nil {
		return nil, err
	}

	review, err := s.services.Review.UpdateReview(ctx, user, input.Body.ReviewID, service.UpdateReviewRequest{
		Content:     input.Body.Content,
		Username:    input.Body.Username,
		BookTitle:   input.Body.BookTitle,
		DateCreated: input.Body.DateCreated,
	})
	if err != nil {
		return nil, err
	}

	return &ReviewOutput{Body: mapReviewResponse(review)}, nil
}

func (s *Server) handleDeleteReview(ctx context.Context, input *DeleteReviewInput) (*MessageOutput, error) {
	user, err := GetAuthUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Review.DeleteReview(ctx, user, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Review deleted"}}, nil
}

// === Helpers ===

func mapReviewResponse(review *domain.Review) ReviewResponse {
	comments := make([]CommentResponse, len(review.Comments))
	for i, c := range review.Comments {
		comments[i] = mapCommentResponse(c)
	}

	return ReviewResponse{
		ID:          review.ID,
		Content:     review.Content,
		DateCreated: review.DateCreated,
		Username:    review.Username,
		BookTitle:   review.BookTitle,
		UserID:      review.UserID,
		BookID:      review.BookID,
		Comments:    comments,
	}
}
