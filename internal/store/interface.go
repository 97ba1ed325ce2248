// Package store defines the persistence interface for the Inkwell server.
package store

import (
	"context"

	"github.com/inkwellapp/inkwell-server/internal/domain"
)

// Store defines the interface for all persistence operations.
// Each method performs exactly one storage operation; transactional scope is
// per call, so handlers never span multiple transactions.
type Store interface {
	// Lifecycle
	Close() error

	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)

	// Books
	CreateBook(ctx context.Context, book *domain.Book) error
	GetBook(ctx context.Context, id int64) (*domain.Book, error)
	ListBooks(ctx context.Context) ([]*domain.Book, error)
	UpdateBook(ctx context.Context, book *domain.Book) error
	DeleteBook(ctx context.Context, id int64) error

	// Reviews
	CreateReview(ctx context.Context, review *domain.Review) error
	GetReview(ctx context.Context, id int64) (*domain.Review, error)
	ListBookReviews(ctx context.Context, bookID int64) ([]*domain.Review, error)
	UpdateReview(ctx context.Context, review *domain.Review) error
	DeleteReview(ctx context.Context, id int64) error

	// Comments
	CreateComment(ctx context.Context, comment *domain.Comment) error
	GetComment(ctx context.Context, id int64) (*domain.Comment, error)
	ListReviewComments(ctx context.Context, reviewID int64) ([]*domain.Comment, error)
	UpdateComment(ctx context.Context, comment *domain.Comment) error
	DeleteComment(ctx context.Context, id int64) error
}
