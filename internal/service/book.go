package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	domainerrors "github.com/inkwellapp/inkwell-server/internal/errors"
	"github.com/inkwellapp/inkwell-server/internal/search"
	"github.com/inkwellapp/inkwell-server/internal/store"
)

// BookService orchestrates catalog operations and keeps the search index
// in step with the store.
type BookService struct {
	store  store.Store
	search *search.Index
	logger *slog.Logger
}

// NewBookService creates a new book service.
func NewBookService(store store.Store, searchIndex *search.Index, logger *slog.Logger) *BookService {
	return &BookService{
		store:  store,
		search: searchIndex,
		logger: logger,
	}
}

// BookRequest contains the full set of book fields. Used for both
// creation and update; updates replace every field.
type BookRequest struct {
	Title           string `json:"title" validate:"required,max=200"`
	Author          string `json:"author" validate:"required,max=200"`
	Genre           string `json:"genre" validate:"max=100"`
	Synopsis        string `json:"synopsis" validate:"max=5000"`
	PublicationYear int    `json:"publication_year" validate:"omitempty,gte=0,lte=2100"`
}

// CreateBook adds a book to the catalog. Titles are globally unique.
func (s *BookService) CreateBook(ctx context.Context, req BookRequest) (*domain.Book, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	book := &domain.Book{
		Title:           req.Title,
		Author:          req.Author,
		Genre:           req.Genre,
		Synopsis:        req.Synopsis,
		PublicationYear: req.PublicationYear,
	}

	if err := s.store.CreateBook(ctx, book); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExists("a book with this title already exists")
		}
		return nil, fmt.Errorf("create book: %w", err)
	}

	if err := s.search.IndexBook(search.BookToDocument(book)); err != nil {
		// Catalog write succeeded; treat indexing as best-effort.
		s.logger.Warn("failed to index book", "book_id", book.ID, "error", err)
	}

	s.logger.Info("book created", "book_id", book.ID, "title", book.Title)

	return book, nil
}

// ListBooks returns all books in the catalog, ordered by title.
func (s *BookService) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	return s.store.ListBooks(ctx)
}

// GetBook retrieves a single book with its reviews and their comments.
func (s *BookService) GetBook(ctx context.Context, id int64) (*domain.BookDetails, error) {
	book, err := s.store.GetBook(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("book does not exist")
		}
		return nil, fmt.Errorf("get book: %w", err)
	}

	reviews, err := s.store.ListBookReviews(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	for _, review := range reviews {
		comments, err := s.store.ListReviewComments(ctx, review.ID)
		if err != nil {
			return nil, fmt.Errorf("list comments for review %d: %w", review.ID, err)
		}
		review.Comments = comments
	}

	return &domain.BookDetails{
		Book:    *book,
		Reviews: reviews,
	}, nil
}

// UpdateBook replaces every field of a book. Reviews that snapshotted the
// old title keep it.
func (s *BookService) UpdateBook(ctx context.Context, id int64, req BookRequest) (*domain.Book, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	book := &domain.Book{
		ID:              id,
		Title:           req.Title,
		Author:          req.Author,
		Genre:           req.Genre,
		Synopsis:        req.Synopsis,
		PublicationYear: req.PublicationYear,
	}

	if err := s.store.UpdateBook(ctx, book); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return nil, domainerrors.NotFound("book does not exist")
		case errors.Is(err, store.ErrAlreadyExists):
			return nil, domainerrors.AlreadyExists("a book with this title already exists")
		}
		return nil, fmt.Errorf("update book: %w", err)
	}

	if err := s.search.IndexBook(search.BookToDocument(book)); err != nil {
		s.logger.Warn("failed to reindex book", "book_id", book.ID, "error", err)
	}

	s.logger.Info("book updated", "book_id", book.ID, "title", book.Title)

	return book, nil
}

// DeleteBook removes a book along with its reviews and their comments.
func (s *BookService) DeleteBook(ctx context.Context, id int64) error {
	if err := s.store.DeleteBook(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("book does not exist")
		}
		return fmt.Errorf("delete book: %w", err)
	}

	if err := s.search.DeleteBook(id); err != nil {
		s.logger.Warn("failed to remove book from index", "book_id", id, "error", err)
	}

	s.logger.Info("book deleted", "book_id", id)

	return nil
}

// SearchBooks runs a full-text query against the catalog index.
func (s *BookService) SearchBooks(ctx context.Context, params search.Params) (*search.Result, error) {
	if params.Limit <= 0 {
		params.Limit = search.DefaultParams().Limit
	}
	return s.search.Search(ctx, params)
}

// IndexedBooks returns the number of documents currently in the search
// index. Used by health checks.
func (s *BookService) IndexedBooks() (uint64, error) {
	return s.search.DocumentCount()
}

// ReindexBooks rebuilds the search index from the store. Used at startup
// and by the reindex admin operation.
func (s *BookService) ReindexBooks(ctx context.Context) (int, error) {
	books, err := s.store.ListBooks(ctx)
	if err != nil {
		return 0, fmt.Errorf("list books: %w", err)
	}

	docs := make([]*search.BookDocument, 0, len(books))
	for _, book := range books {
		docs = append(docs, search.BookToDocument(book))
	}

	if err := s.search.Rebuild(); err != nil {
		return 0, fmt.Errorf("rebuild index: %w", err)
	}
	if err := s.search.IndexBooks(docs); err != nil {
		return 0, fmt.Errorf("index books: %w", err)
	}

	s.logger.Info("search index rebuilt", "books", len(docs))

	return len(docs), nil
}
