package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"
	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/search"
	"github.com/inkwellapp/inkwell-server/internal/service"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        "/books",
		Summary:     "List books",
		Description: "Returns every book in the catalog, ordered by title",
		Tags:        []string{"Books"},
	}, s.handleListBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBookDetails",
		Method:      http.MethodGet,
		Path:        "/book_details/{id}",
		Summary:     "Get book details",
		Description: "Returns a book with its reviews and their comments",
		Tags:        []string{"Books"},
	}, s.handleGetBookDetails)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchBooks",
		Method:      http.MethodGet,
		Path:        "/search_books",
		Summary:     "Search books",
		Description: "Full-text search over the catalog with optional genre and year filters",
		Tags:        []string{"Books"},
	}, s.handleSearchBooks)

	huma.Register(s.api, huma.Operation{
		OperationID:   "addBook",
		Method:        http.MethodPost,
		Path:          "/add_book",
		Summary:       "Add book",
		Description:   "Creates a book. Any authenticated user may add books; titles are unique.",
		Tags:          []string{"Books"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleAddBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateBook",
		Method:      http.MethodPut,
		Path:        "/update_book",
		Summary:     "Update book",
		Description: "Replaces every field of a book. Reviews keep their snapshotted title.",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteBook",
		Method:      http.MethodDelete,
		Path:        "/delete_book/{id}",
		Summary:     "Delete book",
		Description: "Removes a book along with its reviews and comments",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteBook)
}

// === DTOs ===

// BookFields carries the full set of book fields. Updates replace every
// field rather than patching.
type BookFields struct {
	Title           string `json:"title" validate:"required,max=200" doc:"Book title (unique)"`
	Author          string `json:"author" validate:"required,max=200" doc:"Author name"`
	Genre           string `json:"genre,omitempty" validate:"max=100" doc:"Genre"`
	Synopsis        string `json:"synopsis,omitempty" validate:"max=5000" doc:"Plot summary"`
	PublicationYear int    `json:"publication_year,omitempty" validate:"omitempty,gte=0,lte=2100" doc:"Year of publication"`
}

// AddBookInput wraps the add book request for Huma.
type AddBookInput struct {
	Body BookFields
}

// UpdateBookRequest is the request body for a full-field book update.
type UpdateBookRequest struct {
	BookID int64 `json:"book_id" validate:"required" doc:"ID of the book to update"`
	BookFields
}

// UpdateBookInput wraps the update book request for Huma.
type UpdateBookInput struct {
	Body UpdateBookRequest
}

// BookResponse contains book data in API responses.
type BookResponse struct {
	ID              int64  `json:"id" doc:"Book ID"`
	Title           string `json:"title" doc:"Book title"`
	Author          string `json:"author" doc:"Author name"`
	Genre           string `json:"genre,omitempty" doc:"Genre"`
	Synopsis        string `json:"synopsis,omitempty" doc:"Plot summary"`
	PublicationYear int    `json:"publication_year,omitempty" doc:"Year of publication"`
}

// BookOutput wraps the book response for Huma.
type BookOutput struct {
	Body BookResponse
}

// ListBooksResponse contains a list of books.
type ListBooksResponse struct {
	Books []BookResponse `json:"books" doc:"All books in the catalog"`
}

// ListBooksOutput wraps the list books response for Huma.
type ListBooksOutput struct {
	Body ListBooksResponse
}

// GetBookDetailsInput contains parameters for fetching book details.
type GetBookDetailsInput struct {
	ID int64 `path:"id" doc:"Book ID"`
}

// BookDetailsResponse contains a book with its reviews and comments.
type BookDetailsResponse struct {
	BookResponse
	Reviews []ReviewResponse `json:"reviews" doc:"Reviews of this book"`
}

// BookDetailsOutput wraps the book details response for Huma.
type BookDetailsOutput struct {
	Body BookDetailsResponse
}

// DeleteBookInput contains parameters for deleting a book.
type DeleteBookInput struct {
	ID int64 `path:"id" doc:"Book ID"`
}

// MessageResponse contains a simple status message.
type MessageResponse struct {
	Message string `json:"message" doc:"Status message"`
}

// MessageOutput wraps the message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}

// SearchBooksInput contains query parameters for book search.
type SearchBooksInput struct {
	Query     string `query:"q" doc:"Search terms, matched against title, author and synopsis"`
	Genre     string `query:"genre" doc:"Exact genre filter"`
	MinYear   int    `query:"min_year" doc:"Earliest publication year"`
	MaxYear   int    `query:"max_year" doc:"Latest publication year"`
	Limit     int    `query:"limit" doc:"Maximum hits to return"`
	Offset    int    `query:"offset" doc:"Hits to skip for pagination"`
	SortBy    string `query:"sort_by" enum:"relevance,title,author,year" doc:"Sort field"`
	SortOrder string `query:"sort_order" enum:"asc,desc" doc:"Sort direction"`
}

// SearchHit is a single search result.
type SearchHit struct {
	ID              int64             `json:"id" doc:"Book ID"`
	Score           float64           `json:"score" doc:"Relevance score"`
	Title           string            `json:"title" doc:"Book title"`
	Author          string            `json:"author" doc:"Author name"`
	Genre           string            `json:"genre,omitempty" doc:"Genre"`
	PublicationYear int               `json:"publication_year,omitempty" doc:"Year of publication"`
	Highlights      map[string]string `json:"highlights,omitempty" doc:"Highlighted matching fragments"`
}

// SearchBooksResponse contains search results.
type SearchBooksResponse struct {
	Query  string      `json:"query" doc:"The query that was run"`
	Total  uint64      `json:"total" doc:"Total matching books"`
	TookMs int64       `json:"took_ms" doc:"Query duration in milliseconds"`
	Hits   []SearchHit `json:"hits" doc:"Matching books"`
}

// SearchBooksOutput wraps the search response for Huma.
type SearchBooksOutput struct {
	Body SearchBooksResponse
}

// === Handlers ===

func (s *Server) handleListBooks(ctx context.Context, _ *struct{}) (*ListBooksOutput, error) {
	books, err := s.services.Book.ListBooks(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]BookResponse, len(books))
	for i, b := range books {
		resp[i] = mapBookResponse(b)
	}

	return &ListBooksOutput{Body: ListBooksResponse{Books: resp}}, nil
}

func (s *Server) handleGetBookDetails(ctx context.Context, input *GetBookDetailsInput) (*BookDetailsOutput, error) {
	details, err := s.services.Book.GetBook(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	reviews := make([]ReviewResponse, len(details.Reviews))
	for i, r := range details.Reviews {
		reviews[i] = mapReviewResponse(r)
	}

	return &BookDetailsOutput{
		Body: BookDetailsResponse{
			BookResponse: mapBookResponse(&details.Book),
			Reviews:      reviews,
		},
	}, nil
}

func (s *Server) handleSearchBooks(ctx context.Context, input *SearchBooksInput) (*SearchBooksOutput, error) {
	params := search.DefaultParams()
	params.Query = input.Query
	params.Genre = input.Genre
	params.MinYear = input.MinYear
	params.MaxYear = input.MaxYear
	if input.Limit > 0 {
		params.Limit = input.Limit
	}
	params.Offset = input.Offset
	if input.SortBy != "" {
		params.SortBy = input.SortBy
	}
	if input.SortOrder != "" {
		params.SortOrder = input.SortOrder
	}

	result, err := s.services.Book.SearchBooks(ctx, params)
	if err != nil {
		return nil, err
	}

	hits := make([]SearchHit, len(result.Hits))
	for i, h := range result.Hits {
		// Index documents key books by their decimal ID.
		bookID, _ := strconv.ParseInt(h.ID, 10, 64)
		hits[i] = SearchHit{
			ID:              bookID,
			Score:           h.Score,
			Title:           h.Title,
			Author:          h.Author,
			Genre:           h.Genre,
			PublicationYear: h.PublicationYear,
			Highlights:      h.Highlights,
		}
	}

	return &SearchBooksOutput{
		Body: SearchBooksResponse{
			Query:  result.Query,
			Total:  result.Total,
			TookMs: result.TookMs,
			Hits:   hits,
		},
	}, nil
}

func (s *Server) handleAddBook(ctx context.Context, input *AddBookInput) (*BookOutput, error) {
	if _, err := GetAuthUser(ctx); err != nil {
		return nil, err
	}

	book, err := s.services.Book.CreateBook(ctx, bookRequest(input.Body))
	if err != nil {
		return nil, err
	}

	return &BookOutput{Body: mapBookResponse(book)}, nil
}

func (s *Server) handleUpdateBook(ctx context.Context, input *UpdateBookInput) (*BookOutput, error) {
	if _, err := GetAuthUser(ctx); err != nil {
		return nil, err
	}

	book, err := s.services.Book.UpdateBook(ctx, input.Body.BookID, bookRequest(input.Body.BookFields))
	if err != nil {
		return nil, err
	}

	return &BookOutput{Body: mapBookResponse(book)}, nil
}

func (s *Server) handleDeleteBook(ctx context.Context, input *DeleteBookInput) (*MessageOutput, error) {
	if _, err := GetAuthUser(ctx); err != nil {
		return nil, err
	}

	if err := s.services.Book.DeleteBook(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Book deleted"}}, nil
}

// === Helpers ===

func bookRequest(fields BookFields) service.BookRequest {
	return service.BookRequest{
		Title:           fields.Title,
		Author:          fields.Author,
		Genre:           fields.Genre,
		Synopsis:        fields.Synopsis,
		PublicationYear: fields.PublicationYear,
	}
}

func mapBookResponse(book *domain.Book) BookResponse {
	return BookResponse{
		ID:              book.ID,
		Title:           book.Title,
		Author:          book.Author,
		Genre:           book.Genre,
		Synopsis:        book.Synopsis,
		PublicationYear: book.PublicationYear,
	}
}
