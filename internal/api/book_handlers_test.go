package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListBooks_EmptyInitially(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/books")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[ListBooksResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Empty(t, envelope.Data.Books)
}

func TestAddBook_RequiresAuth(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/add_book", map[string]any{
		"title":  "Dune",
		"author": "Frank Herbert",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestAddBook_Success(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerUser(t, "reader")

	bookID := ts.createBook(t, token, "Dune")
	assert.NotZero(t, bookID)

	resp := ts.api.Get("/books")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[ListBooksResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Books, 1)
	assert.Equal(t, "Dune", envelope.Data.Books[0].Title)
	assert.Equal(t, "Frank Herbert", envelope.Data.Books[0].Author)
}

func TestAddBook_DuplicateTitle(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerUser(t, "reader")
	ts.createBook(t, token, "Dune")

	resp := ts.api.Post("/add_book",
		map[string]any{
			"title":  "Dune",
			"author": "Someone Else",
		},
		"Authorization: Bearer "+token)
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestAddBook_MissingFields(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerUser(t, "reader")

	resp := ts.api.Post("/add_book",
		map[string]any{"title": "No Author"},
		"Authorization: Bearer "+token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGetBookDetails_NotFound(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/book_details/9999")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	var envelope testEnvelope[BookDetailsResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, "NOT_FOUND", envelope.Error.Code)
}

func TestGetBookDetails_IncludesReviewsAndComments(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerUser(t, "reader")

	bookID := ts.createBook(t, token, "Dune")
	reviewID := ts.createReview(t, token, bookID)
	ts.createComment(t, token, reviewID)

	resp := ts.api.Get("/book_details/" + itoa(bookID))
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[BookDetailsResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.Equal(t, "Dune", envelope.Data.Title)
	require.Len(t, envelope.Data.Reviews, 1)
	assert.Equal(t, "reader", envelope.Data.Reviews[0].Username)
	assert.Equal(t, "Dune", envelope.Data.Reviews[0].BookTitle)
	require.Len(t, envelope.Data.Reviews[0].Comments, 1)
	assert.Equal(t, "Completely agree.", envelope.Data.Reviews[0].Comments[0].Content)
}

func TestUpdateBook_FullReplacement(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerUser(t, "reader")
	bookID := ts.createBook(t, token, "Dune")

	resp := ts.api.Put("/update_book",
		map[string]any{
			"book_id":          bookID,
			"title":            "Dune Messiah",
			"author":           "Frank Herbert",
			"genre":            "Science Fiction",
			"synopsis":         "The sequel.",
			"publication_year": 1969,
		},
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[BookResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "Dune Messiah", envelope.Data.Title)
	assert.Equal(t, 1969, envelope.Data.PublicationYear)
}

func TestUpdateBook_NotFound(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerUser(t, "reader")

	resp := ts.api.Put("/update_book",
		map[string]any{
			"book_id": 9999,
			"title":   "Ghost Book",
			"author":  "Nobody",
		},
		"Authorization: Bearer "+token)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDeleteBook_Success(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerUser(t, "reader")
	bookID := ts.createBook(t, token, "Dune")

	resp := ts.api.Delete("/delete_book/"+itoa(bookID), "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/book_details/" + itoa(bookID))
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDeleteBook_NotFound(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerUser(t, "reader")

	resp := ts.api.Delete("/delete_book/9999", "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestSearchBooks(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerUser(t, "reader")
	ts.createBook(t, token, "Dune")

	resp := ts.api.Get("/search_books?q=dune")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[SearchBooksResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	require.NotEmpty(t, envelope.Data.Hits)
	assert.Equal(t, "Dune", envelope.Data.Hits[0].Title)
}
