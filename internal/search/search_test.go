package search

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestIndex creates a temporary search index for testing.
func setupTestIndex(t *testing.T) *Index {
	t.Helper()

	index, err := NewIndex(Options{
		Path: filepath.Join(t.TempDir(), "search.bleve"),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = index.Close()
	})

	return index
}

func TestNewIndex(t *testing.T) {
	index := setupTestIndex(t)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestIndex_IndexBook(t *testing.T) {
	index := setupTestIndex(t)

	doc := &BookDocument{
		ID:     "1",
		Title:  "The Hobbit",
		Author: "J.R.R. Tolkien",
		Genre:  "fantasy",
	}

	require.NoError(t, index.IndexBook(doc))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestIndex_IndexBooks_Batch(t *testing.T) {
	index := setupTestIndex(t)

	docs := []*BookDocument{
		{ID: "1", Title: "Book One", Author: "Author A"},
		{ID: "2", Title: "Book Two", Author: "Author B"},
		{ID: "3", Title: "Book Three", Author: "Author C"},
	}

	require.NoError(t, index.IndexBooks(docs))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)
}

func TestIndex_DeleteBook(t *testing.T) {
	index := setupTestIndex(t)

	require.NoError(t, index.IndexBook(&BookDocument{ID: "42", Title: "Ephemeral"}))
	require.NoError(t, index.DeleteBook(42))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func seedCatalog(t *testing.T, index *Index) {
	t.Helper()

	docs := []*BookDocument{
		{ID: "1", Title: "The Hobbit", Author: "J.R.R. Tolkien", Genre: "fantasy", PublicationYear: 1937},
		{ID: "2", Title: "The Fellowship of the Ring", Author: "J.R.R. Tolkien", Genre: "fantasy", PublicationYear: 1954},
		{ID: "3", Title: "Dune", Author: "Frank Herbert", Genre: "science-fiction", PublicationYear: 1965, Synopsis: "Desert planet politics and prophecy."},
		{ID: "4", Title: "Emma", Author: "Jane Austen", Genre: "romance", PublicationYear: 1815},
	}
	require.NoError(t, index.IndexBooks(docs))
}

func TestSearch_TitleMatch(t *testing.T) {
	index := setupTestIndex(t)
	seedCatalog(t, index)

	params := DefaultParams()
	params.Query = "hobbit"

	result, err := index.Search(context.Background(), params)
	require.NoError(t, err)
	require.NotEmpty(t, result.Hits)
	assert.Equal(t, "1", result.Hits[0].ID)
	assert.Equal(t, "The Hobbit", result.Hits[0].Title)
}

func TestSearch_AuthorMatch(t *testing.T) {
	index := setupTestIndex(t)
	seedCatalog(t, index)

	params := DefaultParams()
	params.Query = "tolkien"

	result, err := index.Search(context.Background(), params)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(result.Hits), 2)
}

func TestSearch_FuzzyMatch(t *testing.T) {
	index := setupTestIndex(t)
	seedCatalog(t, index)

	params := DefaultParams()
	params.Query = "hobit" // one edit away

	result, err := index.Search(context.Background(), params)
	require.NoError(t, err)
	require.NotEmpty(t, result.Hits)
	assert.Equal(t, "The Hobbit", result.Hits[0].Title)
}

func TestSearch_GenreFilter(t *testing.T) {
	index := setupTestIndex(t)
	seedCatalog(t, index)

	params := DefaultParams()
	params.Genre = "science-fiction"

	result, err := index.Search(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "Dune", result.Hits[0].Title)
}

func TestSearch_YearRange(t *testing.T) {
	index := setupTestIndex(t)
	seedCatalog(t, index)

	params := DefaultParams()
	params.MinYear = 1950
	params.MaxYear = 1970

	result, err := index.Search(context.Background(), params)
	require.NoError(t, err)
	assert.Len(t, result.Hits, 2) // Fellowship (1954), Dune (1965)
}

func TestSearch_EmptyQueryMatchesAll(t *testing.T) {
	index := setupTestIndex(t)
	seedCatalog(t, index)

	result, err := index.Search(context.Background(), DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, uint64(4), result.Total)
}

func TestSearch_SortByYear(t *testing.T) {
	index := setupTestIndex(t)
	seedCatalog(t, index)

	params := DefaultParams()
	params.SortBy = "year"
	params.SortOrder = "asc"

	result, err := index.Search(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, result.Hits, 4)
	assert.Equal(t, "Emma", result.Hits[0].Title)
}

func TestSearch_Highlighting(t *testing.T) {
	index := setupTestIndex(t)
	seedCatalog(t, index)

	params := DefaultParams()
	params.Query = "dune"

	result, err := index.Search(context.Background(), params)
	require.NoError(t, err)
	require.NotEmpty(t, result.Hits)
	assert.Contains(t, result.Hits[0].Highlights["title"], "Dune")
}

func TestBookToDocument(t *testing.T) {
	book := &domain.Book{
		ID:              7,
		Title:           "Dune",
		Author:          "Frank Herbert",
		Genre:           "science-fiction",
		Synopsis:        "Desert planet politics.",
		PublicationYear: 1965,
	}

	doc := BookToDocument(book)
	assert.Equal(t, "7", doc.ID)
	assert.Equal(t, "Dune", doc.Title)
	assert.Equal(t, 1965, doc.PublicationYear)
}

func TestIndex_Rebuild(t *testing.T) {
	index := setupTestIndex(t)
	seedCatalog(t, index)

	require.NoError(t, index.Rebuild())

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}
