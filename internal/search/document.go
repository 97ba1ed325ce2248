// Package search provides full-text search over the book catalog using
// Bleve, with fuzzy matching and genre/year filtering.
package search

import (
	"strconv"

	"github.com/inkwellapp/inkwell-server/internal/domain"
)

// BookDocument is the document structure for the Bleve index. Title and
// author carry most of the search weight; the synopsis is indexed but not
// stored.
type BookDocument struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Genre           string `json:"genre,omitempty"`
	Synopsis        string `json:"synopsis,omitempty"`
	PublicationYear int    `json:"publication_year,omitempty"`
}

// ToMap converts the document to a map with lowercase field names.
// Bleve by default uses Go struct field names (capitalized), but the
// index mapping uses lowercase names, so we convert explicitly.
func (d *BookDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":     d.ID,
		"title":  d.Title,
		"author": d.Author,
	}

	if d.Genre != "" {
		m["genre"] = d.Genre
	}
	if d.Synopsis != "" {
		m["synopsis"] = d.Synopsis
	}
	if d.PublicationYear > 0 {
		m["publication_year"] = d.PublicationYear
	}

	return m
}

// DocID returns the index key for a book's row id.
func DocID(bookID int64) string {
	return strconv.FormatInt(bookID, 10)
}

// BookToDocument converts a domain Book to its indexed form.
func BookToDocument(book *domain.Book) *BookDocument {
	return &BookDocument{
		ID:              DocID(book.ID),
		Title:           book.Title,
		Author:          book.Author,
		Genre:           book.Genre,
		Synopsis:        book.Synopsis,
		PublicationYear: book.PublicationYear,
	}
}
