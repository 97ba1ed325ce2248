// Package domain defines the core entities of the Inkwell book-review service.
package domain

// Book is a title users can review. Titles are globally unique.
type Book struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Genre           string `json:"genre"`
	Synopsis        string `json:"synopsis"`
	PublicationYear int    `json:"publication_year"`
}

// BookDetails is a book together with its reviews, as returned by the
// book details endpoint.
type BookDetails struct {
	Book
	Reviews []*Review `json:"reviews"`
}
