package domain

import "time"

// Review is a user's review of a book.
//
// Username and BookTitle are snapshots copied from the live User and Book
// records when the review is created. They are display denormalizations and
// are never re-derived, so they can drift from the source records after a
// rename.
type Review struct {
	ID          int64     `json:"id"`
	Content     string    `json:"content"`
	DateCreated time.Time `json:"date_created"`
	Username    string    `json:"username"`
	BookTitle   string    `json:"book_title"`
	UserID      int64     `json:"user_id"`
	BookID      int64     `json:"book_id"`

	// OwnerEmail is the live email of the review's author, joined in by the
	// store for authorization checks. Not persisted on the review row.
	OwnerEmail string `json:"-"`

	Comments []*Comment `json:"comments,omitempty"`
}
