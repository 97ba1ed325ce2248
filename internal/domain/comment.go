package domain

import "time"

// Comment is a user's comment on a review. Username is a creation-time
// snapshot of the author's name, same drift semantics as Review.Username.
type Comment struct {
	ID          int64     `json:"id"`
	Content     string    `json:"content"`
	DateCreated time.Time `json:"date_created"`
	Username    string    `json:"username"`
	UserID      int64     `json:"user_id"`
	ReviewID    int64     `json:"review_id"`

	// OwnerEmail is joined in by the store for authorization checks.
	OwnerEmail string `json:"-"`
}
