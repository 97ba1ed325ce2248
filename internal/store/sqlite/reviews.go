package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/store"
)

// reviewColumns selects the review row plus the author's live email, which
// the API layer needs for the owner-or-admin check. The snapshot columns
// (username, book_title) come straight off the row; only the email is joined.
const reviewColumns = `r.id, r.content, r.date_created, r.username, r.book_title,
	r.user_id, r.book_id, u.email`

// scanReview scans a joined review row into a domain.Review.
func scanReview(scanner interface{ Scan(dest ...any) error }) (*domain.Review, error) {
	var (
		r           domain.Review
		dateCreated string
	)

	err := scanner.Scan(
		&r.ID,
		&r.Content,
		&dateCreated,
		&r.Username,
		&r.BookTitle,
		&r.UserID,
		&r.BookID,
		&r.OwnerEmail,
	)
	if err != nil {
		return nil, err
	}

	r.DateCreated, err = parseTime(dateCreated)
	if err != nil {
		return nil, err
	}

	return &r, nil
}

// CreateReview inserts a new review and assigns its generated id.
// The caller is responsible for having snapshotted Username and BookTitle.
// Returns store.ErrBookNotFound on any FK violation; SQLite does not say
// which constraint failed, and callers verify the book (the only parent
// taken from client input) before inserting.
func (s *Store) CreateReview(ctx context.Context, review *domain.Review) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO reviews (content, date_created, username, book_title, user_id, book_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		review.Content,
		formatTime(review.DateCreated),
		review.Username,
		review.BookTitle,
		review.UserID,
		review.BookID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrBookNotFound
		}
		return err
	}

	review.ID, err = result.LastInsertId()
	return err
}

// GetReview retrieves a review by ID, including the owner's live email.
// Returns store.ErrReviewNotFound if the review does not exist.
func (s *Store) GetReview(ctx context.Context, id int64) (*domain.Review, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+reviewColumns+`
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.id = ?`, id)

	r, err := scanReview(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrReviewNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// ListBookReviews returns all reviews of a book, oldest first.
func (s *Store) ListBookReviews(ctx context.Context, bookID int64) ([]*domain.Review, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+reviewColumns+`
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.book_id = ?
		ORDER BY r.date_created ASC, r.id ASC`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*domain.Review
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

// UpdateReview performs a full row update on an existing review.
// Every column including the snapshots is replaced, matching the
// full-field-replacement contract of the update endpoint.
// Returns store.ErrReviewNotFound if the review does not exist.
func (s *Store) UpdateReview(ctx context.Context, review *domain.Review) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE reviews SET
			content = ?,
			date_created = ?,
			username = ?,
			book_title = ?,
			user_id = ?,
			book_id = ?
		WHERE id = ?`,
		review.Content,
		formatTime(review.DateCreated),
		review.Username,
		review.BookTitle,
		review.UserID,
		review.BookID,
		review.ID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrBookNotFound
		}
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrReviewNotFound
	}
	return nil
}

// DeleteReview removes a review and, via the FK cascade, its comments.
// Returns store.ErrReviewNotFound if the review does not exist.
func (s *Store) DeleteReview(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrReviewNotFound
	}
	return nil
}
