package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/store"
)

const commentColumns = `c.id, c.content, c.date_created, c.username,
	c.user_id, c.review_id, u.email`

// scanComment scans a joined comment row into a domain.Comment.
func scanComment(scanner interface{ Scan(dest ...any) error }) (*domain.Comment, error) {
	var (
		c           domain.Comment
		dateCreated string
	)

	err := scanner.Scan(
		&c.ID,
		&c.Content,
		&dateCreated,
		&c.Username,
		&c.UserID,
		&c.ReviewID,
		&c.OwnerEmail,
	)
	if err != nil {
		return nil, err
	}

	c.DateCreated, err = parseTime(dateCreated)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// CreateComment inserts a new comment and assigns its generated id.
// Returns store.ErrReviewNotFound if the parent review is missing.
func (s *Store) CreateComment(ctx context.Context, comment *domain.Comment) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO comments (content, date_created, username, user_id, review_id)
		VALUES (?, ?, ?, ?, ?)`,
		comment.Content,
		formatTime(comment.DateCreated),
		comment.Username,
		comment.UserID,
		comment.ReviewID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrReviewNotFound
		}
		return err
	}

	comment.ID, err = result.LastInsertId()
	return err
}

// GetComment retrieves a comment by ID, including the owner's live email.
// Returns store.ErrCommentNotFound if the comment does not exist.
func (s *Store) GetComment(ctx context.Context, id int64) (*domain.Comment, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+commentColumns+`
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.id = ?`, id)

	c, err := scanComment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrCommentNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListReviewComments returns all comments on a review, oldest first.
func (s *Store) ListReviewComments(ctx context.Context, reviewID int64) ([]*domain.Comment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+commentColumns+`
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.review_id = ?
		ORDER BY c.date_created ASC, c.id ASC`, reviewID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*domain.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return comments, nil
}

// UpdateComment replaces the content of an existing comment. The snapshot
// username and the parent references are immutable after creation.
// Returns store.ErrCommentNotFound if the comment does not exist.
func (s *Store) UpdateComment(ctx context.Context, comment *domain.Comment) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE comments SET content = ? WHERE id = ?`,
		comment.Content,
		comment.ID,
	)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrCommentNotFound
	}
	return nil
}

// DeleteComment removes a comment.
// Returns store.ErrCommentNotFound if the comment does not exist.
func (s *Store) DeleteComment(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrCommentNotFound
	}
	return nil
}
