package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/store"
)

// bookColumns is the ordered list of columns selected in book queries.
// Must match the scan order in scanBook.
const bookColumns = `id, title, author, genre, synopsis, publication_year`

// scanBook scans a sql.Row (or sql.Rows via its Scan method) into a domain.Book.
func scanBook(scanner interface{ Scan(dest ...any) error }) (*domain.Book, error) {
	var b domain.Book

	err := scanner.Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&b.Genre,
		&b.Synopsis,
		&b.PublicationYear,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateBook inserts a new book and assigns its generated id.
// Returns store.ErrAlreadyExists if a book with the same title exists.
func (s *Store) CreateBook(ctx context.Context, book *domain.Book) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO books (title, author, genre, synopsis, publication_year)
		VALUES (?, ?, ?, ?, ?)`,
		book.Title,
		book.Author,
		book.Genre,
		book.Synopsis,
		book.PublicationYear,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}

	book.ID, err = result.LastInsertId()
	return err
}

// GetBook retrieves a book by ID.
// Returns store.ErrBookNotFound if the book does not exist.
func (s *Store) GetBook(ctx context.Context, id int64) (*domain.Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = ?`, id)

	b, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ListBooks returns all books ordered by title.
func (s *Store) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM books ORDER BY title ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

// UpdateBook performs a full row update on an existing book.
// Returns store.ErrBookNotFound if the book does not exist, or
// store.ErrAlreadyExists if the new title collides with another book.
func (s *Store) UpdateBook(ctx context.Context, book *domain.Book) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE books SET
			title = ?,
			author = ?,
			genre = ?,
			synopsis = ?,
			publication_year = ?
		WHERE id = ?`,
		book.Title,
		book.Author,
		book.Genre,
		book.Synopsis,
		book.PublicationYear,
		book.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrBookNotFound
	}
	return nil
}

// DeleteBook removes a book. Reviews of the book (and their comments) go with
// it via the FK cascade.
// Returns store.ErrBookNotFound if the book does not exist.
func (s *Store) DeleteBook(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrBookNotFound
	}
	return nil
}
