package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"booknet-backend/internal/domain"
	"booknet-backend/internal/repository"
)

const bookColumns = `id, owner_id, title, author_name, isbn, synopsis, cover_ref, archived, shareable, created_on`

type bookRepository struct {
	db *sql.DB
}

func NewBookRepository(db *sql.DB) repository.BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, b *domain.Book) error {
	query := `INSERT INTO books (owner_id, title, author_name, isbn, synopsis, cover_ref, archived, shareable, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query,
		b.OwnerID, b.Title, b.AuthorName, b.ISBN, b.Synopsis, b.CoverRef, b.Archived, b.Shareable, time.Now()).
		Scan(&b.ID, &b.CreatedOn)
}

func (r *bookRepository) GetByID(ctx context.Context, id int32) (*domain.Book, error) {
	b := &domain.Book{}
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.OwnerID, &b.Title, &b.AuthorName, &b.ISBN, &b.Synopsis, &b.CoverRef, &b.Archived, &b.Shareable, &b.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound(fmt.Sprintf("no book found with the id %d", id))
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookRepository) Update(ctx context.Context, b *domain.Book) error {
	query := `UPDATE books SET title=$1, author_name=$2, isbn=$3, synopsis=$4, cover_ref=$5, archived=$6, shareable=$7 WHERE id=$8`
	_, err := r.db.ExecContext(ctx, query,
		b.Title, b.AuthorName, b.ISBN, b.Synopsis, b.CoverRef, b.Archived, b.Shareable, b.ID)
	return err
}

func (r *bookRepository) ListDisplayable(ctx context.Context, viewerID int32, page, pageSize int32) ([]domain.Book, int32, error) {
	where := `WHERE shareable = true AND archived = false AND owner_id <> $1`
	return r.list(ctx, where, viewerID, page, pageSize)
}

func (r *bookRepository) ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Book, int32, error) {
	where := `WHERE owner_id = $1`
	return r.list(ctx, where, ownerID, page, pageSize)
}

func (r *bookRepository) list(ctx context.Context, where string, userID int32, page, pageSize int32) ([]domain.Book, int32, error) {
	var count int32
	countQuery := `SELECT count(*) FROM books ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT ` + bookColumns + ` FROM books ` + where + ` ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		var b domain.Book
		if err := rows.Scan(&b.ID, &b.OwnerID, &b.Title, &b.AuthorName, &b.ISBN, &b.Synopsis, &b.CoverRef, &b.Archived, &b.Shareable, &b.CreatedOn); err != nil {
			return nil, 0, err
		}
		books = append(books, b)
	}
	return books, count, rows.Err()
}
