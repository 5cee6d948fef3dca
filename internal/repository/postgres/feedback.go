package postgres

import (
	"context"
	"database/sql"
	"time"

	"booknet-backend/internal/domain"
	"booknet-backend/internal/repository"
)

type feedbackRepository struct {
	db *sql.DB
}

func NewFeedbackRepository(db *sql.DB) repository.FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, fb *domain.Feedback) error {
	query := `INSERT INTO feedbacks (book_id, rater_id, note, comment, created_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query, fb.BookID, fb.RaterID, fb.Note, fb.Comment, time.Now()).
		Scan(&fb.ID, &fb.CreatedOn)
}

func (r *feedbackRepository) ListByBook(ctx context.Context, bookID int32, page, pageSize int32) ([]domain.Feedback, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM feedbacks WHERE book_id = $1`, bookID).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT id, book_id, rater_id, note, comment, created_on FROM feedbacks
	          WHERE book_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, bookID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var feedbacks []domain.Feedback
	for rows.Next() {
		var fb domain.Feedback
		if err := rows.Scan(&fb.ID, &fb.BookID, &fb.RaterID, &fb.Note, &fb.Comment, &fb.CreatedOn); err != nil {
			return nil, 0, err
		}
		feedbacks = append(feedbacks, fb)
	}
	return feedbacks, count, rows.Err()
}

func (r *feedbackRepository) NotesByBook(ctx context.Context, bookID int32) ([]float64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT note FROM feedbacks WHERE book_id = $1`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []float64
	for rows.Next() {
		var n float64
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}
