package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"booknet-backend/internal/domain"
	"booknet-backend/internal/repository"

	"github.com/lib/pq"
)

const loanColumns = `id, book_id, borrower_id, returned, return_approved, borrowed_on, returned_on, approved_on`

type loanRepository struct {
	db *sql.DB
}

func NewLoanRepository(db *sql.DB) repository.LoanRepository {
	return &loanRepository{db: db}
}

// Create inserts the loan. The loans_one_unsettled_per_book partial unique
// index is the durable backstop for the borrow race: a losing concurrent
// writer surfaces here as a unique violation and is reported as the same
// already-borrowed failure the precondition check produces.
func (r *loanRepository) Create(ctx context.Context, l *domain.Loan) error {
	query := `INSERT INTO loans (book_id, borrower_id, returned, return_approved, borrowed_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id, borrowed_on`
	err := r.db.QueryRowContext(ctx, query, l.BookID, l.BorrowerID, l.Returned, l.ReturnApproved, time.Now()).
		Scan(&l.ID, &l.BorrowedOn)
	if isUniqueViolation(err) {
		return domain.InvalidState("already borrowed")
	}
	return err
}

func (r *loanRepository) Update(ctx context.Context, l *domain.Loan) error {
	query := `UPDATE loans SET returned=$1, return_approved=$2, returned_on=$3, approved_on=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, l.Returned, l.ReturnApproved, l.ReturnedOn, l.ApprovedOn, l.ID)
	return err
}

func (r *loanRepository) FindUnsettledByBook(ctx context.Context, bookID int32) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE book_id = $1 AND return_approved = false`
	return r.findOne(ctx, query, bookID)
}

func (r *loanRepository) FindOpenByBookAndBorrower(ctx context.Context, bookID, borrowerID int32) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE book_id = $1 AND borrower_id = $2 AND returned = false`
	return r.findOne(ctx, query, bookID, borrowerID)
}

func (r *loanRepository) FindReturnPendingByBook(ctx context.Context, bookID int32) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE book_id = $1 AND returned = true AND return_approved = false`
	return r.findOne(ctx, query, bookID)
}

func (r *loanRepository) findOne(ctx context.Context, query string, args ...interface{}) (*domain.Loan, error) {
	l := &domain.Loan{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&l.ID, &l.BookID, &l.BorrowerID, &l.Returned, &l.ReturnApproved, &l.BorrowedOn, &l.ReturnedOn, &l.ApprovedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *loanRepository) ListByBorrower(ctx context.Context, borrowerID int32, page, pageSize int32) ([]domain.Loan, int32, error) {
	where := `WHERE borrower_id = $1`
	return r.list(ctx, where, borrowerID, page, pageSize)
}

func (r *loanRepository) ListByBookOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Loan, int32, error) {
	where := `WHERE book_id IN (SELECT id FROM books WHERE owner_id = $1)`
	return r.list(ctx, where, ownerID, page, pageSize)
}

func (r *loanRepository) list(ctx context.Context, where string, userID int32, page, pageSize int32) ([]domain.Loan, int32, error) {
	var count int32
	countQuery := `SELECT count(*) FROM loans ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT ` + loanColumns + ` FROM loans ` + where + ` ORDER BY borrowed_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	loans, err := scanLoans(rows)
	if err != nil {
		return nil, 0, err
	}
	return loans, count, nil
}

func (r *loanRepository) ListOpenBorrowedBefore(ctx context.Context, cutoff time.Time) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE returned = false AND borrowed_on < $1 ORDER BY borrowed_on ASC`
	rows, err := r.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLoans(rows)
}

func scanLoans(rows *sql.Rows) ([]domain.Loan, error) {
	var loans []domain.Loan
	for rows.Next() {
		var l domain.Loan
		if err := rows.Scan(&l.ID, &l.BookID, &l.BorrowerID, &l.Returned, &l.ReturnApproved, &l.BorrowedOn, &l.ReturnedOn, &l.ApprovedOn); err != nil {
			return nil, err
		}
		loans = append(loans, l)
	}
	return loans, rows.Err()
}

// isUniqueViolation reports whether err is a Postgres unique_violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
