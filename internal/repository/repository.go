package repository

import (
	"context"
	"time"

	"booknet-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) error
	GetByID(ctx context.Context, id int32) (*domain.Book, error)
	Update(ctx context.Context, book *domain.Book) error
	// ListDisplayable returns shareable, non-archived books not owned by the
	// viewer, newest first.
	ListDisplayable(ctx context.Context, viewerID int32, page, pageSize int32) ([]domain.Book, int32, error)
	ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Book, int32, error)
}

type LoanRepository interface {
	Create(ctx context.Context, loan *domain.Loan) error
	Update(ctx context.Context, loan *domain.Loan) error
	// FindUnsettledByBook returns the loan currently blocking new borrows of
	// the book (open or return-pending), or nil if the book is available.
	FindUnsettledByBook(ctx context.Context, bookID int32) (*domain.Loan, error)
	// FindOpenByBookAndBorrower returns the borrower's outstanding loan on
	// the book, or nil.
	FindOpenByBookAndBorrower(ctx context.Context, bookID, borrowerID int32) (*domain.Loan, error)
	// FindReturnPendingByBook returns the loan awaiting owner approval for
	// the book, or nil.
	FindReturnPendingByBook(ctx context.Context, bookID int32) (*domain.Loan, error)
	ListByBorrower(ctx context.Context, borrowerID int32, page, pageSize int32) ([]domain.Loan, int32, error)
	// ListByBookOwner returns loans taken out against books the given user
	// owns, newest first.
	ListByBookOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Loan, int32, error)
	// ListOpenBorrowedBefore returns open loans borrowed before the cutoff.
	ListOpenBorrowedBefore(ctx context.Context, cutoff time.Time) ([]domain.Loan, error)
}

type FeedbackRepository interface {
	Create(ctx context.Context, fb *domain.Feedback) error
	ListByBook(ctx context.Context, bookID int32, page, pageSize int32) ([]domain.Feedback, int32, error)
	// NotesByBook returns every note recorded for the book, for the rating
	// aggregation.
	NotesByBook(ctx context.Context, bookID int32) ([]float64, error)
}
