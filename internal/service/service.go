package service

import (
	"context"

	"booknet-backend/internal/domain"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, string, error) // access, refresh
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

type BookService interface {
	CreateBook(ctx context.Context, actor domain.Actor, book *domain.Book) (int32, error)
	// GetBook returns the book together with its aggregated rating.
	GetBook(ctx context.Context, id int32) (*domain.Book, float64, error)
	// ListBooks returns shareable books visible to the actor, excluding the
	// actor's own.
	ListBooks(ctx context.Context, actor domain.Actor, page, pageSize int32) ([]domain.Book, int32, error)
	ListOwnedBooks(ctx context.Context, actor domain.Actor, page, pageSize int32) ([]domain.Book, int32, error)
	// ToggleShareable flips the shareable flag and returns the new value.
	ToggleShareable(ctx context.Context, actor domain.Actor, bookID int32) (bool, error)
	// ToggleArchived flips the archived flag and returns the new value.
	ToggleArchived(ctx context.Context, actor domain.Actor, bookID int32) (bool, error)
	// UpdateCover replaces the book's cover reference and returns the key of
	// the cover it displaced, if any.
	UpdateCover(ctx context.Context, actor domain.Actor, bookID int32, coverRef string) (string, error)
}

type LendingService interface {
	// Borrow opens a loan on the book for the actor and returns the loan id.
	Borrow(ctx context.Context, actor domain.Actor, bookID int32) (int32, error)
	// Return marks the actor's open loan on the book as returned, awaiting
	// owner approval.
	Return(ctx context.Context, actor domain.Actor, bookID int32) (int32, error)
	// ApproveReturn closes the pending return on the book. Owner action.
	ApproveReturn(ctx context.Context, actor domain.Actor, bookID int32) (int32, error)
	ListBorrowed(ctx context.Context, actor domain.Actor, page, pageSize int32) ([]domain.Loan, int32, error)
	// ListReturned returns loans taken out against the actor's own books.
	ListReturned(ctx context.Context, actor domain.Actor, page, pageSize int32) ([]domain.Loan, int32, error)
}

type FeedbackService interface {
	Submit(ctx context.Context, actor domain.Actor, bookID int32, note float64, comment string) (int32, error)
	ListByBook(ctx context.Context, bookID int32, page, pageSize int32) ([]domain.Feedback, int32, error)
}

type EmailService interface {
	SendBorrowNotification(ctx context.Context, ownerEmail, borrowerName, bookTitle string) error
	SendReturnNotification(ctx context.Context, ownerEmail, borrowerName, bookTitle string) error
	SendReturnApprovedNotification(ctx context.Context, borrowerEmail, bookTitle string) error
	SendLoanReminder(ctx context.Context, borrowerEmail, bookTitle string, daysOut int) error
}
