package service

import (
	"context"
	"time"

	"booknet-backend/internal/domain"
	"booknet-backend/internal/logger"
	"booknet-backend/internal/repository"
)

type lendingService struct {
	loanRepo repository.LoanRepository
	bookRepo repository.BookRepository
	userRepo repository.UserRepository
	emailSvc EmailService
	locks    *BookLocks
}

func NewLendingService(
	loanRepo repository.LoanRepository,
	bookRepo repository.BookRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
	locks *BookLocks,
) LendingService {
	return &lendingService{
		loanRepo: loanRepo,
		bookRepo: bookRepo,
		userRepo: userRepo,
		emailSvc: emailSvc,
		locks:    locks,
	}
}

// Borrow opens a loan. The whole check-and-create sequence runs under the
// book's lock; the partial unique index on loans is the durable backstop if
// another writer slips past anyway.
func (s *lendingService) Borrow(ctx context.Context, actor domain.Actor, bookID int32) (int32, error) {
	unlock := s.locks.Lock(bookID)
	defer unlock()

	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return 0, err
	}
	if !book.Borrowable() {
		return 0, domain.InvalidState("not shareable or archived")
	}
	if domain.IsOwner(actor, book) {
		return 0, domain.InvalidState("self-loan")
	}

	unsettled, err := s.loanRepo.FindUnsettledByBook(ctx, bookID)
	if err != nil {
		return 0, err
	}
	if unsettled != nil {
		if domain.IsBorrower(actor, unsettled) {
			return 0, domain.InvalidState("already borrowed by you")
		}
		return 0, domain.InvalidState("already borrowed")
	}

	loan := &domain.Loan{
		BookID:     bookID,
		BorrowerID: actor.ID,
	}
	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return 0, err
	}

	s.notifyBorrowed(ctx, book, actor)
	return loan.ID, nil
}

func (s *lendingService) Return(ctx context.Context, actor domain.Actor, bookID int32) (int32, error) {
	unlock := s.locks.Lock(bookID)
	defer unlock()

	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return 0, err
	}
	if !book.Borrowable() {
		return 0, domain.InvalidState("not shareable or archived")
	}
	if domain.IsOwner(actor, book) {
		return 0, domain.InvalidState("self-loan")
	}

	loan, err := s.loanRepo.FindOpenByBookAndBorrower(ctx, bookID, actor.ID)
	if err != nil {
		return 0, err
	}
	if loan == nil {
		return 0, domain.NotFound("no active loan for this user")
	}

	now := time.Now()
	loan.Returned = true
	loan.ReturnedOn = &now
	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return 0, err
	}

	s.notifyReturned(ctx, book, actor)
	return loan.ID, nil
}

// ApproveReturn is the owner's confirmation, the inverse authorization
// direction from borrow and return.
func (s *lendingService) ApproveReturn(ctx context.Context, actor domain.Actor, bookID int32) (int32, error) {
	unlock := s.locks.Lock(bookID)
	defer unlock()

	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return 0, err
	}
	if !book.Borrowable() {
		return 0, domain.InvalidState("not shareable or archived")
	}
	if !domain.IsOwner(actor, book) {
		return 0, domain.PermissionDenied("only the owner can approve a return")
	}

	loan, err := s.loanRepo.FindReturnPendingByBook(ctx, bookID)
	if err != nil {
		return 0, err
	}
	if loan == nil {
		return 0, domain.InvalidState("not yet returned")
	}

	now := time.Now()
	loan.ReturnApproved = true
	loan.ApprovedOn = &now
	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return 0, err
	}

	s.notifyApproved(ctx, book, loan)
	return loan.ID, nil
}

func (s *lendingService) ListBorrowed(ctx context.Context, actor domain.Actor, page, pageSize int32) ([]domain.Loan, int32, error) {
	return s.loanRepo.ListByBorrower(ctx, actor.ID, page, pageSize)
}

func (s *lendingService) ListReturned(ctx context.Context, actor domain.Actor, page, pageSize int32) ([]domain.Loan, int32, error) {
	return s.loanRepo.ListByBookOwner(ctx, actor.ID, page, pageSize)
}

// Notifications are best-effort: a delivery failure never rolls back or
// fails the transition.

func (s *lendingService) notifyBorrowed(ctx context.Context, book *domain.Book, actor domain.Actor) {
	owner, _ := s.userRepo.GetByID(ctx, book.OwnerID)
	borrower, _ := s.userRepo.GetByID(ctx, actor.ID)
	if owner == nil || borrower == nil {
		return
	}
	if err := s.emailSvc.SendBorrowNotification(ctx, owner.Email, borrower.Name, book.Title); err != nil {
		logger.Warn("failed to send borrow notification", "book_id", book.ID, "error", err)
	}
}

func (s *lendingService) notifyReturned(ctx context.Context, book *domain.Book, actor domain.Actor) {
	owner, _ := s.userRepo.GetByID(ctx, book.OwnerID)
	borrower, _ := s.userRepo.GetByID(ctx, actor.ID)
	if owner == nil || borrower == nil {
		return
	}
	if err := s.emailSvc.SendReturnNotification(ctx, owner.Email, borrower.Name, book.Title); err != nil {
		logger.Warn("failed to send return notification", "book_id", book.ID, "error", err)
	}
}

func (s *lendingService) notifyApproved(ctx context.Context, book *domain.Book, loan *domain.Loan) {
	borrower, _ := s.userRepo.GetByID(ctx, loan.BorrowerID)
	if borrower == nil {
		return
	}
	if err := s.emailSvc.SendReturnApprovedNotification(ctx, borrower.Email, book.Title); err != nil {
		logger.Warn("failed to send approval notification", "book_id", book.ID, "error", err)
	}
}
