package service

import (
	"context"
	"strings"

	"booknet-backend/internal/domain"
	"booknet-backend/internal/repository"
)

type bookService struct {
	bookRepo     repository.BookRepository
	feedbackRepo repository.FeedbackRepository
	locks        *BookLocks
}

func NewBookService(bookRepo repository.BookRepository, feedbackRepo repository.FeedbackRepository, locks *BookLocks) BookService {
	return &bookService{
		bookRepo:     bookRepo,
		feedbackRepo: feedbackRepo,
		locks:        locks,
	}
}

func (s *bookService) CreateBook(ctx context.Context, actor domain.Actor, book *domain.Book) (int32, error) {
	if strings.TrimSpace(book.Title) == "" {
		return 0, domain.Validation("title is required")
	}
	if strings.TrimSpace(book.AuthorName) == "" {
		return 0, domain.Validation("author name is required")
	}

	book.OwnerID = actor.ID
	book.Archived = false
	if err := s.bookRepo.Create(ctx, book); err != nil {
		return 0, err
	}
	return book.ID, nil
}

func (s *bookService) GetBook(ctx context.Context, id int32) (*domain.Book, float64, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	notes, err := s.feedbackRepo.NotesByBook(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	return book, Rate(notes), nil
}

func (s *bookService) ListBooks(ctx context.Context, actor domain.Actor, page, pageSize int32) ([]domain.Book, int32, error) {
	return s.bookRepo.ListDisplayable(ctx, actor.ID, page, pageSize)
}

func (s *bookService) ListOwnedBooks(ctx context.Context, actor domain.Actor, page, pageSize int32) ([]domain.Book, int32, error) {
	return s.bookRepo.ListByOwner(ctx, actor.ID, page, pageSize)
}

func (s *bookService) ToggleShareable(ctx context.Context, actor domain.Actor, bookID int32) (bool, error) {
	return s.toggle(ctx, actor, bookID, func(b *domain.Book) bool {
		b.Shareable = !b.Shareable
		return b.Shareable
	})
}

func (s *bookService) ToggleArchived(ctx context.Context, actor domain.Actor, bookID int32) (bool, error) {
	return s.toggle(ctx, actor, bookID, func(b *domain.Book) bool {
		b.Archived = !b.Archived
		return b.Archived
	})
}

// toggle runs a read-modify-write of one flag under the book's lock so
// concurrent toggles cannot lose updates.
func (s *bookService) toggle(ctx context.Context, actor domain.Actor, bookID int32, flip func(*domain.Book) bool) (bool, error) {
	unlock := s.locks.Lock(bookID)
	defer unlock()

	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return false, err
	}
	if !domain.IsOwner(actor, book) {
		return false, domain.PermissionDenied("you cannot update another member's book")
	}

	value := flip(book)
	if err := s.bookRepo.Update(ctx, book); err != nil {
		return false, err
	}
	return value, nil
}

func (s *bookService) UpdateCover(ctx context.Context, actor domain.Actor, bookID int32, coverRef string) (string, error) {
	unlock := s.locks.Lock(bookID)
	defer unlock()

	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return "", err
	}
	if !domain.IsOwner(actor, book) {
		return "", domain.PermissionDenied("you cannot update another member's book")
	}

	previous := book.CoverRef
	book.CoverRef = coverRef
	if err := s.bookRepo.Update(ctx, book); err != nil {
		return "", err
	}
	return previous, nil
}
