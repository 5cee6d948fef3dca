package service

import (
	"context"
	"fmt"

	"booknet-backend/internal/domain"
	"booknet-backend/internal/repository"
)

type feedbackService struct {
	feedbackRepo repository.FeedbackRepository
	bookRepo     repository.BookRepository
}

func NewFeedbackService(feedbackRepo repository.FeedbackRepository, bookRepo repository.BookRepository) FeedbackService {
	return &feedbackService{
		feedbackRepo: feedbackRepo,
		bookRepo:     bookRepo,
	}
}

// Submit records feedback for a book. The rater does not have to have
// borrowed the book; only owners are barred from rating their own.
func (s *feedbackService) Submit(ctx context.Context, actor domain.Actor, bookID int32, note float64, comment string) (int32, error) {
	if note < domain.FeedbackNoteMin || note > domain.FeedbackNoteMax {
		return 0, domain.Validation(fmt.Sprintf("note must be between %.1f and %.1f", domain.FeedbackNoteMin, domain.FeedbackNoteMax))
	}

	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return 0, err
	}
	if !book.Borrowable() {
		return 0, domain.InvalidState("not shareable or archived")
	}
	if domain.IsOwner(actor, book) {
		return 0, domain.InvalidState("you cannot give feedback on your own book")
	}

	fb := &domain.Feedback{
		BookID:  bookID,
		RaterID: actor.ID,
		Note:    note,
		Comment: comment,
	}
	if err := s.feedbackRepo.Create(ctx, fb); err != nil {
		return 0, err
	}
	return fb.ID, nil
}

func (s *feedbackService) ListByBook(ctx context.Context, bookID int32, page, pageSize int32) ([]domain.Feedback, int32, error) {
	return s.feedbackRepo.ListByBook(ctx, bookID, page, pageSize)
}
