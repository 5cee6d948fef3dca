package service_test

import (
	"context"

	"booknet-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockBookRepo
type MockBookRepo struct {
	mock.Mock
}

func (m *MockBookRepo) Create(ctx context.Context, book *domain.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepo) GetByID(ctx context.Context, id int32) (*domain.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *MockBookRepo) Update(ctx context.Context, book *domain.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepo) ListDisplayable(ctx context.Context, viewerID int32, page, pageSize int32) ([]domain.Book, int32, error) {
	args := m.Called(ctx, viewerID, page, pageSize)
	return args.Get(0).([]domain.Book), args.Get(1).(int32), args.Error(2)
}

func (m *MockBookRepo) ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Book, int32, error) {
	args := m.Called(ctx, ownerID, page, pageSize)
	return args.Get(0).([]domain.Book), args.Get(1).(int32), args.Error(2)
}

// MockFeedbackRepo
type MockFeedbackRepo struct {
	mock.Mock
}

func (m *MockFeedbackRepo) Create(ctx context.Context, fb *domain.Feedback) error {
	args := m.Called(ctx, fb)
	return args.Error(0)
}

func (m *MockFeedbackRepo) ListByBook(ctx context.Context, bookID int32, page, pageSize int32) ([]domain.Feedback, int32, error) {
	args := m.Called(ctx, bookID, page, pageSize)
	return args.Get(0).([]domain.Feedback), args.Get(1).(int32), args.Error(2)
}

func (m *MockFeedbackRepo) NotesByBook(ctx context.Context, bookID int32) ([]float64, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float64), args.Error(1)
}
