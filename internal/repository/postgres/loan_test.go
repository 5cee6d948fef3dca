package postgres_test

import (
	"context"
	"testing"
	"time"

	"booknet-backend/internal/domain"
	"booknet-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestLoanRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewLoanRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		loan := &domain.Loan{BookID: 2, BorrowerID: 3}

		mock.ExpectQuery("INSERT INTO loans").
			WithArgs(loan.BookID, loan.BorrowerID, false, false, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "borrowed_on"}).AddRow(1, time.Now()))

		err := repo.Create(ctx, loan)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), loan.ID)
		assert.False(t, loan.BorrowedOn.IsZero())
	})

	t.Run("UniqueViolation", func(t *testing.T) {
		loan := &domain.Loan{BookID: 2, BorrowerID: 4}

		mock.ExpectQuery("INSERT INTO loans").
			WithArgs(loan.BookID, loan.BorrowerID, false, false, sqlmock.AnyArg()).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "loans_one_unsettled_per_book"})

		err := repo.Create(ctx, loan)
		assert.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindInvalidState))
		assert.Equal(t, "already borrowed", err.Error())
	})
}

func TestLoanRepository_FindUnsettledByBook(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewLoanRepository(db)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "book_id", "borrower_id", "returned", "return_approved", "borrowed_on", "returned_on", "approved_on"}).
			AddRow(7, 2, 3, true, false, time.Now(), time.Now(), nil)

		mock.ExpectQuery("SELECT (.+) FROM loans WHERE book_id").
			WithArgs(int32(2)).
			WillReturnRows(rows)

		loan, err := repo.FindUnsettledByBook(ctx, 2)
		assert.NoError(t, err)
		assert.NotNil(t, loan)
		assert.Equal(t, int32(7), loan.ID)
		assert.Equal(t, domain.LoanStatusReturnPending, loan.Status())
	})

	t.Run("NoRowsIsNilLoan", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM loans WHERE book_id").
			WithArgs(int32(2)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "book_id", "borrower_id", "returned", "return_approved", "borrowed_on", "returned_on", "approved_on"}))

		loan, err := repo.FindUnsettledByBook(ctx, 2)
		assert.NoError(t, err)
		assert.Nil(t, loan)
	})
}

func TestLoanRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewLoanRepository(db)
	ctx := context.Background()

	now := time.Now()
	loan := &domain.Loan{ID: 7, Returned: true, ReturnApproved: false, ReturnedOn: &now}

	mock.ExpectExec("UPDATE loans SET").
		WithArgs(loan.Returned, loan.ReturnApproved, loan.ReturnedOn, loan.ApprovedOn, loan.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Update(ctx, loan))
}

func TestLoanRepository_ListByBorrower(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewLoanRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT count").
		WithArgs(int32(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	rows := sqlmock.NewRows([]string{"id", "book_id", "borrower_id", "returned", "return_approved", "borrowed_on", "returned_on", "approved_on"}).
		AddRow(2, 9, 3, false, false, time.Now(), nil, nil).
		AddRow(1, 5, 3, true, true, time.Now().Add(-time.Hour), time.Now(), time.Now())

	mock.ExpectQuery("SELECT (.+) FROM loans WHERE borrower_id").
		WithArgs(int32(3), int32(10), int32(0)).
		WillReturnRows(rows)

	loans, total, err := repo.ListByBorrower(ctx, 3, 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, int32(2), total)
	assert.Len(t, loans, 2)
	assert.Equal(t, domain.LoanStatusOpen, loans[0].Status())
	assert.Equal(t, domain.LoanStatusClosed, loans[1].Status())
}
