package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"booknet-backend/internal/domain"
	"booknet-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The lending tests run against stateful in-memory fakes so the full
// lifecycle and the borrow race can be exercised end to end. The fake loan
// store enforces the same at-most-one-unsettled-loan-per-book constraint the
// Postgres partial unique index provides.

type fakeLoanRepo struct {
	mu    sync.Mutex
	next  int32
	loans map[int32]*domain.Loan
}

func newFakeLoanRepo() *fakeLoanRepo {
	return &fakeLoanRepo{loans: make(map[int32]*domain.Loan)}
}

func (r *fakeLoanRepo) Create(ctx context.Context, l *domain.Loan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.loans {
		if existing.BookID == l.BookID && !existing.ReturnApproved {
			return domain.InvalidState("already borrowed")
		}
	}
	r.next++
	l.ID = r.next
	l.BorrowedOn = time.Now()
	cp := *l
	r.loans[l.ID] = &cp
	return nil
}

func (r *fakeLoanRepo) Update(ctx context.Context, l *domain.Loan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *l
	r.loans[l.ID] = &cp
	return nil
}

func (r *fakeLoanRepo) FindUnsettledByBook(ctx context.Context, bookID int32) (*domain.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.loans {
		if l.BookID == bookID && !l.ReturnApproved {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeLoanRepo) FindOpenByBookAndBorrower(ctx context.Context, bookID, borrowerID int32) (*domain.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.loans {
		if l.BookID == bookID && l.BorrowerID == borrowerID && !l.Returned {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeLoanRepo) FindReturnPendingByBook(ctx context.Context, bookID int32) (*domain.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.loans {
		if l.BookID == bookID && l.Returned && !l.ReturnApproved {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeLoanRepo) ListByBorrower(ctx context.Context, borrowerID int32, page, pageSize int32) ([]domain.Loan, int32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Loan
	for _, l := range r.loans {
		if l.BorrowerID == borrowerID {
			out = append(out, *l)
		}
	}
	return out, int32(len(out)), nil
}

func (r *fakeLoanRepo) ListByBookOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Loan, int32, error) {
	return nil, 0, nil
}

func (r *fakeLoanRepo) ListOpenBorrowedBefore(ctx context.Context, cutoff time.Time) ([]domain.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Loan
	for _, l := range r.loans {
		if !l.Returned && l.BorrowedOn.Before(cutoff) {
			out = append(out, *l)
		}
	}
	return out, nil
}

// activeCount reports how many loans for the book are not yet returned.
func (r *fakeLoanRepo) activeCount(bookID int32) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, l := range r.loans {
		if l.BookID == bookID && !l.Returned {
			n++
		}
	}
	return n
}

type fakeBookRepo struct {
	mu    sync.Mutex
	books map[int32]*domain.Book
}

func newFakeBookRepo(books ...*domain.Book) *fakeBookRepo {
	r := &fakeBookRepo{books: make(map[int32]*domain.Book)}
	for _, b := range books {
		cp := *b
		r.books[b.ID] = &cp
	}
	return r
}

func (r *fakeBookRepo) Create(ctx context.Context, b *domain.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.ID = int32(len(r.books) + 1)
	cp := *b
	r.books[b.ID] = &cp
	return nil
}

func (r *fakeBookRepo) GetByID(ctx context.Context, id int32) (*domain.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[id]
	if !ok {
		return nil, domain.NotFound(fmt.Sprintf("no book found with the id %d", id))
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookRepo) Update(ctx context.Context, b *domain.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *b
	r.books[b.ID] = &cp
	return nil
}

func (r *fakeBookRepo) ListDisplayable(ctx context.Context, viewerID int32, page, pageSize int32) ([]domain.Book, int32, error) {
	return nil, 0, nil
}

func (r *fakeBookRepo) ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Book, int32, error) {
	return nil, 0, nil
}

type fakeUserRepo struct{}

func (fakeUserRepo) Create(ctx context.Context, u *domain.User) error { return nil }

func (fakeUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	return &domain.User{ID: id, Name: fmt.Sprintf("user-%d", id), Email: fmt.Sprintf("user-%d@test.local", id)}, nil
}

func (fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, domain.NotFound("no user found with this email")
}

type noopEmail struct{}

func (noopEmail) SendBorrowNotification(ctx context.Context, ownerEmail, borrowerName, bookTitle string) error {
	return nil
}
func (noopEmail) SendReturnNotification(ctx context.Context, ownerEmail, borrowerName, bookTitle string) error {
	return nil
}
func (noopEmail) SendReturnApprovedNotification(ctx context.Context, borrowerEmail, bookTitle string) error {
	return nil
}
func (noopEmail) SendLoanReminder(ctx context.Context, borrowerEmail, bookTitle string, daysOut int) error {
	return nil
}

func newLendingFixture(books ...*domain.Book) (service.LendingService, *fakeLoanRepo) {
	loanRepo := newFakeLoanRepo()
	bookRepo := newFakeBookRepo(books...)
	svc := service.NewLendingService(loanRepo, bookRepo, fakeUserRepo{}, noopEmail{}, service.NewBookLocks())
	return svc, loanRepo
}

func TestLendingService_FullCycle(t *testing.T) {
	ctx := context.Background()
	owner := domain.Actor{ID: 1}
	borrower := domain.Actor{ID: 2}
	other := domain.Actor{ID: 3}
	book := &domain.Book{ID: 10, OwnerID: owner.ID, Title: "Dune", Shareable: true}

	svc, loanRepo := newLendingFixture(book)

	loanID, err := svc.Borrow(ctx, borrower, book.ID)
	require.NoError(t, err)
	assert.NotZero(t, loanID)

	// The same borrower cannot borrow again before the loan settles.
	_, err = svc.Borrow(ctx, borrower, book.ID)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidState))
	assert.Equal(t, "already borrowed by you", err.Error())

	// Nor can anyone else.
	_, err = svc.Borrow(ctx, other, book.ID)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidState))
	assert.Equal(t, "already borrowed", err.Error())

	// Borrower signals the return.
	returnedID, err := svc.Return(ctx, borrower, book.ID)
	require.NoError(t, err)
	assert.Equal(t, loanID, returnedID)

	// The return is pending, so the book is still not borrowable.
	_, err = svc.Borrow(ctx, other, book.ID)
	require.Error(t, err)
	assert.Equal(t, "already borrowed", err.Error())

	// Only the owner may approve.
	_, err = svc.ApproveReturn(ctx, borrower, book.ID)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindPermissionDenied))

	approvedID, err := svc.ApproveReturn(ctx, owner, book.ID)
	require.NoError(t, err)
	assert.Equal(t, loanID, approvedID)

	// Approving twice fails: the loan is closed.
	_, err = svc.ApproveReturn(ctx, owner, book.ID)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidState))
	assert.Equal(t, "not yet returned", err.Error())

	// The book is available again.
	secondID, err := svc.Borrow(ctx, borrower, book.ID)
	require.NoError(t, err)
	assert.NotEqual(t, loanID, secondID)

	assert.Equal(t, 1, loanRepo.activeCount(book.ID))
}

func TestLendingService_SelfLoan(t *testing.T) {
	ctx := context.Background()
	owner := domain.Actor{ID: 1}
	book := &domain.Book{ID: 10, OwnerID: owner.ID, Shareable: true}

	svc, _ := newLendingFixture(book)

	_, err := svc.Borrow(ctx, owner, book.ID)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidState))
	assert.Equal(t, "self-loan", err.Error())
}

func TestLendingService_ShareabilityGate(t *testing.T) {
	ctx := context.Background()
	borrower := domain.Actor{ID: 2}

	t.Run("not shareable", func(t *testing.T) {
		svc, _ := newLendingFixture(&domain.Book{ID: 10, OwnerID: 1, Shareable: false})
		_, err := svc.Borrow(ctx, borrower, 10)
		require.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindInvalidState))
		assert.Equal(t, "not shareable or archived", err.Error())
	})

	t.Run("archived", func(t *testing.T) {
		svc, _ := newLendingFixture(&domain.Book{ID: 10, OwnerID: 1, Shareable: true, Archived: true})
		_, err := svc.Borrow(ctx, borrower, 10)
		require.Error(t, err)
		assert.Equal(t, "not shareable or archived", err.Error())
	})

	t.Run("book not found", func(t *testing.T) {
		svc, _ := newLendingFixture()
		_, err := svc.Borrow(ctx, borrower, 99)
		require.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindNotFound))
	})
}

func TestLendingService_ReturnWithoutLoan(t *testing.T) {
	ctx := context.Background()
	borrower := domain.Actor{ID: 2}
	book := &domain.Book{ID: 10, OwnerID: 1, Shareable: true}

	svc, _ := newLendingFixture(book)

	_, err := svc.Return(ctx, borrower, book.ID)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
	assert.Equal(t, "no active loan for this user", err.Error())
}

func TestLendingService_ApproveBeforeReturn(t *testing.T) {
	ctx := context.Background()
	owner := domain.Actor{ID: 1}
	borrower := domain.Actor{ID: 2}
	book := &domain.Book{ID: 10, OwnerID: owner.ID, Shareable: true}

	svc, _ := newLendingFixture(book)

	_, err := svc.Borrow(ctx, borrower, book.ID)
	require.NoError(t, err)

	// The loan is open, not pending, so there is nothing to approve.
	_, err = svc.ApproveReturn(ctx, owner, book.ID)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidState))
	assert.Equal(t, "not yet returned", err.Error())
}

func TestLendingService_ConcurrentBorrow(t *testing.T) {
	ctx := context.Background()
	book := &domain.Book{ID: 10, OwnerID: 1, Shareable: true}

	svc, loanRepo := newLendingFixture(book)

	const n = 32
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			actor := domain.Actor{ID: int32(i + 2)} // skip the owner
			_, errs[i] = svc.Borrow(ctx, actor, book.ID)
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		assert.True(t, domain.IsKind(err, domain.KindInvalidState))
		assert.Equal(t, "already borrowed", err.Error())
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, loanRepo.activeCount(book.ID))
}
