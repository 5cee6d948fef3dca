package domain

import "time"

type LoanStatus string

const (
	// LoanStatusOpen means the loan is outstanding.
	LoanStatusOpen LoanStatus = "OPEN"
	// LoanStatusReturnPending means the borrower signaled return and the
	// owner has not confirmed yet.
	LoanStatusReturnPending LoanStatus = "RETURN_PENDING"
	// LoanStatusClosed is terminal: the owner approved the return.
	LoanStatusClosed LoanStatus = "CLOSED"
)

// Loan is the transaction-history record of one borrow. Loans are created on
// borrow, mutated in place by the return and approve transitions, and never
// deleted; they form the audit trail.
type Loan struct {
	ID             int32      `json:"id"`
	BookID         int32      `json:"book_id"`
	BorrowerID     int32      `json:"borrower_id"`
	Returned       bool       `json:"returned"`
	ReturnApproved bool       `json:"return_approved"`
	BorrowedOn     time.Time  `json:"borrowed_on"`
	ReturnedOn     *time.Time `json:"returned_on,omitempty"`
	ApprovedOn     *time.Time `json:"approved_on,omitempty"`
}

// Status derives the lifecycle stage from the two booleans.
func (l *Loan) Status() LoanStatus {
	switch {
	case !l.Returned:
		return LoanStatusOpen
	case !l.ReturnApproved:
		return LoanStatusReturnPending
	default:
		return LoanStatusClosed
	}
}

// Settled reports whether the loan no longer blocks a new borrow of the same
// book. A book is available exactly when every one of its loans is settled.
func (l *Loan) Settled() bool {
	return l.Returned && l.ReturnApproved
}
