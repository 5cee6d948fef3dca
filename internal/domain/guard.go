package domain

// Ownership and borrower checks are centralized here so every mutation path
// runs the same predicate instead of re-deriving the comparison inline.

// IsOwner reports whether the actor owns the book.
func IsOwner(actor Actor, book *Book) bool {
	return book != nil && actor.ID == book.OwnerID
}

// IsBorrower reports whether the actor is the borrower on the loan.
func IsBorrower(actor Actor, loan *Loan) bool {
	return loan != nil && actor.ID == loan.BorrowerID
}
