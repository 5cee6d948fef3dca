package service

import "sync"

// BookLocks serializes check-then-act sequences against a single book. Borrow
// checks availability and then creates a loan; without per-book mutual
// exclusion two concurrent borrowers could both pass the check. The flag
// toggles use the same lock to avoid lost read-modify-write updates. Locks
// are never removed; the per-book footprint is one mutex.
type BookLocks struct {
	locks sync.Map // bookID -> *sync.Mutex
}

func NewBookLocks() *BookLocks {
	return &BookLocks{}
}

// Lock acquires the lock for the book and returns the matching unlock.
func (l *BookLocks) Lock(bookID int32) func() {
	v, _ := l.locks.LoadOrStore(bookID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
