package domain

import "time"

type Book struct {
	ID         int32     `json:"id"`
	OwnerID    int32     `json:"owner_id"`
	Title      string    `json:"title"`
	AuthorName string    `json:"author_name"`
	ISBN       string    `json:"isbn"`
	Synopsis   string    `json:"synopsis"`
	CoverRef   string    `json:"cover_ref,omitempty"`
	Archived   bool      `json:"archived"`
	Shareable  bool      `json:"shareable"`
	CreatedOn  time.Time `json:"created_on"`
}

// Borrowable reports whether the book currently accepts new loans and
// feedback. An archived book is blocked regardless of the shareable flag.
func (b *Book) Borrowable() bool {
	return b.Shareable && !b.Archived
}
