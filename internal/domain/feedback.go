package domain

import "time"

// Feedback note bounds, inclusive.
const (
	FeedbackNoteMin = 0.0
	FeedbackNoteMax = 5.0
)

// Feedback is a single rating of a book. Immutable once recorded.
type Feedback struct {
	ID        int32     `json:"id"`
	BookID    int32     `json:"book_id"`
	RaterID   int32     `json:"rater_id"`
	Note      float64   `json:"note"`
	Comment   string    `json:"comment"`
	CreatedOn time.Time `json:"created_on"`
}
