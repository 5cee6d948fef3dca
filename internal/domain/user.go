package domain

import "time"

type User struct {
	ID           int32     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedOn    time.Time `json:"created_on"`
}

// Actor is the already-authenticated identity performing an operation. It is
// resolved by the auth middleware and passed as an ordinary parameter into
// every service call; core code never reaches back into the security layer.
type Actor struct {
	ID int32
}
