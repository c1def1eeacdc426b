package entity

import "time"

// User is immutable after registration: there is no update or delete path.
// PasswordHash never crosses the API boundary.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
