package entity

import "time"

// Listing is owned by the user who created it; OwnerID is always the
// caller's resolved identity, never client input.
type Listing struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	OwnerID     int64     `json:"owner_id"`
}
