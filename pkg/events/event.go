package events

import "time"

// Event types published to the domain-event queue.
const (
	UserRegistered = "user.registered"
	ListingCreated = "listing.created"
	ListingUpdated = "listing.updated"
	ListingDeleted = "listing.deleted"
)

// Event is the message body consumers receive. Publishing is best-effort:
// the request that produced the event never fails because the broker did.
type Event struct {
	Type      string    `json:"type"`
	UserID    int64     `json:"user_id,omitempty"`
	ListingID int64     `json:"listing_id,omitempty"`
	At        time.Time `json:"at"`
}

func New(eventType string, userID, listingID int64) Event {
	return Event{
		Type:      eventType,
		UserID:    userID,
		ListingID: listingID,
		At:        time.Now().UTC(),
	}
}
