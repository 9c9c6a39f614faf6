// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// BookingCreatedEvent is published after a booking transaction commits. It
// carries enough information for downstream consumers to notify the studio
// or feed analytics without querying the primary database. The couple's
// password never appears here.
type BookingCreatedEvent struct {
	BookingID   uint64  `json:"booking_id"`
	ClientID    string  `json:"client_id"`
	PackageName string  `json:"package_name"`
	TotalPrice  float64 `json:"total_price"`
	WeddingDate string  `json:"wedding_date,omitempty"`
	Email       string  `json:"email"`
	CreatedAt   string  `json:"created_at"`
}

// MessageSentEvent is published when a couple writes to the studio through
// the portal, so the back office can be notified out-of-band.
type MessageSentEvent struct {
	ClientID string `json:"client_id"`
	Sender   string `json:"sender"`
	Preview  string `json:"preview"`
	SentAt   string `json:"sent_at"`
}
