package model

import "time"

// Guest is one RSVP entry for a booking. Guests submit through the public
// RSVP form with the couple's client ID; the couple and admins manage the
// resulting list.
type Guest struct {
	ID         uint64    `json:"id"`
	ClientID   string    `json:"clientId"`
	Name       string    `json:"name"`
	Attending  bool      `json:"attending"`
	Companions int       `json:"companions"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"createdAt"`
}
