package model

import "time"

// AccessKey is an admin-issued short code handed to a prospective couple.
// Possessing a key gates the ability to submit a booking from the public
// calculator.
type AccessKey struct {
	ID         uint64    `json:"id"`
	Key        string    `json:"key"`
	ClientName string    `json:"clientName"`
	CreatedAt  time.Time `json:"createdAt"`
}
