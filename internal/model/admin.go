package model

import "time"

// Admin is a back-office account. A single row is seeded at bootstrap when
// the table is empty.
type Admin struct {
	ID           uint64    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
