package model

import "time"

// Message senders.
const (
	SenderClient = "client"
	SenderAdmin  = "admin"
)

// Message is one entry in the thread between a couple and the studio. The
// thread is keyed by the booking's client ID.
type Message struct {
	ID        uint64    `json:"id"`
	ClientID  string    `json:"clientId"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}
