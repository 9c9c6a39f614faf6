package model

import "time"

// Booking is the core business record representing one wedding engagement
// and all its logistics. A booking is created once through the public
// calculator flow and later addressed by the couple through the client
// portal using their four-digit client ID.
//
// PasswordHash is never serialized; the portal authenticates with it but no
// read endpoint may expose it.
type Booking struct {
	ID             uint64     `json:"id"`
	ClientID       string     `json:"clientId"`
	PasswordHash   string     `json:"-"`
	AccessKey      string     `json:"accessKey"`
	PackageName    string     `json:"packageName"`
	TotalPrice     float64    `json:"totalPrice"`
	SelectedItems  []string   `json:"selectedItems"`
	BrideName      string     `json:"brideName"`
	GroomName      string     `json:"groomName"`
	WeddingDate    *time.Time `json:"weddingDate"`
	BrideAddress   string     `json:"brideAddress"`
	GroomAddress   string     `json:"groomAddress"`
	Locations      string     `json:"locations"`
	Schedule       string     `json:"schedule"`
	Email          string     `json:"email"`
	PhoneNumber    string     `json:"phoneNumber"`
	AdditionalInfo string     `json:"additionalInfo"`
	DiscountCode   string     `json:"discountCode"`
	CreatedAt      time.Time  `json:"createdAt"`
}
