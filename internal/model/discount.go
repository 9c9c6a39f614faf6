package model

import "time"

// DiscountCode grants a percentage discount in the calculator. A code is
// usable while Active and, when ExpiresAt is set, before that moment.
type DiscountCode struct {
	ID        uint64     `json:"id"`
	Code      string     `json:"code"`
	Percent   int        `json:"percent"`
	Active    bool       `json:"active"`
	ExpiresAt *time.Time `json:"expiresAt"`
	CreatedAt time.Time  `json:"createdAt"`
}
