package model

import "time"

// AvailabilityEvent is an admin-managed calendar entry. The public calendar
// additionally shows read-only projections of booked wedding dates, which
// are derived from bookings and never stored here.
type AvailabilityEvent struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	IsAllDay    bool      `json:"isAllDay"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CalendarEntry is what GET /api/availability returns: either an admin event
// or a booking-derived busy day. Source is "event" or "booking".
type CalendarEntry struct {
	Title     string    `json:"title"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	IsAllDay  bool      `json:"isAllDay"`
	Source    string    `json:"source"`
}
