package model

import "time"

// GalleryItem is a published portfolio image. ImageURL points at the blob
// store; PublicID is the blob identifier needed to delete it again.
type GalleryItem struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"imageUrl"`
	PublicID  string    `json:"publicId"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
}
