package models

import "time"

type SavedListing struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ListingID string    `json:"listing_id"`
	CreatedAt time.Time `json:"created_at"`
}

type SaveListingRequest struct {
	ListingID string `json:"listing_id"`
}

type SavedStatusResponse struct {
	ListingID string `json:"listing_id"`
	Saved     bool   `json:"saved"`
}
