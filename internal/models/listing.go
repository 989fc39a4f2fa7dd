package models

import (
	"time"
)

// Sort keys accepted by the marketplace browse endpoint. Anything else
// falls back to SortNewest.
const (
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortPriceLow  = "price_low"
	SortPriceHigh = "price_high"
	SortYearNew   = "year_new"
	SortYearOld   = "year_old"
)

const ListingsPageSize = 9

type Listing struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Brand        string    `json:"brand"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	Price        float64   `json:"price"`
	Mileage      *int      `json:"mileage,omitempty"`
	FuelType     *string   `json:"fuel_type,omitempty"`
	Transmission *string   `json:"transmission,omitempty"`
	Category     *string   `json:"category,omitempty"`
	Color        *string   `json:"color,omitempty"`
	Description  string    `json:"description"`
	Images       []string  `json:"images"`
	Location     *string   `json:"location,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ListingFilter is derived from browse query parameters. A nil bound or
// empty string means the dimension is unconstrained.
type ListingFilter struct {
	Brand    string
	Category string
	MinPrice *int
	MaxPrice *int
	MinYear  *int
	MaxYear  *int
}

type ListingPageRequest struct {
	Filter   ListingFilter
	Sort     string
	Page     int
	PageSize int
}

// ListingCard is the summary view of a listing rendered in browse grids.
type ListingCard struct {
	ID             string    `json:"id"`
	Brand          string    `json:"brand"`
	Model          string    `json:"model"`
	Year           int       `json:"year"`
	Price          float64   `json:"price"`
	PriceFormatted string    `json:"price_formatted"`
	Category       string    `json:"category"`
	ImageURL       string    `json:"image_url,omitempty"`
	HasImage       bool      `json:"has_image"`
	Location       *string   `json:"location,omitempty"`
	IsOwner        bool      `json:"is_owner"`
	CanSave        bool      `json:"can_save"`
	CreatedAt      time.Time `json:"created_at"`
}

type ListingListResponse struct {
	Listings   []ListingCard `json:"listings"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
	MinPrice   float64       `json:"min_price"`
	MaxPrice   float64       `json:"max_price"`
}

type ListingDetail struct {
	Listing        Listing `json:"listing"`
	PriceFormatted string  `json:"price_formatted"`
	IsOwner        bool    `json:"is_owner"`
	CanSave        bool    `json:"can_save"`
}

type FilterMeta struct {
	Brands     []string `json:"brands"`
	Categories []string `json:"categories"`
	MinPrice   float64  `json:"min_price"`
	MaxPrice   float64  `json:"max_price"`
}
