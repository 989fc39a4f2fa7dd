package handlers

import (
	"net/url"
	"strconv"

	"carmarket/internal/models"
)

// parseListingFilter derives filter criteria from browse query parameters.
// A malformed or negative numeric value is treated the same as an absent
// one; extraction never fails.
func parseListingFilter(q url.Values) models.ListingFilter {
	return models.ListingFilter{
		Brand:    q.Get("brand"),
		Category: q.Get("category"),
		MinPrice: parseOptionalInt(q.Get("minPrice")),
		MaxPrice: parseOptionalInt(q.Get("maxPrice")),
		MinYear:  parseOptionalInt(q.Get("minYear")),
		MaxYear:  parseOptionalInt(q.Get("maxYear")),
	}
}

func parseOptionalInt(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

func parsePage(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// encodeListingFilter is the inverse of parseListingFilter, used when a
// filter has to be re-serialized into query parameters.
func encodeListingFilter(f models.ListingFilter) url.Values {
	q := url.Values{}
	if f.Brand != "" {
		q.Set("brand", f.Brand)
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	setOptionalInt(q, "minPrice", f.MinPrice)
	setOptionalInt(q, "maxPrice", f.MaxPrice)
	setOptionalInt(q, "minYear", f.MinYear)
	setOptionalInt(q, "maxYear", f.MaxYear)
	return q
}

func setOptionalInt(q url.Values, key string, v *int) {
	if v != nil {
		q.Set(key, strconv.Itoa(*v))
	}
}
