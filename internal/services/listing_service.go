package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carmarket/internal/models"
	"carmarket/utils"
)

var (
	ErrInvalidListing  = errors.New("invalid listing")
	ErrNotListingOwner = errors.New("not the listing owner")
)

const minDescriptionLength = 10

// ListingRepo is the datastore contract the pipeline consumes. Repositories
// are injected so tests can substitute fakes.
type ListingRepo interface {
	CreateListing(ctx context.Context, l models.Listing) (models.Listing, error)
	GetListingByID(ctx context.Context, id string) (models.Listing, error)
	GetListingsPage(ctx context.Context, req models.ListingPageRequest) ([]models.Listing, int, error)
	GetListingsByUserID(ctx context.Context, userID string) ([]models.Listing, error)
	DeleteListing(ctx context.Context, id string) error
	PriceBounds(ctx context.Context) (float64, float64, error)
	Brands(ctx context.Context) ([]string, error)
	Categories(ctx context.Context) ([]string, error)
}

type ListingService struct {
	ListingRepo ListingRepo
}

// BrowseListings runs one page of the marketplace query pipeline. viewerID
// is empty for anonymous viewers.
func (s *ListingService) BrowseListings(ctx context.Context, filter models.ListingFilter, sort string, page int, viewerID string) (models.ListingListResponse, error) {
	if page < 1 {
		page = 1
	}

	req := models.ListingPageRequest{
		Filter:   filter,
		Sort:     sort,
		Page:     page,
		PageSize: models.ListingsPageSize,
	}

	listings, total, err := s.ListingRepo.GetListingsPage(ctx, req)
	if err != nil {
		return models.ListingListResponse{}, err
	}

	resp := models.ListingListResponse{
		Listings:   presentListings(listings, viewerID),
		Total:      total,
		Page:       page,
		PageSize:   req.PageSize,
		TotalPages: totalPages(total, req.PageSize),
	}

	// Facet bounds are best-effort, same as the listing grid itself.
	if minPrice, maxPrice, err := s.ListingRepo.PriceBounds(ctx); err == nil {
		resp.MinPrice = minPrice
		resp.MaxPrice = maxPrice
	}
	return resp, nil
}

func (s *ListingService) GetListing(ctx context.Context, id, viewerID string) (models.ListingDetail, error) {
	l, err := s.ListingRepo.GetListingByID(ctx, id)
	if err != nil {
		return models.ListingDetail{}, err
	}
	return models.ListingDetail{
		Listing:        l,
		PriceFormatted: utils.FormatCurrency(l.Price),
		IsOwner:        viewerID != "" && viewerID == l.UserID,
		CanSave:        viewerID != "" && viewerID != l.UserID,
	}, nil
}

func (s *ListingService) CreateListing(ctx context.Context, l models.Listing) (models.Listing, error) {
	if err := validateNewListing(l); err != nil {
		return models.Listing{}, err
	}
	return s.ListingRepo.CreateListing(ctx, l)
}

// DeleteListing removes a listing after verifying ownership. Saved-listing
// references are cleaned up by the repository in the same transaction.
func (s *ListingService) DeleteListing(ctx context.Context, id, requesterID string) error {
	l, err := s.ListingRepo.GetListingByID(ctx, id)
	if err != nil {
		return err
	}
	if l.UserID != requesterID {
		return ErrNotListingOwner
	}
	return s.ListingRepo.DeleteListing(ctx, id)
}

func (s *ListingService) GetListingsByUser(ctx context.Context, userID string) ([]models.ListingCard, error) {
	listings, err := s.ListingRepo.GetListingsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return presentListings(listings, userID), nil
}

func (s *ListingService) GetFilterMeta(ctx context.Context) (models.FilterMeta, error) {
	brands, err := s.ListingRepo.Brands(ctx)
	if err != nil {
		return models.FilterMeta{}, err
	}
	categories, err := s.ListingRepo.Categories(ctx)
	if err != nil {
		return models.FilterMeta{}, err
	}
	minPrice, maxPrice, err := s.ListingRepo.PriceBounds(ctx)
	if err != nil {
		return models.FilterMeta{}, err
	}
	return models.FilterMeta{
		Brands:     brands,
		Categories: categories,
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
	}, nil
}

// totalPages is ceil(total/pageSize). Zero matches means zero pages; the
// client renders "no results" instead of a pagination control.
func totalPages(total, pageSize int) int {
	if total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

func presentListings(listings []models.Listing, viewerID string) []models.ListingCard {
	cards := make([]models.ListingCard, 0, len(listings))
	for _, l := range listings {
		cards = append(cards, presentListing(l, viewerID))
	}
	return cards
}

// presentListing maps a listing row to its summary card: formatted price,
// first image or explicit no-image state, and viewer affordance flags.
func presentListing(l models.Listing, viewerID string) models.ListingCard {
	card := models.ListingCard{
		ID:             l.ID,
		Brand:          l.Brand,
		Model:          l.Model,
		Year:           l.Year,
		Price:          l.Price,
		PriceFormatted: utils.FormatCurrency(l.Price),
		Category:       "Sedan",
		Location:       l.Location,
		IsOwner:        viewerID != "" && viewerID == l.UserID,
		CanSave:        viewerID != "" && viewerID != l.UserID,
		CreatedAt:      l.CreatedAt,
	}
	if l.Category != nil && *l.Category != "" {
		card.Category = *l.Category
	}
	if len(l.Images) > 0 {
		card.ImageURL = l.Images[0]
		card.HasImage = true
	}
	return card
}

func validateNewListing(l models.Listing) error {
	if l.UserID == "" {
		return fmt.Errorf("%w: missing owner", ErrInvalidListing)
	}
	if l.Brand == "" {
		return fmt.Errorf("%w: brand is required", ErrInvalidListing)
	}
	if l.Model == "" {
		return fmt.Errorf("%w: model is required", ErrInvalidListing)
	}
	if l.Year < 1900 || l.Year > time.Now().Year()+1 {
		return fmt.Errorf("%w: year out of range", ErrInvalidListing)
	}
	if l.Price < 1 {
		return fmt.Errorf("%w: price must be greater than 0", ErrInvalidListing)
	}
	if l.Mileage != nil && *l.Mileage < 0 {
		return fmt.Errorf("%w: mileage cannot be negative", ErrInvalidListing)
	}
	if len(l.Description) < minDescriptionLength {
		return fmt.Errorf("%w: description must be at least %d characters", ErrInvalidListing, minDescriptionLength)
	}
	if len(l.Images) == 0 {
		return fmt.Errorf("%w: at least one image is required", ErrInvalidListing)
	}
	return nil
}
