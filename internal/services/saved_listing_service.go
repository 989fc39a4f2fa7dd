package services

import (
	"context"
	"errors"

	"carmarket/internal/models"
)

var (
	ErrOwnListingSave = errors.New("cannot save your own listing")
)

type SavedListingRepo interface {
	AddSavedListing(ctx context.Context, userID, listingID string) (models.SavedListing, error)
	RemoveSavedListing(ctx context.Context, userID, listingID string) error
	IsSaved(ctx context.Context, userID, listingID string) (bool, error)
	GetSavedListingsByUser(ctx context.Context, userID string) ([]models.Listing, error)
}

type SavedListingService struct {
	SavedRepo   SavedListingRepo
	ListingRepo ListingRepo
}

// SaveListing records a save for the viewer. The listing must exist and
// must not belong to the viewer.
func (s *SavedListingService) SaveListing(ctx context.Context, userID, listingID string) (models.SavedListing, error) {
	l, err := s.ListingRepo.GetListingByID(ctx, listingID)
	if err != nil {
		return models.SavedListing{}, err
	}
	if l.UserID == userID {
		return models.SavedListing{}, ErrOwnListingSave
	}
	return s.SavedRepo.AddSavedListing(ctx, userID, listingID)
}

func (s *SavedListingService) UnsaveListing(ctx context.Context, userID, listingID string) error {
	return s.SavedRepo.RemoveSavedListing(ctx, userID, listingID)
}

func (s *SavedListingService) IsSaved(ctx context.Context, userID, listingID string) (bool, error) {
	return s.SavedRepo.IsSaved(ctx, userID, listingID)
}

func (s *SavedListingService) GetSavedListings(ctx context.Context, userID string) ([]models.ListingCard, error) {
	listings, err := s.SavedRepo.GetSavedListingsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return presentListings(listings, userID), nil
}
