package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"carmarket/internal/models"
)

var (
	ErrAlreadySaved       = errors.New("listing already saved")
	ErrSavedEntryNotFound = errors.New("saved listing not found")
)

const mysqlDuplicateEntry = 1062

type SavedListingRepository struct {
	DB *sql.DB
}

func (r *SavedListingRepository) AddSavedListing(ctx context.Context, userID, listingID string) (models.SavedListing, error) {
	saved := models.SavedListing{
		ID:        uuid.NewString(),
		UserID:    userID,
		ListingID: listingID,
		CreatedAt: time.Now(),
	}

	query := `INSERT INTO saved_listings (id, user_id, listing_id, created_at) VALUES (?, ?, ?, ?)`
	_, err := r.DB.ExecContext(ctx, query, saved.ID, saved.UserID, saved.ListingID, saved.CreatedAt)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return models.SavedListing{}, ErrAlreadySaved
		}
		return models.SavedListing{}, err
	}
	return saved, nil
}

func (r *SavedListingRepository) RemoveSavedListing(ctx context.Context, userID, listingID string) error {
	query := `DELETE FROM saved_listings WHERE user_id = ? AND listing_id = ?`
	result, err := r.DB.ExecContext(ctx, query, userID, listingID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrSavedEntryNotFound
	}
	return nil
}

func (r *SavedListingRepository) IsSaved(ctx context.Context, userID, listingID string) (bool, error) {
	query := `SELECT COUNT(*) FROM saved_listings WHERE user_id = ? AND listing_id = ?`
	var count int
	err := r.DB.QueryRowContext(ctx, query, userID, listingID).Scan(&count)
	return count > 0, err
}

func (r *SavedListingRepository) GetSavedListingsByUser(ctx context.Context, userID string) ([]models.Listing, error) {
	query := `
		SELECT l.id, l.user_id, l.brand, l.model, l.year, l.price, l.mileage, l.fuel_type,
		       l.transmission, l.category, l.color, l.description, l.images, l.location,
		       l.created_at, l.updated_at
		FROM saved_listings sl
		JOIN car_listings l ON sl.listing_id = l.id
		WHERE sl.user_id = ?
		ORDER BY sl.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []models.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("saved listings rows error: %w", err)
	}
	return listings, nil
}

func (r *SavedListingRepository) CountByUserID(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM saved_listings WHERE user_id = ?`, userID).Scan(&count)
	return count, err
}
