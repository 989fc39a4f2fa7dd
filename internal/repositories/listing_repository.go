package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"carmarket/internal/models"
)

var (
	ErrListingNotFound = errors.New("listing not found")
)

type ListingRepository struct {
	DB *sql.DB
}

func (r *ListingRepository) CreateListing(ctx context.Context, l models.Listing) (models.Listing, error) {
	imagesJSON, err := json.Marshal(l.Images)
	if err != nil {
		return models.Listing{}, fmt.Errorf("marshal listing images: %w", err)
	}

	l.ID = uuid.NewString()
	now := time.Now()
	l.CreatedAt = now
	l.UpdatedAt = now

	query := `
		INSERT INTO car_listings
			(id, user_id, brand, model, year, price, mileage, fuel_type, transmission,
			 category, color, description, images, location, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.DB.ExecContext(ctx, query,
		l.ID, l.UserID, l.Brand, l.Model, l.Year, l.Price, l.Mileage, l.FuelType,
		l.Transmission, l.Category, l.Color, l.Description, imagesJSON, l.Location,
		l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return models.Listing{}, err
	}
	return l, nil
}

func (r *ListingRepository) GetListingByID(ctx context.Context, id string) (models.Listing, error) {
	query := `
		SELECT id, user_id, brand, model, year, price, mileage, fuel_type, transmission,
		       category, color, description, images, location, created_at, updated_at
		FROM car_listings
		WHERE id = ?
	`
	l, err := scanListing(r.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return models.Listing{}, ErrListingNotFound
	}
	if err != nil {
		return models.Listing{}, err
	}
	return l, nil
}

// GetListingsPage runs the filtered, sorted, offset/limit select plus the
// exact count of all matching rows.
func (r *ListingRepository) GetListingsPage(ctx context.Context, req models.ListingPageRequest) ([]models.Listing, int, error) {
	listQuery, countQuery, listParams, countParams := buildListingPageQuery(req)

	var total int
	if err := r.DB.QueryRowContext(ctx, countQuery, countParams...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.QueryContext(ctx, listQuery, listParams...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var listings []models.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, 0, err
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

func (r *ListingRepository) GetListingsByUserID(ctx context.Context, userID string) ([]models.Listing, error) {
	query := `
		SELECT id, user_id, brand, model, year, price, mileage, fuel_type, transmission,
		       category, color, description, images, location, created_at, updated_at
		FROM car_listings
		WHERE user_id = ?
		ORDER BY created_at DESC, id ASC
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
		return nil, err
	}
	return listings, nil
}

// DeleteListing removes the listing together with any saved-listing rows
// that reference it, in one transaction.
func (r *ListingRepository) DeleteListing(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM saved_listings WHERE listing_id = ?`, id); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM car_listings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrListingNotFound
	}
	return tx.Commit()
}

func (r *ListingRepository) CountByUserID(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM car_listings WHERE user_id = ?`, userID).Scan(&count)
	return count, err
}

func (r *ListingRepository) PriceBounds(ctx context.Context) (float64, float64, error) {
	var minPrice, maxPrice sql.NullFloat64
	err := r.DB.QueryRowContext(ctx, `SELECT MIN(price), MAX(price) FROM car_listings`).Scan(&minPrice, &maxPrice)
	if err != nil {
		return 0, 0, err
	}
	return minPrice.Float64, maxPrice.Float64, nil
}

func (r *ListingRepository) Brands(ctx context.Context) ([]string, error) {
	return r.distinctColumn(ctx, `SELECT DISTINCT brand FROM car_listings ORDER BY brand`)
}

func (r *ListingRepository) Categories(ctx context.Context) ([]string, error) {
	return r.distinctColumn(ctx, `SELECT DISTINCT category FROM car_listings WHERE category IS NOT NULL ORDER BY category`)
}

func (r *ListingRepository) distinctColumn(ctx context.Context, query string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanListing(row rowScanner) (models.Listing, error) {
	var (
		l          models.Listing
		imagesJSON sql.NullString
	)
	err := row.Scan(
		&l.ID, &l.UserID, &l.Brand, &l.Model, &l.Year, &l.Price, &l.Mileage,
		&l.FuelType, &l.Transmission, &l.Category, &l.Color, &l.Description,
		&imagesJSON, &l.Location, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return models.Listing{}, err
	}

	if imagesJSON.Valid && imagesJSON.String != "" {
		if err := json.Unmarshal([]byte(imagesJSON.String), &l.Images); err != nil {
			log.Printf("failed to decode images for listing %s: %v", l.ID, err)
			l.Images = nil
		}
	}
	return l, nil
}
