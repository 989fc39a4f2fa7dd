package services

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"carmarket/internal/models"
	"carmarket/internal/repositories"
)

type fakeListingRepo struct {
	listings []models.Listing
	deleted  []string
	created  []models.Listing
}

func (f *fakeListingRepo) CreateListing(ctx context.Context, l models.Listing) (models.Listing, error) {
	l.ID = "generated-id"
	f.created = append(f.created, l)
	return l, nil
}

func (f *fakeListingRepo) GetListingByID(ctx context.Context, id string) (models.Listing, error) {
	for _, l := range f.listings {
		if l.ID == id {
			return l, nil
		}
	}
	return models.Listing{}, repositories.ErrListingNotFound
}

func (f *fakeListingRepo) GetListingsPage(ctx context.Context, req models.ListingPageRequest) ([]models.Listing, int, error) {
	matched := make([]models.Listing, 0, len(f.listings))
	for _, l := range f.listings {
		if req.Filter.Category != "" && (l.Category == nil || *l.Category != req.Filter.Category) {
			continue
		}
		if req.Filter.Brand != "" && l.Brand != req.Filter.Brand {
			continue
		}
		matched = append(matched, l)
	}
	if req.Sort == models.SortPriceLow {
		sort.Slice(matched, func(i, j int) bool { return matched[i].Price < matched[j].Price })
	}

	total := len(matched)
	offset := (req.Page - 1) * req.PageSize
	if offset >= total {
		return nil, total, nil
	}
	end := offset + req.PageSize
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (f *fakeListingRepo) GetListingsByUserID(ctx context.Context, userID string) ([]models.Listing, error) {
	var out []models.Listing
	for _, l := range f.listings {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeListingRepo) DeleteListing(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeListingRepo) PriceBounds(ctx context.Context) (float64, float64, error) {
	return 0, 0, nil
}

func (f *fakeListingRepo) Brands(ctx context.Context) ([]string, error) {
	return []string{"Tesla", "Toyota"}, nil
}

func (f *fakeListingRepo) Categories(ctx context.Context) ([]string, error) {
	return []string{"sedan", "suv"}, nil
}

func suvListings(n int) []models.Listing {
	category := "suv"
	listings := make([]models.Listing, 0, n)
	for i := 0; i < n; i++ {
		listings = append(listings, models.Listing{
			ID:       string(rune('a' + i)),
			UserID:   "seller-1",
			Brand:    "Toyota",
			Model:    "RAV4",
			Year:     2020,
			Price:    float64(10000 + i*500),
			Category: &category,
			Images:   []string{"https://img.example.com/car.jpg"},
		})
	}
	return listings
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total    int
		pageSize int
		want     int
	}{
		{0, 9, 0},
		{1, 9, 1},
		{9, 9, 1},
		{10, 9, 2},
		{11, 9, 2},
		{18, 9, 2},
		{19, 9, 3},
	}

	for _, tc := range cases {
		if got := totalPages(tc.total, tc.pageSize); got != tc.want {
			t.Errorf("totalPages(%d, %d) = %d, want %d", tc.total, tc.pageSize, got, tc.want)
		}
	}
}

func TestBrowseListingsPaging(t *testing.T) {
	repo := &fakeListingRepo{listings: suvListings(11)}
	svc := &ListingService{ListingRepo: repo}

	filter := models.ListingFilter{Category: "suv"}

	first, err := svc.BrowseListings(context.Background(), filter, models.SortPriceLow, 1, "")
	if err != nil {
		t.Fatalf("BrowseListings returned error: %v", err)
	}
	if len(first.Listings) != 9 {
		t.Fatalf("expected 9 listings on page 1, got %d", len(first.Listings))
	}
	if first.Total != 11 || first.TotalPages != 2 {
		t.Fatalf("expected total 11 over 2 pages, got %d over %d", first.Total, first.TotalPages)
	}
	for i := 1; i < len(first.Listings); i++ {
		if first.Listings[i].Price < first.Listings[i-1].Price {
			t.Fatalf("page 1 not ascending by price at index %d", i)
		}
	}

	second, err := svc.BrowseListings(context.Background(), filter, models.SortPriceLow, 2, "")
	if err != nil {
		t.Fatalf("BrowseListings page 2 returned error: %v", err)
	}
	if len(second.Listings) != 2 {
		t.Fatalf("expected 2 listings on page 2, got %d", len(second.Listings))
	}
}

func TestBrowseListingsNoMatches(t *testing.T) {
	repo := &fakeListingRepo{}
	svc := &ListingService{ListingRepo: repo}

	resp, err := svc.BrowseListings(context.Background(), models.ListingFilter{Brand: "Bugatti"}, "", 1, "")
	if err != nil {
		t.Fatalf("BrowseListings returned error: %v", err)
	}
	if resp.Total != 0 || resp.TotalPages != 0 {
		t.Fatalf("expected 0 results and 0 pages, got %d and %d", resp.Total, resp.TotalPages)
	}
	if len(resp.Listings) != 0 {
		t.Fatalf("expected empty page, got %d listings", len(resp.Listings))
	}
}

func TestBrowseListingsNormalizesPage(t *testing.T) {
	repo := &fakeListingRepo{listings: suvListings(3)}
	svc := &ListingService{ListingRepo: repo}

	resp, err := svc.BrowseListings(context.Background(), models.ListingFilter{}, "", -2, "")
	if err != nil {
		t.Fatalf("BrowseListings returned error: %v", err)
	}
	if resp.Page != 1 {
		t.Fatalf("expected page normalized to 1, got %d", resp.Page)
	}
}

func TestPresentListingFlags(t *testing.T) {
	listing := models.Listing{
		ID:     "l1",
		UserID: "owner-1",
		Brand:  "Tesla",
		Model:  "Model 3",
		Price:  42000,
		Images: []string{"https://img.example.com/1.jpg", "https://img.example.com/2.jpg"},
	}

	cases := []struct {
		name        string
		viewerID    string
		wantOwner   bool
		wantCanSave bool
	}{
		{"anonymous viewer", "", false, false},
		{"owner", "owner-1", true, false},
		{"other user", "buyer-9", false, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			card := presentListing(listing, tc.viewerID)
			if card.IsOwner != tc.wantOwner {
				t.Errorf("IsOwner = %v, want %v", card.IsOwner, tc.wantOwner)
			}
			if card.CanSave != tc.wantCanSave {
				t.Errorf("CanSave = %v, want %v", card.CanSave, tc.wantCanSave)
			}
		})
	}
}

func TestPresentListingFormatting(t *testing.T) {
	category := "suv"
	card := presentListing(models.Listing{
		Price:    24500,
		Category: &category,
		Images:   []string{"https://img.example.com/first.jpg", "https://img.example.com/second.jpg"},
	}, "")

	if card.PriceFormatted != "$24,500" {
		t.Errorf("PriceFormatted = %q, want %q", card.PriceFormatted, "$24,500")
	}
	if !card.HasImage || card.ImageURL != "https://img.example.com/first.jpg" {
		t.Errorf("expected first image, got %+v", card)
	}
	if card.Category != "suv" {
		t.Errorf("Category = %q, want %q", card.Category, "suv")
	}
}

func TestPresentListingFallbacks(t *testing.T) {
	card := presentListing(models.Listing{Price: 100}, "")

	if card.HasImage || card.ImageURL != "" {
		t.Errorf("expected no-image state, got %+v", card)
	}
	if card.Category != "Sedan" {
		t.Errorf("expected default category Sedan, got %q", card.Category)
	}
}

func TestCreateListingValidation(t *testing.T) {
	valid := models.Listing{
		UserID:      "u1",
		Brand:       "Honda",
		Model:       "Civic",
		Year:        2019,
		Price:       15000,
		Description: "Well maintained, one owner.",
		Images:      []string{"https://img.example.com/civic.jpg"},
	}

	cases := []struct {
		name   string
		mutate func(l *models.Listing)
	}{
		{"missing brand", func(l *models.Listing) { l.Brand = "" }},
		{"missing model", func(l *models.Listing) { l.Model = "" }},
		{"year too old", func(l *models.Listing) { l.Year = 1899 }},
		{"year in future", func(l *models.Listing) { l.Year = time.Now().Year() + 2 }},
		{"zero price", func(l *models.Listing) { l.Price = 0 }},
		{"short description", func(l *models.Listing) { l.Description = "too short" }},
		{"no images", func(l *models.Listing) { l.Images = nil }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeListingRepo{}
			svc := &ListingService{ListingRepo: repo}

			l := valid
			tc.mutate(&l)
			_, err := svc.CreateListing(context.Background(), l)
			if !errors.Is(err, ErrInvalidListing) {
				t.Fatalf("expected ErrInvalidListing, got %v", err)
			}
			if len(repo.created) != 0 {
				t.Fatalf("invalid listing must not reach the repository")
			}
		})
	}

	repo := &fakeListingRepo{}
	svc := &ListingService{ListingRepo: repo}
	created, err := svc.CreateListing(context.Background(), valid)
	if err != nil {
		t.Fatalf("valid listing rejected: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected assigned id")
	}
}

func TestDeleteListingOwnership(t *testing.T) {
	repo := &fakeListingRepo{listings: []models.Listing{{ID: "l1", UserID: "owner-1"}}}
	svc := &ListingService{ListingRepo: repo}

	err := svc.DeleteListing(context.Background(), "l1", "someone-else")
	if !errors.Is(err, ErrNotListingOwner) {
		t.Fatalf("expected ErrNotListingOwner, got %v", err)
	}
	if len(repo.deleted) != 0 {
		t.Fatalf("delete must not run for non-owners")
	}

	if err := svc.DeleteListing(context.Background(), "l1", "owner-1"); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != "l1" {
		t.Fatalf("expected l1 deleted, got %v", repo.deleted)
	}

	err = svc.DeleteListing(context.Background(), "missing", "owner-1")
	if !errors.Is(err, repositories.ErrListingNotFound) {
		t.Fatalf("expected ErrListingNotFound, got %v", err)
	}
}
