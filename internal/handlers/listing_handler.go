package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"carmarket/internal/models"
	"carmarket/internal/repositories"
	"carmarket/internal/services"
	"carmarket/utils"
)

const maxImageSize = 5 << 20 // 5 MB per file

type ListingHandler struct {
	Service *services.ListingService
	Stats   *services.StatsService
	Storage *utils.StorageClient
}

// GetListings serves the marketplace browse grid: filters, sort and page
// come from query parameters, the viewer (if any) from the bearer token.
func (h *ListingHandler) GetListings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := parseListingFilter(q)
	sort := q.Get("sort")
	page := parsePage(q.Get("page"))

	resp, err := h.Service.BrowseListings(r.Context(), filter, sort, page, viewerID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch listings")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ListingHandler) GetListingByID(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")

	detail, err := h.Service.GetListing(r.Context(), id, viewerID(r))
	if errors.Is(err, repositories.ErrListingNotFound) {
		writeError(w, http.StatusNotFound, "Listing not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch listing")
		return
	}

	h.Stats.RecordView(r.Context(), detail.Listing.UserID)
	writeJSON(w, http.StatusOK, detail)
}

func (h *ListingHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	err := r.ParseMultipartForm(32 << 20) // 32MB
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	userID := viewerID(r)

	var listing models.Listing
	listing.UserID = userID
	listing.Brand = r.FormValue("brand")
	listing.Model = r.FormValue("model")
	listing.Year, _ = strconv.Atoi(r.FormValue("year"))
	listing.Price, _ = strconv.ParseFloat(r.FormValue("price"), 64)
	listing.Description = r.FormValue("description")
	listing.Mileage = parseOptionalInt(r.FormValue("mileage"))
	listing.FuelType = optionalFormValue(r, "fuel_type")
	listing.Transmission = optionalFormValue(r, "transmission")
	listing.Category = optionalFormValue(r, "category")
	listing.Color = optionalFormValue(r, "color")
	listing.Location = optionalFormValue(r, "location")

	imageURLs, err := h.uploadImages(r, userID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	// Pre-uploaded URLs may also be passed directly.
	if r.MultipartForm != nil {
		for _, u := range r.MultipartForm.Value["images"] {
			if u != "" {
				imageURLs = append(imageURLs, u)
			}
		}
	}
	listing.Images = imageURLs

	created, err := h.Service.CreateListing(r.Context(), listing)
	if errors.Is(err, services.ErrInvalidListing) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create listing")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ListingHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")

	err := h.Service.DeleteListing(r.Context(), id, viewerID(r))
	switch {
	case errors.Is(err, repositories.ErrListingNotFound):
		writeError(w, http.StatusNotFound, "Listing not found")
	case errors.Is(err, services.ErrNotListingOwner):
		writeError(w, http.StatusForbidden, "Only the owner can delete a listing")
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Failed to delete listing")
	default:
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func (h *ListingHandler) GetMyListings(w http.ResponseWriter, r *http.Request) {
	cards, err := h.Service.GetListingsByUser(r.Context(), viewerID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch listings")
		return
	}
	writeJSON(w, http.StatusOK, cards)
}

func (h *ListingHandler) GetFilterMeta(w http.ResponseWriter, r *http.Request) {
	meta, err := h.Service.GetFilterMeta(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch filter metadata")
		return
	}
	writeJSON(w, http.StatusOK, meta)
}

// uploadImages pushes each uploaded file to object storage under the
// owner's folder and returns the public URLs. Files over 5 MB or with a
// non-image MIME type are rejected. All headers are checked before the
// first upload so a bad file never leaves earlier ones orphaned in the
// bucket.
func (h *ListingHandler) uploadImages(r *http.Request, userID string) ([]string, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	fileHeaders := r.MultipartForm.File["images"]
	for _, fileHeader := range fileHeaders {
		if fileHeader.Size > maxImageSize {
			return nil, fmt.Errorf("file %s is too large, maximum size is 5MB", fileHeader.Filename)
		}
		if !strings.HasPrefix(fileHeader.Header.Get("Content-Type"), "image/") {
			return nil, fmt.Errorf("file %s is not an image", fileHeader.Filename)
		}
	}

	var urls []string
	for _, fileHeader := range fileHeaders {
		contentType := fileHeader.Header.Get("Content-Type")

		file, err := fileHeader.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open uploaded file: %v", err)
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read uploaded file: %v", err)
		}

		fileName := fmt.Sprintf("%d%s", time.Now().UnixNano(), filepath.Ext(fileHeader.Filename))
		url, err := h.Storage.UploadFile(data, fileName, userID, contentType)
		if err != nil {
			return nil, fmt.Errorf("failed to store image: %v", err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func optionalFormValue(r *http.Request, key string) *string {
	v := r.FormValue(key)
	if v == "" {
		return nil
	}
	return &v
}
