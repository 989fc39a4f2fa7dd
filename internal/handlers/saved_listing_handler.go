package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"carmarket/internal/models"
	"carmarket/internal/repositories"
	"carmarket/internal/services"
)

type SavedListingHandler struct {
	Service *services.SavedListingService
}

func (h *SavedListingHandler) SaveListing(w http.ResponseWriter, r *http.Request) {
	var req models.SaveListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ListingID == "" {
		writeError(w, http.StatusBadRequest, "listing_id is required")
		return
	}

	saved, err := h.Service.SaveListing(r.Context(), viewerID(r), req.ListingID)
	switch {
	case errors.Is(err, repositories.ErrListingNotFound):
		writeError(w, http.StatusNotFound, "Listing not found")
	case errors.Is(err, services.ErrOwnListingSave):
		writeError(w, http.StatusBadRequest, "You cannot save your own listing")
	case errors.Is(err, repositories.ErrAlreadySaved):
		writeError(w, http.StatusConflict, "Listing already saved")
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Failed to save listing")
	default:
		writeJSON(w, http.StatusCreated, saved)
	}
}

func (h *SavedListingHandler) UnsaveListing(w http.ResponseWriter, r *http.Request) {
	listingID := r.URL.Query().Get(":listing_id")

	err := h.Service.UnsaveListing(r.Context(), viewerID(r), listingID)
	switch {
	case errors.Is(err, repositories.ErrSavedEntryNotFound):
		writeError(w, http.StatusNotFound, "Listing is not saved")
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Failed to remove saved listing")
	default:
		writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
	}
}

func (h *SavedListingHandler) CheckSaved(w http.ResponseWriter, r *http.Request) {
	listingID := r.URL.Query().Get(":listing_id")

	saved, err := h.Service.IsSaved(r.Context(), viewerID(r), listingID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to check saved status")
		return
	}
	writeJSON(w, http.StatusOK, models.SavedStatusResponse{ListingID: listingID, Saved: saved})
}

func (h *SavedListingHandler) GetSavedListings(w http.ResponseWriter, r *http.Request) {
	cards, err := h.Service.GetSavedListings(r.Context(), viewerID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch saved listings")
		return
	}
	writeJSON(w, http.StatusOK, cards)
}
