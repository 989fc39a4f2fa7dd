package handlers

import (
	"net/http"

	"carmarket/internal/services"
)

type StatsHandler struct {
	Service *services.StatsService
}

func (h *StatsHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.DashboardStats(r.Context(), viewerID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch dashboard stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
