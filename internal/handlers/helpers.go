package handlers

import (
	"encoding/json"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// viewerID returns the authenticated user id from the request context, or
// an empty string for anonymous requests.
func viewerID(r *http.Request) string {
	id, _ := r.Context().Value("user_id").(string)
	return id
}
