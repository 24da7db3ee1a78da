package api

import (
	"encoding/json"
	"net/http"
)

// sendError sends an error JSON response. The diagnostics endpoint is
// unauthenticated — it is read-only and meant for localhost/operator use,
// per SPEC_FULL.md §4.J — so there is no API-key middleware here.
func sendError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{Success: false, Error: message})
}
