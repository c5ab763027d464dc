package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/BerylCAtieno/thumbnail-review-api/internal/utils"
)

func respondJSON(logger *utils.Logger, w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode JSON response", "error", err)
	}
}

// respondError writes an AppError as JSON. Validation failures carry the
// rejected fields under "errors"; everything else gets a single "error".
func respondError(logger *utils.Logger, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		status = appErr.StatusCode
		message = appErr.Message
	}

	if status >= http.StatusInternalServerError {
		logger.Error("Request error", "status", status, "error", err)
	} else {
		logger.Warn("Request rejected", "status", status, "error", message)
	}

	if appErr != nil && len(appErr.Errors) > 0 {
		respondJSON(logger, w, status, map[string]interface{}{"errors": appErr.Errors})
		return
	}

	respondJSON(logger, w, status, map[string]string{"error": message})
}
