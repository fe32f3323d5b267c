package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"playlift/internal/models"
	"playlift/internal/shared"
)

// errorResponse is the structured failure body for every endpoint.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// handleMigrate runs one migration and reports the destination playlist URL.
func (s *Server) handleMigrate(w http.ResponseWriter, r *http.Request) {
	var req models.MigrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation", "request body must be JSON")
		return
	}

	result, err := s.engine.Migrate(r.Context(), req, nil)
	if err != nil {
		status, category := classify(err)
		s.logger.Error("migration failed", "category", category, "err", err)
		writeError(w, status, category, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// classify maps the error taxonomy onto HTTP statuses. The run-in-progress
// rejection gets its own category so clients can distinguish it from a
// generic failure.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, shared.ErrValidation), errors.Is(err, shared.ErrMissingArgument):
		return http.StatusBadRequest, "validation"
	case errors.Is(err, shared.ErrAuthorization):
		return http.StatusUnauthorized, "authorization"
	case errors.Is(err, shared.ErrRunInProgress):
		return http.StatusConflict, "run_in_progress"
	case errors.Is(err, shared.ErrSourceFetch):
		return http.StatusBadGateway, "source_fetch"
	case errors.Is(err, shared.ErrResolution):
		return http.StatusBadGateway, "resolution"
	case errors.Is(err, shared.ErrInsertion), errors.Is(err, shared.ErrInsertConflict):
		return http.StatusBadGateway, "insertion"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, category, message string) {
	writeJSON(w, status, errorResponse{Error: category, Message: message})
}
