package shared

import "fmt"

var (
	// Input validation errors
	ErrValidation      = fmt.Errorf("invalid request")
	ErrMissingArgument = fmt.Errorf("missing required argument")

	// Authentication errors
	ErrAuthorization = fmt.Errorf("authorization failed")

	// Run serialization errors
	ErrRunInProgress = fmt.Errorf("migration already in progress")

	// Upstream service errors
	ErrSourceFetch    = fmt.Errorf("source fetch failed")
	ErrResolution     = fmt.Errorf("track resolution failed")
	ErrInsertion      = fmt.Errorf("playlist insertion failed")
	ErrInsertConflict = fmt.Errorf("playlist insertion conflict")

	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")
)
