package tasks

import (
	"fmt"

	"playlift/internal/models"
)

// ProgressUpdate represents a progress event during a migration run.
//
// Used to send real-time updates to the CLI or HTTP layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	ResolveIdentity Phase = iota
	FetchSource
	EnsureDestination
	SearchTracks
	InsertTracks
	Done
)

func (p Phase) String() string {
	switch p {
	case ResolveIdentity:
		return "resolve_identity"
	case FetchSource:
		return "fetch_source"
	case EnsureDestination:
		return "ensure_destination"
	case SearchTracks:
		return "search_tracks"
	case InsertTracks:
		return "insert_tracks"
	case Done:
		return "done"
	default:
		return ""
	}
}

func identityUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveIdentity,
		Step:    1,
		Total:   1,
		Message: "Resolving YouTube identity...",
	}
}

func fetchSourceUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSource,
		Step:    1,
		Total:   1,
		Message: "Fetching source playlist from Spotify...",
	}
}

func destinationUpdate(existingID string) ProgressUpdate {
	msg := "Creating destination playlist on YouTube..."
	if existingID != "" {
		msg = fmt.Sprintf("Using destination playlist %s", existingID)
	}
	return ProgressUpdate{
		Phase:   EnsureDestination,
		Step:    1,
		Total:   1,
		Message: msg,
	}
}

func searchUpdate(step, total int, tr models.Track) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s - %s", step, total, tr.Artist, tr.Title),
	}
}

func insertUpdate(step, total int, videoID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   InsertTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Added %s", step, total, videoID),
		Data:    videoID,
	}
}

func doneUpdate(result *models.MigrationResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Done,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Migration complete: %d/%d tracks", result.Inserted, result.Total),
		Data:    result,
	}
}
