// package shared defines helpers used across the migration service
package shared

import (
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

var (
	spotifyPlaylistRe = regexp.MustCompile(`playlist/([a-zA-Z0-9]+)`)
	youtubeListRe     = regexp.MustCompile(`list=([a-zA-Z0-9_-]+)`)
)

// NewLogger creates a [log.Logger] writing to w with timestamps enabled.
//
// The writer defaults to [os.Stderr].
func NewLogger(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	return log.NewWithOptions(w, log.Options{ReportTimestamp: true})
}

// NewRunID generates a v4 [uuid.UUID] string identifying one migration run.
func NewRunID() string {
	return uuid.New().String()
}

// ParseSpotifyPlaylistURL extracts the playlist id token from a Spotify
// playlist URL. No network call is made; a URL without a recognizable
// playlist path segment fails with [ErrValidation].
func ParseSpotifyPlaylistURL(raw string) (string, error) {
	m := spotifyPlaylistRe.FindStringSubmatch(raw)
	if m == nil {
		return "", fmt.Errorf("%w: invalid Spotify playlist URL %q", ErrValidation, raw)
	}
	return m[1], nil
}

// ParseYouTubePlaylistURL extracts the list id from a YouTube playlist URL.
func ParseYouTubePlaylistURL(raw string) (string, error) {
	m := youtubeListRe.FindStringSubmatch(raw)
	if m == nil {
		return "", fmt.Errorf("%w: invalid YouTube playlist URL %q", ErrValidation, raw)
	}
	return m[1], nil
}
