// package services defines clients for the external catalog APIs
//
// Spotify (source), YouTube Data API (target)
package services

import (
	"context"

	"playlift/internal/models"
)

// TokenPair is a caller's YouTube credential bundle. It is owned by a single
// migration run and never persisted.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// SourceClient is the read-only contract against the source catalog. The
// source playlist is public, so all calls use an application-level token
// obtained through the client-credentials grant.
type SourceClient interface {
	// ClientToken obtains a service-level access token independent of any end user.
	ClientToken(ctx context.Context) (string, error)

	// PlaylistName returns the playlist's display name.
	PlaylistName(ctx context.Context, token, playlistID string) (string, error)

	// PlaylistPage fetches one page of playlist entries. An empty cursor
	// requests the first page; the returned page carries the next cursor, or
	// an empty string when no pages remain.
	PlaylistPage(ctx context.Context, token, playlistID, cursor string) (*TrackPage, error)
}

// TrackPage is a single page of extracted tracks.
type TrackPage struct {
	Tracks []models.Track
	Next   string
}

// TargetClient is the contract against the target catalog, scoped per call
// to the caller's token pair.
type TargetClient interface {
	// AuthURL builds the consent-screen URL for the authorization-code flow.
	AuthURL(state string) string

	// Exchange trades an authorization code for a token pair.
	Exchange(ctx context.Context, code string) (TokenPair, error)

	// Identity resolves the authenticated user's channel id.
	Identity(ctx context.Context, tokens TokenPair) (string, error)

	// SearchOne runs a single free-text search requesting one candidate and
	// returns its video id, or an empty string when the search yields nothing.
	SearchOne(ctx context.Context, tokens TokenPair, query string) (string, error)

	// CreatePlaylist creates a private playlist and returns its id.
	CreatePlaylist(ctx context.Context, tokens TokenPair, title, description string) (string, error)

	// InsertItem appends a video to a playlist. A transient rate conflict is
	// reported as an error wrapping [shared.ErrInsertConflict].
	InsertItem(ctx context.Context, tokens TokenPair, playlistID, videoID string) error
}
