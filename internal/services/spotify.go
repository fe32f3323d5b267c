// Spotify API implementation of [SourceClient]
//
// Response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2/clientcredentials"

	"playlift/internal/models"
	"playlift/internal/shared"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"
)

type spotifyArtist struct {
	Name string `json:"name"`
}

type spotifyTrack struct {
	Name    string          `json:"name"`
	Artists []spotifyArtist `json:"artists"`
}

type spotifyPlaylistItem struct {
	Track spotifyTrack `json:"track"`
}

// spotifyTracksPage mirrors the paginated /playlists/{id}/tracks response.
// Next holds the absolute URL of the following page, or null on the last one.
type spotifyTracksPage struct {
	Items []spotifyPlaylistItem `json:"items"`
	Next  *string               `json:"next"`
}

type spotifyPlaylist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type spotifyError struct {
	Error struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// SpotifyService implements [SourceClient] against the Spotify Web API using
// the client-credentials grant.
type SpotifyService struct {
	tokenConf  *clientcredentials.Config
	baseURL    string
	httpClient *http.Client
}

// NewSpotifyService creates a Spotify client from application credentials.
func NewSpotifyService(cfg shared.SpotifyConfig) (*SpotifyService, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("%w: spotify client_id and client_secret", shared.ErrMissingArgument)
	}

	return &SpotifyService{
		tokenConf: &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     spotifyTokenURL,
		},
		baseURL:    spotifyBaseURL,
		httpClient: http.DefaultClient,
	}, nil
}

// ClientToken fetches a service-level access token via the client-credentials grant.
func (s *SpotifyService) ClientToken(ctx context.Context) (string, error) {
	token, err := s.tokenConf.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: token request: %v", shared.ErrSourceFetch, err)
	}
	return token.AccessToken, nil
}

// doRequest performs an authenticated GET against the Spotify API. rawURL is
// either an endpoint under the base URL or an absolute pagination URL.
func (s *SpotifyService) doRequest(ctx context.Context, token, rawURL string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrSourceFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr spotifyError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("%w: status %d: %s", shared.ErrSourceFetch, resp.StatusCode, apiErr.Error.Message)
		}
		return fmt.Errorf("%w: status %d", shared.ErrSourceFetch, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// PlaylistName returns the playlist's display name.
func (s *SpotifyService) PlaylistName(ctx context.Context, token, playlistID string) (string, error) {
	var playlist spotifyPlaylist
	endpoint := fmt.Sprintf("%s/playlists/%s?fields=id,name", s.baseURL, playlistID)
	if err := s.doRequest(ctx, token, endpoint, &playlist); err != nil {
		return "", err
	}
	return playlist.Name, nil
}

// PlaylistPage fetches one page of playlist tracks. The cursor is the
// absolute URL reported by the previous page's "next" field.
func (s *SpotifyService) PlaylistPage(ctx context.Context, token, playlistID, cursor string) (*TrackPage, error) {
	pageURL := cursor
	if pageURL == "" {
		pageURL = fmt.Sprintf("%s/playlists/%s/tracks", s.baseURL, playlistID)
	}

	var page spotifyTracksPage
	if err := s.doRequest(ctx, token, pageURL, &page); err != nil {
		return nil, err
	}

	tracks := make([]models.Track, 0, len(page.Items))
	for _, item := range page.Items {
		track := models.Track{Title: item.Track.Name}
		if len(item.Track.Artists) > 0 {
			track.Artist = item.Track.Artists[0].Name
		}
		tracks = append(tracks, track)
	}

	result := &TrackPage{Tracks: tracks}
	if page.Next != nil {
		result.Next = *page.Next
	}
	return result, nil
}
