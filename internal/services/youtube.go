// YouTube Data API implementation of [TargetClient]
//
// Uses the authorization-code flow via [oauth2]; every call is scoped to the
// caller's token pair rather than client-level state.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"

	"playlift/internal/shared"
)

const (
	googleAuthURL  = "https://accounts.google.com/o/oauth2/auth"
	googleTokenURL = "https://oauth2.googleapis.com/token"
	youtubeBaseURL = "https://www.googleapis.com/youtube/v3"
)

type youtubeError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type youtubeChannelList struct {
	Items []struct {
		ID string `json:"id"`
	} `json:"items"`
}

type youtubeSearchList struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
}

// YouTubeService implements [TargetClient] against the YouTube Data API.
type YouTubeService struct {
	config     *oauth2.Config
	baseURL    string
	httpClient *http.Client
}

// NewYouTubeService creates a YouTube client from the Google OAuth application credentials.
func NewYouTubeService(cfg shared.GoogleConfig) (*YouTubeService, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("%w: google client_id and client_secret", shared.ErrMissingArgument)
	}

	config := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURI,
		Scopes: []string{
			"https://www.googleapis.com/auth/youtube",
			"https://www.googleapis.com/auth/youtube.force-ssl",
		},
		Endpoint: oauth2.Endpoint{
			AuthURL:  googleAuthURL,
			TokenURL: googleTokenURL,
		},
	}

	return &YouTubeService{
		config:     config,
		baseURL:    youtubeBaseURL,
		httpClient: http.DefaultClient,
	}, nil
}

// AuthURL builds the consent-screen URL requesting offline access so the
// response includes a refresh token.
func (y *YouTubeService) AuthURL(state string) string {
	return y.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange trades an authorization code for a token pair.
func (y *YouTubeService) Exchange(ctx context.Context, code string) (TokenPair, error) {
	token, err := y.config.Exchange(ctx, code)
	if err != nil {
		return TokenPair{}, fmt.Errorf("%w: code exchange: %v", shared.ErrAuthorization, err)
	}
	return TokenPair{AccessToken: token.AccessToken, RefreshToken: token.RefreshToken}, nil
}

// doRequest performs an authenticated request against the YouTube Data API.
func (y *YouTubeService) doRequest(ctx context.Context, tokens TokenPair, method, endpoint string, body, result any) (int, error) {
	apiURL := y.baseURL + endpoint

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reader)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr youtubeError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
			return resp.StatusCode, fmt.Errorf("youtube API error (status %d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return resp.StatusCode, fmt.Errorf("youtube API error: status %d", resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return resp.StatusCode, nil
}

// Identity resolves the caller's own channel id.
func (y *YouTubeService) Identity(ctx context.Context, tokens TokenPair) (string, error) {
	if tokens.AccessToken == "" {
		return "", fmt.Errorf("%w: missing access token", shared.ErrAuthorization)
	}

	var channels youtubeChannelList
	if _, err := y.doRequest(ctx, tokens, http.MethodGet, "/channels?part=id&mine=true", nil, &channels); err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrAuthorization, err)
	}

	if len(channels.Items) == 0 {
		return "", fmt.Errorf("%w: no channel for authenticated user", shared.ErrAuthorization)
	}

	return channels.Items[0].ID, nil
}

// SearchOne runs a single search requesting exactly one candidate. A search
// with no results returns an empty id and no error; the match is best-effort
// and relies entirely on the API's own relevance ranking.
func (y *YouTubeService) SearchOne(ctx context.Context, tokens TokenPair, query string) (string, error) {
	endpoint := fmt.Sprintf("/search?part=snippet&maxResults=1&type=video&q=%s", url.QueryEscape(query))

	var results youtubeSearchList
	if _, err := y.doRequest(ctx, tokens, http.MethodGet, endpoint, nil, &results); err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrResolution, err)
	}

	if len(results.Items) == 0 {
		return "", nil
	}

	return results.Items[0].ID.VideoID, nil
}

// CreatePlaylist creates a private playlist and returns its id.
func (y *YouTubeService) CreatePlaylist(ctx context.Context, tokens TokenPair, title, description string) (string, error) {
	body := map[string]any{
		"snippet": map[string]string{
			"title":       title,
			"description": description,
		},
		"status": map[string]string{
			"privacyStatus": "private",
		},
	}

	var created struct {
		ID string `json:"id"`
	}

	if _, err := y.doRequest(ctx, tokens, http.MethodPost, "/playlists?part=snippet,status", body, &created); err != nil {
		return "", fmt.Errorf("%w: create playlist: %v", shared.ErrInsertion, err)
	}

	return created.ID, nil
}

// InsertItem appends a video to a playlist. A 409 from the API means the
// playlist is being modified concurrently by the platform and is reported as
// [shared.ErrInsertConflict] so the caller can retry.
func (y *YouTubeService) InsertItem(ctx context.Context, tokens TokenPair, playlistID, videoID string) error {
	body := map[string]any{
		"snippet": map[string]any{
			"playlistId": playlistID,
			"resourceId": map[string]string{
				"kind":    "youtube#video",
				"videoId": videoID,
			},
		},
	}

	status, err := y.doRequest(ctx, tokens, http.MethodPost, "/playlistItems?part=snippet", body, nil)
	if err != nil {
		if status == http.StatusConflict {
			return fmt.Errorf("%w: video %s: %v", shared.ErrInsertConflict, videoID, err)
		}
		return fmt.Errorf("%w: video %s: %v", shared.ErrInsertion, videoID, err)
	}

	return nil
}
