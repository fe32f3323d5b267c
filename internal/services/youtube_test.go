package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"playlift/internal/shared"
)

func newTestYouTube(t *testing.T, handler http.Handler) (*YouTubeService, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := NewYouTubeService(shared.GoogleConfig{
		ClientID:     "google-id",
		ClientSecret: "google-secret",
		RedirectURI:  "http://localhost:3000/oauth2callback",
	})
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	svc.baseURL = server.URL
	return svc, server
}

func testTokens() TokenPair {
	return TokenPair{AccessToken: "yt-access", RefreshToken: "yt-refresh"}
}

func TestYouTubeService(t *testing.T) {
	t.Run("NewYouTubeService", func(t *testing.T) {
		t.Run("Missing Credentials", func(t *testing.T) {
			_, err := NewYouTubeService(shared.GoogleConfig{})
			if !errors.Is(err, shared.ErrMissingArgument) {
				t.Errorf("expected missing argument error, got %v", err)
			}
		})
	})

	t.Run("AuthURL", func(t *testing.T) {
		svc, err := NewYouTubeService(shared.GoogleConfig{ClientID: "google-id", ClientSecret: "google-secret"})
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}

		authURL := svc.AuthURL("state-token")
		if !strings.Contains(authURL, "accounts.google.com") {
			t.Error("auth URL should point at Google")
		}
		if !strings.Contains(authURL, "google-id") {
			t.Error("auth URL should contain the client id")
		}
		if !strings.Contains(authURL, "state-token") {
			t.Error("auth URL should carry the state")
		}
		if !strings.Contains(authURL, "access_type=offline") {
			t.Error("auth URL should request offline access")
		}
	})

	t.Run("Exchange", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"access_token":  "yt-access",
				"refresh_token": "yt-refresh",
				"token_type":    "Bearer",
				"expires_in":    3600,
			})
		}))
		defer server.Close()

		svc, err := NewYouTubeService(shared.GoogleConfig{ClientID: "id", ClientSecret: "secret"})
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}
		svc.config.Endpoint.TokenURL = server.URL

		tokens, err := svc.Exchange(context.Background(), "auth-code")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if tokens.AccessToken != "yt-access" || tokens.RefreshToken != "yt-refresh" {
			t.Errorf("unexpected token pair %+v", tokens)
		}
	})

	t.Run("Identity", func(t *testing.T) {
		t.Run("Resolves Channel ID", func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/channels", func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Query().Get("mine") != "true" {
					t.Error("expected mine=true lookup")
				}
				if auth := r.Header.Get("Authorization"); auth != "Bearer yt-access" {
					t.Errorf("unexpected authorization header %q", auth)
				}
				json.NewEncoder(w).Encode(youtubeChannelList{Items: []struct {
					ID string `json:"id"`
				}{{ID: "chan-1"}}})
			})

			svc, _ := newTestYouTube(t, mux)

			userID, err := svc.Identity(context.Background(), testTokens())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if userID != "chan-1" {
				t.Errorf("expected chan-1, got %q", userID)
			}
		})

		t.Run("Missing Token", func(t *testing.T) {
			svc, _ := newTestYouTube(t, http.NewServeMux())

			_, err := svc.Identity(context.Background(), TokenPair{})
			if !errors.Is(err, shared.ErrAuthorization) {
				t.Errorf("expected authorization error, got %v", err)
			}
		})

		t.Run("No Channel", func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/channels", func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(youtubeChannelList{})
			})

			svc, _ := newTestYouTube(t, mux)

			_, err := svc.Identity(context.Background(), testTokens())
			if !errors.Is(err, shared.ErrAuthorization) {
				t.Errorf("expected authorization error, got %v", err)
			}
		})
	})

	t.Run("SearchOne", func(t *testing.T) {
		t.Run("Returns First Candidate", func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
				q := r.URL.Query()
				if q.Get("maxResults") != "1" {
					t.Errorf("expected maxResults=1, got %q", q.Get("maxResults"))
				}
				if q.Get("q") != "Artist X Song A" {
					t.Errorf("unexpected query %q", q.Get("q"))
				}
				json.NewEncoder(w).Encode(map[string]any{
					"items": []map[string]any{
						{"id": map[string]string{"videoId": "vidA"}},
					},
				})
			})

			svc, _ := newTestYouTube(t, mux)

			videoID, err := svc.SearchOne(context.Background(), testTokens(), "Artist X Song A")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if videoID != "vidA" {
				t.Errorf("expected vidA, got %q", videoID)
			}
		})

		t.Run("Zero Results Is Not An Error", func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{"items": []any{}})
			})

			svc, _ := newTestYouTube(t, mux)

			videoID, err := svc.SearchOne(context.Background(), testTokens(), "Unknown Song")
			if err != nil {
				t.Fatalf("expected no error for empty result, got %v", err)
			}
			if videoID != "" {
				t.Errorf("expected absent id, got %q", videoID)
			}
		})

		t.Run("Upstream Failure", func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error":{"code":403,"message":"quotaExceeded"}}`, http.StatusForbidden)
			})

			svc, _ := newTestYouTube(t, mux)

			_, err := svc.SearchOne(context.Background(), testTokens(), "Song")
			if !errors.Is(err, shared.ErrResolution) {
				t.Errorf("expected resolution error, got %v", err)
			}
		})
	})

	t.Run("CreatePlaylist", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/playlists", func(w http.ResponseWriter, r *http.Request) {
			var body struct {
				Snippet struct {
					Title       string `json:"title"`
					Description string `json:"description"`
				} `json:"snippet"`
				Status struct {
					PrivacyStatus string `json:"privacyStatus"`
				} `json:"status"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body.Status.PrivacyStatus != "private" {
				t.Errorf("expected private playlist, got %q", body.Status.PrivacyStatus)
			}
			if body.Snippet.Title != "Road Trip" {
				t.Errorf("unexpected title %q", body.Snippet.Title)
			}
			json.NewEncoder(w).Encode(map[string]string{"id": "PLcreated"})
		})

		svc, _ := newTestYouTube(t, mux)

		id, err := svc.CreatePlaylist(context.Background(), testTokens(), "Road Trip", "desc")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if id != "PLcreated" {
			t.Errorf("expected PLcreated, got %q", id)
		}
	})

	t.Run("InsertItem", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/playlistItems", func(w http.ResponseWriter, r *http.Request) {
				var body struct {
					Snippet struct {
						PlaylistID string `json:"playlistId"`
						ResourceID struct {
							Kind    string `json:"kind"`
							VideoID string `json:"videoId"`
						} `json:"resourceId"`
					} `json:"snippet"`
				}
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
					t.Fatalf("failed to decode body: %v", err)
				}
				if body.Snippet.PlaylistID != "PL1" || body.Snippet.ResourceID.VideoID != "vidA" {
					t.Errorf("unexpected insert body %+v", body)
				}
				if body.Snippet.ResourceID.Kind != "youtube#video" {
					t.Errorf("unexpected resource kind %q", body.Snippet.ResourceID.Kind)
				}
				w.WriteHeader(http.StatusOK)
			})

			svc, _ := newTestYouTube(t, mux)

			if err := svc.InsertItem(context.Background(), testTokens(), "PL1", "vidA"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})

		t.Run("Conflict Is Typed", func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/playlistItems", func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error":{"code":409,"message":"The operation could not be completed"}}`, http.StatusConflict)
			})

			svc, _ := newTestYouTube(t, mux)

			err := svc.InsertItem(context.Background(), testTokens(), "PL1", "vidA")
			if !errors.Is(err, shared.ErrInsertConflict) {
				t.Errorf("expected conflict error, got %v", err)
			}
		})

		t.Run("Other Failures Are Not Conflicts", func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/playlistItems", func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error":{"code":404,"message":"Playlist not found"}}`, http.StatusNotFound)
			})

			svc, _ := newTestYouTube(t, mux)

			err := svc.InsertItem(context.Background(), testTokens(), "PL1", "vidA")
			if errors.Is(err, shared.ErrInsertConflict) {
				t.Error("expected non-conflict classification")
			}
			if !errors.Is(err, shared.ErrInsertion) {
				t.Errorf("expected insertion error, got %v", err)
			}
		})
	})
}
