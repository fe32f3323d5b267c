// package testing contains shared test doubles for the migration pipeline
package testing

import (
	"context"
	"fmt"

	"playlift/internal/services"
)

// MockSourceClient is a configurable test double for [services.SourceClient].
//
// Pages are served in order; each page except the last is returned with a
// synthetic next cursor so callers exercise the pagination loop.
type MockSourceClient struct {
	Token    string
	TokenErr error
	Name     string
	NameErr  error
	Pages    []services.TrackPage
	PageErr  error

	TokenCalls int
	NameCalls  int
	PageCalls  int
}

func (m *MockSourceClient) ClientToken(ctx context.Context) (string, error) {
	m.TokenCalls++
	if m.TokenErr != nil {
		return "", m.TokenErr
	}
	if m.Token == "" {
		return "app-token", nil
	}
	return m.Token, nil
}

func (m *MockSourceClient) PlaylistName(ctx context.Context, token, playlistID string) (string, error) {
	m.NameCalls++
	if m.NameErr != nil {
		return "", m.NameErr
	}
	return m.Name, nil
}

func (m *MockSourceClient) PlaylistPage(ctx context.Context, token, playlistID, cursor string) (*services.TrackPage, error) {
	m.PageCalls++
	if m.PageErr != nil {
		return nil, m.PageErr
	}

	idx := m.PageCalls - 1
	if idx >= len(m.Pages) {
		return &services.TrackPage{}, nil
	}

	page := m.Pages[idx]
	if idx < len(m.Pages)-1 {
		page.Next = fmt.Sprintf("cursor-%d", idx+1)
	}
	return &page, nil
}

// MockTargetClient is a configurable test double for [services.TargetClient].
//
// SearchResults maps a query to a video id; a missing key means "no match".
// InsertErrs is consumed one entry per insertion attempt, letting tests
// script conflict-then-success sequences.
type MockTargetClient struct {
	UserID       string
	IdentityErr  error
	SearchResult map[string]string
	SearchErr    error
	CreatedID    string
	CreateErr    error
	InsertErrs   []error
	ExchangePair services.TokenPair
	ExchangeErr  error

	IdentityCalls int
	SearchCalls   int
	CreateCalls   int
	InsertCalls   int

	CreatedTitle       string
	CreatedDescription string
	Inserted           []string
}

func (m *MockTargetClient) AuthURL(state string) string {
	return "https://accounts.google.com/o/oauth2/auth?state=" + state
}

func (m *MockTargetClient) Exchange(ctx context.Context, code string) (services.TokenPair, error) {
	if m.ExchangeErr != nil {
		return services.TokenPair{}, m.ExchangeErr
	}
	return m.ExchangePair, nil
}

func (m *MockTargetClient) Identity(ctx context.Context, tokens services.TokenPair) (string, error) {
	m.IdentityCalls++
	if m.IdentityErr != nil {
		return "", m.IdentityErr
	}
	if m.UserID == "" {
		return "user-1", nil
	}
	return m.UserID, nil
}

func (m *MockTargetClient) SearchOne(ctx context.Context, tokens services.TokenPair, query string) (string, error) {
	m.SearchCalls++
	if m.SearchErr != nil {
		return "", m.SearchErr
	}
	return m.SearchResult[query], nil
}

func (m *MockTargetClient) CreatePlaylist(ctx context.Context, tokens services.TokenPair, title, description string) (string, error) {
	m.CreateCalls++
	if m.CreateErr != nil {
		return "", m.CreateErr
	}
	m.CreatedTitle = title
	m.CreatedDescription = description
	if m.CreatedID == "" {
		return "PL-new", nil
	}
	return m.CreatedID, nil
}

func (m *MockTargetClient) InsertItem(ctx context.Context, tokens services.TokenPair, playlistID, videoID string) error {
	idx := m.InsertCalls
	m.InsertCalls++
	if idx < len(m.InsertErrs) && m.InsertErrs[idx] != nil {
		return m.InsertErrs[idx]
	}
	m.Inserted = append(m.Inserted, videoID)
	return nil
}
