package models

// Track is a single entry extracted from the source playlist.
// Artist holds the first listed artist and may be empty.
type Track struct {
	Title  string `json:"title"`
	Artist string `json:"artist,omitempty"`
}

// SourcePlaylist references a Spotify playlist by its catalog id.
type SourcePlaylist struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// TargetPlaylist references a YouTube playlist. Created reports whether the
// playlist was created during the run rather than supplied by the caller.
type TargetPlaylist struct {
	ID      string `json:"id"`
	Created bool   `json:"created"`
}

// MigrationRequest carries everything one migration run needs: the source
// playlist URL, an optional destination playlist URL, and the caller's
// YouTube token pair.
type MigrationRequest struct {
	SpotifyURL   string `json:"spotifyUrl"`
	YouTubeURL   string `json:"youtubeUrl,omitempty"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// MigrationResult summarizes a completed run.
type MigrationResult struct {
	RunID       string         `json:"runId"`
	Source      SourcePlaylist `json:"source"`
	Destination TargetPlaylist `json:"destination"`
	PlaylistURL string         `json:"youtubePlaylistUrl"`
	Total       int            `json:"total"`
	Inserted    int            `json:"inserted"`
	Skipped     int            `json:"skipped"`
}
