// Package services implements the external catalog clients for the migration
// pipeline.
//
// # Source: Spotify
//
// [SpotifyService] reads the origin playlist with an application-level token
// (client-credentials grant, [clientcredentials.Config]). The playlist is
// public, so no end-user authorization is involved on this side. Pagination
// follows the absolute "next" URL reported by each page.
//
// # Target: YouTube
//
// [YouTubeService] performs every call with the token pair supplied by the
// caller; the client itself holds no user state. It covers the five
// operations the pipeline needs: code exchange, identity lookup, one-result
// search, private playlist creation, and playlist item insertion.
//
// # Errors
//
// Both clients wrap upstream failures in the sentinel taxonomy from
// internal/shared so the orchestrator and HTTP layer can classify them with
// [errors.Is]. The one transient class, a 409 on insertion, is distinguished
// as [shared.ErrInsertConflict] for the bounded retry in internal/tasks.
package services
