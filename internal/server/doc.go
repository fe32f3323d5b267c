// Package server provides the HTTP transport in front of the migration
// pipeline.
//
// # Routes
//
//	GET  /auth/youtube               → redirect to the Google consent screen
//	GET  /oauth2callback             → exchange code, redirect to the frontend with the token pair
//	GET  /check-auth                 → validate a bearer token against YouTube
//	POST /migrate/spotify-to-youtube → run one migration
//
// # Authorization model
//
// The service is stateless: the OAuth callback hands the token pair to the
// frontend, which includes it in each migration request. No session or token
// is stored server-side.
//
// # Error mapping
//
// Handlers classify pipeline failures with errors.Is against the sentinel
// taxonomy in internal/shared: validation → 400, authorization → 401,
// run-in-progress → 409 (distinct category in the body), upstream failures →
// 502, anything else → 500. Every failure body is a JSON object with an error
// category and a human-readable message.
package server
