// Package tasks orchestrates playlist migration runs with per-user
// serialization and real-time progress reporting.
//
// # Pipeline
//
// [MigrationEngine.Migrate] runs the stages of a migration strictly in order:
//
//  1. Validation — extract playlist id tokens from the request URLs, verify
//     the token pair is present. No network calls happen before this passes.
//  2. Identity — resolve the caller's YouTube channel id.
//  3. Run guard — acquire the per-user slot from the [RunRegistry]; a second
//     request for the same identity is rejected distinctly. The slot is
//     released by a deferred call on every exit path.
//  4. Extraction — obtain a Spotify app token and fetch all playlist pages
//     into one ordered list.
//  5. Destination — reuse the supplied playlist id or create a private
//     playlist named after the source playlist.
//  6. Resolve and insert — per track, in source order: one search call, skip
//     silently on no match, otherwise insert with bounded conflict retry.
//     Writes are paced by a [rate.Limiter]; the first failure aborts the run.
//
// # Run registry
//
// The [RunRegistry] interface guarantees atomic check-and-set with no expiry.
// [MemoryRegistry] backs single-process deployments; [SQLiteRegistry] keeps
// the guard in a shared database with a conditional UPSERT.
//
// # Progress reporting
//
// All updates go through a non-blocking channel send; a slow or absent
// consumer never stalls a run.
package tasks
