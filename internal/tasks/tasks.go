// package tasks implements the playlist migration pipeline.
//
// The core abstraction is MigrationEngine, which runs one Spotify → YouTube
// migration end to end: source extraction, destination setup, per-track
// resolution and paced insertion. Operations emit progress updates via
// channels for non-blocking status reporting to CLI/HTTP layers.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"playlift/internal/models"
	"playlift/internal/services"
	"playlift/internal/shared"
)

// playlistDescription tags playlists created by the tool.
const playlistDescription = "Migrated from Spotify with playlift"

const (
	defaultMaxInsertRetries = 1
	defaultPacing           = 300 * time.Millisecond
	defaultRetryBackoff     = time.Second
)

// EngineOpts contains tuning knobs for the migration pipeline.
type EngineOpts struct {
	MaxInsertRetries int           // Retry budget for conflict-class insertion failures
	Pacing           time.Duration // Minimum spacing between successive insertions
	RetryBackoff     time.Duration // Fixed delay before an insertion retry
}

// MigrationEngine orchestrates a full migration run. One engine is shared by
// all requests; per-run state lives on the stack of Migrate.
type MigrationEngine struct {
	source   services.SourceClient
	target   services.TargetClient
	registry RunRegistry
	logger   *log.Logger
	opts     EngineOpts

	// sleep waits for the retry backoff; swapped out in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewMigrationEngine creates an engine with the provided collaborators.
// Zero-valued options fall back to the defaults from the original service
// (one retry, 300ms pacing, 1s backoff).
func NewMigrationEngine(source services.SourceClient, target services.TargetClient, registry RunRegistry, logger *log.Logger, opts EngineOpts) *MigrationEngine {
	if opts.MaxInsertRetries <= 0 {
		opts.MaxInsertRetries = defaultMaxInsertRetries
	}
	if opts.Pacing <= 0 {
		opts.Pacing = defaultPacing
	}
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = defaultRetryBackoff
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &MigrationEngine{
		source:   source,
		target:   target,
		registry: registry,
		logger:   logger,
		opts:     opts,
		sleep:    sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *MigrationEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// migrationRun holds the validated inputs of one run.
type migrationRun struct {
	id       string
	tokens   services.TokenPair
	sourceID string
	destID   string
}

// validate checks the request and extracts the playlist id tokens. It makes
// no network calls, so a malformed request fails before anything is spent.
func validate(req models.MigrationRequest) (*migrationRun, error) {
	if req.SpotifyURL == "" {
		return nil, fmt.Errorf("%w: spotify playlist URL is required", shared.ErrValidation)
	}
	if req.AccessToken == "" {
		return nil, fmt.Errorf("%w: youtube access token is required", shared.ErrValidation)
	}

	sourceID, err := shared.ParseSpotifyPlaylistURL(req.SpotifyURL)
	if err != nil {
		return nil, err
	}

	run := &migrationRun{
		id:       shared.NewRunID(),
		tokens:   services.TokenPair{AccessToken: req.AccessToken, RefreshToken: req.RefreshToken},
		sourceID: sourceID,
	}

	if req.YouTubeURL != "" {
		destID, err := shared.ParseYouTubePlaylistURL(req.YouTubeURL)
		if err != nil {
			return nil, err
		}
		run.destID = destID
	}

	return run, nil
}

// Migrate performs one end-to-end migration run.
//
// Stages run strictly in order: validation, identity resolution, run-guard
// acquisition, source extraction, destination setup, then the per-track
// resolve/insert loop. The first stage failure aborts the run; items already
// inserted stay where they are. The run guard is released on every exit path.
func (e *MigrationEngine) Migrate(ctx context.Context, req models.MigrationRequest, progress chan<- ProgressUpdate) (*models.MigrationResult, error) {
	run, err := validate(req)
	if err != nil {
		return nil, err
	}

	logger := e.logger.With("run", run.id, "playlist", run.sourceID)

	e.sendProgress(progress, identityUpdate())
	userID, err := e.target.Identity(ctx, run.tokens)
	if err != nil {
		return nil, err
	}

	granted, err := e.registry.TryAcquire(userID)
	if err != nil {
		return nil, fmt.Errorf("run registry: %w", err)
	}
	if !granted {
		return nil, fmt.Errorf("%w: user %s", shared.ErrRunInProgress, userID)
	}
	defer func() {
		if err := e.registry.Release(userID); err != nil {
			logger.Error("failed to release run slot", "user", userID, "err", err)
		}
	}()

	logger.Info("migration started", "user", userID)

	token, err := e.source.ClientToken(ctx)
	if err != nil {
		return nil, err
	}

	e.sendProgress(progress, fetchSourceUpdate())
	tracks, err := e.fetchAllTracks(ctx, token, run.sourceID)
	if err != nil {
		return nil, err
	}
	logger.Info("source extracted", "tracks", len(tracks))

	e.sendProgress(progress, destinationUpdate(run.destID))
	dest, name, err := e.ensurePlaylist(ctx, run, token)
	if err != nil {
		return nil, err
	}

	result := &models.MigrationResult{
		RunID:       run.id,
		Source:      models.SourcePlaylist{ID: run.sourceID, Name: name},
		Destination: dest,
		PlaylistURL: fmt.Sprintf("https://www.youtube.com/playlist?list=%s", dest.ID),
		Total:       len(tracks),
	}

	// The limiter paces writes only: resolution and skipped tracks consume
	// no token, and the first insertion proceeds immediately.
	limiter := rate.NewLimiter(rate.Every(e.opts.Pacing), 1)

	for i, track := range tracks {
		e.sendProgress(progress, searchUpdate(i+1, len(tracks), track))

		videoID, err := e.target.SearchOne(ctx, run.tokens, searchQuery(track))
		if err != nil {
			return nil, err
		}
		if videoID == "" {
			result.Skipped++
			logger.Debug("no match, skipping", "title", track.Title, "artist", track.Artist)
			continue
		}

		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}
		if err := e.insertWithRetry(ctx, run.tokens, dest.ID, videoID); err != nil {
			return nil, err
		}
		result.Inserted++
		e.sendProgress(progress, insertUpdate(i+1, len(tracks), videoID))
	}

	logger.Info("migration complete", "inserted", result.Inserted, "skipped", result.Skipped)
	e.sendProgress(progress, doneUpdate(result))
	return result, nil
}

// fetchAllTracks follows pagination until the source reports no further page
// and returns the fully materialized, ordered track list. Pages already
// fetched are discarded when any page request fails.
func (e *MigrationEngine) fetchAllTracks(ctx context.Context, token, playlistID string) ([]models.Track, error) {
	var tracks []models.Track
	cursor := ""

	for {
		page, err := e.source.PlaylistPage(ctx, token, playlistID, cursor)
		if err != nil {
			return nil, err
		}

		tracks = append(tracks, page.Tracks...)
		if page.Next == "" {
			return tracks, nil
		}
		cursor = page.Next
	}
}

// ensurePlaylist returns the destination playlist, creating a private one
// named after the source playlist when the caller did not supply one. A
// supplied id is used as-is; a stale id surfaces later as an insertion
// failure.
func (e *MigrationEngine) ensurePlaylist(ctx context.Context, run *migrationRun, srcToken string) (models.TargetPlaylist, string, error) {
	if run.destID != "" {
		return models.TargetPlaylist{ID: run.destID}, "", nil
	}

	name, err := e.source.PlaylistName(ctx, srcToken, run.sourceID)
	if err != nil {
		return models.TargetPlaylist{}, "", err
	}

	id, err := e.target.CreatePlaylist(ctx, run.tokens, name, playlistDescription)
	if err != nil {
		return models.TargetPlaylist{}, "", err
	}

	return models.TargetPlaylist{ID: id, Created: true}, name, nil
}

// insertWithRetry performs one insertion with a bounded linear retry on the
// transient conflict class. Any other failure class, or an exhausted budget,
// propagates to the caller.
func (e *MigrationEngine) insertWithRetry(ctx context.Context, tokens services.TokenPair, playlistID, videoID string) error {
	for attempt := 0; ; attempt++ {
		err := e.target.InsertItem(ctx, tokens, playlistID, videoID)
		if err == nil {
			return nil
		}
		if !errors.Is(err, shared.ErrInsertConflict) || attempt >= e.opts.MaxInsertRetries {
			return err
		}

		e.logger.Warn("insertion conflict, retrying", "video", videoID, "attempt", attempt+1)
		if err := e.sleep(ctx, e.opts.RetryBackoff); err != nil {
			return err
		}
	}
}

// searchQuery builds the free-text resolution query: artist first, then
// title; title alone when the track has no listed artist.
func searchQuery(track models.Track) string {
	if track.Artist == "" {
		return track.Title
	}
	return track.Artist + " " + track.Title
}
