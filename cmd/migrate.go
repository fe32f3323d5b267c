package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"playlift/internal/models"
	"playlift/internal/tasks"
)

// Migrate runs a single migration from the command line with explicit tokens.
func (r *Runner) Migrate(ctx context.Context, cmd *cli.Command) error {
	req := models.MigrationRequest{
		SpotifyURL:   cmd.String("source"),
		YouTubeURL:   cmd.String("dest"),
		AccessToken:  cmd.String("access-token"),
		RefreshToken: cmd.String("refresh-token"),
	}

	r.logger.Info("starting migration", "source", req.SpotifyURL)
	r.writeHeader("Migrating playlist")

	progressCh := make(chan tasks.ProgressUpdate, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.SearchTracks:
				r.writePlain("  %s\n", update.Message)
			case tasks.InsertTracks:
				r.writePlain("  %s\n", successStyle.Render(update.Message))
			default:
				r.writePlain("%s\n", update.Message)
			}
		}
	}()

	result, err := r.engine.Migrate(ctx, req, progressCh)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	r.writeHeader("Migration complete")
	r.writePlain("Source: %s (%d tracks)\n", result.Source.Name, result.Total)
	r.writePlain("%s\n", successStyle.Render(fmt.Sprintf("Inserted: %d", result.Inserted)))
	if result.Skipped > 0 {
		r.writePlain("%s\n", skippedStyle.Render(fmt.Sprintf("Skipped (no match): %d", result.Skipped)))
	}
	r.writePlain("Playlist: %s\n", result.PlaylistURL)
	return nil
}

func migrateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Run one Spotify → YouTube migration",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "source",
				Usage:    "Spotify playlist URL",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "dest",
				Usage: "Existing YouTube playlist URL (created when omitted)",
			},
			&cli.StringFlag{
				Name:     "access-token",
				Usage:    "YouTube access token",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "refresh-token",
				Usage: "YouTube refresh token",
			},
		},
		Action: r.Migrate,
	}
}
