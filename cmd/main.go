package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"playlift/internal/services"
	"playlift/internal/shared"
	"playlift/internal/tasks"
)

func main() {
	// Credentials may come from a .env file; absence is fine.
	_ = godotenv.Load()

	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		loaded, err := shared.LoadConfig("config.toml")
		if err != nil {
			logger.Fatal("failed to load config.toml", "err", err)
		}
		config = loaded
	}

	runner, err := buildRunner(config, logger)
	if err != nil {
		logger.Fatal("failed to initialize", "err", err)
	}

	app := &cli.Command{
		Name:    "playlift",
		Usage:   "Migrate Spotify playlists to YouTube",
		Version: "0.1.0",
		Commands: []*cli.Command{
			serveCommand(runner),
			migrateCommand(runner),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}

func buildRunner(config *shared.Config, logger *log.Logger) (*Runner, error) {
	spotify, err := services.NewSpotifyService(config.Credentials.Spotify)
	if err != nil {
		return nil, fmt.Errorf("spotify client: %w", err)
	}

	youtube, err := services.NewYouTubeService(config.Credentials.Google)
	if err != nil {
		return nil, fmt.Errorf("youtube client: %w", err)
	}

	var registry tasks.RunRegistry
	if path := config.Registry.DatabasePath; path != "" {
		db, err := shared.OpenDatabase(path)
		if err != nil {
			return nil, fmt.Errorf("registry database: %w", err)
		}
		registry, err = tasks.NewSQLiteRegistry(db)
		if err != nil {
			return nil, fmt.Errorf("registry: %w", err)
		}
	} else {
		registry = tasks.NewMemoryRegistry()
	}

	return NewRunner(RunnerOpts{
		Config:   config,
		Spotify:  spotify,
		YouTube:  youtube,
		Registry: registry,
		Logger:   logger,
	}), nil
}
