package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"playlift/internal/services"
	"playlift/internal/shared"
	"playlift/internal/tasks"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	skippedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Runner holds all dependencies for CLI commands and provides methods for
// each command action.
type Runner struct {
	config   *shared.Config
	spotify  services.SourceClient
	youtube  services.TargetClient
	registry tasks.RunRegistry
	logger   *log.Logger
	output   io.Writer
	engine   *tasks.MigrationEngine
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config   *shared.Config
	Spotify  services.SourceClient
	YouTube  services.TargetClient
	Registry tasks.RunRegistry
	Logger   *log.Logger
	Output   io.Writer
}

// NewRunner creates a new Runner with the provided configuration.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Registry == nil {
		opts.Registry = tasks.NewMemoryRegistry()
	}

	engine := tasks.NewMigrationEngine(opts.Spotify, opts.YouTube, opts.Registry, opts.Logger, engineOpts(opts.Config))

	return &Runner{
		config:   opts.Config,
		spotify:  opts.Spotify,
		youtube:  opts.YouTube,
		registry: opts.Registry,
		logger:   opts.Logger,
		output:   opts.Output,
		engine:   engine,
	}
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writeHeader(title string) {
	r.writePlain("%s\n", headerStyle.Render(title))
}
