package main

import (
	"time"

	"playlift/internal/shared"
	"playlift/internal/tasks"
)

// engineOpts translates the millisecond config knobs into engine options.
func engineOpts(config *shared.Config) tasks.EngineOpts {
	return tasks.EngineOpts{
		MaxInsertRetries: config.Migration.MaxInsertRetries,
		Pacing:           time.Duration(config.Migration.PacingMS) * time.Millisecond,
		RetryBackoff:     time.Duration(config.Migration.RetryBackoffMS) * time.Millisecond,
	}
}
