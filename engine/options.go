package engine

import (
	"log/slog"

	"github.com/cpcf/modgen/write"
)

type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func WithFailureMode(mode FailureMode) Option {
	return func(e *Engine) {
		e.failMode = mode
	}
}

// WithOverwrite replaces existing files instead of skipping them.
func WithOverwrite(overwrite bool) Option {
	return func(e *Engine) {
		e.overwrite = overwrite
	}
}

// WithAtomicWrites writes through a temporary file and a rename.
// WithAtomicWrites stages each file and moves it into place, so an interrupted
// write never leaves a partial file. On by default.
func WithAtomicWrites(atomic bool) Option {
	return func(e *Engine) {
		e.atomic = atomic
	}
}

// WithWriter replaces the writer chosen from the overwrite setting.
func WithWriter(w write.Writer) Option {
	return func(e *Engine) {
		e.writer = w
	}
}

// WithConcurrency sets how many operations of a plan run at once. Values below
// two execute the plan sequentially.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		e.concurrency = n
	}
}

// WithManifest records every written file in the output root's manifest.
func WithManifest(enabled bool) Option {
	return func(e *Engine) {
		e.manifest = enabled
	}
}
