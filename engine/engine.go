// Package engine renders asset templates and writes them to disk as planned batches.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cpcf/modgen/postprocess"
	"github.com/cpcf/modgen/render"
	"github.com/cpcf/modgen/state"
	"github.com/cpcf/modgen/write"
)

type Engine struct {
	logger         *slog.Logger
	failMode       FailureMode
	overwrite      bool
	atomic         bool
	concurrency    int
	manifest       bool
	writer         write.Writer
	renderer       *Renderer
	cache          *TemplateCache
	postprocessors *postprocess.Chain
}

type FailureMode int

const (
	FailFast FailureMode = iota
	FailAtEnd
	BestEffort
)

func (m FailureMode) String() string {
	switch m {
	case FailFast:
		return "fail_fast"
	case FailAtEnd:
		return "fail_at_end"
	case BestEffort:
		return "best_effort"
	default:
		return "unknown"
	}
}

// ParseFailureMode accepts the names returned by FailureMode.String.
func ParseFailureMode(s string) (FailureMode, error) {
	for _, m := range []FailureMode{FailFast, FailAtEnd, BestEffort} {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown failure mode %q", s)
}

func New(opts ...Option) *Engine {
	e := &Engine{
		logger:         slog.Default(),
		failMode:       FailAtEnd,
		atomic:         true,
		concurrency:    1,
		cache:          NewTemplateCache(render.FuncMap()),
		postprocessors: postprocess.NewChain(),
	}

	for _, opt := range opts {
		opt(e)
	}

	// Custom writers get the same skip policy, so a dry run reports what a real
	// run would do.
	if e.writer == nil {
		e.writer = write.NewBaseWriter()
	}
	if !e.overwrite {
		e.writer = write.NewSkipIfExistsWriter(e.writer)
	}

	e.renderer = NewRenderer(e.logger, e.cache, e.postprocessors, e.writer, write.WriteOptions{
		CreateDirs: true,
		Overwrite:  e.overwrite,
		Atomic:     e.atomic,
	})

	return e
}

// Render executes a single template and returns the result without writing it.
func (e *Engine) Render(ctx Context, templatePath string, data any) ([]byte, error) {
	return e.renderer.Render(ctx, templatePath, data)
}

// Execute runs every operation of plan. Existing files are skipped unless the
// engine overwrites. The returned report is complete even when an error is
// returned; which failures surface as an error depends on the failure mode.
func (e *Engine) Execute(ctx context.Context, ectx Context, plan *Plan) (*Report, error) {
	start := time.Now()
	results := make([]opResult, plan.Len())

	var runErr error
	if e.concurrency > 1 {
		runErr = e.executeParallel(ctx, ectx, plan, results)
	} else {
		runErr = e.executeSequential(ctx, ectx, plan, results)
	}

	report := &Report{}
	for _, res := range results {
		switch res.outcome {
		case outcomeWritten:
			report.Written = append(report.Written, res.path)
		case outcomeSkipped:
			report.Skipped = append(report.Skipped, res.path)
		case outcomeFailed:
			report.Failed = append(report.Failed, res.err)
		}
	}
	report.Duration = time.Since(start)

	if e.manifest && len(report.Written) > 0 {
		if err := e.recordManifest(ectx, plan, results); err != nil {
			e.logger.Warn("failed to update manifest", "error", err)
		}
	}

	e.logger.Debug("plan executed", "operations", plan.Len(), "written", len(report.Written),
		"skipped", len(report.Skipped), "failed", len(report.Failed), "templates", e.cache.Len())

	if runErr != nil {
		return report, runErr
	}

	if len(report.Failed) == 0 {
		return report, nil
	}

	switch e.failMode {
	case FailFast:
		return report, report.Failed[0]
	case FailAtEnd:
		return report, &MultiError{Errors: report.Failed}
	default:
		for _, failure := range report.Failed {
			e.logger.Error("failed to generate asset", "path", failure.Path, "error", failure.Err)
		}
		return report, nil
	}
}

func (e *Engine) executeSequential(ctx context.Context, ectx Context, plan *Plan, results []opResult) error {
	for i, op := range plan.Operations {
		if err := ctx.Err(); err != nil {
			return err
		}

		results[i] = e.renderer.emit(ectx, op)
		if results[i].outcome == outcomeFailed && e.failMode == FailFast {
			return nil
		}
	}
	return nil
}

func (e *Engine) executeParallel(ctx context.Context, ectx Context, plan *Plan, results []opResult) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, op := range plan.Operations {
		i, op := i, op
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}

			results[i] = e.renderer.emit(ectx, op)
			if results[i].outcome == outcomeFailed && e.failMode == FailFast {
				return results[i].err
			}
			return nil
		})
	}

	// A FailFast error is already recorded in results and surfaces from the report.
	_ = g.Wait()
	return ctx.Err()
}

func (e *Engine) recordManifest(ectx Context, plan *Plan, results []opResult) error {
	mm := state.NewManifestManager(ectx.OutputRoot)
	manifest, err := mm.LoadManifest()
	if err != nil {
		return err
	}

	for i, res := range results {
		if res.outcome != outcomeWritten {
			continue
		}
		if err := mm.AddEntry(manifest, res.path, plan.Operations[i].TemplatePath); err != nil {
			return err
		}
	}

	if err := mm.SaveManifest(manifest); err != nil {
		return err
	}
	e.logger.Debug("manifest updated", "path", mm.Path(), "entries", len(manifest.Entries))
	return nil
}

// AddPostProcessor appends a processor to the chain run on every rendered file.
func (e *Engine) AddPostProcessor(processor postprocess.Processor) {
	e.postprocessors.Add(processor)
}
