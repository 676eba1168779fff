// Package generator derives the asset family of a block, item or material from its
// base name and writes it through the engine.
//
// Every operation comes in two forms: PlanX builds the list of files without
// touching the disk, X executes that plan and returns the engine's report.
package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/cpcf/modgen/assets"
	"github.com/cpcf/modgen/engine"
	"github.com/cpcf/modgen/postprocess"
	"github.com/cpcf/modgen/processors"
	"github.com/cpcf/modgen/recipe"
	"github.com/cpcf/modgen/write"
)

type Options struct {
	// Mod is the namespace every asset is generated for.
	Mod string
	// OutputRoot is the assets directory. Defaults to the working directory.
	OutputRoot string
	Logger     *slog.Logger
	// Overwrite replaces existing files. By default they are left alone and
	// reported as skipped.
	Overwrite bool
	// Strict rejects shaped recipes whose key does not match the grid.
	Strict      bool
	Concurrency int
	// FailureMode is one of fail_fast, fail_at_end or best_effort. Empty means fail_at_end.
	FailureMode     string
	Manifest        bool
	TrailingNewline bool
	// DirectWrites writes files in place instead of staging them, for output
	// directories that do not support hard links.
	DirectWrites bool
	// Writer replaces the file writer, e.g. with a write.DryRunWriter.
	Writer write.Writer
	// Templates replaces the embedded template catalog.
	Templates fs.FS
}

type Generator struct {
	layout   Layout
	logger   *slog.Logger
	failMode engine.FailureMode
	engine   *engine.Engine
	ectx     engine.Context
	recipes  *recipe.Renderer
}

func New(opts Options) (*Generator, error) {
	if opts.Mod == "" {
		return nil, errors.New("mod name is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	failMode := engine.FailAtEnd
	if opts.FailureMode != "" {
		mode, err := engine.ParseFailureMode(opts.FailureMode)
		if err != nil {
			return nil, err
		}
		failMode = mode
	}

	templates := opts.Templates
	if templates == nil {
		templates = assets.FS()
	}
	if err := assets.Verify(templates); err != nil {
		return nil, fmt.Errorf("template catalog is broken: %w", err)
	}

	outputRoot := opts.OutputRoot
	if outputRoot == "" {
		outputRoot = "."
	}

	engineOpts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithFailureMode(failMode),
		engine.WithOverwrite(opts.Overwrite),
		engine.WithAtomicWrites(!opts.DirectWrites),
		engine.WithConcurrency(opts.Concurrency),
		engine.WithManifest(opts.Manifest),
	}
	if opts.Writer != nil {
		engineOpts = append(engineOpts, engine.WithWriter(opts.Writer))
	}

	eng := engine.New(engineOpts...)
	eng.AddPostProcessor(postprocess.ForExtension(".json", processors.NewJSONCheck()))
	if opts.TrailingNewline {
		eng.AddPostProcessor(processors.NewTrailingNewline())
	}

	recipes := recipe.NewRenderer(opts.Mod, logger)
	if opts.Strict {
		recipes.Validate = recipe.Strict
	}

	return &Generator{
		layout:   Layout{Mod: opts.Mod},
		logger:   logger,
		failMode: failMode,
		engine:   eng,
		ectx:     engine.NewContext(templates, outputRoot),
		recipes:  recipes,
	}, nil
}

// Execute writes a plan built by one of the Plan methods.
func (g *Generator) Execute(ctx context.Context, plan *engine.Plan) (*engine.Report, error) {
	return g.engine.Execute(ctx, g.ectx, plan)
}

// Render returns what one operation of a plan would write.
func (g *Generator) Render(op engine.Operation) ([]byte, error) {
	return g.engine.Render(g.ectx, op.TemplatePath, op.Data)
}

func (g *Generator) data(name string) assets.Data {
	return assets.Data{Mod: g.layout.Mod, Name: name}
}

func (g *Generator) run(ctx context.Context, plan *engine.Plan, err error) (*engine.Report, error) {
	if err != nil {
		return nil, err
	}
	return g.Execute(ctx, plan)
}
