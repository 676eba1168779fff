package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/cpcf/modgen/postprocess"
	"github.com/cpcf/modgen/write"
)

type outcome int

const (
	outcomePending outcome = iota
	outcomeWritten
	outcomeSkipped
	outcomeFailed
)

type opResult struct {
	path    string
	outcome outcome
	err     *GenerationError
}

type Renderer struct {
	logger         *slog.Logger
	cache          *TemplateCache
	postprocessors *postprocess.Chain
	writer         write.Writer
	writeOpts      write.WriteOptions
}

func NewRenderer(logger *slog.Logger, cache *TemplateCache, postprocessors *postprocess.Chain, writer write.Writer, opts write.WriteOptions) *Renderer {
	return &Renderer{
		logger:         logger,
		cache:          cache,
		postprocessors: postprocessors,
		writer:         writer,
		writeOpts:      opts,
	}
}

// Render executes one template and returns its output without post-processing.
func (r *Renderer) Render(ctx Context, templatePath string, data any) ([]byte, error) {
	if ctx.TmplFS == nil {
		return nil, fmt.Errorf("no template filesystem configured")
	}

	tmpl, err := r.cache.Get(ctx.TmplFS, templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to get template %s: %w", templatePath, err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template %s: %w", templatePath, err)
	}
	return []byte(buf.String()), nil
}

func (r *Renderer) emit(ctx Context, op Operation) opResult {
	outputPath := r.resolveOutputPath(ctx, op.OutputPath)
	res := opResult{path: op.OutputPath}

	if !r.writer.CanWrite(outputPath) {
		r.logger.Debug("skipping existing file", "path", outputPath)
		res.outcome = outcomeSkipped
		return res
	}

	r.logger.Debug("rendering template", "path", op.TemplatePath)
	content, err := r.Render(ctx, op.TemplatePath, op.Data)
	if err != nil {
		return r.fail(res, "render failed", err)
	}

	if r.postprocessors.HasProcessors() {
		processed, err := r.postprocessors.Process(outputPath, content)
		if err != nil {
			r.logger.Warn("post-processing failed", "path", outputPath, "error", err)
		} else {
			content = processed
		}
	}

	if err := r.writer.Write(outputPath, content, r.writeOpts); err != nil {
		if errors.Is(err, write.ErrExists) {
			r.logger.Debug("skipping existing file", "path", outputPath)
			res.outcome = outcomeSkipped
			return res
		}
		return r.fail(res, "write failed", err)
	}

	r.logger.Info("wrote asset", "template", op.TemplatePath, "output", outputPath)
	res.outcome = outcomeWritten
	return res
}

func (r *Renderer) fail(res opResult, message string, err error) opResult {
	res.outcome = outcomeFailed
	res.err = &GenerationError{Path: res.path, Message: message, Err: err}
	return res
}

func (r *Renderer) resolveOutputPath(ctx Context, outputPath string) string {
	if filepath.IsAbs(outputPath) {
		return outputPath
	}
	return filepath.Join(ctx.OutputRoot, outputPath)
}
