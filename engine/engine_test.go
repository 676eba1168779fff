package engine

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpcf/modgen/postprocess"
	"github.com/cpcf/modgen/state"
	gentest "github.com/cpcf/modgen/testing"
	"github.com/cpcf/modgen/write"
)

type modelData struct {
	Mod  string
	Name string
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func templates() Context {
	return NewContext(gentest.TemplateFS(map[string]string{
		"block/cube.json.tmpl": `{"parent": "{{.Mod}}:block/{{.Name}}"}`,
		"broken.json.tmpl":     `{"parent": "{{.Missing}}"}`,
		"half.json.tmpl":       `{"parent": `,
	}), "")
}

func TestExecuteWritesAndSkipsExisting(t *testing.T) {
	ectx := templates()
	ectx.OutputRoot = filepath.Join(t.TempDir(), "assets")

	plan := NewPlan()
	plan.Add("block/cube.json.tmpl", "glades/models/block/oak.json", modelData{"glades", "oak"})
	plan.Add("block/cube.json.tmpl", "../data/glades/loot_tables/blocks/oak.json", modelData{"glades", "oak"})

	e := New(WithLogger(quietLogger()))
	report, err := e.Execute(context.Background(), ectx, plan)
	require.NoError(t, err)
	assert.Equal(t, plan.Outputs(), report.Written)
	assert.Empty(t, report.Skipped)

	existing := filepath.Join(ectx.OutputRoot, "glades/models/block/oak.json")
	require.NoError(t, os.WriteFile(existing, []byte("hand edited"), 0o644))

	report, err = e.Execute(context.Background(), ectx, plan)
	require.NoError(t, err)
	assert.Empty(t, report.Written)
	assert.Equal(t, plan.Outputs(), report.Skipped)

	content, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "hand edited", string(content))
}

func TestCustomWriterKeepsSkipPolicy(t *testing.T) {
	ectx := templates()
	ectx.OutputRoot = t.TempDir()
	existing := filepath.Join(ectx.OutputRoot, "oak.json")
	require.NoError(t, os.WriteFile(existing, []byte("mine"), 0o644))

	plan := NewPlan()
	plan.Add("block/cube.json.tmpl", "oak.json", modelData{"glades", "oak"})
	plan.Add("block/cube.json.tmpl", "birch.json", modelData{"glades", "birch"})

	dry := write.NewDryRunWriter()
	report, err := New(WithLogger(quietLogger()), WithWriter(dry)).Execute(context.Background(), ectx, plan)
	require.NoError(t, err)
	assert.Equal(t, []string{"birch.json"}, report.Written)
	assert.Equal(t, []string{"oak.json"}, report.Skipped)
	assert.Equal(t, []write.Change{{Path: filepath.Join(ectx.OutputRoot, "birch.json"), Action: "create", Size: 32}}, dry.Changes())

	dry = write.NewDryRunWriter()
	report, err = New(WithLogger(quietLogger()), WithWriter(dry), WithOverwrite(true)).Execute(context.Background(), ectx, plan)
	require.NoError(t, err)
	assert.Len(t, report.Written, 2)
	require.Len(t, dry.Changes(), 2)
	assert.Equal(t, "update", dry.Changes()[1].Action)
	assert.NoFileExists(t, filepath.Join(ectx.OutputRoot, "birch.json"))
}

func TestExecuteOverwrite(t *testing.T) {
	ectx := templates()
	ectx.OutputRoot = t.TempDir()
	target := filepath.Join(ectx.OutputRoot, "oak.json")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0o644))

	plan := NewPlan()
	plan.Add("block/cube.json.tmpl", "oak.json", modelData{"glades", "oak"})

	for _, atomicWrites := range []bool{false, true} {
		e := New(WithLogger(quietLogger()), WithOverwrite(true), WithAtomicWrites(atomicWrites))
		report, err := e.Execute(context.Background(), ectx, plan)
		require.NoError(t, err)
		assert.Equal(t, []string{"oak.json"}, report.Written)

		content, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, `{"parent": "glades:block/oak"}`, string(content))
	}
}

func failingPlan() *Plan {
	plan := NewPlan()
	plan.Add("block/cube.json.tmpl", "a.json", modelData{"m", "a"})
	plan.Add("broken.json.tmpl", "b.json", modelData{"m", "b"})
	plan.Add("missing.json.tmpl", "c.json", modelData{"m", "c"})
	plan.Add("block/cube.json.tmpl", "d.json", modelData{"m", "d"})
	return plan
}

func TestFailureModes(t *testing.T) {
	t.Run("fail fast stops at the first failure", func(t *testing.T) {
		ectx := templates()
		ectx.OutputRoot = t.TempDir()

		report, err := New(WithLogger(quietLogger()), WithFailureMode(FailFast)).
			Execute(context.Background(), ectx, failingPlan())

		var genErr *GenerationError
		require.ErrorAs(t, err, &genErr)
		assert.Equal(t, "b.json", genErr.Path)
		assert.Equal(t, []string{"a.json"}, report.Written)
		assert.Len(t, report.Failed, 1)
		assert.NoFileExists(t, filepath.Join(ectx.OutputRoot, "d.json"))
	})

	t.Run("fail at end collects every failure", func(t *testing.T) {
		ectx := templates()
		ectx.OutputRoot = t.TempDir()

		report, err := New(WithLogger(quietLogger())).Execute(context.Background(), ectx, failingPlan())

		var multi *MultiError
		require.ErrorAs(t, err, &multi)
		require.Len(t, multi.Errors, 2)
		assert.Equal(t, "b.json", multi.Errors[0].Path)
		assert.Equal(t, "c.json", multi.Errors[1].Path)
		assert.Equal(t, []string{"a.json", "d.json"}, report.Written)
	})

	t.Run("best effort logs and succeeds", func(t *testing.T) {
		ectx := templates()
		ectx.OutputRoot = t.TempDir()

		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, nil))
		report, err := New(WithLogger(logger), WithFailureMode(BestEffort)).
			Execute(context.Background(), ectx, failingPlan())

		require.NoError(t, err)
		assert.Len(t, report.Failed, 2)
		assert.Contains(t, logs.String(), "failed to generate asset")
		assert.Contains(t, logs.String(), "path=c.json")
	})
}

func TestExecuteConcurrentKeepsPlanOrder(t *testing.T) {
	ectx := templates()
	ectx.OutputRoot = t.TempDir()

	plan := NewPlan()
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		plan.Add("block/cube.json.tmpl", name+".json", modelData{"m", name})
	}

	report, err := New(WithLogger(quietLogger()), WithConcurrency(4)).Execute(context.Background(), ectx, plan)
	require.NoError(t, err)
	assert.Equal(t, plan.Outputs(), report.Written)

	tree := gentest.ReadTree(t, ectx.OutputRoot)
	assert.Len(t, tree, 8)
	gentest.RequireValidJSON(t, tree)
}

func TestExecuteConcurrentDuplicateOutputIsWrittenOnce(t *testing.T) {
	ectx := templates()
	ectx.OutputRoot = t.TempDir()

	plan := NewPlan()
	for i := 0; i < 16; i++ {
		plan.Add("block/cube.json.tmpl", "same.json", modelData{"m", "same"})
	}

	report, err := New(WithLogger(quietLogger()), WithConcurrency(8)).Execute(context.Background(), ectx, plan)
	require.NoError(t, err)
	assert.Len(t, report.Written, 1)
	assert.Len(t, report.Skipped, 15)
}

func TestExecuteCancelled(t *testing.T) {
	ectx := templates()
	ectx.OutputRoot = t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	plan := NewPlan()
	plan.Add("block/cube.json.tmpl", "a.json", modelData{"m", "a"})

	report, err := New(WithLogger(quietLogger())).Execute(ctx, ectx, plan)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, report.Written)
}

func TestPostProcessorFailureKeepsContent(t *testing.T) {
	ectx := templates()
	ectx.OutputRoot = t.TempDir()

	e := New(WithLogger(quietLogger()))
	e.AddPostProcessor(postprocess.ProcessorFunc(func(string, []byte) ([]byte, error) {
		return nil, errors.New("rejected")
	}))

	plan := NewPlan()
	plan.Add("half.json.tmpl", "half.json", nil)

	report, err := e.Execute(context.Background(), ectx, plan)
	require.NoError(t, err)
	assert.Equal(t, []string{"half.json"}, report.Written)
	assert.Equal(t, `{"parent": `, gentest.ReadTree(t, ectx.OutputRoot)["half.json"])
}

func TestPostProcessorOutputIsWritten(t *testing.T) {
	ectx := templates()
	ectx.OutputRoot = t.TempDir()

	var calls atomic.Int32
	e := New(WithLogger(quietLogger()))
	e.AddPostProcessor(postprocess.ProcessorFunc(func(_ string, content []byte) ([]byte, error) {
		calls.Add(1)
		return append(content, '\n'), nil
	}))

	plan := NewPlan()
	plan.Add("block/cube.json.tmpl", "oak.json", modelData{"m", "oak"})

	_, err := e.Execute(context.Background(), ectx, plan)
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "{\"parent\": \"m:block/oak\"}\n", gentest.ReadTree(t, ectx.OutputRoot)["oak.json"])
}

func TestExecuteRecordsManifest(t *testing.T) {
	ectx := templates()
	ectx.OutputRoot = t.TempDir()

	plan := NewPlan()
	plan.Add("block/cube.json.tmpl", "m/models/block/oak.json", modelData{"m", "oak"})

	e := New(WithLogger(quietLogger()), WithManifest(true))
	_, err := e.Execute(context.Background(), ectx, plan)
	require.NoError(t, err)

	mm := state.NewManifestManager(ectx.OutputRoot)
	manifest, err := mm.LoadManifest()
	require.NoError(t, err)

	entry, ok := mm.GetEntry(manifest, "m/models/block/oak.json")
	require.True(t, ok)
	assert.Equal(t, "block/cube.json.tmpl", entry.TemplatePath)
	assert.NotEmpty(t, entry.RunID)

	changed, err := mm.HasChanged(manifest, "m/models/block/oak.json")
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestRenderWithoutWriting(t *testing.T) {
	ectx := templates()

	out, err := New(WithLogger(quietLogger())).Render(ectx, "block/cube.json.tmpl", modelData{"m", "stone"})
	require.NoError(t, err)
	assert.Equal(t, `{"parent": "m:block/stone"}`, string(out))

	_, err = New().Render(Context{}, "block/cube.json.tmpl", nil)
	assert.Error(t, err)
}

func TestTemplateCacheParsesOnce(t *testing.T) {
	fsys := gentest.TemplateFS(map[string]string{"a.tmpl": "{{.}}"})
	cache := NewTemplateCache(nil)

	first, err := cache.Get(fsys, "a.tmpl")
	require.NoError(t, err)
	second, err := cache.Get(fsys, "a.tmpl")
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, cache.Len())

	other := gentest.TemplateFS(map[string]string{"a.tmpl": "other"})
	third, err := cache.Get(other, "a.tmpl")
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, 2, cache.Len())
}

func TestReportHelpers(t *testing.T) {
	r := &Report{Written: []string{"a"}}
	r.Merge(&Report{Skipped: []string{"b"}, Failed: []*GenerationError{{Path: "c", Message: "x"}}})
	r.Merge(nil)

	assert.Equal(t, []string{"a"}, r.Written)
	assert.Equal(t, []string{"b"}, r.Skipped)
	assert.Contains(t, r.String(), "1 written, 1 skipped, 1 failed")

	inner := errors.New("disk full")
	multi := &MultiError{Errors: []*GenerationError{{Path: "a.json", Message: "write failed", Err: inner}}}
	assert.ErrorIs(t, multi, inner)
	assert.Equal(t, "a.json: write failed: disk full", multi.Error())
}

func TestParseFailureMode(t *testing.T) {
	for _, m := range []FailureMode{FailFast, FailAtEnd, BestEffort} {
		parsed, err := ParseFailureMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
	_, err := ParseFailureMode("whenever")
	assert.Error(t, err)
}
