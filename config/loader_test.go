package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpcf/modgen/engine"
)

const projectYAML = `
mod: theancientglades
output_root: src/main/resources/assets
strict_recipes: true
failure_mode: best_effort
concurrency: 4
manifest: true
log_level: debug
jobs:
  - kind: building
    name: oak
  - kind: tool_recipes
    name: ruby
    material: "#c:gems/ruby"
  - kind: block
    name: marble
    block: cube
`

const projectTOML = `
mod = "theancientglades"
overwrite = true
direct_writes = true

[[jobs]]
kind = "armour"
name = "ruby"

[[jobs]]
kind = "item"
name = "ruby"
parent = "generated"
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadYAMLProject(t *testing.T) {
	var p Project
	require.NoError(t, LoadYAML(writeFile(t, "modgen.yaml", projectYAML), &p))

	assert.Equal(t, "theancientglades", p.Mod)
	assert.Equal(t, "src/main/resources/assets", p.ResolveOutputRoot())
	assert.True(t, p.StrictRecipes)
	assert.True(t, p.Manifest)
	assert.Equal(t, 4, p.Concurrency)
	assert.Equal(t, engine.BestEffort.String(), p.FailureMode)
	require.Len(t, p.Jobs, 3)
	assert.Equal(t, Job{Kind: JobToolRecipes, Name: "ruby", Material: "#c:gems/ruby"}, p.Jobs[1])
	assert.Equal(t, "cube", p.Jobs[2].Block)
}

func TestLoadTOMLProject(t *testing.T) {
	var p Project
	require.NoError(t, LoadTOML(writeFile(t, "modgen.toml", projectTOML), &p))

	assert.Equal(t, "theancientglades", p.Mod)
	assert.True(t, p.Overwrite)
	assert.Empty(t, p.FailureMode)
	assert.True(t, p.DirectWrites)
	require.Len(t, p.Jobs, 2)
	assert.Equal(t, JobArmour, p.Jobs[0].Kind)
	assert.Equal(t, "generated", p.Jobs[1].Parent)
}

func TestLoadPicksDecoderByExtension(t *testing.T) {
	var fromTOML, fromYAML Project
	require.NoError(t, Load(writeFile(t, "modgen.TOML", projectTOML), &fromTOML))
	require.NoError(t, Load(writeFile(t, "modgen.yml", projectYAML), &fromYAML))

	assert.Len(t, fromTOML.Jobs, 2)
	assert.Len(t, fromYAML.Jobs, 3)
}

func TestLoadMissingFile(t *testing.T) {
	var p Project
	err := Load(filepath.Join(t.TempDir(), "nope.yaml"), &p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestLoadInvalidSyntax(t *testing.T) {
	var p Project
	err := LoadYAMLFromString("mod: [unterminated", &p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")

	err = LoadTOMLFromString("mod = ", &p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse TOML")
}

func TestProjectValidation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"missing mod", "jobs: []", "mod is required"},
		{"bad failure mode", "mod: m\nfailure_mode: sometimes", "unknown failure mode"},
		{"bad log level", "mod: m\nlog_level: loud", "unknown log level"},
		{"negative concurrency", "mod: m\nconcurrency: -1", "must not be negative"},
		{"unknown job", "mod: m\njobs:\n  - kind: castle\n    name: oak", "jobs[0]: unknown job kind"},
		{"recipe without material", "mod: m\njobs:\n  - kind: wall_recipe\n    name: stone", "needs a material"},
		{"block without kind", "mod: m\njobs:\n  - kind: block\n    name: stone", "needs a block kind"},
		{"item without parent", "mod: m\njobs:\n  - kind: item\n    name: ruby", "needs a parent"},
		{"job without name", "mod: m\njobs:\n  - kind: building", "needs a name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Project
			err := LoadYAMLFromString(tt.yaml, &p)
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.wantErr), "got %v", err)
		})
	}
}

func TestResolveOutputRootFallbacks(t *testing.T) {
	p := Project{Mod: "m"}

	t.Setenv(OutputEnv, "")
	assert.Equal(t, ".", p.ResolveOutputRoot())

	t.Setenv(OutputEnv, "/tmp/resources/assets")
	assert.Equal(t, "/tmp/resources/assets", p.ResolveOutputRoot())

	p.OutputRoot = "out"
	assert.Equal(t, "out", p.ResolveOutputRoot())
}

func TestParseLogLevel(t *testing.T) {
	level, err := ParseLogLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	_, err = ParseLogLevel("chatty")
	assert.Error(t, err)
}
