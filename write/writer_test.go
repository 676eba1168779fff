package write

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseWriterCreatesDirectories(t *testing.T) {
	for _, atomic := range []bool{false, true} {
		path := filepath.Join(t.TempDir(), "glades", "models", "block", "oak.json")

		err := NewBaseWriter().Write(path, []byte("{}"), WriteOptions{CreateDirs: true, Atomic: atomic})
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "{}", string(content))

		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		assert.Len(t, entries, 1, "no temporary files left behind")
	}
}

func TestBaseWriterRefusesExistingWithoutOverwrite(t *testing.T) {
	for _, atomic := range []bool{false, true} {
		path := filepath.Join(t.TempDir(), "oak.json")
		require.NoError(t, os.WriteFile(path, []byte("mine"), 0o644))

		err := NewBaseWriter().Write(path, []byte("{}"), WriteOptions{Atomic: atomic})
		assert.ErrorIs(t, err, ErrExists)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "mine", string(content))
	}
}

func TestBaseWriterOverwrite(t *testing.T) {
	for _, atomic := range []bool{false, true} {
		path := filepath.Join(t.TempDir(), "oak.json")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

		err := NewBaseWriter().Write(path, []byte("new"), WriteOptions{Overwrite: true, Atomic: atomic})
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(content))
	}
}

func TestBaseWriterWithoutCreateDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "oak.json")
	assert.Error(t, NewBaseWriter().Write(path, []byte("{}"), WriteOptions{}))
}

func TestSkipIfExistsWriter(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "existing.json")
	fresh := filepath.Join(dir, "fresh.json")
	require.NoError(t, os.WriteFile(existing, []byte("mine"), 0o644))

	w := NewSkipIfExistsWriter(nil)
	assert.False(t, w.CanWrite(existing))
	assert.True(t, w.CanWrite(fresh))

	require.NoError(t, w.Write(fresh, []byte("{}"), WriteOptions{}))
	assert.False(t, w.CanWrite(fresh))

	err := w.Write(existing, []byte("{}"), WriteOptions{Overwrite: true})
	assert.ErrorIs(t, err, ErrExists)

	content, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "mine", string(content))
}

func TestDryRunWriter(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "b.json")
	require.NoError(t, os.WriteFile(existing, []byte("mine"), 0o644))

	w := NewDryRunWriter()
	require.NoError(t, w.Write(existing, []byte("{}"), WriteOptions{}))
	require.NoError(t, w.Write(filepath.Join(dir, "a.json"), []byte("{ }"), WriteOptions{}))

	changes := w.Changes()
	require.Len(t, changes, 2)
	assert.Equal(t, Change{Path: filepath.Join(dir, "a.json"), Action: "create", Size: 3}, changes[0])
	assert.Equal(t, "update", changes[1].Action)
	assert.NoFileExists(t, filepath.Join(dir, "a.json"))
}
