// Package testing contains helpers shared by the generator's tests: in-memory
// template catalogs and readers for generated output trees.
package testing

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"testing/fstest"
	"time"
)

// TemplateFS builds an in-memory template catalog from path/content pairs.
func TemplateFS(files map[string]string) fs.FS {
	mfs := make(fstest.MapFS, len(files))
	for name, content := range files {
		mfs[name] = &fstest.MapFile{
			Data:    []byte(content),
			Mode:    0o644,
			ModTime: time.Now(),
		}
	}
	return mfs
}

// ReadTree returns every regular file below root keyed by its slash-separated path
// relative to root.
func ReadTree(t testing.TB, root string) map[string]string {
	t.Helper()

	files := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = string(content)
		return nil
	})
	if err != nil {
		t.Fatalf("failed to read output tree %s: %v", root, err)
	}
	return files
}

// Paths returns the sorted keys of a tree read with ReadTree.
func Paths(tree map[string]string) []string {
	paths := make([]string, 0, len(tree))
	for path := range tree {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// RequireValidJSON fails the test for every file in tree that does not hold a
// valid JSON document.
func RequireValidJSON(t testing.TB, tree map[string]string) {
	t.Helper()

	for _, path := range Paths(tree) {
		if !json.Valid([]byte(tree[path])) {
			t.Errorf("%s is not valid JSON:\n%s", path, tree[path])
		}
	}
}
