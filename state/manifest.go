// Package state keeps a manifest of generated assets so they can be told apart
// from files a user created or edited.
package state

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

const (
	ManifestFile    = ".modgen.manifest.json"
	manifestVersion = "1"
	generatorName   = "modgen"
)

type ManifestEntry struct {
	Path         string    `json:"path"`
	Hash         string    `json:"hash"`
	Size         int64     `json:"size"`
	TemplatePath string    `json:"template_path"`
	RunID        string    `json:"run_id"`
	GeneratedAt  time.Time `json:"generated_at"`
}

type Manifest struct {
	Version    string                   `json:"version"`
	Generator  string                   `json:"generator"`
	Updated    time.Time                `json:"updated"`
	OutputRoot string                   `json:"output_root"`
	Entries    map[string]ManifestEntry `json:"entries"`
}

// ManifestManager reads and writes the manifest stored at the output root.
// Entry paths are relative to that root.
type ManifestManager struct {
	outputRoot   string
	manifestPath string
	runID        string
}

func NewManifestManager(outputRoot string) *ManifestManager {
	return &ManifestManager{
		outputRoot:   outputRoot,
		manifestPath: filepath.Join(outputRoot, ManifestFile),
		runID:        uuid.NewString(),
	}
}

// RunID identifies the entries added through this manager.
func (mm *ManifestManager) RunID() string {
	return mm.runID
}

func (mm *ManifestManager) Path() string {
	return mm.manifestPath
}

func (mm *ManifestManager) LoadManifest() (*Manifest, error) {
	file, err := os.Open(mm.manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return mm.createEmptyManifest(), nil
		}
		return nil, fmt.Errorf("failed to open manifest file: %w", err)
	}
	defer file.Close()

	var manifest Manifest
	if err := json.NewDecoder(file).Decode(&manifest); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	if manifest.Entries == nil {
		manifest.Entries = make(map[string]ManifestEntry)
	}

	return &manifest, nil
}

func (mm *ManifestManager) SaveManifest(manifest *Manifest) error {
	if err := os.MkdirAll(filepath.Dir(mm.manifestPath), 0o755); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}

	file, err := os.CreateTemp(filepath.Dir(mm.manifestPath), ManifestFile+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary manifest file: %w", err)
	}
	tmpPath := file.Name()
	defer os.Remove(tmpPath)

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(manifest); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode manifest: %w", err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close temporary manifest file: %w", err)
	}

	if err := os.Rename(tmpPath, mm.manifestPath); err != nil {
		return fmt.Errorf("failed to move manifest file: %w", err)
	}

	return nil
}

// AddEntry hashes the file at path and records it as generated from templatePath.
func (mm *ManifestManager) AddEntry(manifest *Manifest, path, templatePath string) error {
	fullPath := mm.resolve(path)

	hash, size, err := HashFile(fullPath)
	if err != nil {
		return fmt.Errorf("failed to hash %s: %w", fullPath, err)
	}

	if manifest.Entries == nil {
		manifest.Entries = make(map[string]ManifestEntry)
	}

	now := time.Now().UTC()
	manifest.Entries[filepath.ToSlash(path)] = ManifestEntry{
		Path:         filepath.ToSlash(path),
		Hash:         hash,
		Size:         size,
		TemplatePath: templatePath,
		RunID:        mm.runID,
		GeneratedAt:  now,
	}
	manifest.Updated = now

	return nil
}

func (mm *ManifestManager) RemoveEntry(manifest *Manifest, path string) {
	if manifest.Entries == nil {
		return
	}
	delete(manifest.Entries, filepath.ToSlash(path))
	manifest.Updated = time.Now().UTC()
}

func (mm *ManifestManager) GetEntry(manifest *Manifest, path string) (ManifestEntry, bool) {
	entry, exists := manifest.Entries[filepath.ToSlash(path)]
	return entry, exists
}

// ListEntries returns the entries sorted by path.
func (mm *ManifestManager) ListEntries(manifest *Manifest) []ManifestEntry {
	entries := make([]ManifestEntry, 0, len(manifest.Entries))
	for _, entry := range manifest.Entries {
		entries = append(entries, entry)
	}
	slices.SortFunc(entries, func(a, b ManifestEntry) int {
		return strings.Compare(a.Path, b.Path)
	})
	return entries
}

// HasChanged reports whether the file at path differs from what was recorded.
// Untracked and missing files count as changed.
func (mm *ManifestManager) HasChanged(manifest *Manifest, path string) (bool, error) {
	entry, exists := mm.GetEntry(manifest, path)
	if !exists {
		return true, nil
	}

	hash, size, err := HashFile(mm.resolve(path))
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, err
	}

	return size != entry.Size || hash != entry.Hash, nil
}

func (mm *ManifestManager) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(mm.outputRoot, filepath.FromSlash(path))
}

func (mm *ManifestManager) createEmptyManifest() *Manifest {
	return &Manifest{
		Version:    manifestVersion,
		Generator:  generatorName,
		Updated:    time.Now().UTC(),
		OutputRoot: mm.outputRoot,
		Entries:    make(map[string]ManifestEntry),
	}
}

// HashFile returns the hex xxhash64 digest and size of the file at path.
func HashFile(path string) (string, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer file.Close()

	h := xxhash.New()
	n, err := io.Copy(h, file)
	if err != nil {
		return "", 0, err
	}

	return strconv.FormatUint(h.Sum64(), 16), n, nil
}
