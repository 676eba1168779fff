package state

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

type CleanupMode int

const (
	// CleanupModeReport lists what would be removed and changes nothing.
	CleanupModeReport CleanupMode = iota
	CleanupModeAuto
)

func (cm CleanupMode) String() string {
	switch cm {
	case CleanupModeAuto:
		return "auto"
	case CleanupModeReport:
		return "report"
	default:
		return "unknown"
	}
}

type CleanupAction int

const (
	CleanupActionDelete CleanupAction = iota
	// CleanupActionKeep marks a file edited since it was generated.
	CleanupActionKeep
	// CleanupActionForget marks an entry whose file is already gone.
	CleanupActionForget
	CleanupActionIgnore
)

func (ca CleanupAction) String() string {
	switch ca {
	case CleanupActionDelete:
		return "delete"
	case CleanupActionKeep:
		return "keep"
	case CleanupActionForget:
		return "forget"
	case CleanupActionIgnore:
		return "ignore"
	default:
		return "unknown"
	}
}

type CleanupResult struct {
	Path   string        `json:"path"`
	Action CleanupAction `json:"action"`
	Size   int64         `json:"size"`
	Error  string        `json:"error,omitempty"`
}

type CleanupSummary struct {
	Mode           CleanupMode     `json:"mode"`
	FilesDeleted   int             `json:"files_deleted"`
	FilesKept      int             `json:"files_kept"`
	Errors         int             `json:"errors"`
	Results        []CleanupResult `json:"results"`
	TotalSizeFreed int64           `json:"total_size_freed"`
	ExecutionTime  time.Duration   `json:"execution_time"`
}

// Cleaner removes generated files that are still exactly as generated.
type Cleaner struct {
	manager  *ManifestManager
	mode     CleanupMode
	patterns []string
	logger   *slog.Logger
}

type CleanupOption func(*Cleaner)

func WithCleanupMode(mode CleanupMode) CleanupOption {
	return func(c *Cleaner) {
		c.mode = mode
	}
}

// WithIgnorePatterns protects entries matching any filepath.Match pattern. A
// pattern is matched against the entry path and its base name.
func WithIgnorePatterns(patterns []string) CleanupOption {
	return func(c *Cleaner) {
		c.patterns = patterns
	}
}

func WithCleanupLogger(logger *slog.Logger) CleanupOption {
	return func(c *Cleaner) {
		c.logger = logger
	}
}

func NewCleaner(manager *ManifestManager, opts ...CleanupOption) *Cleaner {
	c := &Cleaner{
		manager: manager,
		mode:    CleanupModeReport,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Clean walks the manifest in path order. In auto mode unmodified files are
// deleted and their entries dropped together with entries of missing files.
func (c *Cleaner) Clean() (*CleanupSummary, error) {
	start := time.Now()

	manifest, err := c.manager.LoadManifest()
	if err != nil {
		return nil, err
	}

	summary := &CleanupSummary{Mode: c.mode}
	dirty := false

	for _, entry := range c.manager.ListEntries(manifest) {
		result := c.cleanEntry(manifest, entry)
		summary.Results = append(summary.Results, result)

		switch {
		case result.Error != "":
			summary.Errors++
		case result.Action == CleanupActionKeep:
			summary.FilesKept++
		case result.Action == CleanupActionDelete:
			summary.FilesDeleted++
			summary.TotalSizeFreed += result.Size
		}

		if c.mode == CleanupModeAuto && result.Error == "" &&
			(result.Action == CleanupActionDelete || result.Action == CleanupActionForget) {
			c.manager.RemoveEntry(manifest, entry.Path)
			dirty = true
		}
	}

	if dirty {
		if err := c.manager.SaveManifest(manifest); err != nil {
			return summary, err
		}
	}

	summary.ExecutionTime = time.Since(start)
	return summary, nil
}

func (c *Cleaner) cleanEntry(manifest *Manifest, entry ManifestEntry) CleanupResult {
	result := CleanupResult{Path: entry.Path, Size: entry.Size}

	if c.shouldIgnore(entry.Path) {
		result.Action = CleanupActionIgnore
		return result
	}

	fullPath := c.manager.resolve(entry.Path)
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		result.Action = CleanupActionForget
		return result
	}

	changed, err := c.manager.HasChanged(manifest, entry.Path)
	if err != nil {
		result.Action = CleanupActionKeep
		result.Error = err.Error()
		return result
	}
	if changed {
		c.logger.Info("keeping modified file", "path", entry.Path)
		result.Action = CleanupActionKeep
		return result
	}

	result.Action = CleanupActionDelete
	if c.mode != CleanupModeAuto {
		return result
	}

	if err := os.Remove(fullPath); err != nil {
		result.Error = fmt.Sprintf("failed to remove %s: %v", fullPath, err)
		return result
	}
	c.logger.Debug("removed generated file", "path", entry.Path)
	return result
}

func (c *Cleaner) shouldIgnore(path string) bool {
	for _, pattern := range c.patterns {
		if matched, _ := filepath.Match(pattern, path); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, filepath.Base(path)); matched {
			return true
		}
	}
	return false
}
