package write

import (
	"os"
	"slices"
	"sync"
)

// SkipIfExistsWriter never touches a file that is already on disk. A file that
// appears between CanWrite and Write surfaces as ErrExists from the base writer.
type SkipIfExistsWriter struct {
	baseWriter Writer
}

func NewSkipIfExistsWriter(baseWriter Writer) *SkipIfExistsWriter {
	if baseWriter == nil {
		baseWriter = NewBaseWriter()
	}
	return &SkipIfExistsWriter{
		baseWriter: baseWriter,
	}
}

func (siw *SkipIfExistsWriter) Write(path string, content []byte, options WriteOptions) error {
	options.Overwrite = false
	return siw.baseWriter.Write(path, content, options)
}

func (siw *SkipIfExistsWriter) CanWrite(path string) bool {
	if _, err := os.Lstat(path); err == nil {
		return false
	}
	return siw.baseWriter.CanWrite(path)
}

// DryRunWriter records what would be written without touching the disk.
type DryRunWriter struct {
	mu      sync.Mutex
	changes []Change
}

type Change struct {
	Path   string `json:"path"`
	Action string `json:"action"`
	Size   int    `json:"size"`
}

func NewDryRunWriter() *DryRunWriter {
	return &DryRunWriter{
		changes: make([]Change, 0),
	}
}

func (drw *DryRunWriter) Write(path string, content []byte, options WriteOptions) error {
	action := "create"
	if _, err := os.Stat(path); err == nil {
		action = "update"
	}

	drw.mu.Lock()
	defer drw.mu.Unlock()
	drw.changes = append(drw.changes, Change{
		Path:   path,
		Action: action,
		Size:   len(content),
	})
	return nil
}

func (drw *DryRunWriter) CanWrite(path string) bool {
	return true
}

// Changes returns the recorded changes sorted by path.
func (drw *DryRunWriter) Changes() []Change {
	drw.mu.Lock()
	defer drw.mu.Unlock()

	out := slices.Clone(drw.changes)
	slices.SortFunc(out, func(a, b Change) int {
		switch {
		case a.Path < b.Path:
			return -1
		case a.Path > b.Path:
			return 1
		default:
			return 0
		}
	})
	return out
}
