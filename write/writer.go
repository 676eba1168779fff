// Package write puts rendered assets on disk.
package write

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrExists is returned when a file is already present and the write may not replace it.
var ErrExists = errors.New("file already exists")

type Writer interface {
	Write(path string, content []byte, options WriteOptions) error
	CanWrite(path string) bool
}

type WriteOptions struct {
	CreateDirs bool
	Overwrite  bool
	Atomic     bool
}

type BaseWriter struct{}

func NewBaseWriter() *BaseWriter {
	return &BaseWriter{}
}

func (bw *BaseWriter) Write(path string, content []byte, options WriteOptions) error {
	if options.CreateDirs {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create directories: %w", err)
		}
	}

	if options.Atomic {
		return bw.atomicWrite(path, content, options.Overwrite)
	}

	return bw.directWrite(path, content, options.Overwrite)
}

func (bw *BaseWriter) CanWrite(path string) bool {
	return true
}

// atomicWrite stages content next to path. Without overwrite the staged file is
// hard-linked into place, which fails if path appeared in the meantime.
func (bw *BaseWriter) atomicWrite(path string, content []byte, overwrite bool) error {
	file, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tempPath := file.Name()
	defer os.Remove(tempPath)

	if _, err := file.Write(content); err != nil {
		file.Close()
		return err
	}

	if err := file.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tempPath, 0o644); err != nil {
		return err
	}

	if overwrite {
		return os.Rename(tempPath, path)
	}

	if err := os.Link(tempPath, path); err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrExists, path)
		}
		return err
	}
	return nil
}

func (bw *BaseWriter) directWrite(path string, content []byte, overwrite bool) error {
	if overwrite {
		return os.WriteFile(path, content, 0o644)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrExists, path)
		}
		return err
	}

	_, err = file.Write(content)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		// The file is ours; a partial one would be skipped by every later run.
		os.Remove(path)
		return err
	}
	return nil
}
