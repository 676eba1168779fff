// Package postprocess transforms rendered assets between template execution and
// the write. The engine runs one Chain over every file of a plan, so processors
// that only care about some files wrap themselves in ForExtension.
package postprocess

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Processor rewrites the content rendered for filePath. It must be safe for
// concurrent use and return content unchanged for files it does not handle.
type Processor interface {
	ProcessContent(filePath string, content []byte) ([]byte, error)
}

type ProcessorFunc func(filePath string, content []byte) ([]byte, error)

func (f ProcessorFunc) ProcessContent(filePath string, content []byte) ([]byte, error) {
	return f(filePath, content)
}

// Chain applies processors in the order they were added. The first error stops it.
type Chain struct {
	processors []Processor
}

func NewChain() *Chain {
	return &Chain{}
}

func (c *Chain) Add(p Processor) {
	c.processors = append(c.processors, p)
}

func (c *Chain) HasProcessors() bool {
	return len(c.processors) > 0
}

func (c *Chain) Process(filePath string, content []byte) ([]byte, error) {
	for i, p := range c.processors {
		out, err := p.ProcessContent(filePath, content)
		if err != nil {
			return nil, fmt.Errorf("processor %d failed for %s: %w", i, filePath, err)
		}
		content = out
	}
	return content, nil
}

// ForExtension restricts p to files whose extension matches ext, case-insensitively.
// Other files pass through unchanged.
func ForExtension(ext string, p Processor) Processor {
	return ProcessorFunc(func(filePath string, content []byte) ([]byte, error) {
		if !strings.EqualFold(filepath.Ext(filePath), ext) {
			return content, nil
		}
		return p.ProcessContent(filePath, content)
	})
}
