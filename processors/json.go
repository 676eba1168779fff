// Package processors provides built-in post-processors for generated assets.
package processors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// JSONCheck rejects .json output that does not parse. Other files and empty
// documents pass through untouched.
//
// Example usage:
//
//	eng := engine.New()
//	eng.AddPostProcessor(processors.NewJSONCheck())
type JSONCheck struct{}

func NewJSONCheck() *JSONCheck {
	return &JSONCheck{}
}

// ProcessContent implements the postprocess.Processor interface.
func (j *JSONCheck) ProcessContent(filePath string, content []byte) ([]byte, error) {
	if !isJSONFile(filePath) || len(bytes.TrimSpace(content)) == 0 {
		return content, nil
	}

	if !json.Valid(content) {
		var v any
		err := json.Unmarshal(content, &v)
		return nil, fmt.Errorf("invalid JSON in %s: %w", filePath, err)
	}
	return content, nil
}

// TrailingNewline terminates every non-empty file with a single newline.
type TrailingNewline struct{}

func NewTrailingNewline() *TrailingNewline {
	return &TrailingNewline{}
}

func (t *TrailingNewline) ProcessContent(filePath string, content []byte) ([]byte, error) {
	if len(content) == 0 || content[len(content)-1] == '\n' {
		return content, nil
	}

	out := make([]byte, len(content)+1)
	copy(out, content)
	out[len(content)] = '\n'
	return out, nil
}

func isJSONFile(filePath string) bool {
	return strings.ToLower(filepath.Ext(filePath)) == ".json"
}
