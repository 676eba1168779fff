package postprocess

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

type suffixProcessor struct {
	suffix string
	err    error
}

func (s *suffixProcessor) ProcessContent(filePath string, content []byte) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return append(bytes.Clone(content), s.suffix...), nil
}

func TestChainAppliesInOrder(t *testing.T) {
	tests := []struct {
		name       string
		processors []Processor
		input      string
		expected   string
		wantErr    bool
	}{
		{
			name:     "empty chain",
			input:    `{"parent": "block/cube_all"}`,
			expected: `{"parent": "block/cube_all"}`,
		},
		{
			name:       "single processor",
			processors: []Processor{&suffixProcessor{suffix: "\n"}},
			input:      "{}",
			expected:   "{}\n",
		},
		{
			name: "processors run in insertion order",
			processors: []Processor{
				&suffixProcessor{suffix: "a"},
				&suffixProcessor{suffix: "b"},
			},
			input:    "{}",
			expected: "{}ab",
		},
		{
			name: "failure stops the chain",
			processors: []Processor{
				&suffixProcessor{err: errors.New("boom")},
				&suffixProcessor{suffix: "never"},
			},
			input:   "{}",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := NewChain()
			for _, p := range tt.processors {
				chain.Add(p)
			}

			result, err := chain.Process("models/block/oak.json", []byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got none")
				}
				if !strings.Contains(err.Error(), "models/block/oak.json") {
					t.Errorf("error should name the file, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(result) != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestChainAcceptsFuncs(t *testing.T) {
	chain := NewChain()
	if chain.HasProcessors() {
		t.Fatal("new chain should be empty")
	}

	chain.Add(ProcessorFunc(func(filePath string, content []byte) ([]byte, error) {
		return []byte(strings.ToUpper(string(content))), nil
	}))
	chain.Add(&suffixProcessor{suffix: "!"})
	if !chain.HasProcessors() {
		t.Fatal("chain should report its processors")
	}

	result, err := chain.Process("x.json", []byte("oak"))
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if string(result) != "OAK!" {
		t.Errorf("expected %q, got %q", "OAK!", result)
	}
}

func TestForExtension(t *testing.T) {
	p := ForExtension(".json", &suffixProcessor{suffix: "\n"})

	tests := []struct {
		path     string
		expected string
	}{
		{"blockstates/oak_door.json", "{}\n"},
		{"blockstates/OAK_DOOR.JSON", "{}\n"},
		{"textures/oak_door.png", "{}"},
		{"README", "{}"},
	}

	for _, tt := range tests {
		result, err := p.ProcessContent(tt.path, []byte("{}"))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.path, err)
		}
		if string(result) != tt.expected {
			t.Errorf("%s: expected %q, got %q", tt.path, tt.expected, result)
		}
	}
}
