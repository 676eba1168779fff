// Package config loads project files for modgen.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Validator defines an interface that configuration types can implement
// to provide custom validation logic
type Validator interface {
	Validate() error
}

// Load picks the decoder from the file extension: .toml files are read as TOML,
// everything else as YAML.
func Load[T any](path string, target *T) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return LoadTOML(path, target)
	default:
		return LoadYAML(path, target)
	}
}

// LoadYAML loads any YAML configuration into the provided target struct.
// The target must be a pointer to the struct you want to unmarshal into.
// If the target implements the Validator interface, validation will be called.
func LoadYAML[T any](path string, target *T) error {
	data, err := readConfig(path)
	if err != nil {
		return err
	}
	return LoadYAMLFromString(string(data), target)
}

// LoadYAMLFromString loads YAML configuration from a string instead of a file.
func LoadYAMLFromString[T any](yamlContent string, target *T) error {
	if err := yaml.Unmarshal([]byte(yamlContent), target); err != nil {
		return fmt.Errorf("failed to parse YAML configuration: %w", err)
	}
	return validate(target)
}

// LoadTOML is the TOML counterpart of LoadYAML.
func LoadTOML[T any](path string, target *T) error {
	data, err := readConfig(path)
	if err != nil {
		return err
	}
	return LoadTOMLFromString(string(data), target)
}

func LoadTOMLFromString[T any](tomlContent string, target *T) error {
	if err := toml.Unmarshal([]byte(tomlContent), target); err != nil {
		return fmt.Errorf("failed to parse TOML configuration: %w", err)
	}
	return validate(target)
}

func readConfig(path string) ([]byte, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %q: %w", path, err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file does not exist: %s", absPath)
		}
		return nil, fmt.Errorf("failed to read configuration file %q: %w", absPath, err)
	}
	return data, nil
}

func validate(target any) error {
	if validator, ok := target.(Validator); ok {
		if err := validator.Validate(); err != nil {
			return fmt.Errorf("configuration validation failed: %w", err)
		}
	}
	return nil
}
