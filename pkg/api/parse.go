package api

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed default.bootstrap.yaml
var defaultManifest []byte

// LoadManifest reads a .bootstrap.yaml file, sets Dir/FilePath, and validates it.
func LoadManifest(filename string) (*Manifest, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading manifest file: %w", err)
	}

	absPath, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}

	m, err := ParseManifest(data, filepath.Dir(absPath))
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", filename, err)
	}
	m.FilePath = absPath

	return m, nil
}

// ParseManifest decodes and validates manifest data. dir anchors relative paths.
func ParseManifest(data []byte, dir string) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	m.Dir = dir

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("validating manifest: %w", err)
	}

	return &m, nil
}

// DefaultManifest returns the built-in manifest used when no file is found.
// Relative paths resolve against dir.
func DefaultManifest(dir string) (*Manifest, error) {
	m, err := ParseManifest(defaultManifest, dir)
	if err != nil {
		return nil, fmt.Errorf("default manifest: %w", err)
	}
	return m, nil
}
