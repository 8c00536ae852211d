package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileSource serves the catalog from a local JSON or YAML fixture using the
// same envelope as the catalog service. Category requests are filtered here
// the way the service filters them server-side. The file is re-read on every
// fetch so edits show up on the next load.
type FileSource struct {
	path string
}

// NewFileSource creates a fixture source for path
func NewFileSource(path string) (*FileSource, error) {
	if err := validateFixturePath(path); err != nil {
		return nil, fmt.Errorf("invalid fixture path: %w", err)
	}
	return &FileSource{path: filepath.Clean(path)}, nil
}

// Name returns the source name
func (s *FileSource) Name() string {
	return "file"
}

// Path returns the fixture location
func (s *FileSource) Path() string {
	return s.path
}

// Fetch reads the fixture and returns the products matching filter
func (s *FileSource) Fetch(ctx context.Context, filter Filter) ([]Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, AsFetchError(err, filter)
	}

	// #nosec G304 - path is validated by validateFixturePath() in NewFileSource
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, NewFetchErrorWithCause(KindNetwork, "failed to read fixture", filter, err)
	}

	var env Envelope
	if err := unmarshalFixture(s.path, data, &env); err != nil {
		return nil, NewFetchErrorWithCause(KindMalformed, "failed to decode fixture", filter, err)
	}

	products, err := decodeEnvelope(&env, filter)
	if err != nil {
		return nil, err
	}

	if filter.IsAll() {
		return products, nil
	}

	filtered := make([]Product, 0, len(products))
	for _, p := range products {
		if p.Category == filter.Category() {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// unmarshalFixture decodes by file extension
func unmarshalFixture(path string, data []byte, env *Envelope) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, env)
	default:
		return json.Unmarshal(data, env)
	}
}

// validateFixturePath validates that a fixture path is safe to read
func validateFixturePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)
	if cleanPath == ".." || strings.HasPrefix(cleanPath, ".."+string(filepath.Separator)) {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".json" && ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("fixture must have .json, .yaml or .yml extension")
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", cleanPath)
		}
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", cleanPath)
	}

	return nil
}
