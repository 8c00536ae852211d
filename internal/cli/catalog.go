package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/yildizm/storefront/internal/catalog"
	"github.com/yildizm/storefront/internal/config"
	"github.com/yildizm/storefront/internal/logger"
)

// newSource builds the catalog source the configuration selects
func newSource(cfg *config.Config, log *logger.Logger) (catalog.Source, error) {
	switch cfg.Catalog.Source {
	case "file":
		source, err := catalog.NewFileSource(cfg.Catalog.FixturePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open fixture: %w", err)
		}
		return source, nil
	case "http", "":
		source, err := catalog.NewHTTPSource(cfg.Catalog.BaseURL, nil, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create catalog client: %w", err)
		}
		return source, nil
	default:
		return nil, fmt.Errorf("unknown catalog source: %s", cfg.Catalog.Source)
	}
}

// newLoader builds the loader for the configured source and categories
func newLoader(cfg *config.Config, log *logger.Logger) (*catalog.Loader, error) {
	source, err := newSource(cfg, log)
	if err != nil {
		return nil, err
	}

	return catalog.NewLoader(source, configuredCategories(cfg),
		catalog.WithTimeout(cfg.Catalog.Timeout),
		catalog.WithLogger(log),
	), nil
}

// watchFixture starts watching the fixture when the configuration asks for
// it. A nil channel means live reload is off.
func watchFixture(ctx context.Context, cfg *config.Config, log *logger.Logger) (<-chan struct{}, error) {
	if cfg.Catalog.Source != "file" || !cfg.Catalog.WatchFixture {
		return nil, nil
	}

	changes, err := catalog.Watch(ctx, cfg.Catalog.FixturePath, log)
	if err != nil {
		return nil, fmt.Errorf("failed to watch fixture: %w", err)
	}
	if isVerbose() {
		log.Info("watching %s for changes", cfg.Catalog.FixturePath)
	}
	return changes, nil
}

// openLogFile returns the log destination for the terminal UI and a func
// closing it. Without a log file nothing is written so the screen stays
// intact.
func openLogFile(path string) (io.Writer, func(), error) {
	if path == "" {
		return io.Discard, func() {}, nil
	}

	cleanPath := filepath.Clean(path)
	file, err := os.OpenFile(cleanPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	cleanup := func() {
		if closeErr := file.Close(); closeErr != nil && isVerbose() {
			fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", closeErr)
		}
	}
	return file, cleanup, nil
}
