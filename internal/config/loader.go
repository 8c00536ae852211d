package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.storefront.yaml",               // Project-specific config (highest priority)
	"~/.config/storefront/config.yaml", // User config
	"/etc/storefront/config.yaml",      // System config (lowest priority)
}

// EnvPrefix prefixes every environment override
const EnvPrefix = "STOREFRONT_"

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
	lookupEnv   func(string) (string, bool)
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
		lookupEnv:   os.LookupEnv,
	}
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. Environment variables
// 3. ./.storefront.yaml
// 4. ~/.config/storefront/config.yaml
// 5. /etc/storefront/config.yaml
// 6. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()

	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// Lowest priority first so later files win
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			expandedPath := expandPath(l.configPaths[i])
			if !fileExists(expandedPath) {
				continue
			}
			if err := l.loadFromFile(config, expandedPath); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load config from %s: %v\n", expandedPath, err)
			}
		}
	}

	if err := l.applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFromFile loads configuration from a YAML file and merges it with existing config
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated by validateConfigPath() or comes from ConfigPaths
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var fileConfig Config
	if err := yaml.Unmarshal(data, &fileConfig); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Booleans cannot be told apart from their zero value after decoding,
	// so note which keys the file actually sets.
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	mergeConfigs(config, &fileConfig, raw)

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config
func (l *Loader) applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		// Catalog Config
		"CATALOG_SOURCE":        func(v string) error { config.Catalog.Source = v; return nil },
		"CATALOG_BASE_URL":      func(v string) error { config.Catalog.BaseURL = v; return nil },
		"CATALOG_FIXTURE_PATH":  func(v string) error { config.Catalog.FixturePath = v; return nil },
		"CATALOG_WATCH_FIXTURE": func(v string) error { return parseBool(v, &config.Catalog.WatchFixture) },
		"CATALOG_TIMEOUT":       func(v string) error { return parseDuration(v, &config.Catalog.Timeout) },
		"CATALOG_CATEGORIES":    func(v string) error { config.Catalog.Categories = splitList(v); return nil },

		// Cart Config
		"CART_NAVIGATE_ON_ADD": func(v string) error {
			var navigate bool
			if err := parseBool(v, &navigate); err != nil {
				return err
			}
			config.Cart.NavigateOnAdd = &navigate
			return nil
		},
		"CART_CURRENCY_SYMBOL": func(v string) error { config.Cart.CurrencySymbol = v; return nil },

		// Output Config
		"OUTPUT_DEFAULT_FORMAT": func(v string) error { config.Output.DefaultFormat = v; return nil },
		"OUTPUT_COLOR_MODE":     func(v string) error { config.Output.ColorMode = v; return nil },
		"OUTPUT_VERBOSE":        func(v string) error { return parseBool(v, &config.Output.Verbose) },
		"OUTPUT_THEME":          func(v string) error { config.Output.Theme = v; return nil },
		"OUTPUT_LOG_FILE":       func(v string) error { config.Output.LogFile = v; return nil },
	}

	for key, setter := range envMappings {
		envVar := EnvPrefix + key
		if value, ok := l.lookupEnv(envVar); ok && value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}

	return nil
}

// GetConfigPaths returns the list of configuration file paths that will be searched
func GetConfigPaths() []string {
	paths := make([]string, 0, len(ConfigPaths))
	for _, path := range ConfigPaths {
		paths = append(paths, expandPath(path))
	}
	return paths
}

// FindConfigFile finds the first existing config file in the search paths
func FindConfigFile() (string, bool) {
	for _, path := range ConfigPaths {
		expandedPath := expandPath(path)
		if fileExists(expandedPath) {
			return expandedPath, true
		}
	}
	return "", false
}

// Helper functions

// validateConfigPath validates that a config path is safe to read
func validateConfigPath(path string) error {
	// Clean the path to resolve any ".." components
	cleanPath := filepath.Clean(path)

	// Check for path traversal attempts
	if cleanPath == ".." || strings.HasPrefix(cleanPath, ".."+string(filepath.Separator)) {
		return fmt.Errorf("path traversal not allowed")
	}

	// Ensure it's a YAML file
	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must have .yaml or .yml extension")
	}

	// Convert to absolute path for additional validation
	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	// Basic sanity check - ensure it's not in sensitive system directories
	if strings.HasPrefix(absPath, "/etc/passwd") ||
		strings.HasPrefix(absPath, "/etc/shadow") ||
		strings.HasPrefix(absPath, "/proc/") ||
		strings.HasPrefix(absPath, "/sys/") {
		return fmt.Errorf("access to system files not allowed")
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// mergeConfigs merges source config into destination config.
// Only non-zero values from source overwrite destination; booleans are
// merged when raw shows the key was present in the file.
func mergeConfigs(dst, src *Config, raw map[string]interface{}) {
	if src.Version != "" {
		dst.Version = src.Version
	}

	mergeCatalogConfig(&dst.Catalog, &src.Catalog, section(raw, "catalog"))
	mergeCartConfig(&dst.Cart, &src.Cart)
	mergeOutputConfig(&dst.Output, &src.Output, section(raw, "output"))
}

// section returns the keys of a top-level mapping, nil if absent
func section(raw map[string]interface{}, name string) map[string]interface{} {
	m, _ := raw[name].(map[string]interface{})
	return m
}

// mergeCatalogConfig merges catalog configuration
func mergeCatalogConfig(dst, src *CatalogConfig, set map[string]interface{}) {
	if src.Source != "" {
		dst.Source = src.Source
	}
	if src.BaseURL != "" {
		dst.BaseURL = src.BaseURL
	}
	if src.FixturePath != "" {
		dst.FixturePath = src.FixturePath
	}
	if src.Timeout != 0 {
		dst.Timeout = src.Timeout
	}
	if len(src.Categories) > 0 {
		dst.Categories = src.Categories
	}
	mergeIfSet(&dst.WatchFixture, src.WatchFixture, set, "watch_fixture")
}

// mergeCartConfig merges cart configuration
func mergeCartConfig(dst, src *CartConfig) {
	if src.NavigateOnAdd != nil {
		navigate := *src.NavigateOnAdd
		dst.NavigateOnAdd = &navigate
	}
	if src.CurrencySymbol != "" {
		dst.CurrencySymbol = src.CurrencySymbol
	}
}

// mergeOutputConfig merges output configuration
func mergeOutputConfig(dst, src *OutputConfig, set map[string]interface{}) {
	if src.DefaultFormat != "" {
		dst.DefaultFormat = src.DefaultFormat
	}
	if src.ColorMode != "" {
		dst.ColorMode = src.ColorMode
	}
	if src.Theme != "" {
		dst.Theme = src.Theme
	}
	if src.LogFile != "" {
		dst.LogFile = src.LogFile
	}
	mergeIfSet(&dst.Verbose, src.Verbose, set, "verbose")
}

// mergeIfSet copies src into dst when key appears in the decoded section
func mergeIfSet(dst *bool, src bool, set map[string]interface{}, key string) {
	if _, ok := set[key]; ok {
		*dst = src
	}
}

// Type conversion helpers

func parseBool(s string, dst *bool) error {
	val, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseDuration(s string, dst *time.Duration) error {
	val, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}
