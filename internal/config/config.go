package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config holds the complete application configuration
type Config struct {
	Version string        `yaml:"version" json:"version"`
	Catalog CatalogConfig `yaml:"catalog" json:"catalog"`
	Cart    CartConfig    `yaml:"cart" json:"cart"`
	Output  OutputConfig  `yaml:"output" json:"output"`
}

// CatalogConfig configures where products come from
type CatalogConfig struct {
	Source       string        `yaml:"source" json:"source"`               // http|file
	BaseURL      string        `yaml:"base_url" json:"base_url"`           // catalog service root
	FixturePath  string        `yaml:"fixture_path" json:"fixture_path"`   // JSON or YAML fixture for the file source
	WatchFixture bool          `yaml:"watch_fixture" json:"watch_fixture"` // reload when the fixture changes
	Timeout      time.Duration `yaml:"timeout" json:"timeout"`             // per-load bound, 0 disables
	Categories   []string      `yaml:"categories" json:"categories"`       // display order of the category menu
}

// CartConfig configures cart behavior
type CartConfig struct {
	NavigateOnAdd  *bool  `yaml:"navigate_on_add,omitempty" json:"navigate_on_add,omitempty"`
	CurrencySymbol string `yaml:"currency_symbol" json:"currency_symbol"`
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // json|text|markdown|csv
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Verbose       bool   `yaml:"verbose" json:"verbose"`               // default verbosity
	Theme         string `yaml:"theme" json:"theme"`                   // default|high-contrast|minimal
	LogFile       string `yaml:"log_file" json:"log_file"`             // log destination while the TUI runs
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	navigate := true
	return &Config{
		Version: "1.0",
		Catalog: CatalogConfig{
			Source:       "http",
			BaseURL:      "http://localhost:5000",
			FixturePath:  "",
			WatchFixture: false,
			Timeout:      10 * time.Second,
			Categories:   []string{"Gift Boxes", "Books", "Stationery"},
		},
		Cart: CartConfig{
			NavigateOnAdd:  &navigate,
			CurrencySymbol: "₹",
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
			Verbose:       false,
			Theme:         "default",
			LogFile:       "",
		},
	}
}

// ShouldNavigateOnAdd reports whether adding to the cart opens the cart view
func (c *CartConfig) ShouldNavigateOnAdd() bool {
	return c.NavigateOnAdd == nil || *c.NavigateOnAdd
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateCatalogConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	return nil
}

// validateCatalogConfig validates catalog-related configuration
func (c *Config) validateCatalogConfig() error {
	switch c.Catalog.Source {
	case "http":
		u, err := url.Parse(c.Catalog.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid catalog base_url: %q (must be an http or https URL)", c.Catalog.BaseURL)
		}
	case "file":
		if strings.TrimSpace(c.Catalog.FixturePath) == "" {
			return fmt.Errorf("fixture_path is required when catalog source is file")
		}
	default:
		return fmt.Errorf("invalid catalog source: %s (must be one of: http, file)", c.Catalog.Source)
	}

	if c.Catalog.Timeout < 0 {
		return fmt.Errorf("catalog timeout must be non-negative")
	}

	seen := make(map[string]bool, len(c.Catalog.Categories))
	for _, category := range c.Catalog.Categories {
		name := strings.TrimSpace(category)
		if name == "" {
			return fmt.Errorf("category names must not be empty")
		}
		if strings.EqualFold(name, "all") {
			return fmt.Errorf("%q is reserved and cannot be a category", name)
		}
		if seen[name] {
			return fmt.Errorf("duplicate category: %s", name)
		}
		seen[name] = true
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"json":     true,
			"text":     true,
			"markdown": true,
			"csv":      true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: json, text, markdown, csv)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	if c.Output.Theme != "" {
		validThemes := map[string]bool{
			"default":       true,
			"high-contrast": true,
			"minimal":       true,
		}
		if !validThemes[c.Output.Theme] {
			return fmt.Errorf("invalid theme: %s (must be one of: default, high-contrast, minimal)", c.Output.Theme)
		}
	}
	return nil
}
