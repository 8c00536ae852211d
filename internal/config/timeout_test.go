package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCatalogTimeoutDefault(t *testing.T) {
	config := DefaultConfig()

	if config.Catalog.Timeout != 10*time.Second {
		t.Errorf("Expected catalog timeout to be 10s, got %v", config.Catalog.Timeout)
	}
}

func TestCatalogTimeoutValidation(t *testing.T) {
	tests := []struct {
		name    string
		timeout time.Duration
		wantErr bool
	}{
		{name: "positive timeout", timeout: 5 * time.Second, wantErr: false},
		{name: "disabled timeout", timeout: 0, wantErr: false},
		{name: "negative timeout", timeout: -1 * time.Second, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			config.Catalog.Timeout = tt.timeout

			err := config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error but got none")
				} else if err.Error() != "catalog timeout must be non-negative" {
					t.Errorf("Unexpected error message: %v", err)
				}
			} else if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestCatalogTimeoutFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "timeout.yaml")
	content := `catalog:
  timeout: 2500ms
`
	if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}

	loader := newTestLoader(nil, nil)
	cfg, err := loader.LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Catalog.Timeout != 2500*time.Millisecond {
		t.Errorf("Expected timeout 2.5s, got %v", cfg.Catalog.Timeout)
	}
}
