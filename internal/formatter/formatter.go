package formatter

import (
	"fmt"
	"time"

	"github.com/yildizm/storefront/internal/catalog"
)

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(listing *Listing) ([]byte, error)
}

// Listing is one loaded catalog page ready for output
type Listing struct {
	Filter    catalog.Filter
	Source    string
	Products  []catalog.Product
	Currency  string
	FetchedAt time.Time
	Duration  time.Duration
}

// New returns the formatter for format: json, csv, markdown or text
func New(format string, color bool) (Formatter, error) {
	switch format {
	case "json":
		return NewJSON(), nil
	case "csv":
		return NewCSV(), nil
	case "markdown", "md":
		return NewMarkdown(), nil
	case "text", "terminal", "":
		return NewTerminal(color), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (use text, json, markdown or csv)", format)
	}
}
