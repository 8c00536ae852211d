package formatter

import (
	"encoding/json"
	"time"

	"github.com/yildizm/storefront/internal/catalog"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

func (f *jsonFormatter) Format(listing *Listing) ([]byte, error) {
	stats := computeStats(listing.Products)

	products := listing.Products
	if products == nil {
		products = []catalog.Product{}
	}

	output := &ListingOutput{
		Filter: listing.Filter,
		Source: listing.Source,
		Summary: &SummaryOutput{
			Total:      stats.Total,
			InStock:    stats.InStock,
			OutOfStock: stats.OutOfStock,
			Units:      stats.Units,
		},
		Products: products,
	}
	if stats.Total > 0 {
		output.Summary.PriceRange = &PriceRange{Min: stats.MinPrice, Max: stats.MaxPrice}
	}
	if !listing.FetchedAt.IsZero() {
		fetched := listing.FetchedAt
		output.FetchedAt = &fetched
	}
	if listing.Duration > 0 {
		output.Duration = listing.Duration.String()
	}

	return json.MarshalIndent(output, "", "  ")
}

// ListingOutput represents the JSON structure of a listing
type ListingOutput struct {
	Filter    catalog.Filter    `json:"filter"`
	Source    string            `json:"source,omitempty"`
	FetchedAt *time.Time        `json:"fetched_at,omitempty"`
	Duration  string            `json:"duration,omitempty"`
	Summary   *SummaryOutput    `json:"summary"`
	Products  []catalog.Product `json:"products"`
}

// SummaryOutput represents the summary section
type SummaryOutput struct {
	Total      int         `json:"total"`
	InStock    int         `json:"in_stock"`
	OutOfStock int         `json:"out_of_stock"`
	Units      int         `json:"units"`
	PriceRange *PriceRange `json:"price_range,omitempty"`
}

// PriceRange represents the cheapest and dearest product
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}
