package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/yildizm/storefront/internal/catalog"
)

// csvFormatter formats products as CSV
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

func (f *csvFormatter) Format(listing *Listing) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	headers := []string{
		"ID",
		"Name",
		"Category",
		"Price",
		"Stock",
		"In Stock",
		"Description",
	}

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i := range listing.Products {
		if err := writer.Write(productRecord(&listing.Products[i])); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	return b.Bytes(), nil
}

func productRecord(p *catalog.Product) []string {
	return []string{
		string(p.ID),
		p.Name,
		string(p.Category),
		strconv.FormatFloat(p.Price, 'f', -1, 64),
		strconv.Itoa(p.Stock),
		strconv.FormatBool(p.InStock()),
		escapeCSVString(p.Description),
	}
}

// escapeCSVString flattens line breaks so each product stays on one row
func escapeCSVString(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
