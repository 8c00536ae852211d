package formatter

import (
	"fmt"
	"strings"
	"time"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) Format(listing *Listing) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# Catalog: %s\n\n", filterLabel(listing.Filter))

	generated := listing.FetchedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	fmt.Fprintf(&b, "Generated: %s\n\n", generated.Format("2006-01-02 15:04:05"))

	f.writeSummaryTable(&b, listing)

	if len(listing.Products) == 0 {
		b.WriteString("No products found.\n")
		return []byte(b.String()), nil
	}

	f.writeProductTable(&b, listing)
	f.writeDescriptions(&b, listing)

	return []byte(b.String()), nil
}

// writeSummaryTable writes the listing summary
func (f *markdownFormatter) writeSummaryTable(b *strings.Builder, listing *Listing) {
	stats := computeStats(listing.Products)

	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(b, "| Products | %s |\n", formatNumber(stats.Total))
	fmt.Fprintf(b, "| In stock | %s |\n", formatNumber(stats.InStock))
	fmt.Fprintf(b, "| Out of stock | %s |\n", formatNumber(stats.OutOfStock))
	if stats.Total > 0 {
		fmt.Fprintf(b, "| Price range | %s - %s |\n",
			formatPrice(listing.Currency, stats.MinPrice), formatPrice(listing.Currency, stats.MaxPrice))
	}
	if listing.Source != "" {
		fmt.Fprintf(b, "| Source | %s |\n", listing.Source)
	}
	b.WriteString("\n")
}

// writeProductTable writes one row per product in listing order
func (f *markdownFormatter) writeProductTable(b *strings.Builder, listing *Listing) {
	b.WriteString("## Products\n\n")
	b.WriteString("| ID | Name | Category | Price | Stock |\n")
	b.WriteString("|----|------|----------|------:|-------|\n")

	for i := range listing.Products {
		p := &listing.Products[i]
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s |\n",
			escapeMarkdown(string(p.ID)),
			escapeMarkdown(p.Name),
			escapeMarkdown(string(p.Category)),
			formatPrice(listing.Currency, p.Price),
			stockLabel(p))
	}
	b.WriteString("\n")
}

// writeDescriptions writes a section per product that has a description
func (f *markdownFormatter) writeDescriptions(b *strings.Builder, listing *Listing) {
	wrote := false
	for i := range listing.Products {
		p := &listing.Products[i]
		if strings.TrimSpace(p.Description) == "" {
			continue
		}
		if !wrote {
			b.WriteString("## Details\n\n")
			wrote = true
		}
		fmt.Fprintf(b, "### %s\n\n%s\n\n", p.Name, strings.TrimSpace(p.Description))
	}
}

// escapeMarkdown keeps table cells intact
func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
