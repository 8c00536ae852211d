package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/yildizm/go-termfmt"
	"github.com/yildizm/storefront/internal/emoji"
)

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = !emoji.IsEmojiDisabled()
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) Format(listing *Listing) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b, listing)
	f.writeStatistics(&b, listing)

	if len(listing.Products) == 0 {
		b.WriteString("No products found.\n")
		return []byte(b.String()), nil
	}

	f.writeProducts(&b, listing)

	return []byte(b.String()), nil
}

// writeHeader writes a boxed title
func (f *terminalFormatter) writeHeader(b *strings.Builder, listing *Listing) {
	header := "Storefront Catalog: " + filterLabel(listing.Filter)
	headerLen := len([]rune(header))

	b.WriteString("╔" + strings.Repeat("═", headerLen+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", headerLen+2) + "╝\n\n")
}

// writeStatistics writes listing statistics with tree-style formatting using go-termfmt
func (f *terminalFormatter) writeStatistics(b *strings.Builder, listing *Listing) {
	symbol := termfmt.GetEmoji("statistics", f.opts)
	b.WriteString(symbol + " Summary\n")

	stats := computeStats(listing.Products)

	items := []termfmt.TreeItem{
		{Label: "Products", Value: formatNumber(stats.Total)},
		{Label: "In stock", Value: fmt.Sprintf("%d (%.0f%%)", stats.InStock, stats.availability()*100)},
		{Label: "Out of stock", Value: formatNumber(stats.OutOfStock)},
	}
	if stats.Total > 0 {
		items = append(items, termfmt.TreeItem{
			Label: "Price range",
			Value: formatPrice(listing.Currency, stats.MinPrice) + " - " + formatPrice(listing.Currency, stats.MaxPrice),
		})
		items = append(items, termfmt.TreeItem{
			Label: "Availability",
			Value: termfmt.CreateConfidenceBar(stats.availability(), f.opts),
		})
	}
	if listing.Duration > 0 {
		items = append(items, termfmt.TreeItem{Label: "Loaded in", Value: listing.Duration.Round(time.Millisecond).String()})
	}
	items[len(items)-1].Last = true

	tree := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(tree + "\n\n")
}

// writeProducts writes products grouped by category, keeping catalog order
func (f *terminalFormatter) writeProducts(b *strings.Builder, listing *Listing) {
	groups := groupByCategory(listing.Products)

	for _, group := range groups {
		fmt.Fprintf(b, "%s %s (%d)\n", emoji.GetEmoji("category"), group.Category, len(group.Products))

		items := make([]termfmt.TreeItem, 0, len(group.Products))
		for i := range group.Products {
			p := &group.Products[i]

			children := []termfmt.TreeItem{
				{Label: "ID", Value: string(p.ID)},
				{Label: "Stock", Value: stockSymbol(p) + " " + stockLabel(p)},
			}
			if desc := strings.TrimSpace(p.Description); desc != "" {
				children = append(children, termfmt.TreeItem{Label: "Description", Value: desc})
			}
			children[len(children)-1].Last = true

			items = append(items, termfmt.TreeItem{
				Label:    p.Name,
				Value:    formatPrice(listing.Currency, p.Price),
				Children: children,
				Last:     i == len(group.Products)-1,
			})
		}

		tree := termfmt.TreeViewWithOptions(items, f.opts)
		b.WriteString(tree + "\n\n")
	}
}
