package formatter

import (
	"fmt"

	"github.com/yildizm/storefront/internal/catalog"
	"github.com/yildizm/storefront/internal/emoji"
)

// listingStats summarizes a listing
type listingStats struct {
	Total      int
	InStock    int
	OutOfStock int
	Units      int
	MinPrice   float64
	MaxPrice   float64
}

func computeStats(products []catalog.Product) listingStats {
	stats := listingStats{Total: len(products)}
	for i, p := range products {
		if p.InStock() {
			stats.InStock++
			stats.Units += p.Stock
		} else {
			stats.OutOfStock++
		}
		if i == 0 || p.Price < stats.MinPrice {
			stats.MinPrice = p.Price
		}
		if i == 0 || p.Price > stats.MaxPrice {
			stats.MaxPrice = p.Price
		}
	}
	return stats
}

// availability is the share of products that can be added to a cart
func (s listingStats) availability() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.InStock) / float64(s.Total)
}

// categoryGroup holds the products of one category in listing order
type categoryGroup struct {
	Category catalog.Category
	Products []catalog.Product
}

// groupByCategory groups products by category, ordering groups by first
// appearance and keeping product order inside each group
func groupByCategory(products []catalog.Product) []categoryGroup {
	index := make(map[catalog.Category]int)
	var groups []categoryGroup
	for _, p := range products {
		i, ok := index[p.Category]
		if !ok {
			i = len(groups)
			index[p.Category] = i
			groups = append(groups, categoryGroup{Category: p.Category})
		}
		groups[i].Products = append(groups[i].Products, p)
	}
	return groups
}

// formatNumber formats numbers with commas for readability
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return addCommas(fmt.Sprintf("%d", n))
}

// addCommas adds commas to number strings
func addCommas(s string) string {
	if len(s) <= 3 {
		return s
	}
	return addCommas(s[:len(s)-3]) + "," + s[len(s)-3:]
}

// formatPrice renders price with the listing currency
func formatPrice(currency string, price float64) string {
	if price == float64(int64(price)) {
		return fmt.Sprintf("%s%s", currency, formatNumber(int(price)))
	}
	return fmt.Sprintf("%s%.2f", currency, price)
}

// stockLabel describes stock for humans
func stockLabel(p *catalog.Product) string {
	if !p.InStock() {
		return "Out of stock"
	}
	return fmt.Sprintf("%s in stock", formatNumber(p.Stock))
}

// filterLabel names the filter for headings
func filterLabel(f catalog.Filter) string {
	if f.IsAll() {
		return "All products"
	}
	return string(f)
}

// stockSymbol returns the stock indicator
func stockSymbol(p *catalog.Product) string {
	if p.InStock() {
		return emoji.GetEmoji("in_stock")
	}
	return emoji.GetEmoji("out_of_stock")
}
