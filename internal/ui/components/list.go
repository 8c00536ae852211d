package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/storefront/internal/cart"
	"github.com/yildizm/storefront/internal/catalog"
	"github.com/yildizm/storefront/internal/emoji"
)

// ListItem represents an item in a list
type ListItem struct {
	ID          string
	Title       string
	Description string
	Status      string
	Icon        string
	Disabled    bool
	Data        interface{} // Store associated data
}

// List represents a navigable list component
type List struct {
	Title       string
	Items       []ListItem
	Selected    int
	Focused     bool
	Width       int
	Height      int
	ShowNumbers bool
	ShowIcons   bool
	Footer      string
}

// NewList creates a new list component
func NewList(title string, width, height int) *List {
	return &List{
		Title:       title,
		Width:       width,
		Height:      height,
		ShowNumbers: true,
		ShowIcons:   true,
	}
}

// AddItem adds an item to the list
func (l *List) AddItem(item *ListItem) {
	l.Items = append(l.Items, *item)
}

// SetItems sets all items in the list
func (l *List) SetItems(items []ListItem) {
	l.Items = items
	l.Selected = 0
}

// Select moves the selection to index, clamped to the list bounds
func (l *List) Select(index int) {
	switch {
	case len(l.Items) == 0 || index < 0:
		l.Selected = 0
	case index >= len(l.Items):
		l.Selected = len(l.Items) - 1
	default:
		l.Selected = index
	}
}

// SetFocused sets the focus state of the list
func (l *List) SetFocused(focused bool) {
	l.Focused = focused
}

// GetSelectedItem returns the currently selected item
func (l *List) GetSelectedItem() *ListItem {
	if l.Selected < 0 || l.Selected >= len(l.Items) {
		return nil
	}
	return &l.Items[l.Selected]
}

// MoveUp moves selection up
func (l *List) MoveUp() {
	if l.Selected > 0 {
		l.Selected--
	}
}

// MoveDown moves selection down
func (l *List) MoveDown() {
	if l.Selected < len(l.Items)-1 {
		l.Selected++
	}
}

// Render renders the list
func (l *List) Render() string {
	primaryColor := lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"}
	secondaryColor := lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	selectedColor := lipgloss.AdaptiveColor{Light: "#DBEAFE", Dark: "#1E3A8A"}

	headerStyle := lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	focusedStyle := lipgloss.NewStyle().Background(selectedColor).Foreground(primaryColor)
	normalStyle := lipgloss.NewStyle().Foreground(secondaryColor)

	var content []string

	// Add title
	title := headerStyle.Render(l.Title)
	if l.Focused {
		title = focusedStyle.Render(title)
	}
	content = append(content, title)

	content = append(content, "")

	// Calculate visible range
	maxVisible := l.Height - 4 // Account for title and spacing
	if maxVisible < 1 {
		maxVisible = 1
	}

	startIndex := 0
	if l.Selected >= maxVisible {
		startIndex = l.Selected - maxVisible + 1
	}

	endIndex := startIndex + maxVisible
	if endIndex > len(l.Items) {
		endIndex = len(l.Items)
	}

	// Render visible items
	for i := startIndex; i < endIndex; i++ {
		item := l.Items[i]
		content = append(content, l.renderItem(&item, i+1, i == l.Selected))
	}

	// Add scrolling indicator
	if len(l.Items) > maxVisible {
		scrollInfo := fmt.Sprintf("(%d-%d of %d)", startIndex+1, endIndex, len(l.Items))
		content = append(content, "", normalStyle.Render(scrollInfo))
	}

	if l.Footer != "" {
		content = append(content, "", headerStyle.Render(l.Footer))
	}

	joined := lipgloss.JoinVertical(lipgloss.Left, content...)

	panelStyle := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(secondaryColor)

	if l.Focused {
		return focusedStyle.Width(l.Width).Render(joined)
	}

	return panelStyle.Width(l.Width).Render(joined)
}

// renderItem renders a single list item
func (l *List) renderItem(item *ListItem, number int, selected bool) string {
	primaryColor := lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"}
	secondaryColor := lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	selectedColor := lipgloss.AdaptiveColor{Light: "#DBEAFE", Dark: "#1E3A8A"}
	successColor := lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#34D399"}
	warningColor := lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#FBBF24"}
	errorColor := lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#F87171"}

	var parts []string

	// Add number
	if l.ShowNumbers {
		numStr := fmt.Sprintf("%2d.", number)
		parts = append(parts, numStr)
	}

	// Add icon
	if l.ShowIcons && item.Icon != "" {
		parts = append(parts, item.Icon)
	}

	// Add title
	title := item.Title
	if item.Description != "" {
		title += " - " + item.Description
	}
	parts = append(parts, title)

	line := strings.Join(parts, " ")

	// Apply styling based on status
	var style lipgloss.Style
	if item.Disabled {
		style = lipgloss.NewStyle().Foreground(secondaryColor).Faint(true)
		if selected {
			style = style.Background(selectedColor)
		}
	} else if selected {
		style = lipgloss.NewStyle().Background(selectedColor).Foreground(primaryColor)
	} else {
		style = lipgloss.NewStyle().Foreground(secondaryColor)
		// Apply status color
		switch item.Status {
		case "success":
			style = style.Foreground(successColor)
		case "warning":
			style = style.Foreground(warningColor)
		case "error":
			style = style.Foreground(errorColor)
		case "info":
			style = style.Foreground(primaryColor)
		}
	}

	return style.Width(l.Width - 4).Render(line)
}

// NewProductList creates a list component for catalog products
func NewProductList(title string, products []catalog.Product, currency string, width, height int) *List {
	list := NewList(title, width, height)

	for i := range products {
		p := products[i]

		status := "success"
		icon := emoji.GetEmoji("in_stock")
		stock := fmt.Sprintf("%d in stock", p.Stock)
		if !p.InStock() {
			status = "warning"
			icon = emoji.GetEmoji("out_of_stock")
			stock = "out of stock"
		}

		item := ListItem{
			ID:          string(p.ID),
			Title:       p.Name,
			Description: fmt.Sprintf("%s · %s · %s", FormatPrice(currency, p.Price), p.Category, stock),
			Status:      status,
			Icon:        icon,
			Disabled:    !p.InStock(),
			Data:        p,
		}

		list.AddItem(&item)
	}

	return list
}

// NewCartList creates a list component for cart lines with the total as footer
func NewCartList(lines []cart.Line, total float64, currency string, width, height int) *List {
	list := NewList("Cart", width, height)
	list.ShowIcons = false

	for _, line := range lines {
		item := ListItem{
			ID:    string(line.Product.ID),
			Title: line.Product.Name,
			Description: fmt.Sprintf("%d × %s = %s",
				line.Quantity,
				FormatPrice(currency, line.Product.Price),
				FormatPrice(currency, line.Subtotal())),
			Status: "info",
			Data:   line,
		}
		list.AddItem(&item)
	}

	list.Footer = "Total: " + FormatPrice(currency, total)
	return list
}

// FormatPrice renders an amount with its currency symbol
func FormatPrice(currency string, amount float64) string {
	if amount == float64(int64(amount)) {
		return fmt.Sprintf("%s%d", currency, int64(amount))
	}
	return fmt.Sprintf("%s%.2f", currency, amount)
}
