package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/storefront/internal/catalog"
	"github.com/yildizm/storefront/internal/emoji"
	"github.com/yildizm/storefront/internal/session"
	"github.com/yildizm/storefront/internal/ui/components"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// Below this width the category tabs collapse into the menu
	narrowWidth = 60
)

// View renders the current snapshot
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	styles := GetStyles()

	sections := []string{m.renderHeader(styles)}
	if m.snap.MenuOpen {
		sections = append(sections, m.renderMenu(styles))
	}

	switch m.snap.View {
	case session.ViewProductDetail:
		sections = append(sections, m.renderDetail(styles))
	case session.ViewCart:
		sections = append(sections, m.renderCart(styles))
	default:
		sections = append(sections, m.renderHome(styles))
	}

	if m.notice != "" {
		sections = append(sections, paint(styles, m.notice, &styles.Notice))
	}
	sections = append(sections, m.renderFooter(styles))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func paint(styles *Styles, text string, style *lipgloss.Style) string {
	return styles.Theme.StyledText(text, style)
}

func (m *Model) size() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

// renderHeader shows the store title, the category tabs and the cart badge
func (m *Model) renderHeader(styles *Styles) string {
	title := paint(styles, emoji.GetEmoji("store")+" Storefront", &styles.Title)

	if m.width > 0 && m.width < narrowWidth {
		current := paint(styles, filterTitle(m.snap.Filter), &styles.TabActive)
		hint := paint(styles, "m menu", &styles.Muted)
		badge := paint(styles, fmt.Sprintf("%s %d", emoji.GetEmoji("cart"), m.snap.CartCount), &styles.Badge)
		return lipgloss.JoinHorizontal(lipgloss.Top, title, " ", current, " ", hint, "  ", badge) + "\n"
	}

	tabs := make([]string, 0, len(m.snap.Categories)+1)
	tabs = append(tabs, m.renderTab(styles, 0, "All", m.snap.Filter.IsAll()))
	for i, c := range m.snap.Categories {
		tabs = append(tabs, m.renderTab(styles, i+1, string(c), catalog.Filter(c) == m.snap.Filter))
	}

	badge := paint(styles, fmt.Sprintf("%s %d", emoji.GetEmoji("cart"), m.snap.CartCount), &styles.Badge)

	line := lipgloss.JoinHorizontal(lipgloss.Top, title, " ", strings.Join(tabs, " "), "  ", badge)
	return line + "\n"
}

func (m *Model) renderTab(styles *Styles, position int, label string, active bool) string {
	text := fmt.Sprintf("%d %s", position, label)
	if active {
		return paint(styles, text, &styles.TabActive)
	}
	return paint(styles, text, &styles.Tab)
}

// renderMenu shows the category panel
func (m *Model) renderMenu(styles *Styles) string {
	labels := make([]string, 0, len(m.snap.Categories)+1)
	labels = append(labels, "All products")
	for _, c := range m.snap.Categories {
		labels = append(labels, string(c))
	}

	lines := make([]string, 0, len(labels)+1)
	lines = append(lines, paint(styles, emoji.GetEmoji("menu")+" Categories", &styles.Subheader))
	for i, label := range labels {
		cursor := "  "
		if i == m.menuCursor {
			cursor = "> "
		}
		text := fmt.Sprintf("%s%d. %s", cursor, i, label)
		if i == m.menuCursor {
			lines = append(lines, paint(styles, text, &styles.TabActive))
		} else {
			lines = append(lines, paint(styles, text, &styles.Body))
		}
	}

	body := strings.Join(lines, "\n")
	if IsColorDisabled() {
		return body
	}
	return styles.Menu.Render(body)
}

// renderHome shows the product list with its loading and error states
func (m *Model) renderHome(styles *Styles) string {
	width, height := m.size()
	var sections []string

	if m.snap.Err != nil {
		sections = append(sections, m.renderError(styles, m.snap.Err))
	}

	if !m.snap.Loaded {
		if m.snap.Loading {
			sections = append(sections, m.spinner.Render())
		}
		return strings.Join(sections, "\n")
	}

	if m.snap.Loading {
		sections = append(sections, m.spinner.Render())
		// A list for another filter is not shown while its replacement loads
		if m.snap.Stale() {
			return strings.Join(sections, "\n")
		}
	}
	if m.snap.Stale() {
		sections = append(sections, paint(styles,
			fmt.Sprintf("Showing %s; %s could not be loaded", filterTitle(m.snap.ListFilter), filterTitle(m.snap.Filter)),
			&styles.Notice))
	}

	if len(m.snap.Products) == 0 {
		sections = append(sections, paint(styles, "No products in "+filterTitle(m.snap.ListFilter), &styles.Muted))
		return strings.Join(sections, "\n")
	}

	list := components.NewProductList(filterTitle(m.snap.ListFilter), m.snap.Products, m.opts.Currency, width, height-6)
	list.Select(m.cursor)
	list.SetFocused(!m.snap.MenuOpen)
	sections = append(sections, list.Render())

	return strings.Join(sections, "\n")
}

// renderError shows a failed load with its retry hint
func (m *Model) renderError(styles *Styles, err *catalog.FetchError) string {
	text := fmt.Sprintf("%s %s", emoji.GetEmoji("error"), err.UserMessage())
	if err.IsRetryable() {
		text += fmt.Sprintf("\n%s press r to retry", emoji.GetEmoji("retry"))
	} else {
		text += "\npress r to reload"
	}
	if IsColorDisabled() {
		return text
	}
	return styles.Banner.Render(text)
}

// renderDetail shows the selected product and the add to cart button
func (m *Model) renderDetail(styles *Styles) string {
	p := m.snap.Selected
	if p == nil {
		return paint(styles, "No product selected", &styles.Muted)
	}
	width, height := m.size()

	detail := components.NewDetailViewer(emoji.GetEmoji("product")+" "+p.Name, width-2, height-6)
	detail.AddSection(components.DetailSection{
		Title:   "Price",
		Content: []string{components.FormatPrice(m.opts.Currency, p.Price)},
		Style:   "info",
	})
	detail.AddSection(components.DetailSection{
		Title:   "Category",
		Content: []string{string(p.Category)},
	})

	stock := components.DetailSection{Title: "Availability", Style: "success"}
	if p.InStock() {
		stock.Content = []string{fmt.Sprintf("%s %d in stock", emoji.GetEmoji("in_stock"), p.Stock)}
	} else {
		stock.Content = []string{emoji.GetEmoji("out_of_stock") + " Out of stock"}
		stock.Style = "warning"
	}
	detail.AddSection(stock)

	if p.Description != "" {
		detail.AddSection(components.DetailSection{
			Title:   "Description",
			Content: strings.Split(p.Description, "\n"),
		})
	}

	if inCart := m.snap.SelectedInCart; inCart > 0 {
		detail.AddSection(components.DetailSection{
			Title:   "In your cart",
			Content: []string{fmt.Sprintf("%d", inCart)},
			Style:   "info",
		})
	}

	var button string
	if m.snap.CanAddToCart() {
		button = paint(styles, "[a] Add to Cart", &styles.Button)
	} else {
		button = paint(styles, "Out of Stock", &styles.ButtonDisabled)
	}

	return lipgloss.JoinVertical(lipgloss.Left, detail.Render(), "", button)
}

// renderCart shows the cart lines and totals
func (m *Model) renderCart(styles *Styles) string {
	if len(m.snap.Cart) == 0 {
		return paint(styles, emoji.GetEmoji("cart")+" Your cart is empty", &styles.Muted)
	}
	width, height := m.size()

	list := components.NewCartList(m.snap.Cart, m.snap.CartTotal, m.opts.Currency, width, height-10)
	list.Selected = -1

	summary := components.NewSummaryBox(emoji.GetEmoji("statistics")+" Summary", width/2)
	summary.AddKeyValue("Products", fmt.Sprintf("%d", len(m.snap.Cart)))
	summary.AddKeyValue("Items", fmt.Sprintf("%d", m.snap.CartCount))
	summary.AddKeyValue("Total", components.FormatPrice(m.opts.Currency, m.snap.CartTotal))

	return lipgloss.JoinVertical(lipgloss.Left, list.Render(), summary.Render())
}

// renderFooter shows the key bindings for the current view
func (m *Model) renderFooter(styles *Styles) string {
	if m.showHelp {
		help := []string{
			"0-9     select category (0 = all)",
			"m       open or close the category menu",
			"↑/↓ j/k move",
			"enter   open product",
			"a       add to cart",
			"c       cart",
			"h/esc   home",
			"r       reload",
			"q       quit",
		}
		return paint(styles, strings.Join(help, "\n"), &styles.Muted)
	}

	var keys string
	switch {
	case m.snap.MenuOpen:
		keys = "↑/↓ move • enter select • esc close"
	case m.snap.View == session.ViewProductDetail:
		keys = "a add to cart • c cart • h back • q quit"
	case m.snap.View == session.ViewCart:
		keys = "h home • r reload • q quit"
	default:
		keys = "↑/↓ move • enter open • m menu • c cart • r reload • ? help • q quit"
	}
	return "\n" + paint(styles, keys, &styles.Muted)
}

func filterTitle(f catalog.Filter) string {
	if f.IsAll() || f == "" {
		return "All products"
	}
	return string(f)
}
