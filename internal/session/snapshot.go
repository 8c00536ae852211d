package session

import (
	"github.com/yildizm/storefront/internal/cart"
	"github.com/yildizm/storefront/internal/catalog"
)

// View is the screen the session is showing
type View int

const (
	ViewHome View = iota
	ViewProductDetail
	ViewCart
)

func (v View) String() string {
	switch v {
	case ViewHome:
		return "home"
	case ViewProductDetail:
		return "product"
	case ViewCart:
		return "cart"
	default:
		return "unknown"
	}
}

// Snapshot is a read-only copy of the session state. Slices and the
// selected product are copies; mutating them does not affect the session.
type Snapshot struct {
	View       View
	Filter     catalog.Filter
	Categories []catalog.Category
	Selected   *catalog.Product

	// SelectedInCart is the cart quantity of the selected product
	SelectedInCart int

	// Products is the last successfully loaded list and ListFilter the
	// filter it was loaded for. Both survive failed loads.
	Products   []catalog.Product
	ListFilter catalog.Filter
	Loaded     bool

	Loading bool
	Err     *catalog.FetchError

	Cart      []cart.Line
	CartCount int
	CartTotal float64

	MenuOpen bool
}

// CanAddToCart reports whether the add-to-cart action is enabled
func (s *Snapshot) CanAddToCart() bool {
	return s.View == ViewProductDetail && s.Selected != nil && s.Selected.InStock()
}

// Stale reports whether the displayed list belongs to another filter than
// the active one, e.g. after a failed category switch.
func (s *Snapshot) Stale() bool {
	return s.Loaded && s.ListFilter != s.Filter
}
