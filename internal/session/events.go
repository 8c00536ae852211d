package session

import "github.com/yildizm/storefront/internal/catalog"

// Kind identifies an event in the dispatch table
type Kind string

const (
	KindMount          Kind = "mount"
	KindSelectCategory Kind = "select_category"
	KindOpenProduct    Kind = "open_product"
	KindNavigateHome   Kind = "navigate_home"
	KindNavigateCart   Kind = "navigate_cart"
	KindAddToCart      Kind = "add_to_cart"
	KindLoadSucceeded  Kind = "load_succeeded"
	KindLoadFailed     Kind = "load_failed"
	KindToggleMenu     Kind = "toggle_menu"
	KindReload         Kind = "reload"
)

// Event is an input to the session machine
type Event interface {
	Kind() Kind
}

// Mount starts a session: filter resets to all and the catalog is loaded
type Mount struct{}

// SelectCategory switches the category filter and reloads
type SelectCategory struct {
	Filter catalog.Filter
}

// OpenProduct shows a single product
type OpenProduct struct {
	Product catalog.Product
}

// NavigateHome shows the product list
type NavigateHome struct{}

// NavigateCart shows the cart
type NavigateCart struct{}

// AddToCart adds the selected product to the cart
type AddToCart struct{}

// LoadSucceeded delivers the products of a settled request
type LoadSucceeded struct {
	Seq      uint64
	Filter   catalog.Filter
	Products []catalog.Product
}

// LoadFailed delivers the error of a settled request
type LoadFailed struct {
	Seq    uint64
	Filter catalog.Filter
	Err    *catalog.FetchError
}

// ToggleMenu flips the category menu panel
type ToggleMenu struct{}

// Reload re-requests the current filter without changing the view
type Reload struct{}

func (Mount) Kind() Kind          { return KindMount }
func (SelectCategory) Kind() Kind { return KindSelectCategory }
func (OpenProduct) Kind() Kind    { return KindOpenProduct }
func (NavigateHome) Kind() Kind   { return KindNavigateHome }
func (NavigateCart) Kind() Kind   { return KindNavigateCart }
func (AddToCart) Kind() Kind      { return KindAddToCart }
func (LoadSucceeded) Kind() Kind  { return KindLoadSucceeded }
func (LoadFailed) Kind() Kind     { return KindLoadFailed }
func (ToggleMenu) Kind() Kind     { return KindToggleMenu }
func (Reload) Kind() Kind         { return KindReload }

// Settled converts a loader result into the matching event
func Settled(res catalog.Result) Event {
	if res.Err != nil {
		return LoadFailed{Seq: res.Seq, Filter: res.Filter, Err: res.Err}
	}
	return LoadSucceeded{Seq: res.Seq, Filter: res.Filter, Products: res.Products}
}
