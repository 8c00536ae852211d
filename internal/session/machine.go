// Package session implements the storefront session state machine: view,
// category filter, selected product, product list, loading flag, cart and
// menu flag, driven by events through an explicit dispatch table.
package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/yildizm/storefront/internal/cart"
	"github.com/yildizm/storefront/internal/catalog"
	"github.com/yildizm/storefront/internal/logger"
)

var (
	// ErrNoSelection is returned by AddToCart when no product is selected
	ErrNoSelection = errors.New("no product selected")

	// ErrOutOfStock is returned by AddToCart for a product with zero stock
	ErrOutOfStock = cart.ErrOutOfStock

	// ErrUnknownEvent is returned for events missing from the dispatch table
	ErrUnknownEvent = errors.New("unknown session event")
)

// Requester issues tagged catalog requests and owns the latest tag.
// *catalog.Loader implements it.
type Requester interface {
	Begin(filter catalog.Filter) (catalog.Request, error)
	IsCurrent(seq uint64) bool
	Categories() *catalog.CategorySet
}

// Effect tells the caller what to do after a transition
type Effect struct {
	// Load is set when the transition issued a catalog request that the
	// caller must run and feed back as LoadSucceeded or LoadFailed.
	Load *catalog.Request

	// Discarded is set when a load result was ignored as superseded
	Discarded bool
}

// Options tune transitions that have more than one acceptable behavior
type Options struct {
	// NavigateOnAdd moves to the cart view after a successful add
	NavigateOnAdd bool
}

// DefaultOptions returns the reference behavior
func DefaultOptions() Options {
	return Options{NavigateOnAdd: true}
}

type state struct {
	view       View
	filter     catalog.Filter
	selected   *catalog.Product
	products   []catalog.Product
	listFilter catalog.Filter
	loaded     bool
	loading    bool
	err        *catalog.FetchError
	cart       *cart.Cart
	menuOpen   bool
}

// transition applies ev to m. It reports whether state changed; returning
// an error means the event was rejected and nothing changed.
type transition func(m *Machine, ev Event) (Effect, bool, error)

// transitions is the event-to-transition dispatch table
var transitions = map[Kind]transition{
	KindMount:          (*Machine).onMount,
	KindSelectCategory: (*Machine).onSelectCategory,
	KindOpenProduct:    (*Machine).onOpenProduct,
	KindNavigateHome:   (*Machine).onNavigateHome,
	KindNavigateCart:   (*Machine).onNavigateCart,
	KindAddToCart:      (*Machine).onAddToCart,
	KindLoadSucceeded:  (*Machine).onLoadSucceeded,
	KindLoadFailed:     (*Machine).onLoadFailed,
	KindToggleMenu:     (*Machine).onToggleMenu,
	KindReload:         (*Machine).onReload,
}

// Machine owns the session state. Dispatch runs each transition to
// completion before the next one starts.
type Machine struct {
	requester Requester
	opts      Options
	log       *logger.Logger

	mu    sync.Mutex
	state state

	subMu   sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int
}

// New creates a machine in the Home view with the all filter and an empty
// cart. Nothing is loaded until Mount is dispatched.
func New(requester Requester, opts Options, log *logger.Logger) *Machine {
	if log == nil {
		log = logger.Nop()
	}
	return &Machine{
		requester: requester,
		opts:      opts,
		log:       log.WithComponent("session"),
		state: state{
			view:   ViewHome,
			filter: catalog.All,
			cart:   cart.New(),
		},
		subs: make(map[int]func(Snapshot)),
	}
}

// Dispatch applies ev and notifies subscribers when state changed
func (m *Machine) Dispatch(ev Event) (Effect, error) {
	if ev == nil {
		return Effect{}, ErrUnknownEvent
	}
	t, ok := transitions[ev.Kind()]
	if !ok {
		return Effect{}, fmt.Errorf("%w: %s", ErrUnknownEvent, ev.Kind())
	}

	m.mu.Lock()
	effect, changed, err := t(m, ev)
	var snap Snapshot
	if changed {
		snap = m.snapshotLocked()
	}
	m.mu.Unlock()

	if err != nil {
		m.log.Debug("rejected %s: %v", ev.Kind(), err)
		return Effect{}, err
	}
	if effect.Discarded {
		m.log.Debug("discarded superseded %s", ev.Kind())
	}
	if changed {
		m.notify(snap)
	}
	return effect, nil
}

// Snapshot returns a copy of the current state
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Subscribe registers fn to receive a snapshot after every applied
// transition. The returned func removes the subscription.
func (m *Machine) Subscribe(fn func(Snapshot)) func() {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn

	return func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()
		delete(m.subs, id)
	}
}

func (m *Machine) notify(snap Snapshot) {
	m.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

func (m *Machine) snapshotLocked() Snapshot {
	s := &m.state

	snap := Snapshot{
		View:       s.view,
		Filter:     s.filter,
		Categories: m.requester.Categories().Categories(),
		ListFilter: s.listFilter,
		Loaded:     s.loaded,
		Loading:    s.loading,
		Err:        s.err,
		Cart:       s.cart.Lines(),
		CartCount:  s.cart.Count(),
		CartTotal:  s.cart.Total(),
		MenuOpen:   s.menuOpen,
	}
	if s.selected != nil {
		p := *s.selected
		snap.Selected = &p
		snap.SelectedInCart = s.cart.Quantity(p.ID)
	}
	if s.products != nil {
		snap.Products = make([]catalog.Product, len(s.products))
		copy(snap.Products, s.products)
	}
	return snap
}

// startLoad issues a request for filter and marks it outstanding
func (m *Machine) startLoad(filter catalog.Filter) (Effect, error) {
	req, err := m.requester.Begin(filter)
	if err != nil {
		return Effect{}, err
	}
	m.state.loading = true
	return Effect{Load: &req}, nil
}

// leaveDetail drops the selection when the detail view is left
func (m *Machine) leaveDetail(next View) {
	m.state.view = next
	if next != ViewProductDetail {
		m.state.selected = nil
	}
}

func (m *Machine) onMount(Event) (Effect, bool, error) {
	effect, err := m.startLoad(catalog.All)
	if err != nil {
		return Effect{}, false, err
	}
	m.state.filter = catalog.All
	return effect, true, nil
}

func (m *Machine) onSelectCategory(ev Event) (Effect, bool, error) {
	filter := ev.(SelectCategory).Filter

	effect, err := m.startLoad(filter)
	if err != nil {
		return Effect{}, false, err
	}
	// Re-selecting the active category only reloads
	if filter != m.state.filter {
		m.state.filter = filter
		m.leaveDetail(ViewHome)
	}
	m.state.menuOpen = false
	return effect, true, nil
}

func (m *Machine) onOpenProduct(ev Event) (Effect, bool, error) {
	p := ev.(OpenProduct).Product
	m.state.selected = &p
	m.state.view = ViewProductDetail
	return Effect{}, true, nil
}

func (m *Machine) onNavigateHome(Event) (Effect, bool, error) {
	m.leaveDetail(ViewHome)
	return Effect{}, true, nil
}

func (m *Machine) onNavigateCart(Event) (Effect, bool, error) {
	m.leaveDetail(ViewCart)
	return Effect{}, true, nil
}

func (m *Machine) onAddToCart(Event) (Effect, bool, error) {
	selected := m.state.selected
	if selected == nil {
		return Effect{}, false, ErrNoSelection
	}
	if err := m.state.cart.Add(*selected); err != nil {
		return Effect{}, false, err
	}
	if m.opts.NavigateOnAdd {
		m.leaveDetail(ViewCart)
	}
	return Effect{}, true, nil
}

func (m *Machine) onLoadSucceeded(ev Event) (Effect, bool, error) {
	e := ev.(LoadSucceeded)
	if !m.accepts(e.Seq) {
		return Effect{Discarded: true}, false, nil
	}

	products := make([]catalog.Product, len(e.Products))
	copy(products, e.Products)

	m.state.products = products
	m.state.listFilter = e.Filter
	m.state.loaded = true
	m.state.loading = false
	m.state.err = nil
	return Effect{}, true, nil
}

func (m *Machine) onLoadFailed(ev Event) (Effect, bool, error) {
	e := ev.(LoadFailed)
	if !m.accepts(e.Seq) {
		return Effect{Discarded: true}, false, nil
	}

	m.state.loading = false
	m.state.err = e.Err
	return Effect{}, true, nil
}

// accepts reports whether seq is the outstanding request: a load is in
// flight and seq is the requester's latest tag
func (m *Machine) accepts(seq uint64) bool {
	return m.state.loading && m.requester.IsCurrent(seq)
}

func (m *Machine) onToggleMenu(Event) (Effect, bool, error) {
	m.state.menuOpen = !m.state.menuOpen
	return Effect{}, true, nil
}

func (m *Machine) onReload(Event) (Effect, bool, error) {
	effect, err := m.startLoad(m.state.filter)
	if err != nil {
		return Effect{}, false, err
	}
	return effect, true, nil
}
