package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yildizm/storefront/internal/catalog"
	"github.com/yildizm/storefront/internal/session"
)

var testProducts = []catalog.Product{
	{ID: "1", Name: "Vase", Category: "Gift Boxes", Price: 50, Stock: 3},
	{ID: "2", Name: "Novel", Category: "Books", Price: 12, Stock: 0},
	{ID: "3", Name: "Atlas", Category: "Books", Price: 30, Stock: 1},
}

// stubSource serves testProducts, optionally failing every fetch
type stubSource struct {
	mu  sync.Mutex
	err error
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Fetch(ctx context.Context, filter catalog.Filter) ([]catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	var out []catalog.Product
	for _, p := range testProducts {
		if filter.IsAll() || p.Category == filter.Category() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubSource) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func newTestModel(t *testing.T, source catalog.Source) *Model {
	t.Helper()
	categories := catalog.NewCategorySet([]catalog.Category{"Gift Boxes", "Books", "Stationery"})
	loader := catalog.NewLoader(source, categories)
	machine := session.New(loader, session.DefaultOptions(), nil)

	SetColorDisabled(true)
	t.Cleanup(func() { SetColorDisabled(false) })

	return NewModel(context.Background(), machine, loader, Options{Currency: "$"})
}

// drain runs cmd and feeds every load result back into the model
func drain(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}

	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			drain(t, m, c)
		}
	case loadResultMsg:
		_, next := m.Update(msg)
		drain(t, m, next)
	}
}

// collect runs cmd and returns the load results it produced without applying them
func collect(cmd tea.Cmd) []loadResultMsg {
	if cmd == nil {
		return nil
	}
	var out []loadResultMsg
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			out = append(out, collect(c)...)
		}
	case loadResultMsg:
		out = append(out, msg)
	}
	return out
}

func press(t *testing.T, m *Model, key string) {
	t.Helper()
	_, cmd := m.Update(keyMsg(key))
	drain(t, m, cmd)
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func mounted(t *testing.T) (*Model, *stubSource) {
	t.Helper()
	source := &stubSource{}
	m := newTestModel(t, source)
	drain(t, m, m.dispatch(session.Mount{}))
	return m, source
}

func TestModel_MountLoadsAll(t *testing.T) {
	source := &stubSource{}
	m := newTestModel(t, source)

	cmd := m.dispatch(session.Mount{})
	require.NotNil(t, cmd)
	assert.True(t, m.Snapshot().Loading)
	assert.Contains(t, m.View(), "Loading products")

	drain(t, m, cmd)

	snap := m.Snapshot()
	assert.False(t, snap.Loading)
	assert.True(t, snap.Loaded)
	assert.Equal(t, catalog.All, snap.ListFilter)
	assert.Len(t, snap.Products, 3)

	view := m.View()
	assert.Contains(t, view, "Vase")
	assert.Contains(t, view, "Atlas")
	assert.Contains(t, view, "0 All")
}

func TestModel_SelectCategoryByDigit(t *testing.T) {
	m, _ := mounted(t)

	press(t, m, "2")

	snap := m.Snapshot()
	assert.Equal(t, catalog.Filter("Books"), snap.Filter)
	assert.Equal(t, catalog.Filter("Books"), snap.ListFilter)
	require.Len(t, snap.Products, 2)
	assert.Equal(t, catalog.ProductID("2"), snap.Products[0].ID)

	press(t, m, "0")
	assert.Equal(t, catalog.All, m.Snapshot().Filter)
	assert.Len(t, m.Snapshot().Products, 3)
}

func TestModel_UnknownPosition(t *testing.T) {
	m, _ := mounted(t)

	press(t, m, "9")

	assert.Equal(t, catalog.All, m.Snapshot().Filter)
	assert.Contains(t, m.View(), "No category 9")
}

func TestModel_MenuSelection(t *testing.T) {
	m, _ := mounted(t)

	press(t, m, "m")
	require.True(t, m.Snapshot().MenuOpen)
	assert.Contains(t, m.View(), "Categories")

	press(t, m, "down")
	press(t, m, "down")
	press(t, m, "enter")

	snap := m.Snapshot()
	assert.False(t, snap.MenuOpen)
	assert.Equal(t, catalog.Filter("Books"), snap.Filter)
}

func TestModel_EscClosesMenu(t *testing.T) {
	m, _ := mounted(t)

	press(t, m, "m")
	press(t, m, "esc")

	assert.False(t, m.Snapshot().MenuOpen)
	assert.Equal(t, session.ViewHome, m.Snapshot().View)
}

func TestModel_OpenAndAddToCart(t *testing.T) {
	m, _ := mounted(t)

	press(t, m, "enter")
	snap := m.Snapshot()
	require.Equal(t, session.ViewProductDetail, snap.View)
	require.NotNil(t, snap.Selected)
	assert.Equal(t, "Vase", snap.Selected.Name)
	assert.Contains(t, m.View(), "Add to Cart")

	press(t, m, "a")
	snap = m.Snapshot()
	assert.Equal(t, session.ViewCart, snap.View)
	assert.Equal(t, 1, snap.CartCount)
	assert.Equal(t, 50.0, snap.CartTotal)

	view := m.View()
	assert.Contains(t, view, "1 × $50 = $50")
	assert.Contains(t, view, "Total: $50")
}

func TestModel_OutOfStockCannotBeAdded(t *testing.T) {
	m, _ := mounted(t)

	press(t, m, "down")
	press(t, m, "enter")
	require.Equal(t, "Novel", m.Snapshot().Selected.Name)
	assert.Contains(t, m.View(), "Out of Stock")

	press(t, m, "a")

	snap := m.Snapshot()
	assert.Equal(t, session.ViewProductDetail, snap.View)
	assert.Zero(t, snap.CartCount)
	assert.Contains(t, m.View(), "out of stock")
}

func TestModel_EmptyCart(t *testing.T) {
	m, _ := mounted(t)

	press(t, m, "c")

	assert.Equal(t, session.ViewCart, m.Snapshot().View)
	assert.Contains(t, m.View(), "Your cart is empty")

	press(t, m, "h")
	assert.Equal(t, session.ViewHome, m.Snapshot().View)
}

func TestModel_FailureKeepsLastList(t *testing.T) {
	m, source := mounted(t)
	source.fail(catalog.NewFetchError(catalog.KindNetwork, "connection refused", ""))

	press(t, m, "2")

	snap := m.Snapshot()
	require.NotNil(t, snap.Err)
	assert.Equal(t, catalog.KindNetwork, snap.Err.Kind)
	assert.True(t, snap.Stale())
	assert.Len(t, snap.Products, 3)

	view := m.View()
	assert.Contains(t, view, "Could not reach the catalog service")
	assert.Contains(t, view, "press r to retry")
	assert.Contains(t, view, "Vase")

	source.fail(nil)
	press(t, m, "r")

	snap = m.Snapshot()
	assert.Nil(t, snap.Err)
	assert.Equal(t, catalog.Filter("Books"), snap.ListFilter)
	assert.NotContains(t, m.View(), "press r to retry")
}

func TestModel_InitialFailure(t *testing.T) {
	source := &stubSource{}
	source.fail(errors.New("dial tcp: refused"))
	m := newTestModel(t, source)

	drain(t, m, m.dispatch(session.Mount{}))

	snap := m.Snapshot()
	assert.False(t, snap.Loaded)
	require.NotNil(t, snap.Err)
	assert.Contains(t, m.View(), "press r to retry")
}

func TestModel_SupersededResultIgnored(t *testing.T) {
	source := &stubSource{}
	m := newTestModel(t, source)

	first := collect(m.dispatch(session.Mount{}))
	_, cmd := m.Update(keyMsg("2"))
	second := collect(cmd)
	require.Len(t, first, 1)
	require.Len(t, second, 1)

	m.Update(second[0])
	m.Update(first[0])

	snap := m.Snapshot()
	assert.Equal(t, catalog.Filter("Books"), snap.ListFilter)
	assert.Len(t, snap.Products, 2)
	assert.False(t, snap.Loading)
}

func TestModel_CursorResetsOnNewList(t *testing.T) {
	m, _ := mounted(t)

	press(t, m, "down")
	press(t, m, "down")
	press(t, m, "down")
	assert.Equal(t, 2, m.cursor)

	press(t, m, "3")
	assert.Equal(t, 0, m.cursor)
	assert.Contains(t, m.View(), "No products in Stationery")
}

func TestModel_FixtureChangeReloads(t *testing.T) {
	m, _ := mounted(t)
	before := m.Snapshot()

	_, cmd := m.Update(fixtureChangedMsg{})
	require.NotNil(t, cmd)
	assert.True(t, m.Snapshot().Loading)
	drain(t, m, cmd)

	after := m.Snapshot()
	assert.False(t, after.Loading)
	assert.Equal(t, before.View, after.View)
	assert.Equal(t, before.Filter, after.Filter)
}

func TestModel_HelpAndQuit(t *testing.T) {
	m, _ := mounted(t)

	press(t, m, "?")
	assert.Contains(t, m.View(), "select category")

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, strings.TrimSpace(m.View()))
}

func TestWatchCommand(t *testing.T) {
	assert.Nil(t, watchCommand(nil))

	changes := make(chan struct{}, 1)
	changes <- struct{}{}
	cmd := watchCommand(changes)
	require.NotNil(t, cmd)
	assert.IsType(t, fixtureChangedMsg{}, cmd())

	close(changes)
	assert.Nil(t, watchCommand(changes)())
}

func TestModel_NarrowHeaderCollapsesTabs(t *testing.T) {
	m, _ := mounted(t)

	assert.Contains(t, m.View(), "2 Books")

	m.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	view := m.View()
	assert.Contains(t, view, "m menu")
	assert.NotContains(t, view, "2 Books")
}

func TestModel_SwitchHidesOtherFilterList(t *testing.T) {
	m, _ := mounted(t)

	_, cmd := m.Update(keyMsg("2"))
	require.NotNil(t, cmd)

	view := m.View()
	assert.Contains(t, view, "Loading products")
	assert.NotContains(t, view, "Vase")

	drain(t, m, cmd)
	assert.NotContains(t, m.View(), "Vase")
	assert.Contains(t, m.View(), "Atlas")
}

func TestModel_SpinnerTicksOnlyWhileLoading(t *testing.T) {
	source := &stubSource{}
	m := newTestModel(t, source)

	cmd := m.dispatch(session.Mount{})
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	assert.Len(t, batch, 2)
	require.True(t, m.ticking)

	_, next := m.Update(tickMsg(time.Now()))
	assert.NotNil(t, next)

	for _, result := range collect(batch[0]) {
		m.Update(result)
	}
	require.False(t, m.Snapshot().Loading)

	_, next = m.Update(tickMsg(time.Now()))
	assert.Nil(t, next)
	assert.False(t, m.ticking)

	// The next load starts a new tick chain
	_, cmd = m.Update(keyMsg("r"))
	require.NotNil(t, cmd)
	batch, ok = cmd().(tea.BatchMsg)
	require.True(t, ok)
	assert.Len(t, batch, 2)
}

func TestModel_DetailShowsCartQuantity(t *testing.T) {
	m, _ := mounted(t)

	press(t, m, "enter")
	assert.NotContains(t, m.View(), "In your cart")

	press(t, m, "a")
	press(t, m, "h")
	press(t, m, "enter")

	assert.Equal(t, 1, m.Snapshot().SelectedInCart)
	assert.Contains(t, m.View(), "In your cart")
}
