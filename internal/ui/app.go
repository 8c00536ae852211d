package ui

import (
	"context"
	"errors"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/storefront/internal/catalog"
	"github.com/yildizm/storefront/internal/logger"
	"github.com/yildizm/storefront/internal/session"
	"github.com/yildizm/storefront/internal/ui/components"
)

// Options configures the storefront model
type Options struct {
	// Currency is prefixed to every price
	Currency string

	// Changes signals fixture edits; nil disables live reload
	Changes <-chan struct{}

	// AltScreen runs the UI in the terminal's alternate screen
	AltScreen bool

	Logger *logger.Logger
}

// Model is the bubbletea model of the storefront. All session state lives
// in the machine; Model only keeps what the terminal needs on top of it.
type Model struct {
	ctx     context.Context
	machine *session.Machine
	runner  Runner
	opts    Options
	log     *logger.Logger

	snap        session.Snapshot
	unsubscribe func()

	// Terminal-only state
	width      int
	height     int
	cursor     int
	menuCursor int
	showHelp   bool
	notice     string
	spinner    *components.Spinner
	ticking    bool
	quitting   bool
}

// NewModel creates a storefront model over machine. runner settles the
// requests the machine issues.
func NewModel(ctx context.Context, machine *session.Machine, runner Runner, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	m := &Model{
		ctx:     ctx,
		machine: machine,
		runner:  runner,
		opts:    opts,
		log:     opts.Logger.WithComponent("ui"),
		snap:    machine.Snapshot(),
		spinner: components.NewSpinner(),
	}
	m.spinner.SetLabel("Loading products...")
	m.unsubscribe = machine.Subscribe(m.onSnapshot)
	return m
}

// Snapshot returns the state the model last rendered from
func (m *Model) Snapshot() session.Snapshot {
	return m.snap
}

// onSnapshot receives every applied transition. Dispatch only runs from
// Update, so this never races with View.
func (m *Model) onSnapshot(snap session.Snapshot) {
	if snap.ListFilter != m.snap.ListFilter || !m.snap.Loaded {
		m.cursor = 0
	}
	m.snap = snap
	m.clampCursor()
}

// Init mounts the session
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.dispatch(session.Mount{}), watchCommand(m.opts.Changes)}
	if m.opts.AltScreen {
		cmds = append([]tea.Cmd{tea.EnterAltScreen}, cmds...)
	}
	return tea.Batch(cmds...)
}

// Update handles messages and navigation
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tickMsg:
		if !m.snap.Loading {
			m.ticking = false
			return m, nil
		}
		m.spinner.Tick()
		return m, tick()
	case loadResultMsg:
		return m, m.dispatch(session.Settled(msg.result))
	case fixtureChangedMsg:
		m.log.Info("fixture changed, reloading")
		return m, tea.Batch(m.dispatch(session.Reload{}), watchCommand(m.opts.Changes))
	}

	return m, nil
}

// dispatch applies ev and starts any load it issued
func (m *Model) dispatch(ev session.Event) tea.Cmd {
	effect, err := m.machine.Dispatch(ev)
	if err != nil {
		m.notice = noticeFor(err)
		return nil
	}
	if effect.Load == nil {
		return nil
	}
	m.spinner.Reset()
	load := loadCommand(m.ctx, m.runner, *effect.Load)
	if m.ticking {
		return load
	}
	m.ticking = true
	return tea.Batch(load, tick())
}

// noticeFor turns a rejected event into a status line
func noticeFor(err error) string {
	switch {
	case errors.Is(err, session.ErrOutOfStock):
		return "This product is out of stock"
	case errors.Is(err, session.ErrNoSelection):
		return "Open a product before adding it to the cart"
	case errors.Is(err, catalog.ErrInvalidFilter):
		return "Unknown category"
	default:
		return err.Error()
	}
}

// handleKeyPress handles keyboard input
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	key := msg.String()

	switch key {
	case "q", "ctrl+c":
		return m.quit()
	case "?":
		m.showHelp = !m.showHelp
		return m, nil
	}

	if m.snap.MenuOpen {
		return m, m.handleMenuKey(key)
	}

	if n, err := strconv.Atoi(key); err == nil {
		return m, m.selectPosition(n)
	}

	switch key {
	case "m":
		m.menuCursor = m.currentPosition()
		return m, m.dispatch(session.ToggleMenu{})
	case "r":
		return m, m.dispatch(session.Reload{})
	case "c":
		return m, m.dispatch(session.NavigateCart{})
	case "h", "esc", "backspace":
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		return m, m.dispatch(session.NavigateHome{})
	case "a":
		return m, m.dispatch(session.AddToCart{})
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		m.cursor++
		m.clampCursor()
	case "enter", " ":
		return m, m.openSelected()
	}
	return m, nil
}

// handleMenuKey drives the open category menu
func (m *Model) handleMenuKey(key string) tea.Cmd {
	switch key {
	case "m", "esc":
		return m.dispatch(session.ToggleMenu{})
	case "up", "k":
		if m.menuCursor > 0 {
			m.menuCursor--
		}
	case "down", "j":
		if m.menuCursor < len(m.snap.Categories) {
			m.menuCursor++
		}
	case "enter", " ":
		return m.selectPosition(m.menuCursor)
	default:
		if n, err := strconv.Atoi(key); err == nil {
			return m.selectPosition(n)
		}
	}
	return nil
}

// selectPosition selects the category at a menu position, 0 being all
func (m *Model) selectPosition(n int) tea.Cmd {
	filter := catalog.All
	if n > 0 {
		if n > len(m.snap.Categories) {
			m.notice = "No category " + strconv.Itoa(n)
			return nil
		}
		filter = catalog.Filter(m.snap.Categories[n-1])
	}
	return m.dispatch(session.SelectCategory{Filter: filter})
}

// currentPosition returns the menu position of the active filter
func (m *Model) currentPosition() int {
	for i, c := range m.snap.Categories {
		if catalog.Filter(c) == m.snap.Filter {
			return i + 1
		}
	}
	return 0
}

// openSelected opens the product under the cursor on the home view
func (m *Model) openSelected() tea.Cmd {
	if m.snap.View != session.ViewHome || m.cursor >= len(m.snap.Products) {
		return nil
	}
	return m.dispatch(session.OpenProduct{Product: m.snap.Products[m.cursor]})
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.snap.Products) {
		m.cursor = len(m.snap.Products) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	return m, tea.Quit
}
