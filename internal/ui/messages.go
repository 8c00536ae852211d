package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/storefront/internal/catalog"
)

// Runner settles issued catalog requests. *catalog.Loader implements it.
type Runner interface {
	Load(ctx context.Context, req catalog.Request) catalog.Result
}

// loadResultMsg carries a settled catalog request back to Update
type loadResultMsg struct {
	result catalog.Result
}

// fixtureChangedMsg reports an edit to the watched catalog fixture
type fixtureChangedMsg struct{}

type tickMsg time.Time

// tick drives the loading spinner
func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// loadCommand runs req off the event loop and reports its result
func loadCommand(ctx context.Context, runner Runner, req catalog.Request) tea.Cmd {
	return func() tea.Msg {
		return loadResultMsg{result: runner.Load(ctx, req)}
	}
}

// watchCommand waits for the next fixture change. It yields nil once the
// channel is closed, which ends the watch.
func watchCommand(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return fixtureChangedMsg{}
	}
}
