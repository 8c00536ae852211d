package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner represents a spinning progress indicator
type Spinner struct {
	Frame     int
	StartTime time.Time
	Label     string
}

// NewSpinner creates a new spinner
func NewSpinner() *Spinner {
	return &Spinner{
		StartTime: time.Now(),
	}
}

// SetLabel sets the spinner label
func (s *Spinner) SetLabel(label string) {
	s.Label = label
}

// Tick advances the spinner animation
func (s *Spinner) Tick() {
	s.Frame = (s.Frame + 1) % len(spinnerFrames)
}

// Reset restarts the elapsed time
func (s *Spinner) Reset() {
	s.StartTime = time.Now()
}

// Render renders the spinner
func (s *Spinner) Render() string {
	progressStyle := lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"}).Bold(true)
	spinner := progressStyle.Render(spinnerFrames[s.Frame%len(spinnerFrames)])

	if s.Label != "" {
		return fmt.Sprintf("%s %s", spinner, s.Label)
	}

	return spinner
}
