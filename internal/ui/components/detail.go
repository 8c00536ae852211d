package components

import (
	"github.com/charmbracelet/lipgloss"
)

// DetailViewer shows titled sections of text in a panel
type DetailViewer struct {
	Title   string
	Content []DetailSection
	Width   int
	Height  int
}

// DetailSection represents a section in the detail view
type DetailSection struct {
	Title   string
	Content []string
	Style   string // "info", "warning", "error", "success"
}

// NewDetailViewer creates a new detail viewer
func NewDetailViewer(title string, width, height int) *DetailViewer {
	return &DetailViewer{
		Title:  title,
		Width:  width,
		Height: height,
	}
}

// AddSection adds a section to the detail view
func (d *DetailViewer) AddSection(section DetailSection) {
	d.Content = append(d.Content, section)
}

// Clear clears all content
func (d *DetailViewer) Clear() {
	d.Content = d.Content[:0]
}

// Render renders the detail viewer
func (d *DetailViewer) Render() string {
	headerColor := lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"}
	borderColor := lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#374151"}

	content := make([]string, 0, len(d.Content)*2+2)
	content = append(content, lipgloss.NewStyle().Foreground(headerColor).Bold(true).Render(d.Title), "")

	for _, section := range d.Content {
		content = append(content, d.renderSection(section)...)
		content = append(content, "")
	}

	joined := lipgloss.JoinVertical(lipgloss.Left, content...)
	panel := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		Padding(0, 1)
	if d.Width > 0 {
		panel = panel.Width(d.Width)
	}
	return panel.Render(joined)
}

// renderSection renders a detail section
func (d *DetailViewer) renderSection(section DetailSection) []string {
	bodyColor := lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F9FAFB"}

	var titleColor lipgloss.AdaptiveColor
	switch section.Style {
	case "success":
		titleColor = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"}
	case "warning":
		titleColor = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"}
	case "error":
		titleColor = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"}
	case "info":
		titleColor = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#06B6D4"}
	default:
		titleColor = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	}

	lines := make([]string, 0, len(section.Content)+1)
	lines = append(lines, lipgloss.NewStyle().Foreground(titleColor).Bold(true).Render(section.Title))

	bodyStyle := lipgloss.NewStyle().Foreground(bodyColor)
	for _, line := range section.Content {
		lines = append(lines, bodyStyle.Render("  "+line))
	}

	return lines
}
