package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// SummaryBox creates a summary information box
type SummaryBox struct {
	Title   string
	Content []string
	Width   int
}

// NewSummaryBox creates a new summary box
func NewSummaryBox(title string, width int) *SummaryBox {
	return &SummaryBox{
		Title: title,
		Width: width,
	}
}

// AddLine adds a line to the summary
func (s *SummaryBox) AddLine(line string) {
	s.Content = append(s.Content, line)
}

// AddKeyValue adds a key-value pair to the summary
func (s *SummaryBox) AddKeyValue(key, value string) {
	s.Content = append(s.Content, fmt.Sprintf("%-10s: %s", key, value))
}

// Render renders the summary box
func (s *SummaryBox) Render() string {
	headerColor := lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"}
	bodyColor := lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}

	headerStyle := lipgloss.NewStyle().Foreground(headerColor).Bold(true)
	boxStyle := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(bodyColor).Padding(0, 1)

	content := make([]string, 0, len(s.Content)+2)
	content = append(content, headerStyle.Render(s.Title), "")

	bodyStyle := lipgloss.NewStyle().Foreground(bodyColor)
	for _, line := range s.Content {
		content = append(content, bodyStyle.Render(line))
	}

	joined := lipgloss.JoinVertical(lipgloss.Left, content...)
	if s.Width > 0 {
		boxStyle = boxStyle.Width(s.Width)
	}
	return boxStyle.Render(joined)
}
