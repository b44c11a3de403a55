package console

import "github.com/charmbracelet/lipgloss"

var (
	colorGreen  = lipgloss.Color("#2E7D32")
	colorYellow = lipgloss.Color("#F9A825")
	colorOrange = lipgloss.Color("#EF6C00")
	colorRed    = lipgloss.Color("#C62828")
	colorBlue   = lipgloss.Color("#1565C0")
	colorMuted  = lipgloss.Color("#78909C")
)

// Styles groups the lipgloss styles used by every view.
type Styles struct {
	Title   lipgloss.Style
	Heading lipgloss.Style
	Label   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Danger  lipgloss.Style
	Card    lipgloss.Style
	Header  lipgloss.Style
	Cell    lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(colorBlue).MarginBottom(1),
		Heading: lipgloss.NewStyle().Bold(true).Underline(true),
		Label:   lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(colorMuted),
		Success: lipgloss.NewStyle().Foreground(colorGreen).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(colorYellow).Bold(true),
		Danger:  lipgloss.NewStyle().Foreground(colorRed).Bold(true),
		Card:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted).Padding(0, 1),
		Header:  lipgloss.NewStyle().Bold(true).Padding(0, 1),
		Cell:    lipgloss.NewStyle().Padding(0, 1),
	}
}

// RiskColor is the color of a risk level: green, yellow, orange, red.
func RiskColor(level string) lipgloss.Color {
	switch level {
	case "low":
		return colorGreen
	case "medium":
		return colorYellow
	case "high":
		return colorOrange
	case "critical":
		return colorRed
	default:
		return colorMuted
	}
}
