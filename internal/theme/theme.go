package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dcheng/assignment-tracker/internal/schedule"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen  = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed    = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite  = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// DimmedStyle de-emphasizes completed items.
var DimmedStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// UrgentStyle flags due dates with less than a day of span remaining.
var UrgentStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorRed)

// ExpandedBodyStyle indents the expanded portion of an assignment card.
var ExpandedBodyStyle = lipgloss.NewStyle().
	PaddingLeft(4).
	PaddingRight(2)

// PanelStyle wraps overlay content such as the help view.
var PanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// StatusColor returns the display color for a schedule status.
func StatusColor(st schedule.Status) lipgloss.AdaptiveColor {
	switch st {
	case schedule.Ahead:
		return ColorGreen
	case schedule.Behind:
		return ColorRed
	default:
		return ColorYellow
	}
}

// StatusStyle returns a color-coded style for the given schedule status.
func StatusStyle(st schedule.Status) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(StatusColor(st))
}

// StatusFill returns a solid fill color for progress bars, keyed by
// schedule status. Bars need concrete hex values, so this picks the
// dark-terminal variant.
func StatusFill(st schedule.Status) string {
	return StatusColor(st).Dark
}
