package assignmentlist

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/dcheng/assignment-tracker/internal/model"
	"github.com/dcheng/assignment-tracker/internal/schedule"
	"github.com/dcheng/assignment-tracker/internal/theme"
)

const barWidth = 24

// renderItem draws one assignment card: a summary line, plus the
// expanded body when the item state calls for it. Schedule status is
// recomputed from now on every render.
func renderItem(a model.Assignment, st *ItemState, selected bool, now time.Time, width int) string {
	status := schedule.Classify(a.Progress, a.AssignedDate, a.DueDate, a.Complete, now)

	// While editing, the bar tracks the staged slider value.
	shown := a.Progress
	if st.Editing() {
		shown = st.Pending()
	}

	line := summaryLine(a, status, shown, now)
	if selected {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	if !st.Expanded() {
		return line
	}

	body := expandedBody(a, st, status, now, width)
	return lipgloss.JoinVertical(lipgloss.Left, line, body)
}

// summaryLine renders the collapsed view: progress bar, name, percent,
// and the due date with an urgency flag when less than a day of the
// allotted span remains.
func summaryLine(a model.Assignment, status schedule.Status, shown float64, now time.Time) string {
	bar := progress.New(
		progress.WithSolidFill(theme.StatusFill(status)),
		progress.WithoutPercentage(),
	)
	bar.Width = barWidth

	name := a.Name
	if a.Complete {
		name = theme.DimmedStyle.Render(name)
	} else {
		name = lipgloss.NewStyle().Foreground(theme.ColorWhite).Render(name)
	}

	percent := theme.StatusStyle(status).Render(fmt.Sprintf("%3.0f%%", shown))

	due := a.DueDate.Format("Mon Jan 2, 3:04 PM")
	elapsed := schedule.ElapsedDays(a.AssignedDate, now)
	if schedule.NearDeadline(a.TotalDays, elapsed, a.Complete) {
		due = theme.UrgentStyle.Render("due " + due)
	} else {
		due = theme.DimmedStyle.Render("due " + due)
	}

	return fmt.Sprintf("%s %s %s  %s", bar.ViewAs(shown/100), percent, name, due)
}

// expandedBody renders the description, schedule details, and either
// the action hints or the live slider gauge.
func expandedBody(a model.Assignment, st *ItemState, status schedule.Status, now time.Time, width int) string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)

	var sections []string

	if a.Description != "" {
		sections = append(sections, valStyle.Render(a.Description))
		sections = append(sections, "")
	}

	sections = append(sections, fmt.Sprintf(
		"%s %s",
		labelStyle.Render("Assigned:"),
		valStyle.Render(a.AssignedDate.Format("2006-01-02 15:04")),
	))
	sections = append(sections, fmt.Sprintf(
		"%s %s",
		labelStyle.Render("Estimate:"),
		valStyle.Render(fmt.Sprintf("%v h", a.Estimate)),
	))

	elapsed := schedule.ElapsedDays(a.AssignedDate, now)
	sections = append(sections, fmt.Sprintf(
		"%s %s  %s",
		labelStyle.Render("Day"),
		valStyle.Render(fmt.Sprintf("%.2f of %.0f", elapsed, a.TotalDays)),
		theme.StatusStyle(status).Render(statusLabel(status)),
	))

	sections = append(sections, "")
	if st.Editing() {
		sections = append(sections, sliderGauge(st.Pending(), status))
		sections = append(sections, theme.DimmedStyle.Render("h/l adjust | s save | c cancel"))
	} else {
		sections = append(sections, theme.DimmedStyle.Render("u update progress | d remove | enter collapse"))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	maxWidth := width - 6
	if maxWidth > 0 {
		body = lipgloss.NewStyle().MaxWidth(maxWidth).Render(body)
	}
	return theme.ExpandedBodyStyle.Render(body)
}

// sliderGauge renders the pending-progress slider as a bracketed track
// with a handle.
func sliderGauge(pending float64, status schedule.Status) string {
	const track = 40
	pos := int(pending / 100 * track)
	if pos >= track {
		pos = track - 1
	}

	var b strings.Builder
	b.WriteString("[")
	for i := 0; i < track; i++ {
		if i == pos {
			b.WriteString("●")
		} else {
			b.WriteString("─")
		}
	}
	b.WriteString("]")

	gauge := theme.StatusStyle(status).Render(b.String())
	return fmt.Sprintf("%s %3.0f%%", gauge, pending)
}

// statusLabel returns the display word for a schedule status.
func statusLabel(st schedule.Status) string {
	switch st {
	case schedule.Ahead:
		return "ahead"
	case schedule.Behind:
		return "behind"
	default:
		return "on time"
	}
}
