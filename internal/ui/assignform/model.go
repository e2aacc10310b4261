// Package assignform is the new-assignment creation form. It stages a
// draft locally and hands the parent a single creation request on
// submit; the parent owns the network call and the reconciliation of
// the returned collection.
package assignform

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/dcheng/assignment-tracker/internal/model"
	"github.com/dcheng/assignment-tracker/internal/theme"
)

// dateTimeLayout is the input format for the date fields.
const dateTimeLayout = "2006-01-02 15:04"

// SubmitMsg is dispatched when the form completes with a staged draft.
type SubmitMsg struct {
	Draft model.AssignmentDraft
}

// CancelMsg is dispatched when the user abandons the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's
// Value() pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name         string
	description  string
	estimate     string
	assignedDate string
	dueDate      string
}

// Model is the Bubble Tea model for the assignment creation form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	width  int
	height int

	// submitted latches once the completed form has been dispatched, so
	// messages arriving while the request is in flight cannot emit a
	// second submission.
	submitted bool
}

// New creates a new assignment form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{estimate: "0"},
		width:  width,
		height: height,
	}
}

// Start initializes the form with default draft values: estimate 0,
// dates unset.
func (m *Model) Start() tea.Cmd {
	m.fb.name = ""
	m.fb.description = ""
	m.fb.estimate = "0"
	m.fb.assignedDate = ""
	m.fb.dueDate = ""
	m.submitted = false
	m.form = m.buildForm()
	return m.form.Init()
}

// Reopen rebuilds the form with the staged field values intact, so a
// failed submission keeps the draft on screen for another attempt.
func (m *Model) Reopen() tea.Cmd {
	m.submitted = false
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		if m.submitted {
			return m, nil
		}
		m.submitted = true
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		if m.submitted {
			return m, nil
		}
		m.submitted = true
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("New Assignment") + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Assignment").
				Placeholder("What is it?").
				Value(&m.fb.name).
				Validate(validateRequired("Assignment")),
			huh.NewText().
				Title("Description").
				Placeholder("A short description...").
				Value(&m.fb.description),
			huh.NewInput().
				Title("Estimated Hours").
				Placeholder("0-20, in half-hour steps").
				Value(&m.fb.estimate).
				Validate(validateEstimate),
			huh.NewInput().
				Title("Assigned Date").
				Placeholder("YYYY-MM-DD HH:MM (optional)").
				Value(&m.fb.assignedDate).
				Validate(validateOptionalDateTime),
			huh.NewInput().
				Title("Due Date").
				Placeholder("YYYY-MM-DD HH:MM (optional)").
				Value(&m.fb.dueDate).
				Validate(validateOptionalDateTime),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

// handleSubmit assembles the staged fields into a draft. Whether the
// assigned date precedes the due date is left to the server; the
// client does not validate it.
func (m Model) handleSubmit() tea.Cmd {
	draft := model.AssignmentDraft{
		Name:        m.fb.name,
		Description: m.fb.description,
	}

	if est, err := strconv.ParseFloat(strings.TrimSpace(m.fb.estimate), 64); err == nil {
		draft.Estimate = est
	}
	if t, err := time.Parse(dateTimeLayout, strings.TrimSpace(m.fb.assignedDate)); err == nil {
		draft.AssignedDate = t
	}
	if t, err := time.Parse(dateTimeLayout, strings.TrimSpace(m.fb.dueDate)); err == nil {
		draft.DueDate = t
	}

	return func() tea.Msg { return SubmitMsg{Draft: draft} }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

// validateEstimate mirrors the original slider's constraints: 0 to 20
// hours in half-hour steps.
func validateEstimate(s string) error {
	est, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("estimate must be a number of hours")
	}
	if est < 0 || est > 20 {
		return fmt.Errorf("estimate must be between 0 and 20")
	}
	if est*2 != float64(int(est*2)) {
		return fmt.Errorf("estimate must be in half-hour steps")
	}
	return nil
}

func validateOptionalDateTime(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse(dateTimeLayout, s); err != nil {
		return fmt.Errorf("invalid date, use YYYY-MM-DD HH:MM")
	}
	return nil
}
