// Package signin is the identity sign-in form. It stages credentials
// and hands them to the parent; the parent performs the provider
// exchange and owns the resulting session.
package signin

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/dcheng/assignment-tracker/internal/theme"
)

// SubmitMsg is dispatched when the user submits credentials.
type SubmitMsg struct {
	Email    string
	Password string
}

// SkipMsg is dispatched when the user continues without signing in.
// Browsing works unauthenticated; mutations will be no-ops.
type SkipMsg struct{}

// formBindings holds field values on the heap so huh's Value() pointers
// survive Bubble Tea model copies.
type formBindings struct {
	email    string
	password string
}

// Model is the sign-in form view.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	width  int
	height int

	// submitted latches once the completed form has been dispatched, so
	// messages arriving during the credential exchange cannot trigger a
	// second one.
	submitted bool
}

// New creates a new sign-in form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start initializes a fresh form.
func (m *Model) Start() tea.Cmd {
	m.fb.email = ""
	m.fb.password = ""
	m.submitted = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&m.fb.email).
				Validate(func(s string) error {
					if !strings.Contains(s, "@") {
						return fmt.Errorf("enter a valid email address")
					}
					return nil
				}),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password),
		),
	).WithWidth(m.formWidth())
	return m.form.Init()
}

// Update handles messages for the sign-in form.
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
		email, password := m.fb.email, m.fb.password
		return m, func() tea.Msg {
			return SubmitMsg{Email: email, Password: password}
		}
	}
	if m.form.State == huh.StateAborted {
		if m.submitted {
			return m, nil
		}
		m.submitted = true
		return m, func() tea.Msg { return SkipMsg{} }
	}

	return m, cmd
}

// View renders the sign-in form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	hint := theme.DimmedStyle.Render("esc to browse without signing in")

	return lipgloss.NewStyle().Padding(1, 2).Render(
		lipgloss.JoinVertical(
			lipgloss.Left,
			titleStyle.Render("Sign In"),
			m.form.View(),
			hint,
		),
	)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 80 {
		w = 80
	}
	return w
}
