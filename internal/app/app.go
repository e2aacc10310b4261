// Package app holds the root Bubble Tea model: view routing, layout,
// and the wiring between the forms, the list containers, and the
// remote collaborators.
package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dcheng/assignment-tracker/internal/api"
	"github.com/dcheng/assignment-tracker/internal/identity"
	"github.com/dcheng/assignment-tracker/internal/keys"
	"github.com/dcheng/assignment-tracker/internal/ui"
	"github.com/dcheng/assignment-tracker/internal/ui/assignform"
	"github.com/dcheng/assignment-tracker/internal/ui/assignmentlist"
	helpview "github.com/dcheng/assignment-tracker/internal/ui/help"
	"github.com/dcheng/assignment-tracker/internal/ui/signin"
	"github.com/dcheng/assignment-tracker/internal/ui/todolist"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewAssignments ViewState = iota
	ViewTodos
	ViewNewAssignment
	ViewSignIn
	ViewHelp
)

// Model is the root Bubble Tea model that manages view routing, layout,
// and the shared session.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	keys         *keys.KeyMap

	client *api.Client
	ids    *identity.Service

	// user is the injected session; nil while signed out. It is passed
	// down to every component that issues mutating requests.
	user *identity.User

	assignmentList assignmentlist.Model
	todoList       todolist.Model
	formView       assignform.Model
	signInView     signin.Model
	helpView       helpview.Model

	ready bool

	// initCmd carries the sign-in form startup command from New to Init.
	initCmd tea.Cmd
}

// New creates the root application model. A nil user starts the app on
// the sign-in view; browsing still works without a session.
func New(client *api.Client, ids *identity.Service, user *identity.User) Model {
	k := keys.DefaultKeyMap()

	m := Model{
		currentView:    ViewAssignments,
		keys:           k,
		client:         client,
		ids:            ids,
		user:           user,
		assignmentList: assignmentlist.New(client, user, k, 80, 24),
		todoList:       todolist.New(client, user, k, 80, 24),
		formView:       assignform.New(80, 24),
		signInView:     signin.New(80, 24),
		helpView:       helpview.New(k, 80, 24),
	}

	if user == nil {
		m.currentView = ViewSignIn
		m.initCmd = m.signInView.Start()
	}

	return m
}

// Init loads both collections and, when signed out, starts the sign-in
// form.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.assignmentList.Init(),
		m.todoList.Init(),
		m.initCmd,
	)
}

// setUser swaps the session on every component that needs it.
func (m *Model) setUser(user *identity.User) {
	m.user = user
	m.assignmentList.SetUser(user)
	m.todoList.SetUser(user)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.assignmentList.SetSize(contentWidth, contentHeight)
		m.todoList.SetSize(contentWidth, contentHeight)
		m.formView.SetSize(contentWidth, contentHeight)
		m.signInView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		// Forward to the active view so huh forms can lay themselves out.
		return m.updateActiveView(msg)

	case signin.SubmitMsg:
		return m, m.signIn(msg.Email, msg.Password)

	case signin.SkipMsg:
		m.currentView = ViewAssignments
		return m, nil

	case signInResultMsg:
		return m.handleSignInResult(msg)

	case signOutDoneMsg:
		m.setUser(nil)
		m.currentView = ViewSignIn
		return m, m.signInView.Start()

	case assignform.SubmitMsg:
		// Creation is gated on an authenticated identity; without one
		// the submission is a silent no-op and the form stays open.
		if m.user == nil {
			return m, m.restartFormAfterNoSession()
		}
		return m, m.createAssignment(msg.Draft)

	case assignform.CancelMsg:
		m.currentView = ViewAssignments
		return m, nil

	case assignmentCreatedMsg:
		return m.handleAssignmentCreated(msg)

	case tea.KeyMsg:
		if model, cmd, handled := m.handleGlobalKeys(msg); handled {
			return model, cmd
		}
	}

	return m.updateActiveView(msg)
}

// handleGlobalKeys processes keys that work across views. Keys are only
// intercepted where text inputs cannot own them.
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	browsing := m.currentView == ViewAssignments || m.currentView == ViewTodos
	typing := m.currentView == ViewTodos && m.todoList.InputActive()

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit, true

	case "q":
		if browsing && !typing {
			return m, tea.Quit, true
		}

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil, true
		}
		if browsing && !typing {
			m.previousView = m.currentView
			m.currentView = ViewHelp
			return m, nil, true
		}

	case "n":
		if m.currentView == ViewAssignments {
			m.previousView = m.currentView
			m.currentView = ViewNewAssignment
			return m, m.formView.Start(), true
		}

	case "t":
		if m.currentView == ViewAssignments {
			m.previousView = m.currentView
			m.currentView = ViewTodos
			return m, nil, true
		}

	case "r":
		if m.currentView == ViewAssignments {
			return m, m.assignmentList.Reload(), true
		}

	case "O":
		if browsing && !typing && m.user != nil {
			return m, m.signOut(), true
		}

	case "esc":
		switch m.currentView {
		case ViewHelp:
			m.currentView = m.previousView
			return m, nil, true
		case ViewTodos:
			if !m.todoList.InputActive() {
				m.currentView = ViewAssignments
				return m, nil, true
			}
		}
	}

	return m, nil, false
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewAssignments:
		m.assignmentList, cmd = m.assignmentList.Update(msg)
	case ViewTodos:
		m.todoList, cmd = m.todoList.Update(msg)
	case ViewNewAssignment:
		m.formView, cmd = m.formView.Update(msg)
	case ViewSignIn:
		m.signInView, cmd = m.signInView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Assignment Tracker", m.sessionStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewAssignments:
		return m.assignmentList.View()
	case ViewTodos:
		return m.todoList.View()
	case ViewNewAssignment:
		return m.formView.View()
	case ViewSignIn:
		return m.signInView.View()
	case ViewHelp:
		return m.helpView.View()
	default:
		return ""
	}
}

// sessionStatus describes the current session for the header.
func (m Model) sessionStatus() string {
	if m.user == nil {
		return "not signed in"
	}
	if m.user.Email != "" {
		return fmt.Sprintf("signed in as %s", m.user.Email)
	}
	return "signed in"
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewNewAssignment:
		return "enter submit | esc cancel"
	case ViewSignIn:
		return "enter sign in | esc skip"
	case ViewTodos:
		if m.todoList.InputActive() {
			return "enter submit | esc cancel"
		}
		return "n new | u edit | d delete | esc back"
	default:
		return "q quit | ? help | n new | t to-dos | r refresh | enter expand"
	}
}
