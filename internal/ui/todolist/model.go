// Package todolist is the to-do list container. It follows the same
// server-driven reconciliation pattern as the assignment list: the
// collection is fetched once, and every successful mutation replaces
// it wholesale with the server's response.
package todolist

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dcheng/assignment-tracker/internal/api"
	"github.com/dcheng/assignment-tracker/internal/identity"
	"github.com/dcheng/assignment-tracker/internal/keys"
	"github.com/dcheng/assignment-tracker/internal/model"
	"github.com/dcheng/assignment-tracker/internal/theme"
)

// inputMode says what the text input is staging.
type inputMode int

const (
	inputHidden inputMode = iota
	inputCreate
	inputEdit
)

type mutationOp string

const (
	opCreate mutationOp = "create"
	opUpdate mutationOp = "update"
	opDelete mutationOp = "delete"
)

// todosLoadedMsg carries the result of the initial fetch.
type todosLoadedMsg struct {
	seq   uint64
	todos []model.Todo
	err   error
}

// mutationDoneMsg carries the result of a mutation. On success it
// holds the server's full updated collection.
type mutationDoneMsg struct {
	seq   uint64
	op    mutationOp
	todos []model.Todo
	err   error
}

// Model is the to-do list view component.
type Model struct {
	client *api.Client
	user   *identity.User
	keys   *keys.KeyMap

	// todos is the authoritative collection, replaced only by adopt.
	todos []model.Todo

	cursor int
	mode   inputMode
	editID string
	input  textinput.Model

	seq     uint64
	loading bool

	width  int
	height int
}

// New creates a new to-do list model.
func New(client *api.Client, user *identity.User, k *keys.KeyMap, width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "what needs doing?"
	ti.Prompt = "> "
	ti.CharLimit = 200
	ti.Width = width - 6

	return Model{
		client:  client,
		user:    user,
		keys:    k,
		input:   ti,
		loading: true,
		width:   width,
		height:  height,
	}
}

// Init fetches the to-do collection once.
func (m Model) Init() tea.Cmd {
	return m.load()
}

// SetUser swaps the injected session.
func (m *Model) SetUser(user *identity.User) {
	m.user = user
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// InputActive reports whether the text input currently owns the
// keyboard, so the parent leaves esc alone.
func (m Model) InputActive() bool {
	return m.mode != inputHidden
}

// Update handles messages for the to-do list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case todosLoadedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			log.Printf("loading todos failed: %v", msg.err)
			return m, nil
		}
		m.adopt(msg.todos)
		return m, nil

	case mutationDoneMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		if msg.err != nil {
			log.Printf("todo %s failed: %v", msg.op, msg.err)
			return m, nil
		}
		m.adopt(msg.todos)
		if msg.op == opCreate || msg.op == opUpdate {
			m.closeInput()
		}
		return m, nil

	case tea.KeyMsg:
		if m.mode != inputHidden {
			return m.handleInputKeys(msg)
		}
		return m.handleBrowseKeys(msg)
	}

	return m, nil
}

// handleInputKeys processes keys while the text input is staging a
// value.
func (m Model) handleInputKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		if value == "" {
			m.closeInput()
			return m, nil
		}
		if m.mode == inputEdit {
			return m, m.updateTodo(m.editID, value)
		}
		return m, m.createTodo(value)

	case "esc":
		m.closeInput()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleBrowseKeys processes keys in normal browsing mode.
func (m Model) handleBrowseKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.todos)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.New):
		m.mode = inputCreate
		m.input.Reset()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.StartEdit):
		if todo, ok := m.selected(); ok {
			m.mode = inputEdit
			m.editID = todo.ID
			m.input.SetValue(todo.Value)
			return m, m.input.Focus()
		}

	case key.Matches(msg, m.keys.Delete):
		if todo, ok := m.selected(); ok {
			return m, m.deleteTodo(todo.ID)
		}
	}

	return m, nil
}

// selected returns the to-do under the cursor.
func (m *Model) selected() (model.Todo, bool) {
	if m.cursor < 0 || m.cursor >= len(m.todos) {
		return model.Todo{}, false
	}
	return m.todos[m.cursor], true
}

// closeInput hides the text input and discards its staged value.
func (m *Model) closeInput() {
	m.mode = inputHidden
	m.editID = ""
	m.input.Reset()
	m.input.Blur()
}

// adopt replaces the authoritative collection with a server snapshot.
func (m *Model) adopt(snapshot []model.Todo) {
	m.todos = snapshot
	if m.cursor >= len(m.todos) {
		m.cursor = len(m.todos) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// load returns a command that fetches the full collection. The list
// endpoint is public, so no token is involved.
func (m *Model) load() tea.Cmd {
	m.seq++
	seq := m.seq
	client := m.client
	return func() tea.Msg {
		todos, err := client.ListTodos(context.Background())
		return todosLoadedMsg{seq: seq, todos: todos, err: err}
	}
}

// mutate wraps the token-then-request sequence shared by all three
// mutations. The token is re-acquired fresh for every call.
func (m *Model) mutate(
	op mutationOp,
	call func(ctx context.Context, token string) ([]model.Todo, error),
) tea.Cmd {
	m.seq++
	seq := m.seq
	user := m.user

	return func() tea.Msg {
		if user == nil {
			return mutationDoneMsg{seq: seq, op: op, err: identity.ErrNoSession}
		}
		ctx := context.Background()
		token, err := user.IDToken(ctx)
		if err != nil {
			return mutationDoneMsg{seq: seq, op: op, err: err}
		}
		todos, err := call(ctx, token)
		return mutationDoneMsg{seq: seq, op: op, todos: todos, err: err}
	}
}

func (m *Model) createTodo(value string) tea.Cmd {
	client := m.client
	return m.mutate(opCreate, func(ctx context.Context, token string) ([]model.Todo, error) {
		return client.CreateTodo(ctx, value, token)
	})
}

func (m *Model) updateTodo(id, value string) tea.Cmd {
	client := m.client
	return m.mutate(opUpdate, func(ctx context.Context, token string) ([]model.Todo, error) {
		return client.UpdateTodo(ctx, id, value, token)
	})
}

func (m *Model) deleteTodo(id string) tea.Cmd {
	client := m.client
	return m.mutate(opDelete, func(ctx context.Context, token string) ([]model.Todo, error) {
		return client.DeleteTodo(ctx, id, token)
	})
}

// View renders the to-do list.
func (m Model) View() string {
	if m.loading {
		style := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return style.Render("Loading to-dos...")
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite).Render("To-Dos")
	count := theme.DimmedStyle.Render(fmt.Sprintf("%d left", len(m.todos)))

	sections := []string{title, count, ""}

	if len(m.todos) == 0 && m.mode == inputHidden {
		sections = append(sections, theme.DimmedStyle.Render("Nothing here. Press n to add one."))
	}

	for i, todo := range m.todos {
		line := "○ " + todo.Value
		if i == m.cursor && m.mode == inputHidden {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		sections = append(sections, line)
	}

	if m.mode != inputHidden {
		sections = append(sections, "", m.input.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
