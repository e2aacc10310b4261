// Package assignmentlist is the assignment list container. It owns the
// authoritative assignment collection, which is always the last
// successful server snapshot, and the per-item presentation state
// machines layered on top of it.
package assignmentlist

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dcheng/assignment-tracker/internal/api"
	"github.com/dcheng/assignment-tracker/internal/identity"
	"github.com/dcheng/assignment-tracker/internal/keys"
	"github.com/dcheng/assignment-tracker/internal/model"
	"github.com/dcheng/assignment-tracker/internal/theme"
)

// mutationOp identifies which mutation produced a result message.
type mutationOp string

const (
	opSave   mutationOp = "save"
	opDelete mutationOp = "delete"
)

// collectionLoadedMsg carries the result of the initial fetch.
type collectionLoadedMsg struct {
	seq         uint64
	assignments []model.Assignment
	err         error
}

// mutationDoneMsg carries the result of a save or delete request. On
// success it holds the server's full updated collection.
type mutationDoneMsg struct {
	seq         uint64
	op          mutationOp
	id          string
	assignments []model.Assignment
	err         error
}

// Model is the assignment list view component.
type Model struct {
	client *api.Client
	user   *identity.User
	keys   *keys.KeyMap

	// assignments is the authoritative collection: the last successful
	// server snapshot, replaced wholesale by adopt and by nothing else.
	assignments []model.Assignment

	// states holds the transient per-item presentation state, keyed by
	// assignment ID.
	states map[string]*ItemState

	cursor  int
	loading bool
	spinner spinner.Model

	// seq numbers outgoing requests. A result whose sequence does not
	// match the latest issued request is stale and must be ignored, so
	// late continuations can never act on current state.
	seq uint64

	width  int
	height int

	// now is injectable for tests; schedule status is evaluated fresh
	// on every render.
	now func() time.Time
}

// New creates a new assignment list model. The user may be nil when no
// session exists; mutations are then logged and abandoned.
func New(client *api.Client, user *identity.User, k *keys.KeyMap, width, height int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.ColorBlue)

	return Model{
		client:  client,
		user:    user,
		keys:    k,
		states:  make(map[string]*ItemState),
		loading: true,
		spinner: sp,
		width:   width,
		height:  height,
		now:     time.Now,
	}
}

// Init fetches the collection once and starts the loading spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

// SetUser swaps the injected session. A nil user disables mutations.
func (m *Model) SetUser(user *identity.User) {
	m.user = user
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// ReplaceCollection adopts a server snapshot produced outside this
// view, such as the collection returned by the creation flow.
func (m *Model) ReplaceCollection(assignments []model.Assignment) {
	m.adopt(assignments)
}

// Reload refetches the collection from the server.
func (m *Model) Reload() tea.Cmd {
	m.loading = true
	return tea.Batch(m.spinner.Tick, m.load())
}

// Update handles messages for the assignment list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case collectionLoadedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			log.Printf("loading assignments failed: %v", msg.err)
			return m, nil
		}
		m.adopt(msg.assignments)
		return m, nil

	case mutationDoneMsg:
		// A result from a superseded request must not touch state.
		if msg.seq != m.seq {
			return m, nil
		}
		if msg.err != nil {
			log.Printf("assignment %s: %s failed: %v", msg.id, msg.op, msg.err)
			return m, nil
		}
		m.adopt(msg.assignments)
		if msg.op == opSave {
			if st, ok := m.states[msg.id]; ok {
				st.Saved()
			}
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	return m, nil
}

// handleKeys drives cursor movement and the selected item's state
// machine.
func (m Model) handleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.assignments)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Toggle):
		if _, st, ok := m.selected(); ok {
			st.Toggle()
		}

	case key.Matches(msg, m.keys.StartEdit):
		if a, st, ok := m.selected(); ok && st.Expanded() {
			st.StartEdit(a.Progress)
		}

	case key.Matches(msg, m.keys.SliderUp):
		if _, st, ok := m.selected(); ok {
			st.Adjust(sliderStep)
		}

	case key.Matches(msg, m.keys.SliderDown):
		if _, st, ok := m.selected(); ok {
			st.Adjust(-sliderStep)
		}

	case key.Matches(msg, m.keys.Save):
		return m, m.saveSelected()

	case key.Matches(msg, m.keys.Cancel):
		if _, st, ok := m.selected(); ok {
			st.Cancel()
		}

	case key.Matches(msg, m.keys.Delete):
		return m, m.deleteSelected()
	}

	return m, nil
}

// selected returns the assignment under the cursor and its state.
func (m *Model) selected() (model.Assignment, *ItemState, bool) {
	if m.cursor < 0 || m.cursor >= len(m.assignments) {
		return model.Assignment{}, nil, false
	}
	a := m.assignments[m.cursor]
	st, ok := m.states[a.ID]
	if !ok {
		return model.Assignment{}, nil, false
	}
	return a, st, true
}

// adopt is the single reconciliation point: it replaces the
// authoritative collection with a server snapshot and prunes item
// state for records the server no longer returns.
func (m *Model) adopt(snapshot []model.Assignment) {
	m.assignments = snapshot

	seen := make(map[string]bool, len(snapshot))
	for _, a := range snapshot {
		seen[a.ID] = true
		if _, ok := m.states[a.ID]; !ok {
			m.states[a.ID] = &ItemState{}
		}
	}
	for id := range m.states {
		if !seen[id] {
			delete(m.states, id)
		}
	}

	if m.cursor >= len(m.assignments) {
		m.cursor = len(m.assignments) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// load returns a command that fetches the full collection.
func (m *Model) load() tea.Cmd {
	m.seq++
	seq := m.seq
	client := m.client
	return func() tea.Msg {
		assignments, err := client.ListAssignments(context.Background())
		return collectionLoadedMsg{seq: seq, assignments: assignments, err: err}
	}
}

// saveSelected issues the progress-update operation with the pending
// slider value. This is the only path by which the pending value
// reaches the server.
func (m *Model) saveSelected() tea.Cmd {
	a, st, ok := m.selected()
	if !ok || !st.Editing() {
		return nil
	}

	m.seq++
	seq := m.seq
	client := m.client
	user := m.user
	id := a.ID
	pending := st.Pending()

	return func() tea.Msg {
		if user == nil {
			return mutationDoneMsg{seq: seq, op: opSave, id: id, err: identity.ErrNoSession}
		}
		ctx := context.Background()
		token, err := user.IDToken(ctx)
		if err != nil {
			return mutationDoneMsg{seq: seq, op: opSave, id: id, err: err}
		}
		assignments, err := client.UpdateAssignment(ctx, id, pending, token)
		return mutationDoneMsg{seq: seq, op: opSave, id: id, assignments: assignments, err: err}
	}
}

// deleteSelected issues the delete operation for the item under the
// cursor. Deletion is offered from the expanded read-only view.
func (m *Model) deleteSelected() tea.Cmd {
	a, st, ok := m.selected()
	if !ok || !st.Expanded() || st.Editing() {
		return nil
	}

	m.seq++
	seq := m.seq
	client := m.client
	user := m.user
	id := a.ID

	return func() tea.Msg {
		if user == nil {
			return mutationDoneMsg{seq: seq, op: opDelete, id: id, err: identity.ErrNoSession}
		}
		ctx := context.Background()
		token, err := user.IDToken(ctx)
		if err != nil {
			return mutationDoneMsg{seq: seq, op: opDelete, id: id, err: err}
		}
		assignments, err := client.DeleteAssignment(ctx, id, token)
		return mutationDoneMsg{seq: seq, op: opDelete, id: id, assignments: assignments, err: err}
	}
}

// View renders the assignment list.
func (m Model) View() string {
	if m.loading {
		loadingStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return loadingStyle.Render(m.spinner.View() + " Loading assignments...")
	}

	if len(m.assignments) == 0 {
		return m.renderEmptyState()
	}

	now := m.now()

	sections := []string{m.renderHeader(), ""}
	for i, a := range m.assignments {
		st := m.states[a.ID]
		sections = append(sections, renderItem(a, st, i == m.cursor, now, m.width))
	}

	return m.clipToHeight(sections)
}

// renderHeader shows the collection summary line from the original
// "Active" header: item count and total estimated hours.
func (m Model) renderHeader() string {
	count := len(m.assignments)
	hours := model.TotalEstimate(m.assignments)

	noun := "assignments"
	if count == 1 {
		noun = "assignment"
	}
	unit := "hours"
	if hours == 1 {
		unit = "hour"
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite).Render("Active")
	summary := theme.DimmedStyle.Render(
		fmt.Sprintf("%d %s, %v %s", count, noun, hours, unit),
	)
	return lipgloss.JoinVertical(lipgloss.Left, title, summary)
}

// renderEmptyState shows guidance text when no assignments exist.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	return style.Render("No assignments.\n\nPress n to create one.")
}

// clipToHeight drops leading blocks until the cursor's block fits in
// the content area. Collections are personal-scale, so a simple window
// is enough.
func (m Model) clipToHeight(sections []string) string {
	joined := lipgloss.JoinVertical(lipgloss.Left, sections...)
	lines := strings.Split(joined, "\n")
	if len(lines) <= m.height || m.height <= 0 {
		return joined
	}

	// Count lines up to and including the cursor's block; the first two
	// sections are the header and a spacer.
	cursorEnd := 0
	for i, s := range sections {
		cursorEnd += lipgloss.Height(s)
		if i == m.cursor+2 {
			break
		}
	}

	start := 0
	if cursorEnd > m.height {
		start = cursorEnd - m.height
	}
	end := start + m.height
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[start:end], "\n")
}
