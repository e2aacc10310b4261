package todolist

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcheng/assignment-tracker/internal/keys"
	"github.com/dcheng/assignment-tracker/internal/model"
)

func newTestModel(todos []model.Todo) Model {
	m := New(nil, nil, keys.DefaultKeyMap(), 80, 24)
	m.loading = false
	m.adopt(todos)
	return m
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func sampleTodos() []model.Todo {
	return []model.Todo{
		{ID: "t1", Value: "buy milk"},
		{ID: "t2", Value: "return library books"},
	}
}

func TestLoadedSnapshotAdopted(t *testing.T) {
	m := New(nil, nil, keys.DefaultKeyMap(), 80, 24)
	require.NotNil(t, m.Init())

	m, _ = m.Update(todosLoadedMsg{seq: m.seq, todos: sampleTodos()})
	assert.False(t, m.loading)
	assert.Len(t, m.todos, 2)
}

func TestStaleLoadIgnored(t *testing.T) {
	m := newTestModel(sampleTodos())
	m.seq = 7

	m, _ = m.Update(todosLoadedMsg{seq: 6, todos: nil})
	assert.Len(t, m.todos, 2)
}

func TestCreateInputFlow(t *testing.T) {
	m := newTestModel(sampleTodos())
	assert.False(t, m.InputActive())

	m, _ = m.Update(keyPress('n'))
	assert.True(t, m.InputActive())

	// Typed characters go to the input, not the browse keys.
	m, _ = m.Update(keyPress('n'))
	assert.True(t, m.InputActive())
	assert.Equal(t, "n", m.input.Value())

	// Esc discards the staged value.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.InputActive())
	assert.Empty(t, m.input.Value())
}

func TestSubmitEmptyValueClosesInput(t *testing.T) {
	m := newTestModel(sampleTodos())
	m, _ = m.Update(keyPress('n'))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestEditPrefillsSelectedValue(t *testing.T) {
	m := newTestModel(sampleTodos())
	m, _ = m.Update(keyPress('j'))

	m, _ = m.Update(keyPress('u'))
	require.True(t, m.InputActive())
	assert.Equal(t, "t2", m.editID)
	assert.Equal(t, "return library books", m.input.Value())
}

func TestMutationSuccessAdoptsSnapshotAndClosesInput(t *testing.T) {
	m := newTestModel(sampleTodos())
	m, _ = m.Update(keyPress('n'))
	m.seq++ // as if a create request went out

	grown := append(sampleTodos(), model.Todo{ID: "t3", Value: "water plants"})
	m, _ = m.Update(mutationDoneMsg{seq: m.seq, op: opCreate, todos: grown})

	assert.Len(t, m.todos, 3)
	assert.False(t, m.InputActive())
}

func TestFailedMutationKeepsInputOpen(t *testing.T) {
	m := newTestModel(sampleTodos())
	m, _ = m.Update(keyPress('n'))
	m.seq++

	m, _ = m.Update(mutationDoneMsg{seq: m.seq, op: opCreate, err: assert.AnError})

	assert.Len(t, m.todos, 2)
	assert.True(t, m.InputActive())
}

func TestDeleteSuccessClampsCursor(t *testing.T) {
	m := newTestModel(sampleTodos())
	m, _ = m.Update(keyPress('j'))
	m.seq++

	m, _ = m.Update(mutationDoneMsg{seq: m.seq, op: opDelete, todos: sampleTodos()[:1]})

	assert.Len(t, m.todos, 1)
	assert.Equal(t, 0, m.cursor)
}

func TestStaleMutationIgnored(t *testing.T) {
	m := newTestModel(sampleTodos())
	m.seq = 4

	m, _ = m.Update(mutationDoneMsg{seq: 3, op: opDelete, todos: nil})
	assert.Len(t, m.todos, 2)
}

func TestViewShowsCountAndItems(t *testing.T) {
	m := newTestModel(sampleTodos())
	out := m.View()
	assert.Contains(t, out, "To-Dos")
	assert.Contains(t, out, "2 left")
	assert.Contains(t, out, "buy milk")
}
