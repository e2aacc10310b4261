package assignform

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// runCmd executes a command and reports whether it produced a SubmitMsg.
func runCmd(cmd tea.Cmd) (SubmitMsg, bool) {
	if cmd == nil {
		return SubmitMsg{}, false
	}
	msg, ok := cmd().(SubmitMsg)
	return msg, ok
}

func startedModel() Model {
	m := New(80, 24)
	_ = m.Start()
	return m
}

func TestSubmitDispatchedExactlyOnce(t *testing.T) {
	m := startedModel()
	m.fb.name = "Essay"
	m.form.State = huh.StateCompleted

	submits := 0
	for i := 0; i < 3; i++ {
		var cmd tea.Cmd
		m, cmd = m.Update(keyPress('x'))
		if _, ok := runCmd(cmd); ok {
			submits++
		}
	}

	// Stray events while the request is in flight must not re-submit.
	assert.Equal(t, 1, submits)
}

func TestCancelDispatchedExactlyOnce(t *testing.T) {
	m := startedModel()
	m.form.State = huh.StateAborted

	cancels := 0
	for i := 0; i < 3; i++ {
		var cmd tea.Cmd
		m, cmd = m.Update(keyPress('x'))
		if cmd != nil {
			if _, ok := cmd().(CancelMsg); ok {
				cancels++
			}
		}
	}

	assert.Equal(t, 1, cancels)
}

func TestReopenKeepsStagedDraft(t *testing.T) {
	m := startedModel()
	m.fb.name = "Essay"
	m.fb.description = "chapter three"
	m.fb.estimate = "3.5"
	m.fb.dueDate = "2026-09-01 17:00"
	m.form.State = huh.StateCompleted

	var cmd tea.Cmd
	m, cmd = m.Update(keyPress('x'))
	_, ok := runCmd(cmd)
	require.True(t, ok)

	// A failed creation reopens the form without clearing the fields.
	require.NotNil(t, m.Reopen())
	assert.Equal(t, "Essay", m.fb.name)
	assert.Equal(t, "chapter three", m.fb.description)
	assert.Equal(t, "3.5", m.fb.estimate)
	assert.Equal(t, "2026-09-01 17:00", m.fb.dueDate)

	// And the retained draft can be submitted again.
	m.form.State = huh.StateCompleted
	m, cmd = m.Update(keyPress('x'))
	msg, ok := runCmd(cmd)
	require.True(t, ok)
	assert.Equal(t, "Essay", msg.Draft.Name)
	assert.Equal(t, 3.5, msg.Draft.Estimate)
}

func TestStartResetsDraftAndSubmitLatch(t *testing.T) {
	m := startedModel()
	m.fb.name = "Essay"
	m.form.State = huh.StateCompleted

	var cmd tea.Cmd
	m, cmd = m.Update(keyPress('x'))
	_, ok := runCmd(cmd)
	require.True(t, ok)

	_ = m.Start()
	assert.Empty(t, m.fb.name)
	assert.Equal(t, "0", m.fb.estimate)

	m.fb.name = "Lab report"
	m.form.State = huh.StateCompleted
	m, cmd = m.Update(keyPress('x'))
	msg, ok := runCmd(cmd)
	require.True(t, ok)
	assert.Equal(t, "Lab report", msg.Draft.Name)
}

func TestSubmitParsesDraftFields(t *testing.T) {
	m := startedModel()
	m.fb.name = "Essay"
	m.fb.estimate = "2.5"
	m.fb.assignedDate = "2026-08-28 09:00"
	m.fb.dueDate = "not a date"
	m.form.State = huh.StateCompleted

	m, cmd := m.Update(keyPress('x'))
	msg, ok := runCmd(cmd)
	require.True(t, ok)

	assert.Equal(t, 2.5, msg.Draft.Estimate)
	assert.Equal(t, 2026, msg.Draft.AssignedDate.Year())
	// Unparseable optional dates stay unset.
	assert.True(t, msg.Draft.DueDate.IsZero())
}
