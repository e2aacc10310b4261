package assignmentlist

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcheng/assignment-tracker/internal/keys"
	"github.com/dcheng/assignment-tracker/internal/model"
)

func newTestModel(assignments []model.Assignment) Model {
	m := New(nil, nil, keys.DefaultKeyMap(), 80, 24)
	m.loading = false
	m.adopt(assignments)
	return m
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func sampleAssignments() []model.Assignment {
	return []model.Assignment{
		{ID: "a1", Name: "Essay", Progress: 40, Estimate: 4},
		{ID: "a2", Name: "Lab report", Progress: 10, Estimate: 2},
		{ID: "a3", Name: "Problem set", Progress: 80, Estimate: 3},
	}
}

func TestLoadedSnapshotAdopted(t *testing.T) {
	m := New(nil, nil, keys.DefaultKeyMap(), 80, 24)
	cmd := m.Init()
	require.NotNil(t, cmd)

	m, _ = m.Update(collectionLoadedMsg{seq: m.seq, assignments: sampleAssignments()})
	assert.False(t, m.loading)
	assert.Len(t, m.assignments, 3)
	assert.Len(t, m.states, 3)
}

func TestStaleLoadResultIgnored(t *testing.T) {
	m := newTestModel(sampleAssignments())
	m.seq = 5

	m, _ = m.Update(collectionLoadedMsg{seq: 4, assignments: nil})
	assert.Len(t, m.assignments, 3)
}

func TestCursorNavigationClamped(t *testing.T) {
	m := newTestModel(sampleAssignments())

	m, _ = m.Update(keyPress('k'))
	assert.Equal(t, 0, m.cursor)

	m, _ = m.Update(keyPress('j'))
	m, _ = m.Update(keyPress('j'))
	m, _ = m.Update(keyPress('j'))
	assert.Equal(t, 2, m.cursor)
}

func TestToggleAndEditFlow(t *testing.T) {
	m := newTestModel(sampleAssignments())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	st := m.states["a1"]
	require.True(t, st.Expanded())

	// Edit starts from the saved progress value.
	m, _ = m.Update(keyPress('u'))
	require.True(t, st.Editing())
	assert.Equal(t, 40.0, st.Pending())

	m, _ = m.Update(keyPress('l'))
	m, _ = m.Update(keyPress('l'))
	assert.Equal(t, 50.0, st.Pending())

	m, _ = m.Update(keyPress('h'))
	assert.Equal(t, 45.0, st.Pending())

	// Cancel discards the pending value without a request.
	m, _ = m.Update(keyPress('c'))
	assert.False(t, st.Editing())
	assert.Equal(t, 40.0, m.assignments[0].Progress)
}

func TestEditRequiresExpandedCard(t *testing.T) {
	m := newTestModel(sampleAssignments())

	m, _ = m.Update(keyPress('u'))
	assert.False(t, m.states["a1"].Editing())
}

func TestSaveSuccessAdoptsSnapshotAndExitsEdit(t *testing.T) {
	m := newTestModel(sampleAssignments())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(keyPress('u'))
	m, _ = m.Update(keyPress('l'))

	updated := sampleAssignments()
	updated[0].Progress = 45

	m, _ = m.Update(mutationDoneMsg{
		seq:         m.seq,
		op:          opSave,
		id:          "a1",
		assignments: updated,
	})

	assert.Equal(t, 45.0, m.assignments[0].Progress)
	st := m.states["a1"]
	assert.True(t, st.Expanded())
	assert.False(t, st.Editing())
}

func TestFailedSaveKeepsEditModeAndCollection(t *testing.T) {
	m := newTestModel(sampleAssignments())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(keyPress('u'))
	m, _ = m.Update(keyPress('l'))

	m, _ = m.Update(mutationDoneMsg{
		seq: m.seq,
		op:  opSave,
		id:  "a1",
		err: assert.AnError,
	})

	// The staged value stays on screen for another attempt.
	st := m.states["a1"]
	assert.True(t, st.Editing())
	assert.Equal(t, 45.0, st.Pending())
	assert.Equal(t, 40.0, m.assignments[0].Progress)
}

func TestDeleteSuccessPrunesStateAndClampsCursor(t *testing.T) {
	m := newTestModel(sampleAssignments())

	// Move to the last item and expand it.
	m, _ = m.Update(keyPress('j'))
	m, _ = m.Update(keyPress('j'))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	remaining := sampleAssignments()[:2]
	m, _ = m.Update(mutationDoneMsg{
		seq:         m.seq,
		op:          opDelete,
		id:          "a3",
		assignments: remaining,
	})

	assert.Len(t, m.assignments, 2)
	assert.NotContains(t, m.states, "a3")
	assert.Equal(t, 1, m.cursor)
}

func TestFailedDeleteLeavesCollectionAndExpansion(t *testing.T) {
	m := newTestModel(sampleAssignments())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = m.Update(mutationDoneMsg{
		seq: m.seq,
		op:  opDelete,
		id:  "a1",
		err: assert.AnError,
	})

	assert.Len(t, m.assignments, 3)
	assert.True(t, m.states["a1"].Expanded())
}

func TestStaleMutationResultIgnored(t *testing.T) {
	m := newTestModel(sampleAssignments())
	m.seq = 3

	m, _ = m.Update(mutationDoneMsg{
		seq:         2,
		op:          opDelete,
		id:          "a1",
		assignments: nil,
	})

	assert.Len(t, m.assignments, 3)
}

func TestReplaceCollectionAdoptsExternalSnapshot(t *testing.T) {
	m := newTestModel(sampleAssignments())

	grown := append(sampleAssignments(), model.Assignment{ID: "a4", Name: "Reading"})
	m.ReplaceCollection(grown)

	assert.Len(t, m.assignments, 4)
	assert.Contains(t, m.states, "a4")
}

func TestAdoptPreservesSurvivingItemState(t *testing.T) {
	m := newTestModel(sampleAssignments())
	m.states["a2"].Toggle()

	m.adopt(sampleAssignments()[:2])
	assert.True(t, m.states["a2"].Expanded())
}

func TestSaveWithoutEditIsNoOp(t *testing.T) {
	m := newTestModel(sampleAssignments())
	m, cmd := m.Update(keyPress('s'))
	assert.Nil(t, cmd)
	_ = m
}

func TestDeleteRequiresExpandedViewMode(t *testing.T) {
	m := newTestModel(sampleAssignments())

	// Collapsed: no request.
	_, cmd := m.Update(keyPress('d'))
	assert.Nil(t, cmd)

	// Editing: delete is not offered either.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(keyPress('u'))
	_, cmd = m.Update(keyPress('d'))
	assert.Nil(t, cmd)
}

func TestViewRendersSummaryHeader(t *testing.T) {
	m := newTestModel(sampleAssignments())
	out := m.View()
	assert.Contains(t, out, "Active")
	assert.Contains(t, out, "3 assignments, 9 hours")
}

func TestViewEmptyState(t *testing.T) {
	m := newTestModel(nil)
	out := m.View()
	assert.Contains(t, out, "No assignments")
}
