package assignmentlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggleExpandsAndCollapses(t *testing.T) {
	st := &ItemState{}
	assert.False(t, st.Expanded())

	st.Toggle()
	assert.True(t, st.Expanded())
	assert.False(t, st.Editing())

	st.Toggle()
	assert.False(t, st.Expanded())
}

func TestStartEditRequiresExpandedView(t *testing.T) {
	st := &ItemState{}
	assert.False(t, st.StartEdit(40))

	st.Toggle()
	assert.True(t, st.StartEdit(40))
	assert.True(t, st.Editing())
	assert.Equal(t, 40.0, st.Pending())

	// Already editing; a second start does not reset the baseline.
	st.Adjust(sliderStep)
	assert.False(t, st.StartEdit(40))
	assert.Equal(t, 45.0, st.Pending())
}

func TestAdjustClampsToRange(t *testing.T) {
	st := &ItemState{}
	st.Toggle()
	st.StartEdit(95)

	st.Adjust(sliderStep)
	st.Adjust(sliderStep)
	assert.Equal(t, 100.0, st.Pending())

	st.Saved()
	st.StartEdit(2)
	st.Adjust(-sliderStep)
	assert.Equal(t, 0.0, st.Pending())
}

func TestAdjustIgnoredOutsideEditMode(t *testing.T) {
	st := &ItemState{}
	st.Adjust(sliderStep)
	assert.Equal(t, 0.0, st.Pending())

	st.Toggle()
	st.Adjust(sliderStep)
	assert.Equal(t, 0.0, st.Pending())
}

func TestCancelDiscardsPending(t *testing.T) {
	st := &ItemState{}
	st.Toggle()
	st.StartEdit(30)
	st.Adjust(sliderStep)

	st.Cancel()
	assert.True(t, st.Expanded())
	assert.False(t, st.Editing())
	assert.Equal(t, 0.0, st.Pending())
}

func TestCollapseWhileEditingDiscardsPending(t *testing.T) {
	st := &ItemState{}
	st.Toggle()
	st.StartEdit(30)
	st.Adjust(sliderStep)

	st.Toggle()
	assert.False(t, st.Expanded())
	assert.Equal(t, 0.0, st.Pending())

	// Reopening starts from the read-only view again.
	st.Toggle()
	assert.True(t, st.Expanded())
	assert.False(t, st.Editing())
}

func TestSavedOnlyLeavesEditMode(t *testing.T) {
	st := &ItemState{}
	st.Saved()
	assert.False(t, st.Expanded())

	st.Toggle()
	st.StartEdit(30)
	st.Saved()
	assert.True(t, st.Expanded())
	assert.False(t, st.Editing())
}
