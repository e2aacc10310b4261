package app

import (
	"context"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dcheng/assignment-tracker/internal/model"
)

// assignmentCreatedMsg carries the server's post-creation snapshot of
// the full assignment collection.
type assignmentCreatedMsg struct {
	assignments []model.Assignment
	err         error
}

// createAssignment submits a draft: a fresh ID token first, then the
// creation request. The server responds with the complete collection.
func (m Model) createAssignment(draft model.AssignmentDraft) tea.Cmd {
	client := m.client
	user := m.user
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		token, err := user.IDToken(ctx)
		if err != nil {
			return assignmentCreatedMsg{err: err}
		}

		assignments, err := client.CreateAssignment(ctx, draft, token)
		return assignmentCreatedMsg{assignments: assignments, err: err}
	}
}

// handleAssignmentCreated adopts the fresh snapshot and returns to the
// list; on failure the form stays open with the staged draft intact.
func (m Model) handleAssignmentCreated(msg assignmentCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.Printf("failed to create assignment: %v", msg.err)
		return m, m.formView.Reopen()
	}

	m.assignmentList.ReplaceCollection(msg.assignments)
	m.currentView = ViewAssignments
	return m, nil
}
