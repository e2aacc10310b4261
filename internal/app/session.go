package app

import (
	"context"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dcheng/assignment-tracker/internal/identity"
)

// signInResultMsg carries the outcome of a credential exchange.
type signInResultMsg struct {
	user *identity.User
	err  error
}

// signOutDoneMsg signals that the stored session has been cleared.
type signOutDoneMsg struct {
	err error
}

// signIn exchanges credentials for a session in the background.
func (m Model) signIn(email, password string) tea.Cmd {
	svc := m.ids
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		user, err := svc.SignIn(ctx, email, password)
		return signInResultMsg{user: user, err: err}
	}
}

// signOut drops the stored refresh token. The in-memory session is
// cleared when the resulting message arrives.
func (m Model) signOut() tea.Cmd {
	svc := m.ids
	return func() tea.Msg {
		return signOutDoneMsg{err: svc.SignOut()}
	}
}

// handleSignInResult installs the session on success; on failure the
// sign-in form restarts so the credentials can be re-entered.
func (m Model) handleSignInResult(msg signInResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.Printf("sign-in failed: %v", msg.err)
		return m, m.signInView.Start()
	}

	m.setUser(msg.user)
	m.currentView = ViewAssignments
	return m, nil
}

// restartFormAfterNoSession reopens the creation form after a submit
// attempt without a session, keeping the staged draft on screen.
func (m *Model) restartFormAfterNoSession() tea.Cmd {
	log.Printf("assignment creation requires a signed-in session")
	return m.formView.Reopen()
}
