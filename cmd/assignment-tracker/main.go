package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dcheng/assignment-tracker/internal/api"
	"github.com/dcheng/assignment-tracker/internal/app"
	"github.com/dcheng/assignment-tracker/internal/identity"
	"github.com/dcheng/assignment-tracker/internal/model"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// The terminal owns stdout, so logs go to a file when debugging is
	// requested.
	if os.Getenv("ASSIGNMENT_TRACKER_DEBUG") != "" {
		f, err := tea.LogToFile("assignment-tracker.log", "debug")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(os.Stderr)
	}

	cfg, err := model.LoadConfig(model.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client := api.NewClient(cfg.API.BaseURL)
	ids := identity.NewService(cfg.Identity, identity.KeyringStore{})

	// Resume the stored session if one exists; without one the app
	// starts on the sign-in view.
	user, err := ids.Resume()
	if err != nil && !errors.Is(err, identity.ErrNoSession) {
		log.Printf("failed to resume session: %v", err)
		user = nil
	}

	p := tea.NewProgram(app.New(client, ids, user), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run program: %w", err)
	}
	return nil
}
