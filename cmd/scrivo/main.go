package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"scrivo/internal/adapters/editor"
	"scrivo/internal/adapters/github"
	"scrivo/internal/adapters/sqlite"
	"scrivo/internal/adapters/tui"
	"scrivo/internal/config"
	"scrivo/internal/ports"
)

func main() {
	store, err := sqlite.Open(config.DatabasePath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	contentDir := config.ContentDir()
	sessions := store.Sessions()

	// Resume a remembered session, if any; a load failure just means
	// signing in again.
	var resume *ports.SessionRecord
	if rec, ok, loadErr := sessions.Load(); loadErr == nil && ok {
		resume = &rec
	}

	newRepo := func(rec ports.SessionRecord) ports.ContentRepository {
		return github.NewClient(rec, contentDir)
	}

	app := tui.NewApp(sessions, store, newRepo, editor.NewOpener(), contentDir, resume)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
