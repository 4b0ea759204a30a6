package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackwell-systems/catalogctl/internal/query"
	"github.com/blackwell-systems/catalogctl/internal/tui"
)

// runHub launches the interactive browser.
func runHub() error {
	deps := tui.Deps{
		Store:    st,
		Handlers: handlers,
		Session:  sessCtrl,
		Notify:   notifier,
	}

	model := tui.NewHub(deps, query.ListQuery{})
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	notifier.Stop()
	return nil
}
