package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/vburojevic/rlc/internal/tui"
)

// UICmd opens the interactive logger-level panel
type UICmd struct{}

// Run executes the ui command
func (c *UICmd) Run(globals *Globals) error {
	model := tui.New(service(globals))
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
