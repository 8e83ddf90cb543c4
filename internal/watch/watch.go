package watch

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the live-recompile TUI for path and blocks until the user
// quits or the program errors.
func Run(path string) error {
	program := tea.NewProgram(NewModel(path), tea.WithOutput(os.Stdout))
	_, err := program.Run()
	return err
}
