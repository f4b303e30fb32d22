package tui

import (
	"mailchips/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the widget and blocks until the user is done. It returns the
// final list.
func Run(m Model, opts ...tea.ProgramOption) ([]model.Address, error) {
	applyColorProfilePreference()
	applyThemePreference(m.opts.Theme)
	applyGlyphPreference()
	m.input.Prompt = glyphPrompt()

	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return nil, err
	}
	if fm, ok := final.(Model); ok {
		return fm.Entries(), nil
	}
	return m.Entries(), nil
}
