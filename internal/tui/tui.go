package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

// Run starts the full-screen client and blocks until the user quits.
func Run(opts Options) error {
	applyColorProfilePreference()
	applyThemePreference()
	zone.NewGlobal()

	m := newAppModel(opts)
	popts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
	if opts.Ctx != nil {
		popts = append(popts, tea.WithContext(opts.Ctx))
	}
	_, err := tea.NewProgram(m, popts...).Run()
	return err
}
