// Package app wires the thread sources, caches and settings to the viewer and
// to the non-interactive commands.
package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/kyaoi/keaton/internal/config"
	"github.com/kyaoi/keaton/internal/settings"
	"github.com/kyaoi/keaton/internal/ui"
)

// Run executes the Bubble Tea program for the thread viewer. query, when
// set, starts the viewer with the post list already filtered.
func Run(cfg config.Config, target, query string) error {
	prefs, err := settings.Open(cfg.SettingsPath())
	if err != nil {
		log.Warn("settings unavailable, preferences will not be saved", "err", err)
		prefs = nil
	} else {
		defer prefs.Close()
	}

	state, err := LoadInitialState(cfg, prefs, target, query)
	if err != nil {
		return err
	}
	return runProgram(state)
}

func runProgram(state ui.State) error {
	program := tea.NewProgram(ui.NewModel(state), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
