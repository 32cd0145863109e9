package ui

import tea "github.com/charmbracelet/bubbletea"

// View is a screen region with its own Elm-style model. Update returns the
// View so implementations can swap themselves out.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
}
