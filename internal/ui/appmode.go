package ui

// AppMode is the top-level console mode. The composer is modal: while it
// is open, keys go to the form instead of the registry keybinds.
type AppMode int

const (
	ModeRegistry AppMode = iota
	ModeComposer
)

func (m AppMode) String() string {
	switch m {
	case ModeRegistry:
		return "Registry"
	case ModeComposer:
		return "Composer"
	default:
		return "Unknown"
	}
}
