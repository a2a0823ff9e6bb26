package cli

import (
	"src.tvim.sh/pkg/cli/tk"
)

// AppSpec specifies the configuration and initial state for an App.
type AppSpec struct {
	// Terminal used by the App. If nil, the real terminal is used.
	TTY TTY

	// The menu bar on the top row. If it has no menus, the row is given to
	// the desktop.
	MenuBar tk.MenuBarSpec
	// The status line on the bottom row. If it has no definitions, the row is
	// given to the desktop.
	StatusLine tk.StatusLineSpec
	// The desktop filling the rest of the screen.
	Desktop tk.DesktopSpec

	// Palette used by the widgets that don't specify their own. If nil,
	// tk.DefaultPalette is used.
	Palette *tk.Palette

	// Called after the default handling of each event. It receives every
	// tk.CommandEvent, and every term.Event no widget has handled.
	HandleEvent func(App, any)
}
