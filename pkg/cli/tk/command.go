package tk

import "strconv"

// Command is a code identifying an action requested by the user, usually by
// selecting a menu item or pressing a key bound in the status line.
type Command int

// Built-in commands.
const (
	// CmValid is the zero Command; it never triggers any action.
	CmValid Command = iota
	// CmQuit ends the run loop of the App.
	CmQuit
	// CmMenu activates the menu bar.
	CmMenu
	// CmClose closes the current modal view, such as an open menu.
	CmClose
)

// CmUser is the first command code available for applications.
const CmUser Command = 100

var commandNames = map[Command]string{
	CmValid: "valid", CmQuit: "quit", CmMenu: "menu", CmClose: "close",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "command " + strconv.Itoa(int(c))
}

// CommandEvent is an event carrying a Command. It is synthesized by widgets
// and dispatched by the App; it never comes from the terminal.
type CommandEvent struct {
	Command Command
}

// CommandHandler is implemented by widgets that react to commands.
type CommandHandler interface {
	// HandleCommand handles a command and returns whether it has been handled.
	HandleCommand(c Command) bool
}

// Help contexts select which status definitions are shown.
const (
	// NoContext is the help context used when nothing more specific applies.
	NoContext = 0
	// MaxContext is the largest help context.
	MaxContext = 0xFFFF
)
