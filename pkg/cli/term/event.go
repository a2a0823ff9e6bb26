package term

import (
	"errors"

	"src.tvim.sh/pkg/ui"
)

// ErrStopped is returned when reading events after the reader has been
// closed.
var ErrStopped = errors.New("stopped")

// Event represents an event that can be read from the terminal.
type Event interface {
	isEvent()
}

// KeyEvent represents a key press.
type KeyEvent ui.Key

// K constructs a new KeyEvent.
func K(r rune, mods ...ui.Mod) KeyEvent {
	return KeyEvent(ui.K(r, mods...))
}

// MouseEvent represents a mouse event, either a button press or a release.
// Motion without any button held is not reported.
type MouseEvent struct {
	Pos
	Down bool
	// Number of the button, 0 if no button is pressed.
	Button int
	Mod    ui.Mod
}

// ResizeEvent is generated when the terminal is resized. The new size can be
// queried from the TTY.
type ResizeEvent struct{}

// FatalErrorEvent represents an error that affects the Reader's ability to
// continue reading events. After sending a FatalError, the Reader makes no
// more attempts at continuing to read events and wait for Stop to be called.
type FatalErrorEvent struct{ Err error }

// NonfatalErrorEvent represents an error that can be gradually recovered. It
// does not affect subsequent events.
type NonfatalErrorEvent struct{ Err error }

func (KeyEvent) isEvent()           {}
func (MouseEvent) isEvent()         {}
func (ResizeEvent) isEvent()        {}
func (FatalErrorEvent) isEvent()    {}
func (NonfatalErrorEvent) isEvent() {}
