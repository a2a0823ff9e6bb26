package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"src.tvim.sh/pkg/cli/term"
	"src.tvim.sh/pkg/sys"
	"src.tvim.sh/pkg/ui"
)

// TTY is the type the terminal dependency of the App needs to satisfy.
type TTY interface {
	// Setup sets up the terminal for the App, and returns a function to
	// restore it.
	Setup() (restore func(), err error)
	// Size returns the height and width of the terminal.
	Size() (h, w int)

	// ReadEvent reads a terminal event. It returns term.ErrStopped after
	// CloseReader has been called.
	ReadEvent() (term.Event, error)
	// CloseReader releases resources allocated for reading terminal events,
	// and unblocks a pending ReadEvent.
	CloseReader()

	// UpdateBuffer updates the terminal to show the given buffer. If full is
	// true, the terminal is repainted from scratch.
	UpdateBuffer(buf *term.Buffer, full bool) error

	// NotifySignals start relaying signals and returns a channel on which
	// signals are delivered.
	NotifySignals() <-chan os.Signal
	// StopSignals stops the relaying of signals. After this function returns,
	// the channel returned by NotifySignals will no longer deliver signals.
	StopSignals()
}

// ErrNotTerminal is returned by the Setup method of the TTY created with
// NewTTY when the standard input or output is not a terminal.
var ErrNotTerminal = errors.New("not a terminal")

type aTTY struct {
	in, out   *os.File
	newScreen func() (tcell.Screen, error)
	screen    tcell.Screen
	sigCh     chan os.Signal
	// Parsed styles, keyed by SGR.
	styles map[string]tcell.Style
}

// NewTTY returns a new TTY backed by a full-screen terminal. The given files
// are only used to check whether the terminal is usable; the screen itself is
// opened from the controlling terminal.
func NewTTY(in, out *os.File) TTY {
	return &aTTY{in: in, out: out, newScreen: tcell.NewScreen}
}

// Returns a TTY that uses the given screen and skips the terminal check.
func newScreenTTY(s tcell.Screen) *aTTY {
	return &aTTY{newScreen: func() (tcell.Screen, error) { return s, nil }}
}

func (t *aTTY) Setup() (func(), error) {
	for _, f := range []*os.File{t.in, t.out} {
		if f != nil && !sys.IsATTY(f.Fd()) {
			return nil, fmt.Errorf("%s: %w", f.Name(), ErrNotTerminal)
		}
	}
	s, err := t.newScreen()
	if err != nil {
		return nil, fmt.Errorf("cannot open screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("cannot initialize screen: %w", err)
	}
	s.EnableMouse(tcell.MouseButtonEvents)
	s.HideCursor()
	s.Clear()
	t.screen = s
	t.styles = make(map[string]tcell.Style)
	return s.Fini, nil
}

func (t *aTTY) Size() (h, w int) {
	if t.screen == nil {
		return 0, 0
	}
	w, h = t.screen.Size()
	return h, w
}

// Sent by CloseReader to unblock ReadEvent.
type stopReading struct{}

func (t *aTTY) ReadEvent() (term.Event, error) {
	for {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			// The screen has been finalized.
			return nil, term.ErrStopped
		case *tcell.EventInterrupt:
			if _, ok := ev.Data().(stopReading); ok {
				return nil, term.ErrStopped
			}
		case *tcell.EventError:
			return nil, ev
		case *tcell.EventResize:
			return term.ResizeEvent{}, nil
		case *tcell.EventKey:
			if k, ok := convertKey(ev); ok {
				return term.KeyEvent(k), nil
			}
		case *tcell.EventMouse:
			if mev, ok := convertMouse(ev); ok {
				return mev, nil
			}
		}
	}
}

func (t *aTTY) CloseReader() {
	t.screen.PostEvent(tcell.NewEventInterrupt(stopReading{}))
}

func (t *aTTY) UpdateBuffer(buf *term.Buffer, full bool) error {
	s := t.screen
	w, h := s.Size()
	for y := 0; y < h; y++ {
		x := 0
		if y < len(buf.Lines) {
			for _, c := range buf.Lines[y] {
				if x >= w {
					break
				}
				runes := []rune(c.Text)
				if len(runes) == 0 {
					continue
				}
				s.SetContent(x, y, runes[0], runes[1:], t.style(c.Style))
				x += runewidth.StringWidth(c.Text)
			}
		}
		for ; x < w; x++ {
			s.SetContent(x, y, ' ', nil, tcell.StyleDefault)
		}
	}
	if full {
		s.Sync()
	} else {
		s.Show()
	}
	return nil
}

func (t *aTTY) style(sgr string) tcell.Style {
	if st, ok := t.styles[sgr]; ok {
		return st
	}
	st := convertStyle(ui.StyleFromSGR(sgr))
	t.styles[sgr] = st
	return st
}

func (t *aTTY) NotifySignals() <-chan os.Signal {
	t.sigCh = sys.NotifySignals()
	return t.sigCh
}

func (t *aTTY) StopSignals() {
	sys.StopSignals(t.sigCh)
}

func convertStyle(s ui.Style) tcell.Style {
	return tcell.StyleDefault.
		Foreground(convertColor(s.Fg)).
		Background(convertColor(s.Bg)).
		Bold(s.Bold).
		Dim(s.Dim).
		Italic(s.Italic).
		Underline(s.Underlined).
		Blink(s.Blink).
		Reverse(s.Inverse)
}

func convertColor(c ui.Color) tcell.Color {
	if c == nil {
		return tcell.ColorDefault
	}
	if i := ui.ColorIndex(c); i >= 0 {
		return tcell.PaletteColor(i)
	}
	if r, g, b, ok := ui.ColorRGB(c); ok {
		return tcell.NewRGBColor(int32(r), int32(g), int32(b))
	}
	return tcell.ColorDefault
}

var keyFromTcell = map[tcell.Key]rune{
	tcell.KeyF1: ui.F1, tcell.KeyF2: ui.F2, tcell.KeyF3: ui.F3,
	tcell.KeyF4: ui.F4, tcell.KeyF5: ui.F5, tcell.KeyF6: ui.F6,
	tcell.KeyF7: ui.F7, tcell.KeyF8: ui.F8, tcell.KeyF9: ui.F9,
	tcell.KeyF10: ui.F10, tcell.KeyF11: ui.F11, tcell.KeyF12: ui.F12,

	tcell.KeyUp: ui.Up, tcell.KeyDown: ui.Down,
	tcell.KeyRight: ui.Right, tcell.KeyLeft: ui.Left,

	tcell.KeyHome: ui.Home, tcell.KeyInsert: ui.Insert,
	tcell.KeyDelete: ui.Delete, tcell.KeyEnd: ui.End,
	tcell.KeyPgUp: ui.PageUp, tcell.KeyPgDn: ui.PageDown,

	tcell.KeyTab: ui.Tab, tcell.KeyEnter: ui.Enter, tcell.KeyEscape: ui.Escape,
	tcell.KeyBackspace: ui.Backspace, tcell.KeyBackspace2: ui.Backspace,
}

func convertKey(ev *tcell.EventKey) (ui.Key, bool) {
	var mod ui.Mod
	if ev.Modifiers()&tcell.ModAlt != 0 {
		mod |= ui.Alt
	}
	if ev.Modifiers()&tcell.ModCtrl != 0 {
		mod |= ui.Ctrl
	}
	switch k := ev.Key(); {
	case k == tcell.KeyRune:
		return ui.Key{Rune: ev.Rune(), Mod: mod}, true
	case k == tcell.KeyBacktab:
		return ui.Key{Rune: ui.Tab, Mod: mod | ui.Shift}, true
	case keyFromTcell[k] != 0:
		if ev.Modifiers()&tcell.ModShift != 0 && keyFromTcell[k] < 0 {
			mod |= ui.Shift
		}
		if k == tcell.KeyTab || k == tcell.KeyEnter || k == tcell.KeyEscape {
			// These are also reported as Ctrl-I, Ctrl-M and Ctrl-[.
			mod &^= ui.Ctrl
		}
		return ui.Key{Rune: keyFromTcell[k], Mod: mod}, true
	case tcell.KeyCtrlA <= k && k <= tcell.KeyCtrlZ:
		return ui.Key{Rune: rune('A' + k - tcell.KeyCtrlA), Mod: mod | ui.Ctrl}, true
	}
	return ui.Key{}, false
}

func convertMouse(ev *tcell.EventMouse) (term.MouseEvent, bool) {
	x, y := ev.Position()
	mev := term.MouseEvent{Pos: term.Pos{Line: y, Col: x}}
	if ev.Modifiers()&tcell.ModAlt != 0 {
		mev.Mod |= ui.Alt
	}
	if ev.Modifiers()&tcell.ModCtrl != 0 {
		mev.Mod |= ui.Ctrl
	}
	if ev.Modifiers()&tcell.ModShift != 0 {
		mev.Mod |= ui.Shift
	}
	switch b := ev.Buttons(); {
	case b&tcell.Button1 != 0:
		mev.Down, mev.Button = true, 1
	case b&tcell.Button3 != 0:
		mev.Down, mev.Button = true, 2
	case b&tcell.Button2 != 0:
		mev.Down, mev.Button = true, 3
	case b != tcell.ButtonNone:
		// Wheel events and extra buttons are not supported.
		return mev, false
	}
	return mev, true
}
