package tk

import (
	"sync"

	"src.tvim.sh/pkg/cli/term"
	"src.tvim.sh/pkg/ui"
)

// StatusLine is a one-line widget showing key hints. Each hint is bound to a
// key and a command; pressing the key or clicking on the hint posts the
// command. Items with an empty text are not shown but their keys still work.
type StatusLine interface {
	Widget
	// CurrentDef returns the status definition for the current help context,
	// or nil if none matches.
	CurrentDef() *StatusDef
	// CopyState returns a copy of the state.
	CopyState() StatusLineState
	// MutateState calls the given function while locking the state mutex.
	MutateState(f func(*StatusLineState))
}

// StatusDef is a set of status items shown when the help context is within
// [Min, Max].
type StatusDef struct {
	Min, Max int
	Items    []StatusItem
}

// StatusItem is a key hint of a StatusLine.
type StatusItem struct {
	// Text shown, with the hot part marked with "~", like "~Alt-X~ Exit".
	Text string
	// Key that posts Command.
	Key ui.Key
	// Command posted by the item.
	Command Command
}

// StatusLineSpec specifies the configuration and initial state for
// StatusLine.
type StatusLineSpec struct {
	// Definitions, searched in order for the first one matching the current
	// help context.
	Defs []StatusDef
	// Returns the current help context. If nil, NoContext is always used.
	HelpCtx func() int
	// Called with the command of a triggered item.
	OnCommand func(Command)
	// Styles. The zero value means DefaultPalette.
	Palette *Palette

	// State. When used in [NewStatusLine], this field specifies the initial
	// state.
	State StatusLineState
}

// StatusLineState keeps the mutable state of the StatusLine widget.
type StatusLineState struct {
	// One-based index of the item held down with the mouse, or 0 if none.
	Pressed int
}

type statusLine struct {
	// Mutex for synchronizing access to the state.
	StateMutex sync.RWMutex
	// Configuration and state.
	StatusLineSpec
}

// NewStatusLine creates a new StatusLine from the given spec.
func NewStatusLine(spec StatusLineSpec) StatusLine {
	if spec.HelpCtx == nil {
		spec.HelpCtx = func() int { return NoContext }
	}
	if spec.OnCommand == nil {
		spec.OnCommand = func(Command) {}
	}
	if spec.Palette == nil {
		p := DefaultPalette()
		spec.Palette = &p
	}
	return &statusLine{StatusLineSpec: spec}
}

func (w *statusLine) CopyState() StatusLineState {
	w.StateMutex.RLock()
	defer w.StateMutex.RUnlock()
	return w.State
}

func (w *statusLine) MutateState(f func(*StatusLineState)) {
	w.StateMutex.Lock()
	defer w.StateMutex.Unlock()
	f(&w.State)
}

func (w *statusLine) CurrentDef() *StatusDef {
	ctx := w.HelpCtx()
	for i := range w.Defs {
		if w.Defs[i].Min <= ctx && ctx <= w.Defs[i].Max {
			return &w.Defs[i]
		}
	}
	return nil
}

func (w *statusLine) Render(width, height int) *term.Buffer {
	pressed := w.CopyState().Pressed
	p := w.Palette
	bb := term.NewBufferBuilder(width)
	if def := w.CurrentDef(); def != nil {
		for i, item := range def.Items {
			if item.Text == "" {
				continue
			}
			normal, hot := p.StatusNormal, p.StatusHot
			if pressed == i+1 {
				normal, hot = p.StatusSelected, p.StatusSelected
			}
			t := ui.Concat(
				ui.T(" ", ui.Use(normal)), TildeText(item.Text, normal, hot),
				ui.T(" ", ui.Use(normal)))
			bb.WriteStyled(t.TrimWcwidth(width - bb.Col))
			if bb.Col >= width {
				break
			}
		}
	}
	if bb.Col < width {
		bb.WriteSpaces(width-bb.Col, ui.Use(p.StatusNormal))
	}
	buf := bb.Buffer()
	buf.TrimToLines(0, 1)
	return fitHeight(buf, height)
}

func (w *statusLine) Handle(event term.Event) bool {
	def := w.CurrentDef()
	if def == nil {
		return false
	}
	switch event := event.(type) {
	case term.KeyEvent:
		k := ui.Key(event).Fold()
		for _, item := range def.Items {
			if item.Key != ui.NoKey && item.Key.Fold() == k {
				w.post(item.Command)
				return true
			}
		}
	case term.MouseEvent:
		return w.handleMouse(def, event)
	}
	return false
}

func (w *statusLine) handleMouse(def *StatusDef, ev term.MouseEvent) bool {
	i := w.itemAt(def, ev.Pos)
	if ev.Down {
		if ev.Button != 1 || i == -1 {
			w.MutateState(func(s *StatusLineState) { s.Pressed = 0 })
			return false
		}
		w.MutateState(func(s *StatusLineState) { s.Pressed = i + 1 })
		return true
	}
	pressed := w.CopyState().Pressed
	if pressed == 0 {
		return false
	}
	w.MutateState(func(s *StatusLineState) { s.Pressed = 0 })
	// The command is only posted if the button is released on the same item.
	if pressed == i+1 {
		w.post(def.Items[i].Command)
	}
	return true
}

// Returns the index of the visible item at the given position, or -1.
func (w *statusLine) itemAt(def *StatusDef, p term.Pos) int {
	if p.Line != 0 {
		return -1
	}
	col := 0
	for i, item := range def.Items {
		if item.Text == "" {
			continue
		}
		next := col + TildeWidth(item.Text) + 2
		if col <= p.Col && p.Col < next {
			return i
		}
		col = next
	}
	return -1
}

func (w *statusLine) post(c Command) {
	if c != CmValid {
		w.OnCommand(c)
	}
}
