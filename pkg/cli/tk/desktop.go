package tk

import (
	"strings"

	"src.tvim.sh/pkg/cli/term"
	"src.tvim.sh/pkg/ui"
)

// Desktop is the background widget filling the area between the menu bar and
// the status line.
type Desktop interface {
	Widget
}

// DesktopSpec specifies the configuration for Desktop.
type DesktopSpec struct {
	// Rune the background is filled with. Defaults to DefaultDesktopPattern.
	Pattern rune
	// Styles. The zero value means DefaultPalette.
	Palette *Palette
	// Key bindings.
	Bindings Bindings
}

// DefaultDesktopPattern is the light shade block used when
// DesktopSpec.Pattern is 0.
const DefaultDesktopPattern = '░'

type desktop struct {
	DesktopSpec
}

// NewDesktop creates a new Desktop from the given spec.
func NewDesktop(spec DesktopSpec) Desktop {
	if spec.Pattern == 0 {
		spec.Pattern = DefaultDesktopPattern
	}
	if spec.Palette == nil {
		p := DefaultPalette()
		spec.Palette = &p
	}
	if spec.Bindings == nil {
		spec.Bindings = DummyBindings{}
	}
	return &desktop{spec}
}

func (w *desktop) Render(width, height int) *term.Buffer {
	pw := ui.T(string(w.Pattern)).Width()
	if pw <= 0 {
		pw = 1
	}
	line := strings.Repeat(string(w.Pattern), width/pw)
	bb := term.NewBufferBuilder(width)
	for i := 0; i < height; i++ {
		if i > 0 {
			bb.Newline()
		}
		bb.Write(line, ui.Use(w.Palette.Desktop))
		if bb.Col < width {
			// Wide patterns may leave a gap at the end.
			bb.WriteSpaces(width-bb.Col, ui.Use(w.Palette.Desktop))
		}
	}
	return fitHeight(bb.Buffer(), height)
}

func (w *desktop) Handle(event term.Event) bool {
	return w.Bindings.Handle(w, event)
}
