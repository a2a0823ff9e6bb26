// Package tk is the toolkit for the cli package.
//
// This package defines three basic interfaces - Renderer, Handler and Widget -
// and the widgets of a menu-driven full-screen application: a menu bar with
// drop-down menus, a status line and a desktop.
package tk

import (
	"src.tvim.sh/pkg/cli/term"
	"src.tvim.sh/pkg/ui"
)

// Widget is the basic component of UI; it knows how to handle events and how to
// render itself.
type Widget interface {
	Renderer
	Handler
}

// Renderer wraps the Render method.
type Renderer interface {
	// Render renders onto a region of bound width and height. Widgets managed
	// by the App always return a buffer with exactly height lines.
	Render(width, height int) *term.Buffer
}

// Handler wraps the Handle method.
type Handler interface {
	// Try to handle a terminal event and returns whether the event has been
	// handled. Positions of mouse events are relative to the top-left corner
	// of the widget.
	Handle(event term.Event) bool
}

// Bindings is the interface for key bindings.
type Bindings interface {
	Handle(Widget, term.Event) bool
}

// DummyBindings is a trivial Bindings implementation.
type DummyBindings struct{}

// Handle handles nothing.
func (DummyBindings) Handle(w Widget, event term.Event) bool {
	return false
}

// MapBindings is a map-backed Bindings implementation.
type MapBindings map[term.Event]func(Widget)

// Handle handles the event by calling the function corresponding to the event
// in the map. If there is no corresponding function, it returns false.
// Letters modified by Alt or Ctrl are matched regardless of their case.
func (m MapBindings) Handle(w Widget, event term.Event) bool {
	fn, ok := m[event]
	if !ok {
		fn, ok = m.lookupFolded(event)
	}
	if ok {
		fn(w)
	}
	return ok
}

// Looks up a key event, comparing the folded forms of both the event and the
// bound keys.
func (m MapBindings) lookupFolded(event term.Event) (func(Widget), bool) {
	k, ok := event.(term.KeyEvent)
	if !ok {
		return nil, false
	}
	folded := ui.Key(k).Fold()
	for bound, fn := range m {
		if bk, ok := bound.(term.KeyEvent); ok && ui.Key(bk).Fold() == folded {
			return fn, true
		}
	}
	return nil, false
}

// FuncBindings is a function-based Bindings implementation.
type FuncBindings func(Widget, term.Event) bool

// Handle handles the event by calling the function.
func (f FuncBindings) Handle(w Widget, event term.Event) bool {
	return f(w, event)
}

// Pads or trims a buffer so that it has exactly height lines.
func fitHeight(b *term.Buffer, height int) *term.Buffer {
	for len(b.Lines) < height {
		b.Lines = append(b.Lines, nil)
	}
	b.TrimToLines(0, height)
	return b
}
