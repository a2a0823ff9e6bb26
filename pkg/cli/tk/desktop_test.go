package tk

import (
	"testing"

	"src.tvim.sh/pkg/cli/term"
	"src.tvim.sh/pkg/ui"
)

func TestDesktop_Render(t *testing.T) {
	w := NewDesktop(DesktopSpec{})
	buf := w.Render(4, 3)
	if len(buf.Lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(buf.Lines))
	}
	style := DefaultPalette().Desktop.SGR()
	for i := range buf.Lines {
		if got := lineText(buf, i); got != "░░░░" {
			t.Errorf("line %d: got %q, want %q", i, got, "░░░░")
		}
		for _, c := range buf.Lines[i] {
			if c.Style != style {
				t.Errorf("line %d: got style %q, want %q", i, c.Style, style)
			}
		}
	}
}

func TestDesktop_Render_CustomPattern(t *testing.T) {
	p := Palette{Desktop: ui.Style{Fg: ui.Yellow}}
	w := NewDesktop(DesktopSpec{Pattern: '.', Palette: &p})
	buf := w.Render(3, 1)
	if got := lineText(buf, 0); got != "..." {
		t.Errorf("got %q", got)
	}
	if got, want := buf.Lines[0][0].Style, "33"; got != want {
		t.Errorf("got style %q, want %q", got, want)
	}

	// Wide patterns are padded with a space.
	w = NewDesktop(DesktopSpec{Pattern: '世'})
	buf = w.Render(5, 1)
	if got := lineText(buf, 0); got != "世世 " {
		t.Errorf("got %q", got)
	}
}

func TestDesktop_Render_ZeroHeight(t *testing.T) {
	buf := NewDesktop(DesktopSpec{}).Render(10, 0)
	if len(buf.Lines) != 0 {
		t.Errorf("got %d lines, want 0", len(buf.Lines))
	}
}

func TestDesktop_Handle(t *testing.T) {
	w := NewDesktop(DesktopSpec{})
	if w.Handle(term.K('a')) {
		t.Errorf("handled without bindings")
	}

	called := false
	w = NewDesktop(DesktopSpec{
		Bindings: MapBindings{term.K('a'): func(Widget) { called = true }}})
	if !w.Handle(term.K('a')) || !called {
		t.Errorf("binding not called")
	}
}
