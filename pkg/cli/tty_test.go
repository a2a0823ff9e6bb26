package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"

	"src.tvim.sh/pkg/cli/term"
	"src.tvim.sh/pkg/ui"
)

func setupSimTTY(t *testing.T) (*aTTY, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	tty := newScreenTTY(s)
	restore, err := tty.Setup()
	if err != nil {
		t.Fatalf("Setup -> %v", err)
	}
	t.Cleanup(restore)
	s.SetSize(10, 3)
	return tty, s
}

// Reads the next event that is not a ResizeEvent.
func readNonResize(tty *aTTY) (term.Event, error) {
	for {
		ev, err := tty.ReadEvent()
		if ev != (term.ResizeEvent{}) {
			return ev, err
		}
	}
}

func TestTTY_Size(t *testing.T) {
	tty, _ := setupSimTTY(t)
	if h, w := tty.Size(); h != 3 || w != 10 {
		t.Errorf("Size -> (%d, %d), want (3, 10)", h, w)
	}
}

var ttyKeyTests = []struct {
	key  tcell.Key
	r    rune
	mod  tcell.ModMask
	want term.Event
}{
	{tcell.KeyRune, 'a', tcell.ModNone, term.K('a')},
	{tcell.KeyRune, 'x', tcell.ModAlt, term.K('x', ui.Alt)},
	{tcell.KeyF10, 0, tcell.ModNone, term.K(ui.F10)},
	{tcell.KeyF1, 0, tcell.ModShift, term.K(ui.F1, ui.Shift)},
	{tcell.KeyUp, 0, tcell.ModNone, term.K(ui.Up)},
	{tcell.KeyEnter, 0, tcell.ModNone, term.K(ui.Enter)},
	{tcell.KeyEscape, 0, tcell.ModNone, term.K(ui.Escape)},
	{tcell.KeyCtrlA, 0, tcell.ModCtrl, term.K('A', ui.Ctrl)},
	{tcell.KeyBacktab, 0, tcell.ModNone, term.K(ui.Tab, ui.Shift)},
}

func TestTTY_ReadEvent_Keys(t *testing.T) {
	tty, s := setupSimTTY(t)
	for _, test := range ttyKeyTests {
		s.InjectKey(test.key, test.r, test.mod)
		ev, err := readNonResize(tty)
		if err != nil {
			t.Errorf("ReadEvent -> error %v", err)
		}
		if ev != test.want {
			t.Errorf("got %v, want %v", ev, test.want)
		}
	}
}

func TestTTY_ReadEvent_Mouse(t *testing.T) {
	tty, s := setupSimTTY(t)
	// Wheel events are skipped.
	s.InjectMouse(1, 1, tcell.WheelUp, tcell.ModNone)
	s.InjectMouse(3, 2, tcell.Button1, tcell.ModNone)
	s.InjectMouse(3, 2, tcell.ButtonNone, tcell.ModNone)

	wants := []term.Event{
		term.MouseEvent{Pos: term.Pos{Line: 2, Col: 3}, Down: true, Button: 1},
		term.MouseEvent{Pos: term.Pos{Line: 2, Col: 3}},
	}
	for _, want := range wants {
		ev, err := readNonResize(tty)
		if err != nil {
			t.Errorf("ReadEvent -> error %v", err)
		}
		if ev != want {
			t.Errorf("got %v, want %v", ev, want)
		}
	}
}

func TestTTY_ReadEvent_Resize(t *testing.T) {
	tty, s := setupSimTTY(t)
	s.PostEvent(tcell.NewEventResize(20, 5))
	ev, err := tty.ReadEvent()
	if err != nil || ev != (term.ResizeEvent{}) {
		t.Errorf("got (%v, %v), want resize event", ev, err)
	}
}

func TestTTY_CloseReader(t *testing.T) {
	tty, _ := setupSimTTY(t)
	tty.CloseReader()
	_, err := tty.ReadEvent()
	if err != term.ErrStopped {
		t.Errorf("got error %v, want ErrStopped", err)
	}
}

func TestTTY_UpdateBuffer(t *testing.T) {
	tty, s := setupSimTTY(t)
	red := ui.Style{Fg: ui.Red, Bg: ui.White, Bold: true}
	buf := term.NewBufferBuilder(10).
		Write("ab", ui.Use(red)).Write("cd").
		Newline().Write("x").
		Buffer()
	if err := tty.UpdateBuffer(buf, true); err != nil {
		t.Fatalf("UpdateBuffer -> %v", err)
	}

	cells, w, h := s.GetContents()
	if w != 10 || h != 3 {
		t.Fatalf("got size %dx%d", w, h)
	}
	var lines []string
	for y := 0; y < h; y++ {
		var line []rune
		for x := 0; x < w; x++ {
			line = append(line, cells[y*w+x].Runes...)
		}
		lines = append(lines, string(line))
	}
	wantLines := []string{"abcd      ", "x         ", "          "}
	if diff := cmp.Diff(wantLines, lines); diff != "" {
		t.Errorf("screen (-want +got):\n%s", diff)
	}

	fg, bg, attrs := cells[0].Style.Decompose()
	if fg != tcell.PaletteColor(1) || bg != tcell.PaletteColor(7) || attrs&tcell.AttrBold == 0 {
		t.Errorf("got style (%v, %v, %v)", fg, bg, attrs)
	}
	if fg, bg, _ := cells[3].Style.Decompose(); fg != tcell.ColorDefault || bg != tcell.ColorDefault {
		t.Errorf("unstyled cell has (%v, %v)", fg, bg)
	}
}

func TestConvertColor(t *testing.T) {
	tests := []struct {
		c    ui.Color
		want tcell.Color
	}{
		{nil, tcell.ColorDefault},
		{ui.Blue, tcell.PaletteColor(4)},
		{ui.BrightBlue, tcell.PaletteColor(12)},
		{ui.StyleFromSGR("38;5;200").Fg, tcell.PaletteColor(200)},
		{ui.StyleFromSGR("38;2;1;2;3").Fg, tcell.NewRGBColor(1, 2, 3)},
	}
	for _, test := range tests {
		if got := convertColor(test.c); got != test.want {
			t.Errorf("convertColor(%v) = %v, want %v", test.c, got, test.want)
		}
	}
}

func TestTTY_Setup_NotTerminal(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()

	_, err = NewTTY(r, w).Setup()
	if !errors.Is(err, ErrNotTerminal) {
		t.Errorf("got error %v, want ErrNotTerminal", err)
	}
}
