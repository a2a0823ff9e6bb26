package tvim

import (
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"src.tvim.sh/pkg/cli/clitest"
	"src.tvim.sh/pkg/cli/term"
	"src.tvim.sh/pkg/cli/tk"
	"src.tvim.sh/pkg/testutil"
	"src.tvim.sh/pkg/ui"
)

func TestInitMenuBar(t *testing.T) {
	want := []tk.Menu{
		{Name: "~F~ile", Key: ui.K('f', ui.Alt), Items: []tk.MenuItem{
			{Name: "E~x~it", Command: tk.CmQuit, Key: ui.K('x', ui.Alt), Param: "Alt-X"},
		}},
	}
	if diff := cmp.Diff(want, initMenuBar().Menus); diff != "" {
		t.Errorf("menus (-want +got):\n%s", diff)
	}
}

func TestInitStatusLine(t *testing.T) {
	want := []tk.StatusDef{
		{Min: 0, Max: 0xFFFF, Items: []tk.StatusItem{
			{Text: "~Alt-X~ Exit", Key: ui.K('x', ui.Alt), Command: tk.CmQuit},
			{Key: ui.K(ui.F10), Command: tk.CmMenu},
		}},
	}
	if diff := cmp.Diff(want, initStatusLine().Defs); diff != "" {
		t.Errorf("status defs (-want +got):\n%s", diff)
	}
}


// Starts the application on a fake terminal.
func setup(t *testing.T, h, w int) (clitest.TTYCtrl, <-chan error) {
	tty, ttyCtrl := clitest.NewFakeTTY()
	ttyCtrl.SetSize(h, w)
	app := NewApp(tty, nil)
	errCh := make(chan error, 1)
	go func() { errCh <- app.Run() }()
	return ttyCtrl, errCh
}

func wait(t *testing.T, errCh <-chan error) {
	t.Helper()
	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Run returns %v, want nil", err)
		}
	case <-time.After(testutil.Scaled(time.Second)):
		t.Fatalf("Run did not return")
	}
}

func TestApp_Renders(t *testing.T) {
	ttyCtrl, errCh := setup(t, 4, 20)
	desktop := strings.Repeat("░", 20)

	ttyCtrl.TestScreenText(t, "  File", desktop, desktop, " Alt-X Exit")

	ttyCtrl.Inject(term.K('f', ui.Alt))
	ttyCtrl.TestScreenText(t,
		"  File",
		"░┌─────────────┐░░░░",
		"░│ Exit  Alt-X │░░░░",
		" └─────────────┘")

	ttyCtrl.Inject(term.K('x', ui.Alt))
	wait(t, errCh)
}

func TestApp_IgnoresOtherCommandsAndKeys(t *testing.T) {
	tty, ttyCtrl := clitest.NewFakeTTY()
	ttyCtrl.SetSize(4, 20)
	app := NewApp(tty, nil)
	errCh := make(chan error, 1)
	go func() { errCh <- app.Run() }()
	desktop := strings.Repeat("░", 20)
	screen := []string{"  File", desktop, desktop, " Alt-X Exit"}
	ttyCtrl.TestScreenText(t, screen...)

	app.PostCommand(tk.CmUser + 42)
	ttyCtrl.Inject(term.K('a'), term.K(ui.F1), term.K('q', ui.Ctrl), term.K(ui.Escape))
	// The full redraw after the resize event comes after all the events above
	// have been handled.
	ttyCtrl.Inject(term.ResizeEvent{})
	waitFor(t, func() bool { return ttyCtrl.FullUpdates() > 0 })

	if diff := cmp.Diff(screen, clitest.ScreenText(ttyCtrl.LastBuffer())); diff != "" {
		t.Errorf("screen (-want +got):\n%s", diff)
	}
	if s := app.MenuBar().CopyState(); s != (tk.MenuBarState{}) {
		t.Errorf("got menu bar state %v, want zero", s)
	}
	select {
	case err := <-errCh:
		t.Fatalf("Run returned %v", err)
	default:
	}

	app.PostCommand(tk.CmQuit)
	wait(t, errCh)
}

var quitTests = []struct {
	name   string
	events []term.Event
}{
	{"Alt-X", []term.Event{term.K('x', ui.Alt)}},
	{"menu key and hot letter", []term.Event{term.K('f', ui.Alt), term.K('x')}},
	{"menu key and Enter", []term.Event{term.K('f', ui.Alt), term.K(ui.Enter)}},
	{"F10 and menu", []term.Event{term.K(ui.F10), term.K(ui.Enter), term.K(ui.Enter)}},
	{"status line click", []term.Event{
		term.MouseEvent{Pos: term.Pos{Line: 9, Col: 2}, Down: true, Button: 1},
		term.MouseEvent{Pos: term.Pos{Line: 9, Col: 2}}}},
}

func TestApp_Quit(t *testing.T) {
	for _, test := range quitTests {
		t.Run(test.name, func(t *testing.T) {
			ttyCtrl, errCh := setup(t, 10, 30)
			// Keys without bindings have no effect.
			ttyCtrl.Inject(term.K('a'), term.K(ui.F1), term.K('q', ui.Ctrl))
			ttyCtrl.Inject(test.events...)
			wait(t, errCh)
		})
	}
}

func TestApp_QuitOnSignal(t *testing.T) {
	ttyCtrl, errCh := setup(t, 10, 30)
	ttyCtrl.InjectSignal(syscall.SIGTERM)
	wait(t, errCh)
}

func TestApp_F10TogglesMenuBar(t *testing.T) {
	tty, ttyCtrl := clitest.NewFakeTTY()
	app := NewApp(tty, nil)
	errCh := make(chan error, 1)
	go func() { errCh <- app.Run() }()

	ttyCtrl.Inject(term.K(ui.F10))
	waitFor(t, func() bool { return app.MenuBar().Active() })
	// F10 on an active menu bar closes it.
	ttyCtrl.Inject(term.K(ui.F10))
	waitFor(t, func() bool { return !app.MenuBar().Active() })

	app.PostCommand(tk.CmQuit)
	wait(t, errCh)
}

func waitFor(t *testing.T, f func() bool) {
	t.Helper()
	deadline := time.Now().Add(testutil.Scaled(time.Second))
	for !f() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met")
		}
		time.Sleep(time.Millisecond)
	}
}
