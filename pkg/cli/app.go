// Package cli implements a small full-screen terminal application framework,
// made up of a menu bar, a status line and a desktop, all driven by a serial
// event loop.
package cli

import (
	"os"
	"sync"

	"src.tvim.sh/pkg/cli/term"
	"src.tvim.sh/pkg/cli/tk"
	"src.tvim.sh/pkg/logutil"
	"src.tvim.sh/pkg/sys"
	"src.tvim.sh/pkg/ui"
)

var logger = logutil.GetLogger("cli")

// App represents a full-screen terminal application.
type App interface {
	// Run sets up the terminal and runs the event loop until CmQuit has been
	// handled, or a fatal error happens. This function is not re-entrant.
	Run() error

	// PostCommand enqueues a command, to be handled by the event loop after
	// the current event. It never calls into handlers directly.
	PostCommand(c tk.Command)

	// Redraw requests a redraw. It never blocks and can be called regardless of
	// whether the App is active or not.
	Redraw()
	// RedrawFull requests a full redraw. It never blocks and can be called
	// regardless of whether the App is active or not.
	RedrawFull()

	// MenuBar returns the menu bar widget.
	MenuBar() tk.MenuBar
	// StatusLine returns the status line widget.
	StatusLine() tk.StatusLine
	// Desktop returns the desktop widget.
	Desktop() tk.Desktop
}

type app struct {
	loop    *loop
	reqRead chan struct{}

	TTY         TTY
	HandleEvent func(App, any)

	menuBar    tk.MenuBar
	statusLine tk.StatusLine
	desktop    tk.Desktop

	hasMenuBar    bool
	hasStatusLine bool
}

// NewApp creates a new App from the given specification.
func NewApp(spec AppSpec) App {
	lp := newLoop()
	a := app{
		loop:        lp,
		TTY:         spec.TTY,
		HandleEvent: spec.HandleEvent,
	}
	if a.TTY == nil {
		a.TTY = NewTTY(os.Stdin, os.Stdout)
	}
	if a.HandleEvent == nil {
		a.HandleEvent = func(App, any) {}
	}
	lp.HandleCb(a.handle)
	lp.RedrawCb(a.redraw)

	palette := spec.Palette
	if palette == nil {
		p := tk.DefaultPalette()
		palette = &p
	}

	menuBarSpec := spec.MenuBar
	if menuBarSpec.Palette == nil {
		menuBarSpec.Palette = palette
	}
	menuBarSpec.OnCommand = a.onCommand(spec.MenuBar.OnCommand)
	a.menuBar = tk.NewMenuBar(menuBarSpec)
	a.hasMenuBar = len(menuBarSpec.Menus) > 0

	statusLineSpec := spec.StatusLine
	if statusLineSpec.Palette == nil {
		statusLineSpec.Palette = palette
	}
	if statusLineSpec.HelpCtx == nil {
		statusLineSpec.HelpCtx = a.menuBar.HelpCtx
	}
	statusLineSpec.OnCommand = a.onCommand(spec.StatusLine.OnCommand)
	a.statusLine = tk.NewStatusLine(statusLineSpec)
	a.hasStatusLine = len(statusLineSpec.Defs) > 0

	desktopSpec := spec.Desktop
	if desktopSpec.Palette == nil {
		desktopSpec.Palette = palette
	}
	a.desktop = tk.NewDesktop(desktopSpec)

	return &a
}

// Returns a callback for widgets that posts the command, after calling the
// callback given in the widget spec, if any.
func (a *app) onCommand(f func(tk.Command)) func(tk.Command) {
	return func(c tk.Command) {
		if f != nil {
			f(c)
		}
		a.PostCommand(c)
	}
}

func (a *app) MenuBar() tk.MenuBar       { return a.menuBar }
func (a *app) StatusLine() tk.StatusLine { return a.statusLine }
func (a *app) Desktop() tk.Desktop       { return a.desktop }

func (a *app) handle(e event) {
	switch e := e.(type) {
	case os.Signal:
		if sys.IsQuitSignal(e) {
			logger.Debugw("quitting on signal", "signal", e)
			a.handleCommand(tk.CmQuit)
		}
	case tk.CommandEvent:
		a.handleCommand(e.Command)
		a.releaseStatusLine()
	case term.Event:
		a.handleTermEvent(e)
		a.releaseStatusLine()
		if !a.loop.HasReturned() {
			a.reqRead <- struct{}{}
		}
	}
}

// An active menu bar takes all mouse events, so the status line would never
// see the release of an item pressed before. Drop the press instead.
func (a *app) releaseStatusLine() {
	if a.menuBar.Active() && a.statusLine.CopyState().Pressed != 0 {
		a.statusLine.MutateState(func(s *tk.StatusLineState) { s.Pressed = 0 })
	}
}

func (a *app) handleCommand(c tk.Command) {
	switch c {
	case tk.CmQuit:
		a.loop.Return(nil)
	case tk.CmMenu, tk.CmClose:
		if !a.menuBar.HandleCommand(c) {
			logger.Debugw("command not handled", "command", c)
		}
	}
	a.HandleEvent(a, tk.CommandEvent{Command: c})
}

func (a *app) handleTermEvent(e term.Event) {
	handled := false
	switch e := e.(type) {
	case term.KeyEvent:
		handled = a.handleKey(e)
		if !handled {
			logger.Debugw("unhandled key", "key", ui.Key(e))
		}
	case term.MouseEvent:
		handled = a.handleMouse(e)
	case term.ResizeEvent:
		a.RedrawFull()
		handled = true
	case term.FatalErrorEvent:
		a.loop.Return(e.Err)
		handled = true
	case term.NonfatalErrorEvent:
		logger.Warnw("error reading terminal", "error", e.Err)
		handled = true
	}
	if !handled {
		a.HandleEvent(a, e)
	}
}

func (a *app) handleKey(e term.KeyEvent) bool {
	if a.menuBar.Active() {
		// An active menu bar is modal.
		return a.menuBar.Handle(e)
	}
	return a.menuBar.Handle(e) || a.desktop.Handle(e) ||
		(a.hasStatusLine && a.statusLine.Handle(e))
}

func (a *app) handleMouse(e term.MouseEvent) bool {
	if a.menuBar.Active() {
		return a.menuBar.Handle(e)
	}
	height, _ := a.TTY.Size()
	top, bottom := a.layout(height)
	if a.hasStatusLine && (e.Line == bottom || a.statusLine.CopyState().Pressed != 0) {
		// Releases are delivered to the status line even when they happen
		// elsewhere, so that it can reset the pressed item.
		e.Line -= bottom
		return a.statusLine.Handle(e)
	}
	if a.hasMenuBar && e.Line == 0 {
		return a.menuBar.Handle(e)
	}
	if top <= e.Line && e.Line < bottom {
		e.Line -= top
		return a.desktop.Handle(e)
	}
	return false
}

// Returns the first line of the desktop and the line after the last one,
// which is where the status line goes.
func (a *app) layout(height int) (top, bottom int) {
	bottom = height
	if a.hasMenuBar && bottom > top {
		top = 1
	}
	if a.hasStatusLine && bottom > top {
		bottom--
	}
	return top, bottom
}

func (a *app) redraw(flag redrawFlag) {
	height, width := a.TTY.Size()
	buf := a.render(width, height)
	if err := a.TTY.UpdateBuffer(buf, flag&fullRedraw != 0); err != nil {
		logger.Warnw("error updating terminal", "error", err)
	}
}

// Renders the whole screen: the menu bar, the desktop, the status line, and
// the open drop-down box over them.
func (a *app) render(width, height int) *term.Buffer {
	buf := &term.Buffer{Width: width}
	if width <= 0 || height <= 0 {
		return buf
	}
	top, bottom := a.layout(height)
	if top > 0 {
		buf.ExtendDown(a.menuBar.Render(width, top), false)
	}
	if bottom > top {
		buf.ExtendDown(a.desktop.Render(width, bottom-top), false)
	}
	if bottom < height {
		buf.ExtendDown(a.statusLine.Render(width, height-bottom), false)
	}
	if box, at := a.menuBar.RenderBox(width, height); box != nil {
		buf.Blit(box, at)
	}
	return buf
}

func (a *app) Run() error {
	restore, err := a.TTY.Setup()
	if err != nil {
		return err
	}
	defer restore()

	var wg sync.WaitGroup
	defer wg.Wait()

	// Relay input events.
	a.reqRead = make(chan struct{}, 1)
	a.reqRead <- struct{}{}
	defer close(a.reqRead)
	defer a.TTY.CloseReader()
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range a.reqRead {
			event, err := a.TTY.ReadEvent()
			if err == nil {
				a.loop.Input(event)
			} else if err == term.ErrStopped {
				return
			} else {
				a.loop.Input(term.FatalErrorEvent{Err: err})
				return
			}
		}
	}()

	// Relay signals.
	sigCh := a.TTY.NotifySignals()
	defer a.TTY.StopSignals()
	wg.Add(1)
	go func() {
		for sig := range sigCh {
			a.loop.Input(sig)
		}
		wg.Done()
	}()

	logger.Debug("app started")
	defer logger.Debug("app stopped")
	return a.loop.Run()
}

func (a *app) PostCommand(c tk.Command) {
	a.loop.Input(tk.CommandEvent{Command: c})
}

func (a *app) Redraw() {
	a.loop.Redraw(false)
}

func (a *app) RedrawFull() {
	a.loop.Redraw(true)
}
