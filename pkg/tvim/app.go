// Package tvim implements the tvim application, a full-screen skeleton made up
// of a menu bar, a status line and a desktop.
package tvim

import (
	"src.tvim.sh/pkg/cli"
	"src.tvim.sh/pkg/cli/tk"
	"src.tvim.sh/pkg/logutil"
	"src.tvim.sh/pkg/ui"
)

var logger = logutil.GetLogger("tvim")

// NewApp creates the tvim application on the given terminal. A nil palette
// means the default one.
func NewApp(tty cli.TTY, palette *tk.Palette) cli.App {
	return cli.NewApp(cli.AppSpec{
		TTY:         tty,
		MenuBar:     initMenuBar(),
		StatusLine:  initStatusLine(),
		Desktop:     initDesktop(),
		Palette:     palette,
		HandleEvent: handleEvent,
	})
}

func initMenuBar() tk.MenuBarSpec {
	return tk.MenuBarSpec{Menus: []tk.Menu{
		{Name: "~F~ile", Key: ui.K('f', ui.Alt), Items: []tk.MenuItem{
			{Name: "E~x~it", Command: tk.CmQuit, Key: ui.K('x', ui.Alt),
				HelpCtx: tk.NoContext, Param: "Alt-X"},
		}},
	}}
}

func initStatusLine() tk.StatusLineSpec {
	return tk.StatusLineSpec{Defs: []tk.StatusDef{
		{Min: 0, Max: tk.MaxContext, Items: []tk.StatusItem{
			{Text: "~Alt-X~ Exit", Key: ui.K('x', ui.Alt), Command: tk.CmQuit},
			{Key: ui.K(ui.F10), Command: tk.CmMenu},
		}},
	}}
}

func initDesktop() tk.DesktopSpec {
	return tk.DesktopSpec{}
}

// Called after the framework has handled an event. CmQuit is handled by the
// framework, so there is nothing left to do here.
func handleEvent(_ cli.App, ev any) {
	if ev, ok := ev.(tk.CommandEvent); ok {
		switch ev.Command {
		default:
			logger.Debugw("command", "command", ev.Command)
		}
	}
}
