package tvim

import (
	"os"

	"src.tvim.sh/pkg/cli"
	"src.tvim.sh/pkg/cli/tk"
	"src.tvim.sh/pkg/prog"
)

// Program is the tvim subprogram, running the full-screen application.
type Program struct {
	// Terminal to run on. If nil, the terminal connected to stdin and stdout
	// is used.
	TTY cli.TTY
}

// Run runs the program.
func (p Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if len(args) > 0 {
		return prog.BadUsage("arguments are not supported")
	}
	palette := tk.DefaultPalette()
	if f.Palette != "" {
		if err := LoadPalette(f.Palette, &palette); err != nil {
			return err
		}
	}
	tty := p.TTY
	if tty == nil {
		tty = cli.NewTTY(fds[0], fds[1])
	}
	logger.Debug("starting")
	return NewApp(tty, &palette).Run()
}
