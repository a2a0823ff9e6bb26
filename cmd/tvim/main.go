// Tvim is a full-screen text-mode application skeleton: a menu bar with a
// single File menu, a status line with key hints, and a desktop. It runs until
// the user quits with Alt-X, the File menu, or the status line.
package main

import (
	"os"

	"src.tvim.sh/pkg/buildinfo"
	"src.tvim.sh/pkg/prog"
	"src.tvim.sh/pkg/tvim"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(&buildinfo.Program{}, &tvim.Program{})))
}
