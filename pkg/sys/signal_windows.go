package sys

import (
	"os"

	"golang.org/x/sys/windows"
)

var quitSignals = []os.Signal{os.Interrupt, windows.SIGTERM}
