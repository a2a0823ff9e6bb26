//go:build unix

package sys

import (
	"os"

	"golang.org/x/sys/unix"
)

var quitSignals = []os.Signal{unix.SIGHUP, unix.SIGINT, unix.SIGTERM}
