// Package sys provide system utilities with the same API across OSes.
package sys

import (
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"
)

const sigsChanBufferSize = 256

// NotifySignals returns a channel on which the signals that should end an
// interactive session get delivered.
func NotifySignals() chan os.Signal {
	sigCh := make(chan os.Signal, sigsChanBufferSize)
	signal.Notify(sigCh, quitSignals...)
	return sigCh
}

// StopSignals stops the delivery of signals to a channel returned by
// NotifySignals, and closes it.
func StopSignals(sigCh chan os.Signal) {
	signal.Stop(sigCh)
	close(sigCh)
}

// IsQuitSignal returns whether the signal should end an interactive session.
func IsQuitSignal(sig os.Signal) bool {
	for _, s := range quitSignals {
		if s == sig {
			return true
		}
	}
	return false
}

// IsATTY determines whether the given file is a terminal.
func IsATTY(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
