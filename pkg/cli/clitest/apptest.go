package clitest

import (
	"testing"
	"time"

	"src.tvim.sh/pkg/cli"
	"src.tvim.sh/pkg/cli/tk"
	"src.tvim.sh/pkg/testutil"
)

// Fixture is a test fixture.
type Fixture struct {
	App   cli.App
	TTY   TTYCtrl
	errCh <-chan error
}

// Setup sets up a test fixture. It contains an App whose Run method has been
// started asynchronously.
func Setup(fns ...func(*cli.AppSpec, TTYCtrl)) *Fixture {
	tty, ttyCtrl := NewFakeTTY()
	spec := cli.AppSpec{TTY: tty}
	for _, fn := range fns {
		fn(&spec, ttyCtrl)
	}
	app := cli.NewApp(spec)
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Run()
		close(errCh)
	}()
	return &Fixture{app, ttyCtrl, errCh}
}

// WithSpec takes a function that operates on *cli.AppSpec, and wraps it into a
// form suitable for passing to Setup.
func WithSpec(f func(*cli.AppSpec)) func(*cli.AppSpec, TTYCtrl) {
	return func(spec *cli.AppSpec, _ TTYCtrl) { f(spec) }
}

// WithTTY takes a function that operates on TTYCtrl, and wraps it to a form
// suitable for passing to Setup.
func WithTTY(f func(TTYCtrl)) func(*cli.AppSpec, TTYCtrl) {
	return func(_ *cli.AppSpec, tty TTYCtrl) { f(tty) }
}

// Wait waits for Run to finish, and returns its return value. It fails the
// test if Run doesn't finish within 1 second.
func (f *Fixture) Wait(t *testing.T) error {
	t.Helper()
	select {
	case err, ok := <-f.errCh:
		if !ok {
			t.Fatal("Run already returned")
		}
		return err
	case <-time.After(testutil.Scaled(time.Second)):
		t.Fatal("Run did not return")
		return nil
	}
}

// Stop stops Run by posting the quit command, and waits for it to return. It
// fails the test if Run returns an error.
func (f *Fixture) Stop(t *testing.T) {
	t.Helper()
	f.App.PostCommand(tk.CmQuit)
	if err := f.Wait(t); err != nil {
		t.Errorf("Run returned error %v", err)
	}
}
