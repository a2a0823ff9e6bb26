package clitest

import (
	"os"
	"reflect"
	"testing"

	"src.tvim.sh/pkg/cli"
	"src.tvim.sh/pkg/cli/term"
)

func TestFakeTTY_Setup(t *testing.T) {
	tty, ttyCtrl := NewFakeTTY()
	restoreCalled := 0
	ttyCtrl.SetSetup(func() { restoreCalled++ }, nil)

	restore, err := tty.Setup()
	if err != nil {
		t.Errorf("Setup -> error %v, want nil", err)
	}
	restore()
	if restoreCalled != 1 {
		t.Errorf("Setup did not return restore")
	}
}

func TestFakeTTY_Size(t *testing.T) {
	tty, ttyCtrl := NewFakeTTY()
	ttyCtrl.SetSize(20, 30)
	h, w := tty.Size()
	if h != 20 || w != 30 {
		t.Errorf("Size -> (%v, %v), want (20, 30)", h, w)
	}
}

func TestFakeTTY_Events(t *testing.T) {
	tty, ttyCtrl := NewFakeTTY()
	ttyCtrl.Inject(term.K('a'), term.K('b'))
	if event, err := tty.ReadEvent(); event != term.K('a') || err != nil {
		t.Errorf("Got (%v, %v), want (%v, nil)", event, err, term.K('a'))
	}
	if event := <-ttyCtrl.EventCh(); event != term.K('b') {
		t.Errorf("Got event %v, want K('b')", event)
	}
}

func TestFakeTTY_CloseReader(t *testing.T) {
	tty, ttyCtrl := NewFakeTTY()
	tty.CloseReader()
	if event, err := tty.ReadEvent(); event != nil || err != term.ErrStopped {
		t.Errorf("Got (%v, %v), want (nil, ErrStopped)", event, err)
	}
	// Injecting after closing is a no-op.
	ttyCtrl.Inject(term.K('a'))
}

func TestFakeTTY_Signals(t *testing.T) {
	tty, ttyCtrl := NewFakeTTY()
	signals := tty.NotifySignals()
	ttyCtrl.InjectSignal(os.Interrupt, os.Kill)
	signal := <-signals
	if signal != os.Interrupt {
		t.Errorf("Got signal %v, want %v", signal, os.Interrupt)
	}
	signal = <-signals
	if signal != os.Kill {
		t.Errorf("Got signal %v, want %v", signal, os.Kill)
	}

	tty.StopSignals()
	if _, ok := <-signals; ok {
		t.Errorf("signal channel not closed after StopSignals")
	}
	// Injecting after stopping is a no-op.
	ttyCtrl.InjectSignal(os.Interrupt)
}

func TestFakeTTY_Buffer(t *testing.T) {
	buf1 := term.NewBufferBuilder(10).Write("buf 1").Buffer()
	buf2 := term.NewBufferBuilder(10).Write("buf 2").Buffer()
	buf3 := term.NewBufferBuilder(10).Write("buf 3").Newline().Buffer()

	tty, ttyCtrl := NewFakeTTY()

	if ttyCtrl.LastBuffer() != nil {
		t.Errorf("LastBuffer -> %v, want nil", ttyCtrl.LastBuffer())
	}

	tty.UpdateBuffer(buf1, true)
	if ttyCtrl.LastBuffer() != buf1 {
		t.Errorf("LastBuffer -> %v, want %v", ttyCtrl.LastBuffer(), buf1)
	}
	ttyCtrl.TestBuffer(t, buf1)

	tty.UpdateBuffer(buf2, false)
	if ttyCtrl.LastBuffer() != buf2 {
		t.Errorf("LastBuffer -> %v, want %v", ttyCtrl.LastBuffer(), buf2)
	}
	ttyCtrl.TestBuffer(t, buf2)

	tty.UpdateBuffer(buf3, false)
	ttyCtrl.TestScreenText(t, "buf 3", "")
	// Cannot test the failure branch as that will fail the test

	wantBufs := []*term.Buffer{buf1, buf2, buf3}
	if !reflect.DeepEqual(ttyCtrl.BufferHistory(), wantBufs) {
		t.Errorf("BufferHistory did not return {buf1, buf2, buf3}")
	}
	if n := ttyCtrl.FullUpdates(); n != 1 {
		t.Errorf("FullUpdates -> %v, want 1", n)
	}
}

func TestScreenText(t *testing.T) {
	if got := ScreenText(nil); got != nil {
		t.Errorf("ScreenText(nil) -> %v, want nil", got)
	}
	buf := term.NewBufferBuilder(10).
		Write("ab  ").Newline().WriteSpaces(3).Write("c").Buffer()
	want := []string{"ab", "   c"}
	if got := ScreenText(buf); !reflect.DeepEqual(got, want) {
		t.Errorf("ScreenText -> %q, want %q", got, want)
	}
}

func TestGetTTYCtrl_FakeTTY(t *testing.T) {
	fakeTTY, ttyCtrl := NewFakeTTY()
	if got, ok := GetTTYCtrl(fakeTTY); got != ttyCtrl || !ok {
		t.Errorf("-> %v, %v, want %v, %v", got, ok, ttyCtrl, true)
	}
}

func TestGetTTYCtrl_RealTTY(t *testing.T) {
	realTTY := cli.NewTTY(os.Stdin, os.Stderr)
	if _, ok := GetTTYCtrl(realTTY); ok {
		t.Errorf("-> _, true, want _, false")
	}
}
