// Package clitest provides utilities for testing cli.App.
package clitest

import (
	"os"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"src.tvim.sh/pkg/cli"
	"src.tvim.sh/pkg/cli/term"
	"src.tvim.sh/pkg/testutil"
)

const (
	// Maximum number of buffer updates FakeTTY expect to see.
	fakeTTYBufferUpdates = 4096
	// Maximum number of events FakeTTY produces.
	fakeTTYEvents = 4096
	// Maximum number of signals FakeTTY produces.
	fakeTTYSignals = 4096
)

// An implementation of the cli.TTY interface that is useful in tests.
type fakeTTY struct {
	setup func() (func(), error)
	// Channel that ReadEvent reads from. Can be used to inject additional
	// events.
	eventCh chan term.Event
	// Whether eventCh has been closed.
	eventChClosed bool
	// Mutex for synchronizing writing and closing eventCh.
	eventChMutex sync.Mutex
	// Channel for publishing updates of the buffer.
	bufCh chan *term.Buffer
	// Records history of the buffer.
	bufs []*term.Buffer
	// Number of full updates.
	fullUpdates int
	// Mutex for guarding bufs and fullUpdates.
	bufMutex sync.RWMutex
	// Channel that NotifySignals returns. Can be used to inject signals.
	sigCh chan os.Signal
	// Whether StopSignals has been called.
	sigStopped bool

	sizeMutex sync.RWMutex
	// Predefined sizes.
	height, width int
}

// Initial size of fake TTY.
const (
	FakeTTYHeight = 20
	FakeTTYWidth  = 50
)

// NewFakeTTY creates a new FakeTTY and a handle for controlling it. The initial
// size of the terminal is FakeTTYHeight and FakeTTYWidth.
func NewFakeTTY() (cli.TTY, TTYCtrl) {
	tty := &fakeTTY{
		eventCh: make(chan term.Event, fakeTTYEvents),
		sigCh:   make(chan os.Signal, fakeTTYSignals),
		bufCh:   make(chan *term.Buffer, fakeTTYBufferUpdates),
		height:  FakeTTYHeight, width: FakeTTYWidth,
	}
	return tty, TTYCtrl{tty}
}

// Delegates to the setup function specified using the SetSetup method of
// TTYCtrl, or return a nop function and a nil error.
func (t *fakeTTY) Setup() (func(), error) {
	if t.setup == nil {
		return func() {}, nil
	}
	return t.setup()
}

// Returns the size specified by using the SetSize method of TTYCtrl.
func (t *fakeTTY) Size() (h, w int) {
	t.sizeMutex.RLock()
	defer t.sizeMutex.RUnlock()
	return t.height, t.width
}

// Returns next event from t.eventCh, or term.ErrStopped if it has been
// closed.
func (t *fakeTTY) ReadEvent() (term.Event, error) {
	event, ok := <-t.eventCh
	if !ok {
		return nil, term.ErrStopped
	}
	return event, nil
}

// Closes eventCh.
func (t *fakeTTY) CloseReader() {
	t.eventChMutex.Lock()
	defer t.eventChMutex.Unlock()
	close(t.eventCh)
	t.eventChClosed = true
}

// UpdateBuffer records a new buffer, i.e. sending it to bufCh and appending
// it to bufs.
func (t *fakeTTY) UpdateBuffer(buf *term.Buffer, full bool) error {
	t.bufMutex.Lock()
	defer t.bufMutex.Unlock()
	t.bufs = append(t.bufs, buf)
	if full {
		t.fullUpdates++
	}
	t.bufCh <- buf
	return nil
}

func (t *fakeTTY) NotifySignals() <-chan os.Signal { return t.sigCh }

func (t *fakeTTY) StopSignals() {
	t.eventChMutex.Lock()
	defer t.eventChMutex.Unlock()
	close(t.sigCh)
	t.sigStopped = true
}

// TTYCtrl is an interface for controlling a fake terminal.
type TTYCtrl struct{ *fakeTTY }

// GetTTYCtrl takes a TTY and returns a TTYCtrl and true, if the TTY is a fake
// terminal. Otherwise it returns an invalid TTYCtrl and false.
func GetTTYCtrl(t cli.TTY) (TTYCtrl, bool) {
	fake, ok := t.(*fakeTTY)
	return TTYCtrl{fake}, ok
}

// SetSetup sets the return values of the Setup method of the fake terminal.
func (t TTYCtrl) SetSetup(restore func(), err error) {
	t.setup = func() (func(), error) {
		return restore, err
	}
}

// SetSize sets the size of the fake terminal.
func (t TTYCtrl) SetSize(h, w int) {
	t.sizeMutex.Lock()
	defer t.sizeMutex.Unlock()
	t.height, t.width = h, w
}

// Inject injects events to the fake terminal.
func (t TTYCtrl) Inject(events ...term.Event) {
	for _, event := range events {
		t.inject(event)
	}
}

func (t TTYCtrl) inject(event term.Event) {
	t.eventChMutex.Lock()
	defer t.eventChMutex.Unlock()
	if !t.eventChClosed {
		t.eventCh <- event
	}
}

// EventCh returns the underlying channel for delivering events.
func (t TTYCtrl) EventCh() chan term.Event {
	return t.eventCh
}

// InjectSignal injects signals.
func (t TTYCtrl) InjectSignal(sigs ...os.Signal) {
	t.eventChMutex.Lock()
	defer t.eventChMutex.Unlock()
	if t.sigStopped {
		return
	}
	for _, sig := range sigs {
		t.sigCh <- sig
	}
}

// FullUpdates returns the number of buffer updates that repainted the whole
// screen.
func (t TTYCtrl) FullUpdates() int {
	t.bufMutex.RLock()
	defer t.bufMutex.RUnlock()
	return t.fullUpdates
}

// TestBuffer verifies that a buffer will appear within 100ms, and aborts the
// test if it doesn't.
func (t TTYCtrl) TestBuffer(tt *testing.T, b *term.Buffer) {
	tt.Helper()
	ok := testBuffer(t.bufCh, func(buf *term.Buffer) bool {
		return reflect.DeepEqual(buf, b)
	})
	if !ok {
		tt.Logf("wanted buffer not shown:\n%s", b.TTYString())
		t.logLastBuffer(tt)
		tt.FailNow()
	}
}

// TestScreenText verifies that a buffer whose lines have the given plain
// texts will appear within 100ms, and aborts the test if it doesn't. Trailing
// spaces are ignored.
func (t TTYCtrl) TestScreenText(tt *testing.T, lines ...string) {
	tt.Helper()
	ok := testBuffer(t.bufCh, func(buf *term.Buffer) bool {
		return reflect.DeepEqual(ScreenText(buf), lines)
	})
	if !ok {
		tt.Logf("wanted screen not shown:\n%s", strings.Join(lines, "\n"))
		t.logLastBuffer(tt)
		tt.FailNow()
	}
}

func (t TTYCtrl) logLastBuffer(tt *testing.T) {
	tt.Helper()
	lastBuf := t.LastBuffer()
	if lastBuf == nil {
		tt.Logf("no buffer shown")
		return
	}
	tt.Logf("Last buffer:\n%s", strings.Join(ScreenText(lastBuf), "\n"))
}

// BufferHistory returns a slice of all buffers that have appeared.
func (t TTYCtrl) BufferHistory() []*term.Buffer {
	t.bufMutex.RLock()
	defer t.bufMutex.RUnlock()
	return append([]*term.Buffer(nil), t.bufs...)
}

// LastBuffer returns the last buffer that has appeared.
func (t TTYCtrl) LastBuffer() *term.Buffer {
	t.bufMutex.RLock()
	defer t.bufMutex.RUnlock()
	if len(t.bufs) == 0 {
		return nil
	}
	return t.bufs[len(t.bufs)-1]
}

// ScreenText returns the plain text of each line of a buffer, with trailing
// spaces removed.
func ScreenText(b *term.Buffer) []string {
	if b == nil {
		return nil
	}
	lines := make([]string, len(b.Lines))
	for i, line := range b.Lines {
		var sb strings.Builder
		for _, c := range line {
			sb.WriteString(c.Text)
		}
		lines[i] = strings.TrimRight(sb.String(), " ")
	}
	return lines
}

// Tests that a matching buffer appears on the channel within 100ms.
func testBuffer(ch <-chan *term.Buffer, match func(*term.Buffer) bool) bool {
	timeout := time.After(testutil.Scaled(100 * time.Millisecond))
	for {
		select {
		case buf := <-ch:
			if match(buf) {
				return true
			}
		case <-timeout:
			return false
		}
	}
}
