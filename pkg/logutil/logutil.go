// Package logutil provides logging utilities.
package logutil

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	out  = &switchableWriter{w: io.Discard}
	root = zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		out, zapcore.DebugLevel))
)

// GetLogger gets a logger with the given name. All loggers share the output
// set by SetOutput or SetOutputFile, which discards everything by default.
func GetLogger(name string) *zap.SugaredLogger {
	return root.Named(name).Sugar()
}

// SetOutput redirects the output of all loggers obtained with GetLogger to
// the new io.Writer. If the old output was a file opened by SetOutputFile, it
// is closed.
func SetOutput(newout io.Writer) {
	out.set(newout, nil)
}

// SetOutputFile redirects the output of all loggers obtained with GetLogger to
// the named file. If the old output was a file opened by SetOutputFile, it is
// closed. The new file is truncated. SetOutFile("") is equivalent to
// SetOutput(io.Discard).
func SetOutputFile(fname string) error {
	if fname == "" {
		SetOutput(io.Discard)
		return nil
	}
	file, err := os.OpenFile(fname, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	out.set(file, file)
	return nil
}

// A zapcore.WriteSyncer whose destination can be changed at any time.
type switchableWriter struct {
	mutex sync.Mutex
	w     io.Writer
	// The file opened by SetOutputFile, if any.
	file *os.File
}

func (s *switchableWriter) set(w io.Writer, file *os.File) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.file != nil {
		s.file.Close()
	}
	s.w, s.file = w, file
}

func (s *switchableWriter) Write(p []byte) (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.w.Write(p)
}

func (s *switchableWriter) Sync() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.file != nil {
		return s.file.Sync()
	}
	return nil
}
