package log

import (
	"fmt"
	"os"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// FileLogger appends trace events to a CBOR file. It is safe to share
// one FileLogger between a parser and a printer running concurrently.
//
// Log never fails; the first write error is held back and reported by
// Close, so a broken trace sink cannot disturb the session it observes.
type FileLogger struct {
	path string

	mu     sync.Mutex
	file   *os.File
	enc    *cbor.Encoder
	err    error
	closed bool
}

// NewFileLogger opens path for appending, creating it with mode 0644 if
// it does not exist. Events from successive runs accumulate in order.
func NewFileLogger(path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening trace file %s: %w", path, err)
	}
	return &FileLogger{
		path: path,
		file: f,
		enc:  NewEncoder(f),
	}, nil
}

// Log appends the event to the file. Calls after Close are ignored.
func (l *FileLogger) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	if err := l.enc.Encode(event); err != nil && l.err == nil {
		l.err = fmt.Errorf("writing trace file %s: %w", l.path, err)
	}
}

// Close closes the file and reports the first write error, if any.
// Close is idempotent.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	closeErr := l.file.Close()
	if l.err != nil {
		return l.err
	}
	return closeErr
}

var _ Logger = (*FileLogger)(nil)
