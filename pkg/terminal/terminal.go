// ABOUTME: Defines the Session contract for scoped raw-mode access to a terminal.
// ABOUTME: Holds platform-neutral options, errors and the With scope helper.

package terminal

import (
	"errors"
	"os"
)

// ErrNotTerminal reports that the input descriptor is not a terminal.
var ErrNotTerminal = errors.New("not a terminal")

// ErrHangup reports that the peer closed the terminal while polling.
var ErrHangup = errors.New("terminal hung up")

// ConfigurationError is returned when the terminal mode cannot be
// read, changed or restored.
type ConfigurationError struct {
	Op  string
	Err error
}

func (e *ConfigurationError) Error() string {
	return "terminal " + e.Op + ": " + e.Err.Error()
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Releaser restores whatever state it acquired. Release must be safe to
// call more than once.
type Releaser interface {
	Release() error
}

type options struct {
	device string
	in     *os.File
	out    *os.File
}

// Option configures Acquire.
type Option func(*options)

// WithDevice makes the session open path (e.g. /dev/tty) and use it for
// both input and output. The device is closed on Release.
func WithDevice(path string) Option {
	return func(o *options) { o.device = path }
}

// WithFiles makes the session use already-open files. out may be nil,
// in which case in is used for both directions.
func WithFiles(in, out *os.File) Option {
	return func(o *options) {
		o.in = in
		o.out = out
	}
}

// With acquires a session, runs fn and releases the session on every
// exit path, including a panic inside fn. A release error is reported
// only when fn itself succeeded.
func With(fn func(*Session) error, opts ...Option) (err error) {
	s, err := Acquire(opts...)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := s.Release(); rerr != nil && err == nil {
			err = rerr
		}
	}()
	return fn(s)
}
