// ABOUTME: Unix Session: captures termios, switches to no-echo non-canonical
// ABOUTME: input with VMIN=0/VTIME=0, and polls/reads/writes the raw descriptors.

//go:build unix

package terminal

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Session owns the terminal's line discipline between Acquire and
// Release. It is not safe for concurrent queries; the mutex only guards
// Release against a racing signal path.
type Session struct {
	mu sync.Mutex

	in, out   int
	inFile    *os.File
	outFile   *os.File
	ownedFile *os.File

	prev    *unix.Termios
	setMode func(fd int, t *unix.Termios) error
}

// Acquire switches the terminal to character-at-a-time input with echo
// disabled and returns the session. If any step fails the previous mode
// is restored before the error is returned.
func Acquire(opts ...Option) (*Session, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return acquire(o, setTermios)
}

func acquire(o options, setMode func(fd int, t *unix.Termios) error) (*Session, error) {
	s := &Session{setMode: setMode}
	if err := s.open(o); err != nil {
		return nil, err
	}
	if err := s.configure(); err != nil {
		_ = s.Release()
		return nil, err
	}
	return s, nil
}

func (s *Session) open(o options) error {
	switch {
	case o.device != "":
		f, err := os.OpenFile(o.device, os.O_RDWR|unix.O_NOCTTY, 0)
		if err != nil {
			return &ConfigurationError{Op: "open " + o.device, Err: err}
		}
		s.ownedFile = f
		s.inFile, s.outFile = f, f
	case o.in != nil:
		s.inFile, s.outFile = o.in, o.out
		if s.outFile == nil {
			s.outFile = o.in
		}
	default:
		s.inFile, s.outFile = os.Stdin, os.Stdout
	}
	s.in = int(s.inFile.Fd())
	s.out = int(s.outFile.Fd())
	return nil
}

func (s *Session) configure() error {
	if !term.IsTerminal(s.in) {
		return &ConfigurationError{Op: "check input", Err: ErrNotTerminal}
	}

	prev, err := getTermios(s.in)
	if err != nil {
		return &ConfigurationError{Op: "get mode", Err: err}
	}
	s.prev = prev

	raw := *prev
	raw.Lflag &^= unix.ECHO | unix.ICANON
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 0
	if err := s.setMode(s.in, &raw); err != nil {
		return &ConfigurationError{Op: "set mode", Err: err}
	}
	return nil
}

// Release restores the mode captured by Acquire and closes a device the
// session opened itself. Calls after the first are no-ops.
func (s *Session) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	if prev := s.prev; prev != nil {
		s.prev = nil
		if err := s.setMode(s.in, prev); err != nil {
			errs = append(errs, &ConfigurationError{Op: "restore mode", Err: err})
		}
	}
	if s.ownedFile != nil {
		if err := s.ownedFile.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing terminal device: %w", err))
		}
		s.ownedFile = nil
	}
	return errors.Join(errs...)
}

// Poll waits up to timeout for input. A zero timeout checks without
// waiting. An interrupted wait reports no data.
func (s *Session) Poll(timeout time.Duration) (bool, error) {
	ms := int(timeout / time.Millisecond)
	if timeout > 0 && ms == 0 {
		ms = 1
	}

	fds := []unix.PollFd{{Fd: int32(s.in), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, ms)
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return false, nil
		}
		return false, fmt.Errorf("polling terminal: %w", err)
	}
	if n == 0 {
		return false, nil
	}

	rev := fds[0].Revents
	if rev&unix.POLLIN != 0 {
		return true, nil
	}
	if rev&(unix.POLLHUP|unix.POLLERR|unix.POLLNVAL) != 0 {
		return false, ErrHangup
	}
	return false, nil
}

// Read returns the bytes currently buffered by the terminal. With VMIN
// and VTIME at zero it returns 0 immediately when nothing is pending.
func (s *Session) Read(p []byte) (int, error) {
	for {
		n, err := unix.Read(s.in, p)
		switch {
		case errors.Is(err, unix.EINTR):
			continue
		case errors.Is(err, unix.EAGAIN):
			return 0, nil
		case err != nil:
			return 0, fmt.Errorf("reading terminal: %w", err)
		case n < 0:
			return 0, nil
		}
		return n, nil
	}
}

// Write sends p straight to the output descriptor with no buffering.
func (s *Session) Write(p []byte) (int, error) {
	written := 0
	for written < len(p) {
		n, err := unix.Write(s.out, p[written:])
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return written, fmt.Errorf("writing terminal: %w", err)
		}
		written += n
	}
	return written, nil
}

func getTermios(fd int) (*unix.Termios, error) {
	return unix.IoctlGetTermios(fd, ioctlGetTermios)
}

func setTermios(fd int, t *unix.Termios) error {
	return unix.IoctlSetTermios(fd, ioctlSetTermios, t)
}
