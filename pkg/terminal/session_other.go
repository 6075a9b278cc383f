// ABOUTME: Session stub for platforms without termios; Acquire always fails.

//go:build !unix

package terminal

import (
	"errors"
	"time"
)

// Session is unavailable on this platform.
type Session struct{}

// Acquire reports that terminal mode control is unsupported here.
func Acquire(opts ...Option) (*Session, error) {
	return nil, &ConfigurationError{Op: "acquire", Err: errors.ErrUnsupported}
}

func (s *Session) Release() error                     { return nil }
func (s *Session) Poll(_ time.Duration) (bool, error) { return false, errors.ErrUnsupported }
func (s *Session) Read(_ []byte) (int, error)         { return 0, errors.ErrUnsupported }
func (s *Session) Write(_ []byte) (int, error)        { return 0, errors.ErrUnsupported }
