// ABOUTME: Engine runs one OSC color query/reply cycle per Spec over a terminal Conn.
// ABOUTME: Flushes stale input, writes the query, then polls with a bounded retry budget.

package colorquery

import (
	"context"
	"time"

	"github.com/mauromedda/termcolors/internal/log"
)

const (
	// DefaultTimeout bounds each poll for a reply.
	DefaultTimeout = 500 * time.Millisecond
	// DefaultRetries bounds how many polls one query may spend.
	DefaultRetries = 5

	readChunk = 1024
	// maxFlushReads stops the stale-input drain on a peer that never goes quiet.
	maxFlushReads = 256
)

// Conn is the polling handle the engine needs from a terminal session.
type Conn interface {
	Poll(timeout time.Duration) (bool, error)
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
}

// Reason records why a query's receive loop ended.
type Reason int

const (
	// ReasonMatched means a reply was parsed and normalized.
	ReasonMatched Reason = iota
	// ReasonTimedOut means no input arrived within the retry budget.
	ReasonTimedOut
	// ReasonMalformed means input arrived but never formed a reply.
	ReasonMalformed
	// ReasonFailed means the terminal returned an I/O error.
	ReasonFailed
	// ReasonCancelled means the context ended the query.
	ReasonCancelled
	// ReasonSkipped means the slot was never queried.
	ReasonSkipped
)

func (r Reason) String() string {
	switch r {
	case ReasonMatched:
		return "matched"
	case ReasonTimedOut:
		return "timed out"
	case ReasonMalformed:
		return "malformed"
	case ReasonFailed:
		return "failed"
	case ReasonCancelled:
		return "cancelled"
	case ReasonSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Result is the outcome of one query. Only ReasonMatched carries a Color;
// every other reason is an absent color, not an error.
type Result struct {
	Color    Color
	Reason   Reason
	Attempts int
	Received int
}

// Known reports whether the result carries a color.
func (r Result) Known() bool {
	return r.Reason == ReasonMatched
}

// String returns "#rrggbb" for a known color and "" otherwise.
func (r Result) String() string {
	if !r.Known() {
		return ""
	}
	return r.Color.String()
}

// Engine issues color queries one at a time over a single Conn.
type Engine struct {
	conn    Conn
	timeout time.Duration
	retries int
	scratch []byte
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout sets the per-poll deadline.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithRetries sets the number of polls a query may spend.
func WithRetries(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.retries = n
		}
	}
}

// New returns an Engine bound to conn.
func New(conn Conn, opts ...Option) *Engine {
	e := &Engine{
		conn:    conn,
		timeout: DefaultTimeout,
		retries: DefaultRetries,
		scratch: make([]byte, readChunk),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Query asks the terminal for spec's color. It never waits longer than
// retries x timeout. Only context cancellation is returned as an error;
// a silent or garbled terminal yields an absent Result.
func (e *Engine) Query(ctx context.Context, spec Spec) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{Reason: ReasonCancelled}, err
	}

	start := time.Now()
	res, err := e.exchange(ctx, spec)
	log.Debug("osc %s: %s after %d polls, %d bytes, %s",
		spec, res.Reason, res.Attempts, res.Received, time.Since(start).Round(time.Millisecond))
	return res, err
}

func (e *Engine) exchange(ctx context.Context, spec Spec) (Result, error) {
	if n, err := e.flush(); err != nil {
		log.Debug("osc %s: flushing stale input: %v", spec, err)
		return Result{Reason: ReasonFailed}, nil
	} else if n > 0 {
		log.Debug("osc %s: discarded %d stale bytes", spec, n)
	}

	if _, err := e.conn.Write(spec.Query()); err != nil {
		log.Debug("osc %s: %v", spec, err)
		return Result{Reason: ReasonFailed}, nil
	}

	var reply []byte
	res := Result{Reason: ReasonTimedOut}
	for res.Attempts < e.retries {
		if err := ctx.Err(); err != nil {
			res.Reason = ReasonCancelled
			return res, err
		}
		res.Attempts++

		ready, err := e.conn.Poll(e.timeout)
		if err != nil {
			log.Debug("osc %s: %v", spec, err)
			res.Reason = ReasonFailed
			return res, nil
		}
		if !ready {
			continue
		}

		n, err := e.readAvailable(&reply)
		res.Received += n
		if err != nil {
			log.Debug("osc %s: %v", spec, err)
			res.Reason = ReasonFailed
			return res, nil
		}

		r, ok := FindReply(reply)
		if !ok {
			continue
		}
		c, err := r.Color()
		if err != nil {
			log.Debug("osc %s: %v", spec, err)
			continue
		}
		res.Color = c
		res.Reason = ReasonMatched
		return res, nil
	}

	if res.Received > 0 {
		res.Reason = ReasonMalformed
	}
	return res, nil
}

// flush discards input already pending so a reply to an earlier,
// abandoned query cannot be taken for this one.
func (e *Engine) flush() (int, error) {
	discarded := 0
	for range maxFlushReads {
		ready, err := e.conn.Poll(0)
		if err != nil {
			return discarded, err
		}
		if !ready {
			return discarded, nil
		}
		n, err := e.conn.Read(e.scratch)
		if err != nil {
			return discarded, err
		}
		if n == 0 {
			return discarded, nil
		}
		discarded += n
	}
	return discarded, nil
}

// readAvailable appends everything readable right now to buf.
func (e *Engine) readAvailable(buf *[]byte) (int, error) {
	total := 0
	for {
		n, err := e.conn.Read(e.scratch)
		*buf = append(*buf, e.scratch[:n]...)
		total += n
		if err != nil || n < len(e.scratch) {
			return total, err
		}
	}
}
