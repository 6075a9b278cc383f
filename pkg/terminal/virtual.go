// ABOUTME: VirtualTerminal is an in-memory Poll/Read/Write handle for tests without a TTY.
// ABOUTME: Runs on a virtual clock so reply delays and poll timeouts are deterministic.

package terminal

import (
	"bytes"
	"sync"
	"time"
)

// Reply is input the virtual peer delivers Delay after a query is written.
type Reply struct {
	Delay time.Duration
	Data  string
}

type pendingInput struct {
	at   time.Duration
	data []byte
}

// VirtualTerminal is a fake terminal whose clock only moves when Poll waits
// or Advance is called. A responder decides what the peer answers to
// each write.
type VirtualTerminal struct {
	mu        sync.Mutex
	now       time.Duration
	pending   []pendingInput
	input     bytes.Buffer
	output    bytes.Buffer
	writes    []string
	respond   func(query string) []Reply
	polls     int
	releases  int
	maxRead   int
}

// NewVirtualTerminal returns a VirtualTerminal whose peer never answers.
func NewVirtualTerminal() *VirtualTerminal {
	return &VirtualTerminal{}
}

// Respond installs the peer behaviour invoked for every Write.
func (v *VirtualTerminal) Respond(fn func(query string) []Reply) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.respond = fn
}

// SetMaxRead caps how many bytes a single Read returns, to force
// fragmented delivery. Zero means unlimited.
func (v *VirtualTerminal) SetMaxRead(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.maxRead = n
}

// Queue schedules input delay after the current virtual time.
func (v *VirtualTerminal) Queue(delay time.Duration, data string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.schedule(delay, data)
}

func (v *VirtualTerminal) schedule(delay time.Duration, data string) {
	v.pending = append(v.pending, pendingInput{at: v.now + delay, data: []byte(data)})
}

// deliver moves every pending chunk due at or before the current time
// into the readable input, preserving schedule order.
func (v *VirtualTerminal) deliver() {
	kept := v.pending[:0]
	for _, p := range v.pending {
		if p.at <= v.now {
			v.input.Write(p.data)
			continue
		}
		kept = append(kept, p)
	}
	v.pending = kept
}

// Poll advances the virtual clock to the first arrival within timeout,
// or by the whole timeout when nothing arrives.
func (v *VirtualTerminal) Poll(timeout time.Duration) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.polls++
	v.deliver()
	if v.input.Len() > 0 {
		return true, nil
	}

	deadline := v.now + timeout
	next := time.Duration(-1)
	for _, p := range v.pending {
		if p.at <= deadline && (next < 0 || p.at < next) {
			next = p.at
		}
	}
	if next < 0 {
		v.now = deadline
		return false, nil
	}
	v.now = next
	v.deliver()
	return true, nil
}

// Read drains delivered input into p.
func (v *VirtualTerminal) Read(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.maxRead > 0 && len(p) > v.maxRead {
		p = p[:v.maxRead]
	}
	n, _ := v.input.Read(p)
	return n, nil
}

// Write records p and schedules the responder's replies.
func (v *VirtualTerminal) Write(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.output.Write(p)
	v.writes = append(v.writes, string(p))
	if v.respond != nil {
		for _, r := range v.respond(string(p)) {
			v.schedule(r.Delay, r.Data)
		}
	}
	return len(p), nil
}

// Release counts releases; it never fails.
func (v *VirtualTerminal) Release() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.releases++
	return nil
}

// --- Test helpers ---

// Advance moves the virtual clock forward by d.
func (v *VirtualTerminal) Advance(d time.Duration) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.now += d
	v.deliver()
}

// Elapsed returns the virtual time since construction.
func (v *VirtualTerminal) Elapsed() time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.now
}

// Output returns everything written so far.
func (v *VirtualTerminal) Output() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.output.String()
}

// Writes returns each Write call's payload in order.
func (v *VirtualTerminal) Writes() []string {
	v.mu.Lock()
	defer v.mu.Unlock()

	return append([]string(nil), v.writes...)
}

// PollCount returns how many times Poll was called.
func (v *VirtualTerminal) PollCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.polls
}

// ReleaseCount returns how many times Release was called.
func (v *VirtualTerminal) ReleaseCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.releases
}
