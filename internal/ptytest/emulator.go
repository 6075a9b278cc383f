// ABOUTME: Scripted terminal emulator on the master side of a pty, for tests
// ABOUTME: Answers OSC color queries from a table, optionally split into fragments

//go:build unix

package ptytest

import (
	"os"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
)

var queryPattern = regexp.MustCompile(`\x1b\]([0-9;]+);\?\x07`)

// Emulator reads queries written to the pty slave and answers the ones it
// has replies for. Unknown queries are recorded and left unanswered.
type Emulator struct {
	master *os.File
	slave  *os.File

	mu      sync.Mutex
	replies map[string]string
	queries []string
	split   int
	gap     time.Duration
}

// Start opens a pty and serves replies until the test ends. replies maps
// OSC parameters ("10", "4;1") to payloads ("rgb:ff00/8000/0000"). The
// test is skipped when the platform cannot allocate a pty.
func Start(t testing.TB, replies map[string]string) *Emulator {
	t.Helper()

	master, slave, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	e := &Emulator{master: master, slave: slave, replies: replies, split: 1}
	t.Cleanup(func() {
		_ = master.Close()
		_ = slave.Close()
	})

	go e.serve()
	return e
}

// Slave returns the terminal side to hand to a session.
func (e *Emulator) Slave() *os.File {
	return e.slave
}

// Split makes every reply arrive in n fragments, gap apart.
func (e *Emulator) Split(n int, gap time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.split = max(n, 1)
	e.gap = gap
}

// Queries returns the OSC parameters received so far, in order.
func (e *Emulator) Queries() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return append([]string(nil), e.queries...)
}

func (e *Emulator) serve() {
	buf := make([]byte, 4096)
	var pending []byte
	for {
		n, err := e.master.Read(buf)
		if err != nil {
			return
		}
		pending = append(pending, buf[:n]...)

		for {
			loc := queryPattern.FindSubmatchIndex(pending)
			if loc == nil {
				break
			}
			params := string(pending[loc[2]:loc[3]])
			pending = pending[loc[1]:]
			if err := e.answer(params); err != nil {
				return
			}
		}
	}
}

func (e *Emulator) answer(params string) error {
	e.mu.Lock()
	e.queries = append(e.queries, params)
	payload, ok := e.replies[params]
	split, gap := e.split, e.gap
	e.mu.Unlock()

	if !ok {
		return nil
	}

	reply := "\x1b]" + params + ";" + payload + "\a"
	size := (len(reply) + split - 1) / split
	for start := 0; start < len(reply); start += size {
		end := min(start+size, len(reply))
		if _, err := e.master.Write([]byte(reply[start:end])); err != nil {
			return err
		}
		if end < len(reply) && gap > 0 {
			time.Sleep(gap)
		}
	}
	return nil
}
