// ABOUTME: End-to-end tests of Engine over a real terminal.Session on a pseudo-terminal.
// ABOUTME: A scripted emulator on the pty master answers (or ignores) each query.

//go:build unix

package colorquery

import (
	"context"
	"testing"
	"time"

	"github.com/mauromedda/termcolors/internal/ptytest"
	"github.com/mauromedda/termcolors/pkg/terminal"
)

func TestEngine_PTY(t *testing.T) {
	t.Parallel()

	emu := ptytest.Start(t, map[string]string{
		"10":  "rgb:ff00/8000/0000",
		"4;1": "rgba:8080/4040/2020/ffff",
		"4;2": "rgb:0/c/0",
	})
	emu.Split(3, 5*time.Millisecond)

	got := map[string]Result{}
	err := terminal.With(func(s *terminal.Session) error {
		e := New(s, WithTimeout(200*time.Millisecond), WithRetries(5))
		for _, spec := range []Spec{Foreground(), Indexed(1), Indexed(2)} {
			res, err := e.Query(context.Background(), spec)
			if err != nil {
				return err
			}
			got[spec.String()] = res
		}

		// Background is never answered; keep this one cheap.
		quick := New(s, WithTimeout(20*time.Millisecond), WithRetries(2))
		res, err := quick.Query(context.Background(), Background())
		got["11"] = res
		return err
	}, terminal.WithFiles(emu.Slave(), nil))
	if err != nil {
		t.Fatalf("With() unexpected error: %v", err)
	}

	want := map[string]string{"10": "#ff8000", "4;1": "#4020ff", "4;2": "#00cc00", "11": ""}
	for spec, color := range want {
		if got[spec].String() != color {
			t.Errorf("query %s = %q (%s), want %q", spec, got[spec].String(), got[spec].Reason, color)
		}
	}
	if got["11"].Reason != ReasonTimedOut {
		t.Errorf("unanswered query reason = %s, want %s", got["11"].Reason, ReasonTimedOut)
	}

	queries := emu.Queries()
	if len(queries) != 4 || queries[0] != "10" || queries[3] != "11" {
		t.Errorf("emulator saw %v, want queries in program order", queries)
	}
}
