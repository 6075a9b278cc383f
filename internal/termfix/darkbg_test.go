// ABOUTME: Tests that SetBackground forwards scanned darkness to the lipgloss renderer

package termfix

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/termcolors/pkg/colorquery"
	"github.com/mauromedda/termcolors/pkg/palette"
)

type fixedBackground struct{ c *colorquery.Color }

func (f fixedBackground) Query(_ context.Context, spec colorquery.Spec) (colorquery.Result, error) {
	if f.c != nil && spec.String() == "11" {
		return colorquery.Result{Color: *f.c, Reason: colorquery.ReasonMatched}, nil
	}
	return colorquery.Result{Reason: colorquery.ReasonTimedOut}, nil
}

func TestSetBackground(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		bg   *colorquery.Color
		want bool
	}{
		{name: "dark", bg: &colorquery.Color{R: 0x28, G: 0x2c, B: 0x34}, want: true},
		{name: "light", bg: &colorquery.Color{R: 0xff, G: 0xff, B: 0xff}, want: false},
		{name: "unknown assumes dark", bg: nil, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sel := func(path string) bool { return path == "primary/background" }
			p, err := palette.Scan(context.Background(), fixedBackground{tt.bg}, palette.DefaultTable(), sel)
			if err != nil {
				t.Fatal(err)
			}

			r := lipgloss.NewRenderer(&bytes.Buffer{})
			if got := SetBackground(r, p); got != tt.want {
				t.Errorf("SetBackground() = %v, want %v", got, tt.want)
			}
			if r.HasDarkBackground() != tt.want {
				t.Errorf("renderer HasDarkBackground() = %v, want %v", r.HasDarkBackground(), tt.want)
			}
		})
	}
}
