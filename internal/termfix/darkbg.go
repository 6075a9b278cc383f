// ABOUTME: Hands the scanned background darkness to lipgloss before any preview rendering
// ABOUTME: Keeps lipgloss from sending its own OSC 11 query, whose reply would leak into stdin

package termfix

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/termcolors/pkg/palette"
)

// SetBackground tells r whether the terminal background is dark, using
// the scanned palette. An unknown background is assumed dark. Without an
// explicit value lipgloss queries the terminal itself on first use.
func SetBackground(r *lipgloss.Renderer, p *palette.Palette) (dark bool) {
	dark, ok := p.IsDark()
	if !ok {
		dark = true
	}
	r.SetHasDarkBackground(dark)
	return dark
}
