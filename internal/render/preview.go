// ABOUTME: Preview prints a swatch table of the scanned palette using lipgloss.
// ABOUTME: Names are padded with go-runewidth so swatches line up in every locale.

package render

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/mauromedda/termcolors/pkg/palette"
)

const (
	swatch      = "      "
	unknownMark = "  ??  "
	hexWidth    = len("#rrggbb")
)

// Preview writes one line per non-sequence slot and a compact grid for
// sequence groups. r decides the color profile; render after the
// terminal session has been released.
func Preview(w io.Writer, r *lipgloss.Renderer, p *palette.Palette) error {
	label := r.NewStyle().Bold(true)
	muted := r.NewStyle().Faint(true)

	nameWidth := 0
	for _, sec := range p.Sections {
		if sec.Sequence {
			continue
		}
		for _, e := range sec.Entries {
			nameWidth = max(nameWidth, runewidth.StringWidth(sec.Name+"."+e.Key))
		}
	}

	for _, sec := range p.Sections {
		if _, err := fmt.Fprintln(w, label.Render(sec.Name)); err != nil {
			return err
		}
		if sec.Sequence {
			if err := previewGrid(w, r, sec); err != nil {
				return err
			}
			continue
		}
		for _, e := range sec.Entries {
			name := runewidth.FillRight(sec.Name+"."+e.Key, nameWidth)
			hex := runewidth.FillRight(e.Result.String(), hexWidth)
			if !e.Result.Known() {
				hex = muted.Render(runewidth.FillRight(e.Result.Reason.String(), hexWidth))
			}
			if _, err := fmt.Fprintf(w, "  %s  %s  %s\n", name, hex, chip(r, e)); err != nil {
				return err
			}
		}
	}
	return nil
}

// previewGrid prints sequence entries sixteen to a row.
func previewGrid(w io.Writer, r *lipgloss.Renderer, sec palette.Section) error {
	const perRow = 16
	for start := 0; start < len(sec.Entries); start += perRow {
		end := min(start+perRow, len(sec.Entries))
		line := fmt.Sprintf("  %3d ", start)
		for _, e := range sec.Entries[start:end] {
			line += chip(r, e)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func chip(r *lipgloss.Renderer, e palette.Entry) string {
	if !e.Result.Known() {
		return unknownMark
	}
	return r.NewStyle().Background(lipgloss.Color(e.Result.String())).Render(swatch)
}
