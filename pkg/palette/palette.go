// ABOUTME: Palette mirrors the query table with one Result per slot.
// ABOUTME: Provides lookup, known/unknown statistics and background darkness.

package palette

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/mauromedda/termcolors/pkg/colorquery"
)

// Entry is one slot's outcome.
type Entry struct {
	Key    string
	Result colorquery.Result
}

// Section is the result counterpart of a Group.
type Section struct {
	Name     string
	Sequence bool
	Entries  []Entry
}

// Palette is shaped exactly like the Table it was scanned from.
type Palette struct {
	Sections []Section
}

// Stats counts slots by outcome.
type Stats struct {
	Known   int
	Unknown int
	Skipped int
}

// newPalette returns a palette shaped like t with every slot skipped.
func newPalette(t Table) *Palette {
	p := &Palette{Sections: make([]Section, len(t))}
	for i, g := range t {
		entries := make([]Entry, len(g.Slots))
		for j, s := range g.Slots {
			entries[j] = Entry{Key: s.Key, Result: colorquery.Result{Reason: colorquery.ReasonSkipped}}
		}
		p.Sections[i] = Section{Name: g.Name, Sequence: g.Sequence, Entries: entries}
	}
	return p
}

// Lookup returns the result for "group.key" or "group/key".
func (p *Palette) Lookup(path string) (colorquery.Result, bool) {
	group, key, ok := strings.Cut(strings.ReplaceAll(path, ".", "/"), "/")
	if !ok {
		return colorquery.Result{}, false
	}
	for _, sec := range p.Sections {
		if sec.Name != group {
			continue
		}
		for _, e := range sec.Entries {
			if e.Key == key {
				return e.Result, true
			}
		}
	}
	return colorquery.Result{}, false
}

// Stats counts known, unknown and skipped slots.
func (p *Palette) Stats() Stats {
	var st Stats
	for _, sec := range p.Sections {
		for _, e := range sec.Entries {
			switch {
			case e.Result.Known():
				st.Known++
			case e.Result.Reason == colorquery.ReasonSkipped:
				st.Skipped++
			default:
				st.Unknown++
			}
		}
	}
	return st
}

// IsDark reports whether the discovered background is dark, using CIE
// L* below 50. ok is false when the background is unknown.
func (p *Palette) IsDark() (dark, ok bool) {
	bg, found := p.Lookup("primary.background")
	if !found || !bg.Known() {
		return false, false
	}
	c := colorful.Color{
		R: float64(bg.Color.R) / 255,
		G: float64(bg.Color.G) / 255,
		B: float64(bg.Color.B) / 255,
	}
	l, _, _ := c.Lab()
	return l < 0.5, true
}
