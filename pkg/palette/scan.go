// ABOUTME: Scan walks the query table one slot at a time and collects a Palette.
// ABOUTME: Per-slot failures become absent results; only cancellation stops the walk.

package palette

import (
	"context"

	"github.com/mauromedda/termcolors/internal/log"
	"github.com/mauromedda/termcolors/pkg/colorquery"
)

// Querier runs one color query. *colorquery.Engine satisfies it.
type Querier interface {
	Query(ctx context.Context, spec colorquery.Spec) (colorquery.Result, error)
}

// Selector decides whether a slot path ("group/key") is queried.
// A nil Selector selects everything.
type Selector func(path string) bool

// Scan queries every selected slot in table order. Queries are strictly
// sequential. On cancellation it returns the palette gathered so far,
// with the remaining slots skipped, together with the context error.
func Scan(ctx context.Context, q Querier, t Table, sel Selector) (*Palette, error) {
	p := newPalette(t)
	for i, g := range t {
		for j, s := range g.Slots {
			path := SlotPath(g.Name, s.Key)
			if sel != nil && !sel(path) {
				continue
			}

			res, err := q.Query(ctx, s.Spec)
			if err != nil {
				log.Debug("scan stopped at %s: %v", path, err)
				return p, err
			}
			p.Sections[i].Entries[j].Result = res
			if !res.Known() {
				log.Debug("%s: no color (%s)", path, res.Reason)
			}
		}
	}
	return p, nil
}
