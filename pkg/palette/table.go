// ABOUTME: The fixed query table: primary, normal, bright, and the 256 indexed slots.
// ABOUTME: Groups keep declaration order so every serializer emits the same layout.

package palette

import (
	"strconv"

	"github.com/mauromedda/termcolors/pkg/colorquery"
)

// ColorNames are the eight ANSI color names in index order.
var ColorNames = [8]string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

// IndexedSlots is the size of the indexed palette.
const IndexedSlots = 256

// Slot is one named color query.
type Slot struct {
	Key  string
	Spec colorquery.Spec
}

// Group is a named set of slots. A Sequence group is rendered as a list;
// its keys are the decimal positions.
type Group struct {
	Name     string
	Sequence bool
	Slots    []Slot
}

// Table is the ordered set of groups to query.
type Table []Group

// DefaultTable returns the full query table.
func DefaultTable() Table {
	normal := make([]Slot, len(ColorNames))
	bright := make([]Slot, len(ColorNames))
	for i, name := range ColorNames {
		normal[i] = Slot{Key: name, Spec: colorquery.Indexed(i)}
		bright[i] = Slot{Key: name, Spec: colorquery.Indexed(i + len(ColorNames))}
	}

	indexed := make([]Slot, IndexedSlots)
	for i := range indexed {
		indexed[i] = Slot{Key: strconv.Itoa(i), Spec: colorquery.Indexed(i)}
	}

	return Table{
		{Name: "primary", Slots: []Slot{
			{Key: "background", Spec: colorquery.Background()},
			{Key: "foreground", Spec: colorquery.Foreground()},
		}},
		{Name: "normal", Slots: normal},
		{Name: "bright", Slots: bright},
		{Name: "indexed", Sequence: true, Slots: indexed},
	}
}

// Len returns the number of slots across all groups.
func (t Table) Len() int {
	n := 0
	for _, g := range t {
		n += len(g.Slots)
	}
	return n
}

// Paths returns every slot as "group/key" in table order.
func (t Table) Paths() []string {
	paths := make([]string, 0, t.Len())
	for _, g := range t {
		for _, s := range g.Slots {
			paths = append(paths, SlotPath(g.Name, s.Key))
		}
	}
	return paths
}

// SlotPath joins a group name and key into the path used for filtering.
func SlotPath(group, key string) string {
	return group + "/" + key
}
