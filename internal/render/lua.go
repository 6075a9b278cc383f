// ABOUTME: Lua table encoder: "return { group = { key = '#rrggbb', ... }, ... }"
// ABOUTME: Four spaces per level; sequence groups are bare lists; absence is nil.

package render

import (
	"bufio"
	"io"
	"strings"

	"github.com/mauromedda/termcolors/pkg/palette"
)

const luaIndent = "    "

func writeLua(w io.Writer, p *palette.Palette) error {
	bw := bufio.NewWriter(w)

	bw.WriteString("return {\n")
	for i, sec := range p.Sections {
		bw.WriteString(luaIndent + sec.Name + " = {\n")
		for j, e := range sec.Entries {
			bw.WriteString(strings.Repeat(luaIndent, 2))
			if !sec.Sequence {
				bw.WriteString(e.Key + " = ")
			}
			if e.Result.Known() {
				bw.WriteString("'" + e.Result.String() + "'")
			} else {
				bw.WriteString("nil")
			}
			if j != len(sec.Entries)-1 {
				bw.WriteString(",")
			}
			bw.WriteString("\n")
		}
		bw.WriteString(luaIndent + "}")
		if i != len(p.Sections)-1 {
			bw.WriteString(",")
		}
		bw.WriteString("\n")
	}
	bw.WriteString("}\n")

	return bw.Flush()
}
