// ABOUTME: JSON encoder using easyjson's jwriter for ordered, reflection-free output.

package render

import (
	"fmt"
	"io"

	"github.com/mailru/easyjson/jwriter"

	"github.com/mauromedda/termcolors/pkg/palette"
)

func writeJSON(w io.Writer, p *palette.Palette) error {
	var jw jwriter.Writer
	encodePalette(&jw, p)
	jw.RawByte('\n')

	if jw.Error != nil {
		return fmt.Errorf("encoding json: %w", jw.Error)
	}
	if _, err := jw.DumpTo(w); err != nil {
		return fmt.Errorf("writing json: %w", err)
	}
	return nil
}

func encodePalette(jw *jwriter.Writer, p *palette.Palette) {
	jw.RawByte('{')
	for i, sec := range p.Sections {
		if i > 0 {
			jw.RawByte(',')
		}
		jw.String(sec.Name)
		jw.RawByte(':')
		encodeSection(jw, sec)
	}
	jw.RawByte('}')
}

func encodeSection(jw *jwriter.Writer, sec palette.Section) {
	begin, end := byte('{'), byte('}')
	if sec.Sequence {
		begin, end = '[', ']'
	}

	jw.RawByte(begin)
	for i, e := range sec.Entries {
		if i > 0 {
			jw.RawByte(',')
		}
		if !sec.Sequence {
			jw.String(e.Key)
			jw.RawByte(':')
		}
		if e.Result.Known() {
			jw.String(e.Result.String())
		} else {
			jw.RawString("null")
		}
	}
	jw.RawByte(end)
}
