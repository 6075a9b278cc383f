// ABOUTME: Serializes a scanned Palette into the configured artifact format.
// ABOUTME: Formats: lua (default), yaml, json; absent colors become nil/null.

package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/mauromedda/termcolors/pkg/palette"
)

// Format names an artifact encoding.
type Format string

const (
	FormatLua  Format = "lua"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Formats lists the supported formats in help order.
var Formats = []Format{FormatLua, FormatYAML, FormatJSON}

// ParseFormat accepts a case-insensitive format name; "yml" is an alias.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatLua, FormatYAML, FormatJSON:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "":
		return FormatLua, nil
	}
	return "", fmt.Errorf("unknown format %q (want lua, yaml or json)", s)
}

// Render encodes p in format f.
func Render(p *palette.Palette, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, p, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes p in format f to w.
func Write(w io.Writer, p *palette.Palette, f Format) error {
	switch f {
	case FormatLua:
		return writeLua(w, p)
	case FormatYAML:
		return writeYAML(w, p)
	case FormatJSON:
		return writeJSON(w, p)
	}
	return fmt.Errorf("unknown format %q", f)
}
