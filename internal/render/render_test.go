// ABOUTME: Tests for lua/yaml/json encoders and the swatch preview.
// ABOUTME: Builds small palettes through palette.Scan with a canned Querier.

package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/mauromedda/termcolors/pkg/colorquery"
	"github.com/mauromedda/termcolors/pkg/palette"
)

type canned map[string]colorquery.Color

func (c canned) Query(_ context.Context, spec colorquery.Spec) (colorquery.Result, error) {
	if col, ok := c[spec.String()]; ok {
		return colorquery.Result{Color: col, Reason: colorquery.ReasonMatched}, nil
	}
	return colorquery.Result{Reason: colorquery.ReasonTimedOut}, nil
}

func smallPalette(t *testing.T) *palette.Palette {
	t.Helper()

	tbl := palette.Table{
		{Name: "primary", Slots: []palette.Slot{
			{Key: "background", Spec: colorquery.Background()},
			{Key: "foreground", Spec: colorquery.Foreground()},
		}},
		{Name: "indexed", Sequence: true, Slots: []palette.Slot{
			{Key: "0", Spec: colorquery.Indexed(0)},
			{Key: "1", Spec: colorquery.Indexed(1)},
		}},
	}
	p, err := palette.Scan(context.Background(), canned{
		"11":  {R: 0x1d, G: 0x1f, B: 0x21},
		"4;0": {},
	}, tbl, nil)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	return p
}

func TestRender_Lua(t *testing.T) {
	t.Parallel()

	got, err := Render(smallPalette(t), FormatLua)
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	want := `return {
    primary = {
        background = '#1d1f21',
        foreground = nil
    },
    indexed = {
        '#000000',
        nil
    }
}
`
	if string(got) != want {
		t.Errorf("lua output:\n%s\nwant:\n%s", got, want)
	}
}

func TestRender_JSON(t *testing.T) {
	t.Parallel()

	got, err := Render(smallPalette(t), FormatJSON)
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	want := `{"primary":{"background":"#1d1f21","foreground":null},"indexed":["#000000",null]}` + "\n"
	if string(got) != want {
		t.Errorf("json output = %s, want %s", got, want)
	}
}

func TestRender_YAML(t *testing.T) {
	t.Parallel()

	got, err := Render(smallPalette(t), FormatYAML)
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}

	var decoded struct {
		Primary map[string]*string `yaml:"primary"`
		Indexed []*string          `yaml:"indexed"`
	}
	if err := yaml.Unmarshal(got, &decoded); err != nil {
		t.Fatalf("output is not valid yaml: %v\n%s", err, got)
	}
	if bg := decoded.Primary["background"]; bg == nil || *bg != "#1d1f21" {
		t.Errorf("background = %v, want #1d1f21", bg)
	}
	if fg, ok := decoded.Primary["foreground"]; !ok || fg != nil {
		t.Errorf("foreground = %v (present %v), want explicit null", fg, ok)
	}
	if len(decoded.Indexed) != 2 || decoded.Indexed[0] == nil || *decoded.Indexed[0] != "#000000" || decoded.Indexed[1] != nil {
		t.Errorf("indexed = %v", decoded.Indexed)
	}
	if strings.Index(string(got), "primary") > strings.Index(string(got), "indexed") {
		t.Error("group order not preserved")
	}
}

func TestRender_FullTableSizes(t *testing.T) {
	t.Parallel()

	p, err := palette.Scan(context.Background(), canned{}, palette.DefaultTable(), nil)
	if err != nil {
		t.Fatal(err)
	}
	lua, err := Render(p, FormatLua)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(lua), "nil"); got != palette.DefaultTable().Len() {
		t.Errorf("lua has %d nil entries, want %d", got, palette.DefaultTable().Len())
	}
	for _, group := range []string{"primary = {", "normal = {", "bright = {", "indexed = {"} {
		if !strings.Contains(string(lua), group) {
			t.Errorf("lua output missing %q", group)
		}
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "lua", want: FormatLua},
		{in: "", want: FormatLua},
		{in: "YAML", want: FormatYAML},
		{in: "yml", want: FormatYAML},
		{in: " json ", want: FormatJSON},
		{in: "toml", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	t.Parallel()

	if err := Write(&bytes.Buffer{}, smallPalette(t), Format("xml")); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestPreview(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := lipgloss.NewRenderer(&buf)
	if err := Preview(&buf, r, smallPalette(t)); err != nil {
		t.Fatalf("Preview() unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"primary", "primary.background", "#1d1f21", "primary.foreground", "timed out", "indexed", "??"} {
		if !strings.Contains(out, want) {
			t.Errorf("preview missing %q:\n%s", want, out)
		}
	}
}
