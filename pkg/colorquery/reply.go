// ABOUTME: Locates rgb:/rgba: color replies in accumulated terminal input.
// ABOUTME: Converts matched channels of any hex width to an 8-bit Color.

package colorquery

import (
	"fmt"
	"regexp"
	"strconv"
)

// Format is the color tag a terminal uses in its reply.
type Format string

const (
	FormatRGB  Format = "rgb"
	FormatRGBA Format = "rgba"
)

// replyPattern accepts an optional "<id>;" prefix, the tag, and three or
// four slash-separated hex groups. Group count is checked against the
// tag after matching.
var replyPattern = regexp.MustCompile(
	`(?:[0-9;]*;)?(rgba?):([0-9a-fA-F]+)/([0-9a-fA-F]+)/([0-9a-fA-F]+)(?:/([0-9a-fA-F]+))?`,
)

// Reply is one structurally valid color report.
type Reply struct {
	Format   Format
	Channels []string
}

// FindReply returns the first complete reply in buf. A candidate that
// ends at the end of buf is still streaming and is reported as not found
// so the caller keeps accumulating.
func FindReply(buf []byte) (Reply, bool) {
	return find(string(buf), false)
}

// ParseReply parses a complete reply payload such as
// "rgb:ffff/8080/0000"; the end of s counts as a terminator.
func ParseReply(s string) (Reply, bool) {
	return find(s, true)
}

func find(s string, atEOF bool) (Reply, bool) {
	for _, m := range replyPattern.FindAllStringSubmatchIndex(s, -1) {
		if m[1] == len(s) && !atEOF {
			return Reply{}, false
		}
		group := func(i int) string {
			if m[2*i] < 0 {
				return ""
			}
			return s[m[2*i]:m[2*i+1]]
		}

		r := Reply{
			Format:   Format(group(1)),
			Channels: []string{group(2), group(3), group(4)},
		}
		fourth := group(5)
		switch r.Format {
		case FormatRGB:
			if fourth != "" {
				continue
			}
		case FormatRGBA:
			if fourth == "" {
				continue
			}
			r.Channels = append(r.Channels, fourth)
		}
		return r, true
	}
	return Reply{}, false
}

// Color extracts red, green and blue and scales each to 8 bits.
//
// rgba replies are taken to carry alpha first (A/R/G/B). That ordering
// was observed on real emulators rather than documented; alpha is dropped.
func (r Reply) Color() (Color, error) {
	idx := [3]int{0, 1, 2}
	if r.Format == FormatRGBA {
		idx = [3]int{1, 2, 3}
	}
	if len(r.Channels) <= idx[2] {
		return Color{}, fmt.Errorf("%s reply has %d channels", r.Format, len(r.Channels))
	}

	var out [3]uint8
	for i, ch := range idx {
		v, err := ScaleChannel(r.Channels[ch])
		if err != nil {
			return Color{}, err
		}
		out[i] = v
	}
	return Color{R: out[0], G: out[1], B: out[2]}, nil
}

// ScaleChannel converts a hex channel of any width to 8 bits.
//
// Widths of two or more digits use floor(value*256/16^width), which is
// exactly the two leading digits. A single digit is replicated (f -> ff)
// so the maximum value of every width maps to ff.
func ScaleChannel(digits string) (uint8, error) {
	switch len(digits) {
	case 0:
		return 0, fmt.Errorf("empty color channel")
	case 1:
		v, err := strconv.ParseUint(digits, 16, 8)
		if err != nil {
			return 0, fmt.Errorf("parsing channel %q: %w", digits, err)
		}
		return uint8(v * 0x11), nil
	}

	for _, c := range digits[2:] {
		if !isHex(c) {
			return 0, fmt.Errorf("parsing channel %q: invalid hex digit %q", digits, c)
		}
	}
	v, err := strconv.ParseUint(digits[:2], 16, 8)
	if err != nil {
		return 0, fmt.Errorf("parsing channel %q: %w", digits, err)
	}
	return uint8(v), nil
}

func isHex(c rune) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// Color is a normalized 8-bit-per-channel color.
type Color struct {
	R, G, B uint8
}

// String formats the color as #rrggbb.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
