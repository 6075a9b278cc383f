// ABOUTME: Spec identifies one color slot by its OSC parameters and encodes the query.
// ABOUTME: Primary colors use one parameter (10, 11); palette slots use 4;<index>.

package colorquery

import (
	"strconv"
	"strings"
)

const (
	// OSC introduces an Operating System Command.
	OSC = "\x1b]"
	// BEL terminates the query.
	BEL = "\a"
	// ST is the alternative seven-bit string terminator some terminals reply with.
	ST = "\x1b\\"

	paramSeparator = ";"
	requestMarker  = "?"
)

// Well-known OSC parameters.
const (
	ParamPalette    = 4
	ParamForeground = 10
	ParamBackground = 11
)

// Spec is the ordered list of numeric OSC parameters for one color slot.
type Spec []int

// Foreground returns the spec for the default foreground color.
func Foreground() Spec { return Spec{ParamForeground} }

// Background returns the spec for the default background color.
func Background() Spec { return Spec{ParamBackground} }

// Indexed returns the spec for palette slot index (0-255).
func Indexed(index int) Spec { return Spec{ParamPalette, index} }

// String joins the parameters with the OSC separator, e.g. "4;12".
func (s Spec) String() string {
	parts := make([]string, len(s))
	for i, p := range s {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, paramSeparator)
}

// Query returns the full request, e.g. ESC ] 4;12;? BEL.
func (s Spec) Query() []byte {
	return []byte(OSC + s.String() + paramSeparator + requestMarker + BEL)
}
