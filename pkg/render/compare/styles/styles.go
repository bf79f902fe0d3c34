// Package styles holds the colors and fonts of the comparison document.
package styles

import "fmt"

// Color is an RGB color with 0-255 channels.
type Color struct {
	R, G, B int
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Palette used throughout the document.
var (
	Brand  = Color{37, 99, 235}   // title bar, table header, section bars
	White  = Color{255, 255, 255} // text on brand fills
	Black  = Color{0, 0, 0}       // values, program headers
	Label  = Color{60, 60, 60}    // row labels
	Border = Color{226, 232, 240} // cell borders
	Muted  = Color{128, 128, 128} // page footers
)

// Family is the only font family used. It is one of the PDF core fonts, so
// nothing has to be embedded.
const Family = "Helvetica"

// Font selects a weight and size (in points).
type Font struct {
	Bold bool    `json:"bold,omitempty"`
	Size float64 `json:"size"`
}

// Regular returns the normal-weight font at size points.
func Regular(size float64) Font { return Font{Size: size} }

// Bold returns the bold font at size points.
func Bold(size float64) Font { return Font{Bold: true, Size: size} }

// Align anchors a text run horizontally at its x coordinate.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// Text describes how a text run is drawn.
type Text struct {
	Font  Font
	Color Color
	Align Align
}
