package layout

import "github.com/backtoschool/progcompare/pkg/render/compare/styles"

// Canvas is the page-drawing backend. Coordinates are millimetres from the
// top-left corner of the current page; text y is the baseline.
//
// Measure must use the same font metrics as Text, otherwise wrapped lines
// can overflow their cells.
type Canvas interface {
	// AddPage appends a page and makes it current.
	AddPage()
	// SetPage makes the 1-based page n current.
	SetPage(n int)
	// Page returns the current page number.
	Page() int
	// PageCount returns the number of pages added so far.
	PageCount() int

	// Measure returns the rendered width of text in font f.
	Measure(text string, f styles.Font) float64

	FillRect(x, y, w, h float64, c styles.Color)
	StrokeRect(x, y, w, h float64, c styles.Color, lineWidth float64)
	Text(x, y float64, text string, s styles.Text)
}
