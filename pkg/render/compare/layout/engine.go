package layout

import (
	"fmt"
	"math"
	"strings"

	"github.com/backtoschool/progcompare/pkg/render/compare/styles"
)

// Cursor is a vertical position on a page. Every drawing operation takes a
// cursor and returns the next one.
type Cursor struct {
	Y    float64
	Page int
}

// Row is one labelled comparison: label | program A | program B.
type Row struct {
	Label string
	A, B  string
}

// IsBlank reports whether a cell value counts as missing. Rows whose two
// values are both blank are never drawn.
func IsBlank(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "N/A", "null", "undefined":
		return true
	}
	return false
}

// Placeholder is shown in a cell whose value is blank while the other
// program's value is not.
const Placeholder = "N/A"

// Engine issues drawing calls for the comparison document against a fixed
// [Geometry]. It holds no layout position itself; callers thread a [Cursor]
// through each call.
type Engine struct {
	canvas Canvas
	geo    Geometry
}

// NewEngine returns an engine drawing onto c.
func NewEngine(c Canvas, g Geometry) *Engine {
	return &Engine{canvas: c, geo: g}
}

// Geometry returns the engine's page geometry.
func (e *Engine) Geometry() Geometry { return e.geo }

// Begin adds the first page and returns a cursor at its top margin.
func (e *Engine) Begin() Cursor {
	e.canvas.AddPage()
	return Cursor{Y: e.geo.Margin, Page: e.canvas.PageCount()}
}

// NewPage appends a page and returns a cursor at its top margin.
func (e *Engine) NewPage() Cursor {
	e.canvas.AddPage()
	return Cursor{Y: e.geo.Margin, Page: e.canvas.PageCount()}
}

func (e *Engine) at(c Cursor) {
	if e.canvas.Page() != c.Page {
		e.canvas.SetPage(c.Page)
	}
}

// Wrap splits text against maxWidth using the canvas' own metrics.
func (e *Engine) Wrap(text string, maxWidth float64, f styles.Font) []string {
	return Wrap(e.canvas, text, maxWidth, f)
}

// =============================================================================
// Document frame
// =============================================================================

// TitleBar draws the full-width brand bar at the top of the first page and
// returns a cursor at [Geometry.ContentTop].
func (e *Engine) TitleBar(c Cursor, brand, subtitle, generated string) Cursor {
	e.at(c)
	g := e.geo
	e.canvas.FillRect(0, 0, g.PageWidth, g.TitleBarHeight, styles.Brand)
	e.canvas.Text(g.Margin, 16, brand, styles.Text{Font: styles.Bold(16), Color: styles.White})
	e.canvas.Text(g.Margin, 22, subtitle, styles.Text{Font: styles.Regular(11), Color: styles.White})
	e.canvas.Text(g.PageWidth-g.Margin, 19, generated, styles.Text{
		Font:  styles.Regular(9),
		Color: styles.White,
		Align: styles.AlignRight,
	})
	return Cursor{Y: g.ContentTop, Page: c.Page}
}

// MaxNameLines caps each wrapped program name in the header block, so the
// table header always starts on the first page.
const MaxNameLines = 3

// ProgramHeaders draws the "Program A" / "Program B" captions with the
// wrapped program names underneath, side by side. Names longer than
// [MaxNameLines] lines end in an ellipsis.
func (e *Engine) ProgramHeaders(c Cursor, nameA, nameB string) Cursor {
	e.at(c)
	g := e.geo
	leftX, rightX := g.Margin, g.PageWidth/2+5

	caption := styles.Text{Font: styles.Bold(14), Color: styles.Black}
	e.canvas.Text(leftX, c.Y, "Program A", caption)
	e.canvas.Text(rightX, c.Y, "Program B", caption)
	c.Y += 8

	const lineHeight = 5
	name := styles.Text{Font: styles.Regular(11), Color: styles.Black}
	width := g.PageWidth/2 - g.Margin - 5
	linesA := capLines(e.Wrap(nameA, width, name.Font), MaxNameLines)
	linesB := capLines(e.Wrap(nameB, width, name.Font), MaxNameLines)
	for i, line := range linesA {
		e.canvas.Text(leftX, c.Y+float64(i)*lineHeight, line, name)
	}
	for i, line := range linesB {
		e.canvas.Text(rightX, c.Y+float64(i)*lineHeight, line, name)
	}
	c.Y += float64(max(len(linesA), len(linesB)))*lineHeight + 5
	return c
}

func capLines(lines []string, n int) []string {
	if len(lines) <= n {
		return lines
	}
	out := append([]string(nil), lines[:n]...)
	out[n-1] += "..."
	return out
}

// TableHeader draws the filled column captions of the comparison table. It
// is drawn once; page breaks inside the table repeat section headers only.
func (e *Engine) TableHeader(c Cursor, captions [3]string) Cursor {
	e.at(c)
	g := e.geo
	text := styles.Text{Font: styles.Bold(10), Color: styles.White}
	for i, caption := range captions {
		x := g.ColumnX(i)
		e.canvas.FillRect(x, c.Y, g.Columns[i], g.SectionHeaderHeight, styles.Brand)
		e.canvas.Text(x+3, c.Y+6, caption, text)
	}
	c.Y += g.SectionHeaderAdvance
	return c
}

// Footers stamps "Page X of Y" on every page. Call it once layout is done.
func (e *Engine) Footers() int {
	g := e.geo
	total := e.canvas.PageCount()
	text := styles.Text{Font: styles.Regular(8), Color: styles.Muted, Align: styles.AlignCenter}
	for i := 1; i <= total; i++ {
		e.canvas.SetPage(i)
		e.canvas.Text(g.PageWidth/2, g.PageHeight-g.FooterOffset, fmt.Sprintf("Page %d of %d", i, total), text)
	}
	return total
}

// =============================================================================
// Sections and rows
// =============================================================================

// SectionHeader draws a filled bar with the section title.
func (e *Engine) SectionHeader(c Cursor, title string) Cursor {
	e.at(c)
	g := e.geo
	e.canvas.FillRect(g.Margin, c.Y, g.TableWidth(), g.SectionHeaderHeight, styles.Brand)
	e.canvas.Text(g.Margin+3, c.Y+6, title, styles.Text{Font: styles.Bold(12), Color: styles.White})
	c.Y += g.SectionHeaderAdvance
	return c
}

// BeginSection starts a table section, moving to a new page first when the
// cursor is already within [Geometry.SectionBreakMargin] of the bottom.
func (e *Engine) BeginSection(c Cursor, title string) Cursor {
	if c.Y > e.geo.PageHeight-e.geo.SectionBreakMargin {
		c = e.NewPage()
	}
	return e.SectionHeader(c, title)
}

// RowHeight returns the height r would occupy, or 0 if r would be skipped.
func (e *Engine) RowHeight(r Row) float64 {
	if IsBlank(r.A) && IsBlank(r.B) {
		return 0
	}
	label, a, b := e.rowLines(r)
	return e.rowHeight(label, a, b)
}

func (e *Engine) rowLines(r Row) (label, a, b []string) {
	g := e.geo
	pad := 2 * g.RowPadding
	label = e.Wrap(r.Label, g.Columns[0]-pad, styles.Bold(g.RowFontSize))
	a = e.Wrap(cellValue(r.A), g.Columns[1]-pad, styles.Regular(g.RowFontSize))
	b = e.Wrap(cellValue(r.B), g.Columns[2]-pad, styles.Regular(g.RowFontSize))
	return label, a, b
}

func (e *Engine) rowHeight(label, a, b []string) float64 {
	g := e.geo
	lines := max(len(label), len(a), len(b))
	return math.Max(g.RowMinHeight, float64(lines)*g.RowLineHeight+2*g.RowPadding)
}

func cellValue(s string) string {
	if IsBlank(s) {
		return Placeholder
	}
	return strings.TrimSpace(s)
}

// Row draws one comparison row inside section and returns the cursor below
// it. A row with two blank values draws nothing and returns c unchanged.
//
// A row that does not fit above [Geometry.RowLimit] moves whole to a new
// page, where the section header is repeated first. Only a row taller than
// a fresh page ([Engine.MaxRowHeight]) is split, continuing its remaining
// lines on further pages below a repeated section header.
func (e *Engine) Row(c Cursor, section string, r Row) Cursor {
	if IsBlank(r.A) && IsBlank(r.B) {
		return c
	}
	g := e.geo
	label, a, b := e.rowLines(r)
	height := e.rowHeight(label, a, b)

	if height > e.MaxRowHeight() {
		return e.splitRow(c, section, label, a, b)
	}
	if c.Y+height > g.RowLimit() {
		c = e.NewPage()
		c = e.SectionHeader(c, section)
	}
	e.drawRow(c, height, label, a, b)

	c.Y += height + g.RowGap
	return c
}

// MaxRowHeight is the tallest row that fits on a fresh page below the
// repeated section header.
func (e *Engine) MaxRowHeight() float64 {
	g := e.geo
	return g.RowLimit() - g.Margin - g.SectionHeaderAdvance
}

// splitRow draws an oversized row in page-sized slices. The first slice
// starts on the current page when at least one line fits there.
func (e *Engine) splitRow(c Cursor, section string, label, a, b []string) Cursor {
	g := e.geo
	total := max(len(label), len(a), len(b))
	for start := 0; start < total; {
		fit := int((g.RowLimit() - c.Y - 2*g.RowPadding) / g.RowLineHeight)
		if fit < 1 {
			c = e.NewPage()
			c = e.SectionHeader(c, section)
			continue
		}
		end := min(start+fit, total)
		height := math.Max(g.RowMinHeight, float64(end-start)*g.RowLineHeight+2*g.RowPadding)
		e.drawRow(c, height, window(label, start, end), window(a, start, end), window(b, start, end))
		c.Y += height
		if start = end; start < total {
			c = e.NewPage()
			c = e.SectionHeader(c, section)
		}
	}
	c.Y += g.RowGap
	return c
}

// window returns lines[start:end] clipped to the slice length.
func window(lines []string, start, end int) []string {
	if start >= len(lines) {
		return nil
	}
	return lines[start:min(end, len(lines))]
}

func (e *Engine) drawRow(c Cursor, height float64, label, a, b []string) {
	g := e.geo
	e.at(c)
	for i := range g.Columns {
		e.canvas.StrokeRect(g.ColumnX(i), c.Y, g.Columns[i], height, styles.Border, 0.1)
	}

	top := c.Y + g.RowPadding + 3
	e.cellLines(g.ColumnX(0)+g.RowPadding, top, label,
		styles.Text{Font: styles.Bold(g.RowFontSize), Color: styles.Label})
	value := styles.Text{Font: styles.Regular(g.RowFontSize), Color: styles.Black}
	e.cellLines(g.ColumnX(1)+g.RowPadding, top, a, value)
	e.cellLines(g.ColumnX(2)+g.RowPadding, top, b, value)
}

func (e *Engine) cellLines(x, y float64, lines []string, s styles.Text) {
	for i, line := range lines {
		e.canvas.Text(x, y+float64(i)*e.geo.RowLineHeight, line, s)
	}
}

// EndSection leaves the inter-section gap below the last row.
func (e *Engine) EndSection(c Cursor) Cursor {
	c.Y += e.geo.SectionGap
	return c
}

// =============================================================================
// Running text
// =============================================================================

// Paragraph draws text as a full-width section of running lines under its
// own header. Lines that would cross [Geometry.SummaryLimit] continue on a
// new page below a repeated header. Blank text draws nothing.
func (e *Engine) Paragraph(c Cursor, title, text string) Cursor {
	g := e.geo
	font := styles.Regular(g.SummaryFontSize)
	lines := WrapParagraphs(e.canvas, text, g.ContentWidth()-6, font)
	if len(lines) == 0 {
		return c
	}

	c.Y += g.SummaryGap
	if c.Y > g.PageHeight-g.SummaryBreakMargin {
		c = e.NewPage()
	}
	c = e.SectionHeader(c, title)
	c.Y += g.SummaryPadding

	style := styles.Text{Font: font, Color: styles.Black}
	for _, line := range lines {
		if c.Y+g.SummaryLineHeight > g.SummaryLimit() {
			c = e.NewPage()
			c = e.SectionHeader(c, title)
			c.Y += g.SummaryPadding
		}
		if line != "" {
			e.at(c)
			e.canvas.Text(g.Margin+3, c.Y, line, style)
		}
		c.Y += g.SummaryLineHeight
	}
	return c
}
