// Package layout computes and draws the paginated comparison table.
//
// # Overview
//
// The document is a fixed-geometry A4 report: a brand title bar, the two
// program names, a three-column table (label | program A | program B) split
// into titled sections, an optional running-text summary, and a page footer.
// Layout and drawing happen in one pass. Each call measures its content,
// decides whether it fits on the current page, draws it and returns the
// position below it.
//
// # Cursor Threading
//
// The engine keeps no position of its own. Callers pass a [Cursor] in and
// get the next one back:
//
//	e := layout.NewEngine(canvas, layout.A4())
//	c := e.Begin()
//	c = e.BeginSection(c, "Financial Information")
//	c = e.Row(c, "Financial Information", layout.Row{Label: "Tuition Fee", A: "RM 50,000", B: ""})
//	c = e.EndSection(c)
//	e.Footers()
//
// A row whose two values are blank (see [IsBlank]) returns the cursor
// unchanged, which makes skip and page-break rules easy to test in isolation.
//
// # Page Breaks
//
//   - A section that would start within [Geometry.SectionBreakMargin] of the
//     page bottom starts on a new page.
//   - A row that would cross [Geometry.RowLimit] moves whole to a new page,
//     below a repeated section header. The table header is not repeated.
//   - Summary lines that would cross [Geometry.SummaryLimit] continue on a
//     new page below a repeated section header.
//
// Footers ("Page X of Y") are stamped by [Engine.Footers] after everything
// else, once the page count is known.
//
// # Measuring
//
// Wrapping uses [Canvas.Measure], the same metrics the backend draws with.
// Lines break between words only; an overlong word gets a line to itself.
package layout
