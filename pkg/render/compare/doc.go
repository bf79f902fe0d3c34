// Package compare renders the side-by-side program comparison document.
//
// # Overview
//
// A comparison document is a single A4 report with:
//
//   - A brand title bar with the generation date
//   - The two program names under "Program A" and "Program B"
//   - A three-column table (attribute, program A, program B) grouped into
//     the fixed [Sections]
//   - An optional "AI Comparison Summary" paragraph
//   - "Page X of Y" footers on every page
//
// Cell values come from the [format] package. A row whose two values are
// both blank is left out; a row with one blank side shows "N/A" there.
// Section headers are always drawn, even when every row below them is
// skipped.
//
// # Rendering
//
// [RenderPDF] produces the PDF. [RenderJSON] runs the same layout against a
// recording canvas and returns the drawing calls, which is handy for
// inspecting page breaks:
//
//	doc, err := compare.RenderPDF(req, compare.WithLogger(logger))
//	if err != nil {
//	    // errors.UserMessage(err) == errors.ExportFailedMessage
//	}
//	os.WriteFile(doc.Filename, doc.Data, 0o644)
//
// Both entry points fail with a single EXPORT_FAILED error, whatever went
// wrong underneath. The cause is logged and kept in the error chain.
//
// [format]: github.com/backtoschool/progcompare/pkg/format
package compare
