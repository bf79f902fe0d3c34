// Package sink provides the drawing backends of the comparison document.
//
// # Backends
//
//   - [PDF]: draws through fpdf into a PDF file using the Helvetica core font.
//   - [Recorder]: keeps every drawing call in memory. [RenderJSON] dumps a
//     recording as JSON.
//
// Both implement [layout.Canvas]. A recorder measures text with
// [FixedMetrics] unless given a real measurer; pass a PDF canvas through
// [WithMeasurer] to record exactly the line breaks the PDF would get:
//
//	g := layout.A4()
//	rec := sink.NewRecorder(sink.WithMeasurer(sink.NewPDF(g)))
//
// [layout.Canvas]: github.com/backtoschool/progcompare/pkg/render/compare/layout.Canvas
package sink
