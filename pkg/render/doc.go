// Package render groups the document renderers.
//
// # Subpackages
//
//   - [compare]: the side-by-side program comparison (A4 PDF or JSON recording)
//   - [compare/layout]: page geometry, text wrapping and the flowing table engine
//   - [compare/sink]: canvases the layout draws on (fpdf and a call recorder)
//   - [compare/styles]: fonts, colors and spacing of the comparison document
//
// The layout engine never talks to fpdf directly. It draws on a [compare/layout]
// Canvas, so the same code paths produce the PDF and the JSON recording.
//
// [compare]: github.com/backtoschool/progcompare/pkg/render/compare
// [compare/layout]: github.com/backtoschool/progcompare/pkg/render/compare/layout
// [compare/sink]: github.com/backtoschool/progcompare/pkg/render/compare/sink
// [compare/styles]: github.com/backtoschool/progcompare/pkg/render/compare/styles
package render
