package sink

import (
	"fmt"
	"unicode/utf8"

	"github.com/backtoschool/progcompare/pkg/render/compare/layout"
	"github.com/backtoschool/progcompare/pkg/render/compare/styles"
)

// Op kinds recorded by [Recorder].
const (
	OpFill   = "fill"
	OpStroke = "stroke"
	OpText   = "text"
)

// Op is one recorded drawing call.
type Op struct {
	Kind      string       `json:"kind"`
	X         float64      `json:"x"`
	Y         float64      `json:"y"`
	W         float64      `json:"w,omitempty"`
	H         float64      `json:"h,omitempty"`
	Text      string       `json:"text,omitempty"`
	Font      *styles.Font `json:"font,omitempty"`
	Align     string       `json:"align,omitempty"`
	Color     string       `json:"color"`
	LineWidth float64      `json:"line_width,omitempty"`
}

// Page holds the operations drawn on one page, in call order.
type Page struct {
	Number int  `json:"number"`
	Ops    []Op `json:"ops"`
}

// Recorder is a [layout.Canvas] that keeps every drawing call in memory.
// It backs the JSON output and layout tests.
type Recorder struct {
	pages   []Page
	current int
	measure layout.Measurer
}

// RecorderOption configures a [Recorder].
type RecorderOption func(*Recorder)

// WithMeasurer makes the recorder measure text like m, e.g. a [PDF] canvas,
// so that recorded line breaks match the PDF output.
func WithMeasurer(m layout.Measurer) RecorderOption {
	return func(r *Recorder) { r.measure = m }
}

// NewRecorder returns an empty recorder. Without [WithMeasurer] it uses
// [FixedMetrics].
func NewRecorder(opts ...RecorderOption) *Recorder {
	r := &Recorder{measure: FixedMetrics{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Recorder) AddPage() {
	r.pages = append(r.pages, Page{Number: len(r.pages) + 1})
	r.current = len(r.pages)
}

func (r *Recorder) SetPage(n int) {
	if n < 1 || n > len(r.pages) {
		panic(fmt.Sprintf("recorder: page %d out of range [1,%d]", n, len(r.pages)))
	}
	r.current = n
}

func (r *Recorder) Page() int      { return r.current }
func (r *Recorder) PageCount() int { return len(r.pages) }

func (r *Recorder) Measure(text string, f styles.Font) float64 {
	return r.measure.Measure(text, f)
}

func (r *Recorder) FillRect(x, y, w, h float64, c styles.Color) {
	r.record(Op{Kind: OpFill, X: x, Y: y, W: w, H: h, Color: c.Hex()})
}

func (r *Recorder) StrokeRect(x, y, w, h float64, c styles.Color, lineWidth float64) {
	r.record(Op{Kind: OpStroke, X: x, Y: y, W: w, H: h, Color: c.Hex(), LineWidth: lineWidth})
}

func (r *Recorder) Text(x, y float64, text string, s styles.Text) {
	font := s.Font
	r.record(Op{Kind: OpText, X: x, Y: y, Text: text, Font: &font, Align: s.Align.String(), Color: s.Color.Hex()})
}

func (r *Recorder) record(op Op) {
	if r.current == 0 {
		panic("recorder: drawing before the first page")
	}
	p := &r.pages[r.current-1]
	p.Ops = append(p.Ops, op)
}

// Pages returns the recorded pages.
func (r *Recorder) Pages() []Page { return r.pages }

// Texts returns the text runs drawn on page n, in call order.
func (r *Recorder) Texts(n int) []Op {
	if n < 1 || n > len(r.pages) {
		return nil
	}
	var out []Op
	for _, op := range r.pages[n-1].Ops {
		if op.Kind == OpText {
			out = append(out, op)
		}
	}
	return out
}

// FixedMetrics measures every glyph as half an em (bold 10% wider). It is
// not a real font, only a stable stand-in for tests and previews.
type FixedMetrics struct{}

// ptToMM converts typographic points to millimetres.
const ptToMM = 25.4 / 72

func (FixedMetrics) Measure(text string, f styles.Font) float64 {
	em := 0.5
	if f.Bold {
		em = 0.55
	}
	return float64(utf8.RuneCountInString(text)) * em * f.Size * ptToMM
}
