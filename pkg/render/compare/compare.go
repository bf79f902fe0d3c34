package compare

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/log"

	"github.com/backtoschool/progcompare/pkg/errors"
	"github.com/backtoschool/progcompare/pkg/program"
	"github.com/backtoschool/progcompare/pkg/render/compare/layout"
	"github.com/backtoschool/progcompare/pkg/render/compare/sink"
)

// Fixed document text.
const (
	Brand    = "BackToSchool"
	Subtitle = "Program Comparison Report"

	MetaSubject = "University Program Comparison"
	MetaAuthor  = "BackToSchool"
	MetaCreator = "BackToSchool Platform"
)

var tableCaptions = [3]string{"Attribute", "Program A", "Program B"}

// Content types of rendered documents.
const (
	ContentTypePDF  = "application/pdf"
	ContentTypeJSON = "application/json"
)

// Document is a finished comparison document.
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
	Pages       int
	Metadata    sink.Metadata
}

// Option configures rendering.
type Option func(*exporter)

type exporter struct {
	geo      layout.Geometry
	now      func() time.Time
	logger   *log.Logger
	producer string
	compress bool
}

// WithGeometry overrides the A4 page geometry.
func WithGeometry(g layout.Geometry) Option { return func(x *exporter) { x.geo = g } }

// WithClock sets the time source for the "Generated on" date and the PDF
// creation date.
func WithClock(now func() time.Time) Option { return func(x *exporter) { x.now = now } }

// WithLogger sets the logger that receives the underlying cause of a failed
// export.
func WithLogger(l *log.Logger) Option { return func(x *exporter) { x.logger = l } }

// WithProducer records the producing application in the PDF metadata.
func WithProducer(s string) Option { return func(x *exporter) { x.producer = s } }

// WithoutCompression writes uncompressed PDF content streams.
func WithoutCompression() Option { return func(x *exporter) { x.compress = false } }

func newExporter(opts []Option) *exporter {
	x := &exporter{
		geo:      layout.A4(),
		now:      time.Now,
		compress: true,
	}
	for _, opt := range opts {
		opt(x)
	}
	if x.logger == nil {
		x.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return x
}

// RenderPDF lays out the comparison of req's two programs and returns the
// finished PDF.
//
// Any failure, including a panic inside the drawing backend, is logged and
// reported as a single EXPORT_FAILED error whose user message is
// [errors.ExportFailedMessage]. No partial document is ever returned.
func RenderPDF(req program.Request, opts ...Option) (*Document, error) {
	x := newExporter(opts)
	var doc *Document
	err := x.guard(func() error {
		canvas := sink.NewPDF(x.geo, sink.WithCompression(x.compress))
		pages := Draw(canvas, req, x.geo, x.now())
		meta := x.metadata(req)
		canvas.SetMetadata(meta)
		data, err := canvas.Bytes()
		if err != nil {
			return err
		}
		doc = &Document{
			Filename:    Filename(req.ProgramA.Name, req.ProgramB.Name, ".pdf"),
			ContentType: ContentTypePDF,
			Data:        data,
			Pages:       pages,
			Metadata:    meta,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// RenderJSON lays out the comparison like [RenderPDF], measuring text with the
// same font metrics, but returns the recorded drawing calls as JSON.
func RenderJSON(req program.Request, opts ...Option) (*Document, error) {
	x := newExporter(opts)
	var doc *Document
	err := x.guard(func() error {
		rec := sink.NewRecorder(sink.WithMeasurer(sink.NewPDF(x.geo)))
		pages := Draw(rec, req, x.geo, x.now())
		meta := x.metadata(req)
		data, err := sink.RenderJSON(rec, x.geo, meta)
		if err != nil {
			return err
		}
		doc = &Document{
			Filename:    Filename(req.ProgramA.Name, req.ProgramB.Name, ".json"),
			ContentType: ContentTypeJSON,
			Data:        data,
			Pages:       pages,
			Metadata:    meta,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// guard runs fn, converting an error or panic into the generic export
// failure after logging the original.
func (x *exporter) guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		if err != nil {
			x.logger.Error("export failed", "error", err)
			err = errors.ExportFailed(err)
		}
	}()
	return fn()
}

func (x *exporter) metadata(req program.Request) sink.Metadata {
	return sink.Metadata{
		Title: fmt.Sprintf("Program Comparison: %s vs %s",
			req.ProgramA.DisplayName("Program A"), req.ProgramB.DisplayName("Program B")),
		Subject:  MetaSubject,
		Author:   MetaAuthor,
		Creator:  MetaCreator,
		Producer: x.producer,
		Created:  x.now(),
	}
}

// Draw lays the whole document out on c and returns the page count. It
// panics if the canvas does; callers that need the generic export error
// use [RenderPDF] or [RenderJSON].
func Draw(c layout.Canvas, req program.Request, g layout.Geometry, now time.Time) int {
	e := layout.NewEngine(c, g)

	cur := e.Begin()
	cur = e.TitleBar(cur, Brand, Subtitle, "Generated on "+now.Format("January 2, 2006"))
	cur = e.ProgramHeaders(cur, req.ProgramA.Name, req.ProgramB.Name)
	cur = e.TableHeader(cur, tableCaptions)

	sections := Sections()
	for i, s := range sections {
		cur = e.BeginSection(cur, s.Title)
		for _, f := range s.Fields {
			cur = e.Row(cur, s.Title, layout.Row{
				Label: f.Label,
				A:     f.Value(&req.ProgramA),
				B:     f.Value(&req.ProgramB),
			})
		}
		if i < len(sections)-1 {
			cur = e.EndSection(cur)
		}
	}

	if req.IncludeAIExplanation {
		e.Paragraph(cur, SectionSummary, req.AIExplanation)
	}

	return e.Footers()
}

// filenamePartLen caps each program name in the file name, in runes.
const filenamePartLen = 30

// Filename builds "program_comparison_<a>_vs_<b><ext>" from the first 30
// characters of each name, lower-cased with non-alphanumerics replaced by
// underscores. Empty names become "programa" and "programb".
func Filename(nameA, nameB, ext string) string {
	return strings.ToLower(fmt.Sprintf("Program_Comparison_%s_vs_%s%s",
		filenamePart(nameA, "ProgramA"), filenamePart(nameB, "ProgramB"), ext))
}

func filenamePart(name, fallback string) string {
	if name == "" {
		name = fallback
	}
	runes := []rune(name)
	if len(runes) > filenamePartLen {
		runes = runes[:filenamePartLen]
	}
	for i, r := range runes {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			runes[i] = '_'
		}
	}
	return string(runes)
}
