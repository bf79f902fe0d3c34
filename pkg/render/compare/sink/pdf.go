package sink

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/unicode/norm"

	"github.com/backtoschool/progcompare/pkg/render/compare/layout"
	"github.com/backtoschool/progcompare/pkg/render/compare/styles"
)

// Metadata is written into the PDF document information dictionary.
type Metadata struct {
	Title    string    `json:"title"`
	Subject  string    `json:"subject"`
	Author   string    `json:"author"`
	Creator  string    `json:"creator"`
	Producer string    `json:"producer,omitempty"`
	Created  time.Time `json:"created"`
}

// PDF is a [layout.Canvas] backed by fpdf. Text is drawn in the Helvetica
// core font, so strings are translated to cp1252 before measuring and
// drawing; runes outside that code page are replaced.
type PDF struct {
	doc       *fpdf.Fpdf
	translate func(string) string
	font      styles.Font
	fontSet   bool
	fontUsed  bool
}

// PDFOption configures a [PDF] canvas.
type PDFOption func(*PDF)

// WithCompression toggles stream compression (on by default). Turning it
// off makes the output readable in a text editor.
func WithCompression(on bool) PDFOption {
	return func(p *PDF) { p.doc.SetCompression(on) }
}

// NewPDF returns an empty portrait document sized by g. Automatic page breaks
// are off: the layout engine decides every break itself.
func NewPDF(g layout.Geometry, opts ...PDFOption) *PDF {
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: g.PageWidth, Ht: g.PageHeight},
	})
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(g.Margin, g.Margin, g.Margin)

	p := &PDF{
		doc:       doc,
		translate: doc.UnicodeTranslatorFromDescriptor(""),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *PDF) AddPage() {
	p.doc.AddPage()
	p.fontSet = false
}

func (p *PDF) SetPage(n int) {
	p.doc.SetPage(n)
	// fpdf keeps one font state for the whole document and drops SetFont
	// calls that match it, so nudge the size to force the next SetFont to
	// be written into the revisited page.
	if p.fontUsed {
		p.doc.SetFontSize(p.font.Size + 1)
	}
	p.fontSet = false
}

func (p *PDF) Page() int      { return p.doc.PageNo() }
func (p *PDF) PageCount() int { return p.doc.PageCount() }

func (p *PDF) Measure(text string, f styles.Font) float64 {
	p.setFont(f)
	return p.doc.GetStringWidth(p.encode(text))
}

func (p *PDF) FillRect(x, y, w, h float64, c styles.Color) {
	p.doc.SetFillColor(c.R, c.G, c.B)
	p.doc.Rect(x, y, w, h, "F")
}

func (p *PDF) StrokeRect(x, y, w, h float64, c styles.Color, lineWidth float64) {
	p.doc.SetDrawColor(c.R, c.G, c.B)
	p.doc.SetLineWidth(lineWidth)
	p.doc.Rect(x, y, w, h, "D")
}

func (p *PDF) Text(x, y float64, text string, s styles.Text) {
	p.setFont(s.Font)
	p.doc.SetTextColor(s.Color.R, s.Color.G, s.Color.B)
	encoded := p.encode(text)
	switch s.Align {
	case styles.AlignCenter:
		x -= p.doc.GetStringWidth(encoded) / 2
	case styles.AlignRight:
		x -= p.doc.GetStringWidth(encoded)
	}
	p.doc.Text(x, y, encoded)
}

func (p *PDF) setFont(f styles.Font) {
	if p.fontSet && p.font == f {
		return
	}
	style := ""
	if f.Bold {
		style = "B"
	}
	p.doc.SetFont(styles.Family, style, f.Size)
	p.font, p.fontSet, p.fontUsed = f, true, true
}

func (p *PDF) encode(s string) string {
	return p.translate(norm.NFC.String(s))
}

// SetMetadata fills the document information dictionary.
func (p *PDF) SetMetadata(m Metadata) {
	p.doc.SetTitle(m.Title, true)
	p.doc.SetSubject(m.Subject, true)
	p.doc.SetAuthor(m.Author, true)
	p.doc.SetCreator(m.Creator, true)
	if m.Producer != "" {
		p.doc.SetProducer(m.Producer, true)
	}
	if !m.Created.IsZero() {
		p.doc.SetCreationDate(m.Created)
		p.doc.SetModificationDate(m.Created)
	}
}

// Bytes finalizes the document. The canvas must not be drawn on afterwards.
func (p *PDF) Bytes() ([]byte, error) {
	if err := p.doc.Error(); err != nil {
		return nil, fmt.Errorf("draw pdf: %w", err)
	}
	var buf bytes.Buffer
	if err := p.doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
