package sink

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/backtoschool/progcompare/pkg/render/compare/layout"
	"github.com/backtoschool/progcompare/pkg/render/compare/styles"
)

func TestRecorderPages(t *testing.T) {
	r := NewRecorder()
	r.AddPage()
	r.FillRect(0, 0, 210, 25, styles.Brand)
	r.AddPage()
	r.Text(15, 30, "second", styles.Text{Font: styles.Bold(12), Color: styles.White})
	r.SetPage(1)
	r.StrokeRect(15, 40, 60, 10, styles.Border, 0.1)

	if r.PageCount() != 2 || r.Page() != 1 {
		t.Fatalf("PageCount/Page = %d/%d, want 2/1", r.PageCount(), r.Page())
	}
	p1 := r.Pages()[0].Ops
	if len(p1) != 2 || p1[0].Kind != OpFill || p1[1].Kind != OpStroke {
		t.Errorf("page 1 ops = %+v", p1)
	}
	if p1[0].Color != "#2563eb" {
		t.Errorf("fill color = %q", p1[0].Color)
	}
	if p1[1].LineWidth != 0.1 {
		t.Errorf("LineWidth = %v", p1[1].LineWidth)
	}

	texts := r.Texts(2)
	if len(texts) != 1 || texts[0].Text != "second" || !texts[0].Font.Bold || texts[0].Align != "left" {
		t.Errorf("page 2 texts = %+v", texts)
	}
	if r.Texts(3) != nil {
		t.Error("Texts(3) should be nil")
	}
}

func TestRecorderPanicsOutOfRange(t *testing.T) {
	r := NewRecorder()
	defer func() {
		if recover() == nil {
			t.Error("SetPage(1) on an empty recorder did not panic")
		}
	}()
	r.SetPage(1)
}

func TestRecorderPanicsBeforeFirstPage(t *testing.T) {
	r := NewRecorder()
	defer func() {
		if recover() == nil {
			t.Error("drawing before AddPage did not panic")
		}
	}()
	r.FillRect(0, 0, 1, 1, styles.Black)
}

func TestFixedMetrics(t *testing.T) {
	m := FixedMetrics{}
	regular := m.Measure("abcd", styles.Regular(10))
	bold := m.Measure("abcd", styles.Bold(10))
	if bold <= regular {
		t.Errorf("bold %v should be wider than regular %v", bold, regular)
	}
	if m.Measure("日本", styles.Regular(10)) != m.Measure("ab", styles.Regular(10)) {
		t.Error("width should count runes, not bytes")
	}
	if m.Measure("", styles.Regular(10)) != 0 {
		t.Error("empty string should have no width")
	}
}

func TestWithMeasurer(t *testing.T) {
	pdf := NewPDF(layout.A4())
	r := NewRecorder(WithMeasurer(pdf))
	f := styles.Regular(9)
	if r.Measure("Tuition Fee", f) != pdf.Measure("Tuition Fee", f) {
		t.Error("recorder does not measure like its measurer")
	}
}

func TestPDFMeasure(t *testing.T) {
	p := NewPDF(layout.A4())
	if w := p.Measure("", styles.Regular(9)); w != 0 {
		t.Errorf("Measure(\"\") = %v", w)
	}
	narrow := p.Measure("iiii", styles.Regular(9))
	wide := p.Measure("WWWW", styles.Regular(9))
	if narrow >= wide {
		t.Errorf("Helvetica metrics not applied: iiii=%v WWWW=%v", narrow, wide)
	}
	if p.Measure("WWWW", styles.Bold(18)) <= wide {
		t.Error("larger bold text should be wider")
	}
}

func TestPDFBytes(t *testing.T) {
	p := NewPDF(layout.A4(), WithCompression(false))
	p.AddPage()
	p.FillRect(0, 0, 210, 25, styles.Brand)
	p.Text(105, 289, "Page 1 of 2", styles.Text{Font: styles.Regular(8), Color: styles.Muted, Align: styles.AlignCenter})
	p.AddPage()
	p.StrokeRect(15, 40, 60, 10, styles.Border, 0.1)
	p.SetPage(1)
	p.Text(15, 40, "back on one", styles.Text{Font: styles.Regular(8), Color: styles.Black})

	if p.PageCount() != 2 || p.Page() != 1 {
		t.Fatalf("PageCount/Page = %d/%d", p.PageCount(), p.Page())
	}

	p.SetMetadata(Metadata{
		Title:   "Program Comparison: A vs B",
		Subject: "University Program Comparison",
		Author:  "BackToSchool",
		Creator: "BackToSchool Platform",
		Created: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	data, err := p.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("missing PDF header")
	}
	for _, want := range []string{"(Page 1 of 2)", "(back on one)", "/Count 2"} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRenderJSON(t *testing.T) {
	g := layout.A4()
	r := NewRecorder()
	r.AddPage()
	r.Text(15, 30, "Program A", styles.Text{Font: styles.Bold(14), Color: styles.Black})

	data, err := RenderJSON(r, g, Metadata{Title: "Program Comparison: A vs B"})
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.PageWidth != 210 || out.PageHeight != 297 || out.Margin != 15 {
		t.Errorf("geometry = %v x %v, margin %v", out.PageWidth, out.PageHeight, out.Margin)
	}
	if len(out.Columns) != 3 || out.Columns[0] != 60 {
		t.Errorf("Columns = %v", out.Columns)
	}
	if out.PageCount != 1 || len(out.Pages) != 1 || len(out.Pages[0].Ops) != 1 {
		t.Fatalf("pages = %+v", out.Pages)
	}
	if op := out.Pages[0].Ops[0]; op.Text != "Program A" || op.Font == nil || op.Font.Size != 14 {
		t.Errorf("op = %+v", op)
	}
	if out.Metadata.Title != "Program Comparison: A vs B" {
		t.Errorf("Title = %q", out.Metadata.Title)
	}
}

func TestRenderJSONEmpty(t *testing.T) {
	data, err := RenderJSON(NewRecorder(), layout.A4(), Metadata{})
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	if !bytes.Contains(data, []byte(`"pages": []`)) {
		t.Errorf("empty recording should serialize pages as []: %s", data)
	}
}
