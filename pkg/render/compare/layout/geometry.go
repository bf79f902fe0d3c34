package layout

// Geometry fixes every dimension of the comparison document, in millimetres
// unless noted. The zero value is unusable; start from [A4].
type Geometry struct {
	PageWidth  float64
	PageHeight float64
	Margin     float64

	// Columns are the label, program A and program B column widths.
	Columns [3]float64

	TitleBarHeight float64
	// ContentTop is where the program headers start on the first page.
	ContentTop float64

	SectionHeaderHeight  float64
	SectionHeaderAdvance float64
	// SectionBreakMargin is the distance from the page bottom below which a
	// new section starts on a fresh page.
	SectionBreakMargin float64
	SectionGap         float64

	RowFontSize     float64 // points
	RowPadding      float64
	RowLineHeight   float64
	RowMinHeight    float64
	RowGap          float64
	RowBottomMargin float64

	SummaryGap          float64
	SummaryBreakMargin  float64
	SummaryPadding      float64
	SummaryFontSize     float64 // points
	SummaryLineHeight   float64
	SummaryBottomMargin float64

	// FooterOffset is the footer baseline distance from the page bottom.
	FooterOffset float64
}

// A4 returns the portrait A4 geometry of the comparison report.
func A4() Geometry {
	return Geometry{
		PageWidth:  210,
		PageHeight: 297,
		Margin:     15,
		Columns:    [3]float64{60, 65, 65},

		TitleBarHeight: 25,
		ContentTop:     30,

		SectionHeaderHeight:  8,
		SectionHeaderAdvance: 10,
		SectionBreakMargin:   40,
		SectionGap:           3,

		RowFontSize:     9,
		RowPadding:      3,
		RowLineHeight:   4.5,
		RowMinHeight:    8,
		RowGap:          1,
		RowBottomMargin: 25,

		SummaryGap:          8,
		SummaryBreakMargin:  60,
		SummaryPadding:      5,
		SummaryFontSize:     9,
		SummaryLineHeight:   4.2,
		SummaryBottomMargin: 20,

		FooterOffset: 8,
	}
}

// TableWidth is the sum of the three column widths.
func (g Geometry) TableWidth() float64 {
	return g.Columns[0] + g.Columns[1] + g.Columns[2]
}

// ContentWidth is the page width inside the margins.
func (g Geometry) ContentWidth() float64 {
	return g.PageWidth - 2*g.Margin
}

// ColumnX returns the left edge of column i.
func (g Geometry) ColumnX(i int) float64 {
	x := g.Margin
	for j := 0; j < i; j++ {
		x += g.Columns[j]
	}
	return x
}

// RowLimit is the lowest y a table row may reach.
func (g Geometry) RowLimit() float64 { return g.PageHeight - g.RowBottomMargin }

// SummaryLimit is the lowest y a summary line may reach.
func (g Geometry) SummaryLimit() float64 { return g.PageHeight - g.SummaryBottomMargin }
