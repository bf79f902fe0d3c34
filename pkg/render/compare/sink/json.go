package sink

import (
	"encoding/json"

	"github.com/backtoschool/progcompare/pkg/render/compare/layout"
)

type jsonOutput struct {
	Metadata   Metadata  `json:"metadata"`
	PageWidth  float64   `json:"page_width"`
	PageHeight float64   `json:"page_height"`
	Margin     float64   `json:"margin"`
	Columns    []float64 `json:"columns"`
	PageCount  int       `json:"page_count"`
	Pages      []Page    `json:"pages"`
}

// RenderJSON writes the recorded drawing calls as a pretty-printed JSON
// document: geometry, metadata and every page's operations in call order.
// It is meant for debugging layouts and golden-file comparisons.
func RenderJSON(r *Recorder, g layout.Geometry, meta Metadata) ([]byte, error) {
	pages := r.Pages()
	if pages == nil {
		pages = []Page{}
	}
	out := jsonOutput{
		Metadata:   meta,
		PageWidth:  g.PageWidth,
		PageHeight: g.PageHeight,
		Margin:     g.Margin,
		Columns:    g.Columns[:],
		PageCount:  len(pages),
		Pages:      pages,
	}
	return json.MarshalIndent(out, "", "  ")
}
