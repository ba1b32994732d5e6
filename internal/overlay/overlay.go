// Package overlay computes the two-layer (local, remote) overlay
// geometry: carets, selection rects, and cell-selection tiles (spec.md
// §4.H).
package overlay

import (
	"github.com/hholst80/flowdoc/internal/docmodel"
	"github.com/hholst80/flowdoc/internal/geometry"
)

// CaretRect is a thin vertical bar positioned at a document position.
type CaretRect struct {
	X, Y, Height float64
	PageIndex    int
}

// DOMCaretHint is the information a painter can supply for DOM-based
// caret placement: the bounding rect of a zero-width range at pos,
// already translated to page-local coordinates.
type DOMCaretHint struct {
	X, Y, Height float64
	PageIndex    int
}

// ComputeCaretLayoutRect implements spec.md §4.H's fallback chain:
//  1. if dom is non-nil, use it directly (the painter already resolved
//     the precise character rect from rendered spans);
//  2. otherwise fall back to geometry: locate the fragment and line
//     containing pos and derive X/Y from measures;
//  3. if pos itself fails, try pos-1 then pos+1 within [0, docSize);
//     if all fail, the caller keeps the existing caret (signaled by
//     ok=false).
func ComputeCaretLayoutRect(layout docmodel.Layout, measures map[string]docmodel.Measure, pos int, docSize int, dom *DOMCaretHint) (CaretRect, bool) {
	if dom != nil {
		return CaretRect{X: dom.X, Y: dom.Y, Height: dom.Height, PageIndex: dom.PageIndex}, true
	}

	if r, ok := caretFromGeometry(layout, measures, pos); ok {
		return r, true
	}
	for _, candidate := range []int{pos - 1, pos + 1} {
		if candidate < 0 || candidate >= docSize {
			continue
		}
		if r, ok := caretFromGeometry(layout, measures, candidate); ok {
			return r, true
		}
	}
	return CaretRect{}, false
}

func caretFromGeometry(layout docmodel.Layout, measures map[string]docmodel.Measure, pos int) (CaretRect, bool) {
	for pageIdx, page := range layout.Pages {
		for _, f := range page.Fragments {
			if f.Kind != docmodel.FragmentPara {
				continue
			}
			pf := f.Para
			if pos < pf.PMStart || pos > pf.PMEnd {
				continue
			}
			m := measures[pf.BlockID]
			if m.Kind != docmodel.MeasureParagraph || m.Paragraph == nil {
				continue
			}
			y := 0.0
			for i := pf.FromLine; i < pf.ToLine && i < len(m.Paragraph.Lines); i++ {
				line := m.Paragraph.Lines[i]
				if pos >= line.PMStart && pos <= line.PMEnd {
					x := pf.X + pf.MarkerWidth + lineCharX(line, pos)
					return CaretRect{X: x, Y: pf.Y + y, Height: line.LineHeight, PageIndex: pageIdx}, true
				}
				y += line.LineHeight
			}
		}
	}
	return CaretRect{}, false
}

func lineCharX(line docmodel.Line, pos int) float64 {
	idx := pos - line.PMStart
	if idx < 0 {
		idx = 0
	}
	if idx >= len(line.CharX) {
		if len(line.CharX) == 0 {
			return 0
		}
		idx = len(line.CharX) - 1
	}
	return line.CharX[idx]
}

// SelectionRects computes the overlay rects for a non-empty text
// range, applying DOM correction when provided (spec.md §4.H).
func SelectionRects(layout docmodel.Layout, measures map[string]docmodel.Measure, from, to int, corrections map[int]geometry.DOMCorrection) []geometry.Rect {
	rects := geometry.GetRangeRects(layout, measures, from, to)
	if len(corrections) == 0 {
		return rects
	}
	byPage := map[int][]geometry.Rect{}
	order := []int{}
	for _, r := range rects {
		if _, seen := byPage[r.PageIndex]; !seen {
			order = append(order, r.PageIndex)
		}
		byPage[r.PageIndex] = append(byPage[r.PageIndex], r)
	}
	var out []geometry.Rect
	for _, pageIdx := range order {
		pageRects := byPage[pageIdx]
		if c, ok := corrections[pageIdx]; ok {
			pageRects = geometry.ApplyDOMCorrection(pageRects, pageIdx, c)
		}
		out = append(out, pageRects...)
	}
	return out
}
