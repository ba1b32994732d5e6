package geometry

import "github.com/hholst80/flowdoc/internal/docmodel"

// GetRangeRects returns page-local rects for every fragment whose PM
// range intersects [from, to), honoring P1: a non-empty result iff
// some fragment intersects.
func GetRangeRects(layout docmodel.Layout, measures map[string]docmodel.Measure, from, to int) []Rect {
	var rects []Rect
	for pageIdx, page := range layout.Pages {
		for _, f := range page.Fragments {
			start, end, ok := f.PMRange()
			if !ok || end <= from || start >= to {
				continue
			}
			rects = append(rects, rectForParaIntersection(*f.Para, measures[f.Para.BlockID], from, to, pageIdx))
		}
	}
	return rects
}

// rectForParaIntersection computes the bounding rect (within the
// fragment) of the PM sub-range [from,to) intersected with the
// fragment's own range.
func rectForParaIntersection(f docmodel.ParaFragment, m docmodel.Measure, from, to, pageIdx int) Rect {
	lo := from
	if f.PMStart > lo {
		lo = f.PMStart
	}
	hi := to
	if f.PMEnd < hi {
		hi = f.PMEnd
	}

	if m.Kind != docmodel.MeasureParagraph || m.Paragraph == nil {
		return Rect{X: f.X, Y: f.Y, Width: f.Width, Height: 0, PageIndex: pageIdx}
	}

	lines := m.Paragraph.Lines
	y := 0.0
	var rectY, rectHeight float64
	var xStart, xEnd float64
	found := false
	for i := f.FromLine; i < f.ToLine && i < len(lines); i++ {
		line := lines[i]
		if line.PMEnd > lo && line.PMStart < hi {
			lineLo := lo
			if line.PMStart > lineLo {
				lineLo = line.PMStart
			}
			lineHi := hi
			if line.PMEnd < lineHi {
				lineHi = line.PMEnd
			}
			x0 := charXAt(line, lineLo)
			x1 := charXAt(line, lineHi)
			if !found {
				rectY = y
				xStart, xEnd = x0, x1
				found = true
			} else {
				if x0 < xStart {
					xStart = x0
				}
				if x1 > xEnd {
					xEnd = x1
				}
			}
			rectHeight += line.LineHeight
		}
		y += line.LineHeight
	}

	return Rect{X: f.X + xStart, Y: f.Y + rectY, Width: xEnd - xStart, Height: rectHeight, PageIndex: pageIdx}
}

func charXAt(line docmodel.Line, pos int) float64 {
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

// DOMCorrection is the per-page delta the overlay renderer applies
// when authoritative DOM caret rects are available for a range's
// endpoints (spec.md §4.F: "CSS effects... are not modeled by the
// layout engine at character level; DOM gives a ground truth").
type DOMCorrection struct {
	DX, DY        float64
	StartX, EndX  float64
	HasStart, HasEnd bool
}

// ApplyDOMCorrection shifts a page's rects by (dx,dy) and, when
// available, overrides the first rect's left edge with the DOM start
// x and derives the last rect's width from the DOM end x.
func ApplyDOMCorrection(rects []Rect, pageIndex int, c DOMCorrection) []Rect {
	out := make([]Rect, len(rects))
	copy(out, rects)
	firstIdx, lastIdx := -1, -1
	for i, r := range out {
		if r.PageIndex != pageIndex {
			continue
		}
		out[i].X += c.DX
		out[i].Y += c.DY
		if firstIdx == -1 {
			firstIdx = i
		}
		lastIdx = i
	}
	if firstIdx == -1 {
		return out
	}
	if c.HasStart {
		shift := c.StartX - out[firstIdx].X
		out[firstIdx].Width -= shift
		out[firstIdx].X = c.StartX
	}
	if c.HasEnd {
		out[lastIdx].Width = c.EndX - out[lastIdx].X
	}
	return out
}
