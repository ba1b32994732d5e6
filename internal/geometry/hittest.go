package geometry

import "github.com/hholst80/flowdoc/internal/docmodel"

// ClickToPosition implements the engine's clickToPosition query
// (spec.md §4.F): given a layout-space point, find the containing
// fragment and resolve a document position within it. pageGap is the
// Layout's own PageGap.
func ClickToPosition(layout docmodel.Layout, measures map[string]docmodel.Measure, pt Point) (pos int, ok bool) {
	pageIdx, localY := PageIndexForY(pt.Y, layout.PageSize.Height, layout.PageGap)
	if pageIdx < 0 || pageIdx >= len(layout.Pages) {
		return 0, false
	}
	page := layout.Pages[pageIdx]

	var hit *docmodel.Fragment
	for i := range page.Fragments {
		f := &page.Fragments[i]
		top := f.Y()
		h := fragmentHeight(*f, measures)
		if localY >= top && localY < top+h {
			hit = f
			break
		}
	}
	if hit == nil {
		return 0, false
	}

	switch hit.Kind {
	case docmodel.FragmentPara:
		return positionInParaFragment(*hit.Para, measures[hit.Para.BlockID], pt.X, localY)
	case docmodel.FragmentTable:
		// Table fragments resolve to a cell hit, not a text position;
		// callers needing a document position go through
		// ResolveTableCellPosition once they've identified the cell.
		return 0, false
	}
	return 0, false
}

func positionInParaFragment(f docmodel.ParaFragment, m docmodel.Measure, x, localY float64) (int, bool) {
	if m.Kind != docmodel.MeasureParagraph || m.Paragraph == nil {
		return f.PMStart, true
	}
	lines := m.Paragraph.Lines
	y := 0.0
	for i := f.FromLine; i < f.ToLine && i < len(lines); i++ {
		line := lines[i]
		if localY >= y && localY < y+line.LineHeight {
			return positionInLine(line, x-f.X-f.MarkerWidth), true
		}
		y += line.LineHeight
	}
	// below the last line of this fragment: snap to its end.
	if f.ToLine > 0 && f.ToLine-1 < len(lines) {
		return lines[f.ToLine-1].PMEnd, true
	}
	return f.PMStart, true
}

func positionInLine(line docmodel.Line, localX float64) int {
	if len(line.CharX) == 0 {
		return line.PMStart
	}
	if localX <= 0 {
		return line.PMStart
	}
	best := 0
	bestDist := -1.0
	for i, x := range line.CharX {
		d := x - localX
		if d < 0 {
			d = -d
		}
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = i
		}
	}
	pos := line.PMStart + best
	if pos > line.PMEnd {
		pos = line.PMEnd
	}
	return pos
}
