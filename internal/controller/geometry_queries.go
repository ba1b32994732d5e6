package controller

import (
	"github.com/hholst80/flowdoc/internal/geometry"
	"github.com/hholst80/flowdoc/internal/headerfooter"
	"github.com/hholst80/flowdoc/internal/overlay"
	"github.com/hholst80/flowdoc/internal/session"
)

// HitTest resolves a client-space pointer event to a document
// position (spec.md §4.F). In header/footer mode it constrains the
// lookup to the active session's region layout; otherwise it uses the
// main body layout.
func (c *Controller) HitTest(clientX, clientY float64) (int, bool) {
	pt := geometry.NormalizeToLayout(clientX, clientY, c.viewport)
	if c.session.IsActive() {
		rr, ok := c.activeRegionResult()
		if !ok {
			return 0, false
		}
		return geometry.ClickToPosition(rr.Layout, rr.Measures, pt)
	}
	return geometry.ClickToPosition(c.layoutResult, c.prevMeasures, pt)
}

// PosAtCoords is HitTest's sibling for callers already holding a
// viewport-space point rather than a raw pointer event (spec.md §6
// "posAtCoords(coords)").
func (c *Controller) PosAtCoords(pt geometry.Point) (int, bool) {
	return c.HitTest(pt.X, pt.Y)
}

// CoordsAtPos is the inverse of PosAtCoords: it resolves pos to a
// caret rect via the same fallback chain the overlay renderer uses
// for carets, then projects it into viewport space (spec.md §6
// "coordsAtPos(pos)").
func (c *Controller) CoordsAtPos(pos int) (geometry.Point, bool) {
	caret, ok := overlay.ComputeCaretLayoutRect(c.layoutResult, c.prevMeasures, pos, c.docSize(), nil)
	if !ok {
		return geometry.Point{}, false
	}
	originY := geometry.PageOriginY(caret.PageIndex, c.pageHeight(), c.pageGap())
	return geometry.ToViewport(caret.X, originY+caret.Y, c.viewport), true
}

// GetSelectionRects returns the current text selection's overlay
// rects in viewport space (spec.md §6 "getSelectionRects()").
func (c *Controller) GetSelectionRects() []geometry.Rect {
	sel := c.selection.Selection()
	from, to := sel.Anchor, sel.Head
	if from > to {
		from, to = to, from
	}
	return c.GetRangeRects(from, to, nil)
}

// GetRangeRects returns the overlay rects for [from,to) in viewport
// space, optionally relative to an origin point (spec.md §6
// "getRangeRects(from,to,relativeTo?)").
func (c *Controller) GetRangeRects(from, to int, relativeTo *geometry.Point) []geometry.Rect {
	rects := geometry.GetRangeRects(c.layoutResult, c.prevMeasures, from, to)
	return c.rectsToViewport(rects, relativeTo)
}

// GetCommentBounds resolves each document position in positions to
// its overlay rects in viewport space (spec.md §6
// "getCommentBounds(positions, relativeTo?)").
func (c *Controller) GetCommentBounds(positions []int, relativeTo *geometry.Point) []geometry.Rect {
	var out []geometry.Rect
	for _, pos := range positions {
		rects := geometry.GetRangeRects(c.layoutResult, c.prevMeasures, pos, pos+1)
		out = append(out, c.rectsToViewport(rects, relativeTo)...)
	}
	return out
}

func (c *Controller) pageHeight() float64 { return c.layoutResult.PageSize.Height }
func (c *Controller) pageGap() float64    { return c.layoutResult.PageGap }

// rectsToViewport converts page-local layout rects to viewport space
// (spec.md §6 "getRangeRects": "compute pageIndex*(pageHeight+pageGap)
// + yLocal in layout space; convert to viewport by multiplying zoom
// and adjusting scroll and optional relativeTo origin").
func (c *Controller) rectsToViewport(rects []geometry.Rect, relativeTo *geometry.Point) []geometry.Rect {
	zoom := c.viewport.Zoom
	if zoom == 0 {
		zoom = 1
	}
	out := make([]geometry.Rect, len(rects))
	for i, r := range rects {
		originY := geometry.PageOriginY(r.PageIndex, c.pageHeight(), c.pageGap())
		pt := geometry.ToViewport(r.X, originY+r.Y, c.viewport)
		if relativeTo != nil {
			pt.X -= relativeTo.X
			pt.Y -= relativeTo.Y
		}
		out[i] = geometry.Rect{X: pt.X, Y: pt.Y, Width: r.Width * zoom, Height: r.Height * zoom, PageIndex: r.PageIndex}
	}
	return out
}

// docSize is the document's current end position, the largest PMEnd
// any fragment in the current layout reports.
func (c *Controller) docSize() int {
	size := 0
	for _, p := range c.layoutResult.Pages {
		for _, f := range p.Fragments {
			if _, end, ok := f.PMRange(); ok && end > size {
				size = end
			}
		}
	}
	return size
}

// activeRegionResult returns the header/footer RegionResult the
// active embedded editing session targets (spec.md §4.J, §4.F "in
// header/footer mode... engine lookup on the region's layout").
func (c *Controller) activeRegionResult() (headerfooter.RegionResult, bool) {
	state := c.session.Current()
	byRID := c.hfResults.HeadersByRID
	if state.Mode == session.ModeFooter {
		byRID = c.hfResults.FootersByRID
	}
	rr, ok := byRID[state.HeaderID]
	return rr, ok
}
