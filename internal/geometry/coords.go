// Package geometry implements position<->coordinate mapping: hit
// testing, range rects, word/paragraph boundary expansion, and table
// cell position resolution (spec.md §4.F).
package geometry

import "github.com/hholst80/flowdoc/internal/docmodel"

// Point is a coordinate in some space (viewport, layout, or
// page-local); callers track which via the function they obtained it
// from.
type Point struct {
	X, Y float64
}

// Viewport describes the transform between client (screen) pixels and
// layout-space coordinates: origin is the viewport rect's top-left in
// client space, scroll is the current scroll offset, zoom is the CSS
// transform scale applied to the viewport container.
type Viewport struct {
	OriginX, OriginY float64
	ScrollX, ScrollY float64
	Zoom             float64
	// HorizontalOffset is subtracted after the above in book/horizontal
	// modes, or when pages are horizontally centered (spec.md §4.F).
	HorizontalOffset float64
}

// NormalizeToLayout converts a client-space point to layout-space
// (spec.md §4.F hitTest step 1): subtract origin, add scroll, divide
// by zoom, subtract the horizontal offset.
func NormalizeToLayout(clientX, clientY float64, vp Viewport) Point {
	zoom := vp.Zoom
	if zoom == 0 {
		zoom = 1
	}
	x := (clientX-vp.OriginX+vp.ScrollX)/zoom - vp.HorizontalOffset
	y := (clientY - vp.OriginY + vp.ScrollY) / zoom
	return Point{X: x, Y: y}
}

// ToViewport is the inverse of NormalizeToLayout, used by coordsAtPos
// to project a layout-space rect back to viewport coordinates.
func ToViewport(layoutX, layoutY float64, vp Viewport) Point {
	zoom := vp.Zoom
	if zoom == 0 {
		zoom = 1
	}
	x := (layoutX+vp.HorizontalOffset)*zoom + vp.OriginX - vp.ScrollX
	y := layoutY*zoom + vp.OriginY - vp.ScrollY
	return Point{X: x, Y: y}
}

// PageIndexForY resolves which page a layout-space y falls on given
// uniform page height and gap, returning the page index and the
// y offset local to that page.
func PageIndexForY(layoutY float64, pageHeight, pageGap float64) (pageIndex int, localY float64) {
	stride := pageHeight + pageGap
	if stride <= 0 {
		return 0, layoutY
	}
	idx := int(layoutY / stride)
	if idx < 0 {
		idx = 0
	}
	local := layoutY - float64(idx)*stride
	if local > pageHeight {
		// inside the gap between pages; clamp into the next page's top.
		return idx + 1, 0
	}
	return idx, local
}

// PageOriginY returns the layout-space y of the top of page index idx.
func PageOriginY(idx int, pageHeight, pageGap float64) float64 {
	return float64(idx) * (pageHeight + pageGap)
}

// Rect is a page-local or layout-space rectangle, tagged with the
// page it belongs to.
type Rect struct {
	X, Y, Width, Height float64
	PageIndex           int
}

func fragmentHeight(f docmodel.Fragment, measures map[string]docmodel.Measure) float64 {
	switch f.Kind {
	case docmodel.FragmentPara:
		m := measures[f.Para.BlockID]
		if m.Kind != docmodel.MeasureParagraph || m.Paragraph == nil {
			return 0
		}
		h := 0.0
		for i := f.Para.FromLine; i < f.Para.ToLine && i < len(m.Paragraph.Lines); i++ {
			h += m.Paragraph.Lines[i].LineHeight
		}
		return h
	case docmodel.FragmentTable:
		return f.Table.Height
	case docmodel.FragmentImage:
		return f.Image.Height
	case docmodel.FragmentDrawing:
		return f.Drawing.Height
	}
	return 0
}
