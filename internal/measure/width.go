// Package measure provides the character-width and line-wrapping
// primitives the layout engine's measureFn uses to turn a Run's text
// into a docmodel.Line (spec.md §4.C). There is no canvas or font
// metrics table available to a headless engine, so width is derived
// from go-runewidth's East-Asian-width-aware table, the same
// printable-width model the teacher's pager/outline views use to lay
// out fixed-width terminal cells (spec.md §1 Non-goals: "Reflowing
// lines based on typographic shaping beyond supplied per-run
// measurements" — this package is exactly the supplied measurement,
// not shaping).
package measure

import (
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/ansi"
)

// UnitsPerChar is the nominal width, in layout units, of one
// "narrow" character cell. Callers scale RuneWidth's cell counts by
// this to get layout-space widths.
const UnitsPerChar = 7.2 // 10pt monospace approximation, in points

// RuneWidth returns the measured width, in layout units, of a single
// rune at the given font size (half-points).
func RuneWidth(r rune, fontSizeHalfPt int) float64 {
	cells := runewidth.RuneWidth(r)
	if cells == 0 {
		cells = 1
	}
	scale := float64(fontSizeHalfPt) / 20.0 // 20 half-points == 10pt baseline
	if scale <= 0 {
		scale = 1
	}
	return float64(cells) * UnitsPerChar * scale
}

// StringWidth returns the total measured width of s, summing
// RuneWidth over every rune. ANSI escape sequences are not stripped
// (Run.Text is plain text in this model); PrintableWidth is the
// ANSI-aware variant.
func StringWidth(s string, fontSizeHalfPt int) float64 {
	var total float64
	for _, r := range s {
		total += RuneWidth(r, fontSizeHalfPt)
	}
	return total
}

// PrintableWidth reports the width of s with ANSI SGR sequences
// stripped, used by the demo painter (cmd/flowdoc-demo) when
// budgeting terminal columns for a rendered line.
func PrintableWidth(s string) int {
	return ansi.PrintableRuneWidth(s)
}

// CharXPositions computes the cumulative x offset (relative to the
// line's own left edge) before each rune in text, returning one
// entry per rune plus a trailing entry for the position just past
// the last rune. This is the concrete stand-in for docmodel.Line's
// CharX slice and for the Hit Test component's "canvas-based
// character measurement" fallback (spec.md §4.F step 2, §4.H step 2).
func CharXPositions(text string, fontSizeHalfPt int) []float64 {
	positions := make([]float64, 0, len(text)+1)
	var x float64
	positions = append(positions, x)
	for _, r := range text {
		x += RuneWidth(r, fontSizeHalfPt)
		positions = append(positions, x)
	}
	return positions
}
