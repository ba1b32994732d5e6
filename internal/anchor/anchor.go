// Package anchor builds the bookmark name -> page number index
// produced on every successful layout (spec.md §4.E).
package anchor

import "github.com/hholst80/flowdoc/internal/docmodel"

// Map is the anchorMap precomputed on each layout: bookmark name to
// physical page number. Navigation looks this up directly and never
// re-scans fragments during the click path (spec.md §9).
type Map map[string]int

// Build scans layout for every bookmark's containing fragment and
// returns the name->page map (spec.md §4.E).
//
// For each bookmark:
//   - a hit is a ParaFragment whose [PMStart, PMEnd) contains Pos.
//   - bookmarks in structural gaps (e.g. between a section break and
//     the first subsequent run) resolve to the page of the nearest
//     subsequent fragment, found by scanning forward in document
//     order across all pages.
func Build(layout docmodel.Layout, bookmarks []docmodel.Bookmark) Map {
	result := make(Map, len(bookmarks))

	for _, bm := range bookmarks {
		var hitPage int
		hit := false
		var nearestPage int
		nearestPM := -1
		nearestFound := false

		for _, page := range layout.Pages {
			for _, f := range page.Fragments {
				start, end, ok := f.PMRange()
				if !ok {
					continue
				}
				if bm.Pos >= start && bm.Pos < end {
					hitPage = page.Number
					hit = true
					break
				}
				if start >= bm.Pos && (!nearestFound || start < nearestPM) {
					nearestPM = start
					nearestPage = page.Number
					nearestFound = true
				}
			}
			if hit {
				break
			}
		}

		if hit {
			result[bm.Name] = hitPage
		} else if nearestFound {
			result[bm.Name] = nearestPage
		}
	}

	return result
}
