package controller

import (
	"github.com/sahilm/fuzzy"
)

// GoToAnchor resolves anchorName against the current anchor index,
// falling back to the closest fuzzy match when no exact bookmark name
// exists, then collapses the caret to the target page's first
// position (spec.md §6 "goToAnchor(anchorName)"). It returns the
// resolved physical page number.
func (c *Controller) GoToAnchor(anchorName string) (int, error) {
	page, ok := c.bookmarks[anchorName]
	if !ok {
		if match, found := c.fuzzyAnchorMatch(anchorName); found {
			page, ok = c.bookmarks[match], true
		}
	}
	if !ok {
		return 0, &ValidationError{Field: "anchorName", Reason: "no matching bookmark found"}
	}

	if pos, ok := c.firstPositionOnPage(page); ok {
		c.selection.SetCaret(pos)
	}
	return page, nil
}

// fuzzyAnchorMatch finds the best fuzzy match for name among the
// current anchor index's bookmark names, used when exact lookup
// misses (e.g. a renamed heading or a typo in the requested anchor).
func (c *Controller) fuzzyAnchorMatch(name string) (string, bool) {
	if len(c.bookmarks) == 0 {
		return "", false
	}
	names := make([]string, 0, len(c.bookmarks))
	for n := range c.bookmarks {
		names = append(names, n)
	}
	matches := fuzzy.Find(name, names)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Str, true
}

func (c *Controller) firstPositionOnPage(pageNumber int) (int, bool) {
	for _, p := range c.layoutResult.Pages {
		if p.Number != pageNumber {
			continue
		}
		for _, f := range p.Fragments {
			if start, _, ok := f.PMRange(); ok {
				return start, true
			}
		}
	}
	return 0, false
}
