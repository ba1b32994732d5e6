package anchor

import (
	"testing"

	"github.com/hholst80/flowdoc/internal/docmodel"
)

func fragPage(number int, frags ...docmodel.Fragment) docmodel.Page {
	return docmodel.Page{Number: number, Fragments: frags}
}

func paraFrag(blockID string, start, end int) docmodel.Fragment {
	return docmodel.Fragment{
		Kind: docmodel.FragmentPara,
		Para: &docmodel.ParaFragment{BlockID: blockID, PMStart: start, PMEnd: end},
	}
}

func TestBuildExactHit(t *testing.T) {
	layout := docmodel.Layout{Pages: []docmodel.Page{
		fragPage(1, paraFrag("p1", 0, 10)),
		fragPage(2, paraFrag("p2", 10, 20)),
	}}
	bookmarks := []docmodel.Bookmark{{Name: "chapter2", Pos: 15}}

	got := Build(layout, bookmarks)
	if got["chapter2"] != 2 {
		t.Errorf("expected page 2, got %d", got["chapter2"])
	}
}

func TestBuildStructuralGapFallsBackToNearestFollowing(t *testing.T) {
	layout := docmodel.Layout{Pages: []docmodel.Page{
		fragPage(1, paraFrag("p1", 0, 10)),
		fragPage(2, paraFrag("p2", 20, 30)),
	}}
	// pmPos 15 falls between fragments; nearest following fragment starts at 20 on page 2.
	bookmarks := []docmodel.Bookmark{{Name: "gap", Pos: 15}}

	got := Build(layout, bookmarks)
	if got["gap"] != 2 {
		t.Errorf("expected fallback to page 2, got %d", got["gap"])
	}
}

func TestBuildUnresolvedBookmarkOmitted(t *testing.T) {
	layout := docmodel.Layout{Pages: []docmodel.Page{
		fragPage(1, paraFrag("p1", 0, 10)),
	}}
	bookmarks := []docmodel.Bookmark{{Name: "beyondEnd", Pos: 50}}

	got := Build(layout, bookmarks)
	if _, ok := got["beyondEnd"]; ok {
		t.Errorf("expected no entry for an unresolvable bookmark, got %v", got["beyondEnd"])
	}
}

func TestBuildMultipleBookmarksIndependent(t *testing.T) {
	layout := docmodel.Layout{Pages: []docmodel.Page{
		fragPage(1, paraFrag("p1", 0, 10)),
		fragPage(2, paraFrag("p2", 10, 30)),
	}}
	bookmarks := []docmodel.Bookmark{
		{Name: "intro", Pos: 5},
		{Name: "body", Pos: 25},
	}

	got := Build(layout, bookmarks)
	if got["intro"] != 1 {
		t.Errorf("expected intro on page 1, got %d", got["intro"])
	}
	if got["body"] != 2 {
		t.Errorf("expected body on page 2, got %d", got["body"])
	}
}
