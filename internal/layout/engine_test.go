package layout

import (
	"testing"

	"github.com/hholst80/flowdoc/internal/docmodel"
	"github.com/hholst80/flowdoc/internal/measure"
)

func testOpts() Options {
	return Options{
		PageSize: docmodel.PageSize{Width: 612, Height: 792},
		Margins:  docmodel.Margins{Top: 72, Bottom: 72, Left: 72, Right: 72},
	}
}

func paraBlock(id, text string) docmodel.FlowBlock {
	return docmodel.FlowBlock{
		ID:   id,
		Kind: docmodel.BlockParagraph,
		Paragraph: &docmodel.Paragraph{
			Runs: []docmodel.Run{{Text: text, Props: docmodel.RunProperties{FontSizeHalfPt: 20}, PMStart: 0, PMEnd: len([]rune(text))}},
		},
	}
}

func TestIncrementalLayoutReusesUnchangedMeasures(t *testing.T) {
	calls := 0
	counting := func(b docmodel.FlowBlock, c docmodel.Constraints) docmodel.Measure {
		calls++
		return measure.DefaultMeasurer(b, c)
	}

	blocks := []docmodel.FlowBlock{paraBlock("p1", "hello world"), paraBlock("p2", "second paragraph")}
	r1 := IncrementalLayout(nil, nil, blocks, testOpts(), counting)
	if calls != 2 {
		t.Fatalf("expected 2 measure calls on first pass, got %d", calls)
	}

	// Second pass: p1 unchanged, p2 changed.
	blocks2 := []docmodel.FlowBlock{paraBlock("p1", "hello world"), paraBlock("p2", "second paragraph CHANGED")}
	calls = 0
	r2 := IncrementalLayout(blocks, r1.Measures, blocks2, testOpts(), counting)
	if calls != 1 {
		t.Errorf("expected exactly 1 remeasure for the changed block, got %d", calls)
	}
	if _, ok := r2.Measures["p1"]; !ok {
		t.Errorf("expected p1's measure to be present (reused)")
	}
}

func TestPackFragmentInvariants(t *testing.T) {
	var blocks []docmodel.FlowBlock
	longText := ""
	for i := 0; i < 1000; i++ {
		longText += "word "
	}
	blocks = append(blocks, paraBlock("p1", longText))

	r := IncrementalLayout(nil, nil, blocks, testOpts(), measure.DefaultMeasurer)
	if len(r.Layout.Pages) < 2 {
		t.Fatalf("expected content to overflow onto multiple pages, got %d pages", len(r.Layout.Pages))
	}

	m := r.Measures["p1"]
	for _, page := range r.Layout.Pages {
		for _, f := range page.Fragments {
			if f.Kind != docmodel.FragmentPara {
				continue
			}
			if f.Para.FromLine < 0 || f.Para.FromLine > f.Para.ToLine || f.Para.ToLine > len(m.Paragraph.Lines) {
				t.Errorf("invariant violated: 0 <= %d <= %d <= %d", f.Para.FromLine, f.Para.ToLine, len(m.Paragraph.Lines))
			}
		}
	}

	seenBlockFrom := -1
	for _, page := range r.Layout.Pages {
		var lastY float64 = -1
		for _, f := range page.Fragments {
			if f.Y() < lastY {
				t.Errorf("fragments on a page must be sorted by y")
			}
			lastY = f.Y()
			if f.Kind == docmodel.FragmentPara && f.Para.BlockID == "p1" {
				if seenBlockFrom >= 0 && f.Para.FromLine > 0 {
					if !f.Para.ContinuesFromPrev {
						t.Errorf("expected continuesFromPrev true for a later fragment of the same block")
					}
				}
				seenBlockFrom = f.Para.FromLine
			}
		}
	}
}

func TestPackTableRowInvariants(t *testing.T) {
	var rows []docmodel.TableRow
	for i := 0; i < 3; i++ {
		rows = append(rows, docmodel.TableRow{Cells: []docmodel.TableCell{{ColSpan: 1}, {ColSpan: 1}}})
	}
	block := docmodel.FlowBlock{ID: "t1", Kind: docmodel.BlockTable, Table: &docmodel.Table{Rows: rows}}

	r := IncrementalLayout(nil, nil, []docmodel.FlowBlock{block}, testOpts(), measure.DefaultMeasurer)
	m := r.Measures["t1"]
	for _, page := range r.Layout.Pages {
		for _, f := range page.Fragments {
			if f.Kind != docmodel.FragmentTable {
				continue
			}
			if f.Table.FromRow < 0 || f.Table.FromRow > f.Table.ToRow || f.Table.ToRow > len(m.Table.Rows) {
				t.Errorf("invariant violated: 0 <= %d <= %d <= %d", f.Table.FromRow, f.Table.ToRow, len(m.Table.Rows))
			}
		}
	}
}

func TestPackSectionBreakStartsNewPage(t *testing.T) {
	blocks := []docmodel.FlowBlock{
		paraBlock("p1", "first section content"),
		{
			ID:   "sb1",
			Kind: docmodel.BlockSectionBreak,
			SectionBreak: &docmodel.SectionBreak{
				PageSize: docmodel.PageSize{Width: 612, Height: 792},
				Margins:  docmodel.Margins{Top: 36, Bottom: 36, Left: 36, Right: 36},
			},
		},
		paraBlock("p2", "second section content"),
	}
	r := IncrementalLayout(nil, nil, blocks, testOpts(), measure.DefaultMeasurer)
	if len(r.Layout.Pages) != 2 {
		t.Fatalf("expected section break to force a new page, got %d pages", len(r.Layout.Pages))
	}
	if r.Layout.Pages[1].SectionIndex <= r.Layout.Pages[0].SectionIndex {
		t.Errorf("expected section index to increase after the break")
	}
}
