package measure

import (
	"testing"

	"github.com/hholst80/flowdoc/internal/docmodel"
)

func TestDefaultMeasurerWrapsLongParagraph(t *testing.T) {
	p := &docmodel.Paragraph{
		Runs: []docmodel.Run{
			{Text: "the quick brown fox jumps over the lazy dog ", Props: docmodel.RunProperties{FontSizeHalfPt: 20}, PMStart: 0, PMEnd: 45},
		},
	}
	block := docmodel.FlowBlock{Kind: docmodel.BlockParagraph, Paragraph: p}

	m := DefaultMeasurer(block, docmodel.Constraints{MaxWidth: 100, MaxHeight: 1000})
	if m.Kind != docmodel.MeasureParagraph {
		t.Fatalf("expected paragraph measure")
	}
	if len(m.Paragraph.Lines) < 2 {
		t.Errorf("expected wrapping to produce multiple lines, got %d", len(m.Paragraph.Lines))
	}
	for i, l := range m.Paragraph.Lines {
		if l.PMStart > l.PMEnd {
			t.Errorf("line %d: PMStart %d > PMEnd %d", i, l.PMStart, l.PMEnd)
		}
	}
}

func TestDefaultMeasurerTableColumnBoundaries(t *testing.T) {
	tbl := &docmodel.Table{
		Rows: []docmodel.TableRow{
			{Cells: []docmodel.TableCell{{ColSpan: 1}, {ColSpan: 2}}},
		},
	}
	block := docmodel.FlowBlock{Kind: docmodel.BlockTable, Table: tbl}

	m := DefaultMeasurer(block, docmodel.Constraints{MaxWidth: 300})
	if m.Kind != docmodel.MeasureTable {
		t.Fatalf("expected table measure")
	}
	if len(m.Table.ColumnBoundaries) != 4 { // 3 logical columns + trailing edge
		t.Errorf("expected 4 boundaries for 3 logical columns, got %d", len(m.Table.ColumnBoundaries))
	}
}

func TestCharXPositionsMonotonic(t *testing.T) {
	positions := CharXPositions("hello", 20)
	if len(positions) != 6 {
		t.Fatalf("expected 6 positions (5 runes + trailing), got %d", len(positions))
	}
	for i := 1; i < len(positions); i++ {
		if positions[i] < positions[i-1] {
			t.Errorf("positions must be monotonic, got %v", positions)
		}
	}
}
