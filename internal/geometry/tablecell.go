package geometry

import "github.com/hholst80/flowdoc/internal/docmodel"

// TableHit identifies a cell by its containing block and logical row/
// column index (spec.md §4.F).
type TableHit struct {
	BlockID     string
	CellRow     int
	CellCol     int
}

// ResolveTableCellPosition walks tbl's rows to CellRow, tracks a
// running logical column via summed colspans, and returns the
// document position at the start of the cell whose logical span
// contains CellCol (spec.md §4.F).
func ResolveTableCellPosition(tbl *docmodel.Table, hit TableHit) (int, bool) {
	if tbl == nil || hit.CellRow < 0 || hit.CellRow >= len(tbl.Rows) {
		return 0, false
	}
	row := tbl.Rows[hit.CellRow]
	col := 0
	for _, cell := range row.Cells {
		span := cell.ColSpan
		if span < 1 {
			span = 1
		}
		if hit.CellCol >= col && hit.CellCol < col+span {
			return firstPositionInCell(cell), true
		}
		col += span
	}
	return 0, false
}

// firstPositionInCell returns the earliest PMStart found among the
// cell's contained blocks, recursing into nested tables.
func firstPositionInCell(cell docmodel.TableCell) int {
	best := -1
	consider := func(p int, ok bool) {
		if ok && (best == -1 || p < best) {
			best = p
		}
	}
	for _, b := range cell.Blocks {
		switch b.Kind {
		case docmodel.BlockParagraph:
			if b.Paragraph != nil {
				if tb, ok := NearestTextBearingBlock(b.Paragraph); ok {
					consider(tb.StartPos, true)
				}
			}
		case docmodel.BlockTable:
			if b.Table != nil {
				for _, r := range b.Table.Rows {
					for _, c := range r.Cells {
						consider(firstPositionInCell(c), true)
					}
				}
			}
		}
	}
	if best == -1 {
		return 0
	}
	return best
}
