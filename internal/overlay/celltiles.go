package overlay

import "github.com/hholst80/flowdoc/internal/docmodel"

// CellTile is one cell's highlight rectangle in page-local coordinates.
type CellTile struct {
	Row, Col      int
	X, Y          float64
	Width, Height float64
	PageIndex     int
}

// CellSelectionTiles implements P7: for a CellSelection spanning
// [fromRow,toRow] x [fromCol,toCol], render one tile per selected
// cell using columnBoundaries for widths and the table fragment's own
// row span for heights, falling back to fragment.height/(toRow-fromRow)
// when row-level measure data is absent.
func CellSelectionTiles(frag docmodel.TableFragment, fromRow, toRow, fromCol, toCol int, rowHeights []float64) []CellTile {
	if toRow < fromRow || toCol < fromCol {
		return nil
	}
	bounds := frag.Metadata.ColumnBoundaries
	var tiles []CellTile

	rowsInFragment := frag.ToRow - frag.FromRow
	fallbackHeight := 0.0
	if rowsInFragment > 0 {
		fallbackHeight = frag.Height / float64(rowsInFragment)
	}

	y := frag.Y
	for r := frag.FromRow; r < frag.ToRow; r++ {
		h := fallbackHeight
		if r-frag.FromRow < len(rowHeights) {
			h = rowHeights[r-frag.FromRow]
		}
		if r >= fromRow && r <= toRow {
			for c := fromCol; c <= toCol; c++ {
				if c+1 >= len(bounds) {
					continue
				}
				x := frag.X + bounds[c]
				width := bounds[c+1] - bounds[c]
				tiles = append(tiles, CellTile{Row: r, Col: c, X: x, Y: y, Width: width, Height: h, PageIndex: 0})
			}
		}
		y += h
	}
	return tiles
}
