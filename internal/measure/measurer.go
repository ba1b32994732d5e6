package measure

import (
	"strings"

	"github.com/hholst80/flowdoc/internal/docmodel"
)

// Func is the measureFn contract the layout engine calls per block
// (spec.md §4.C: `measureFn(block, {maxWidth,maxHeight}) -> Measure`).
type Func func(block docmodel.FlowBlock, c docmodel.Constraints) docmodel.Measure

// DefaultMeasurer wraps the package's word-wrapping line packer as a
// Func, suitable as the engine's default measurer when the embedding
// host doesn't supply its own (e.g. a host with real font metrics).
func DefaultMeasurer(block docmodel.FlowBlock, c docmodel.Constraints) docmodel.Measure {
	switch block.Kind {
	case docmodel.BlockParagraph:
		return measureParagraph(block.Paragraph, c)
	case docmodel.BlockTable:
		return measureTable(block.Table, c)
	default:
		return docmodel.Measure{Kind: docmodel.MeasureNone}
	}
}

const defaultLineHeightPt = 14.0 // line height at the 20-half-point (10pt) baseline size

func measureParagraph(p *docmodel.Paragraph, c docmodel.Constraints) docmodel.Measure {
	if p == nil {
		return docmodel.Measure{Kind: docmodel.MeasureParagraph, Paragraph: &docmodel.ParagraphMeasure{}}
	}

	var lines []docmodel.Line
	var curText strings.Builder
	curWidth := 0.0
	curStart := -1
	curFontSize := 20
	pmCursor := 0

	flush := func(end int) {
		if curStart < 0 {
			return
		}
		lines = append(lines, docmodel.Line{
			LineHeight: lineHeightFor(curFontSize),
			PMStart:    curStart,
			PMEnd:      end,
			CharX:      CharXPositions(curText.String(), curFontSize),
		})
		curText.Reset()
		curWidth = 0
		curStart = -1
	}

	for _, run := range p.Runs {
		fontSize := run.Props.FontSizeHalfPt
		if fontSize == 0 {
			fontSize = 20
		}
		curFontSize = fontSize
		words := splitKeepingSeparators(run.Text)
		pos := run.PMStart
		for _, w := range words {
			ww := StringWidth(w, fontSize)
			if curStart < 0 {
				curStart = pos
			}
			if c.MaxWidth > 0 && curWidth+ww > c.MaxWidth && curText.Len() > 0 && strings.TrimSpace(w) != "" {
				flush(pos)
				curStart = pos
			}
			curText.WriteString(w)
			curWidth += ww
			pos += len([]rune(w))
		}
		pmCursor = pos
	}
	flush(pmCursor)

	if len(lines) == 0 {
		lines = append(lines, docmodel.Line{LineHeight: lineHeightFor(curFontSize), PMStart: 0, PMEnd: 0})
	}

	marker := p.Props.Numbering != nil
	return docmodel.Measure{
		Kind: docmodel.MeasureParagraph,
		Paragraph: &docmodel.ParagraphMeasure{
			Lines:     lines,
			HasMarker: marker,
		},
	}
}

func lineHeightFor(fontSizeHalfPt int) float64 {
	scale := float64(fontSizeHalfPt) / 20.0
	if scale <= 0 {
		scale = 1
	}
	return defaultLineHeightPt * scale
}

// splitKeepingSeparators splits text into words while keeping
// trailing whitespace attached to the preceding word, so wrapping
// decisions can measure "word + its following space" as one unit —
// the same greedy word-wrap shape muesli/reflow uses internally.
func splitKeepingSeparators(text string) []string {
	if text == "" {
		return nil
	}
	var out []string
	var cur strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		cur.WriteRune(runes[i])
		if runes[i] == ' ' {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}

const defaultRowHeight = 20.0

func measureTable(tbl *docmodel.Table, c docmodel.Constraints) docmodel.Measure {
	if tbl == nil {
		return docmodel.Measure{Kind: docmodel.MeasureTable, Table: &docmodel.TableMeasure{}}
	}

	colCount := 0
	for _, row := range tbl.Rows {
		logical := 0
		for _, cell := range row.Cells {
			span := cell.ColSpan
			if span < 1 {
				span = 1
			}
			logical += span
		}
		if logical > colCount {
			colCount = logical
		}
	}
	if colCount == 0 {
		colCount = 1
	}

	width := c.MaxWidth
	if width <= 0 {
		width = float64(colCount) * 72
	}
	colWidth := width / float64(colCount)
	boundaries := make([]float64, colCount+1)
	for i := range boundaries {
		boundaries[i] = float64(i) * colWidth
	}

	rows := make([]docmodel.TableRowMeasure, len(tbl.Rows))
	for i := range tbl.Rows {
		rows[i] = docmodel.TableRowMeasure{Height: defaultRowHeight}
	}

	return docmodel.Measure{
		Kind: docmodel.MeasureTable,
		Table: &docmodel.TableMeasure{
			Rows:             rows,
			ColumnBoundaries: boundaries,
		},
	}
}
