// Package layout implements the incremental layout engine (spec.md
// §4.C): packing flow blocks into pages and producing per-block
// measures, reusing prior measures for unchanged blocks.
package layout

import (
	"github.com/hholst80/flowdoc/internal/docmodel"
	"github.com/hholst80/flowdoc/internal/measure"
)

// Margins and page size are expressed directly via docmodel types so
// Options can be built straight from a SectionBreak.
type Options struct {
	PageSize docmodel.PageSize
	Margins  docmodel.Margins
	Columns  int
	Section  SectionMetadata
}

// SectionMetadata carries the per-section facts the layout engine
// needs to stamp onto pages (section index, header/footer ids,
// page-numbering restarts) without re-deriving them from blocks on
// every pass.
type SectionMetadata struct {
	Index            int
	HeaderFooter     docmodel.HeaderFooterIdentifier
	PageNumberFormat string
	PageNumberStart  *int
}

// Result is what incrementalLayout returns (spec.md §4.C).
type Result struct {
	Layout   docmodel.Layout
	Measures map[string]docmodel.Measure
}

// contentHash is a cheap structural fingerprint used to decide
// whether a block's previously computed measure can be reused. Two
// blocks with the same ID and the same hash are considered
// unchanged; the engine never compares deep equality of the full
// block to keep this cheap on large documents.
func contentHash(b docmodel.FlowBlock) string {
	switch b.Kind {
	case docmodel.BlockParagraph:
		if b.Paragraph == nil {
			return "p:nil"
		}
		h := "p:"
		for _, r := range b.Paragraph.Runs {
			h += r.Text + "|"
		}
		return h
	case docmodel.BlockTable:
		if b.Table == nil {
			return "t:nil"
		}
		h := "t:"
		for _, row := range b.Table.Rows {
			h += "r"
			for _, c := range row.Cells {
				h += "c"
				for _, blk := range c.Blocks {
					h += contentHash(blk)
				}
			}
		}
		return h
	case docmodel.BlockImage:
		if b.Image == nil {
			return "i:nil"
		}
		return "i"
	case docmodel.BlockSectionBreak:
		return "s"
	default:
		return "?"
	}
}

// IncrementalLayout is the engine's single entry point (spec.md
// §4.C). It diffs prevBlocks against newBlocks by (id, contentHash):
// blocks whose id+hash are unchanged from the previous pass reuse
// their cached measure instead of invoking measureFn.
func IncrementalLayout(prevBlocks []docmodel.FlowBlock, prevMeasures map[string]docmodel.Measure, newBlocks []docmodel.FlowBlock, opts Options, measureFn measure.Func) Result {
	prevHash := make(map[string]string, len(prevBlocks))
	for _, b := range prevBlocks {
		prevHash[b.ID] = contentHash(b)
	}

	measures := make(map[string]docmodel.Measure, len(newBlocks))
	constraints := contentConstraints(opts)

	for _, b := range newBlocks {
		h := contentHash(b)
		if prevHash[b.ID] == h {
			if m, ok := prevMeasures[b.ID]; ok {
				measures[b.ID] = m
				continue
			}
		}
		measures[b.ID] = measureFn(b, constraints)
	}

	pages := pack(newBlocks, measures, opts)

	return Result{
		Layout: docmodel.Layout{
			Pages:    pages,
			PageSize: opts.PageSize,
			PageGap:  0,
		},
		Measures: measures,
	}
}

func contentConstraints(opts Options) docmodel.Constraints {
	width := opts.PageSize.Width - opts.Margins.Left - opts.Margins.Right
	height := opts.PageSize.Height - opts.Margins.Top - opts.Margins.Bottom
	return docmodel.Constraints{MaxWidth: width, MaxHeight: height}
}
