// Package headerfooter implements the secondary layout pass for
// header/footer content, keyed by section variant and physical page
// bucket (spec.md §4.D).
package headerfooter

import (
	"github.com/hholst80/flowdoc/internal/docmodel"
	"github.com/hholst80/flowdoc/internal/layout"
	"github.com/hholst80/flowdoc/internal/measure"
)

// Variant selects which header/footer instance applies to a physical
// page (spec.md GLOSSARY).
type Variant string

const (
	VariantDefault Variant = "default"
	VariantFirst   Variant = "first"
	VariantEven    Variant = "even"
	VariantOdd     Variant = "odd"
)

// Constraints is the geometry a header/footer region lays out within,
// derived from the first section's page size and margins (spec.md
// §4.D).
type Constraints struct {
	Width       float64
	Height      float64
	PageWidth   float64
	Margins     docmodel.Margins
}

// DeriveConstraints computes {width, height} for header and footer
// regions from a section's page size and margins (spec.md §4.D):
// width = pageWidth - left - right; heights = top-headerDistance and
// bottom-footerDistance.
func DeriveConstraints(pageSize docmodel.PageSize, margins docmodel.Margins) (header, footer Constraints) {
	width := pageSize.Width - margins.Left - margins.Right
	headerHeight := margins.Top - margins.HeaderDistance
	footerHeight := margins.Bottom - margins.FooterDistance
	if headerHeight < 0 {
		headerHeight = 0
	}
	if footerHeight < 0 {
		footerHeight = 0
	}
	base := Constraints{Width: width, PageWidth: pageSize.Width, Margins: margins}
	header = base
	header.Height = headerHeight
	footer = base
	footer.Height = footerHeight
	return header, footer
}

// PageNumberResolver returns the display text and total page count
// for a physical page, honoring section page-number formats and
// restarts (spec.md §4.D).
type PageNumberResolver func(physicalPage int) (displayText string, totalPages int)

// Input bundles the per-rId and per-variant header/footer content a
// Controller assembles before invoking Layout (spec.md §4.D).
type Input struct {
	HeaderBlocksByRID map[string][]docmodel.FlowBlock
	FooterBlocksByRID map[string][]docmodel.FlowBlock
	HeaderConstraints Constraints
	FooterConstraints Constraints
	Resolver          PageNumberResolver
	MeasureFn         measure.Func
}

// RegionResult is one rId's laid-out result: a single layout of its
// blocks within the region constraints, plus its measures. It is not
// tied to a particular page number.
type RegionResult struct {
	Layout   docmodel.Layout
	Measures map[string]docmodel.Measure
}

// Results is the aggregate output of a header/footer Layout pass.
type Results struct {
	HeadersByRID map[string]RegionResult
	FootersByRID map[string]RegionResult
}

// BucketForPage maps a physical page number to its digit-bucket
// representative (spec.md §4.D: "1-9->5, 10-99->50, 100-999->500,
// >=1000->5000"). Layout does not call it.
func BucketForPage(page int) int {
	switch {
	case page < 1:
		return 1
	case page < 10:
		return 5
	case page < 100:
		return 50
	case page < 1000:
		return 500
	default:
		return 5000
	}
}

// Layout runs the secondary layout pass for every rId group in in,
// producing one RegionResult per rId (spec.md §4.D). Each rId is laid
// out once, with a content width of the constraints' Width; every rId
// gets its own independent pass so per-rId caching (spec.md §5) can
// invalidate one id without recomputing the rest. samplePages and
// in.Resolver are not consulted: no per-page layouts are made and
// page-number text is not resolved.
func Layout(in Input, samplePages []int) Results {
	results := Results{
		HeadersByRID: map[string]RegionResult{},
		FootersByRID: map[string]RegionResult{},
	}
	measureFn := in.MeasureFn
	if measureFn == nil {
		measureFn = measure.DefaultMeasurer
	}

	layoutOne := func(blocks []docmodel.FlowBlock, c Constraints) RegionResult {
		opts := layout.Options{
			PageSize: docmodel.PageSize{Width: c.Width, Height: c.Height},
			Margins:  docmodel.Margins{},
		}
		r := layout.IncrementalLayout(nil, nil, blocks, opts, measureFn)
		return RegionResult{Layout: r.Layout, Measures: r.Measures}
	}

	for rID, blocks := range in.HeaderBlocksByRID {
		results.HeadersByRID[rID] = layoutOne(blocks, in.HeaderConstraints)
	}
	for rID, blocks := range in.FooterBlocksByRID {
		results.FootersByRID[rID] = layoutOne(blocks, in.FooterConstraints)
	}
	return results
}
