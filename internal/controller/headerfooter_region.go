package controller

import (
	"github.com/hholst80/flowdoc/internal/docmodel"
	"github.com/hholst80/flowdoc/internal/headerfooter"
)

// resolveDefaultRegion picks the default-variant rId's blocks and
// measures out of a per-rId header/footer pass, for the painter's
// baseline SetData call (spec.md §4.D lookup rule 1, default
// variant).
func resolveDefaultRegion(blocksByRID map[string][]docmodel.FlowBlock, resultsByRID map[string]headerfooter.RegionResult, ids docmodel.HeaderFooterIDs) ([]docmodel.FlowBlock, map[string]docmodel.Measure) {
	rid, ok := headerfooter.RIDForVariant(ridMapFromIDs(ids), headerfooter.VariantDefault)
	if !ok {
		return nil, nil
	}
	rr, ok := resultsByRID[rid]
	if !ok {
		return blocksByRID[rid], nil
	}
	return blocksByRID[rid], rr.Measures
}

func ridMapFromIDs(ids docmodel.HeaderFooterIDs) map[headerfooter.Variant]string {
	return map[headerfooter.Variant]string{
		headerfooter.VariantDefault: ids.Default,
		headerfooter.VariantFirst:   ids.First,
		headerfooter.VariantEven:    ids.Even,
		headerfooter.VariantOdd:     ids.Odd,
	}
}

func ridMapFromRefs(refs map[string]string) map[headerfooter.Variant]string {
	out := make(map[headerfooter.Variant]string, len(refs))
	for k, v := range refs {
		out[headerfooter.Variant(k)] = v
	}
	return out
}

// sectionPageRange scans the current layout for the physical page
// range occupied by sectionIdx, the denominator SelectVariant needs
// for `sp = P - firstPhysicalPageOf(S) + 1` (spec.md §4.D).
func (c *Controller) sectionPageRange(sectionIdx int) headerfooter.SectionPageRange {
	rng := headerfooter.SectionPageRange{FirstPhysicalPage: 1, LastPhysicalPage: len(c.layoutResult.Pages)}
	first, last := -1, -1
	for i, p := range c.layoutResult.Pages {
		if p.SectionIndex != sectionIdx {
			continue
		}
		if first == -1 {
			first = i + 1
		}
		last = i + 1
	}
	if first != -1 {
		rng.FirstPhysicalPage = first
		rng.LastPhysicalPage = last
	}
	return rng
}

// regionLayoutForPage implements a controller.DecorationProvider: it
// resolves physicalPage's variant (§4.D variant selection rules),
// looks up the rId the page itself recorded for that variant, then
// consults the per-rId result cache via headerfooter.Lookup (§4.D
// lookup rule 1). No variant-keyed cache is passed, so a page whose
// rId has no per-rId result gets no region.
func (c *Controller) regionLayoutForPage(physicalPage int, header bool) (docmodel.Layout, bool) {
	idx := physicalPage - 1
	if idx < 0 || idx >= len(c.layoutResult.Pages) {
		return docmodel.Layout{}, false
	}
	page := c.layoutResult.Pages[idx]
	rng := c.sectionPageRange(page.SectionIndex)
	hf := c.sectionOpts.Section.HeaderFooter
	variant := headerfooter.SelectVariant(physicalPage, rng, hf.TitlePg, hf.AlternateHeaders)

	var refs map[string]string
	var byRID map[string]headerfooter.RegionResult
	if header {
		refs = page.SectionRefs.HeaderRefs
		byRID = c.hfResults.HeadersByRID
	} else {
		refs = page.SectionRefs.FooterRefs
		byRID = c.hfResults.FootersByRID
	}

	rid, _ := headerfooter.RIDForVariant(ridMapFromRefs(refs), variant)
	rr, ok := headerfooter.Lookup(byRID, nil, rid, variant)
	if !ok {
		return docmodel.Layout{}, false
	}
	return rr.Layout, true
}

func (c *Controller) headerProvider(physicalPage int) (docmodel.Layout, bool) {
	return c.regionLayoutForPage(physicalPage, true)
}

func (c *Controller) footerProvider(physicalPage int) (docmodel.Layout, bool) {
	return c.regionLayoutForPage(physicalPage, false)
}
