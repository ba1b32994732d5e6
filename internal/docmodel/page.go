package docmodel

// SectionRefs records which header/footer rId applies to this page
// per variant, used by the per-rId lookup path (spec.md §4.D).
type SectionRefs struct {
	HeaderRefs map[string]string // variant -> rId
	FooterRefs map[string]string
}

// Page is one physical page produced by the layout engine.
type Page struct {
	Number      int
	NumberText  string
	Size        PageSize
	Margins     Margins
	Orientation string
	Fragments   []Fragment
	SectionIndex int
	SectionRefs SectionRefs
}

// Layout is the top-level result of a layout pass (spec.md §3).
type Layout struct {
	Pages              []Page
	PageSize           PageSize
	PageGap            float64
	HeaderFooterSummary *HeaderFooterSummary
}

// HeaderFooterSummary is an optional rollup attached to a Layout,
// useful for quick diagnostics without re-walking all pages.
type HeaderFooterSummary struct {
	TotalHeaderRegions int
	TotalFooterRegions int
}
