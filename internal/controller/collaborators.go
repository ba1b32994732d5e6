package controller

import (
	"github.com/hholst80/flowdoc/internal/docmodel"
	"github.com/hholst80/flowdoc/internal/measure"
	"github.com/hholst80/flowdoc/internal/presence"
)

// DocumentState is the minimum contract a document-state collaborator
// must provide (spec.md §6 "Inputs from collaborators").
type DocumentState interface {
	JSON() any
	Selection() (anchor, head int)
}

// AdapterResult is what an Adapter produces from one document
// snapshot (spec.md §6 "toFlowBlocks(docJson, opts) -> {blocks,
// bookmarks}").
type AdapterResult struct {
	Blocks          []docmodel.FlowBlock
	Bookmarks       []docmodel.Bookmark
	HeaderBlocksByRID map[string][]docmodel.FlowBlock
	FooterBlocksByRID map[string][]docmodel.FlowBlock
	Section         docmodel.SectionBreak
}

// AdapterOptions carries the tracked-changes mode/enabled flags the
// adapter honors while converting document JSON to FlowBlocks (spec.md
// §4.L step 2).
type AdapterOptions struct {
	TrackedChangesMode    string
	TrackedChangesEnabled bool
}

// Adapter converts raw document JSON into the FlowBlock model.
type Adapter interface {
	ToFlowBlocks(docJSON any, opts AdapterOptions) (AdapterResult, error)
}

// Painter is the external rendering collaborator (spec.md §6). The
// CORE never renders pixels; it only hands blocks+measures across
// this boundary.
type Painter interface {
	SetProviders(headerProvider, footerProvider DecorationProvider)
	SetData(blocks []docmodel.FlowBlock, measures map[string]docmodel.Measure,
		headerBlocks []docmodel.FlowBlock, headerMeasures map[string]docmodel.Measure,
		footerBlocks []docmodel.FlowBlock, footerMeasures map[string]docmodel.Measure)
	Paint(layout docmodel.Layout, host any) error
}

// DecorationProvider supplies, per physical page, the header/footer
// fragments and geometry to render (GLOSSARY).
type DecorationProvider func(physicalPage int) (docmodel.Layout, bool)

// AwarenessSource is the collaboration-transport collaborator
// (spec.md §4.I).
type AwarenessSource interface {
	GetStates() map[string]presence.AwarenessState
	RelativePositionToAbsolute(rel any) (int, bool)
}

// Measurer lets an embedder override the default runewidth-based
// measurer (spec.md §6 "Measurer measureBlock(...)").
type Measurer = measure.Func
