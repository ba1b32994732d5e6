// Package docmodel defines the structural data model the presentation
// layer operates on: flow blocks, runs, tables, measures, fragments,
// pages, and layouts. It owns no behavior beyond simple invariants —
// the layout engine, style resolver, and geometry packages consume
// these types but live elsewhere.
package docmodel

// BlockKind discriminates the FlowBlock sum type (spec.md §3).
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockTable
	BlockSectionBreak
	BlockImage
	BlockDrawing
)

func (k BlockKind) String() string {
	switch k {
	case BlockParagraph:
		return "paragraph"
	case BlockTable:
		return "table"
	case BlockSectionBreak:
		return "sectionBreak"
	case BlockImage:
		return "image"
	case BlockDrawing:
		return "drawing"
	default:
		return "unknown"
	}
}

// Indent mirrors the OOXML-shaped indent sub-record: left/right/
// firstLine/hanging, each independently overridable by the cascade's
// indent-composes-by-field special handler (spec.md §4.A).
type Indent struct {
	Left      *float64
	Right     *float64
	FirstLine *float64
	Hanging   *float64
}

// Spacing is the paragraph spacing-before/after/line sub-record.
type Spacing struct {
	Before  *float64
	After   *float64
	Line    *float64
	LineRule string
}

// NumberingProperties identifies the numbering (list) definition a
// paragraph participates in.
type NumberingProperties struct {
	NumID   string
	ILvl    int
	StyleID string
}

// ParagraphProperties is the effective (post-cascade) or raw
// (pre-cascade) property set of a paragraph.
type ParagraphProperties struct {
	Alignment           string
	Indent              Indent
	Spacing             Spacing
	StyleID             string
	Numbering           *NumberingProperties
	InsideTable         bool
	TableStyleID        string
}

// RunProperties is the effective or raw property set of a run.
type RunProperties struct {
	FontFamily    string
	FontSizeHalfPt int
	Bold          bool
	Italic        bool
	Underline     bool
	Strike        bool
	Color         string
	TrackedChangeID string
}

// Run is a contiguous span of text sharing one RunProperties value.
type Run struct {
	Text     string
	Props    RunProperties
	PMStart  int
	PMEnd    int
	HasRange bool
}

// Paragraph is a FlowBlock variant: an ordered sequence of Runs with
// paragraph-level attributes.
type Paragraph struct {
	Props ParagraphProperties
	Runs  []Run
}

// TableCell is one cell of a TableRow; Blocks allows nested flow
// content (paragraphs, nested tables).
type TableCell struct {
	Blocks  []FlowBlock
	ColSpan int
	RowSpan int
}

// TableRow is an ordered sequence of cells.
type TableRow struct {
	Cells []TableCell
}

// Table is a FlowBlock variant.
type Table struct {
	Rows    []TableRow
	StyleID string
}

// Margins captures page or section margins, including header/footer
// distances (spec.md §3, SectionBreak).
type Margins struct {
	Top             float64
	Right           float64
	Bottom          float64
	Left            float64
	HeaderDistance  float64
	FooterDistance  float64
}

// PageSize is a page's physical dimensions.
type PageSize struct {
	Width  float64
	Height float64
}

// HeaderFooterIDs maps a variant (default/first/even/odd) to a
// header or footer relationship id (rId).
type HeaderFooterIDs struct {
	Default string
	First   string
	Even    string
	Odd     string
}

// HeaderFooterIdentifier is the per-section descriptor of which
// header/footer variants are active (spec.md §3).
type HeaderFooterIdentifier struct {
	TitlePg          bool
	AlternateHeaders bool
	HeaderIDs        HeaderFooterIDs
	FooterIDs        HeaderFooterIDs
}

// SectionBreak is a FlowBlock variant describing a new section's page
// geometry, columns, and header/footer wiring.
type SectionBreak struct {
	PageSize         PageSize
	Margins          Margins
	Columns          int
	IsFirstSection   bool
	HeaderFooter     HeaderFooterIdentifier
	PageNumberFormat string
	PageNumberStart  *int
}

// Image is a FlowBlock variant placed by its bounding box only; pixel
// rendering is the painter's concern (spec.md §1 Non-goals).
type Image struct {
	Width   float64
	Height  float64
	AltText string
}

// Drawing is a FlowBlock variant for vector/shape content, likewise
// placed by bounding box.
type Drawing struct {
	Width  float64
	Height float64
}

// FlowBlock is the sum type consumed by the layout engine. Exactly
// one of the typed fields is non-nil, selected by Kind. ID must be
// stable across edits that don't structurally change the block — the
// incremental layout engine (spec.md §4.C) diffs on this id.
type FlowBlock struct {
	ID   string
	Kind BlockKind

	Paragraph    *Paragraph
	Table        *Table
	SectionBreak *SectionBreak
	Image        *Image
	Drawing      *Drawing
}

// Bookmark associates a name with a document position (spec.md §4.E).
type Bookmark struct {
	Name string
	Pos  int
}
