package style

// Translator is a capability interface bridging document-XML shape to
// property maps (spec.md §4.B, §9 design note). The resolver never
// inspects XML directly; it only knows a Translator's XMLName (used
// to navigate to the right nested element, e.g. "pPr" or "rPr") and
// calls Encode to turn whatever params carries into a Props map.
type Translator struct {
	XMLName string
	Encode  func(params Params) Props
}

// StyleDef is one named style: its own properties, whether it is the
// kind's "isDefault" style (OOXML w:default="1"), and an optional
// basedOn chain pointer.
type StyleDef struct {
	StyleID  string
	BasedOn  string
	IsDefault bool
	PPr      Props
	RPr      Props
}

// NumberingLevel is one level (ilvl) of an abstract numbering
// definition.
type NumberingLevel struct {
	ILvl    int
	PPr     Props
	RPr     Props
	PStyle  string // w:pStyle child, if any
}

// AbstractNumbering is a numbering abstract: an ordered set of levels,
// plus an optional style-link short-circuit.
type AbstractNumbering struct {
	AbstractID   string
	Levels       []NumberingLevel
	NumStyleLink string // w:numStyleLink target styleId, if any
}

// NumberingOverride is a single w:lvlOverride entry on a concrete
// numbering definition.
type NumberingOverride struct {
	ILvl int
	PPr  Props
	RPr  Props
}

// NumberingDefinition is a concrete numId: it points at an abstract
// and may carry per-level overrides.
type NumberingDefinition struct {
	NumID      string
	AbstractID string
	Overrides  []NumberingOverride
}

// NumberingRegistry is the numbering.xml-shaped input (spec.md §3).
type NumberingRegistry struct {
	Definitions map[string]NumberingDefinition
	Abstracts   map[string]AbstractNumbering
}

// ThemeFonts is the theme1.xml-shaped font scheme.
type ThemeFonts struct {
	MinorLatin string
	MajorLatin string
}

// DocDefaults is the docDefaults-shaped input: pPrDefault/rPrDefault.
type DocDefaults struct {
	PPr Props
	RPr Props
}

// Params is the opaque "docx/numbering" input bundle threaded through
// every resolver operation (spec.md §4.B: `params{docx?, numbering?}`).
// Params is nil-safe: every accessor on Params tolerates a missing
// field and returns the zero value, which is how resolver operations
// fail soft on malformed/absent input.
type Params struct {
	Styles      map[string]StyleDef
	Defaults    DocDefaults
	Numbering   *NumberingRegistry
	Theme       *ThemeFonts
	InlineRPr   Props
	InlinePPr   Props
}

// Style looks up a named style, returning ok=false if absent.
func (p Params) Style(styleID string) (StyleDef, bool) {
	if p.Styles == nil {
		return StyleDef{}, false
	}
	s, ok := p.Styles[styleID]
	return s, ok
}
