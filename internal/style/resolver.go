package style

// PPrTranslator and RPrTranslator are the only two translators the
// resolver requires (spec.md §4.B: "Translators for pPr and rPr are
// the only two required").
var (
	PPrTranslator = Translator{
		XMLName: "pPr",
		Encode: func(p Params) Props { return p.InlinePPr },
	}
	RPrTranslator = Translator{
		XMLName: "rPr",
		Encode: func(p Params) Props { return p.InlineRPr },
	}
)

// normalStyleID is the sentinel name OOXML reserves for the base
// paragraph style.
const normalStyleID = "Normal"

// resolveStyleChain walks basedOn ancestry for styleID and combines
// the resulting property chain, requested style first, so under
// combineProperties' first-writer-wins rule the style closest to
// styleID wins (spec.md §4.B).
//
// Cycle handling (Open Question, spec.md §9, resolved in
// SPEC_FULL.md): the seen-set is seeded with styleID itself before
// the walk starts, so a style that is its own basedOn ancestor is
// caught on first revisit — no single free self-loop traversal.
func resolveStyleChain(params Params, styleID string, translator Translator, followBasedOn bool) Props {
	if styleID == "" || styleID == normalStyleID {
		return Props{}
	}

	var chain []Props
	seen := map[string]bool{styleID: true}

	current := styleID
	for {
		def, ok := params.Style(current)
		if !ok {
			break
		}
		chain = append(chain, propsFor(def, translator))
		if !followBasedOn || def.BasedOn == "" || seen[def.BasedOn] {
			break
		}
		seen[def.BasedOn] = true
		current = def.BasedOn
	}

	// chain runs from styleID out to its root ancestor; first writer wins.
	return combineProperties(chain)
}

func propsFor(def StyleDef, translator Translator) Props {
	if translator.XMLName == "rPr" {
		return def.RPr
	}
	return def.PPr
}

// ResolveStyleChain is the exported entry point (spec.md §4.B, P3).
func ResolveStyleChain(params Params, styleID string, translator Translator, followBasedOn bool) Props {
	return resolveStyleChain(params, styleID, translator, followBasedOn)
}

// GetDefaultProperties navigates docDefaults -> {xmlName}Default ->
// {xmlName}, returning {} on any missing step (spec.md §4.B).
func GetDefaultProperties(params Params, translator Translator) Props {
	if translator.XMLName == "rPr" {
		if params.Defaults.RPr == nil {
			return Props{}
		}
		return params.Defaults.RPr
	}
	if params.Defaults.PPr == nil {
		return Props{}
	}
	return params.Defaults.PPr
}

// StyleProperties is the return shape of GetStyleProperties.
type StyleProperties struct {
	Properties Props
	IsDefault  bool
	BasedOn    string
}

// GetStyleProperties locates a named style and encodes its kind-
// specific properties via translator, returning the zero value when
// the style is absent (spec.md §4.B).
func GetStyleProperties(params Params, styleID string, translator Translator) StyleProperties {
	def, ok := params.Style(styleID)
	if !ok {
		return StyleProperties{Properties: Props{}}
	}
	return StyleProperties{
		Properties: propsFor(def, translator),
		IsDefault:  def.IsDefault,
		BasedOn:    def.BasedOn,
	}
}

// GetNumberingProperties resolves a numId/ilvl pair into an effective
// property map (spec.md §4.B steps 1-6, P6).
//
// tries guards numStyleLink short-circuiting: at most one indirection
// through a linked style is followed.
func GetNumberingProperties(params Params, ilvl int, numID string, translator Translator, tries int) Props {
	if params.Numbering == nil {
		return Props{}
	}
	def, ok := params.Numbering.Definitions[numID]
	if !ok {
		return Props{}
	}

	var overrideProps Props
	for _, ov := range def.Overrides {
		if ov.ILvl != ilvl {
			continue
		}
		if translator.XMLName == "rPr" {
			if ov.RPr != nil {
				overrideProps = ov.RPr
			}
		} else if ov.PPr != nil {
			overrideProps = ov.PPr
		}
		break
	}

	abstract, ok := params.Numbering.Abstracts[def.AbstractID]
	if !ok {
		return Props{}
	}

	if abstract.NumStyleLink != "" && tries < 1 {
		linked := resolveStyleChain(params, abstract.NumStyleLink, translator, true)
		linkedNumID := numIDFromStyleLink(params, abstract.NumStyleLink)
		if linkedNumID != "" && linkedNumID != numID {
			return GetNumberingProperties(params, ilvl, linkedNumID, translator, tries+1)
		}
		return linked
	}

	var abstractProps Props
	var pStyle string
	for _, lvl := range abstract.Levels {
		if numericEqual(lvl.ILvl, ilvl) {
			if translator.XMLName == "rPr" {
				abstractProps = lvl.RPr
			} else {
				abstractProps = lvl.PPr
			}
			pStyle = lvl.PStyle
			break
		}
	}

	// spec.md §4.B step 6: "Reverse [overrideProps, abstractProps] and
	// combine" -- since combineProperties is first-writer-wins, the
	// override must come first in the chain passed to it so its keys
	// win over the abstract level's keys (P6).
	final := []Props{}
	if overrideProps != nil {
		final = append(final, overrideProps)
	}
	if abstractProps != nil {
		final = append(final, abstractProps)
	}
	out := combineProperties(final)
	if pStyle != "" {
		out["styleId"] = pStyle
	}
	return out
}

func numIDFromStyleLink(params Params, linkedStyleID string) string {
	def, ok := params.Style(linkedStyleID)
	if !ok {
		return ""
	}
	if v, ok := def.PPr["numId"]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func numericEqual(a, b int) bool { return a == b }

// ResolveDocxFontFamily resolves an ascii/asciiTheme attribute pair
// against an optional theme, preferring the theme typeface when an
// asciiTheme reference resolves (spec.md §4.B, S4).
func ResolveDocxFontFamily(attrs map[string]string, theme *ThemeFonts, toCSSFontFamily func(name string) string) string {
	ascii := attrs["ascii"]
	if ascii == "" {
		ascii = attrs["w:ascii"]
	}

	asciiTheme := attrs["asciiTheme"]
	if asciiTheme == "" {
		asciiTheme = attrs["w:asciiTheme"]
	}

	name := ascii
	if asciiTheme != "" && theme != nil {
		switch asciiTheme {
		case "minorHAnsi", "minorAscii", "minor":
			if theme.MinorLatin != "" {
				name = theme.MinorLatin
			}
		case "majorHAnsi", "majorAscii", "major":
			if theme.MajorLatin != "" {
				name = theme.MajorLatin
			}
		}
	}

	if name == "" {
		return ""
	}
	if toCSSFontFamily != nil {
		return toCSSFontFamily(name)
	}
	return name
}
