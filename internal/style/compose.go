package style

// RunResolveInput bundles the inputs resolveRunProperties needs
// beyond the raw Params (spec.md §4.B).
type RunResolveInput struct {
	InlineRPr              Props
	ResolvedPPr            Props
	IsListNumber           bool
	NumberingDefinedInline bool
	NumberingProps         Props
	IsTOCStyle             bool
	ParagraphStyleRPr      Props
	RunStyleRPr            Props
	DefaultsRPr            Props
}

// ResolveRunProperties builds the rPr cascade chain
// [defaultsChain, paragraphStyleProps, runStyleProps, inlineRpr],
// applies the list-number special casing, combines, applies inline
// overrides, and resolves font size with fallback (spec.md §4.B).
func ResolveRunProperties(in RunResolveInput) Props {
	runStyleProps := in.RunStyleRPr
	if in.IsTOCStyle {
		// "TOC-style paragraphs suppress runStyleProps."
		runStyleProps = Props{}
	}

	inlineSlot := in.InlineRPr

	chain := []Props{in.DefaultsRPr, in.ParagraphStyleRPr, runStyleProps, inlineSlot}
	overrideSource := in.InlineRPr

	if in.IsListNumber {
		listInline := Props{}
		if in.NumberingDefinedInline {
			listInline = in.InlineRPr
		}
		// "strip underline from the list inline source"
		listInline = stripKey(listInline, "underline")
		chain = []Props{in.DefaultsRPr, in.ParagraphStyleRPr, runStyleProps, listInline, in.NumberingProps}
		overrideSource = listInline
	}

	combined := CombineRunProperties(chain)
	combined = ApplyInlineOverrides(combined, overrideSource)

	size := combined["fontSizeHalfPt"]
	resolvedSize := ResolveFontSizeWithFallback(size, in.DefaultsRPr, in.ParagraphStyleRPr)
	combined["fontSizeHalfPt"] = resolvedSize
	return combined
}

func stripKey(p Props, key string) Props {
	if _, ok := p[key]; !ok {
		return p
	}
	out := p.Clone()
	delete(out, key)
	return out
}

// ParagraphResolveInput bundles the inputs resolveParagraphProperties
// needs (spec.md §4.B).
type ParagraphResolveInput struct {
	DefaultsPPr           Props
	TablePPr              Props
	StylePPr              Props
	StylePPrNoBasedOn     Props
	InlinePPr             Props
	InlineNumID           string // "" or "0"/"0" disables
	InlineILvl            int
	NumberingProps        Props // already resolved via GetNumberingProperties for the active numId/ilvl
	NumberingStyleID      string
	OverrideInlineStyleID bool
	InsideTable           bool
	StyleID               string
}

// ParagraphResolveResult is the output of ResolveParagraphProperties:
// the final combined properties plus the (possibly re-pointed)
// effective styleId and numbering, since overrideInlineStyleId can
// adopt the numbering-provided style (spec.md §4.B).
type ParagraphResolveResult struct {
	Props            Props
	EffectiveStyleID string
	DroppedInlineNum bool
}

// inlineNumberingDisabled reports whether an inline numId of "0"/0
// explicitly disables numbering (spec.md §4.B).
func inlineNumberingDisabled(numID string) bool {
	return numID == "0"
}

// ResolveParagraphProperties implements spec.md §4.B's paragraph
// resolution: numbering activation rules, the main property chain,
// the separate indent chain (with its three list/non-list/otherwise
// branches), spacing suppression inside tables, and the
// overrideInlineStyleId adoption rule (P note in spec.md §9: this
// never mutates the caller's inline map, it returns a new value).
func ResolveParagraphProperties(in ParagraphResolveInput) ParagraphResolveResult {
	numberingActive := in.NumberingProps != nil && len(in.NumberingProps) > 0
	if inlineNumberingDisabled(in.InlineNumID) {
		numberingActive = false
	}

	effectiveStyleID := in.StyleID
	droppedInlineNum := false
	numberingProps := in.NumberingProps
	if !numberingActive {
		numberingProps = Props{}
	}

	if numberingActive && in.OverrideInlineStyleID {
		if sid, ok := in.NumberingProps["styleId"]; ok {
			if s, ok := sid.(string); ok && s != "" {
				effectiveStyleID = s
				if s == in.NumberingStyleID {
					numberingProps = Props{}
					droppedInlineNum = true
				}
			}
		}
	}

	mainChain := []Props{in.DefaultsPPr, in.TablePPr, numberingProps, in.StylePPr, in.InlinePPr}
	finalProps := CombineProperties(mainChain)

	isList := numberingActive
	numberingDefinedInline := in.InlineNumID != "" && !inlineNumberingDisabled(in.InlineNumID)

	var indentChain []Props
	switch {
	case isList && numberingDefinedInline:
		indentChain = []Props{in.DefaultsPPr, in.StylePPr, numberingProps, in.InlinePPr}
	case isList && !numberingDefinedInline:
		stylePropsNoBasedOn := in.StylePPrNoBasedOn
		indentChain = []Props{in.DefaultsPPr, numberingProps, stylePropsNoBasedOn, in.InlinePPr}
	default:
		indentChain = []Props{in.DefaultsPPr, numberingProps, in.StylePPr, in.InlinePPr}
	}
	indent := CombineIndentProperties(indentChain)
	if len(indent) > 0 {
		finalProps["indent"] = indent["indent"]
	}

	if in.InsideTable {
		_, inlineHasSpacing := in.InlinePPr["spacing"]
		_, styleHasSpacing := in.StylePPr["spacing"]
		if !inlineHasSpacing && !styleHasSpacing {
			delete(finalProps, "spacing")
		}
	}

	return ParagraphResolveResult{
		Props:            finalProps,
		EffectiveStyleID: effectiveStyleID,
		DroppedInlineNum: droppedInlineNum,
	}
}
