// Package style implements the cascade resolver (spec.md §4.A-§4.B):
// composing document defaults, named styles, numbering definitions,
// inline overrides, and theme fonts into effective run/paragraph
// properties. Every exported function here fails soft — malformed or
// missing input never panics or returns an error, it returns a zero
// value the caller can keep merging.
package style

// Props is a plain property-map record, matching the "plain
// dictionaries with first-writer-wins merges" design note (spec.md
// §9). Keys are populated lazily: a nil pointer/empty string means
// "not set by this map", not "set to the zero value".
type Props map[string]any

// Clone returns a shallow copy of p so callers can mutate the result
// of a cascade without aliasing the inputs.
func (p Props) Clone() Props {
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// specialHandler merges a single key across a chain when the default
// first-writer-wins rule doesn't apply (indent composes per field;
// font size has a validity+fallback rule applied later by the
// resolver, not here).
type specialHandler func(chain []Props, out Props)

// indentKey is the conventional key combineIndentProperties composes.
const indentKey = "indent"

// combineIndent implements "indent composes by field": each of
// left/right/firstLine/hanging is taken independently from the first
// map in the chain that sets it, rather than the whole indent record
// winning or losing as a unit.
func combineIndent(chain []Props, out Props) {
	type indentFields struct {
		left, right, firstLine, hanging any
	}
	var fields indentFields
	for _, props := range chain {
		raw, ok := props[indentKey]
		if !ok || raw == nil {
			continue
		}
		m, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if fields.left == nil {
			if v, ok := m["left"]; ok {
				fields.left = v
			}
		}
		if fields.right == nil {
			if v, ok := m["right"]; ok {
				fields.right = v
			}
		}
		if fields.firstLine == nil {
			if v, ok := m["firstLine"]; ok {
				fields.firstLine = v
			}
		}
		if fields.hanging == nil {
			if v, ok := m["hanging"]; ok {
				fields.hanging = v
			}
		}
	}
	if fields.left == nil && fields.right == nil && fields.firstLine == nil && fields.hanging == nil {
		return
	}
	merged := map[string]any{}
	if fields.left != nil {
		merged["left"] = fields.left
	}
	if fields.right != nil {
		merged["right"] = fields.right
	}
	if fields.firstLine != nil {
		merged["firstLine"] = fields.firstLine
	}
	if fields.hanging != nil {
		merged["hanging"] = fields.hanging
	}
	out[indentKey] = merged
}

// specialHandlers is the fixed set of keys combineProperties treats
// specially instead of plain first-writer-wins.
var specialHandlers = map[string]specialHandler{
	indentKey: combineIndent,
}

// combineProperties performs a left-to-right first-writer-wins merge
// of a chain of property maps (spec.md §4.A). The first map in the
// chain that sets a key wins, except for keys in specialHandlers,
// which get their own composition rule.
//
// combineProperties is associative when no special handler is
// engaged for any key present in the chain (P4): combine([a,b,c]) ==
// combine([combine([a,b]), c]).
func combineProperties(chain []Props) Props {
	out := make(Props)
	seen := make(map[string]bool)
	for _, props := range chain {
		for k, v := range props {
			if _, special := specialHandlers[k]; special {
				continue
			}
			if seen[k] {
				continue
			}
			out[k] = v
			seen[k] = true
		}
	}
	for key, handler := range specialHandlers {
		handlerApplies := false
		for _, props := range chain {
			if _, ok := props[key]; ok {
				handlerApplies = true
				break
			}
		}
		if handlerApplies {
			handler(chain, out)
		}
	}
	return out
}

// CombineProperties is the exported entry point for a generic
// property chain (used by callers outside this package, e.g. the
// numbering resolver's lvlOverride/abstract composition).
func CombineProperties(chain []Props) Props {
	return combineProperties(chain)
}

// inlineOverrideAllowList is the set of run-level keys
// ApplyInlineOverrides copies from an inline source. The combiners do
// not consult it: anything passed in a chain is merged generically by
// combineProperties.
var inlineOverrideAllowList = map[string]bool{
	"fontFamily": true,
	"fontSizeHalfPt": true,
	"bold": true,
	"italic": true,
	"underline": true,
	"strike": true,
	"color": true,
	"trackedChangeID": true,
}

// CombineRunProperties is the rPr-specialized combiner (spec.md
// §4.A). Run properties have no special per-field handlers (unlike
// indent), so this currently delegates to combineProperties; it is
// kept as its own named operation because the resolver's chain-
// building logic (resolveRunProperties) must call it by name, and a
// future rPr-specific special handler has a home to land in without
// disturbing combineIndentProperties's paragraph-only contract.
func CombineRunProperties(chain []Props) Props {
	return combineProperties(chain)
}

// CombineIndentProperties composes only the indent sub-record across
// a chain, ignoring all other keys. Used by resolveParagraphProperties
// to build the indent chain independently of the main property chain
// (spec.md §4.B).
func CombineIndentProperties(chain []Props) Props {
	out := make(Props)
	combineIndent(chain, out)
	return out
}

// ApplyInlineOverrides copies the fixed allow-list of inline
// properties from src onto a clone of target, overriding whatever the
// style cascade produced (spec.md §4.A). target is never mutated.
func ApplyInlineOverrides(target, src Props) Props {
	out := target.Clone()
	for k, v := range src {
		if !inlineOverrideAllowList[k] {
			continue
		}
		out[k] = v
	}
	return out
}

// OrderDefaultsAndNormal returns [defaults, normalProps] when Normal
// is the document default style, otherwise [normalProps, defaults].
// OOXML's w:default="1" on "Normal" inverts the usual precedence of
// docDefaults vs. the Normal style (spec.md §4.A, P5).
func OrderDefaultsAndNormal(defaults, normalProps Props, isNormalDefault bool) []Props {
	if isNormalDefault {
		return []Props{defaults, normalProps}
	}
	return []Props{normalProps, defaults}
}

// validFontSizesHalfPt bounds what resolveFontSizeWithFallback will
// accept as "valid": OOXML font sizes are expressed in half-points,
// and values outside this range are almost certainly corrupt input
// rather than an intentional size.
const (
	minValidFontSizeHalfPt = 2   // 1pt
	maxValidFontSizeHalfPt = 3200 // 1600pt
	defaultFontSizeHalfPt  = 20  // 10pt, OOXML's documented default
)

func isValidFontSize(v any) (int, bool) {
	n, ok := asInt(v)
	if !ok {
		return 0, false
	}
	if n < minValidFontSizeHalfPt || n > maxValidFontSizeHalfPt {
		return 0, false
	}
	return n, true
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

// ResolveFontSizeWithFallback returns size if it's a valid font size;
// otherwise the first valid font size found in defaults then normal;
// otherwise defaultFontSizeHalfPt (spec.md §4.A).
func ResolveFontSizeWithFallback(size any, defaults, normal Props) int {
	if n, ok := isValidFontSize(size); ok {
		return n
	}
	if n, ok := isValidFontSize(defaults["fontSizeHalfPt"]); ok {
		return n
	}
	if n, ok := isValidFontSize(normal["fontSizeHalfPt"]); ok {
		return n
	}
	return defaultFontSizeHalfPt
}
