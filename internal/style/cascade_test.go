package style

import "testing"

func TestCombinePropertiesFirstWriterWins(t *testing.T) {
	a := Props{"fontSizeHalfPt": 20, "bold": true, "color": "red"}
	b := Props{"fontSizeHalfPt": 22, "italic": true}
	c := Props{"fontSizeHalfPt": 24, "strike": true}

	got := combineProperties([]Props{a, b, c})

	want := Props{
		"fontSizeHalfPt": 20,
		"bold":            true,
		"color":           "red",
		"italic":          true,
		"strike":          true,
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("key %q: got %v, want %v", k, got[k], v)
		}
	}
}

// P4: combine([a,b,c]) == combine([combine([a,b]), c]) when no
// special handler key is present.
func TestCombinePropertiesAssociative(t *testing.T) {
	a := Props{"x": 1, "y": 2}
	b := Props{"y": 3, "z": 4}
	c := Props{"z": 5, "w": 6}

	left := combineProperties([]Props{a, b, c})
	right := combineProperties([]Props{combineProperties([]Props{a, b}), c})

	for k := range left {
		if left[k] != right[k] {
			t.Errorf("associativity broke at key %q: %v vs %v", k, left[k], right[k])
		}
	}
	if len(left) != len(right) {
		t.Errorf("key set differs: %v vs %v", left, right)
	}
}

func TestCombineIndentComposesByField(t *testing.T) {
	left := 10.0
	firstLine := 5.0
	a := Props{"indent": map[string]any{"left": left}}
	b := Props{"indent": map[string]any{"left": 99.0, "firstLine": firstLine}}

	got := combineProperties([]Props{a, b})
	indent, ok := got["indent"].(map[string]any)
	if !ok {
		t.Fatalf("expected indent map, got %v", got["indent"])
	}
	if indent["left"] != left {
		t.Errorf("left: got %v, want %v (first writer should win per-field)", indent["left"], left)
	}
	if indent["firstLine"] != firstLine {
		t.Errorf("firstLine: got %v, want %v", indent["firstLine"], firstLine)
	}
}

func TestOrderDefaultsAndNormal(t *testing.T) {
	defaults := Props{"a": 1}
	normal := Props{"b": 2}

	order := OrderDefaultsAndNormal(defaults, normal, true)
	if len(order) != 2 || &order[0] == nil {
		t.Fatal("unexpected order length")
	}
	if order[0]["a"] != 1 || order[1]["b"] != 2 {
		t.Errorf("expected [defaults, normal] when Normal is default, got %v", order)
	}

	order = OrderDefaultsAndNormal(defaults, normal, false)
	if order[0]["b"] != 2 || order[1]["a"] != 1 {
		t.Errorf("expected [normal, defaults] when Normal is not default, got %v", order)
	}
}

func TestResolveFontSizeWithFallback(t *testing.T) {
	defaults := Props{"fontSizeHalfPt": 22}
	normal := Props{"fontSizeHalfPt": 24}

	if got := ResolveFontSizeWithFallback(26, defaults, normal); got != 26 {
		t.Errorf("valid size should pass through, got %d", got)
	}
	if got := ResolveFontSizeWithFallback(nil, defaults, normal); got != 22 {
		t.Errorf("invalid size should fall back to defaults, got %d", got)
	}
	if got := ResolveFontSizeWithFallback(nil, Props{}, normal); got != 24 {
		t.Errorf("missing defaults should fall back to normal, got %d", got)
	}
	if got := ResolveFontSizeWithFallback(nil, Props{}, Props{}); got != defaultFontSizeHalfPt {
		t.Errorf("missing everything should fall back to constant default, got %d", got)
	}
}

func TestApplyInlineOverridesDoesNotMutateTarget(t *testing.T) {
	target := Props{"bold": false}
	src := Props{"bold": true, "notAllowed": "ignored"}

	out := ApplyInlineOverrides(target, src)
	if out["bold"] != true {
		t.Errorf("expected inline bold override to win, got %v", out["bold"])
	}
	if _, ok := out["notAllowed"]; ok {
		t.Errorf("expected notAllowed to be filtered by the allow-list")
	}
	if target["bold"] != false {
		t.Errorf("target must not be mutated, got %v", target["bold"])
	}
}
