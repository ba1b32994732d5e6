package headerfooter

import (
	"testing"

	"github.com/hholst80/flowdoc/internal/docmodel"
)

func TestDeriveConstraintsSubtractsMargins(t *testing.T) {
	header, footer := DeriveConstraints(
		docmodel.PageSize{Width: 612, Height: 792},
		docmodel.Margins{Top: 72, Bottom: 72, Left: 72, Right: 72, HeaderDistance: 36, FooterDistance: 36},
	)
	if header.Width != 468 {
		t.Errorf("expected width 468, got %v", header.Width)
	}
	if header.Height != 36 {
		t.Errorf("expected header height 36, got %v", header.Height)
	}
	if footer.Height != 36 {
		t.Errorf("expected footer height 36, got %v", footer.Height)
	}
}

func TestBucketForPage(t *testing.T) {
	cases := map[int]int{1: 5, 9: 5, 10: 50, 99: 50, 100: 500, 999: 500, 1000: 5000, 5000: 5000}
	for in, want := range cases {
		if got := BucketForPage(in); got != want {
			t.Errorf("BucketForPage(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestSelectVariantTitlePage(t *testing.T) {
	section := SectionPageRange{FirstPhysicalPage: 5, LastPhysicalPage: 10}
	if v := SelectVariant(5, section, true, false); v != VariantFirst {
		t.Errorf("expected first variant on section's own first page, got %v", v)
	}
	if v := SelectVariant(6, section, true, false); v != VariantDefault {
		t.Errorf("expected default variant after the title page, got %v", v)
	}
}

func TestSelectVariantAlternating(t *testing.T) {
	section := SectionPageRange{FirstPhysicalPage: 1}
	if v := SelectVariant(1, section, false, true); v != VariantOdd {
		t.Errorf("expected odd for sp=1, got %v", v)
	}
	if v := SelectVariant(2, section, false, true); v != VariantEven {
		t.Errorf("expected even for sp=2, got %v", v)
	}
}

func TestRIDForVariantFallsBackToDefault(t *testing.T) {
	ids := map[Variant]string{VariantDefault: "rId1"}
	rid, ok := RIDForVariant(ids, VariantEven)
	if !ok || rid != "rId1" {
		t.Errorf("expected fallback to default rId1, got %q ok=%v", rid, ok)
	}
}

func TestRIDForVariantUsesOwnEntryWhenPresent(t *testing.T) {
	ids := map[Variant]string{VariantDefault: "rId1", VariantFirst: "rId2"}
	rid, ok := RIDForVariant(ids, VariantFirst)
	if !ok || rid != "rId2" {
		t.Errorf("expected own entry rId2, got %q ok=%v", rid, ok)
	}
}

func TestLookupPrefersPerRIDOverVariant(t *testing.T) {
	perRID := map[string]RegionResult{"rId1": {Layout: docmodel.Layout{PageGap: 1}}}
	perVariant := map[Variant]RegionResult{VariantDefault: {Layout: docmodel.Layout{PageGap: 2}}}

	r, ok := Lookup(perRID, perVariant, "rId1", VariantDefault)
	if !ok || r.Layout.PageGap != 1 {
		t.Errorf("expected per-rId result to win, got %+v ok=%v", r, ok)
	}
}

func TestLookupFallsBackToVariant(t *testing.T) {
	perRID := map[string]RegionResult{}
	perVariant := map[Variant]RegionResult{VariantDefault: {Layout: docmodel.Layout{PageGap: 2}}}

	r, ok := Lookup(perRID, perVariant, "rIdMissing", VariantDefault)
	if !ok || r.Layout.PageGap != 2 {
		t.Errorf("expected fallback to variant result, got %+v ok=%v", r, ok)
	}
}

func TestLayoutProducesResultPerRID(t *testing.T) {
	in := Input{
		HeaderBlocksByRID: map[string][]docmodel.FlowBlock{
			"rId1": {{ID: "h1", Kind: docmodel.BlockParagraph, Paragraph: &docmodel.Paragraph{
				Runs: []docmodel.Run{{Text: "Header text", Props: docmodel.RunProperties{FontSizeHalfPt: 20}}},
			}}},
		},
		FooterBlocksByRID: map[string][]docmodel.FlowBlock{
			"rId2": {{ID: "f1", Kind: docmodel.BlockParagraph, Paragraph: &docmodel.Paragraph{
				Runs: []docmodel.Run{{Text: "Page X", Props: docmodel.RunProperties{FontSizeHalfPt: 20}}},
			}}},
		},
		HeaderConstraints: Constraints{Width: 468, Height: 36, PageWidth: 612},
		FooterConstraints: Constraints{Width: 468, Height: 36, PageWidth: 612},
	}

	results := Layout(in, []int{5})
	if _, ok := results.HeadersByRID["rId1"]; !ok {
		t.Errorf("expected a result for header rId1")
	}
	if _, ok := results.FootersByRID["rId2"]; !ok {
		t.Errorf("expected a result for footer rId2")
	}
}
