package presence

import "testing"

func TestValidColor(t *testing.T) {
	if !ValidColor("#A1B2C3") {
		t.Errorf("expected #A1B2C3 to be valid")
	}
	if ValidColor("red") {
		t.Errorf("expected 'red' to be invalid")
	}
	if ValidColor("#ZZZZZZ") {
		t.Errorf("expected non-hex to be invalid")
	}
}

func TestResolveColorFallsBackDeterministically(t *testing.T) {
	c1 := ResolveColor("client-a", User{Color: "not-a-color"})
	c2 := ResolveColor("client-a", User{})
	if c1 != c2 {
		t.Errorf("expected the same fallback color for the same clientId, got %q and %q", c1, c2)
	}
}

func TestResolveColorPrefersSuppliedValid(t *testing.T) {
	c := ResolveColor("client-a", User{Color: "#112233"})
	if c != "#112233" {
		t.Errorf("expected supplied valid color to win, got %q", c)
	}
}

func TestNormalizeSkipsUnresolvable(t *testing.T) {
	m := NewMirror()
	raw := map[string]AwarenessState{
		"c1": {Cursor: &RawCursor{AnchorRel: "ok", HeadRel: "ok"}},
		"c2": {Cursor: &RawCursor{AnchorRel: "bad", HeadRel: "ok"}},
	}
	toAbs := func(rel any) (int, bool) {
		if rel == "bad" {
			return 0, false
		}
		return 5, true
	}
	out := m.Normalize(raw, toAbs, 100, 1000)
	if len(out) != 1 || out[0].ClientID != "c1" {
		t.Errorf("expected only c1 to resolve, got %+v", out)
	}
}

func TestNormalizePreservesUpdatedAtWhenUnchanged(t *testing.T) {
	m := NewMirror()
	toAbs := func(rel any) (int, bool) { return 5, true }
	raw := map[string]AwarenessState{"c1": {Cursor: &RawCursor{AnchorRel: 5, HeadRel: 5}}}

	out1 := m.Normalize(raw, toAbs, 100, 1000)
	if out1[0].UpdatedAt != 1000 {
		t.Fatalf("expected first updatedAt 1000, got %d", out1[0].UpdatedAt)
	}

	out2 := m.Normalize(raw, toAbs, 100, 2000)
	if out2[0].UpdatedAt != 1000 {
		t.Errorf("expected updatedAt preserved at 1000 for unchanged position, got %d", out2[0].UpdatedAt)
	}
}

func TestNormalizeClampsToDocSize(t *testing.T) {
	m := NewMirror()
	toAbs := func(rel any) (int, bool) { return 1000, true }
	raw := map[string]AwarenessState{"c1": {Cursor: &RawCursor{AnchorRel: 1, HeadRel: 1}}}

	out := m.Normalize(raw, toAbs, 50, 0)
	if out[0].Anchor != 50 || out[0].Head != 50 {
		t.Errorf("expected positions clamped to docSize 50, got %+v", out[0])
	}
}

func TestVisibleCapsAndSortsByUpdatedAtDesc(t *testing.T) {
	m := NewMirror()
	m.VisibilityCap = 2
	toAbs := func(rel any) (int, bool) { return 0, true }
	raw := map[string]AwarenessState{
		"c1": {Cursor: &RawCursor{AnchorRel: 1, HeadRel: 1}},
		"c2": {Cursor: &RawCursor{AnchorRel: 2, HeadRel: 2}},
		"c3": {Cursor: &RawCursor{AnchorRel: 3, HeadRel: 3}},
	}
	// normalize each at a distinct time so ordering is deterministic.
	m.Normalize(map[string]AwarenessState{"c1": raw["c1"]}, toAbs, 10, 1000)
	m.states["c2"] = RemoteCursorState{ClientID: "c2", UpdatedAt: 3000}
	m.states["c3"] = RemoteCursorState{ClientID: "c3", UpdatedAt: 2000}

	out := m.Visible(3000)
	if len(out) != 2 {
		t.Fatalf("expected cap of 2, got %d", len(out))
	}
	if out[0].ClientID != "c2" || out[1].ClientID != "c3" {
		t.Errorf("expected c2 then c3 by updatedAt desc, got %+v", out)
	}
}

func TestPruneStaleRemovesOldClients(t *testing.T) {
	m := NewMirror()
	m.StaleTimeoutMs = 1000
	m.states["old"] = RemoteCursorState{ClientID: "old", UpdatedAt: 0}
	m.states["fresh"] = RemoteCursorState{ClientID: "fresh", UpdatedAt: 900}

	out := m.Visible(1000)
	if len(out) != 1 || out[0].ClientID != "fresh" {
		t.Errorf("expected only 'fresh' to survive pruning, got %+v", out)
	}
}

func TestShouldRenderNowImmediateAfterFrameWindow(t *testing.T) {
	m := NewMirror()
	render, _ := m.ShouldRenderNow(0)
	if !render {
		t.Fatalf("expected immediate render on first call")
	}
	render2, delay := m.ShouldRenderNow(10)
	if render2 {
		t.Errorf("expected throttled (no immediate render) at +10ms")
	}
	if delay != 6 {
		t.Errorf("expected a 6ms trailing delay, got %d", delay)
	}
}

func TestShouldRenderNowAfterFullFrame(t *testing.T) {
	m := NewMirror()
	m.ShouldRenderNow(0)
	render, _ := m.ShouldRenderNow(20)
	if !render {
		t.Errorf("expected render to fire once 16ms have elapsed")
	}
}
