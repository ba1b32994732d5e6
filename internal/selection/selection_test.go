package selection

import "testing"

func TestP9MultiClickWithinThresholdUsesFirstClickPosition(t *testing.T) {
	m := New()
	m.PointerDown(10, 100, 100, 1000, nil)
	if m.firstClickPos != 10 {
		t.Fatalf("setup: expected first click pos 10")
	}
	// second click within 400ms and 5px, but drifted to a different pos.
	m.PointerDown(12, 102, 101, 1300, nil)
	if m.clickDepth != 2 {
		t.Errorf("expected depth 2, got %d", m.clickDepth)
	}
	if m.firstClickPos != 10 {
		t.Errorf("expected selection anchored at the FIRST click's position 10, got %d", m.firstClickPos)
	}
}

func TestMultiClickOutsideWindowResetsDepth(t *testing.T) {
	m := New()
	m.PointerDown(10, 100, 100, 1000, nil)
	m.PointerDown(10, 100, 100, 2000, nil) // 1000ms later, outside 400ms window
	if m.clickDepth != 1 {
		t.Errorf("expected depth reset to 1, got %d", m.clickDepth)
	}
}

func TestMultiClickOutsidePixelThresholdResetsDepth(t *testing.T) {
	m := New()
	m.PointerDown(10, 100, 100, 1000, nil)
	m.PointerDown(10, 200, 100, 1100, nil) // far away
	if m.clickDepth != 1 {
		t.Errorf("expected depth reset to 1 due to distance, got %d", m.clickDepth)
	}
}

func TestTripleClickSelectsParagraphMode(t *testing.T) {
	m := New()
	m.PointerDown(10, 100, 100, 1000, nil)
	m.PointerDown(10, 100, 100, 1100, nil)
	m.PointerDown(10, 100, 100, 1200, nil)
	if m.extensionMode != ExtendParagraph {
		t.Errorf("expected paragraph extension mode at depth 3")
	}
}

func TestPointerDownOutsideCellClearsCellAnchor(t *testing.T) {
	m := New()
	m.PointerDown(5, 0, 0, 0, &CellAnchor{BlockID: "t1", Row: 0, Col: 0})
	if m.State != StateCellAnchorPending {
		t.Fatalf("expected cellAnchor(pending)")
	}
	m.PointerDown(5, 0, 0, 500, nil)
	if m.cellAnchor != nil {
		t.Errorf("expected cell anchor cleared on pointerdown outside any cell")
	}
}

func TestPointerMoveCrossingCellEntersActiveState(t *testing.T) {
	m := New()
	m.PointerDown(5, 0, 0, 0, &CellAnchor{BlockID: "t1", Row: 0, Col: 0})
	m.PointerMove(5, &CellAnchor{BlockID: "t1", Row: 0, Col: 1}, nil)
	if m.State != StateCellAnchorActive {
		t.Errorf("expected cellAnchor(active) after crossing into a different cell")
	}
	sel, ok := m.CellSelection()
	if !ok || sel.HeadCol != 1 {
		t.Errorf("expected a cell selection spanning to col 1, got %+v ok=%v", sel, ok)
	}
}

func TestPointerMoveLeavingTableKeepsLastCellSelection(t *testing.T) {
	m := New()
	m.PointerDown(5, 0, 0, 0, &CellAnchor{BlockID: "t1", Row: 0, Col: 0})
	m.PointerMove(5, &CellAnchor{BlockID: "t1", Row: 0, Col: 1}, nil)
	m.PointerMove(5, nil, func(int, ExtensionMode) (int, int) { return 0, 0 })
	sel, ok := m.CellSelection()
	if !ok || sel.HeadCol != 1 {
		t.Errorf("expected the cell selection to persist after leaving the table, got %+v ok=%v", sel, ok)
	}
}

func TestShiftClickForwardExtendsFromAnchorStart(t *testing.T) {
	m := New()
	m.PointerDown(10, 0, 0, 0, nil)
	m.PointerUp()
	m.ShiftClick(20, func(int, ExtensionMode) (int, int) { return 0, 0 })
	if m.Selection().Anchor != 10 || m.Selection().Head != 20 {
		t.Errorf("expected anchor=10 head=20, got %+v", m.Selection())
	}
}

func TestShiftClickBackwardExtendsFromAnchorEnd(t *testing.T) {
	m := New()
	m.PointerDown(20, 0, 0, 0, nil)
	m.PointerUp()
	m.ShiftClick(10, func(int, ExtensionMode) (int, int) { return 0, 0 })
	if m.Selection().Anchor != 20 || m.Selection().Head != 10 {
		t.Errorf("expected anchor=20 head=10, got %+v", m.Selection())
	}
}

func TestDocumentChangedClearsCellAnchor(t *testing.T) {
	m := New()
	m.PointerDown(5, 0, 0, 0, &CellAnchor{BlockID: "t1"})
	m.DocumentChanged()
	if m.cellAnchor != nil {
		t.Errorf("expected cell anchor cleared on document change")
	}
	if m.State != StateIdle {
		t.Errorf("expected state reset to idle, got %v", m.State)
	}
}

func TestPointerUpPreservesExtensionMode(t *testing.T) {
	m := New()
	m.PointerDown(10, 100, 100, 1000, nil)
	m.PointerDown(10, 100, 100, 1100, nil) // depth 2: word mode
	m.PointerUp()
	if m.ExtensionMode() != ExtendWord {
		t.Errorf("expected word extension mode preserved after pointerup")
	}
}
