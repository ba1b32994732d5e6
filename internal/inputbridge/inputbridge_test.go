package inputbridge

import "testing"

type fakeTarget struct {
	id                    string
	editable              bool
	compositionEndFlushed int
}

func (f *fakeTarget) ID() string             { return f.id }
func (f *fakeTarget) Editable() bool         { return f.editable }
func (f *fakeTarget) DispatchCompositionEnd() { f.compositionEndFlushed++ }

var _ Target = (*fakeTarget)(nil)

func TestSetActiveTargetFlushesCompositionOnChange(t *testing.T) {
	b := New()
	t1 := &fakeTarget{id: "main", editable: true}
	t2 := &fakeTarget{id: "header-1", editable: true}

	b.SetActiveTarget(t1)
	if t1.compositionEndFlushed != 0 {
		t.Fatalf("no flush expected on first activation")
	}
	b.SetActiveTarget(t2)
	if t1.compositionEndFlushed != 1 {
		t.Errorf("expected previous target to receive a compositionend flush, got %d", t1.compositionEndFlushed)
	}
}

func TestSetActiveTargetSameIDDoesNotFlush(t *testing.T) {
	b := New()
	t1 := &fakeTarget{id: "main", editable: true}
	t1b := &fakeTarget{id: "main", editable: true}
	b.SetActiveTarget(t1)
	b.SetActiveTarget(t1b)
	if t1.compositionEndFlushed != 0 {
		t.Errorf("expected no flush when the target id is unchanged")
	}
}

func TestShouldForwardRejectsLoopOrigin(t *testing.T) {
	b := New()
	target := &fakeTarget{id: "main", editable: true}
	b.SetActiveTarget(target)

	ev := Event{Kind: EventKeyboard, OriginTargetID: "main", InsideLayoutSurface: true}
	if b.ShouldForward(ev) {
		t.Errorf("expected events already inside the active target to be rejected")
	}
}

func TestShouldForwardRejectsOutsideLayoutSurface(t *testing.T) {
	b := New()
	b.SetActiveTarget(&fakeTarget{id: "main", editable: true})
	ev := Event{Kind: EventKeyboard, InsideLayoutSurface: false}
	if b.ShouldForward(ev) {
		t.Errorf("expected events outside the layout surface to be rejected")
	}
}

func TestShouldForwardRejectsRegisteredUISurface(t *testing.T) {
	b := New()
	b.SetActiveTarget(&fakeTarget{id: "main", editable: true})
	b.RegisterUISurface("toolbar")
	ev := Event{Kind: EventKeyboard, OriginTargetID: "toolbar", InsideLayoutSurface: true}
	if b.ShouldForward(ev) {
		t.Errorf("expected events from a registered UI surface to be rejected")
	}
}

func TestShouldForwardRejectsPlainCharacterKeys(t *testing.T) {
	b := New()
	b.SetActiveTarget(&fakeTarget{id: "main", editable: true})
	ev := Event{Kind: EventPlainCharacterKey, InsideLayoutSurface: true}
	if b.ShouldForward(ev) {
		t.Errorf("expected plain character keys to be handled via beforeinput instead")
	}
}

func TestShouldForwardRejectsEditEventsWhenViewing(t *testing.T) {
	b := New()
	b.SetActiveTarget(&fakeTarget{id: "main", editable: false})
	ev := Event{Kind: EventKeyboard, InsideLayoutSurface: true}
	if b.ShouldForward(ev) {
		t.Errorf("expected keyboard events to be rejected in viewing mode")
	}
}

func TestShouldForwardAllowsContextMenuWhenViewing(t *testing.T) {
	b := New()
	b.SetActiveTarget(&fakeTarget{id: "main", editable: false})
	ev := Event{Kind: EventContextMenu, InsideLayoutSurface: true}
	if !b.ShouldForward(ev) {
		t.Errorf("expected contextmenu to still forward in viewing mode")
	}
}
