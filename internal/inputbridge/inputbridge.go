// Package inputbridge forwards host events to the currently active
// document target while suppressing loops and viewing-mode writes
// (spec.md §4.K).
package inputbridge

// EventKind classifies the forwarded event types the bridge cares
// about.
type EventKind int

const (
	EventKeyboard EventKind = iota
	EventComposition
	EventBeforeInput
	EventInput
	EventContextMenu
	EventPlainCharacterKey
)

// Target is the currently active document editing surface (the main
// editor, or an embedded header/footer editor during a session).
type Target interface {
	ID() string
	Editable() bool
	DispatchCompositionEnd()
}

// Event is the minimal shape the bridge needs to decide whether to
// forward, independent of the host's actual DOM event type.
type Event struct {
	Kind EventKind
	// OriginTargetID is the id of the element the event originated on
	// (e.g. an editor's own DOM root); empty if it didn't originate
	// inside any known target.
	OriginTargetID string
	// InsideLayoutSurface reports whether the event's coordinates (or
	// composition/keyboard focus) are within the layout surface at all.
	InsideLayoutSurface bool
	// FromRegisteredUISurface is true for events originating in an
	// explicitly registered chrome surface (e.g. a toolbar).
	FromRegisteredUISurface bool
}

// Bridge retargets events to the active Target, suppressing the
// exclusions listed in spec.md §4.K.
type Bridge struct {
	active Target

	// registeredUISurfaces are excluded from forwarding entirely.
	registeredUISurfaces map[string]bool
}

// New returns a Bridge with no active target.
func New() *Bridge {
	return &Bridge{registeredUISurfaces: map[string]bool{}}
}

// RegisterUISurface excludes events whose OriginTargetID matches id.
func (b *Bridge) RegisterUISurface(id string) { b.registeredUISurfaces[id] = true }

// SetActiveTarget switches the active target, flushing IME state on
// the previous one via a synthetic compositionend (spec.md §4.K: "On
// target change, a synthetic compositionend is dispatched to the
// previous target to flush IME state.").
func (b *Bridge) SetActiveTarget(next Target) {
	prev := b.active
	b.active = next
	if prev != nil && (next == nil || prev.ID() != next.ID()) {
		prev.DispatchCompositionEnd()
	}
}

// ShouldForward decides whether ev should be forwarded to the active
// target, applying every exclusion in spec.md §4.K.
func (b *Bridge) ShouldForward(ev Event) bool {
	if b.active == nil {
		return false
	}
	if ev.OriginTargetID != "" && ev.OriginTargetID == b.active.ID() {
		return false // already inside the active target: avoid loops.
	}
	if !ev.InsideLayoutSurface {
		return false
	}
	if ev.FromRegisteredUISurface || b.registeredUISurfaces[ev.OriginTargetID] {
		return false
	}
	if ev.Kind == EventPlainCharacterKey {
		return false // handled via beforeinput to avoid double-handling.
	}
	if !b.active.Editable() {
		switch ev.Kind {
		case EventKeyboard, EventComposition, EventInput, EventBeforeInput:
			return false
		}
	}
	return true
}
