package controller

import (
	"github.com/hholst80/flowdoc/internal/docmodel"
	"github.com/hholst80/flowdoc/internal/presence"
	"github.com/hholst80/flowdoc/internal/session"
)

// EventName enumerates the controller's observable events (spec.md
// §6).
type EventName string

const (
	EventLayoutUpdated           EventName = "layoutUpdated"
	EventLayoutError             EventName = "layoutError"
	EventPaginationUpdate        EventName = "paginationUpdate"
	EventCommentPositions        EventName = "commentPositions"
	EventRemoteCursorsUpdate     EventName = "remoteCursorsUpdate"
	EventImageSelected           EventName = "imageSelected"
	EventImageDeselected         EventName = "imageDeselected"
	EventHeaderFooterModeChanged EventName = "headerFooterModeChanged"
	EventHeaderFooterEditingCtx  EventName = "headerFooterEditingContext"
	EventHeaderFooterEditBlocked EventName = "headerFooterEditBlocked"
	EventCollaborationReady      EventName = "collaborationReady"
	EventError                   EventName = "error"
)

// emitter is a tiny typed pub/sub used for the controller's observable
// events; each event carries its own payload type via `any`.
type emitter struct {
	listeners map[EventName][]func(any)
}

func newEmitter() *emitter { return &emitter{listeners: map[EventName][]func(any){}} }

// On registers fn to be called whenever name fires.
func (e *emitter) On(name EventName, fn func(any)) {
	e.listeners[name] = append(e.listeners[name], fn)
}

func (e *emitter) fire(name EventName, payload any) {
	for _, fn := range e.listeners[name] {
		fn(payload)
	}
}

// LayoutUpdatedPayload accompanies EventLayoutUpdated.
type LayoutUpdatedPayload struct {
	Layout docmodel.Layout
}

// LayoutErrorPayload accompanies EventLayoutError.
type LayoutErrorPayload struct {
	Stage Stage
	Err   error
}

// RemoteCursorsUpdatePayload accompanies EventRemoteCursorsUpdate.
type RemoteCursorsUpdatePayload struct {
	Cursors []presence.RemoteCursorState
}

// HeaderFooterModeChangedPayload accompanies
// EventHeaderFooterModeChanged.
type HeaderFooterModeChangedPayload struct {
	State session.State
}

// HeaderFooterEditBlockedPayload accompanies
// EventHeaderFooterEditBlocked.
type HeaderFooterEditBlockedPayload struct {
	Reason string
}

// CommentPositionsPayload accompanies EventCommentPositions: the
// document positions of every bookmark the latest layout resolved,
// recomputed alongside the anchor index on each pass (spec.md §4.E,
// §4.L step 9).
type CommentPositionsPayload struct {
	Positions []int
}

// ImageSelectedPayload accompanies EventImageSelected.
type ImageSelectedPayload struct {
	BlockID string
}
