package controller

import (
	"time"

	"github.com/hholst80/flowdoc/internal/presence"
)

// normalizePresence feeds the awareness collaborator's raw states
// through the presence mirror and fires the remote-cursors event
// (spec.md §4.I, P8: run on every document change). It is a no-op
// when the controller was built without an AwarenessSource.
func (c *Controller) normalizePresence() {
	if c.aware == nil {
		return
	}
	if !c.collabReadyFired {
		c.collabReadyFired = true
		c.events.fire(EventCollaborationReady, nil)
	}

	raw := c.aware.GetStates()
	nowMs := time.Now().UnixMilli()
	visible := c.presence.Normalize(raw, c.aware.RelativePositionToAbsolute, c.docSize(), nowMs)

	c.telemetry.emit(TelemetryEvent{Type: TelemetryRemoteCursorsRender, Data: map[string]any{
		"collaboratorCount": len(raw),
		"visibleCount":      len(visible),
		"renderTimeMs":      0.0,
	}})
	c.events.fire(EventRemoteCursorsUpdate, RemoteCursorsUpdatePayload{Cursors: visible})
}

// GetRemoteCursors returns the currently visible remote cursors, cap
// and staleness already applied (spec.md §6 "getRemoteCursors()").
func (c *Controller) GetRemoteCursors() []presence.RemoteCursorState {
	return c.presence.Visible(time.Now().UnixMilli())
}
