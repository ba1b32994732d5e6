package presence

import "sort"

// staleTimeoutMs is the default duration a client may go unseen before
// being pruned (spec.md §4.I default 5 minutes).
const staleTimeoutMs int64 = 5 * 60 * 1000

// defaultVisibilityCap is the default max number of remote cursors
// rendered at once (spec.md §4.I default 20).
const defaultVisibilityCap = 20

// Mirror holds the last-normalized snapshot of remote cursor state
// and the throttle bookkeeping for re-renders.
type Mirror struct {
	states map[string]RemoteCursorState

	dirty          bool
	lastRenderMs   int64
	rendered       bool
	pendingUntilMs int64
	hasPending     bool

	StaleTimeoutMs int64
	VisibilityCap  int
}

// NewMirror returns a Mirror with spec.md default thresholds.
func NewMirror() *Mirror {
	return &Mirror{
		states:         map[string]RemoteCursorState{},
		StaleTimeoutMs: staleTimeoutMs,
		VisibilityCap:  defaultVisibilityCap,
	}
}

// MarkDirty records that awareness changed; the caller is expected to
// defer the actual Normalize call past a microtask boundary so
// document and awareness updates, arriving in the same network frame,
// are applied before mapping (spec.md §4.I, P8).
func (m *Mirror) MarkDirty() { m.dirty = true }

// Dirty reports whether a normalize+render pass is owed.
func (m *Mirror) Dirty() bool { return m.dirty }

// Normalize converts raw awareness states to RemoteCursorState,
// skipping unresolvable positions, clamping to [0, docSize], and
// preserving UpdatedAt when a client's anchor/head are unchanged from
// the previous snapshot (spec.md §4.I, stable recency).
func (m *Mirror) Normalize(raw map[string]AwarenessState, toAbs RelativeToAbsolute, docSize int, nowMs int64) []RemoteCursorState {
	next := make(map[string]RemoteCursorState, len(raw))
	for clientID, st := range raw {
		if st.Cursor == nil {
			continue
		}
		anchor, ok1 := toAbs(st.Cursor.AnchorRel)
		head, ok2 := toAbs(st.Cursor.HeadRel)
		if !ok1 || !ok2 {
			continue
		}
		anchor = clamp(anchor, 0, docSize)
		head = clamp(head, 0, docSize)

		updatedAt := nowMs
		var user User
		if st.User != nil {
			user = *st.User
		}
		if prev, ok := m.states[clientID]; ok && prev.Anchor == anchor && prev.Head == head {
			updatedAt = prev.UpdatedAt
		}
		next[clientID] = RemoteCursorState{
			ClientID:  clientID,
			User:      user,
			Anchor:    anchor,
			Head:      head,
			UpdatedAt: updatedAt,
		}
	}
	m.states = next
	m.dirty = false

	return m.Visible(nowMs)
}

// Visible returns the states sorted by UpdatedAt desc, capped at
// VisibilityCap, after pruning clients stale past StaleTimeoutMs.
func (m *Mirror) Visible(nowMs int64) []RemoteCursorState {
	m.pruneStale(nowMs)

	out := make([]RemoteCursorState, 0, len(m.states))
	for _, s := range m.states {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt > out[j].UpdatedAt })

	limit := m.VisibilityCap
	if limit <= 0 || limit > len(out) {
		limit = len(out)
	}
	return out[:limit]
}

func (m *Mirror) pruneStale(nowMs int64) {
	timeout := m.StaleTimeoutMs
	if timeout <= 0 {
		timeout = staleTimeoutMs
	}
	for id, s := range m.states {
		if nowMs-s.UpdatedAt >= timeout {
			delete(m.states, id)
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ShouldRenderNow implements the microtask-defer-then-throttle rule
// (spec.md §4.I): if elapsed since the last render is >= ~16ms
// (60fps), render immediately; otherwise schedule a trailing-edge
// render at the remaining delta. Callers poll this after the
// microtask boundary with the current time; a false result carries
// the millisecond delay to wait before trying again.
func (m *Mirror) ShouldRenderNow(nowMs int64) (render bool, delayMs int64) {
	const frameMs int64 = 16
	elapsed := nowMs - m.lastRenderMs
	if !m.rendered || elapsed >= frameMs {
		m.lastRenderMs = nowMs
		m.rendered = true
		m.hasPending = false
		return true, 0
	}
	if m.hasPending {
		return false, m.pendingUntilMs - nowMs
	}
	m.hasPending = true
	m.pendingUntilMs = nowMs + (frameMs - elapsed)
	return false, frameMs - elapsed
}

// Fire marks the trailing-edge render as having happened at nowMs,
// resetting the throttle window.
func (m *Mirror) Fire(nowMs int64) {
	m.lastRenderMs = nowMs
	m.rendered = true
	m.hasPending = false
}
