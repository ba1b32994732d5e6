package controller

import "github.com/dustin/go-humanize"

// TelemetryType discriminates the one structured telemetry event type
// per kind the controller emits (spec.md §4.L, §6).
type TelemetryType string

const (
	TelemetryLayout              TelemetryType = "layout"
	TelemetryError               TelemetryType = "error"
	TelemetryRemoteCursorsRender TelemetryType = "remoteCursorsRender"
)

// TelemetryEvent is one entry on the telemetry stream.
type TelemetryEvent struct {
	Type TelemetryType
	Data map[string]any
}

// Summary renders a human-readable one-line summary of the event
// using humanized durations/sizes, for the demo CLI's status line and
// any textual telemetry sink (SPEC_FULL.md ambient stack).
func (e TelemetryEvent) Summary() string {
	switch e.Type {
	case TelemetryLayout:
		durMs, _ := e.Data["durationMs"].(float64)
		blocks, _ := e.Data["blockCount"].(int)
		pages, _ := e.Data["pageCount"].(int)
		return humanize.Comma(int64(blocks)) + " blocks, " + humanize.Comma(int64(pages)) +
			" pages in " + humanize.CommafWithDigits(durMs, 1) + "ms"
	case TelemetryError:
		stage, _ := e.Data["stage"].(string)
		return "layout error at " + stage
	case TelemetryRemoteCursorsRender:
		visible, _ := e.Data["visibleCount"].(int)
		total, _ := e.Data["collaboratorCount"].(int)
		return humanize.Comma(int64(visible)) + "/" + humanize.Comma(int64(total)) + " remote cursors rendered"
	default:
		return string(e.Type)
	}
}

// telemetrySink buffers emitted events and notifies subscribers; the
// controller is the sole writer.
type telemetrySink struct {
	events      []TelemetryEvent
	subscribers []func(TelemetryEvent)
}

func (s *telemetrySink) emit(ev TelemetryEvent) {
	s.events = append(s.events, ev)
	for _, sub := range s.subscribers {
		sub(ev)
	}
}

// Subscribe registers a callback invoked for every future telemetry
// event.
func (s *telemetrySink) Subscribe(fn func(TelemetryEvent)) {
	s.subscribers = append(s.subscribers, fn)
}

// Events returns every event emitted so far, oldest first.
func (s *telemetrySink) Events() []TelemetryEvent {
	out := make([]TelemetryEvent, len(s.events))
	copy(out, s.events)
	return out
}
