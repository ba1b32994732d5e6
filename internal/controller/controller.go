// Package controller is the public orchestration surface (spec.md
// §4.L): it owns layout state, drives the re-layout procedure,
// schedules coalesced re-renders, and surfaces telemetry and errors.
package controller

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/hholst80/flowdoc/internal/anchor"
	"github.com/hholst80/flowdoc/internal/docmodel"
	"github.com/hholst80/flowdoc/internal/geometry"
	"github.com/hholst80/flowdoc/internal/headerfooter"
	"github.com/hholst80/flowdoc/internal/inputbridge"
	"github.com/hholst80/flowdoc/internal/layout"
	"github.com/hholst80/flowdoc/internal/measure"
	"github.com/hholst80/flowdoc/internal/presence"
	"github.com/hholst80/flowdoc/internal/selection"
	"github.com/hholst80/flowdoc/internal/session"
)

// DocumentMode mirrors setDocumentMode's allowed values (spec.md §6).
type DocumentMode string

const (
	ModeEditing    DocumentMode = "editing"
	ModeViewing    DocumentMode = "viewing"
	ModeSuggesting DocumentMode = "suggesting"
)

// LayoutMode mirrors setLayoutMode's allowed values (spec.md §6).
type LayoutMode string

const (
	LayoutVertical   LayoutMode = "vertical"
	LayoutBook       LayoutMode = "book"
	LayoutHorizontal LayoutMode = "horizontal"
)

const (
	defaultPageGap     = 24.0
	virtualizedPageGap = 72.0
)

// Options configures a new Controller (spec.md §6 "new(options)").
type Options struct {
	Document  DocumentState
	Adapter   Adapter
	Painter   Painter
	Measurer  Measurer
	Awareness AwarenessSource
	Logger    *log.Logger
}

// Controller is the public orchestration handle (spec.md §4.L, §6).
type Controller struct {
	doc      DocumentState
	adapter  Adapter
	painter  Painter
	measurer Measurer
	aware    AwarenessSource
	log      *log.Logger

	docMode        DocumentMode
	trackedChanges AdapterOptions
	layoutMode     LayoutMode
	zoom           float64
	viewport       geometry.Viewport

	collabReadyFired bool

	prevBlocks   []docmodel.FlowBlock
	prevMeasures map[string]docmodel.Measure
	layoutResult docmodel.Layout
	bookmarks    anchor.Map
	hfResults    headerfooter.Results
	sectionOpts  layout.Options
	virtualized  bool

	session   *session.Machine
	selection *selection.Machine
	presence  *presence.Mirror
	input     *inputbridge.Bridge

	health   HealthState
	lastErr  error
	errStage Stage

	pending  bool
	inflight bool

	telemetry *telemetrySink
	events    *emitter
}

// New constructs a Controller (spec.md §6 "new(options)"). Any error
// constructing the input bridge or required collaborators aborts
// construction (spec.md §7 "Initialization errors").
func New(opts Options) (*Controller, error) {
	if opts.Document == nil {
		return nil, &InitializationError{Cause: fmt.Errorf("controller: Options.Document is required")}
	}
	if opts.Adapter == nil {
		return nil, &InitializationError{Cause: fmt.Errorf("controller: Options.Adapter is required")}
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	measurer := opts.Measurer
	if measurer == nil {
		measurer = measure.DefaultMeasurer
	}

	c := &Controller{
		doc:        opts.Document,
		adapter:    opts.Adapter,
		painter:    opts.Painter,
		measurer:   measurer,
		aware:      opts.Awareness,
		log:        logger,
		docMode:    ModeEditing,
		layoutMode: LayoutVertical,
		zoom:       1.0,
		viewport:   geometry.Viewport{Zoom: 1.0},
		session:    session.New(),
		selection:  selection.New(),
		presence:   presence.NewMirror(),
		input:      inputbridge.New(),
		health:     HealthOK,
		telemetry:  &telemetrySink{},
		events:     newEmitter(),
	}
	logger.Debug("controller initialized")
	return c, nil
}

// Destroy wraps each cleanup step in a safe wrapper; failures log and
// proceed rather than abort (spec.md §7 "Throttle/cleanup safety").
func (c *Controller) Destroy() {
	steps := []struct {
		name string
		fn   func()
	}{
		{"session exit", func() { c.session.Exit(nil) }},
		{"input bridge detach", func() { c.input.SetActiveTarget(nil) }},
	}
	for _, s := range steps {
		c.safely(s.name, s.fn)
	}
}

func (c *Controller) safely(step string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("cleanup step failed", "step", step, "panic", r)
		}
	}()
	fn()
}

// On subscribes to an observable controller event (spec.md §6).
func (c *Controller) On(name EventName, fn func(any)) { c.events.On(name, fn) }

// Telemetry subscribes to the structured telemetry stream (spec.md
// §6, §4.L).
func (c *Controller) Telemetry(fn func(TelemetryEvent)) { c.telemetry.Subscribe(fn) }

// GetLayoutHealthState reports the controller's own health (spec.md
// §6).
func (c *Controller) GetLayoutHealthState() HealthState { return c.health }

// GetLayoutError returns the last render error, if the controller is
// degraded or failed.
func (c *Controller) GetLayoutError() error { return c.lastErr }

// SetZoom sets the viewport zoom factor (spec.md §6 "setZoom(positive
// finite number)"), rejecting non-positive or non-finite values.
func (c *Controller) SetZoom(zoom float64) error {
	if math.IsNaN(zoom) || math.IsInf(zoom, 0) || zoom <= 0 {
		return &ValidationError{Field: "zoom", Reason: ErrZoomMustBePositiveFinite.Error()}
	}
	c.zoom = zoom
	c.viewport.Zoom = zoom
	return nil
}

// SetViewport updates the client<->layout coordinate transform used
// by HitTest/PosAtCoords/CoordsAtPos/GetRangeRects, preserving the
// zoom SetZoom last set.
func (c *Controller) SetViewport(vp geometry.Viewport) {
	vp.Zoom = c.zoom
	c.viewport = vp
}

// SetDocumentMode sets the document's editing mode (spec.md §6
// "setDocumentMode('editing'|'viewing'|'suggesting')").
func (c *Controller) SetDocumentMode(mode DocumentMode) error {
	switch mode {
	case ModeEditing, ModeViewing, ModeSuggesting:
		c.docMode = mode
		return nil
	default:
		return &ValidationError{Field: "documentMode", Reason: "must be editing, viewing, or suggesting"}
	}
}

// GetDocumentMode returns the current document mode.
func (c *Controller) GetDocumentMode() DocumentMode { return c.docMode }

// SetLayoutMode sets the page-flow orientation (spec.md §6
// "setLayoutMode('vertical'|'book'|'horizontal')").
func (c *Controller) SetLayoutMode(mode LayoutMode) error {
	switch mode {
	case LayoutVertical, LayoutBook, LayoutHorizontal:
		c.layoutMode = mode
		return nil
	default:
		return &ValidationError{Field: "layoutMode", Reason: "must be vertical, book, or horizontal"}
	}
}

// GetLayoutMode returns the current layout mode.
func (c *Controller) GetLayoutMode() LayoutMode { return c.layoutMode }

// SectionPageStyles summarizes the current first section's page
// geometry and header/footer wiring (spec.md §6
// "getCurrentSectionPageStyles()").
type SectionPageStyles struct {
	PageSize     docmodel.PageSize
	Margins      docmodel.Margins
	Columns      int
	HeaderFooter docmodel.HeaderFooterIdentifier
}

// GetCurrentSectionPageStyles returns the page styles the last
// successful layout pass derived from the document's first section.
func (c *Controller) GetCurrentSectionPageStyles() SectionPageStyles {
	return SectionPageStyles{
		PageSize:     c.sectionOpts.PageSize,
		Margins:      c.sectionOpts.Margins,
		Columns:      c.sectionOpts.Columns,
		HeaderFooter: c.sectionOpts.Section.HeaderFooter,
	}
}
