package controller

import (
	"github.com/hholst80/flowdoc/internal/anchor"
	"github.com/hholst80/flowdoc/internal/docmodel"
	"github.com/hholst80/flowdoc/internal/headerfooter"
	"github.com/hholst80/flowdoc/internal/layout"
)

// ScheduleRerender marks a re-layout as pending (spec.md §4.L, §5,
// S5). It is coalescing: calling it repeatedly before the pending
// pass runs produces exactly one pass. If a pass is already running
// when this is called, the new request is recorded and a successor
// pass runs once the in-flight one finishes (see RunPendingRerender).
func (c *Controller) ScheduleRerender() {
	c.pending = true
}

// RunPendingRerender simulates one RAF tick: if a re-layout is
// pending and none is in flight, it runs one re-layout pass, followed
// directly by a successor pass if ScheduleRerender was called during it.
// Callers (the embedder's own event loop, or a test) invoke this once
// per tick; the controller itself never spawns a goroutine or timer,
// matching the single-threaded cooperative model of spec.md §5.
func (c *Controller) RunPendingRerender(durationMeter func() func() float64) bool {
	if !c.pending || c.inflight {
		return false
	}
	c.pending = false
	c.inflight = true
	defer func() { c.inflight = false }()

	var elapsed func() float64
	if durationMeter != nil {
		elapsed = durationMeter()
	}

	c.relayout()

	if elapsed != nil {
		durMs := elapsed()
		c.telemetry.emit(TelemetryEvent{Type: TelemetryLayout, Data: map[string]any{
			"durationMs": durMs,
			"blockCount": len(c.prevBlocks),
			"pageCount":  len(c.layoutResult.Pages),
		}})
	}

	// A successor pass was requested while this one ran.
	c.inflight = false
	if c.pending {
		c.RunPendingRerender(durationMeter)
	}
	return true
}

// relayout implements the nine-step re-layout procedure (spec.md
// §4.L). Errors at any stage are recorded via recordRenderError and
// the last-good layout is preserved.
func (c *Controller) relayout() {
	// 1. snapshot document JSON.
	docJSON := c.doc.JSON()

	// 2. adapter converts to FlowBlocks.
	result, err := c.adapter.ToFlowBlocks(docJSON, c.trackedChanges)
	if err != nil {
		c.recordRenderError(StageToFlowBlocks, err)
		return
	}

	// 3. derive layout options from the first section.
	opts := layout.Options{
		PageSize: result.Section.PageSize,
		Margins:  result.Section.Margins,
		Columns:  result.Section.Columns,
		Section: layout.SectionMetadata{
			HeaderFooter:     result.Section.HeaderFooter,
			PageNumberFormat: result.Section.PageNumberFormat,
			PageNumberStart:  result.Section.PageNumberStart,
		},
	}
	c.sectionOpts = opts

	// 4. incremental layout against prevBlocks/prevLayout.
	lr := layout.IncrementalLayout(c.prevBlocks, c.prevMeasures, result.Blocks, opts, c.measurer)

	// 5. attach pageGap.
	gap := defaultPageGap
	if c.virtualized {
		gap = virtualizedPageGap
	}
	lr.Layout.PageGap = gap

	// 6. process per-rId header/footer layouts.
	headerC, footerC := headerfooter.DeriveConstraints(opts.PageSize, opts.Margins)
	hf := headerfooter.Layout(headerfooter.Input{
		HeaderBlocksByRID: result.HeaderBlocksByRID,
		FooterBlocksByRID: result.FooterBlocksByRID,
		HeaderConstraints: headerC,
		FooterConstraints: footerC,
		MeasureFn:         c.measurer,
	}, nil)

	// 7. update decoration providers and region hit maps.
	c.bookmarks = anchor.Build(lr.Layout, result.Bookmarks)

	c.prevBlocks = result.Blocks
	c.prevMeasures = lr.Measures
	c.layoutResult = lr.Layout
	c.hfResults = hf

	// 8. hand blocks+measures (main + header/footer) to the painter.
	// The default-variant header/footer content goes straight into
	// SetData; per-physical-page variant resolution (§4.D's two-tier
	// lookup) is exposed to the painter via SetProviders so it can
	// pull the right region for pages that differ from the default
	// (title pages, alternating headers).
	headerBlocks, headerMeasures := resolveDefaultRegion(result.HeaderBlocksByRID, hf.HeadersByRID, opts.Section.HeaderFooter.HeaderIDs)
	footerBlocks, footerMeasures := resolveDefaultRegion(result.FooterBlocksByRID, hf.FootersByRID, opts.Section.HeaderFooter.FooterIDs)

	if c.painter != nil {
		c.painter.SetProviders(c.headerProvider, c.footerProvider)
		c.painter.SetData(result.Blocks, lr.Measures, headerBlocks, headerMeasures, footerBlocks, footerMeasures)
		if err := c.painter.Paint(lr.Layout, nil); err != nil {
			c.recordRenderError(StageIncrementalLayout, err)
			return
		}
	}

	// 9. reset error state, emit layoutUpdated, comment positions, and
	// presence re-render.
	c.health = HealthOK
	c.lastErr = nil
	c.events.fire(EventLayoutUpdated, LayoutUpdatedPayload{Layout: lr.Layout})
	c.events.fire(EventPaginationUpdate, len(lr.Layout.Pages))

	positions := make([]int, len(result.Bookmarks))
	for i, bm := range result.Bookmarks {
		positions[i] = bm.Pos
	}
	c.events.fire(EventCommentPositions, CommentPositionsPayload{Positions: positions})

	c.normalizePresence()
}

// recordRenderError implements spec.md §7's render-error recovery:
// keep last-good layout, mark degraded if one exists, else failed.
func (c *Controller) recordRenderError(stage Stage, err error) {
	renderErr := &RenderError{Stage: stage, Cause: err}
	c.lastErr = renderErr
	c.errStage = stage
	if len(c.prevBlocks) > 0 {
		c.health = HealthDegraded
	} else {
		c.health = HealthFailed
	}
	c.log.Error("render error", "stage", stage, "error", err)
	c.telemetry.emit(TelemetryEvent{Type: TelemetryError, Data: map[string]any{"stage": string(stage)}})
	c.events.fire(EventLayoutError, LayoutErrorPayload{Stage: stage, Err: err})
	c.events.fire(EventError, renderErr)
}

// ReloadLayout clears the error banner's error state and reschedules
// a pass (spec.md §4.L "a banner is inserted... with a 'reload
// layout' action that clears the error and reschedules").
func (c *Controller) ReloadLayout() {
	c.lastErr = nil
	if c.health == HealthFailed && len(c.prevBlocks) > 0 {
		c.health = HealthDegraded
	}
	c.ScheduleRerender()
}

// GetPages returns the current layout's pages.
func (c *Controller) GetPages() []docmodel.Page { return c.layoutResult.Pages }

// GetLayoutSnapshot returns the full current Layout.
func (c *Controller) GetLayoutSnapshot() docmodel.Layout { return c.layoutResult }

// GetLayoutOptions returns the layout options derived from the
// current first section.
func (c *Controller) GetLayoutOptions() layout.Options { return c.sectionOpts }
