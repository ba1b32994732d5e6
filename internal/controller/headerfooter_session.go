package controller

import (
	"errors"

	"github.com/hholst80/flowdoc/internal/session"
)

// EnterHeaderFooterEditing begins an embedded header/footer editing
// session (spec.md §4.J entry procedure). Entry is blocked while the
// document is in viewing mode; resolve synthesizes a descriptor for
// the (mode, sectionType) region and waitMount blocks until the
// target page mounts.
func (c *Controller) EnterHeaderFooterEditing(mode session.Mode, sectionType session.SectionType, pageIndex, pageNumber int, resolve session.DescriptorResolver, waitMount session.PageMountWaiter) error {
	editable := c.docMode != ModeViewing
	state, err := c.session.Enter(mode, sectionType, pageIndex, pageNumber, editable, resolve, waitMount)
	if err != nil {
		if errors.Is(err, session.ErrPermissionDenied) {
			c.events.fire(EventHeaderFooterEditBlocked, HeaderFooterEditBlockedPayload{Reason: err.Error()})
		}
		return err
	}
	c.events.fire(EventHeaderFooterModeChanged, HeaderFooterModeChangedPayload{State: state})
	c.events.fire(EventHeaderFooterEditingCtx, state)
	return nil
}

// ExitHeaderFooterEditing restores body mode (spec.md §4.J exit
// procedure), invalidating the exited descriptor's cached region
// layout so the next pass recomputes it.
func (c *Controller) ExitHeaderFooterEditing() {
	c.session.Exit(c.invalidateRegion)
	c.events.fire(EventHeaderFooterModeChanged, HeaderFooterModeChangedPayload{State: c.session.Current()})
}

func (c *Controller) invalidateRegion(headerID string) {
	if headerID == "" {
		return
	}
	delete(c.hfResults.HeadersByRID, headerID)
	delete(c.hfResults.FootersByRID, headerID)
	c.ScheduleRerender()
}

// SelectImage marks blockID as the selected image/drawing (spec.md §6
// event "imageSelected").
func (c *Controller) SelectImage(blockID string) {
	c.events.fire(EventImageSelected, ImageSelectedPayload{BlockID: blockID})
}

// DeselectImage clears the image selection (spec.md §6 event
// "imageDeselected").
func (c *Controller) DeselectImage() {
	c.events.fire(EventImageDeselected, nil)
}
