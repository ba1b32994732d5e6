// Package session implements the body <-> header/footer editing
// session state machine (spec.md §4.J, P10).
package session

import (
	"errors"
	"time"
)

// Mode discriminates the session's active editing surface.
type Mode int

const (
	ModeBody Mode = iota
	ModeHeader
	ModeFooter
)

// SectionType is the header/footer variant a session targets.
type SectionType string

const (
	SectionDefault SectionType = "default"
	SectionFirst   SectionType = "first"
	SectionEven    SectionType = "even"
	SectionOdd     SectionType = "odd"
)

// State is the current session descriptor (spec.md §3).
type State struct {
	Mode        Mode
	HeaderID    string
	SectionType SectionType
	PageIndex   int
	PageNumber  int
}

// ErrPermissionDenied is returned when entry is attempted while the
// document is in viewing mode or the main target isn't editable
// (spec.md §4.J step 1).
var ErrPermissionDenied = errors.New("session: header/footer editing blocked: document is not editable")

// ErrPageMountTimeout is returned when the target page fails to mount
// within the 2s budget (spec.md §4.J step 3, §5).
var ErrPageMountTimeout = errors.New("session: timed out waiting for the target page to mount")

const pageMountTimeout = 2 * time.Second

// DescriptorResolver resolves or creates the content descriptor for a
// (kind, sectionType) region, synthesizing a default variant when
// none exists (spec.md §4.J step 2).
type DescriptorResolver func(mode Mode, sectionType SectionType) (headerID string, err error)

// PageMountWaiter blocks (or polls) until the page at pageIndex is
// mounted, or returns false on timeout.
type PageMountWaiter func(pageIndex int, timeout time.Duration) bool

// Machine is the session state machine for one controller instance.
// At most one embedded editor is active (P10); in body mode the
// fields beyond Mode are zero.
type Machine struct {
	state State

	// InputRetarget is notified on every successful entry/exit so the
	// input bridge can retarget events (spec.md §4.J step 5).
	InputRetarget func(State)
}

// New returns a machine starting in body mode.
func New() *Machine {
	return &Machine{state: State{Mode: ModeBody}}
}

// Current returns the active session state.
func (m *Machine) Current() State { return m.state }

// IsActive reports whether an embedded header/footer editor is active
// (P10: body mode implies none is).
func (m *Machine) IsActive() bool { return m.state.Mode != ModeBody }

// Enter promotes mode (Header or Footer) for the given section at
// pageIndex/pageNumber (spec.md §4.J entry procedure). editable gates
// step 1; resolve and waitMount implement steps 2-3.
func (m *Machine) Enter(mode Mode, sectionType SectionType, pageIndex, pageNumber int, editable bool, resolve DescriptorResolver, waitMount PageMountWaiter) (State, error) {
	if mode == ModeBody {
		return State{}, errors.New("session: Enter requires Header or Footer")
	}
	if !editable {
		return State{}, ErrPermissionDenied
	}

	headerID, err := resolve(mode, sectionType)
	if err != nil {
		return State{}, err
	}

	if waitMount != nil && !waitMount(pageIndex, pageMountTimeout) {
		return State{}, ErrPageMountTimeout
	}

	next := State{
		Mode:        mode,
		HeaderID:    headerID,
		SectionType: sectionType,
		PageIndex:   pageIndex,
		PageNumber:  pageNumber,
	}
	m.state = next
	if m.InputRetarget != nil {
		m.InputRetarget(next)
	}
	return next, nil
}

// Exit restores body mode (spec.md §4.J exit procedure). invalidate is
// called with the exited descriptor's id so its cached layout is
// dropped and a full re-layout is scheduled.
func (m *Machine) Exit(invalidate func(headerID string)) {
	if m.state.Mode == ModeBody {
		return
	}
	exitedID := m.state.HeaderID
	m.state = State{Mode: ModeBody}
	if invalidate != nil {
		invalidate(exitedID)
	}
	if m.InputRetarget != nil {
		m.InputRetarget(m.state)
	}
}
