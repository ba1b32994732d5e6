// Package selection implements the selection state machine: idle,
// dragging (char/word/paragraph), and cell-anchor states, multi-click
// detection, and shift+click extension (spec.md §4.G).
package selection

// ExtensionMode governs how a drag or shift+click extends a
// selection.
type ExtensionMode int

const (
	ExtendChar ExtensionMode = iota
	ExtendWord
	ExtendParagraph
)

// StateKind discriminates the machine's current state.
type StateKind int

const (
	StateIdle StateKind = iota
	StateDragging
	StateCellAnchorPending
	StateCellAnchorActive
)

// multiClickWindowMs and multiClickPixels are the thresholds for
// multi-click depth counting (spec.md P9): within 400ms AND within
// 5px of the previous click.
const (
	multiClickWindowMs = 400
	multiClickPixels   = 5
)

// CellAnchor records the table cell a drag started in (spec.md §4.G).
type CellAnchor struct {
	BlockID  string
	Row, Col int
	TablePos int
	CellPos  int
}

// Range is a document position range; Anchor is the fixed end, Head
// is the end that moves as the selection extends.
type Range struct {
	Anchor, Head int
}

// CellRange is a selection spanning table cells, expressed as the
// anchor and current cell coordinates.
type CellRange struct {
	BlockID          string
	AnchorRow, AnchorCol int
	HeadRow, HeadCol int
}

// Machine is the selection state machine for one document target.
// All methods take an explicit timestamp in milliseconds so behavior
// is deterministic and testable without a wall clock.
type Machine struct {
	State StateKind

	extensionMode ExtensionMode
	sel           Range
	cellSel       *CellRange
	cellAnchor    *CellAnchor

	lastClickTimeMs int64
	lastClickX      float64
	lastClickY      float64
	clickDepth      int
	firstClickPos   int
}

// New returns a machine in the idle state.
func New() *Machine {
	return &Machine{State: StateIdle, extensionMode: ExtendChar}
}

// Selection returns the current text selection range, if any.
func (m *Machine) Selection() Range { return m.sel }

// SetCaret collapses the selection to pos without going through
// pointer input, e.g. after a navigation jump (spec.md §6 goToAnchor).
func (m *Machine) SetCaret(pos int) {
	m.sel = Range{Anchor: pos, Head: pos}
	m.firstClickPos = pos
	m.clickDepth = 0
	m.cellAnchor = nil
	m.cellSel = nil
	if m.State == StateCellAnchorPending || m.State == StateCellAnchorActive {
		m.State = StateIdle
	}
}

// CellSelection returns the current cell selection, if any.
func (m *Machine) CellSelection() (CellRange, bool) {
	if m.cellSel == nil {
		return CellRange{}, false
	}
	return *m.cellSel, true
}

// ExtensionMode returns the active extension mode, preserved across
// pointerup so later shift+clicks keep extending consistently.
func (m *Machine) ExtensionMode() ExtensionMode { return m.extensionMode }

// clickDepthFor returns 1, 2, or 3 for a new pointerdown at (x,y,t),
// given the previous click, per P9's 400ms/5px window. Depth never
// exceeds 3; a fourth rapid click restarts the cycle at depth 1 the
// spec does not define past triple-click, so we wrap to 1.
func (m *Machine) clickDepthFor(x, y float64, timeMs int64) int {
	if m.clickDepth == 0 {
		return 1
	}
	dt := timeMs - m.lastClickTimeMs
	dx := x - m.lastClickX
	dy := y - m.lastClickY
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dt <= multiClickWindowMs && dx <= multiClickPixels && dy <= multiClickPixels {
		depth := m.clickDepth + 1
		if depth > 3 {
			depth = 1
		}
		return depth
	}
	return 1
}

// PointerDown handles a pointerdown at document position pos, client
// point (x,y), at time timeMs. cell is non-nil when the point lands
// inside a table cell (spec.md §4.G).
func (m *Machine) PointerDown(pos int, x, y float64, timeMs int64, cell *CellAnchor) {
	depth := m.clickDepthFor(x, y, timeMs)

	if cell == nil {
		m.cellAnchor = nil
		if m.State == StateCellAnchorPending || m.State == StateCellAnchorActive {
			m.State = StateIdle
		}
	} else {
		m.cellAnchor = cell
		m.State = StateCellAnchorPending
	}

	if depth == 1 {
		m.firstClickPos = pos
		m.sel = Range{Anchor: pos, Head: pos}
		m.extensionMode = ExtendChar
	} else if depth == 2 {
		m.extensionMode = ExtendWord
	} else if depth == 3 {
		m.extensionMode = ExtendParagraph
	}

	m.clickDepth = depth
	m.lastClickTimeMs = timeMs
	m.lastClickX = x
	m.lastClickY = y

	if cell == nil && m.State != StateCellAnchorPending {
		m.State = StateDragging
	}
}

// PointerMove handles a pointermove with the button held. If a cell
// anchor is set and currentCell is a different cell of the anchor's
// table, it switches to cellAnchor(active) and produces a CellSelection
// spanning anchor->current. Otherwise it extends the text selection
// to pos using the active extension mode and the supplied boundary
// expander.
func (m *Machine) PointerMove(pos int, currentCell *CellAnchor, expand func(pos int, mode ExtensionMode) (start, end int)) {
	if m.cellAnchor != nil {
		if currentCell != nil && currentCell.BlockID == m.cellAnchor.BlockID &&
			(currentCell.Row != m.cellAnchor.Row || currentCell.Col != m.cellAnchor.Col) {
			m.State = StateCellAnchorActive
			m.cellSel = &CellRange{
				BlockID:   m.cellAnchor.BlockID,
				AnchorRow: m.cellAnchor.Row, AnchorCol: m.cellAnchor.Col,
				HeadRow: currentCell.Row, HeadCol: currentCell.Col,
			}
			return
		}
		if m.State == StateCellAnchorActive && currentCell == nil {
			// left the table: keep the last cell selection.
			return
		}
	}

	start, end := m.firstClickPos, m.firstClickPos
	if m.extensionMode != ExtendChar {
		start, end = expand(m.firstClickPos, m.extensionMode)
	}
	if pos >= m.firstClickPos {
		m.sel = Range{Anchor: start, Head: maxInt(end, pos)}
	} else {
		m.sel = Range{Anchor: end, Head: minInt(start, pos)}
	}
}

// ShiftClick extends the selection in the current extension mode with
// direction-aware boundaries (spec.md §4.G).
func (m *Machine) ShiftClick(pos int, expand func(pos int, mode ExtensionMode) (start, end int)) {
	anchor := m.sel.Anchor
	forward := pos >= anchor
	aStart, aEnd := anchor, anchor
	hStart, hEnd := pos, pos
	if m.extensionMode != ExtendChar {
		aStart, aEnd = expand(anchor, m.extensionMode)
		hStart, hEnd = expand(pos, m.extensionMode)
	}
	if forward {
		m.sel = Range{Anchor: aStart, Head: hEnd}
	} else {
		m.sel = Range{Anchor: aEnd, Head: hStart}
	}
}

// PointerUp ends dragging, preserving the extension mode.
func (m *Machine) PointerUp() {
	if m.State == StateDragging {
		m.State = StateIdle
	}
}

// DocumentChanged clears the cell anchor unconditionally (spec.md
// §4.G: "On any document change, the cell anchor is cleared.").
func (m *Machine) DocumentChanged() {
	m.cellAnchor = nil
	if m.State == StateCellAnchorPending || m.State == StateCellAnchorActive {
		m.State = StateIdle
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
