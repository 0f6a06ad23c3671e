// Package render draws the assembled report into a paginated PDF. The
// pagination decisions for the questionnaire table live in TableLayout,
// a pure state machine with no drawing backend, so they are testable
// without producing a document.
package render

// State is the paginator's position in the table lifecycle.
type State int

const (
	// NeedHeader: the header row has not been placed yet.
	NeedHeader State = iota
	// DrawingRow: the next row fits at the current cursor.
	DrawingRow
	// NeedPageBreak: the next row would cross the bottom margin.
	NeedPageBreak
)

// TableLayout tracks the vertical cursor for the manually paginated
// questionnaire table. The header is placed at most once; it is not
// repeated after a page break, so continuation pages show a bare table.
type TableLayout struct {
	TopY      float64 // cursor reset position after a page break
	BottomY   float64 // last usable y on a page
	RowHeight float64

	cursor       float64
	headerPlaced bool
}

// NewTableLayout starts a layout with the cursor at startY.
func NewTableLayout(startY, topY, bottomY, rowHeight float64) *TableLayout {
	return &TableLayout{
		TopY:      topY,
		BottomY:   bottomY,
		RowHeight: rowHeight,
		cursor:    startY,
	}
}

// State reports what the next placement would do.
func (l *TableLayout) State() State {
	if !l.headerPlaced {
		return NeedHeader
	}
	if !l.fits(l.RowHeight) {
		return NeedPageBreak
	}
	return DrawingRow
}

// fits is the placement predicate: would a block of height h drawn at the
// cursor stay above the bottom margin.
func (l *TableLayout) fits(h float64) bool {
	return l.cursor+h <= l.BottomY
}

// PlaceHeader returns the y to draw the header row at and advances the
// cursor past it. It latches headerPlaced; the latch never resets.
func (l *TableLayout) PlaceHeader() float64 {
	y := l.cursor
	l.cursor += l.RowHeight
	l.headerPlaced = true
	return y
}

// PlaceRow returns the y to draw the next body row at. When the row would
// not fit, the cursor first resets to the top margin and pageBreak is
// true: the caller must emit a new page before drawing.
func (l *TableLayout) PlaceRow() (y float64, pageBreak bool) {
	if !l.fits(l.RowHeight) {
		l.cursor = l.TopY
		pageBreak = true
	}
	y = l.cursor
	l.cursor += l.RowHeight
	return y, pageBreak
}

// PlaceBlock places a free-standing block (the summary line) of the given
// height after a vertical gap, applying the same page-break rule as rows.
func (l *TableLayout) PlaceBlock(gap, height float64) (y float64, pageBreak bool) {
	l.cursor += gap
	if !l.fits(height) {
		l.cursor = l.TopY
		pageBreak = true
	}
	y = l.cursor
	l.cursor += height
	return y, pageBreak
}

// HeaderPlaced reports whether the header row was drawn.
func (l *TableLayout) HeaderPlaced() bool { return l.headerPlaced }

// Cursor returns the current vertical cursor, for tests.
func (l *TableLayout) Cursor() float64 { return l.cursor }
