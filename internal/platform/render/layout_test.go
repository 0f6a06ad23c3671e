package render

import "testing"

func TestTableLayout_HeaderThenRows(t *testing.T) {
	l := NewTableLayout(700, 50, 790, 24)

	if l.State() != NeedHeader {
		t.Fatalf("fresh layout state = %v, want NeedHeader", l.State())
	}
	if y := l.PlaceHeader(); y != 700 {
		t.Errorf("header y = %v, want start y", y)
	}
	if !l.HeaderPlaced() {
		t.Error("header should be latched after placement")
	}
	if l.State() != DrawingRow {
		t.Errorf("state after header = %v, want DrawingRow", l.State())
	}

	y, pageBreak := l.PlaceRow()
	if pageBreak || y != 724 {
		t.Errorf("first row: y=%v break=%v, want 724/false", y, pageBreak)
	}
	y, pageBreak = l.PlaceRow()
	if pageBreak || y != 748 {
		t.Errorf("second row: y=%v break=%v, want 748/false", y, pageBreak)
	}
}

func TestTableLayout_BreakBeforeOverflow(t *testing.T) {
	// Bottom margin at 790: a row at 772 would end at 796, past the
	// margin, so the break happens before it is drawn.
	l := NewTableLayout(748, 50, 790, 24)
	l.PlaceHeader() // cursor -> 772

	if l.State() != NeedPageBreak {
		t.Fatalf("state = %v, want NeedPageBreak", l.State())
	}

	y, pageBreak := l.PlaceRow()
	if !pageBreak {
		t.Fatal("expected a page break")
	}
	if y != 50 {
		t.Errorf("row after break y = %v, want top margin", y)
	}
	if l.Cursor() != 74 {
		t.Errorf("cursor after break row = %v, want 74", l.Cursor())
	}
}

func TestTableLayout_RowEndingExactlyAtMarginFits(t *testing.T) {
	l := NewTableLayout(742, 50, 790, 24)
	l.PlaceHeader() // cursor -> 766, row would end exactly at 790

	y, pageBreak := l.PlaceRow()
	if pageBreak {
		t.Error("row ending exactly at the bottom margin must not break")
	}
	if y != 766 {
		t.Errorf("y = %v, want 766", y)
	}
}

func TestTableLayout_HeaderNeverRepeatsAfterBreak(t *testing.T) {
	// Continuation pages show a bare table: the header latch survives
	// page breaks, so State never returns NeedHeader again.
	l := NewTableLayout(700, 50, 790, 24)
	l.PlaceHeader()

	breaks := 0
	for i := 0; i < 200; i++ {
		if _, pageBreak := l.PlaceRow(); pageBreak {
			breaks++
		}
		if l.State() == NeedHeader {
			t.Fatalf("state regressed to NeedHeader after row %d", i)
		}
	}
	if breaks == 0 {
		t.Fatal("expected at least one page break over 200 rows")
	}
	if !l.HeaderPlaced() {
		t.Error("header latch must survive page breaks")
	}
}

func TestTableLayout_SummaryBlockBreaks(t *testing.T) {
	l := NewTableLayout(700, 50, 790, 24)
	l.PlaceHeader()
	for l.State() == DrawingRow {
		l.PlaceRow()
	}

	// Cursor is now too low for the summary; it must move to a new page.
	y, pageBreak := l.PlaceBlock(10, 20)
	if !pageBreak {
		t.Fatal("expected the summary to break onto a new page")
	}
	if y != 50 {
		t.Errorf("summary y = %v, want top margin", y)
	}
}

func TestTableLayout_SummaryBlockFitsInPlace(t *testing.T) {
	l := NewTableLayout(100, 50, 790, 24)
	l.PlaceHeader()
	l.PlaceRow() // cursor -> 148

	y, pageBreak := l.PlaceBlock(10, 20)
	if pageBreak {
		t.Fatal("summary should fit without a break")
	}
	if y != 158 {
		t.Errorf("summary y = %v, want 158 (cursor plus gap)", y)
	}
}
