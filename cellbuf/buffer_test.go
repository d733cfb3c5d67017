package cellbuf

import (
	"testing"

	"github.com/duskterm/termcore/color"
	"github.com/duskterm/termcore/geometry"
)

func defaultFgBg() (color.Foreground, color.Color) {
	return color.EmptyForeground(), color.Normal()
}

func TestResizePreservesCommittedState(t *testing.T) {
	fg, bg := defaultFgBg()
	buf := NewCellBuffer(geometry.Size{W: 4, H: 2}, fg, bg)

	glyph := color.Foreground{Style: color.DefaultForegroundStyle(), CodeUnit: 'x'}
	buf.DrawPoint(1, 1, &glyph, nil)
	cell := buf.Cell(1, 1)
	cell.CalculateDifference()

	buf.Resize(geometry.Size{W: 8, H: 5})

	got := buf.Cell(1, 1)
	if got.Fg.CodeUnit != 'x' {
		t.Errorf("expected committed glyph to survive resize, got %q", got.Fg.CodeUnit)
	}
	if buf.Size() != (geometry.Size{W: 8, H: 5}) {
		t.Errorf("Size() = %+v, want {8 5}", buf.Size())
	}
}

func TestResizeShrinkThenGrowRetainsState(t *testing.T) {
	fg, bg := defaultFgBg()
	buf := NewCellBuffer(geometry.Size{W: 10, H: 10}, fg, bg)
	glyph := color.Foreground{Style: color.DefaultForegroundStyle(), CodeUnit: 'z'}
	buf.DrawPoint(3, 3, &glyph, nil)
	buf.Cell(3, 3).CalculateDifference()

	buf.Resize(geometry.Size{W: 5, H: 5})
	buf.Resize(geometry.Size{W: 10, H: 10})

	if got := buf.Cell(3, 3); got.Fg.CodeUnit != 'z' {
		t.Errorf("expected cell (3,3) to retain its glyph, got %q", got.Fg.CodeUnit)
	}
}

func TestResetClearsCellsAndDirtyRows(t *testing.T) {
	fg, bg := defaultFgBg()
	buf := NewCellBuffer(geometry.Size{W: 3, H: 3}, fg, bg)
	glyph := color.Foreground{Style: color.DefaultForegroundStyle(), CodeUnit: 'q'}
	buf.DrawPoint(0, 0, &glyph, nil)

	red := color.Standard(1)
	buf.Reset(fg, red)

	if buf.RowChanged(0) {
		t.Error("expected row 0 to be clean after Reset")
	}
	cell := buf.Cell(0, 0)
	if cell.Fg.CodeUnit != 0 {
		t.Errorf("expected reset cell to carry no glyph, got %q", cell.Fg.CodeUnit)
	}
	if !cell.Bg.Equals(red) {
		t.Error("expected reset cell to carry the new background")
	}
}

func TestDrawTextASCIIFastPath(t *testing.T) {
	fg, bg := defaultFgBg()
	buf := NewCellBuffer(geometry.Size{W: 10, H: 1}, fg, bg)
	buf.DrawText(0, 0, "hi", color.DefaultForegroundStyle())

	h, _ := buf.Cell(0, 0).PendingGlyphCodeUnit()
	i, _ := buf.Cell(1, 0).PendingGlyphCodeUnit()
	if h != 'h' || i != 'i' {
		t.Error("expected cells to carry pending 'h' and 'i'")
	}
	if !buf.RowChanged(0) {
		t.Error("expected row 0 to be marked dirty")
	}
}

func TestDrawUnicodeTextWideGrapheme(t *testing.T) {
	fg, bg := defaultFgBg()
	buf := NewCellBuffer(geometry.Size{W: 10, H: 1}, fg, bg)
	buf.DrawUnicodeText(0, 0, "好", color.DefaultForegroundStyle())

	left := buf.Cell(0, 0)
	right := buf.Cell(1, 0)
	if left.Grapheme == nil || left.Grapheme.IsSecond {
		t.Fatal("expected left cell to own a non-second grapheme")
	}
	if left.Grapheme.Width != 2 {
		t.Errorf("expected width 2, got %d", left.Grapheme.Width)
	}
	if right.Grapheme == nil || !right.Grapheme.IsSecond {
		t.Fatal("expected right cell to carry the second-half marker")
	}
	if right.Grapheme.Data != left.Grapheme.Data {
		t.Error("expected both halves to carry the same data")
	}
}

func TestDetachGraphemeSpanClearsBothHalves(t *testing.T) {
	fg, bg := defaultFgBg()
	buf := NewCellBuffer(geometry.Size{W: 10, H: 1}, fg, bg)
	buf.DrawUnicodeText(0, 0, "好", color.DefaultForegroundStyle())

	// Overdraw the right half with a plain ASCII glyph.
	glyph := color.Foreground{Style: color.DefaultForegroundStyle(), CodeUnit: 'x'}
	buf.detachGraphemeSpan(1, 0)
	buf.Cell(1, 0).Draw(&glyph, nil)

	if buf.Cell(0, 0).Grapheme != nil {
		t.Error("expected left half to be detached once the span is clobbered")
	}
	if buf.Cell(1, 0).Grapheme != nil {
		t.Error("expected right half to be detached")
	}
}

func TestDrawBorderBoxFormsCorners(t *testing.T) {
	fg, bg := defaultFgBg()
	buf := NewCellBuffer(geometry.Size{W: 5, H: 5}, fg, bg)
	id := buf.NextBorderID()
	buf.DrawBorderBox(geometry.Rect{X1: 0, X2: 4, Y1: 0, Y2: 4}, id)

	cs := LightBorderCharSet()
	tl := buf.Cell(0, 0).Border
	if g := cs.Glyph(tl.Flags&BorderLeft != 0, tl.Flags&BorderTop != 0, tl.Flags&BorderRight != 0, tl.Flags&BorderBottom != 0); g != cs.TL {
		t.Errorf("top-left glyph = %q, want %q", g, cs.TL)
	}
}

func TestDrawBorderLineSharedIDFormsJunction(t *testing.T) {
	fg, bg := defaultFgBg()
	buf := NewCellBuffer(geometry.Size{W: 5, H: 5}, fg, bg)
	id := buf.NextBorderID()
	buf.DrawBorderLine(0, 2, 4, 2, id) // horizontal through middle
	buf.DrawBorderLine(2, 0, 2, 4, id) // vertical through middle, same id

	mid := buf.Cell(2, 2).Border
	if mid.Flags != BorderLeft|BorderRight|BorderTop|BorderBottom {
		t.Errorf("expected a full cross at the intersection, got %v", mid.Flags)
	}
}

func TestDrawBorderLineDifferentIDReplaces(t *testing.T) {
	fg, bg := defaultFgBg()
	buf := NewCellBuffer(geometry.Size{W: 5, H: 5}, fg, bg)
	id1 := buf.NextBorderID()
	id2 := buf.NextBorderID()
	buf.DrawBorderLine(0, 2, 4, 2, id1)
	buf.DrawBorderLine(2, 0, 2, 4, id2)

	mid := buf.Cell(2, 2).Border
	if mid.Flags != BorderTop|BorderBottom {
		t.Errorf("expected the later draw to replace rather than accumulate, got %v", mid.Flags)
	}
}

func TestDrawBorderBoxPanicsOnTooSmall(t *testing.T) {
	fg, bg := defaultFgBg()
	buf := NewCellBuffer(geometry.Size{W: 5, H: 5}, fg, bg)
	id := buf.NextBorderID()

	defer func() {
		if recover() == nil {
			t.Error("expected DrawBorderBox to panic for a too-small rect")
		}
	}()
	buf.DrawBorderBox(geometry.Rect{X1: 0, X2: 0, Y1: 0, Y2: 4}, id)
}
