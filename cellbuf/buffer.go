package cellbuf

import (
	"github.com/rivo/uniseg"

	"github.com/duskterm/termcore/color"
	"github.com/duskterm/termcore/geometry"
)

// CellBuffer is the in-memory grid of cells making up the visible screen.
// It grows on resize to a larger size, preserving existing content, and
// never shrinks storage on resize to a smaller size — trailing rows and
// columns simply become logically unused until the buffer grows again.
type CellBuffer struct {
	rows       [][]TerminalCell
	rowChanged []bool
	size       geometry.Size
	capacity   geometry.Size
	defaultFg  color.Foreground
	defaultBg  color.Color
	nextID     uint64
}

// NewCellBuffer allocates a buffer of the given size, filled with the
// supplied default fg/bg.
func NewCellBuffer(size geometry.Size, defaultFg color.Foreground, defaultBg color.Color) *CellBuffer {
	b := &CellBuffer{defaultFg: defaultFg, defaultBg: defaultBg}
	b.Resize(size)
	return b
}

// Size returns the buffer's current logical size.
func (b *CellBuffer) Size() geometry.Size { return b.size }

// Bounds returns the inclusive rectangle covering the buffer's current
// logical size.
func (b *CellBuffer) Bounds() geometry.Rect { return geometry.RectFromSize(b.size) }

// Resize grows the buffer's storage to cover at least the requested size
// (existing cells retain their committed state) and sets the new logical
// size. Shrinking never releases storage.
func (b *CellBuffer) Resize(size geometry.Size) {
	if size.H > b.capacity.H {
		for y := b.capacity.H; y < size.H; y++ {
			b.rows = append(b.rows, nil)
			b.rowChanged = append(b.rowChanged, false)
		}
		b.capacity.H = size.H
	}
	if size.W > b.capacity.W {
		for y := 0; y < b.capacity.H; y++ {
			b.rows[y] = growRow(b.rows[y], size.W, b.defaultFg, b.defaultBg)
		}
		b.capacity.W = size.W
	}
	// Newly allocated rows (from the height growth above) need to be sized
	// to the current capacity width.
	for y := 0; y < b.capacity.H; y++ {
		if len(b.rows[y]) < b.capacity.W {
			b.rows[y] = growRow(b.rows[y], b.capacity.W, b.defaultFg, b.defaultBg)
		}
	}
	b.size = size
}

func growRow(row []TerminalCell, width int, fg color.Foreground, bg color.Color) []TerminalCell {
	for len(row) < width {
		row = append(row, NewTerminalCell(fg, bg))
	}
	return row
}

// Reset resets every cell in the buffer's current logical bounds to
// (fg, bg) and clears all dirty-row flags.
func (b *CellBuffer) Reset(fg color.Foreground, bg color.Color) {
	for y := 0; y < b.size.H; y++ {
		for x := 0; x < b.size.W; x++ {
			b.rows[y][x] = NewTerminalCell(fg, bg)
		}
		b.rowChanged[y] = false
	}
}

// Cell returns a pointer to the cell at (x, y), or nil if out of bounds.
func (b *CellBuffer) Cell(x, y int) *TerminalCell {
	if x < 0 || y < 0 || x >= b.size.W || y >= b.size.H {
		return nil
	}
	return &b.rows[y][x]
}

// RowChanged reports whether row y is dirty.
func (b *CellBuffer) RowChanged(y int) bool {
	if y < 0 || y >= b.size.H {
		return false
	}
	return b.rowChanged[y]
}

// SetRowChanged marks row y dirty or clean.
func (b *CellBuffer) SetRowChanged(y int, changed bool) {
	if y < 0 || y >= b.size.H {
		return
	}
	b.rowChanged[y] = changed
}

// NextBorderID allocates a fresh 60-bit border-draw identifier.
func (b *CellBuffer) NextBorderID() BorderDrawIdentifier {
	b.nextID++
	return BorderDrawIdentifier(b.nextID) & borderIDMask
}

func (b *CellBuffer) markRow(y int) {
	if y >= 0 && y < b.size.H {
		b.rowChanged[y] = true
	}
}

// DrawPoint draws a single glyph at (x, y), clipped to the buffer bounds.
func (b *CellBuffer) DrawPoint(x, y int, fg *color.Foreground, bg *color.Color) {
	c := b.Cell(x, y)
	if c == nil {
		return
	}
	c.Draw(fg, bg)
	b.markRow(y)
}

// DrawRect fills rect with fg/bg, clipped to the buffer bounds.
func (b *CellBuffer) DrawRect(rect geometry.Rect, fg *color.Foreground, bg *color.Color) {
	clipped, ok := rect.Clip(b.Bounds())
	if !ok {
		return
	}
	for y := clipped.Y1; y <= clipped.Y2; y++ {
		for x := clipped.X1; x <= clipped.X2; x++ {
			b.rows[y][x].Draw(fg, bg)
		}
		b.markRow(y)
	}
}

// DrawText writes s starting at (x, y) using the ASCII fast path: each
// byte in [32,126] (excluding 127) becomes a Foreground glyph. Non-ASCII
// or control bytes are skipped — callers with non-ASCII content should
// use DrawUnicodeText instead.
func (b *CellBuffer) DrawText(x, y int, s string, style color.ForegroundStyle) {
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch < 32 || ch > 126 {
			continue
		}
		fg := color.Foreground{Style: style, CodeUnit: rune(ch)}
		b.DrawPoint(x+i, y, &fg, nil)
	}
}

// DrawUnicodeText writes s starting at (x, y), walking grapheme clusters
// and placing double-width graphemes across two adjacent cells with
// neighbour fix-up as described on tryDrawGrapheme.
func (b *CellBuffer) DrawUnicodeText(x, y int, s string, style color.ForegroundStyle) {
	col := x
	state := -1
	remaining := s
	for len(remaining) > 0 {
		cluster, rest, clusterWidth, newState := uniseg.FirstGraphemeClusterInString(remaining, state)
		state = newState
		remaining = rest

		if clusterWidth <= 0 {
			col++
			continue
		}

		if clusterWidth == 1 && len(cluster) == 1 {
			fg := color.Foreground{Style: style, CodeUnit: rune(cluster[0])}
			b.DrawPoint(col, y, &fg, nil)
			col++
			continue
		}

		b.tryDrawGrapheme(col, y, cluster, clusterWidth, style)
		col += clusterWidth
	}
}

// tryDrawGrapheme implements the safe double-width grapheme placement
// algorithm: detach any grapheme this write would clobber, then write
// the left cell (and the right cell's passive marker, for width 2).
func (b *CellBuffer) tryDrawGrapheme(x, y int, data string, width int, style color.ForegroundStyle) {
	cell := b.Cell(x, y)
	if cell == nil {
		return
	}

	if cell.Grapheme != nil && cell.Grapheme.IsSecond {
		if left := b.Cell(x-1, y); left != nil && left.Grapheme != nil && left.Grapheme.Width == 2 {
			left.DetachGrapheme()
			b.markRow(y)
		}
		cell.DetachGrapheme()
	} else if cell.Grapheme != nil && cell.Grapheme.Width == 2 {
		if right := b.Cell(x+1, y); right != nil {
			right.DetachGrapheme()
		}
		cell.DetachGrapheme()
	}

	if width == 2 {
		right := b.Cell(x+1, y)
		if right == nil {
			return
		}
		if right.Grapheme != nil {
			b.detachGraphemeSpan(x+1, y)
		}
		right.Grapheme = &Grapheme{Data: data, Width: 2, IsSecond: true}
	}

	cell.Grapheme = &Grapheme{Data: data, Width: width, IsSecond: false}
	b.markRow(y)
}

// DetachGraphemeSpan clears whichever grapheme owns the cell at (x, y),
// including its partner cell if it is double-width, and marks the row
// dirty so both halves repaint as plain cells.
func (b *CellBuffer) DetachGraphemeSpan(x, y int) {
	b.detachGraphemeSpan(x, y)
	b.markRow(y)
}

// detachGraphemeSpan clears whichever grapheme owns the cell at (x, y),
// including its partner cell if it is double-width.
func (b *CellBuffer) detachGraphemeSpan(x, y int) {
	cell := b.Cell(x, y)
	if cell == nil || cell.Grapheme == nil {
		return
	}
	if cell.Grapheme.IsSecond {
		if left := b.Cell(x-1, y); left != nil {
			left.DetachGrapheme()
		}
		cell.DetachGrapheme()
		return
	}
	if cell.Grapheme.Width == 2 {
		if right := b.Cell(x+1, y); right != nil {
			right.DetachGrapheme()
		}
	}
	cell.DetachGrapheme()
}

// DrawBorderLine draws a horizontal or vertical border segment from
// (x1,y1) to (x2,y2) (which must be axis-aligned), merging adjacency
// flags into each touched cell under the given drawId.
func (b *CellBuffer) DrawBorderLine(x1, y1, x2, y2 int, drawID BorderDrawIdentifier) {
	if x1 == x2 {
		b.drawVerticalBorder(x1, y1, y2, drawID)
		return
	}
	if y1 == y2 {
		b.drawHorizontalBorder(y1, x1, x2, drawID)
		return
	}
	panic("cellbuf: DrawBorderLine requires an axis-aligned segment")
}

func (b *CellBuffer) drawHorizontalBorder(y, x1, x2 int, drawID BorderDrawIdentifier) {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		cell := b.Cell(x, y)
		if cell == nil {
			continue
		}
		flags := BorderLeft | BorderRight
		if x == x1 {
			flags &^= BorderLeft
		}
		if x == x2 {
			flags &^= BorderRight
		}
		cell.Border.Apply(flags, drawID)
	}
	b.markRow(y)
}

func (b *CellBuffer) drawVerticalBorder(x, y1, y2 int, drawID BorderDrawIdentifier) {
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		cell := b.Cell(x, y)
		if cell == nil {
			continue
		}
		flags := BorderTop | BorderBottom
		if y == y1 {
			flags &^= BorderTop
		}
		if y == y2 {
			flags &^= BorderBottom
		}
		cell.Border.Apply(flags, drawID)
		b.markRow(y)
	}
}

// DrawBorderBox draws a rectangular border around rect using drawID for
// all four sides, so they combine into T-junctions and crosses where they
// meet other borders sharing the same identifier. rect must be at least
// 2x2.
func (b *CellBuffer) DrawBorderBox(rect geometry.Rect, drawID BorderDrawIdentifier) {
	if rect.Width() < 2 || rect.Height() < 2 {
		panic("cellbuf: DrawBorderBox requires width>=2 and height>=2")
	}
	b.DrawBorderLine(rect.X1, rect.Y1, rect.X2, rect.Y1, drawID)
	b.DrawBorderLine(rect.X1, rect.Y2, rect.X2, rect.Y2, drawID)
	b.DrawBorderLine(rect.X1, rect.Y1, rect.X1, rect.Y2, drawID)
	b.DrawBorderLine(rect.X2, rect.Y1, rect.X2, rect.Y2, drawID)
}
