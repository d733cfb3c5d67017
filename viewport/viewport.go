// Package viewport is the diff-driven renderer: it owns a cellbuf.CellBuffer,
// tracks the terminal's actual cursor position and SGR state, and on each
// Update() walks the dirty rows emitting the minimal cursor moves, SGR
// transitions, and glyph/grapheme bytes needed to reconcile the physical
// terminal with the buffer.
package viewport

import (
	"io"
	"strings"

	"github.com/duskterm/termcore/cellbuf"
	"github.com/duskterm/termcore/color"
	"github.com/duskterm/termcore/escape"
	"github.com/duskterm/termcore/geometry"
)

// CursorType is the DECSCUSR shape family (block/underline/bar).
type CursorType int

const (
	CursorBlock CursorType = iota
	CursorUnderline
	CursorBar
)

// Viewport is the diff-driven renderer. It is not safe for concurrent use;
// the terminal I/O core touches it from a single logical thread, per the
// package's cooperative scheduling contract.
type Viewport struct {
	buf  *cellbuf.CellBuffer
	sink io.Writer
	out  strings.Builder

	cursorPosition geometry.Position
	cursorHidden   bool
	cursorType     CursorType
	cursorBlinking bool

	currentStyle color.ForegroundStyle
	currentBg    color.Color

	backgroundFill *color.Color

	defaultFg color.Foreground
	defaultBg color.Color

	active bool
}

// New allocates a Viewport over sink with the given initial size and
// default fg/bg, not yet activated.
func New(sink io.Writer, size geometry.Size, defaultFg color.Foreground, defaultBg color.Color) *Viewport {
	return &Viewport{
		buf:          cellbuf.NewCellBuffer(size, defaultFg, defaultBg),
		sink:         sink,
		defaultFg:    defaultFg,
		defaultBg:    defaultBg,
		currentStyle: defaultFg.Style,
		currentBg:    defaultBg,
	}
}

// Buffer returns the underlying cell buffer for direct inspection; all
// mutation should go through the Viewport's own Draw* methods so dirty
// tracking stays consistent.
func (v *Viewport) Buffer() *cellbuf.CellBuffer { return v.buf }

// Active reports whether Activate has been called without a matching
// Deactivate.
func (v *Viewport) Active() bool { return v.active }

// Activate enters viewport mode at the given size: alternate screen on,
// mouse reporting on, cursor placed at the origin, screen erased, and the
// buffer resized to match.
func (v *Viewport) Activate(size geometry.Size) {
	v.out.WriteString(escape.AltScreen(true))
	v.out.WriteString(escape.MouseTracking(true))
	v.cursorPosition = geometry.Position{}
	v.out.WriteString(escape.CursorPosition(0, 0))
	v.out.WriteString(escape.EraseScreen())
	v.buf.Resize(size)
	v.clampCursor()
	v.flush()
	v.active = true
}

// Deactivate leaves viewport mode: the same alternate-screen and mouse
// sequences used by Activate, run in reverse, plus a full SGR reset.
func (v *Viewport) Deactivate() {
	v.out.WriteString(escape.AltScreen(false))
	v.out.WriteString(escape.MouseTracking(false))
	v.out.WriteString(escape.SGR([]string{"0"}))
	v.flush()
	v.active = false
}

func (v *Viewport) clampCursor() {
	size := v.buf.Size()
	if v.cursorPosition.X >= size.W {
		v.cursorPosition.X = size.W - 1
	}
	if v.cursorPosition.Y >= size.H {
		v.cursorPosition.Y = size.H - 1
	}
	if v.cursorPosition.X < 0 {
		v.cursorPosition.X = 0
	}
	if v.cursorPosition.Y < 0 {
		v.cursorPosition.Y = 0
	}
}

// Resize grows the underlying buffer's storage and logical size.
func (v *Viewport) Resize(size geometry.Size) {
	v.buf.Resize(size)
	v.clampCursor()
}

// SetCursorHidden toggles whether Update() parks the cursor visibly; the
// actual DECTCEM escape is the output controller's responsibility.
func (v *Viewport) SetCursorHidden(hidden bool) { v.cursorHidden = hidden }

// SetCursorAppearance records the shape/blink state the output controller
// should reflect the next time it writes a DECSCUSR sequence.
func (v *Viewport) SetCursorAppearance(t CursorType, blinking bool) {
	v.cursorType = t
	v.cursorBlinking = blinking
}

// CursorAppearance returns the last-set cursor shape and blink state.
func (v *Viewport) CursorAppearance() (CursorType, bool) { return v.cursorType, v.cursorBlinking }

// DrawColor fills the entire viewport with bg. When optimizeByClear is
// set, it records the fill for Update() to emit as a single SGR-then-erase
// pair instead of per-cell writes, and resets every cell (and dirty flag)
// to (defaultFg, bg) immediately.
func (v *Viewport) DrawColor(bg color.Color, optimizeByClear bool) {
	if optimizeByClear {
		v.backgroundFill = &bg
		v.buf.Reset(v.defaultFg, bg)
		return
	}
	v.buf.DrawRect(v.buf.Bounds(), &v.defaultFg, &bg)
}

// DrawPoint, DrawRect, DrawText, DrawUnicodeText, DrawBorderLine,
// DrawBorderBox, and NextBorderID delegate to the underlying cell buffer;
// the viewport only adds the diff/emit pass on top.

func (v *Viewport) DrawPoint(x, y int, fg *color.Foreground, bg *color.Color) {
	v.buf.DrawPoint(x, y, fg, bg)
}

func (v *Viewport) DrawRect(rect geometry.Rect, fg *color.Foreground, bg *color.Color) {
	v.buf.DrawRect(rect, fg, bg)
}

func (v *Viewport) DrawText(x, y int, s string, style color.ForegroundStyle) {
	v.buf.DrawText(x, y, s, style)
}

func (v *Viewport) DrawUnicodeText(x, y int, s string, style color.ForegroundStyle) {
	v.buf.DrawUnicodeText(x, y, s, style)
}

func (v *Viewport) DrawBorderLine(x1, y1, x2, y2 int, drawID cellbuf.BorderDrawIdentifier) {
	v.buf.DrawBorderLine(x1, y1, x2, y2, drawID)
}

func (v *Viewport) DrawBorderBox(rect geometry.Rect, drawID cellbuf.BorderDrawIdentifier) {
	v.buf.DrawBorderBox(rect, drawID)
}

func (v *Viewport) NextBorderID() cellbuf.BorderDrawIdentifier { return v.buf.NextBorderID() }

// Update runs the diff pass: it walks every dirty row, emits the minimal
// cursor moves, SGR transitions, and glyph/grapheme bytes needed to bring
// the physical terminal in sync with the buffer, and flushes the result
// to the sink in one write.
func (v *Viewport) Update() {
	if v.backgroundFill != nil {
		v.out.WriteString(v.transition(color.DefaultForegroundStyle(), *v.backgroundFill))
		v.currentStyle = color.DefaultForegroundStyle()
		v.currentBg = *v.backgroundFill
		v.out.WriteString(escape.EraseScreen())
		v.backgroundFill = nil
	}

	oldCursor := v.cursorPosition
	size := v.buf.Size()

	for y := 0; y < size.H; y++ {
		if !v.buf.RowChanged(y) {
			continue
		}
		v.buf.SetRowChanged(y, false)

		for x := 0; x < size.W; x++ {
			cell := v.buf.Cell(x, y)
			if cell == nil || !cell.Changed() {
				continue
			}

			if cell.Grapheme != nil {
				width, ok := v.validateGraphemeAndCalculateDiff(x, y, cell)
				if ok {
					if !cell.Grapheme.IsSecond {
						v.moveCursorTo(x, y)
						v.cursorPosition.X += width
						v.out.WriteString(v.transition(cell.Fg.Style, cell.Bg))
						v.out.WriteString(cell.Grapheme.Data)
						v.buf.SetRowChanged(y, true)
						x += width - 1
					}
					continue
				}
				// The grapheme was detached by validateGraphemeAndCalculateDiff;
				// fall through and repaint this cell as a plain glyph below.
			}

			if cell.CalculateDifference() {
				v.moveCursorTo(x, y)
				v.cursorPosition.X++
				v.out.WriteString(v.transition(cell.Fg.Style, cell.Bg))
				v.out.WriteRune(cell.Fg.CodeUnit)
			}
		}
	}

	if !v.cursorHidden {
		v.moveCursorTo(oldCursor.X, oldCursor.Y)
		v.cursorPosition = oldCursor
	}
	v.flush()
}

// validateGraphemeAndCalculateDiff enforces that a grapheme cell overdrawn
// with a plain (non-grapheme) foreground gets detached rather than
// silently painted as if the grapheme still stood: if cell carries a
// pending foreground glyph (CodeUnit != 0), both halves of the grapheme
// are detached and the row is marked dirty again, and this reports false;
// each half is then painted as an ordinary cell once it has a pending
// fg/bg of its own. Otherwise it commits the cell's pending fg/bg and
// reports true alongside the grapheme's width.
func (v *Viewport) validateGraphemeAndCalculateDiff(x, y int, cell *cellbuf.TerminalCell) (width int, ok bool) {
	if code, has := cell.PendingGlyphCodeUnit(); has && code != 0 {
		v.buf.DetachGraphemeSpan(x, y)
		return 0, false
	}
	width = cell.Grapheme.Width
	cell.CalculateDifference()
	return width, true
}

func (v *Viewport) moveCursorTo(x, y int) {
	if v.cursorPosition.X == x && v.cursorPosition.Y == y {
		return
	}
	v.out.WriteString(escape.CursorPosition(x, y))
	v.cursorPosition = geometry.Position{X: x, Y: y}
}

// transition emits the minimal SGR bytes to move from the viewport's
// current (effects, fg, bg) state to (toStyle, toBg), and updates the
// tracked current state to match.
func (v *Viewport) transition(toStyle color.ForegroundStyle, toBg color.Color) string {
	s := sgrTransition(v.currentStyle, v.currentBg, toStyle, toBg)
	v.currentStyle = toStyle
	v.currentBg = toBg
	return s
}

func (v *Viewport) flush() {
	if v.out.Len() == 0 {
		return
	}
	io.WriteString(v.sink, v.out.String())
	v.out.Reset()
}
