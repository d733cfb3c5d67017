// Package cellbuf implements the cell-addressed back buffer: TerminalCell,
// Grapheme attachment, border overlay state, and the resize-preserving,
// dirty-row-tracked CellBuffer grid.
package cellbuf

import (
	"github.com/duskterm/termcore/color"
)

// Grapheme is a user-perceived character attached to a cell. Width-2
// graphemes occupy two adjacent cells: the left cell has IsSecond=false,
// the right cell has IsSecond=true with the same Data.
type Grapheme struct {
	Data     string
	Width    int
	IsSecond bool
}

// BorderFlags encodes which of the four cardinal directions a border
// overlay extends into from a cell.
type BorderFlags uint8

const (
	BorderLeft BorderFlags = 1 << iota
	BorderTop
	BorderRight
	BorderBottom
)

// BorderDrawIdentifier is a 60-bit token identifying a single
// drawBorderLine/drawBorderBox call (or a caller-shared union of calls).
type BorderDrawIdentifier uint64

const borderIDMask BorderDrawIdentifier = (1 << 60) - 1

// BorderState holds the accumulated adjacency flags for a cell's border
// overlay, plus the identifier of the draw call(s) that produced them.
// Flags OR together only when the incoming identifier matches the stored
// one; a draw with a different identifier replaces the flags outright.
type BorderState struct {
	Flags BorderFlags
	id    BorderDrawIdentifier
	set   bool
}

// Apply merges flags drawn under id into the border state, following the
// accumulate-or-replace rule described above.
func (b *BorderState) Apply(flags BorderFlags, id BorderDrawIdentifier) {
	if b.set && b.id == id {
		b.Flags |= flags
	} else {
		b.Flags = flags
		b.id = id
		b.set = true
	}
}

// ID returns the identifier the current border flags were accumulated
// under, and whether any border has been drawn at all.
func (b BorderState) ID() (BorderDrawIdentifier, bool) { return b.id, b.set }

// TerminalCell is a single cell in the back buffer: committed and pending
// foreground/background, an optional grapheme attachment, and border
// overlay state.
type TerminalCell struct {
	Fg color.Foreground
	Bg color.Color

	pendingFg *color.Foreground
	pendingBg *color.Color

	Grapheme *Grapheme
	Border   BorderState
}

// NewTerminalCell returns a cell committed to the given fg/bg with no
// pending changes, grapheme, or border state.
func NewTerminalCell(fg color.Foreground, bg color.Color) TerminalCell {
	return TerminalCell{Fg: fg, Bg: bg}
}

// Draw records new pending fg/bg values. A nil argument leaves that half
// of the pair untouched.
func (c *TerminalCell) Draw(fg *color.Foreground, bg *color.Color) {
	if fg != nil {
		f := *fg
		c.pendingFg = &f
	}
	if bg != nil {
		b := *bg
		c.pendingBg = &b
	}
}

// Changed reports whether this cell has a pending fg/bg value, or is the
// left half of a grapheme (graphemes are always re-painted on update).
func (c *TerminalCell) Changed() bool {
	if c.pendingFg != nil || c.pendingBg != nil {
		return true
	}
	return c.Grapheme != nil && !c.Grapheme.IsSecond
}

// CalculateDifference commits any pending fg/bg onto the committed values
// and reports whether the committed (fg, bg) pair actually differs from
// what it was before this call.
func (c *TerminalCell) CalculateDifference() bool {
	changed := false
	if c.pendingFg != nil {
		if !c.pendingFg.Style.Equals(c.Fg.Style) || c.pendingFg.CodeUnit != c.Fg.CodeUnit {
			changed = true
		}
		c.Fg = *c.pendingFg
		c.pendingFg = nil
	}
	if c.pendingBg != nil {
		if !c.pendingBg.Equals(c.Bg) {
			changed = true
		}
		c.Bg = *c.pendingBg
		c.pendingBg = nil
	}
	return changed
}

// DetachGrapheme clears the grapheme attachment, used when a caller draws
// a plain foreground glyph over a cell that used to carry a grapheme.
func (c *TerminalCell) DetachGrapheme() {
	c.Grapheme = nil
}

// PendingGlyphCodeUnit reports the code unit of a pending (not yet
// committed) foreground draw, used by the renderer to detect a plain
// glyph drawn on top of a cell that still carries a grapheme attachment.
func (c *TerminalCell) PendingGlyphCodeUnit() (rune, bool) {
	if c.pendingFg == nil {
		return 0, false
	}
	return c.pendingFg.CodeUnit, true
}
