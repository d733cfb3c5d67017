// Package output is the high-level escape-writing API over a byte sink:
// cursor visibility and appearance, alternate-screen and mode toggles,
// title/icon OSC sequences, the bell, and the platform collaborators
// (raw-mode toggle, window-size change) the core delegates rather than
// implements itself.
package output

import (
	"io"

	"github.com/duskterm/termcore/escape"
	"github.com/duskterm/termcore/viewport"
)

// CursorType re-exports the viewport's cursor shape family so callers of
// this package never need to import viewport just to pick a shape.
type CursorType = viewport.CursorType

const (
	CursorBlock     = viewport.CursorBlock
	CursorUnderline = viewport.CursorUnderline
	CursorBar       = viewport.CursorBar
)

// RawModeToggler is the platform collaborator that puts the controlling
// terminal into and out of raw mode. The core never talks termios
// directly; it only calls this contract.
type RawModeToggler interface {
	EnableRawMode() error
	DisableRawMode() error
}

// SizeProber is the platform collaborator that reports the controlling
// terminal's current size in cells.
type SizeProber interface {
	Size() (cols, rows int, err error)
}

// Controller writes the escape sequences that drive terminal-wide state:
// cursor visibility/appearance, alt-screen, line wrap, mouse/focus/paste
// mode toggles, window title/icon, and the bell. It holds no cell state —
// that is the viewport's job — only the terminal-wide toggles the spec's
// §4.4 lists.
type Controller struct {
	sink io.Writer
	raw  RawModeToggler
	size SizeProber

	rawEnabled bool
}

// New returns a Controller writing to sink. raw and size may be nil; a nil
// raw makes EnableRawMode/DisableRawMode no-ops, and a nil size makes
// TrySetSize report ok=false with a nil error, matching the collaborator contract described in
// spec.md §9 ("all are interfaces with no further assumptions").
func New(sink io.Writer, raw RawModeToggler, size SizeProber) *Controller {
	return &Controller{sink: sink, raw: raw, size: size}
}

func (c *Controller) write(s string) error {
	_, err := io.WriteString(c.sink, s)
	return err
}

// Bell rings the terminal bell.
func (c *Controller) Bell() error { return c.write(escape.BEL) }

// SetCursorVisible toggles DECTCEM.
func (c *Controller) SetCursorVisible(visible bool) error {
	return c.write(escape.CursorVisible(visible))
}

// SetCursorAppearance writes the DECSCUSR sequence for the given shape
// and blink state.
func (c *Controller) SetCursorAppearance(t CursorType, blinking bool) error {
	param := escape.CursorShapeParam(int(t), blinking)
	return c.write(escape.CursorShape(param))
}

// RequestCursorPosition writes a DSR 6 query. Callers must arm the
// decoder's AwaitCursorPositionReply before (or immediately after)
// calling this, or the reply will be classified as an ordinary CSI
// sequence instead of a CursorPositionReply event.
func (c *Controller) RequestCursorPosition() error {
	return c.write(escape.CursorPositionQuery())
}

// SetAltScreen toggles the alternate screen buffer (DECSET/RST 1049).
func (c *Controller) SetAltScreen(on bool) error {
	return c.write(escape.AltScreen(on))
}

// SetLineWrap toggles auto-wrap mode (DECSET/RST 7).
func (c *Controller) SetLineWrap(on bool) error {
	return c.write(escape.LineWrap(on))
}

// SetMouseTracking toggles SGR mouse tracking (DECSET/RST 1003;1006).
func (c *Controller) SetMouseTracking(on bool) error {
	return c.write(escape.MouseTracking(on))
}

// SetFocusTracking toggles focus in/out reporting (DECSET/RST 1004).
func (c *Controller) SetFocusTracking(on bool) error {
	return c.write(escape.FocusTracking(on))
}

// SetBracketedPaste toggles bracketed-paste mode (DECSET/RST 2004).
func (c *Controller) SetBracketedPaste(on bool) error {
	return c.write(escape.BracketedPaste(on))
}

// SetTitle writes an OSC 0 window-title sequence.
func (c *Controller) SetTitle(title string) error {
	return c.write(escape.SetTitle(title))
}

// SetIcon writes an OSC 1 icon-name sequence.
func (c *Controller) SetIcon(icon string) error {
	return c.write(escape.SetIcon(icon))
}

// EnableRawMode delegates to the platform raw-mode collaborator. It is a
// no-op returning nil if no collaborator was supplied.
func (c *Controller) EnableRawMode() error {
	if c.raw == nil {
		return nil
	}
	if err := c.raw.EnableRawMode(); err != nil {
		return err
	}
	c.rawEnabled = true
	return nil
}

// DisableRawMode delegates to the platform raw-mode collaborator. It is a
// no-op returning nil if no collaborator was supplied or raw mode was
// never enabled.
func (c *Controller) DisableRawMode() error {
	if c.raw == nil || !c.rawEnabled {
		return nil
	}
	if err := c.raw.DisableRawMode(); err != nil {
		return err
	}
	c.rawEnabled = false
	return nil
}

// TrySetSize asks the size-probe collaborator for the terminal's current
// size. It returns ok=false (no error) when no collaborator was
// supplied, matching the spec's "platform code must supply a size-change
// notifier" contract without forcing every embedder to implement one.
func (c *Controller) TrySetSize() (cols, rows int, ok bool, err error) {
	if c.size == nil {
		return 0, 0, false, nil
	}
	cols, rows, err = c.size.Size()
	if err != nil {
		return 0, 0, false, err
	}
	return cols, rows, true, nil
}
