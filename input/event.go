package input

import "github.com/duskterm/termcore/geometry"

// Event is the discriminated union of everything the decoder can emit.
// Each concrete type below implements Event via the marker method.
type Event interface {
	isEvent()
}

// Modifier is the keyboard modifier bitset carried by mouse events.
// KeyStroke carries the same three modifiers as separate bool fields.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModMeta
	ModCtrl
)

func (m Modifier) Has(f Modifier) bool { return m&f != 0 }

// KeyStroke is a classified keyboard key with its modifier state. Rune is
// only meaningful when Key is KeyRune: the base character the modifiers
// were applied to (e.g. Ctrl-A carries Rune 'a').
type KeyStroke struct {
	Key   Key
	Rune  rune
	Shift bool
	Meta  bool
	Ctrl  bool
}

func (KeyStroke) isEvent() {}

// UnicodeChar is a printable non-ASCII grapheme that did not classify as
// any recognized key sequence.
type UnicodeChar struct {
	Grapheme string
}

func (UnicodeChar) isEvent() {}

// PasteText is the fully-accumulated body of a bracketed (or inferred)
// paste.
type PasteText struct {
	Raw                string
	FromBracketedPaste bool
}

func (PasteText) isEvent() {}

// MouseButton enumerates the buttons a mouse event can report.
type MouseButton int

const (
	MouseButtonNone MouseButton = iota
	MouseButtonLeft
	MouseButtonMiddle
	MouseButtonRight
	MouseButton8
	MouseButton9
	MouseButton10
	MouseButton11
)

// MouseState distinguishes press from release for MousePress.
type MouseState int

const (
	MouseStatePressed MouseState = iota
	MouseStateReleased
)

// MousePress is a button press or release at a screen position.
type MousePress struct {
	Position geometry.Position
	Button   MouseButton
	State    MouseState
	Mods     Modifier
}

func (MousePress) isEvent() {}

// MouseMotion is pointer movement, with or without a button held.
type MouseMotion struct {
	Position geometry.Position
	Button   *MouseButton
	Mods     Modifier
}

func (MouseMotion) isEvent() {}

// MouseScroll is a scroll-wheel event with a direction vector.
type MouseScroll struct {
	Position geometry.Position
	Vec      geometry.Offset
	Mods     Modifier
}

func (MouseScroll) isEvent() {}

// FocusChange reports the terminal window gaining or losing focus.
type FocusChange struct {
	Gained bool
}

func (FocusChange) isEvent() {}

// CursorPositionReply is the terminal's answer to a DSR 6 query.
type CursorPositionReply struct {
	Position geometry.Position
}

func (CursorPositionReply) isEvent() {}

// DeviceAttributes is a parsed DA/DA2 response.
type DeviceAttributes struct {
	Kind    byte // '?' or '>'
	Type    int
	Version int
	Extra   []int
}

func (DeviceAttributes) isEvent() {}

// Unhandled is a byte/string span the decoder recognized as an escape
// sequence shape but could not classify, or a stray control character.
type Unhandled struct {
	Bytes string
}

func (Unhandled) isEvent() {}

// RawProcessed marks a span of input that was successfully consumed by
// one of the chunk-level matchers (paste/focus/cursor-reply/mouse).
type RawProcessed struct {
	Raw string
}

func (RawProcessed) isEvent() {}
