// Package escape is the escape-code catalogue: builders for CSI/OSC/DEC
// sequences and the SGR parameter mapping, shared by the viewport renderer
// and the output controller. Every function here returns a ready-to-write
// byte string; none of them touch any I/O.
package escape

import (
	"fmt"
	"strings"
)

const (
	// ESC is the escape byte introducing every sequence below.
	ESC = "\x1b"
	// CSIPrefix is the Control Sequence Introducer.
	CSIPrefix = ESC + "["
	// OSCPrefix is the Operating System Command introducer.
	OSCPrefix = ESC + "]"
	// BEL terminates an OSC sequence (and rings the bell on its own).
	BEL = "\x07"
)

// CSI builds "ESC [ params final".
func CSI(params string, final byte) string {
	return CSIPrefix + params + string(final)
}

// DECSET builds "ESC [ ? mode h" (set a DEC private mode).
func DECSET(mode string) string {
	return CSIPrefix + "?" + mode + "h"
}

// DECRST builds "ESC [ ? mode l" (reset a DEC private mode).
func DECRST(mode string) string {
	return CSIPrefix + "?" + mode + "l"
}

// CursorPosition builds the cursor-placement sequence for a zero-based
// (x, y), emitted 1-based per the wire protocol.
func CursorPosition(x, y int) string {
	return fmt.Sprintf("%s%d;%dH", CSIPrefix, y+1, x+1)
}

// CursorPositionQuery requests a cursor-position reply (DSR 6).
func CursorPositionQuery() string {
	return CSIPrefix + "6n"
}

// EraseScreen erases the entire screen without moving the cursor.
func EraseScreen() string {
	return CSIPrefix + "2J"
}

// CursorVisible toggles DECTCEM.
func CursorVisible(show bool) string {
	if show {
		return DECSET("25")
	}
	return DECRST("25")
}

// CursorShapeParam maps a (type, blinking) pair to its DECSCUSR parameter.
func CursorShapeParam(shapeIndex int, blinking bool) int {
	base := shapeIndex*2 + 1 // block=1, underline=3, bar=5 when blinking
	if !blinking {
		base++
	}
	return base
}

// CursorShape builds "ESC [ n q" (DECSCUSR) for the given parameter.
func CursorShape(param int) string {
	return fmt.Sprintf("%s%dq", CSIPrefix, param)
}

// AltScreen toggles the alternate screen buffer (DECSET/RST 1049).
func AltScreen(on bool) string {
	if on {
		return DECSET("1049")
	}
	return DECRST("1049")
}

// LineWrap toggles auto-wrap mode (DECSET/RST 7).
func LineWrap(on bool) string {
	if on {
		return DECSET("7")
	}
	return DECRST("7")
}

// MouseTracking toggles SGR mouse tracking (DECSET/RST 1003;1006).
func MouseTracking(on bool) string {
	if on {
		return DECSET("1003;1006")
	}
	return DECRST("1003;1006")
}

// FocusTracking toggles focus in/out reporting (DECSET/RST 1004).
func FocusTracking(on bool) string {
	if on {
		return DECSET("1004")
	}
	return DECRST("1004")
}

// BracketedPaste toggles bracketed-paste mode (DECSET/RST 2004).
func BracketedPaste(on bool) string {
	if on {
		return DECSET("2004")
	}
	return DECRST("2004")
}

// SetTitle builds an OSC 0 window-title sequence.
func SetTitle(title string) string {
	return OSCPrefix + "0;" + title + BEL
}

// SetIcon builds an OSC 1 icon-name sequence.
func SetIcon(icon string) string {
	return OSCPrefix + "1;" + icon + BEL
}

// SGR builds "ESC [ params m" from a slice of already-formatted
// parameters (colors, effect on/off codes, or "0" for a full reset).
// An empty params slice builds a bare "ESC [ m" (equivalent to reset).
func SGR(params []string) string {
	return CSIPrefix + strings.Join(params, ";") + "m"
}
