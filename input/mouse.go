package input

import (
	"strconv"

	"github.com/duskterm/termcore/geometry"
)

// decodeMouseButtonByte turns the low button bits of an X10/SGR mouse
// record into a button identity, wheel direction, and modifier bits.
// Bit 6 (0x40) flags extra group 1 (the scroll wheel); bit 7 (0x80) flags
// extra group 2 (buttons 8-11) — the two groups are mutually exclusive.
// Bits 2-4 carry Shift/Meta/Ctrl.
func decodeMouseButtonByte(btn int) (MouseButton, bool, geometry.Offset, Modifier) {
	var mods Modifier
	if btn&0x4 != 0 {
		mods |= ModShift
	}
	if btn&0x8 != 0 {
		mods |= ModMeta
	}
	if btn&0x10 != 0 {
		mods |= ModCtrl
	}

	low := btn & 0x3
	if btn&0x40 != 0 {
		switch low {
		case 0:
			return MouseButtonNone, true, geometry.Offset{DX: 0, DY: -1}, mods
		case 1:
			return MouseButtonNone, true, geometry.Offset{DX: 0, DY: 1}, mods
		case 2:
			return MouseButtonNone, true, geometry.Offset{DX: 1, DY: 0}, mods
		default:
			return MouseButtonNone, true, geometry.Offset{DX: -1, DY: 0}, mods
		}
	}
	if btn&0x80 != 0 {
		switch low {
		case 0:
			return MouseButton8, false, geometry.Offset{}, mods
		case 1:
			return MouseButton9, false, geometry.Offset{}, mods
		case 2:
			return MouseButton10, false, geometry.Offset{}, mods
		default:
			return MouseButton11, false, geometry.Offset{}, mods
		}
	}

	switch low {
	case 0:
		return MouseButtonLeft, false, geometry.Offset{}, mods
	case 1:
		return MouseButtonMiddle, false, geometry.Offset{}, mods
	case 2:
		return MouseButtonRight, false, geometry.Offset{}, mods
	default:
		return MouseButtonNone, false, geometry.Offset{}, mods
	}
}

// tryParseSGRMouse looks for an SGR mouse record ("ESC[<b;x;yM" or
// "...m") at the start of s. It mirrors the incremental state machine
// real terminal libraries use to scan a byte buffer, but operates over
// a string since the decoder already holds a contiguous chunk.
//
// Returns the event (if any), whether a record was recognized, and the
// number of bytes consumed from s.
func (d *Decoder) tryParseSGRMouse(s string) (Event, bool, int) {
	if len(s) < 3 || s[0] != 0x1b || s[1] != '[' || s[2] != '<' {
		return nil, false, 0
	}
	i := 3
	btn, x, y := 0, 0, 0
	field := 0
	val, neg, dig := 0, false, false

	flush := func() {
		if neg {
			val = -val
		}
		switch field {
		case 0:
			btn = val
		case 1:
			x = val - 1
		case 2:
			y = val - 1
		}
		val, neg, dig = 0, false, false
		field++
	}

	for ; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			val = val*10 + int(c-'0')
			dig = true
		case c == '-' && !dig:
			neg = true
		case c == ';':
			if field > 1 {
				return nil, false, 0
			}
			flush()
		case c == 'M' || c == 'm':
			flush()
			released := c == 'm'
			return d.buildSGRMouseEvent(btn, x, y, released), true, i + 1
		default:
			return nil, false, 0
		}
	}
	return nil, false, 0
}

func (d *Decoder) buildSGRMouseEvent(btn, x, y int, released bool) Event {
	button, isWheel, wheelVec, mods := decodeMouseButtonByte(btn)
	pos := geometry.Position{X: x, Y: y}
	motion := btn&32 != 0

	if isWheel {
		return MouseScroll{Position: pos, Vec: wheelVec, Mods: mods}
	}
	if released {
		d.mouseButtonDown = false
		return MousePress{Position: pos, Button: MouseButtonNone, State: MouseStateReleased, Mods: mods}
	}
	if motion {
		if !d.mouseButtonDown {
			return MouseMotion{Position: pos, Mods: mods}
		}
		b := button
		return MouseMotion{Position: pos, Button: &b, Mods: mods}
	}
	d.mouseButtonDown = true
	return MousePress{Position: pos, Button: button, State: MouseStatePressed, Mods: mods}
}

// tryParseX10Mouse recognizes the legacy fixed-width X10 record
// "ESC[M<btn+32><x+32><y+32>" (x and y 1-based), each field a single byte
// offset by 32, so the largest zero-based coordinate a record can carry
// is 222 (byte 0xff).
func (d *Decoder) tryParseX10Mouse(s string) (Event, bool, int) {
	if len(s) < 3 || s[0] != 0x1b || s[1] != '[' || s[2] != 'M' {
		return nil, false, 0
	}
	if len(s) < 6 {
		return nil, false, 0
	}
	btn := int(s[3]) - 32
	x := int(s[4]) - 32 - 1
	y := int(s[5]) - 32 - 1
	return d.buildSGRMouseEvent(btn, x, y, false), true, 6
}

// tryParseURXVTMouse recognizes the rxvt-unicode form
// "ESC[<btn>;<x>;<y>M" (no '<' marker, terminated only by 'M').
func (d *Decoder) tryParseURXVTMouse(s string) (Event, bool, int) {
	if len(s) < 3 || s[0] != 0x1b || s[1] != '[' {
		return nil, false, 0
	}
	i := 2
	btn, x, y := 0, 0, 0
	field := 0
	val := 0
	dig := false

	flush := func() {
		switch field {
		case 0:
			btn = val
		case 1:
			x = val - 1
		case 2:
			y = val - 1
		}
		val = 0
		field++
	}

	for ; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			val = val*10 + int(c-'0')
			dig = true
		case c == ';' && dig:
			flush()
			dig = false
		case c == 'M' && dig:
			flush()
			return d.buildSGRMouseEvent(btn, x, y, false), true, i + 1
		default:
			return nil, false, 0
		}
	}
	return nil, false, 0
}

// tryParseDECLocator recognizes a DEC locator report
// "ESC[<event>;<button>;<row>;<col>;<page>&w" (DECLRP), the VT300 mouse
// form. Event codes: 1=press, 2=release, anything else is motion.
func (d *Decoder) tryParseDECLocator(s string) (Event, bool, int) {
	if len(s) < 3 || s[0] != 0x1b || s[1] != '[' {
		return nil, false, 0
	}
	i := 2
	for i < len(s) && (s[i] == ';' || (s[i] >= '0' && s[i] <= '9')) {
		i++
	}
	if i+1 >= len(s) || s[i] != '&' || s[i+1] != 'w' {
		return nil, false, 0
	}
	fields := splitParams(s[2:i])
	get := func(idx int) int {
		if idx >= len(fields) {
			return 0
		}
		v, _ := strconv.Atoi(fields[idx])
		return v
	}
	eventCode, button, row, col := get(0), get(1), get(2), get(3)
	pos := geometry.Position{X: col - 1, Y: row - 1}
	n := i + 2

	switch eventCode {
	case 1:
		return MousePress{Position: pos, Button: decLocatorButton(button), State: MouseStatePressed}, true, n
	case 2:
		return MousePress{Position: pos, Button: decLocatorButton(button), State: MouseStateReleased}, true, n
	default:
		return MouseMotion{Position: pos}, true, n
	}
}

func decLocatorButton(b int) MouseButton {
	switch b {
	case 2:
		return MouseButtonLeft
	case 4:
		return MouseButtonMiddle
	case 8:
		return MouseButtonRight
	default:
		return MouseButtonNone
	}
}
