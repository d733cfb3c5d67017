package input

// Key enumerates the keys the decoder can classify. Printable characters
// that are not one of these are delivered as UnicodeChar instead.
type Key uint16

const (
	KeyNone Key = iota

	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyClear

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	KeySpace

	// KeyRune marks an ASCII letter/digit/punctuation key delivered through
	// KeyStroke rather than UnicodeChar. Every printable ASCII key is
	// delivered this way, with or without a modifier (e.g. 'a', Ctrl-A).
	KeyRune
)

func (k Key) String() string {
	switch k {
	case KeyNone:
		return "None"
	case KeyEscape:
		return "Escape"
	case KeyEnter:
		return "Enter"
	case KeyTab:
		return "Tab"
	case KeyBackspace:
		return "Backspace"
	case KeyDelete:
		return "Delete"
	case KeyInsert:
		return "Insert"
	case KeyHome:
		return "Home"
	case KeyEnd:
		return "End"
	case KeyPageUp:
		return "PageUp"
	case KeyPageDown:
		return "PageDown"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyClear:
		return "Clear"
	case KeyF1, KeyF2, KeyF3, KeyF4, KeyF5, KeyF6, KeyF7, KeyF8, KeyF9, KeyF10, KeyF11, KeyF12:
		return [...]string{"F1", "F2", "F3", "F4", "F5", "F6", "F7", "F8", "F9", "F10", "F11", "F12"}[k-KeyF1]
	case KeySpace:
		return "Space"
	case KeyRune:
		return "Rune"
	default:
		return "Unknown"
	}
}

// csiFinalKeys maps a CSI final byte with no parameter (e.g. "ESC[A") to
// its key. These are the classic VT220/xterm arrow and home/end forms.
var csiFinalKeys = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'E': KeyClear,
	'H': KeyHome,
	'F': KeyEnd,
	'Z': KeyTab, // Shift-Tab: CSI Z
}

// csiLowerFinalKeys maps the rxvt lowercase CSI final bytes ("ESC[a" ..
// "ESC[e") to the same keys as their uppercase csiFinalKeys counterparts;
// rxvt uses lowercase to imply an inherent Shift modifier.
var csiLowerFinalKeys = map[byte]Key{
	'a': KeyUp,
	'b': KeyDown,
	'c': KeyRight,
	'd': KeyLeft,
	'e': KeyClear,
}

// cygwinFinalKeys maps the Cygwin double-bracket CSI final bytes
// ("ESC[[A" .. "ESC[[E") to F1-F5.
var cygwinFinalKeys = map[byte]Key{
	'A': KeyF1,
	'B': KeyF2,
	'C': KeyF3,
	'D': KeyF4,
	'E': KeyF5,
}

// ss3FinalKeys maps an SS3 final byte (e.g. "ESC O P") to its key, the
// application-keypad arrow/F1-F4 forms some terminals emit.
var ss3FinalKeys = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'E': KeyClear,
	'H': KeyHome,
	'F': KeyEnd,
	'P': KeyF1,
	'Q': KeyF2,
	'R': KeyF3,
	'S': KeyF4,
}

// ss3LowerFinalKeys maps the rxvt lowercase SS3 final bytes ("ESC Oa" ..
// "ESC Oe") to the same keys as ss3FinalKeys' arrow/clear entries; rxvt
// uses lowercase here to imply an inherent Ctrl modifier.
var ss3LowerFinalKeys = map[byte]Key{
	'a': KeyUp,
	'b': KeyDown,
	'c': KeyRight,
	'd': KeyLeft,
	'e': KeyClear,
}

// csiTildeKeys maps a CSI numeric-parameter "~" sequence (e.g. "ESC[3~")
// to its key, the editing-block and function-key forms.
var csiTildeKeys = map[int]Key{
	1:  KeyHome,
	2:  KeyInsert,
	3:  KeyDelete,
	4:  KeyEnd,
	5:  KeyPageUp,
	6:  KeyPageDown,
	7:  KeyHome,
	8:  KeyEnd,
	11: KeyF1,
	12: KeyF2,
	13: KeyF3,
	14: KeyF4,
	15: KeyF5,
	17: KeyF6,
	18: KeyF7,
	19: KeyF8,
	20: KeyF9,
	21: KeyF10,
	23: KeyF11,
	24: KeyF12,
}

// modifierFromCSIParam decodes the xterm "modifyOtherKeys" second
// parameter (1=none, 2=shift, 3=alt, 4=shift+alt, 5=ctrl, ...) used by
// both the arrow-key and the tilde-key CSI forms.
func modifierFromCSIParam(param int) Modifier {
	if param <= 1 {
		return 0
	}
	bits := param - 1
	var m Modifier
	if bits&1 != 0 {
		m |= ModShift
	}
	if bits&0xA != 0 {
		m |= ModMeta
	}
	if bits&4 != 0 {
		m |= ModCtrl
	}
	return m
}

// asciiKeyStroke maps a printable ASCII byte (digits, letters,
// punctuation — anything classifyControlByte didn't already claim) to a
// KeyRune KeyStroke through the ASCII→Key table, setting Shift for
// uppercase letters and carrying the lowercase base rune, matching the
// "Rune is the base character" convention used by Ctrl-letter handling.
func asciiKeyStroke(b byte) (KeyStroke, bool) {
	if b < 0x21 || b > 0x7e {
		return KeyStroke{}, false
	}
	if b >= 'A' && b <= 'Z' {
		return KeyStroke{Key: KeyRune, Shift: true, Rune: rune(b - 'A' + 'a')}, true
	}
	return KeyStroke{Key: KeyRune, Rune: rune(b)}, true
}

// classifyControlByte maps a single C0 control byte (outside of ESC
// itself) to the key it represents on a conventional keyboard.
func classifyControlByte(b byte) (KeyStroke, bool) {
	switch b {
	case '\r', '\n':
		return KeyStroke{Key: KeyEnter}, true
	case '\t':
		return KeyStroke{Key: KeyTab}, true
	case 0x7f, 0x08:
		return KeyStroke{Key: KeyBackspace}, true
	case ' ':
		return KeyStroke{Key: KeySpace}, true
	}
	if b < 0x20 {
		// Ctrl-@ through Ctrl-_: recover the base letter and flag Ctrl.
		letter := b | 0x40
		if letter >= 'A' && letter <= 'Z' {
			letter += 0x20
		}
		return KeyStroke{Key: KeyRune, Ctrl: true, Rune: rune(letter)}, true
	}
	return KeyStroke{}, false
}
