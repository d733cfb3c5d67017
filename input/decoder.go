// Package input decodes a byte stream from a terminal into the typed
// event union defined in event.go: keystrokes, pasted text, mouse
// activity, focus changes, and the terminal's own status replies.
package input

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/duskterm/termcore/geometry"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

const (
	bracketedPasteStart = "\x1b[200~"
	bracketedPasteEnd   = "\x1b[201~"

	// DefaultPasteTimeout bounds how long the decoder waits for a
	// terminal's paste-end marker before flushing whatever arrived as an
	// unbracketed PasteText, so a dropped 201~ cannot wedge the decoder.
	DefaultPasteTimeout = 50 * time.Millisecond
)

var (
	focusPattern               = regexp.MustCompile(`\x1b\[[IO]`)
	cursorPositionReplyPattern = regexp.MustCompile(`^\x1b\[(\d+);(\d+)R`)
)

type pasteState int

const (
	pasteIdle pasteState = iota
	pasteActive
)

// Decoder turns raw terminal input bytes into Events. It is not safe for
// concurrent Feed calls, but the paste-timeout callback runs on its own
// goroutine and is internally synchronized against Feed.
type Decoder struct {
	mu sync.Mutex

	onEvent func(Event)

	pasteState   pasteState
	pasteBuf     strings.Builder
	pasteTimer   *time.Timer
	pasteTimeout time.Duration

	awaitingCPR     bool
	mouseButtonDown bool
}

// NewDecoder returns a Decoder with the default paste timeout. Call
// SetListener before feeding any bytes.
func NewDecoder() *Decoder {
	return &Decoder{pasteTimeout: DefaultPasteTimeout}
}

// SetListener installs the callback events are delivered to. It may be
// changed at any time; a nil listener silently drops events.
func (d *Decoder) SetListener(fn func(Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onEvent = fn
}

// SetPasteTimeout overrides DefaultPasteTimeout.
func (d *Decoder) SetPasteTimeout(timeout time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pasteTimeout = timeout
}

// AwaitCursorPositionReply arms the decoder to recognize the next
// "ESC[row;colR" reply as a CursorPositionReply rather than leaving it
// for keystroke classification. Callers set this immediately before
// writing a cursor-position query to the terminal.
func (d *Decoder) AwaitCursorPositionReply() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.awaitingCPR = true
}

// Close releases the paste timer. It does not stop accepting Feed calls.
func (d *Decoder) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pasteTimer != nil {
		d.pasteTimer.Stop()
	}
}

func (d *Decoder) emit(e Event) {
	if d.onEvent != nil {
		d.onEvent(e)
	}
}

// Feed decodes one chunk of bytes read from the terminal, emitting every
// event it produces synchronously through the configured listener before
// returning. The chunk is handed to process as raw bytes, unmodified: the
// mouse and paste/focus/cursor-reply matchers need the exact wire bytes
// (a wide X10 mouse coordinate is a raw byte ≥0x80, not valid UTF-8), so
// UTF-8 leniency and the legacy 8-bit-meta rewrite are applied later, only
// to spans that fall through to keystroke/rune classification.
func (d *Decoder) Feed(chunk []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.process(string(chunk))
}

// lenientUTF8Decode replaces ill-formed byte sequences with U+FFFD
// instead of treating them as a hard decode failure, since a terminal
// can legitimately split a multi-byte rune across two reads or forward
// bytes from a non-UTF-8 legacy application.
func lenientUTF8Decode(b []byte) string {
	out, _, err := transform.Bytes(runes.ReplaceIllFormed(), b)
	if err != nil {
		return string(b)
	}
	return string(out)
}

// process dispatches a decoded chunk in the order the wire protocol
// requires disambiguation: bracketed paste takes priority over
// everything (its body is opaque and must not be scanned for escape
// sequences), then focus reports, then an in-flight cursor-position
// reply, then the mouse encodings, and only then ordinary keystroke and
// Unicode-rune classification.
func (d *Decoder) process(s string) {
	for len(s) > 0 {
		if d.pasteState == pasteActive {
			s = s[d.feedPaste(s):]
			continue
		}
		if strings.HasPrefix(s, bracketedPasteStart) {
			d.startPaste()
			d.emit(RawProcessed{Raw: bracketedPasteStart})
			s = s[len(bracketedPasteStart):]
			continue
		}
		if loc := focusPattern.FindStringIndex(s); loc != nil {
			if loc[0] > 0 {
				d.process(s[:loc[0]])
				if d.pasteState == pasteActive {
					// The prefix opened a paste: the rest is paste body.
					s = s[loc[0]:]
					continue
				}
			}
			gained := s[loc[0]+2] == 'I'
			d.emit(FocusChange{Gained: gained})
			d.emit(RawProcessed{Raw: s[loc[0]:loc[1]]})
			s = s[loc[1]:]
			continue
		}
		if d.awaitingCPR {
			if m := cursorPositionReplyPattern.FindStringSubmatchIndex(s); m != nil {
				row, _ := strconv.Atoi(s[m[2]:m[3]])
				col, _ := strconv.Atoi(s[m[4]:m[5]])
				d.awaitingCPR = false
				d.emit(CursorPositionReply{Position: geometry.Position{X: col - 1, Y: row - 1}})
				d.emit(RawProcessed{Raw: s[m[0]:m[1]]})
				s = s[m[1]:]
				continue
			}
		}
		if ev, ok, n := d.tryParseSGRMouse(s); ok {
			d.emit(ev)
			d.emit(RawProcessed{Raw: s[:n]})
			s = s[n:]
			continue
		}
		if ev, ok, n := d.tryParseX10Mouse(s); ok {
			d.emit(ev)
			d.emit(RawProcessed{Raw: s[:n]})
			s = s[n:]
			continue
		}
		if ev, ok, n := d.tryParseDECLocator(s); ok {
			d.emit(ev)
			d.emit(RawProcessed{Raw: s[:n]})
			s = s[n:]
			continue
		}
		if ev, ok, n := d.tryParseURXVTMouse(s); ok {
			d.emit(ev)
			d.emit(RawProcessed{Raw: s[:n]})
			s = s[n:]
			continue
		}

		ev, n := d.classifyOne(s)
		if n <= 0 {
			n = 1
		}
		d.emit(ev)
		s = s[n:]
	}
}

func (d *Decoder) startPaste() {
	d.pasteState = pasteActive
	d.pasteBuf.Reset()
	d.resetPasteTimer()
}

// feedPaste consumes as much of s as belongs to the current paste body,
// returning the number of bytes consumed. It never transitions pasteState
// back to pasteIdle: after a 201~ the decoder stays in paste mode, so
// bytes that arrive afterwards keep accumulating as paste text until the
// paste timer fires and onPasteTimeout returns the decoder to idle.
func (d *Decoder) feedPaste(s string) int {
	if idx := strings.Index(s, bracketedPasteEnd); idx >= 0 {
		d.pasteBuf.WriteString(s[:idx])
		d.emitPaste(true)
		return idx + len(bracketedPasteEnd)
	}
	d.pasteBuf.WriteString(s)
	d.resetPasteTimer()
	return len(s)
}

func (d *Decoder) emitPaste(bracketed bool) {
	raw := d.pasteBuf.String()
	d.pasteBuf.Reset()
	if d.pasteTimer != nil {
		d.pasteTimer.Stop()
	}
	d.emit(PasteText{Raw: raw, FromBracketedPaste: bracketed})
	if bracketed {
		d.emit(RawProcessed{Raw: bracketedPasteStart + raw + bracketedPasteEnd})
	}
}

func (d *Decoder) resetPasteTimer() {
	if d.pasteTimer != nil {
		d.pasteTimer.Stop()
	}
	if d.pasteTimeout <= 0 {
		return
	}
	d.pasteTimer = time.AfterFunc(d.pasteTimeout, d.onPasteTimeout)
}

func (d *Decoder) onPasteTimeout() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pasteState != pasteActive {
		return
	}
	d.pasteState = pasteIdle
	if d.pasteBuf.Len() == 0 {
		return
	}
	d.emitPaste(false)
}

// classifyOne classifies the single logical unit (an escape sequence, a
// control byte, or one printable rune) at the start of s, returning the
// event it represents and the number of bytes consumed.
func (d *Decoder) classifyOne(s string) (Event, int) {
	b0 := s[0]
	if b0 == 0x1b {
		return d.classifyEscape(s)
	}
	if ks, ok := classifyControlByte(b0); ok {
		return ks, 1
	}
	if b0 < 0x80 {
		if ks, ok := asciiKeyStroke(b0); ok {
			return ks, 1
		}
		return UnicodeChar{Grapheme: s[:1]}, 1
	}
	if r, size := utf8.DecodeRuneInString(s); r != utf8.RuneError {
		return UnicodeChar{Grapheme: s[:size]}, size
	}
	if !utf8.FullRuneInString(s) {
		// A valid-looking multi-byte lead with not enough bytes left in
		// this chunk to complete it: treat leniently rather than as a
		// standalone 8-bit-meta byte.
		decoded := lenientUTF8Decode([]byte(s))
		return UnicodeChar{Grapheme: decoded}, len(s)
	}
	// A single byte with the high bit set that is not part of a valid
	// UTF-8 sequence: legacy 8-bit-meta convention, rewritten as
	// ESC + (byte & 0x7F) and reclassified.
	inner, _ := d.classifyOne(string([]byte{b0 & 0x7f}))
	switch v := inner.(type) {
	case KeyStroke:
		v.Meta = true
		return v, 1
	case UnicodeChar:
		r, _ := utf8.DecodeRuneInString(v.Grapheme)
		return KeyStroke{Key: KeyRune, Meta: true, Rune: r}, 1
	default:
		return Unhandled{Bytes: s[:1]}, 1
	}
}

func (d *Decoder) classifyEscape(s string) (Event, int) {
	if len(s) == 1 {
		return KeyStroke{Key: KeyEscape}, 1
	}
	switch s[1] {
	case '[':
		return d.classifyCSI(s)
	case 'O':
		return d.classifySS3(s)
	default:
		inner, n := d.classifyOne(s[1:])
		switch v := inner.(type) {
		case KeyStroke:
			v.Meta = true
			return v, n + 1
		case UnicodeChar:
			r, _ := utf8.DecodeRuneInString(v.Grapheme)
			return KeyStroke{Key: KeyRune, Meta: true, Rune: r}, n + 1
		default:
			return Unhandled{Bytes: s[:1+n]}, 1 + n
		}
	}
}

func (d *Decoder) classifyCSI(s string) (Event, int) {
	i := 2
	var prefix byte
	if i < len(s) && (s[i] == '?' || s[i] == '>') {
		prefix = s[i]
		i++
	}
	// A second '[' right after the CSI intro marks the Cygwin double-
	// bracket function-key forms ("ESC[[A".."ESC[[E") and the Putty
	// "ESC[[5~"/"ESC[[6~" page-key aliases; strip it and keep scanning.
	cygwin := false
	if i < len(s) && s[i] == '[' {
		cygwin = true
		i++
	}
	start := i
	for i < len(s) && isParamByte(s[i]) {
		i++
	}
	if i >= len(s) {
		return Unhandled{Bytes: s}, len(s)
	}
	final := s[i]
	paramStr := s[start:i]
	n := i + 1

	if prefix != 0 && final == 'c' {
		return parseDeviceAttributes(prefix, paramStr), n
	}
	if prefix != 0 {
		return Unhandled{Bytes: s[:n]}, n
	}

	if paramStr == "" {
		if cygwin {
			if key, ok := cygwinFinalKeys[final]; ok {
				return KeyStroke{Key: key}, n
			}
			return Unhandled{Bytes: s[:n]}, n
		}
		if key, ok := csiFinalKeys[final]; ok {
			return KeyStroke{Key: key, Shift: final == 'Z'}, n
		}
		if key, ok := csiLowerFinalKeys[final]; ok {
			return KeyStroke{Key: key, Shift: true}, n
		}
		return Unhandled{Bytes: s[:n]}, n
	}

	params := splitParams(paramStr)
	mod := Modifier(0)
	if len(params) > 1 {
		if p, err := strconv.Atoi(params[1]); err == nil {
			mod = modifierFromCSIParam(p)
		}
	}

	switch final {
	case '~':
		if code, err := strconv.Atoi(params[0]); err == nil {
			if key, ok := csiTildeKeys[code]; ok {
				return modifiedKeyStroke(key, mod), n
			}
		}
	case '$':
		// rxvt shifted editing keys: "ESC[2$".."ESC[8$".
		if code, err := strconv.Atoi(params[0]); err == nil {
			if key, ok := csiTildeKeys[code]; ok {
				return modifiedKeyStroke(key, mod|ModShift), n
			}
		}
	case '^':
		// rxvt ctrl editing keys: "ESC[2^".."ESC[8^".
		if code, err := strconv.Atoi(params[0]); err == nil {
			if key, ok := csiTildeKeys[code]; ok {
				return modifiedKeyStroke(key, mod|ModCtrl), n
			}
		}
	case 'A', 'B', 'C', 'D', 'E', 'H', 'F', 'Z':
		if key, ok := csiFinalKeys[final]; ok {
			return modifiedKeyStroke(key, mod), n
		}
	}
	return Unhandled{Bytes: s[:n]}, n
}

func (d *Decoder) classifySS3(s string) (Event, int) {
	if len(s) < 3 {
		return Unhandled{Bytes: s}, len(s)
	}
	if key, ok := ss3FinalKeys[s[2]]; ok {
		return KeyStroke{Key: key}, 3
	}
	if key, ok := ss3LowerFinalKeys[s[2]]; ok {
		return KeyStroke{Key: key, Ctrl: true}, 3
	}
	return Unhandled{Bytes: s[:3]}, 3
}

func isParamByte(b byte) bool {
	return (b >= '0' && b <= '9') || b == ';'
}

func splitParams(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, ";")
}

func modifiedKeyStroke(key Key, mod Modifier) KeyStroke {
	return KeyStroke{Key: key, Shift: mod.Has(ModShift), Meta: mod.Has(ModMeta), Ctrl: mod.Has(ModCtrl)}
}

func parseDeviceAttributes(kind byte, paramStr string) DeviceAttributes {
	fields := splitParams(paramStr)
	da := DeviceAttributes{Kind: kind}
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			continue
		}
		switch i {
		case 0:
			da.Type = v
		case 1:
			da.Version = v
		default:
			da.Extra = append(da.Extra, v)
		}
	}
	return da
}
