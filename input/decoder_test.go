package input

import (
	"testing"
	"time"
)

func collect(d *Decoder) *[]Event {
	events := &[]Event{}
	d.SetListener(func(e Event) { *events = append(*events, e) })
	return events
}

func TestBracketedPasteSingleChunk(t *testing.T) {
	d := NewDecoder()
	got := collect(d)
	d.Feed([]byte("\x1b[200~hello world\x1b[201~"))

	var found *PasteText
	for _, e := range *got {
		if p, ok := e.(PasteText); ok {
			found = &p
		}
	}
	if found == nil {
		t.Fatal("expected a PasteText event")
	}
	if found.Raw != "hello world" || !found.FromBracketedPaste {
		t.Errorf("got %+v", found)
	}
}

func TestBracketedPasteSplitAcrossFeeds(t *testing.T) {
	d := NewDecoder()
	got := collect(d)
	d.Feed([]byte("\x1b[200~part one "))
	d.Feed([]byte("part two\x1b[201~"))

	var found *PasteText
	for _, e := range *got {
		if p, ok := e.(PasteText); ok {
			found = &p
		}
	}
	if found == nil || found.Raw != "part one part two" {
		t.Fatalf("got %+v", found)
	}
}

func TestBracketedPasteTimeoutFlushesWithoutMarker(t *testing.T) {
	d := NewDecoder()
	d.SetPasteTimeout(20 * time.Millisecond)
	var got []Event
	done := make(chan struct{})
	d.SetListener(func(e Event) {
		got = append(got, e)
		if p, ok := e.(PasteText); ok && !p.FromBracketedPaste {
			close(done)
		}
	})
	d.Feed([]byte("\x1b[200~stuck content"))

	select {
	case <-done:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected a timeout-flushed PasteText")
	}
	var found *PasteText
	for _, e := range got {
		if p, ok := e.(PasteText); ok {
			found = &p
		}
	}
	if found.Raw != "stuck content" {
		t.Errorf("got %q", found.Raw)
	}
}

func TestFocusChangeBothDirections(t *testing.T) {
	d := NewDecoder()
	got := collect(d)
	d.Feed([]byte("\x1b[I"))
	d.Feed([]byte("\x1b[O"))

	var focus []FocusChange
	for _, e := range *got {
		if f, ok := e.(FocusChange); ok {
			focus = append(focus, f)
		}
	}
	if len(focus) != 2 || !focus[0].Gained || focus[1].Gained {
		t.Fatalf("got %+v", focus)
	}
}

func TestCursorPositionReplyOnlyWhenAwaited(t *testing.T) {
	d := NewDecoder()
	got := collect(d)
	d.Feed([]byte("\x1b[24;80R"))
	for _, e := range *got {
		if _, ok := e.(CursorPositionReply); ok {
			t.Fatal("did not expect a CursorPositionReply when not awaited")
		}
	}

	*got = nil
	d.AwaitCursorPositionReply()
	d.Feed([]byte("\x1b[24;80R"))
	var found *CursorPositionReply
	for _, e := range *got {
		if p, ok := e.(CursorPositionReply); ok {
			found = &p
		}
	}
	if found == nil || found.Position.X != 79 || found.Position.Y != 23 {
		t.Fatalf("got %+v", found)
	}
}

func TestKeystrokeBattery(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want KeyStroke
	}{
		{"up-arrow", "\x1b[A", KeyStroke{Key: KeyUp}},
		{"shift-up-arrow", "\x1b[1;2A", KeyStroke{Key: KeyUp, Shift: true}},
		{"ss3-up-arrow", "\x1bOA", KeyStroke{Key: KeyUp}},
		{"delete-tilde", "\x1b[3~", KeyStroke{Key: KeyDelete}},
		{"f5", "\x1b[15~", KeyStroke{Key: KeyF5}},
		{"enter", "\r", KeyStroke{Key: KeyEnter}},
		{"tab", "\t", KeyStroke{Key: KeyTab}},
		{"ctrl-a", "\x01", KeyStroke{Key: KeyRune, Ctrl: true, Rune: 'a'}},
		{"meta-f", "\x1bf", KeyStroke{Key: KeyRune, Meta: true, Rune: 'f'}},
		{"escape", "\x1b", KeyStroke{Key: KeyEscape}},
		{"cygwin-f1", "\x1b[[A", KeyStroke{Key: KeyF1}},
		{"putty-pageup", "\x1b[[5~", KeyStroke{Key: KeyPageUp}},
		{"rxvt-shift-up", "\x1b[a", KeyStroke{Key: KeyUp, Shift: true}},
		{"rxvt-ctrl-up", "\x1bOa", KeyStroke{Key: KeyUp, Ctrl: true}},
		{"rxvt-shift-delete-dollar", "\x1b[3$", KeyStroke{Key: KeyDelete, Shift: true}},
		{"rxvt-ctrl-delete-caret", "\x1b[3^", KeyStroke{Key: KeyDelete, Ctrl: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := NewDecoder()
			got := collect(d)
			d.Feed([]byte(tc.in))
			if len(*got) != 1 {
				t.Fatalf("got %d events: %+v", len(*got), *got)
			}
			ks, ok := (*got)[0].(KeyStroke)
			if !ok {
				t.Fatalf("got %T, want KeyStroke", (*got)[0])
			}
			if ks != tc.want {
				t.Errorf("got %+v, want %+v", ks, tc.want)
			}
		})
	}
}

func TestUnicodeCharAndWideGrapheme(t *testing.T) {
	d := NewDecoder()
	got := collect(d)
	d.Feed([]byte("a好"))
	if len(*got) != 2 {
		t.Fatalf("got %d events: %+v", len(*got), *got)
	}
	ks, ok := (*got)[0].(KeyStroke)
	if !ok || ks.Key != KeyRune || ks.Rune != 'a' || ks.Shift {
		t.Errorf("got %+v, want plain KeyStroke{KeyRune, 'a'}", (*got)[0])
	}
	if uc, ok := (*got)[1].(UnicodeChar); !ok || uc.Grapheme != "好" {
		t.Errorf("got %+v", (*got)[1])
	}
}

func TestHighBitByteRewrittenAsMeta(t *testing.T) {
	d := NewDecoder()
	got := collect(d)
	// 0xff can never start a valid UTF-8 sequence, so it is "a single
	// byte with the high bit set": the legacy 8-bit-meta convention
	// rewrites it as ESC + (0xff & 0x7f) = ESC + DEL, i.e. meta-backspace.
	d.Feed([]byte{0xff})
	if len(*got) != 1 {
		t.Fatalf("got %d events: %+v", len(*got), *got)
	}
	ks, ok := (*got)[0].(KeyStroke)
	if !ok || ks.Key != KeyBackspace || !ks.Meta {
		t.Errorf("got %+v, want meta-backspace", (*got)[0])
	}
}

func mousePresses(events []Event) []MousePress {
	var out []MousePress
	for _, e := range events {
		if p, ok := e.(MousePress); ok {
			out = append(out, p)
		}
	}
	return out
}

func TestSGRMouseRoundTrip(t *testing.T) {
	d := NewDecoder()
	got := collect(d)
	d.Feed([]byte("\x1b[<0;10;20M"))
	d.Feed([]byte("\x1b[<0;10;20m"))

	presses := mousePresses(*got)
	if len(presses) != 2 {
		t.Fatalf("got %d mouse presses: %+v", len(presses), presses)
	}
	press := presses[0]
	if press.State != MouseStatePressed || press.Button != MouseButtonLeft {
		t.Errorf("press = %+v", press)
	}
	if press.Position.X != 9 || press.Position.Y != 19 {
		t.Errorf("position = %+v", press.Position)
	}
	if presses[1].State != MouseStateReleased {
		t.Errorf("release = %+v", presses[1])
	}
}

func TestX10MouseCoordinates(t *testing.T) {
	d := NewDecoder()
	got := collect(d)
	// button=0 (left), x=50+32+1=... encode x=50 -> byte 32+50+1=83('S'), y=60 -> 32+60+1=93('])
	d.Feed([]byte{0x1b, '[', 'M', 32, byte(32 + 50 + 1), byte(32 + 60 + 1)})

	presses := mousePresses(*got)
	if len(presses) != 1 {
		t.Fatalf("got %d mouse presses: %+v", len(presses), presses)
	}
	if presses[0].Position.X != 50 || presses[0].Position.Y != 60 {
		t.Errorf("position = %+v", presses[0].Position)
	}
}

func TestX10MouseCoordinatesAboveASCIIRange(t *testing.T) {
	d := NewDecoder()
	got := collect(d)
	// Coordinate bytes 0xFF must reach tryParseX10Mouse unmodified; a
	// blanket lenient-UTF-8 pass over the raw chunk would otherwise
	// rewrite each standalone 0xFF into the 3-byte encoding of U+FFFD.
	d.Feed([]byte{0x1b, '[', 'M', 32, 0xff, 0xff})

	presses := mousePresses(*got)
	if len(presses) != 1 {
		t.Fatalf("got %d mouse presses: %+v", len(presses), presses)
	}
	if presses[0].Position.X != 222 || presses[0].Position.Y != 222 {
		t.Errorf("position = %+v, want (222,222)", presses[0].Position)
	}
}

func TestFocusThenMouseInteraction(t *testing.T) {
	d := NewDecoder()
	got := collect(d)
	d.Feed([]byte("\x1b[I\x1b[<0;5;5M"))

	var focus []FocusChange
	for _, e := range *got {
		if f, ok := e.(FocusChange); ok {
			focus = append(focus, f)
		}
	}
	if len(focus) != 1 || !focus[0].Gained {
		t.Fatalf("focus events = %+v", focus)
	}
	presses := mousePresses(*got)
	if len(presses) != 1 {
		t.Fatalf("got %d mouse presses: %+v", len(presses), presses)
	}
}
