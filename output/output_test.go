package output

import (
	"errors"
	"strings"
	"testing"
)

func TestBellAndTitle(t *testing.T) {
	var buf strings.Builder
	c := New(&buf, nil, nil)

	if err := c.Bell(); err != nil {
		t.Fatalf("Bell: %v", err)
	}
	if err := c.SetTitle("hi"); err != nil {
		t.Fatalf("SetTitle: %v", err)
	}

	want := "\x07\x1b]0;hi\x07"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestModeToggleSequences(t *testing.T) {
	var buf strings.Builder
	c := New(&buf, nil, nil)

	_ = c.SetAltScreen(true)
	_ = c.SetMouseTracking(true)
	_ = c.SetFocusTracking(true)
	_ = c.SetBracketedPaste(true)

	want := "\x1b[?1049h\x1b[?1003;1006h\x1b[?1004h\x1b[?2004h"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestCursorAppearance(t *testing.T) {
	var buf strings.Builder
	c := New(&buf, nil, nil)

	_ = c.SetCursorAppearance(CursorBar, true)
	if buf.String() != "\x1b[5q" {
		t.Errorf("got %q, want blinking-bar DECSCUSR", buf.String())
	}
}

type stubRaw struct {
	enabled  bool
	enableErr, disableErr error
}

func (s *stubRaw) EnableRawMode() error {
	s.enabled = true
	return s.enableErr
}

func (s *stubRaw) DisableRawMode() error {
	s.enabled = false
	return s.disableErr
}

func TestRawModeDelegatesAndNoOpsWithoutCollaborator(t *testing.T) {
	var buf strings.Builder
	bare := New(&buf, nil, nil)
	if err := bare.EnableRawMode(); err != nil {
		t.Errorf("EnableRawMode with nil collaborator: %v", err)
	}
	if err := bare.DisableRawMode(); err != nil {
		t.Errorf("DisableRawMode with nil collaborator: %v", err)
	}

	raw := &stubRaw{}
	c := New(&buf, raw, nil)
	if err := c.EnableRawMode(); err != nil {
		t.Fatalf("EnableRawMode: %v", err)
	}
	if !raw.enabled {
		t.Error("expected raw mode enabled")
	}
	if err := c.DisableRawMode(); err != nil {
		t.Fatalf("DisableRawMode: %v", err)
	}
	if raw.enabled {
		t.Error("expected raw mode disabled")
	}

	raw.enableErr = errors.New("boom")
	if err := c.EnableRawMode(); err == nil {
		t.Error("expected EnableRawMode to propagate collaborator error")
	}
}

type stubSize struct {
	cols, rows int
	err        error
}

func (s *stubSize) Size() (int, int, error) { return s.cols, s.rows, s.err }

func TestTrySetSize(t *testing.T) {
	var buf strings.Builder
	bare := New(&buf, nil, nil)
	if _, _, ok, err := bare.TrySetSize(); ok || err != nil {
		t.Errorf("expected ok=false, err=nil with no collaborator, got ok=%v err=%v", ok, err)
	}

	c := New(&buf, nil, &stubSize{cols: 80, rows: 24})
	cols, rows, ok, err := c.TrySetSize()
	if !ok || err != nil || cols != 80 || rows != 24 {
		t.Errorf("TrySetSize = %d,%d,%v,%v, want 80,24,true,nil", cols, rows, ok, err)
	}
}
