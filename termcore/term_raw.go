package termcore

import (
	"golang.org/x/term"
)

// TermRawMode is the default RawModeToggler, backed by golang.org/x/term's
// cross-platform termios/console-mode handling.
type TermRawMode struct {
	fd    int
	state *term.State
}

// NewTermRawMode returns a RawModeToggler over the given file descriptor
// (typically int(os.Stdin.Fd())).
func NewTermRawMode(fd int) *TermRawMode {
	return &TermRawMode{fd: fd}
}

// EnableRawMode puts the terminal into raw mode, saving the previous
// state so DisableRawMode can restore it.
func (t *TermRawMode) EnableRawMode() error {
	state, err := term.MakeRaw(t.fd)
	if err != nil {
		return err
	}
	t.state = state
	return nil
}

// DisableRawMode restores whatever terminal state was saved by the last
// successful EnableRawMode call. It is a no-op if EnableRawMode was never
// called or already failed.
func (t *TermRawMode) DisableRawMode() error {
	if t.state == nil {
		return nil
	}
	err := term.Restore(t.fd, t.state)
	t.state = nil
	return err
}

// TermSizeProber is the default SizeProber, backed by golang.org/x/term.
type TermSizeProber struct {
	fd int
}

// NewTermSizeProber returns a SizeProber over the given file descriptor.
func NewTermSizeProber(fd int) *TermSizeProber {
	return &TermSizeProber{fd: fd}
}

// Size reports the terminal's current width/height in cells.
func (t *TermSizeProber) Size() (cols, rows int, err error) {
	return term.GetSize(t.fd)
}
