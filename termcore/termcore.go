package termcore

import (
	"io"
	"sync"
	"time"

	"github.com/duskterm/termcore/color"
	"github.com/duskterm/termcore/geometry"
	"github.com/duskterm/termcore/input"
	"github.com/duskterm/termcore/output"
	"github.com/duskterm/termcore/viewport"
)

// Mode selects which of the core's two operating modes is active.
// Logger mode (plain, line-oriented I/O) is out of scope per spec.md §1;
// ModeLogger is kept as a named value so SetMode has a well-defined
// "not in viewport mode" state to switch back to, without this module
// implementing what that mode actually does.
type Mode int

const (
	ModeLogger Mode = iota
	ModeViewport
)

// Capability names a terminal feature callers can ask the core about
// before relying on it. Capability detection tables are explicitly out
// of scope (spec.md §1); CheckSupport always reports the conservative
// "supported" answer for the capabilities this module itself implements
// unconditionally, and false for everything else, rather than probing
// the terminal.
type Capability int

const (
	CapabilityMouse Capability = iota
	CapabilityBracketedPaste
	CapabilityFocusReporting
	CapabilityTrueColor
	CapabilityCursorShape
)

// Listener receives every event the core produces once attached: typed
// keyboard input, raw spans the decoder could or could not classify,
// mouse activity, focus changes, terminal-initiated status replies, size
// changes, and OS signals delivered by the caller's own signal handling
// (the core has no signal handler of its own — see spec.md §1, "signal
// delivery" stays a platform concern).
type Listener interface {
	OnKeyboardInput(ev input.Event)
	OnRawInput(raw string, wasFullyProcessed bool)
	OnMouseEvent(ev input.Event)
	OnFocusChange(gained bool)
	OnCursorPositionReply(pos geometry.Position)
	OnDeviceAttributes(da input.DeviceAttributes)
	OnScreenResize(cols, rows int)
	OnSignal(sig string)
}

// Options configures a Core. DefaultOptions returns sane values for
// every field; callers typically start there and override only what
// they need.
type Options struct {
	// InitialSize is the viewport size Activate uses on entry to
	// ModeViewport.
	InitialSize geometry.Size
	// PasteTimeout overrides the decoder's default bracketed-paste
	// timeout.
	PasteTimeout time.Duration
	// DefaultFg/DefaultBg seed the cell buffer's empty-cell style.
	DefaultFg color.Foreground
	DefaultBg color.Color
	// RawMode, SizeProbe, and Resize are the platform collaborators; any
	// may be nil to skip that concern entirely.
	RawMode   RawModeToggler
	SizeProbe SizeProber
	Resize    ResizeNotifier
	// Logger receives non-fatal diagnostics: a raw-mode enable failure on
	// Attach and a raw-mode restore failure on Detach. A nil Logger
	// discards them.
	Logger *Logger
}

// DefaultOptions returns an Options value with an 80x24 initial size,
// the decoder's default paste timeout, default terminal colors, and no
// platform collaborators wired (callers opt into x/term/x/sys-backed
// defaults explicitly via WithDefaultCollaborators).
func DefaultOptions() Options {
	return Options{
		InitialSize:  geometry.Size{W: 80, H: 24},
		PasteTimeout: input.DefaultPasteTimeout,
		DefaultFg:    color.EmptyForeground(),
		DefaultBg:    color.Normal(),
	}
}

// WithDefaultCollaborators fills in RawMode, SizeProbe, and Resize with
// the x/term- and x/sys-backed defaults over the given file descriptor
// (typically int(os.Stdin.Fd())), for callers that want a working
// terminal core without writing their own platform glue.
func (o Options) WithDefaultCollaborators(fd int) Options {
	prober := NewTermSizeProber(fd)
	o.RawMode = NewTermRawMode(fd)
	o.SizeProbe = prober
	o.Resize = newDefaultResizeNotifier(prober)
	return o
}

// Core is the top-level façade: it owns the input decoder, the output
// controller, and (once in ModeViewport) a viewport renderer, and wires
// them to the caller-supplied byte source/sink and platform
// collaborators per the attach/detach lifecycle in spec.md §6.3.
type Core struct {
	mu sync.Mutex

	opts Options

	decoder    *input.Decoder
	controller *output.Controller
	vp         *viewport.Viewport
	listener   Listener

	sink io.Writer

	mode     Mode
	attached bool

	readDone chan struct{}
	readStop chan struct{}
}

// New returns a Core configured by opts, not yet attached.
func New(opts Options) *Core {
	c := &Core{opts: opts, mode: ModeLogger}
	c.decoder = input.NewDecoder()
	if opts.PasteTimeout > 0 {
		c.decoder.SetPasteTimeout(opts.PasteTimeout)
	}
	c.decoder.SetListener(c.dispatch)
	return c
}

// SetListener installs the callback target for every event the core
// produces. It may be changed at any time, including while attached.
func (c *Core) SetListener(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listener = l
}

// Attach begins consuming source and writing to sink: it starts the
// read loop, constructs the output controller over sink, enables raw
// mode and the resize notifier if collaborators were supplied, and
// leaves the core in ModeLogger until SetMode(ModeViewport) is called.
// Attach is a contract violation (ErrAlreadyAttached) if called twice
// without an intervening Detach.
func (c *Core) Attach(source io.Reader, sink io.Writer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.attached {
		return ErrAlreadyAttached
	}

	c.sink = sink
	c.controller = output.New(sink, c.opts.RawMode, c.opts.SizeProbe)

	if err := c.controller.EnableRawMode(); err != nil {
		c.logf("raw mode enable failed: %v", err)
	}
	if c.opts.Resize != nil {
		c.opts.Resize.Start(func(cols, rows int) {
			c.handleResize(cols, rows)
		})
	}

	c.readStop = make(chan struct{})
	c.readDone = make(chan struct{})
	go c.readLoop(source)

	c.attached = true
	return nil
}

// Detach leaves viewport mode if active, stops the resize notifier and
// read loop, restores raw mode, and flushes any pending output. It
// always performs every step even if an earlier one fails; failures to
// restore terminal modes are logged, not propagated, per spec.md §7.
// Detach without a matching Attach is a contract violation
// (ErrNotAttached).
func (c *Core) Detach() error {
	c.mu.Lock()
	if !c.attached {
		c.mu.Unlock()
		return ErrNotAttached
	}
	mode := c.mode
	vp := c.vp
	resize := c.opts.Resize
	controller := c.controller
	stop := c.readStop
	done := c.readDone
	c.attached = false
	c.mu.Unlock()

	if mode == ModeViewport && vp != nil {
		vp.Deactivate()
	}
	if resize != nil {
		resize.Stop()
	}
	close(stop)
	<-done

	if controller != nil {
		if err := controller.DisableRawMode(); err != nil {
			c.logf("raw mode restore failed: %v", err)
		}
	}
	return nil
}

// SetMode switches between ModeLogger and ModeViewport. Switching into
// ModeViewport for the first time allocates the viewport at
// opts.InitialSize and activates it (alternate screen, mouse on, screen
// erase); switching back to ModeLogger deactivates it.
func (c *Core) SetMode(m Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m == c.mode {
		return
	}
	switch m {
	case ModeViewport:
		if c.vp == nil {
			c.vp = viewport.New(c.sink, c.opts.InitialSize, c.opts.DefaultFg, c.opts.DefaultBg)
		}
		c.vp.Activate(c.opts.InitialSize)
	case ModeLogger:
		if c.vp != nil {
			c.vp.Deactivate()
		}
	}
	c.mode = m
}

// Viewport returns the renderer for draw calls. It is nil until SetMode
// has been called with ModeViewport at least once.
func (c *Core) Viewport() *viewport.Viewport {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vp
}

// Bell rings the terminal bell.
func (c *Core) Bell() error {
	if c.controller == nil {
		return ErrNotAttached
	}
	return c.controller.Bell()
}

// SetTitle writes an OSC 0 window-title sequence.
func (c *Core) SetTitle(title string) error {
	if c.controller == nil {
		return ErrNotAttached
	}
	return c.controller.SetTitle(title)
}

// SetIcon writes an OSC 1 icon-name sequence.
func (c *Core) SetIcon(icon string) error {
	if c.controller == nil {
		return ErrNotAttached
	}
	return c.controller.SetIcon(icon)
}

// TrySetSize asks the size-probe collaborator for the terminal's current
// size, returning ok=false if none was supplied.
func (c *Core) TrySetSize() (cols, rows int, ok bool, err error) {
	if c.controller == nil {
		return 0, 0, false, ErrNotAttached
	}
	return c.controller.TrySetSize()
}

// RequestCursorPosition arms the decoder to treat the next
// "ESC[row;colR" as a CursorPositionReply and writes the DSR 6 query.
func (c *Core) RequestCursorPosition() error {
	if c.controller == nil {
		return ErrNotAttached
	}
	c.decoder.AwaitCursorPositionReply()
	return c.controller.RequestCursorPosition()
}

// CheckSupport reports whether the core itself unconditionally supports
// cap. Per spec.md's Non-goals, this is not a terminal capability probe;
// it reports what this module implements, not what the attached
// terminal actually honours.
func (c *Core) CheckSupport(capability Capability) bool {
	switch capability {
	case CapabilityMouse, CapabilityBracketedPaste, CapabilityFocusReporting, CapabilityCursorShape:
		return true
	case CapabilityTrueColor:
		return true
	default:
		return false
	}
}

func (c *Core) readLoop(source io.Reader) {
	defer close(c.readDone)
	buf := make([]byte, 4096)
	for {
		select {
		case <-c.readStop:
			return
		default:
		}
		n, err := source.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			c.decoder.Feed(chunk)
		}
		if err != nil {
			return
		}
	}
}

func (c *Core) handleResize(cols, rows int) {
	c.mu.Lock()
	if c.mode == ModeViewport && c.vp != nil {
		c.vp.Resize(geometry.Size{W: cols, H: rows})
	}
	listener := c.listener
	c.mu.Unlock()
	if listener != nil {
		listener.OnScreenResize(cols, rows)
	}
}

func (c *Core) dispatch(ev input.Event) {
	c.mu.Lock()
	listener := c.listener
	c.mu.Unlock()
	if listener == nil {
		return
	}
	switch e := ev.(type) {
	case input.KeyStroke, input.UnicodeChar, input.PasteText:
		listener.OnKeyboardInput(ev)
	case input.MousePress, input.MouseMotion, input.MouseScroll:
		listener.OnMouseEvent(ev)
	case input.FocusChange:
		listener.OnFocusChange(e.Gained)
	case input.CursorPositionReply:
		listener.OnCursorPositionReply(e.Position)
	case input.DeviceAttributes:
		listener.OnDeviceAttributes(e)
	case input.RawProcessed:
		listener.OnRawInput(e.Raw, true)
	case input.Unhandled:
		listener.OnRawInput(e.Bytes, false)
	}
}

func (c *Core) logf(format string, args ...any) {
	if c.opts.Logger != nil {
		c.opts.Logger.Warnf(format, args...)
	}
}

func newDefaultResizeNotifier(prober SizeProber) ResizeNotifier {
	return newPlatformResizeNotifier(prober)
}
