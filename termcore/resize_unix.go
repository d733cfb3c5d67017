//go:build unix

package termcore

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"

	"github.com/duskterm/termcore/geometry"
)

// SigwinchResizeNotifier is the default unix ResizeNotifier: it watches
// SIGWINCH and re-probes the terminal's size on every delivery, invoking
// onChange only when the probed size actually differs from the last one
// reported — the corrected polarity from spec.md §9's redesign note
// (`newSize != currentSize`, not `==`).
type SigwinchResizeNotifier struct {
	prober SizeProber
	sig    chan os.Signal
	done   chan struct{}
	state  changedSizeNotifier
}

// NewSigwinchResizeNotifier returns a ResizeNotifier that probes size
// via prober whenever SIGWINCH is delivered.
func NewSigwinchResizeNotifier(prober SizeProber) *SigwinchResizeNotifier {
	return &SigwinchResizeNotifier{prober: prober}
}

// newPlatformResizeNotifier returns the unix SIGWINCH-backed default.
func newPlatformResizeNotifier(prober SizeProber) ResizeNotifier {
	return NewSigwinchResizeNotifier(prober)
}

// Start begins watching SIGWINCH on its own goroutine.
func (n *SigwinchResizeNotifier) Start(onChange func(cols, rows int)) {
	n.sig = make(chan os.Signal, 1)
	n.done = make(chan struct{})
	signal.Notify(n.sig, unix.SIGWINCH)

	go func() {
		for {
			select {
			case <-n.done:
				return
			case <-n.sig:
				cols, rows, err := n.prober.Size()
				if err != nil {
					continue
				}
				if n.state.observe(geometry.Size{W: cols, H: rows}) {
					onChange(cols, rows)
				}
			}
		}
	}()
}

// Stop stops watching SIGWINCH and releases the signal channel.
func (n *SigwinchResizeNotifier) Stop() {
	if n.sig == nil {
		return
	}
	signal.Stop(n.sig)
	close(n.done)
}
