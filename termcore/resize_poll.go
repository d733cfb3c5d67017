//go:build !unix

package termcore

import (
	"time"

	"github.com/duskterm/termcore/geometry"
)

// PollingResizeNotifier is the default ResizeNotifier on platforms with
// no SIGWINCH (Windows): it polls prober on an interval and reports only
// when the probed size differs from the last one seen, using the
// corrected polarity from spec.md §9 (`newSize != currentSize`).
type PollingResizeNotifier struct {
	prober   SizeProber
	interval time.Duration
	stop     chan struct{}
	state    changedSizeNotifier
}

// NewPollingResizeNotifier returns a ResizeNotifier that probes size via
// prober every interval.
func NewPollingResizeNotifier(prober SizeProber, interval time.Duration) *PollingResizeNotifier {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	return &PollingResizeNotifier{prober: prober, interval: interval}
}

// Start begins polling on its own goroutine.
func (n *PollingResizeNotifier) Start(onChange func(cols, rows int)) {
	n.stop = make(chan struct{})
	go func() {
		ticker := time.NewTicker(n.interval)
		defer ticker.Stop()
		for {
			select {
			case <-n.stop:
				return
			case <-ticker.C:
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

// Stop stops the polling loop.
func (n *PollingResizeNotifier) Stop() {
	if n.stop != nil {
		close(n.stop)
	}
}

// newPlatformResizeNotifier returns the polling default used on
// platforms with no SIGWINCH.
func newPlatformResizeNotifier(prober SizeProber) ResizeNotifier {
	return NewPollingResizeNotifier(prober, 0)
}
