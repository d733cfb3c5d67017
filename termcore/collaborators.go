// Package termcore is the top-level façade composing the input decoder,
// cell buffer, viewport renderer, and output controller behind the
// attach/detach lifecycle and mode switching the spec's §6.3 API
// surface describes. Platform concerns — raw-mode toggling, terminal
// size probing/change notification, and UTF-8-vs-legacy-encoding
// detection — stay behind the collaborator interfaces declared here;
// termcore ships real default implementations of the ones a Go binary
// can back with an ecosystem library (x/term, x/sys) rather than
// leaving every embedder to write their own.
package termcore

import (
	"github.com/duskterm/termcore/geometry"
	"github.com/duskterm/termcore/output"
)

// RawModeToggler re-exports the output package's collaborator contract
// so callers configuring a Core never need to import output directly.
type RawModeToggler = output.RawModeToggler

// SizeProber re-exports the output package's collaborator contract.
type SizeProber = output.SizeProber

// ResizeNotifier is the platform collaborator that tells the core when
// the controlling terminal's size has changed, whether by polling or by
// a signal (SIGWINCH on unix). onChange must be called with the new size
// only when it differs from the previously reported size — the §9 open
// question on the reference implementation's inverted "changed" check is
// resolved here by making that comparison the notifier's own job, not
// the caller's.
type ResizeNotifier interface {
	// Start begins watching for size changes, invoking onChange with the
	// new (cols, rows) each time the terminal is resized, until Stop is
	// called.
	Start(onChange func(cols, rows int))
	Stop()
}

// EncodingDetector is the platform collaborator for detecting whether
// the controlling terminal's declared encoding is UTF-8, out of scope
// per spec.md §1 ("OS encoding detection") beyond this contract — termcore
// ships no default implementation and always assumes UTF-8 input unless
// an embedder supplies one and acts on it themselves.
type EncodingDetector interface {
	IsUTF8() (bool, error)
}

// changedSizeNotifier holds the last size a polling or signal
// ResizeNotifier reported and applies the corrected "report only on change" comparison
// described in spec.md §9: `newSize != currentSize`, not `==`.
type changedSizeNotifier struct {
	last    geometry.Size
	hasLast bool
}

// observe reports whether size differs from the last size this notifier
// saw, and records size as the new baseline regardless.
func (c *changedSizeNotifier) observe(size geometry.Size) bool {
	changed := !c.hasLast || size != c.last
	c.last = size
	c.hasLast = true
	return changed
}
