package termcore

import "errors"

// Sentinel errors returned by Core lifecycle operations. Contract
// violations the spec calls "programmer errors" (double Attach without
// an intervening Detach, Detach without Attach) are reported through
// these rather than panics, since Attach/Detach return an error already
// and a caller that ignores it deserves a normal error value, not a
// crash — the panic-worthy contract violations are the cellbuf ones
// (DrawBorderBox on a too-small rect, DrawBorderLine on a non-aligned
// segment) where there is no return value to carry an error through.
var (
	// ErrAlreadyAttached is returned by Attach when the core is already
	// attached to a byte source/sink pair.
	ErrAlreadyAttached = errors.New("termcore: already attached")

	// ErrNotAttached is returned by Detach when the core is not attached,
	// and by Bell, SetTitle, SetIcon, TrySetSize, and RequestCursorPosition
	// when Attach has never been called.
	ErrNotAttached = errors.New("termcore: not attached")
)
