package canvas

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a canvas failure. Each kind has a distinct recovery
// policy: a lost context is healed by reconfiguring the surface,
// out-of-memory is fatal, and everything else is recoverable by retrying
// on the next frame.
type Kind uint8

const (
	// KindIO indicates an operating-system I/O failure.
	KindIO Kind = iota

	// KindInternal indicates a failure inside canvas or the embedding
	// handler (for example a Setup callback returning an error).
	KindInternal

	// KindGraphicsAPI indicates a generic graphics-backend failure:
	// no compatible adapter, device creation failure, or a transient
	// surface condition such as an acquisition timeout or an outdated
	// surface. Transient conditions are retried on the next frame.
	KindGraphicsAPI

	// KindContextLost indicates the surface or device state is stale.
	// Recoverable: the surface must be reconfigured before rendering
	// can continue.
	KindContextLost

	// KindOutOfMemory indicates GPU or host memory exhaustion.
	// Not recoverable: the event loop must terminate.
	KindOutOfMemory
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindInternal:
		return "internal"
	case KindGraphicsAPI:
		return "graphics-api"
	case KindContextLost:
		return "context-lost"
	case KindOutOfMemory:
		return "out-of-memory"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Error is the error type used across the canvas package. It carries a
// [Kind] so callers can select a recovery policy, and wraps the underlying
// cause for errors.Is/errors.As interoperability.
type Error struct {
	kind Kind
	msg  string
	err  error
}

// newError creates an Error with a formatted message and no cause.
func newError(kind Kind, format string, args ...any) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// wrapError creates an Error wrapping cause. The message describes the
// operation that failed.
func wrapError(kind Kind, cause error, msg string) *Error {
	return &Error{kind: kind, msg: msg, err: cause}
}

// Error returns the message, including the wrapped cause when present.
func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("canvas: %s: %v", e.msg, e.err)
	}
	return "canvas: " + e.msg
}

// Unwrap returns the wrapped cause, or nil.
func (e *Error) Unwrap() error { return e.err }

// Kind returns the failure classification.
func (e *Error) Kind() Kind { return e.kind }

// KindOf returns the classification of err. Errors that did not originate
// in this package (or that wrap no *Error) report KindInternal.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.kind == kind
}

// classifySurface maps a surface-acquisition failure onto the taxonomy.
// wgpu-native reports these conditions as text ("Surface was lost",
// "Surface is outdated", "Surface timed out", out-of-memory validation
// messages), so classification matches on the message. Anything not
// recognized as lost or out-of-memory is a generic graphics failure and
// therefore retried on the next frame.
func classifySurface(cause error) *Error {
	msg := cause.Error()
	switch {
	case containsFold(msg, "lost"):
		return wrapError(KindContextLost, cause, "surface lost")
	case containsFold(msg, "out of memory"), containsFold(msg, "outofmemory"):
		return wrapError(KindOutOfMemory, cause, "surface out of memory")
	default:
		return wrapError(KindGraphicsAPI, cause, "surface acquisition failed")
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), substr)
}
