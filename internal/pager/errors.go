package pager

import "errors"

// ErrOutOfSpace is returned by Extend when no backing-store block is free
// or the process already holds MAX_PAGES.
var ErrOutOfSpace = errors.New("pager: out of space")

// ErrInvalidArgument is returned by Syslog when the requested range falls
// outside the process's reserved virtual range, or the pid is unknown.
var ErrInvalidArgument = errors.New("pager: invalid argument")

// ErrUnknownProcess is returned by Extend when the pid was never created
// (or was already destroyed). Fault and DestroyProcess treat the same
// condition as a silent no-op since neither has a meaningful error to
// surface to an untrusted caller; Syslog reports an unknown pid as
// ErrInvalidArgument.
var ErrUnknownProcess = errors.New("pager: unknown process")

// FatalError wraps a failure that has no recovery path. The clock sweep
// panics with a *FatalError when it runs past its bound, the same way Go's
// own runtime treats true out-of-memory as unrecoverable; New returns one
// as its error for a configuration it cannot build a manager from.
type FatalError struct {
	Op  string
	Err error
}

func (e *FatalError) Error() string { return "pager: fatal: " + e.Op + ": " + e.Err.Error() }

func (e *FatalError) Unwrap() error { return e.Err }

// errReplacementExhausted backs a FatalError if the clock sweep runs past
// its 2*nframes bound — a corrupted frame table, never a normal outcome.
var errReplacementExhausted = errors.New("clock sweep exceeded 2*nframes without finding a victim")

// errInvalidConfig backs a FatalError returned by New when the configured
// resource pools can't be allocated at all (zero/negative sizes, or an
// inverted address range) — there is no recovery path for a manager that
// was never usable to begin with.
var errInvalidConfig = errors.New("invalid pager configuration")
