// Package errs collects the sentinel error kinds shared by every package in
// this module, plus a small wrapping helper for attaching call-site context.
//
// Policy (mirrors the teacher library's error discipline):
//   - Only sentinel variables are exported; callers branch with errors.Is.
//   - Sentinels are never built with fmt.Errorf; context is added by Wrapf
//     at the call site with %w, never folded into the sentinel itself.
//   - Construction errors (bad names, cycles, unknown types) are returned,
//     never panicked.
package errs

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. See SPEC_FULL.md §7 for the taxonomy this mirrors.
var (
	// ErrInvalidName indicates a capability/requirement name mismatch on
	// an arithmetic operation (Add/Sub) that requires matching names.
	ErrInvalidName = errors.New("invalid name")

	// ErrNotFound indicates a task id absent from every DAG on a board,
	// or an unregistered location type tag.
	ErrNotFound = errors.New("not found")

	// ErrCyclic indicates a DAG edge would close a cycle.
	ErrCyclic = errors.New("cyclic graph")

	// ErrInfeasible indicates the optimizer cannot solve at all: Solve
	// returns it, wrapped, when no graph or no dimension is bound. Nodes
	// that fit on no route are not reported through it; Solve returns
	// them in its dropped list.
	ErrInfeasible = errors.New("infeasible")

	// ErrInvalidTransition indicates an event does not apply to a task's
	// current state. Logged as a warning by board.Board, never fatal.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrCallback indicates a user-supplied cost or demand callback
	// returned an error or a nil/negative result where a value was
	// required. The optimizer substitutes a sentinel large value and
	// continues; it does not abort the solve.
	ErrCallback = errors.New("callback error")
)

// Wrapf attaches a formatted message to a sentinel kind, preserving it for
// errors.Is while adding call-site detail. The result reads as
// "<message>: <kind>".
func Wrapf(kind error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), kind)
}
