package survey

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors. Callers classify outcomes with errors.Is; the typed errors
// below carry site detail and unwrap to these sentinels where applicable.
var (
	// ErrCancelled reports that the user (or the surface on their behalf)
	// aborted the collection. Partial answers are discarded.
	ErrCancelled = errors.New("survey: cancelled")

	// ErrStructuralMismatch reports that the answer store is inconsistent with
	// the schema shape. This is an internal invariant violation, never the
	// product of well-formed user input.
	ErrStructuralMismatch = errors.New("survey: structural mismatch")

	// ErrCoercion reports that a collected numeric answer cannot be
	// represented exactly in the destination field's width.
	ErrCoercion = errors.New("survey: coercion")
)

// ValidationError is a recoverable per-leaf rejection. Surfaces re-prompt the
// same leaf with the message.
type ValidationError struct {
	Path    ResponsePath
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("survey: validation failed at %q: %s", e.Path, e.Message)
}

// TreeValidationError carries the path-to-message map produced by whole-tree
// validators. A non-empty map blocks completion; each message is surfaced
// next to its field.
type TreeValidationError struct {
	Failures map[ResponsePath]string
}

func (e *TreeValidationError) Error() string {
	keys := make([]string, 0, len(e.Failures))
	for p := range e.Failures {
		keys = append(keys, p.String())
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Failures[ParsePath(k)]))
	}
	return "survey: whole-tree validation failed: " + strings.Join(parts, "; ")
}

// StructuralError pins a structural mismatch to a path.
type StructuralError struct {
	Path   ResponsePath
	Detail string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("survey: structural mismatch at %q: %s", e.Path, e.Detail)
}

func (e *StructuralError) Is(target error) bool { return target == ErrStructuralMismatch }

// CoercionError reports a numeric answer that does not fit its destination.
type CoercionError struct {
	Path   ResponsePath
	Target string // destination type, e.g. "uint8"
	Value  ResponseValue
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("survey: cannot represent %s as %s at %q", e.Value, e.Target, e.Path)
}

func (e *CoercionError) Is(target error) bool { return target == ErrCoercion }

// SurfaceError wraps an opaque presentation-surface failure (I/O, rendering).
// It is propagated to the caller unchanged.
type SurfaceError struct {
	Err error
}

func (e *SurfaceError) Error() string { return "survey: surface failure: " + e.Err.Error() }
func (e *SurfaceError) Unwrap() error { return e.Err }

// MissingResponseError reports an absent store entry.
type MissingResponseError struct {
	Path ResponsePath
}

func (e *MissingResponseError) Error() string {
	return fmt.Sprintf("survey: missing response for %q", e.Path)
}

// TypeMismatchError reports a store entry of the wrong kind.
type TypeMismatchError struct {
	Path ResponsePath
	Want ValueKind
	Got  ValueKind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("survey: response at %q is %s, want %s", e.Path, e.Got, e.Want)
}
