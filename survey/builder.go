package survey

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Builder assembles a survey for T and runs it against a backend. The zero
// value is not useful; start from For.
type Builder[T any] struct {
	opts []Option
	log  *slog.Logger
}

// For starts a builder for T. Options given here apply before any of the
// chained methods.
func For[T any](opts ...Option) *Builder[T] {
	return &Builder[T]{opts: opts}
}

// Suggest pre-fills an editable default at the dotted path.
func (b *Builder[T]) Suggest(path string, value any) *Builder[T] {
	b.opts = append(b.opts, WithSuggestion(path, value))
	return b
}

// Assume fixes the answer at the dotted path; the subtree is never asked.
func (b *Builder[T]) Assume(path string, value any) *Builder[T] {
	b.opts = append(b.opts, WithAssumption(path, value))
	return b
}

// SuggestFrom seeds every leaf from an existing instance.
func (b *Builder[T]) SuggestFrom(instance T) *Builder[T] {
	b.opts = append(b.opts, WithSuggestions(instance))
	return b
}

// Validate registers a per-leaf validator at the dotted path.
func (b *Builder[T]) Validate(path string, fn LeafValidator) *Builder[T] {
	b.opts = append(b.opts, WithValidator(path, fn))
	return b
}

// ValidateTree registers a whole-tree validator.
func (b *Builder[T]) ValidateTree(fn TreeValidator) *Builder[T] {
	b.opts = append(b.opts, WithTreeValidator(fn))
	return b
}

// Prelude sets the text shown before collection starts.
func (b *Builder[T]) Prelude(text string) *Builder[T] {
	b.opts = append(b.opts, WithPrelude(text))
	return b
}

// Epilogue sets the text shown after collection completes.
func (b *Builder[T]) Epilogue(text string) *Builder[T] {
	b.opts = append(b.opts, WithEpilogue(text))
	return b
}

// Logger sets the logger used by Run. Defaults to slog.Default.
func (b *Builder[T]) Logger(log *slog.Logger) *Builder[T] {
	b.log = log
	return b
}

// Definition derives the schema without running collection.
func (b *Builder[T]) Definition() (*Definition, error) {
	return Derive[T](b.opts...)
}

// Run derives the schema, collects answers through the backend, validates
// the finished tree and reconstructs a T. A cancelled collection returns
// ErrCancelled; tree validation failures return a *TreeValidationError.
func (b *Builder[T]) Run(ctx context.Context, backend Backend) (T, error) {
	var zero T

	def, err := b.Definition()
	if err != nil {
		return zero, err
	}

	log := b.log
	if log == nil {
		log = slog.Default()
	}
	attempt := uuid.NewString()
	log.DebugContext(ctx, "survey collection starting",
		slog.String("attempt_id", attempt),
		slog.String("target", fmt.Sprintf("%T", zero)),
		slog.Int("questions", len(def.Questions)))

	responses, err := backend.Collect(ctx, def, def.Accept)
	if err != nil {
		if errors.Is(err, ErrCancelled) {
			log.DebugContext(ctx, "survey collection cancelled", slog.String("attempt_id", attempt))
			return zero, err
		}
		return zero, fmt.Errorf("survey: collection failed: %w", err)
	}

	if failures := def.ValidateAll(responses); len(failures) > 0 {
		return zero, &TreeValidationError{Failures: failures}
	}

	var out T
	if err := def.Decode(responses, &out); err != nil {
		return zero, err
	}
	log.DebugContext(ctx, "survey collection complete",
		slog.String("attempt_id", attempt),
		slog.Int("responses", responses.Len()))
	return out, nil
}
