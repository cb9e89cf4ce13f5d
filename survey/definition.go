package survey

import (
	"context"
	"fmt"
	"reflect"
)

// LeafValidator checks a single candidate answer. It receives the answers
// collected so far for cross-field checks (password confirmation and the
// like) and returns a non-nil error, whose message is surfaced to the user,
// to reject the candidate.
type LeafValidator func(value ResponseValue, sofar *Responses) error

// TreeValidator checks the complete store and returns a message per failing
// path. A non-empty result blocks completion.
type TreeValidator func(responses *Responses) map[ResponsePath]string

// ValidateFunc is the acceptance callback handed to a Backend. Surfaces must
// route every candidate answer for a question through it before storing the
// answer; it enforces the declared bounds of the question first and only then
// any custom validators, so bounds are never bypassable.
type ValidateFunc func(q *Question, value ResponseValue, sofar *Responses) error

// Backend is the collection protocol: a presentation surface that visits
// every non-elided leaf of the definition, obtains a validated answer for
// each, and returns the completed store. On validation failure it re-prompts
// the same leaf without revisiting accepted ones. Cancellation aborts with
// ErrCancelled and discards the partial store; surface failures propagate
// unchanged. Collect blocks for the duration of the interaction and owns the
// store exclusively until it returns.
type Backend interface {
	Collect(ctx context.Context, def *Definition, validate ValidateFunc) (*Responses, error)
}

// Definition is the complete, presentation-agnostic description of one
// collection attempt: ordered root questions framed by optional prelude and
// epilogue text. Definitions are built fresh per attempt and discarded after
// reconstruction.
type Definition struct {
	Prelude   string
	Questions []Question
	Epilogue  string

	goType         reflect.Type
	leafValidators map[ResponsePath][]LeafValidator
	treeValidators []TreeValidator

	// assumed holds the precomputed answers of elided subtrees. Those sites
	// are absent from Questions; reconstruction reads them from here.
	assumed *Responses
}

// TypeName returns the name of the Go type the definition was derived from.
func (d *Definition) TypeName() string {
	if d.goType == nil {
		return ""
	}
	return d.goType.Name()
}

// Accept is the single acceptance choke-point. Declared bounds run first and
// cannot be bypassed; custom validators registered for the site run after.
// The returned error is a *ValidationError.
func (d *Definition) Accept(q *Question, value ResponseValue, sofar *Responses) error {
	if msg := checkBounds(q.Kind, value); msg != "" {
		return &ValidationError{Path: q.Path, Message: msg}
	}
	for _, fn := range d.leafValidators[q.Path] {
		if err := fn(value, sofar); err != nil {
			return &ValidationError{Path: q.Path, Message: err.Error()}
		}
	}
	return nil
}

// ValidateAll runs every whole-tree validator against the completed store and
// merges their results. An empty map means the store passes.
func (d *Definition) ValidateAll(responses *Responses) map[ResponsePath]string {
	out := make(map[ResponsePath]string)
	for _, fn := range d.treeValidators {
		for p, msg := range fn(responses) {
			out[p] = msg
		}
	}
	return out
}

// checkBounds verifies that value has the shape the kind collects and lies
// within the declared bounds. It returns a user-facing message, or "" when
// the value is acceptable.
func checkBounds(k Kind, value ResponseValue) string {
	switch kind := k.(type) {
	case Input, Masked, Multiline:
		if _, ok := value.AsString(); !ok {
			return fmt.Sprintf("expected text, got %s", value.Kind())
		}
	case IntInput:
		i, ok := value.AsInt()
		if !ok {
			return fmt.Sprintf("expected an integer, got %s", value.Kind())
		}
		if kind.Min != nil && i < *kind.Min {
			return fmt.Sprintf("value must be at least %d", *kind.Min)
		}
		if kind.Max != nil && i > *kind.Max {
			return fmt.Sprintf("value must be at most %d", *kind.Max)
		}
	case FloatInput:
		f, ok := value.AsFloat()
		if !ok {
			return fmt.Sprintf("expected a number, got %s", value.Kind())
		}
		if kind.Min != nil && f < *kind.Min {
			return fmt.Sprintf("value must be at least %g", *kind.Min)
		}
		if kind.Max != nil && f > *kind.Max {
			return fmt.Sprintf("value must be at most %g", *kind.Max)
		}
	case Confirm:
		if _, ok := value.AsBool(); !ok {
			return fmt.Sprintf("expected yes/no, got %s", value.Kind())
		}
	case List:
		return checkListBounds(kind, value)
	case OneOf:
		idx, ok := value.AsChosenVariant()
		if !ok {
			return fmt.Sprintf("expected a choice, got %s", value.Kind())
		}
		if idx < 0 || idx >= len(kind.Variants) {
			return fmt.Sprintf("choice %d out of range (%d options)", idx, len(kind.Variants))
		}
	case AnyOf:
		indices, ok := value.AsChosenVariants()
		if !ok {
			return fmt.Sprintf("expected choices, got %s", value.Kind())
		}
		seen := make(map[int]struct{}, len(indices))
		for _, idx := range indices {
			if idx < 0 || idx >= len(kind.Variants) {
				return fmt.Sprintf("choice %d out of range (%d options)", idx, len(kind.Variants))
			}
			if _, dup := seen[idx]; dup {
				return fmt.Sprintf("choice %d selected twice", idx)
			}
			seen[idx] = struct{}{}
		}
	default:
		return "question collects no direct answer"
	}
	return ""
}

func checkListBounds(kind List, value ResponseValue) string {
	var n int
	switch elem := kind.Elem.(type) {
	case Input:
		items, ok := value.AsStringList()
		if !ok {
			return fmt.Sprintf("expected a list of text values, got %s", value.Kind())
		}
		n = len(items)
	case IntInput:
		items, ok := value.AsIntList()
		if !ok {
			return fmt.Sprintf("expected a list of integers, got %s", value.Kind())
		}
		n = len(items)
		for _, i := range items {
			if elem.Min != nil && i < *elem.Min {
				return fmt.Sprintf("each value must be at least %d", *elem.Min)
			}
			if elem.Max != nil && i > *elem.Max {
				return fmt.Sprintf("each value must be at most %d", *elem.Max)
			}
		}
	case FloatInput:
		items, ok := value.AsFloatList()
		if !ok {
			return fmt.Sprintf("expected a list of numbers, got %s", value.Kind())
		}
		n = len(items)
		for _, f := range items {
			if elem.Min != nil && f < *elem.Min {
				return fmt.Sprintf("each value must be at least %g", *elem.Min)
			}
			if elem.Max != nil && f > *elem.Max {
				return fmt.Sprintf("each value must be at most %g", *elem.Max)
			}
		}
	default:
		return "unsupported list element"
	}
	if kind.MinItems != nil && n < *kind.MinItems {
		return fmt.Sprintf("need at least %d items", *kind.MinItems)
	}
	if kind.MaxItems != nil && n > *kind.MaxItems {
		return fmt.Sprintf("need at most %d items", *kind.MaxItems)
	}
	return ""
}

// Walk visits questions in declaration order, descending into AllOf groups
// and into every variant of OneOf/AnyOf sites. fn returning false stops the
// walk.
func Walk(questions []Question, fn func(q Question) bool) bool {
	for _, q := range questions {
		if !fn(q) {
			return false
		}
		switch kind := q.Kind.(type) {
		case AllOf:
			if !Walk(kind.Questions, fn) {
				return false
			}
		case OneOf:
			if !walkVariants(kind.Variants, fn) {
				return false
			}
		case AnyOf:
			if !walkVariants(kind.Variants, fn) {
				return false
			}
		}
	}
	return true
}

func walkVariants(variants []Variant, fn func(q Question) bool) bool {
	for _, v := range variants {
		if nested, ok := v.Kind.(AllOf); ok {
			if !Walk(nested.Questions, fn) {
				return false
			}
		}
	}
	return true
}
