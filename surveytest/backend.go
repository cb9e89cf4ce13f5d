// Package surveytest provides a scripted survey backend for tests. Answers
// are keyed by dotted path; collection walks the question tree in order,
// feeds each scripted answer through the survey's acceptance check, and
// fails loudly on any question the script does not cover.
package surveytest

import (
	"context"
	"errors"
	"fmt"

	"github.com/barafael/elicitor-sub001/survey"
)

// ErrUnscripted reports a question reached during collection with no
// scripted answer.
var ErrUnscripted = errors.New("surveytest: no scripted answer")

// Backend replays scripted answers. It implements survey.Backend.
type Backend struct {
	answers  map[survey.ResponsePath]survey.ResponseValue
	cancelAt map[survey.ResponsePath]struct{}
}

// NewBackend returns an empty script. Add answers with the With methods;
// each returns the backend for chaining.
func NewBackend() *Backend {
	return &Backend{
		answers:  make(map[survey.ResponsePath]survey.ResponseValue),
		cancelAt: make(map[survey.ResponsePath]struct{}),
	}
}

// WithResponse scripts a raw response value at the dotted path. Selection
// answers use the sentinel segments, e.g. "payment.selected_variant".
func (b *Backend) WithResponse(path string, value survey.ResponseValue) *Backend {
	b.answers[survey.ParsePath(path)] = value
	return b
}

// WithString scripts a text answer.
func (b *Backend) WithString(path, value string) *Backend {
	return b.WithResponse(path, survey.StringValue(value))
}

// WithInt scripts an integer answer.
func (b *Backend) WithInt(path string, value int64) *Backend {
	return b.WithResponse(path, survey.IntValue(value))
}

// WithFloat scripts a floating point answer.
func (b *Backend) WithFloat(path string, value float64) *Backend {
	return b.WithResponse(path, survey.FloatValue(value))
}

// WithBool scripts a confirmation answer.
func (b *Backend) WithBool(path string, value bool) *Backend {
	return b.WithResponse(path, survey.BoolValue(value))
}

// WithVariant scripts a single-choice selection at the question's own path;
// the sentinel segment is appended here.
func (b *Backend) WithVariant(path string, index int) *Backend {
	p := survey.ParsePath(path).Child(survey.SelectedVariantKey)
	b.answers[p] = survey.ChosenVariant(index)
	return b
}

// WithVariants scripts a multi-choice selection at the question's own path,
// in the order the surveyed user would pick them.
func (b *Backend) WithVariants(path string, indices ...int) *Backend {
	p := survey.ParsePath(path).Child(survey.SelectedVariantsKey)
	b.answers[p] = survey.ChosenVariants(indices...)
	return b
}

// CancelAt makes collection stop with survey.ErrCancelled when it reaches
// the question at the dotted path, as if the user had aborted there.
func (b *Backend) CancelAt(path string) *Backend {
	b.cancelAt[survey.ParsePath(path)] = struct{}{}
	return b
}

// Collect walks the definition's questions in order, answering each from
// the script. Every answer passes through validate before being stored, so
// a scripted answer that violates the question's constraints fails the
// collection just as live input would.
func (b *Backend) Collect(ctx context.Context, def *survey.Definition, validate survey.ValidateFunc) (*survey.Responses, error) {
	responses := survey.NewResponses()
	if err := b.collect(ctx, def.Questions, validate, responses); err != nil {
		return nil, err
	}
	return responses, nil
}

func (b *Backend) collect(ctx context.Context, questions []survey.Question, validate survey.ValidateFunc, into *survey.Responses) error {
	for i := range questions {
		if err := ctx.Err(); err != nil {
			return survey.ErrCancelled
		}
		q := questions[i]
		if _, stop := b.cancelAt[q.Path]; stop {
			return survey.ErrCancelled
		}
		switch kind := q.Kind.(type) {
		case survey.Unit:
		case survey.AllOf:
			if err := b.collect(ctx, kind.Questions, validate, into); err != nil {
				return err
			}
		case survey.OneOf:
			site := q.Path.Child(survey.SelectedVariantKey)
			choice, ok := b.answers[site]
			if !ok {
				return fmt.Errorf("%w at %q", ErrUnscripted, site)
			}
			if err := validate(&q, choice, into); err != nil {
				return err
			}
			into.Set(site, choice)
			idx, _ := choice.AsChosenVariant()
			if nested, ok := kind.Variants[idx].Kind.(survey.AllOf); ok {
				if err := b.collect(ctx, nested.Questions, validate, into); err != nil {
					return err
				}
			}
		case survey.AnyOf:
			site := q.Path.Child(survey.SelectedVariantsKey)
			choice, ok := b.answers[site]
			if !ok {
				return fmt.Errorf("%w at %q", ErrUnscripted, site)
			}
			if err := validate(&q, choice, into); err != nil {
				return err
			}
			into.Set(site, choice)
			idxs, _ := choice.AsChosenVariants()
			for _, idx := range idxs {
				if nested, ok := kind.Variants[idx].Kind.(survey.AllOf); ok {
					if err := b.collect(ctx, nested.Questions, validate, into); err != nil {
						return err
					}
				}
			}
		default:
			answer, ok := b.answers[q.Path]
			if !ok {
				if v, has := q.Default.Value(); has {
					answer = v
				} else {
					return fmt.Errorf("%w at %q", ErrUnscripted, q.Path)
				}
			}
			if err := validate(&q, answer, into); err != nil {
				return err
			}
			into.Set(q.Path, answer)
		}
	}
	return nil
}
