// Package console is a line-oriented collection surface: questions are
// printed to a writer and answers read one line at a time from a reader.
// It is the default backend registered under the name "console".
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/barafael/elicitor-sub001/survey"
)

func init() {
	survey.RegisterBackend("console", func() survey.Backend {
		return New(os.Stdin, os.Stdout)
	})
}

// Surface reads answers line by line. It implements survey.Backend.
type Surface struct {
	in  *bufio.Scanner
	out io.Writer
	log *slog.Logger
}

// Option configures a Surface.
type Option func(*Surface)

// WithLogger sets the logger. Defaults to slog.Default.
func WithLogger(log *slog.Logger) Option {
	return func(s *Surface) { s.log = log }
}

// New builds a surface over the given streams.
func New(in io.Reader, out io.Writer, opts ...Option) *Surface {
	s := &Surface{in: bufio.NewScanner(in), out: out, log: slog.Default()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Collect walks the definition in order, prompting for every leaf and
// selection. Invalid input re-prompts; end of input or context cancellation
// aborts with survey.ErrCancelled; write failures surface as a
// *survey.SurfaceError.
func (s *Surface) Collect(ctx context.Context, def *survey.Definition, validate survey.ValidateFunc) (*survey.Responses, error) {
	if def.Prelude != "" {
		if err := s.say(def.Prelude); err != nil {
			return nil, err
		}
	}
	responses := survey.NewResponses()
	if err := s.walk(ctx, def.Questions, validate, responses); err != nil {
		return nil, err
	}
	if def.Epilogue != "" {
		if err := s.say(def.Epilogue); err != nil {
			return nil, err
		}
	}
	return responses, nil
}

func (s *Surface) walk(ctx context.Context, questions []survey.Question, validate survey.ValidateFunc, into *survey.Responses) error {
	for i := range questions {
		if err := ctx.Err(); err != nil {
			return survey.ErrCancelled
		}
		q := questions[i]
		s.log.DebugContext(ctx, "asking", slog.String("path", q.Path.String()))
		switch kind := q.Kind.(type) {
		case survey.Unit:
		case survey.AllOf:
			if err := s.walk(ctx, kind.Questions, validate, into); err != nil {
				return err
			}
		case survey.OneOf:
			if err := s.askOneOf(ctx, q, kind, validate, into); err != nil {
				return err
			}
		case survey.AnyOf:
			if err := s.askAnyOf(ctx, q, kind, validate, into); err != nil {
				return err
			}
		default:
			if err := s.askLeaf(ctx, q, validate, into); err != nil {
				return err
			}
		}
	}
	return nil
}

// askLeaf prompts until the input parses and passes validation. An empty
// line takes the suggested default when one exists.
func (s *Surface) askLeaf(ctx context.Context, q survey.Question, validate survey.ValidateFunc, into *survey.Responses) error {
	suggested, hasDefault := q.Default.Value()
	for {
		if err := ctx.Err(); err != nil {
			return survey.ErrCancelled
		}
		prompt := q.Ask
		if hasDefault {
			prompt += fmt.Sprintf(" [%s]", suggested)
		}
		if err := s.sayf("%s%s: ", prompt, leafHint(q.Kind)); err != nil {
			return err
		}
		line, err := s.readLine(q.Kind)
		if err != nil {
			return err
		}
		var value survey.ResponseValue
		if line == "" && hasDefault {
			value = suggested
		} else {
			value, err = parseLeaf(q.Kind, line)
			if err != nil {
				if err := s.sayf("  %v\n", err); err != nil {
					return err
				}
				continue
			}
		}
		if err := validate(&q, value, into); err != nil {
			if err := s.sayf("  %v\n", err); err != nil {
				return err
			}
			continue
		}
		into.Set(q.Path, value)
		return nil
	}
}

func (s *Surface) askOneOf(ctx context.Context, q survey.Question, kind survey.OneOf, validate survey.ValidateFunc, into *survey.Responses) error {
	if err := s.sayf("%s:\n", q.Ask); err != nil {
		return err
	}
	for i, v := range kind.Variants {
		marker := " "
		if kind.Default != nil && *kind.Default == i {
			marker = "*"
		}
		if err := s.sayf(" %s %d) %s\n", marker, i+1, v.Name); err != nil {
			return err
		}
	}
	site := q.Path.Child(survey.SelectedVariantKey)
	for {
		if err := ctx.Err(); err != nil {
			return survey.ErrCancelled
		}
		if err := s.sayf("choose 1-%d: ", len(kind.Variants)); err != nil {
			return err
		}
		line, err := s.readLine(q.Kind)
		if err != nil {
			return err
		}
		var idx int
		if line == "" && kind.Default != nil {
			idx = *kind.Default
		} else {
			n, err := strconv.Atoi(line)
			if err != nil {
				if err := s.say("  enter the number of a choice"); err != nil {
					return err
				}
				continue
			}
			idx = n - 1
		}
		value := survey.ChosenVariant(idx)
		if err := validate(&q, value, into); err != nil {
			if err := s.sayf("  %v\n", err); err != nil {
				return err
			}
			continue
		}
		into.Set(site, value)
		if nested, ok := kind.Variants[idx].Kind.(survey.AllOf); ok {
			return s.walk(ctx, nested.Questions, validate, into)
		}
		return nil
	}
}

func (s *Surface) askAnyOf(ctx context.Context, q survey.Question, kind survey.AnyOf, validate survey.ValidateFunc, into *survey.Responses) error {
	if err := s.sayf("%s (comma-separated, empty for none):\n", q.Ask); err != nil {
		return err
	}
	preselected := make(map[int]bool, len(kind.Defaults))
	for _, d := range kind.Defaults {
		preselected[d] = true
	}
	for i, v := range kind.Variants {
		marker := " "
		if preselected[i] {
			marker = "*"
		}
		if err := s.sayf(" %s %d) %s\n", marker, i+1, v.Name); err != nil {
			return err
		}
	}
	site := q.Path.Child(survey.SelectedVariantsKey)
	for {
		if err := ctx.Err(); err != nil {
			return survey.ErrCancelled
		}
		if err := s.sayf("choose any of 1-%d: ", len(kind.Variants)); err != nil {
			return err
		}
		line, err := s.readLine(q.Kind)
		if err != nil {
			return err
		}
		var idxs []int
		if line == "" && len(kind.Defaults) > 0 {
			idxs = kind.Defaults
		} else {
			idxs, err = parseSelection(line)
			if err != nil {
				if err := s.sayf("  %v\n", err); err != nil {
					return err
				}
				continue
			}
		}
		value := survey.ChosenVariants(idxs...)
		if err := validate(&q, value, into); err != nil {
			if err := s.sayf("  %v\n", err); err != nil {
				return err
			}
			continue
		}
		into.Set(site, value)
		for _, idx := range idxs {
			if nested, ok := kind.Variants[idx].Kind.(survey.AllOf); ok {
				if err := s.walk(ctx, nested.Questions, validate, into); err != nil {
					return err
				}
			}
		}
		return nil
	}
}

func parseSelection(line string) ([]int, error) {
	if strings.TrimSpace(line) == "" {
		return nil, nil
	}
	var idxs []int
	for _, part := range strings.Split(line, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("enter choice numbers separated by commas")
		}
		idxs = append(idxs, n-1)
	}
	return idxs, nil
}

// parseLeaf converts one line of input into the response value a leaf kind
// expects. List input is a single comma-separated line.
func parseLeaf(kind survey.Kind, line string) (survey.ResponseValue, error) {
	switch k := kind.(type) {
	case survey.Input, survey.Masked, survey.Multiline:
		return survey.StringValue(line), nil
	case survey.Confirm:
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes", "true":
			return survey.BoolValue(true), nil
		case "n", "no", "false":
			return survey.BoolValue(false), nil
		case "":
			return survey.BoolValue(k.Default), nil
		}
		return survey.ResponseValue{}, fmt.Errorf("answer y or n")
	case survey.IntInput:
		n, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
		if err != nil {
			return survey.ResponseValue{}, fmt.Errorf("enter a whole number")
		}
		return survey.IntValue(n), nil
	case survey.FloatInput:
		f, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
		if err != nil {
			return survey.ResponseValue{}, fmt.Errorf("enter a number")
		}
		return survey.FloatValue(f), nil
	case survey.List:
		return parseListLine(k, line)
	}
	return survey.ResponseValue{}, fmt.Errorf("cannot answer this question on a console")
}

func parseListLine(kind survey.List, line string) (survey.ResponseValue, error) {
	var parts []string
	if strings.TrimSpace(line) != "" {
		for _, p := range strings.Split(line, ",") {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	switch kind.Elem.(type) {
	case survey.Input:
		return survey.StringList(parts...), nil
	case survey.IntInput:
		items := make([]int64, 0, len(parts))
		for _, p := range parts {
			n, err := strconv.ParseInt(p, 10, 64)
			if err != nil {
				return survey.ResponseValue{}, fmt.Errorf("enter whole numbers separated by commas")
			}
			items = append(items, n)
		}
		return survey.IntList(items...), nil
	case survey.FloatInput:
		items := make([]float64, 0, len(parts))
		for _, p := range parts {
			f, err := strconv.ParseFloat(p, 64)
			if err != nil {
				return survey.ResponseValue{}, fmt.Errorf("enter numbers separated by commas")
			}
			items = append(items, f)
		}
		return survey.FloatList(items...), nil
	}
	return survey.ResponseValue{}, fmt.Errorf("unsupported list element")
}

// readLine reads one line, or a block terminated by a lone "." for
// multiline questions. Exhausted input aborts the survey.
func (s *Surface) readLine(kind survey.Kind) (string, error) {
	if _, ok := kind.(survey.Multiline); ok {
		var lines []string
		for s.in.Scan() {
			if s.in.Text() == "." {
				return strings.Join(lines, "\n"), nil
			}
			lines = append(lines, s.in.Text())
		}
		if err := s.in.Err(); err != nil {
			return "", &survey.SurfaceError{Err: err}
		}
		return "", survey.ErrCancelled
	}
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", &survey.SurfaceError{Err: err}
		}
		return "", survey.ErrCancelled
	}
	return strings.TrimRight(s.in.Text(), "\r"), nil
}

func leafHint(kind survey.Kind) string {
	switch kind.(type) {
	case survey.Confirm:
		return " (y/n)"
	case survey.Multiline:
		return " (end with a lone \".\")"
	case survey.Masked:
		return " (input is recorded, not hidden)"
	}
	return ""
}

func (s *Surface) say(text string) error {
	return s.sayf("%s\n", text)
}

func (s *Surface) sayf(format string, args ...any) error {
	if _, err := fmt.Fprintf(s.out, format, args...); err != nil {
		return &survey.SurfaceError{Err: err}
	}
	return nil
}

var _ survey.Backend = (*Surface)(nil)
