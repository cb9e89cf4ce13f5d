// Package document renders a derived survey as shareable artifacts: a JSON
// Schema describing the response shape, and a Markdown outline of the
// questions for review before a survey goes out.
package document

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/barafael/elicitor-sub001/survey"
)

// JSONSchema renders the response shape of a definition as a JSON Schema
// document. Assumed subtrees are absent, matching what a backend collects.
func JSONSchema(def *survey.Definition) *jsonschema.Schema {
	root := &jsonschema.Schema{
		Version:     "https://json-schema.org/draft/2020-12/schema",
		Title:       def.TypeName(),
		Description: def.Prelude,
	}
	if len(def.Questions) == 1 && def.Questions[0].Path.IsRoot() {
		// Root-level union: the whole document is the selection.
		s := kindSchema(def.Questions[0].Kind)
		s.Version = root.Version
		s.Title = root.Title
		s.Description = root.Description
		return s
	}
	root.Type = "object"
	root.Properties = jsonschema.NewProperties()
	attachQuestions(root, def.Questions)
	return root
}

func attachQuestions(parent *jsonschema.Schema, questions []survey.Question) {
	for _, q := range questions {
		s := kindSchema(q.Kind)
		if s == nil {
			continue
		}
		if s.Description == "" {
			s.Description = q.Ask
		}
		name := q.Path.Last()
		parent.Properties.Set(name, s)
		parent.Required = append(parent.Required, name)
	}
}

func kindSchema(k survey.Kind) *jsonschema.Schema {
	switch kind := k.(type) {
	case survey.Unit:
		return nil
	case survey.Input:
		return &jsonschema.Schema{Type: "string"}
	case survey.Masked:
		return &jsonschema.Schema{Type: "string", Format: "password"}
	case survey.Multiline:
		return &jsonschema.Schema{Type: "string"}
	case survey.Confirm:
		return &jsonschema.Schema{Type: "boolean"}
	case survey.IntInput:
		s := &jsonschema.Schema{Type: "integer"}
		if kind.Min != nil {
			s.Minimum = json.Number(strconv.FormatInt(*kind.Min, 10))
		}
		if kind.Max != nil {
			s.Maximum = json.Number(strconv.FormatInt(*kind.Max, 10))
		}
		return s
	case survey.FloatInput:
		s := &jsonschema.Schema{Type: "number"}
		if kind.Min != nil {
			s.Minimum = json.Number(strconv.FormatFloat(*kind.Min, 'g', -1, 64))
		}
		if kind.Max != nil {
			s.Maximum = json.Number(strconv.FormatFloat(*kind.Max, 'g', -1, 64))
		}
		return s
	case survey.List:
		s := &jsonschema.Schema{Type: "array", Items: kindSchema(kind.Elem)}
		if kind.MinItems != nil {
			n := uint64(*kind.MinItems)
			s.MinItems = &n
		}
		if kind.MaxItems != nil {
			n := uint64(*kind.MaxItems)
			s.MaxItems = &n
		}
		return s
	case survey.AllOf:
		s := &jsonschema.Schema{Type: "object", Properties: jsonschema.NewProperties()}
		attachQuestions(s, kind.Questions)
		return s
	case survey.OneOf:
		s := &jsonschema.Schema{}
		for _, v := range kind.Variants {
			s.OneOf = append(s.OneOf, variantSchema(v))
		}
		return s
	case survey.AnyOf:
		item := &jsonschema.Schema{}
		for _, v := range kind.Variants {
			item.AnyOf = append(item.AnyOf, variantSchema(v))
		}
		return &jsonschema.Schema{Type: "array", Items: item}
	}
	return nil
}

func variantSchema(v survey.Variant) *jsonschema.Schema {
	if nested, ok := v.Kind.(survey.AllOf); ok {
		s := &jsonschema.Schema{Title: v.Name, Type: "object", Properties: jsonschema.NewProperties()}
		attachQuestions(s, nested.Questions)
		return s
	}
	return &jsonschema.Schema{Title: v.Name, Const: v.Name}
}

// Markdown renders a reviewable outline of the questions, in collection
// order. Suggested defaults are shown inline; assumed subtrees do not
// appear.
func Markdown(def *survey.Definition) string {
	var b strings.Builder
	if name := def.TypeName(); name != "" {
		fmt.Fprintf(&b, "# %s\n\n", name)
	}
	if def.Prelude != "" {
		b.WriteString(def.Prelude)
		b.WriteString("\n\n")
	}
	writeQuestions(&b, def.Questions, 0)
	if def.Epilogue != "" {
		b.WriteString("\n")
		b.WriteString(def.Epilogue)
		b.WriteString("\n")
	}
	return b.String()
}

func writeQuestions(b *strings.Builder, questions []survey.Question, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, q := range questions {
		switch kind := q.Kind.(type) {
		case survey.Unit:
		case survey.AllOf:
			fmt.Fprintf(b, "%s- **%s**\n", indent, q.Ask)
			writeQuestions(b, kind.Questions, depth+1)
		case survey.OneOf:
			fmt.Fprintf(b, "%s- %s *(choose one)*\n", indent, q.Ask)
			writeVariants(b, kind.Variants, depth+1)
		case survey.AnyOf:
			fmt.Fprintf(b, "%s- %s *(choose any)*\n", indent, q.Ask)
			writeVariants(b, kind.Variants, depth+1)
		default:
			fmt.Fprintf(b, "%s- %s%s%s\n", indent, q.Ask, leafNote(q.Kind), defaultNote(q))
		}
	}
}

func writeVariants(b *strings.Builder, variants []survey.Variant, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, v := range variants {
		fmt.Fprintf(b, "%s- %s\n", indent, v.Name)
		if nested, ok := v.Kind.(survey.AllOf); ok {
			writeQuestions(b, nested.Questions, depth+1)
		}
	}
}

func leafNote(k survey.Kind) string {
	switch kind := k.(type) {
	case survey.Masked:
		return " *(hidden input)*"
	case survey.Multiline:
		return " *(multi-line)*"
	case survey.Confirm:
		return " *(yes/no)*"
	case survey.IntInput:
		return boundsNote(formatIntBound(kind.Min), formatIntBound(kind.Max))
	case survey.FloatInput:
		return boundsNote(formatFloatBound(kind.Min), formatFloatBound(kind.Max))
	case survey.List:
		return " *(list)*"
	}
	return ""
}

func boundsNote(min, max string) string {
	switch {
	case min != "" && max != "":
		return fmt.Sprintf(" *(%s to %s)*", min, max)
	case min != "":
		return fmt.Sprintf(" *(at least %s)*", min)
	case max != "":
		return fmt.Sprintf(" *(at most %s)*", max)
	}
	return ""
}

func formatIntBound(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func formatFloatBound(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

func defaultNote(q survey.Question) string {
	if v, ok := q.Default.Value(); ok && q.Default.IsSuggested() {
		return fmt.Sprintf(" (default: %s)", v)
	}
	return ""
}
