package survey

import (
	"fmt"
	"slices"
	"strings"
)

// ValueKind discriminates the variants of ResponseValue.
type ValueKind int

const (
	KindString ValueKind = iota
	KindInt
	KindFloat
	KindBool
	KindChosenVariant
	KindChosenVariants
	KindStringList
	KindIntList
	KindFloatList
)

// String returns the kind name used in error messages.
func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "String"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindBool:
		return "Bool"
	case KindChosenVariant:
		return "ChosenVariant"
	case KindChosenVariants:
		return "ChosenVariants"
	case KindStringList:
		return "StringList"
	case KindIntList:
		return "IntList"
	case KindFloatList:
		return "FloatList"
	}
	return fmt.Sprintf("ValueKind(%d)", int(k))
}

// ResponseValue is one collected answer: a tagged union over the scalar
// answer types, list answers, and variant selections. Numeric answers are
// carried at full width (int64 / float64); narrowing to a destination field's
// width happens only at reconstruction.
type ResponseValue struct {
	kind ValueKind
	v    any
}

func StringValue(s string) ResponseValue  { return ResponseValue{kind: KindString, v: s} }
func IntValue(i int64) ResponseValue      { return ResponseValue{kind: KindInt, v: i} }
func FloatValue(f float64) ResponseValue  { return ResponseValue{kind: KindFloat, v: f} }
func BoolValue(b bool) ResponseValue      { return ResponseValue{kind: KindBool, v: b} }
func ChosenVariant(idx int) ResponseValue { return ResponseValue{kind: KindChosenVariant, v: idx} }

// ChosenVariants records a multi-select in selection order.
func ChosenVariants(indices ...int) ResponseValue {
	return ResponseValue{kind: KindChosenVariants, v: slices.Clone(indices)}
}

func StringList(items ...string) ResponseValue {
	return ResponseValue{kind: KindStringList, v: slices.Clone(items)}
}

func IntList(items ...int64) ResponseValue {
	return ResponseValue{kind: KindIntList, v: slices.Clone(items)}
}

func FloatList(items ...float64) ResponseValue {
	return ResponseValue{kind: KindFloatList, v: slices.Clone(items)}
}

// Kind returns the variant tag.
func (v ResponseValue) Kind() ValueKind { return v.kind }

func (v ResponseValue) AsString() (string, bool) {
	s, ok := v.v.(string)
	return s, ok && v.kind == KindString
}

func (v ResponseValue) AsInt() (int64, bool) {
	i, ok := v.v.(int64)
	return i, ok && v.kind == KindInt
}

func (v ResponseValue) AsFloat() (float64, bool) {
	f, ok := v.v.(float64)
	return f, ok && v.kind == KindFloat
}

func (v ResponseValue) AsBool() (bool, bool) {
	b, ok := v.v.(bool)
	return b, ok && v.kind == KindBool
}

func (v ResponseValue) AsChosenVariant() (int, bool) {
	i, ok := v.v.(int)
	return i, ok && v.kind == KindChosenVariant
}

func (v ResponseValue) AsChosenVariants() ([]int, bool) {
	s, ok := v.v.([]int)
	return s, ok && v.kind == KindChosenVariants
}

func (v ResponseValue) AsStringList() ([]string, bool) {
	s, ok := v.v.([]string)
	return s, ok && v.kind == KindStringList
}

func (v ResponseValue) AsIntList() ([]int64, bool) {
	s, ok := v.v.([]int64)
	return s, ok && v.kind == KindIntList
}

func (v ResponseValue) AsFloatList() ([]float64, bool) {
	s, ok := v.v.([]float64)
	return s, ok && v.kind == KindFloatList
}

// Equal reports whether two values have the same kind and payload.
func (v ResponseValue) Equal(other ResponseValue) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindChosenVariants:
		a, _ := v.AsChosenVariants()
		b, _ := other.AsChosenVariants()
		return slices.Equal(a, b)
	case KindStringList:
		a, _ := v.AsStringList()
		b, _ := other.AsStringList()
		return slices.Equal(a, b)
	case KindIntList:
		a, _ := v.AsIntList()
		b, _ := other.AsIntList()
		return slices.Equal(a, b)
	case KindFloatList:
		a, _ := v.AsFloatList()
		b, _ := other.AsFloatList()
		return slices.Equal(a, b)
	default:
		return v.v == other.v
	}
}

// String renders the value for logs and error messages.
func (v ResponseValue) String() string {
	switch v.kind {
	case KindString:
		s, _ := v.AsString()
		return fmt.Sprintf("%q", s)
	case KindChosenVariants, KindStringList, KindIntList, KindFloatList:
		var parts []string
		switch v.kind {
		case KindChosenVariants:
			s, _ := v.AsChosenVariants()
			for _, e := range s {
				parts = append(parts, fmt.Sprint(e))
			}
		case KindStringList:
			s, _ := v.AsStringList()
			for _, e := range s {
				parts = append(parts, fmt.Sprintf("%q", e))
			}
		case KindIntList:
			s, _ := v.AsIntList()
			for _, e := range s {
				parts = append(parts, fmt.Sprint(e))
			}
		case KindFloatList:
			s, _ := v.AsFloatList()
			for _, e := range s {
				parts = append(parts, fmt.Sprint(e))
			}
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprint(v.v)
	}
}
