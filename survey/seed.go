package survey

import (
	"fmt"
	"reflect"
	"strconv"
)

// flattenValue records the leaf values of a Go value into the store at the
// given path, using the same shape rules as schema derivation: struct fields
// under child segments, union selections as sentinel entries, multi-select
// case fields under the variant index. Nil pointers and nil unions record
// nothing.
func flattenValue(ft reflect.Type, v reflect.Value, path ResponsePath, into *Responses) error {
	if ft.Kind() == reflect.Pointer {
		if v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return nil
			}
			v = v.Elem()
		}
		ft = ft.Elem()
	}
	switch ft.Kind() {
	case reflect.String:
		into.Set(path, StringValue(v.String()))
	case reflect.Bool:
		into.Set(path, BoolValue(v.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, err := intOf(v, path)
		if err != nil {
			return err
		}
		into.Set(path, IntValue(i))
	case reflect.Float32, reflect.Float64:
		f, err := floatOf(v, path)
		if err != nil {
			return err
		}
		into.Set(path, FloatValue(f))
	case reflect.Struct:
		for i := 0; i < ft.NumField(); i++ {
			f := ft.Field(i)
			if f.PkgPath != "" {
				continue
			}
			name := fieldPathName(f)
			if name == "-" {
				continue
			}
			if err := flattenValue(f.Type, v.Field(i), path.Child(name), into); err != nil {
				return err
			}
		}
	case reflect.Interface:
		cases, ok := unionCasesOf(ft)
		if !ok {
			return fmt.Errorf("survey: interface %s is not a registered union", ft)
		}
		if v.Kind() == reflect.Interface {
			if v.IsNil() {
				return nil
			}
			v = v.Elem()
		}
		idx, ok := caseIndexOf(cases, v.Type())
		if !ok {
			return fmt.Errorf("survey: %s is not a registered case of %s", v.Type(), ft)
		}
		into.Set(path.Child(SelectedVariantKey), ChosenVariant(idx))
		return flattenCaseFields(v, path, into)
	case reflect.Slice:
		return flattenSlice(ft.Elem(), v, path, into)
	default:
		return fmt.Errorf("survey: cannot flatten %s", ft)
	}
	return nil
}

// intOf reads any integer-kind value as int64. Seed values may carry a
// different width or signedness than the field they seed.
func intOf(v reflect.Value, path ResponsePath) (int64, error) {
	if v.CanInt() {
		return v.Int(), nil
	}
	if v.CanUint() {
		u := v.Uint()
		if u > uint64(int64(^uint64(0)>>1)) {
			return 0, fmt.Errorf("survey: value %d at %q does not fit a signed response", u, path)
		}
		return int64(u), nil
	}
	return 0, fmt.Errorf("survey: value of kind %s at %q is not an integer", v.Kind(), path)
}

func floatOf(v reflect.Value, path ResponsePath) (float64, error) {
	if v.CanFloat() {
		return v.Float(), nil
	}
	if v.CanInt() {
		return float64(v.Int()), nil
	}
	if v.CanUint() {
		return float64(v.Uint()), nil
	}
	return 0, fmt.Errorf("survey: value of kind %s at %q is not a number", v.Kind(), path)
}

func flattenCaseFields(v reflect.Value, path ResponsePath, into *Responses) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		name := fieldPathName(f)
		if name == "-" {
			continue
		}
		if err := flattenValue(f.Type, v.Field(i), path.Child(name), into); err != nil {
			return err
		}
	}
	return nil
}

func flattenSlice(elem reflect.Type, v reflect.Value, path ResponsePath, into *Responses) error {
	switch elem.Kind() {
	case reflect.String:
		out := make([]string, v.Len())
		for i := range out {
			out[i] = v.Index(i).String()
		}
		into.Set(path, StringList(out...))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		out := make([]int64, v.Len())
		for i := range out {
			out[i] = v.Index(i).Int()
		}
		into.Set(path, IntList(out...))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		out := make([]int64, v.Len())
		for i := range out {
			u := v.Index(i).Uint()
			if u > uint64(int64(^uint64(0)>>1)) {
				return fmt.Errorf("survey: value %d at %q does not fit a signed response", u, path)
			}
			out[i] = int64(u)
		}
		into.Set(path, IntList(out...))
	case reflect.Float32, reflect.Float64:
		out := make([]float64, v.Len())
		for i := range out {
			out[i] = v.Index(i).Float()
		}
		into.Set(path, FloatList(out...))
	case reflect.Interface:
		cases, ok := unionCasesOf(elem)
		if !ok {
			return fmt.Errorf("survey: interface %s is not a registered union", elem)
		}
		chosen := make([]int, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			ev := v.Index(i)
			if ev.IsNil() {
				return fmt.Errorf("survey: nil element in multi-select at %q", path)
			}
			ev = ev.Elem()
			idx, ok := caseIndexOf(cases, ev.Type())
			if !ok {
				return fmt.Errorf("survey: %s is not a registered case of %s", ev.Type(), elem)
			}
			for _, prev := range chosen {
				if prev == idx {
					return fmt.Errorf("survey: case %q selected twice at %q", cases[idx].Name, path)
				}
			}
			chosen = append(chosen, idx)
			if exportedFieldCount(ev.Type()) > 0 {
				if err := flattenCaseFields(ev, path.Child(strconv.Itoa(idx)), into); err != nil {
					return err
				}
			}
		}
		into.Set(path.Child(SelectedVariantsKey), ChosenVariants(chosen...))
	default:
		return fmt.Errorf("survey: cannot flatten slice of %s", elem)
	}
	return nil
}

// flattenAt records value under path, resolving the site's declared type by
// walking the root type along the path. A ResponseValue is stored verbatim.
func flattenAt(root reflect.Type, path ResponsePath, value any, into *Responses) error {
	if rv, ok := value.(ResponseValue); ok {
		into.Set(path, rv)
		return nil
	}
	ft, err := typeAt(root, path)
	if err != nil {
		return err
	}
	v := reflect.ValueOf(value)
	if !v.IsValid() {
		return fmt.Errorf("survey: nil value at %q", path)
	}
	if !compatibleSeed(ft, v.Type()) {
		return fmt.Errorf("survey: value %T at %q does not match field type %s", value, path, ft)
	}
	return flattenValue(ft, v, path, into)
}

// compatibleSeed reports whether a seed value's type can stand in for the
// field type: identical, a numeric of the same family, a concrete case of a
// union site, or the pointee of an optional field.
func compatibleSeed(ft, vt reflect.Type) bool {
	if ft.Kind() == reflect.Pointer {
		ft = ft.Elem()
	}
	if vt == ft || vt.AssignableTo(ft) {
		return true
	}
	if ft.Kind() == reflect.Interface {
		return vt.Implements(ft)
	}
	return numericFamily(ft.Kind()) != 0 && numericFamily(ft.Kind()) == numericFamily(vt.Kind())
}

func numericFamily(k reflect.Kind) int {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return 1
	case reflect.Float32, reflect.Float64:
		return 2
	}
	return 0
}

// typeAt resolves the declared Go type at a dotted path. Paths traverse
// struct fields only; a path ending at a union site is fine, but segments
// under one are ambiguous across variants and are rejected.
func typeAt(root reflect.Type, path ResponsePath) (reflect.Type, error) {
	t := root
	segs := path.Segments()
	for i, seg := range segs {
		if t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if t.Kind() == reflect.Interface {
			return nil, fmt.Errorf("survey: path %q descends into union variant fields; seed the whole union value at %q instead", path, NewPath(segs[:i]...))
		}
		if t.Kind() != reflect.Struct {
			return nil, fmt.Errorf("survey: path %q does not name a field of %s", path, root)
		}
		found := false
		for fi := 0; fi < t.NumField(); fi++ {
			f := t.Field(fi)
			if f.PkgPath != "" {
				continue
			}
			if fieldPathName(f) == seg {
				t = f.Type
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("survey: path %q does not name a field of %s", path, root)
		}
	}
	return t, nil
}

// applySeeded threads flattened suggestion values into the question tree as
// editable defaults: leaves get a Suggested default, selection sites get
// their pre-selected indices.
func applySeeded(questions []Question, seeded *Responses) {
	if seeded.Len() == 0 {
		return
	}
	for i := range questions {
		q := &questions[i]
		switch kind := q.Kind.(type) {
		case AllOf:
			applySeeded(kind.Questions, seeded)
		case OneOf:
			if idx, err := seeded.ChosenVariantAt(q.Path.Child(SelectedVariantKey)); err == nil && idx >= 0 && idx < len(kind.Variants) {
				k := kind
				d := idx
				k.Default = &d
				q.Kind = k
				kind = k
			}
			applySeededVariants(kind.Variants, seeded)
		case AnyOf:
			if idxs, err := seeded.ChosenVariantsAt(q.Path.Child(SelectedVariantsKey)); err == nil {
				k := kind
				k.Defaults = idxs
				q.Kind = k
				kind = k
			}
			applySeededVariants(kind.Variants, seeded)
		case Unit:
		default:
			if v, ok := seeded.Get(q.Path); ok {
				q.Default = Suggested(v)
			}
		}
	}
}

func applySeededVariants(variants []Variant, seeded *Responses) {
	for _, v := range variants {
		if nested, ok := v.Kind.(AllOf); ok {
			applySeeded(nested.Questions, seeded)
		}
	}
}

// applyAssumption fixes the answer under path: the question subtree is
// removed from the definition and the flattened value is kept in a shadow
// store consulted only at reconstruction.
func applyAssumption(def *Definition, root reflect.Type, path ResponsePath, value any) error {
	if path.IsRoot() {
		return fmt.Errorf("survey: cannot assume the whole survey")
	}
	q, ok := removeQuestion(&def.Questions, path)
	if !ok {
		return fmt.Errorf("survey: no question at assumed path %q", path)
	}
	shadow := NewResponses()
	if err := flattenAt(root, path, value, shadow); err != nil {
		return err
	}
	if err := verifyAssumed(q, shadow); err != nil {
		return err
	}
	def.assumed.Merge(shadow)
	return nil
}

// verifyAssumed checks that a flattened assumption fully and legally covers
// the subtree it replaces, so a bad assumption fails at derivation instead
// of surfacing as a structural error after collection.
func verifyAssumed(q Question, shadow *Responses) error {
	switch kind := q.Kind.(type) {
	case AllOf:
		for _, nested := range kind.Questions {
			if err := verifyAssumed(nested, shadow); err != nil {
				return err
			}
		}
		return nil
	case OneOf:
		site := q.Path.Child(SelectedVariantKey)
		idx, err := shadow.ChosenVariantAt(site)
		if err != nil {
			return fmt.Errorf("survey: assumption at %q is missing a variant selection", q.Path)
		}
		if idx < 0 || idx >= len(kind.Variants) {
			return fmt.Errorf("survey: assumption at %q selects variant %d of %d", q.Path, idx, len(kind.Variants))
		}
		if nested, ok := kind.Variants[idx].Kind.(AllOf); ok {
			for _, nq := range nested.Questions {
				if err := verifyAssumed(nq, shadow); err != nil {
					return err
				}
			}
		}
		return nil
	case AnyOf:
		site := q.Path.Child(SelectedVariantsKey)
		idxs, err := shadow.ChosenVariantsAt(site)
		if err != nil {
			return fmt.Errorf("survey: assumption at %q is missing a multi-select", q.Path)
		}
		for _, idx := range idxs {
			if idx < 0 || idx >= len(kind.Variants) {
				return fmt.Errorf("survey: assumption at %q selects variant %d of %d", q.Path, idx, len(kind.Variants))
			}
			if nested, ok := kind.Variants[idx].Kind.(AllOf); ok {
				for _, nq := range nested.Questions {
					if err := verifyAssumed(nq, shadow); err != nil {
						return err
					}
				}
			}
		}
		return nil
	case Unit:
		return nil
	default:
		v, ok := shadow.Get(q.Path)
		if !ok {
			return fmt.Errorf("survey: assumption leaves %q unanswered", q.Path)
		}
		if msg := checkBounds(q.Kind, v); msg != "" {
			return fmt.Errorf("survey: assumption at %q: %s", q.Path, msg)
		}
		return nil
	}
}

// removeQuestion detaches the question at path, searching nested groups and
// selection variants.
func removeQuestion(questions *[]Question, path ResponsePath) (Question, bool) {
	qs := *questions
	for i := range qs {
		if qs[i].Path == path {
			q := qs[i]
			*questions = append(qs[:i:i], qs[i+1:]...)
			return q, true
		}
		if !path.HasPrefix(qs[i].Path) {
			continue
		}
		switch kind := qs[i].Kind.(type) {
		case AllOf:
			if q, ok := removeQuestion(&kind.Questions, path); ok {
				qs[i].Kind = kind
				return q, true
			}
		case OneOf:
			if q, ok := removeFromVariants(kind.Variants, path); ok {
				return q, true
			}
		case AnyOf:
			if q, ok := removeFromVariants(kind.Variants, path); ok {
				return q, true
			}
		}
	}
	return Question{}, false
}

func removeFromVariants(variants []Variant, path ResponsePath) (Question, bool) {
	for vi := range variants {
		nested, ok := variants[vi].Kind.(AllOf)
		if !ok {
			continue
		}
		if q, ok := removeQuestion(&nested.Questions, path); ok {
			variants[vi].Kind = nested
			return q, true
		}
	}
	return Question{}, false
}
