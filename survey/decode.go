package survey

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Decode rebuilds a typed value from collected responses. dst must be a
// non-nil pointer to the type the definition was derived from. Assumed
// values fill in the subtrees that were never collected and win over any
// stray entries at the same paths. dst is written only when the whole
// reconstruction succeeds.
func (d *Definition) Decode(responses *Responses, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("survey: decode destination must be a non-nil pointer, got %T", dst)
	}
	if rv.Type().Elem() != d.goType {
		return fmt.Errorf("survey: decode destination is %s, definition was derived from %s", rv.Type().Elem(), d.goType)
	}
	effective := NewResponses()
	if responses != nil {
		effective.Merge(responses)
	}
	effective.Merge(d.assumed)

	fresh := reflect.New(d.goType).Elem()
	if err := decodeInto(d.goType, fresh, RootPath(), effective); err != nil {
		return err
	}
	rv.Elem().Set(fresh)
	return nil
}

func decodeInto(ft reflect.Type, dst reflect.Value, path ResponsePath, store *Responses) error {
	switch ft.Kind() {
	case reflect.Pointer:
		if !present(ft.Elem(), path, store) {
			return nil
		}
		elem := reflect.New(ft.Elem())
		if err := decodeInto(ft.Elem(), elem.Elem(), path, store); err != nil {
			return err
		}
		dst.Set(elem)
		return nil
	case reflect.String:
		s, err := store.StringAt(path)
		if err != nil {
			return structural(path, err)
		}
		dst.SetString(s)
		return nil
	case reflect.Bool:
		b, err := store.BoolAt(path)
		if err != nil {
			return structural(path, err)
		}
		dst.SetBool(b)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := store.IntAt(path)
		if err != nil {
			return structural(path, err)
		}
		if dst.OverflowInt(i) {
			return &CoercionError{Path: path, Target: ft.String(), Value: IntValue(i)}
		}
		dst.SetInt(i)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, err := store.IntAt(path)
		if err != nil {
			return structural(path, err)
		}
		if i < 0 || dst.OverflowUint(uint64(i)) {
			return &CoercionError{Path: path, Target: ft.String(), Value: IntValue(i)}
		}
		dst.SetUint(uint64(i))
		return nil
	case reflect.Float32, reflect.Float64:
		f, err := store.FloatAt(path)
		if err != nil {
			return structural(path, err)
		}
		if dst.OverflowFloat(f) {
			return &CoercionError{Path: path, Target: ft.String(), Value: FloatValue(f)}
		}
		dst.SetFloat(f)
		return nil
	case reflect.Struct:
		return decodeStruct(ft, dst, path, store)
	case reflect.Interface:
		return decodeUnion(ft, dst, path, store)
	case reflect.Slice:
		return decodeSlice(ft, dst, path, store)
	default:
		return &StructuralError{Path: path, Detail: fmt.Sprintf("cannot reconstruct %s", ft)}
	}
}

func decodeStruct(ft reflect.Type, dst reflect.Value, path ResponsePath, store *Responses) error {
	for i := 0; i < ft.NumField(); i++ {
		f := ft.Field(i)
		if f.PkgPath != "" {
			continue
		}
		name := fieldPathName(f)
		if name == "-" {
			continue
		}
		if err := decodeInto(f.Type, dst.Field(i), path.Child(name), store); err != nil {
			return err
		}
	}
	return nil
}

func decodeUnion(ft reflect.Type, dst reflect.Value, path ResponsePath, store *Responses) error {
	cases, ok := unionCasesOf(ft)
	if !ok {
		return &StructuralError{Path: path, Detail: fmt.Sprintf("interface %s is not a registered union", ft)}
	}
	idx, err := store.ChosenVariantAt(path.Child(SelectedVariantKey))
	if err != nil {
		return structural(path, err)
	}
	if idx < 0 || idx >= len(cases) {
		return &StructuralError{Path: path, Detail: fmt.Sprintf("variant %d out of range, union has %d cases", idx, len(cases))}
	}
	ct := reflect.TypeOf(cases[idx].Value)
	cv := reflect.New(ct).Elem()
	if err := decodeStruct(ct, cv, path, store); err != nil {
		return err
	}
	dst.Set(cv)
	return nil
}

func decodeSlice(ft reflect.Type, dst reflect.Value, path ResponsePath, store *Responses) error {
	elem := ft.Elem()
	if elem.Kind() == reflect.Interface {
		return decodeMultiSelect(ft, dst, path, store)
	}
	out := reflect.MakeSlice(ft, 0, 0)
	switch elem.Kind() {
	case reflect.String:
		items, err := store.StringListAt(path)
		if err != nil {
			return structural(path, err)
		}
		for _, s := range items {
			ev := reflect.New(elem).Elem()
			ev.SetString(s)
			out = reflect.Append(out, ev)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		items, err := store.IntListAt(path)
		if err != nil {
			return structural(path, err)
		}
		for _, i := range items {
			ev := reflect.New(elem).Elem()
			if ev.OverflowInt(i) {
				return &CoercionError{Path: path, Target: elem.String(), Value: IntValue(i)}
			}
			ev.SetInt(i)
			out = reflect.Append(out, ev)
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		items, err := store.IntListAt(path)
		if err != nil {
			return structural(path, err)
		}
		for _, i := range items {
			ev := reflect.New(elem).Elem()
			if i < 0 || ev.OverflowUint(uint64(i)) {
				return &CoercionError{Path: path, Target: elem.String(), Value: IntValue(i)}
			}
			ev.SetUint(uint64(i))
			out = reflect.Append(out, ev)
		}
	case reflect.Float32, reflect.Float64:
		items, err := store.FloatListAt(path)
		if err != nil {
			return structural(path, err)
		}
		for _, f := range items {
			ev := reflect.New(elem).Elem()
			if ev.OverflowFloat(f) {
				return &CoercionError{Path: path, Target: elem.String(), Value: FloatValue(f)}
			}
			ev.SetFloat(f)
			out = reflect.Append(out, ev)
		}
	default:
		return &StructuralError{Path: path, Detail: fmt.Sprintf("cannot reconstruct slice of %s", elem)}
	}
	dst.Set(out)
	return nil
}

// decodeMultiSelect rebuilds a slice of union values in selection order,
// reading each chosen case's fields from under the variant-index segment.
func decodeMultiSelect(ft reflect.Type, dst reflect.Value, path ResponsePath, store *Responses) error {
	elem := ft.Elem()
	cases, ok := unionCasesOf(elem)
	if !ok {
		return &StructuralError{Path: path, Detail: fmt.Sprintf("interface %s is not a registered union", elem)}
	}
	idxs, err := store.ChosenVariantsAt(path.Child(SelectedVariantsKey))
	if err != nil {
		return structural(path, err)
	}
	out := reflect.MakeSlice(ft, 0, len(idxs))
	for _, idx := range idxs {
		if idx < 0 || idx >= len(cases) {
			return &StructuralError{Path: path, Detail: fmt.Sprintf("variant %d out of range, union has %d cases", idx, len(cases))}
		}
		ct := reflect.TypeOf(cases[idx].Value)
		cv := reflect.New(ct).Elem()
		if exportedFieldCount(ct) > 0 {
			if err := decodeStruct(ct, cv, path.Child(strconv.Itoa(idx)), store); err != nil {
				return err
			}
		}
		ev := reflect.New(elem).Elem()
		ev.Set(cv)
		out = reflect.Append(out, ev)
	}
	dst.Set(out)
	return nil
}

// present decides whether an optional site was answered. A scalar counts as
// answered when its response carries a value; composites count when any
// entry exists under their path.
func present(ft reflect.Type, path ResponsePath, store *Responses) bool {
	switch ft.Kind() {
	case reflect.String:
		return store.HasValue(path)
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return store.Contains(path)
	default:
		for _, p := range store.Paths() {
			if p.HasPrefix(path) {
				return true
			}
		}
		return false
	}
}

func structural(path ResponsePath, err error) error {
	detail := err.Error()
	detail = strings.TrimPrefix(detail, "survey: ")
	return &StructuralError{Path: path, Detail: detail}
}
