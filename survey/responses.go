package survey

import "sort"

// Responses is the flat, path-keyed store of collected answers. One store is
// owned by exactly one in-flight collection; insertion order is irrelevant to
// reconstruction.
type Responses struct {
	values map[ResponsePath]ResponseValue
}

// NewResponses returns an empty store.
func NewResponses() *Responses {
	return &Responses{values: make(map[ResponsePath]ResponseValue)}
}

// Set stores value at path, replacing any previous entry.
func (r *Responses) Set(path ResponsePath, value ResponseValue) {
	if r.values == nil {
		r.values = make(map[ResponsePath]ResponseValue)
	}
	r.values[path] = value
}

// Get returns the entry at path.
func (r *Responses) Get(path ResponsePath) (ResponseValue, bool) {
	v, ok := r.values[path]
	return v, ok
}

// Contains reports whether an entry exists at path.
func (r *Responses) Contains(path ResponsePath) bool {
	_, ok := r.values[path]
	return ok
}

// Delete removes the entry at path.
func (r *Responses) Delete(path ResponsePath) {
	delete(r.values, path)
}

// Len returns the number of entries.
func (r *Responses) Len() int { return len(r.values) }

// Paths returns all keys ordered by segment sequence.
func (r *Responses) Paths() []ResponsePath {
	out := make([]ResponsePath, 0, len(r.values))
	for p := range r.values {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Merge copies every entry of other into r, overwriting collisions.
func (r *Responses) Merge(other *Responses) {
	if other == nil {
		return
	}
	for p, v := range other.values {
		r.Set(p, v)
	}
}

// Clone returns an independent copy of the store.
func (r *Responses) Clone() *Responses {
	out := NewResponses()
	out.Merge(r)
	return out
}

// FilterPrefix returns the entries at or beneath prefix, re-keyed with the
// prefix stripped. Nested reconstruction uses this so a subtree decoder sees
// root-level paths.
func (r *Responses) FilterPrefix(prefix ResponsePath) *Responses {
	out := NewResponses()
	for p, v := range r.values {
		if stripped, ok := p.StripPrefix(prefix); ok {
			out.Set(stripped, v)
		}
	}
	return out
}

// HasValue reports whether path holds a non-empty answer. An empty string
// counts as absent; optional fields use this to distinguish "skipped" from
// "answered with empty".
func (r *Responses) HasValue(path ResponsePath) bool {
	v, ok := r.values[path]
	if !ok {
		return false
	}
	if s, isStr := v.AsString(); isStr {
		return s != ""
	}
	return true
}

func (r *Responses) typed(path ResponsePath, want ValueKind) (ResponseValue, error) {
	v, ok := r.values[path]
	if !ok {
		return ResponseValue{}, &MissingResponseError{Path: path}
	}
	if v.Kind() != want {
		return ResponseValue{}, &TypeMismatchError{Path: path, Want: want, Got: v.Kind()}
	}
	return v, nil
}

// StringAt returns the string entry at path.
func (r *Responses) StringAt(path ResponsePath) (string, error) {
	v, err := r.typed(path, KindString)
	if err != nil {
		return "", err
	}
	s, _ := v.AsString()
	return s, nil
}

// IntAt returns the integer entry at path.
func (r *Responses) IntAt(path ResponsePath) (int64, error) {
	v, err := r.typed(path, KindInt)
	if err != nil {
		return 0, err
	}
	i, _ := v.AsInt()
	return i, nil
}

// FloatAt returns the float entry at path.
func (r *Responses) FloatAt(path ResponsePath) (float64, error) {
	v, err := r.typed(path, KindFloat)
	if err != nil {
		return 0, err
	}
	f, _ := v.AsFloat()
	return f, nil
}

// BoolAt returns the boolean entry at path.
func (r *Responses) BoolAt(path ResponsePath) (bool, error) {
	v, err := r.typed(path, KindBool)
	if err != nil {
		return false, err
	}
	b, _ := v.AsBool()
	return b, nil
}

// ChosenVariantAt returns the single-choice selection at path.
func (r *Responses) ChosenVariantAt(path ResponsePath) (int, error) {
	v, err := r.typed(path, KindChosenVariant)
	if err != nil {
		return 0, err
	}
	idx, _ := v.AsChosenVariant()
	return idx, nil
}

// ChosenVariantsAt returns the multi-choice selection at path, in selection
// order.
func (r *Responses) ChosenVariantsAt(path ResponsePath) ([]int, error) {
	v, err := r.typed(path, KindChosenVariants)
	if err != nil {
		return nil, err
	}
	s, _ := v.AsChosenVariants()
	return s, nil
}

// StringListAt returns the string list entry at path.
func (r *Responses) StringListAt(path ResponsePath) ([]string, error) {
	v, err := r.typed(path, KindStringList)
	if err != nil {
		return nil, err
	}
	s, _ := v.AsStringList()
	return s, nil
}

// IntListAt returns the integer list entry at path.
func (r *Responses) IntListAt(path ResponsePath) ([]int64, error) {
	v, err := r.typed(path, KindIntList)
	if err != nil {
		return nil, err
	}
	s, _ := v.AsIntList()
	return s, nil
}

// FloatListAt returns the float list entry at path.
func (r *Responses) FloatListAt(path ResponsePath) ([]float64, error) {
	v, err := r.typed(path, KindFloatList)
	if err != nil {
		return nil, err
	}
	s, _ := v.AsFloatList()
	return s, nil
}
