package survey

// DefaultState enumerates the three pre-seeding states of a question site.
type DefaultState int

const (
	// DefaultNone means the user must provide input.
	DefaultNone DefaultState = iota
	// DefaultSuggested pre-fills an editable value.
	DefaultSuggested
	// DefaultAssumed fixes the value; the site is never shown to a surface.
	DefaultAssumed
)

// DefaultValue is a question site's pre-seeding state. The zero value is
// DefaultNone.
type DefaultValue struct {
	state DefaultState
	value ResponseValue
}

// Suggested returns a user-editable pre-filled default.
func Suggested(v ResponseValue) DefaultValue {
	return DefaultValue{state: DefaultSuggested, value: v}
}

// Assumed returns a fixed default that elides its question subtree.
func Assumed(v ResponseValue) DefaultValue {
	return DefaultValue{state: DefaultAssumed, value: v}
}

// State returns the pre-seeding state.
func (d DefaultValue) State() DefaultState { return d.state }

func (d DefaultValue) IsNone() bool      { return d.state == DefaultNone }
func (d DefaultValue) IsSuggested() bool { return d.state == DefaultSuggested }
func (d DefaultValue) IsAssumed() bool   { return d.state == DefaultAssumed }

// Value returns the seeded value; ok is false for DefaultNone.
func (d DefaultValue) Value() (ResponseValue, bool) {
	return d.value, d.state != DefaultNone
}
