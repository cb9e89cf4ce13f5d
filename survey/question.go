package survey

// Question is one site in the schema tree: where the answer goes (Path), what
// to show the user (Ask), what to collect (Kind), and an optional pre-seeded
// value.
type Question struct {
	Path    ResponsePath
	Ask     string
	Kind    Kind
	Default DefaultValue
}

// Kind is the closed set of question shapes. Leaf kinds collect a single
// ResponseValue; composite kinds (AllOf, OneOf, AnyOf) group or select nested
// questions.
type Kind interface {
	isKind()
}

// Unit collects nothing (payload-less union cases).
type Unit struct{}

// Input is a single-line text leaf.
type Input struct{}

// Masked is a text leaf whose echo should be hidden (passwords).
type Masked struct {
	// Mask is the substitution rune; 0 means the surface default.
	Mask rune
}

// Multiline is a free-form text leaf (editor or textarea).
type Multiline struct{}

// IntInput is an integer leaf with optional inclusive bounds.
type IntInput struct {
	Min, Max *int64
}

// FloatInput is a floating-point leaf with optional inclusive bounds.
type FloatInput struct {
	Min, Max *float64
}

// Confirm is a yes/no leaf.
type Confirm struct {
	Default bool
}

// List is a leaf collecting a homogeneous list of scalars. Elem is the
// element shape and carries element-level bounds; it must be Input, IntInput
// or FloatInput.
type List struct {
	Elem     Kind
	MinItems *int
	MaxItems *int
}

/// AllOf aggregates a record's fields: every sub-question is answered, in
// declaration order. Sub-question paths extend the parent path by the field
// name.
type AllOf struct {
	Questions []Question
}

// OneOf selects exactly one case of a tagged union. The chosen index is
// stored at <path>.selected_variant; only the chosen variant's nested
// questions are collected, addressed directly under the parent path.
type OneOf struct {
	Variants []Variant
	// Default preselects a variant index.
	Default *int
}

// AnyOf selects zero or more cases, stored in selection order at
// <path>.selected_variants. Struct-like selections recurse under
// <path>.<variantIndex> so two different chosen cases never alias paths.
type AnyOf struct {
	Variants []Variant
	// Defaults preselects variant indices, in selection order.
	Defaults []int
}

func (Unit) isKind()       {}
func (Input) isKind()      {}
func (Masked) isKind()     {}
func (Multiline) isKind()  {}
func (IntInput) isKind()   {}
func (FloatInput) isKind() {}
func (Confirm) isKind()    {}
func (List) isKind()       {}
func (AllOf) isKind()      {}
func (OneOf) isKind()      {}
func (AnyOf) isKind()      {}

/// Variant is one selectable case of a OneOf or AnyOf: a display label plus
// what to collect for it. Kind is Unit for payload-less cases and AllOf for
// cases with fields (single-payload cases become an AllOf with one question).
type Variant struct {
	Name string
	Kind Kind
}

// IsLeaf reports whether k collects exactly one ResponseValue.
func IsLeaf(k Kind) bool {
	switch k.(type) {
	case Input, Masked, Multiline, IntInput, FloatInput, Confirm, List:
		return true
	}
	return false
}

// IsComposite reports whether k groups or selects nested questions.
func IsComposite(k Kind) bool {
	switch k.(type) {
	case AllOf, OneOf, AnyOf:
		return true
	}
	return false
}
