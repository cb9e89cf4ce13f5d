package survey

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"unicode"
)

// Case is one selectable concrete type of a registered union. Value is a
// prototype of the case's struct type; a zero-field struct is a unit case.
type Case struct {
	Name  string
	Value any
}

// NewCase pairs a display label with a case prototype.
func NewCase(name string, prototype any) Case {
	return Case{Name: name, Value: prototype}
}

var unionRegistry sync.Map // reflect.Type (interface) -> []Case

// RegisterUnion declares the closed set of cases of the union interface T,
// in declaration order. Every case prototype must be a non-pointer struct
// implementing T. Registration normally happens from an init function;
// duplicate registration replaces the previous case list.
//
// RegisterUnion panics on misuse: union membership is program structure, not
// runtime input.
func RegisterUnion[T any](cases ...Case) {
	it := reflect.TypeOf((*T)(nil)).Elem()
	if it.Kind() != reflect.Interface {
		panic(fmt.Sprintf("survey: RegisterUnion expects an interface type, got %s", it))
	}
	if len(cases) == 0 {
		panic(fmt.Sprintf("survey: union %s registered with no cases", it))
	}
	for _, c := range cases {
		if strings.TrimSpace(c.Name) == "" {
			panic(fmt.Sprintf("survey: union %s has a case with an empty name", it))
		}
		ct := reflect.TypeOf(c.Value)
		if ct == nil || ct.Kind() != reflect.Struct {
			panic(fmt.Sprintf("survey: union %s case %q prototype must be a struct value", it, c.Name))
		}
		if !ct.Implements(it) {
			panic(fmt.Sprintf("survey: union %s case %q (%s) does not implement the interface", it, c.Name, ct))
		}
	}
	unionRegistry.Store(it, cases)
}

func unionCasesOf(t reflect.Type) ([]Case, bool) {
	v, ok := unionRegistry.Load(t)
	if !ok {
		return nil, false
	}
	return v.([]Case), true
}

func caseIndexOf(cases []Case, concrete reflect.Type) (int, bool) {
	for i, c := range cases {
		if reflect.TypeOf(c.Value) == concrete {
			return i, true
		}
	}
	return 0, false
}

// Option configures a derivation.
type Option func(*deriveConfig)

type deriveConfig struct {
	prelude  string
	epilogue string

	instance       any
	suggestions    []pathValue
	assumptions    []pathValue
	leafValidators map[ResponsePath][]LeafValidator
	treeValidators []TreeValidator
}

type pathValue struct {
	path  ResponsePath
	value any
}

// WithPrelude sets the text shown before collection starts.
func WithPrelude(text string) Option {
	return func(c *deriveConfig) { c.prelude = text }
}

// WithEpilogue sets the text shown after collection completes.
func WithEpilogue(text string) Option {
	return func(c *deriveConfig) { c.epilogue = text }
}

// WithValidator registers a per-leaf validator for the dotted path. Multiple
// validators for one path run in registration order, after the declared
// bound checks.
func WithValidator(path string, fn LeafValidator) Option {
	return func(c *deriveConfig) {
		p := ParsePath(path)
		if c.leafValidators == nil {
			c.leafValidators = make(map[ResponsePath][]LeafValidator)
		}
		c.leafValidators[p] = append(c.leafValidators[p], fn)
	}
}

// WithTreeValidator registers a whole-tree validator.
func WithTreeValidator(fn TreeValidator) Option {
	return func(c *deriveConfig) { c.treeValidators = append(c.treeValidators, fn) }
}

// WithSuggestion pre-fills an editable default at the dotted path. The value
// may be a scalar, a ResponseValue, or a composite (struct, union case,
// slice) whose leaves are seeded individually.
func WithSuggestion(path string, value any) Option {
	return func(c *deriveConfig) {
		c.suggestions = append(c.suggestions, pathValue{path: ParsePath(path), value: value})
	}
}

// WithAssumption fixes the answer at the dotted path and removes the whole
// subtree from what a backend ever receives. Reconstruction substitutes the
// assumed value verbatim.
func WithAssumption(path string, value any) Option {
	return func(c *deriveConfig) {
		c.assumptions = append(c.assumptions, pathValue{path: ParsePath(path), value: value})
	}
}

// WithSuggestions seeds every leaf with the corresponding value of an existing
// instance, as an editable suggestion.
func WithSuggestions(instance any) Option {
	return func(c *deriveConfig) { c.instance = instance }
}

// Derive builds the question schema for T. The transform is purely
// structural: structs become AllOf groups, registered union interfaces
// OneOf selections, slices of union types AnyOf multi-selects, and slices of
// scalars list leaves. Derive fails only for types the schema model cannot
// express (maps, channels, unregistered interfaces) or for options naming
// unknown paths.
func Derive[T any](opts ...Option) (*Definition, error) {
	return DeriveType(reflect.TypeOf((*T)(nil)).Elem(), opts...)
}

// DeriveType is the non-generic form of Derive.
func DeriveType(t reflect.Type, opts ...Option) (*Definition, error) {
	var cfg deriveConfig
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}

	questions, err := questionsForType(t, RootPath())
	if err != nil {
		return nil, err
	}
	if err := checkPathsScoped(questions, map[ResponsePath]struct{}{}); err != nil {
		return nil, err
	}

	def := &Definition{
		Prelude:        cfg.prelude,
		Questions:      questions,
		Epilogue:       cfg.epilogue,
		goType:         t,
		leafValidators: cfg.leafValidators,
		treeValidators: cfg.treeValidators,
		assumed:        NewResponses(),
	}

	seeded := NewResponses()
	if cfg.instance != nil {
		iv := reflect.ValueOf(cfg.instance)
		if !iv.IsValid() || !iv.Type().AssignableTo(t) {
			return nil, fmt.Errorf("survey: instance type %T does not match %s", cfg.instance, t)
		}
		if err := flattenValue(t, iv, RootPath(), seeded); err != nil {
			return nil, err
		}
	}
	for _, s := range cfg.suggestions {
		if err := flattenAt(t, s.path, s.value, seeded); err != nil {
			return nil, err
		}
	}
	applySeeded(def.Questions, seeded)

	for _, a := range cfg.assumptions {
		if err := applyAssumption(def, t, a.path, a.value); err != nil {
			return nil, err
		}
	}
	return def, nil
}

// questionsForType builds the question list for a root type. Structs expand
// to one question per field; a registered union becomes a single OneOf at
// the root path.
func questionsForType(t reflect.Type, path ResponsePath) ([]Question, error) {
	if t.Kind() == reflect.Interface {
		cases, ok := unionCasesOf(t)
		if !ok {
			return nil, fmt.Errorf("survey: interface %s is not a registered union", t)
		}
		variants, err := oneOfVariants(cases, path)
		if err != nil {
			return nil, err
		}
		return []Question{{Path: path, Kind: OneOf{Variants: variants}}}, nil
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("survey: cannot derive a schema from %s", t)
	}
	return structQuestions(t, path)
}

func structQuestions(t reflect.Type, path ResponsePath) ([]Question, error) {
	var out []Question
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" { // unexported
			continue
		}
		name := fieldPathName(f)
		if name == "-" {
			continue
		}
		opts, err := parseSurveyTag(f.Tag.Get("survey"))
		if err != nil {
			return nil, fmt.Errorf("survey: field %s.%s: %w", t, f.Name, err)
		}
		q, err := questionForField(f.Type, path.Child(name), opts)
		if err != nil {
			return nil, fmt.Errorf("survey: field %s.%s: %w", t, f.Name, err)
		}
		q.Ask = opts.ask
		if q.Ask == "" {
			q.Ask = humanize(f.Name)
		}
		out = append(out, q)
	}
	return out, nil
}

func questionForField(ft reflect.Type, path ResponsePath, opts fieldOpts) (Question, error) {
	if ft.Kind() == reflect.Pointer {
		// Optional site: same question as the element type; absence is
		// resolved at reconstruction.
		ft = ft.Elem()
	}
	q := Question{Path: path}
	switch ft.Kind() {
	case reflect.String:
		switch {
		case opts.mask:
			q.Kind = Masked{}
		case opts.multiline:
			q.Kind = Multiline{}
		default:
			q.Kind = Input{}
		}
	case reflect.Bool:
		q.Kind = Confirm{}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		kind, err := intKind(opts)
		if err != nil {
			return Question{}, err
		}
		q.Kind = kind
	case reflect.Float32, reflect.Float64:
		kind, err := floatKind(opts)
		if err != nil {
			return Question{}, err
		}
		q.Kind = kind
	case reflect.Struct:
		nested, err := structQuestions(ft, path)
		if err != nil {
			return Question{}, err
		}
		q.Kind = AllOf{Questions: nested}
	case reflect.Interface:
		cases, ok := unionCasesOf(ft)
		if !ok {
			return Question{}, fmt.Errorf("interface %s is not a registered union", ft)
		}
		variants, err := oneOfVariants(cases, path)
		if err != nil {
			return Question{}, err
		}
		q.Kind = OneOf{Variants: variants}
	case reflect.Slice:
		kind, err := sliceKind(ft.Elem(), path, opts)
		if err != nil {
			return Question{}, err
		}
		q.Kind = kind
	default:
		return Question{}, fmt.Errorf("unsupported type %s", ft)
	}
	return q, nil
}

func intKind(opts fieldOpts) (IntInput, error) {
	var kind IntInput
	if opts.min != "" {
		v, err := strconv.ParseInt(opts.min, 10, 64)
		if err != nil {
			return kind, fmt.Errorf("bad min bound %q", opts.min)
		}
		kind.Min = &v
	}
	if opts.max != "" {
		v, err := strconv.ParseInt(opts.max, 10, 64)
		if err != nil {
			return kind, fmt.Errorf("bad max bound %q", opts.max)
		}
		kind.Max = &v
	}
	return kind, nil
}

func floatKind(opts fieldOpts) (FloatInput, error) {
	var kind FloatInput
	if opts.min != "" {
		v, err := strconv.ParseFloat(opts.min, 64)
		if err != nil {
			return kind, fmt.Errorf("bad min bound %q", opts.min)
		}
		kind.Min = &v
	}
	if opts.max != "" {
		v, err := strconv.ParseFloat(opts.max, 64)
		if err != nil {
			return kind, fmt.Errorf("bad max bound %q", opts.max)
		}
		kind.Max = &v
	}
	return kind, nil
}

func sliceKind(elem reflect.Type, path ResponsePath, opts fieldOpts) (Kind, error) {
	switch elem.Kind() {
	case reflect.String:
		return List{Elem: Input{}, MinItems: opts.minItems, MaxItems: opts.maxItems}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		ik, err := intKind(opts)
		if err != nil {
			return nil, err
		}
		return List{Elem: ik, MinItems: opts.minItems, MaxItems: opts.maxItems}, nil
	case reflect.Float32, reflect.Float64:
		fk, err := floatKind(opts)
		if err != nil {
			return nil, err
		}
		return List{Elem: fk, MinItems: opts.minItems, MaxItems: opts.maxItems}, nil
	case reflect.Interface:
		cases, ok := unionCasesOf(elem)
		if !ok {
			return nil, fmt.Errorf("interface %s is not a registered union", elem)
		}
		variants, err := anyOfVariants(cases, path)
		if err != nil {
			return nil, err
		}
		return AnyOf{Variants: variants}, nil
	default:
		return nil, fmt.Errorf("unsupported slice element %s", elem)
	}
}

// oneOfVariants builds the selectable cases of a OneOf. Nested questions of
// the chosen case live directly under the parent path.
func oneOfVariants(cases []Case, path ResponsePath) ([]Variant, error) {
	out := make([]Variant, 0, len(cases))
	for _, c := range cases {
		ct := reflect.TypeOf(c.Value)
		v, err := variantFor(c.Name, ct, path)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// anyOfVariants builds the selectable cases of an AnyOf. Struct-like cases
// are addressed under the parent path extended by the variant index, so two
// different chosen cases never alias.
func anyOfVariants(cases []Case, path ResponsePath) ([]Variant, error) {
	out := make([]Variant, 0, len(cases))
	for i, c := range cases {
		ct := reflect.TypeOf(c.Value)
		v, err := variantFor(c.Name, ct, path.Child(strconv.Itoa(i)))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func variantFor(name string, ct reflect.Type, path ResponsePath) (Variant, error) {
	if exportedFieldCount(ct) == 0 {
		return Variant{Name: name, Kind: Unit{}}, nil
	}
	nested, err := structQuestions(ct, path)
	if err != nil {
		return Variant{}, err
	}
	return Variant{Name: name, Kind: AllOf{Questions: nested}}, nil
}

func exportedFieldCount(t reflect.Type) int {
	n := 0
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).PkgPath == "" {
			n++
		}
	}
	return n
}

// checkPathsScoped enforces leaf-path uniqueness. Variants of one selection
// site legitimately share the parent namespace with each other's siblings
// never being collected together, so each variant branch is checked against
// a copy of the enclosing scope.
func checkPathsScoped(questions []Question, seen map[ResponsePath]struct{}) error {
	record := func(p ResponsePath) error {
		if _, dup := seen[p]; dup {
			return fmt.Errorf("survey: duplicate question path %q", p)
		}
		seen[p] = struct{}{}
		return nil
	}
	for _, q := range questions {
		switch kind := q.Kind.(type) {
		case AllOf:
			if err := checkPathsScoped(kind.Questions, seen); err != nil {
				return err
			}
		case OneOf:
			if err := record(q.Path.Child(SelectedVariantKey)); err != nil {
				return err
			}
			if err := checkVariantPaths(kind.Variants, seen); err != nil {
				return err
			}
		case AnyOf:
			if err := record(q.Path.Child(SelectedVariantsKey)); err != nil {
				return err
			}
			if err := checkVariantPaths(kind.Variants, seen); err != nil {
				return err
			}
		case Unit:
		default:
			if err := record(q.Path); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkVariantPaths(variants []Variant, seen map[ResponsePath]struct{}) error {
	for _, v := range variants {
		nested, ok := v.Kind.(AllOf)
		if !ok {
			continue
		}
		branch := make(map[ResponsePath]struct{}, len(seen))
		for p := range seen {
			branch[p] = struct{}{}
		}
		if err := checkPathsScoped(nested.Questions, branch); err != nil {
			return err
		}
	}
	return nil
}

// --- struct tag ---

type fieldOpts struct {
	ask       string
	mask      bool
	multiline bool
	min, max  string
	minItems  *int
	maxItems  *int
}

// parseSurveyTag parses the comma-separated `survey` tag. Supported tokens:
// ask=Text, min=N, max=N, minitems=N, maxitems=N, mask, multiline. Unknown
// tokens are rejected so typos surface at derivation instead of silently
// losing a constraint.
func parseSurveyTag(tag string) (fieldOpts, error) {
	var opts fieldOpts
	if tag == "" {
		return opts, nil
	}
	for _, part := range strings.Split(tag, ",") {
		if part == "" {
			continue
		}
		key, val, _ := strings.Cut(part, "=")
		switch key {
		case "ask":
			opts.ask = val
		case "mask":
			opts.mask = true
		case "multiline":
			opts.multiline = true
		case "min":
			opts.min = val
		case "max":
			opts.max = val
		case "minitems":
			n, err := strconv.Atoi(val)
			if err != nil {
				return opts, fmt.Errorf("bad minitems %q", val)
			}
			opts.minItems = &n
		case "maxitems":
			n, err := strconv.Atoi(val)
			if err != nil {
				return opts, fmt.Errorf("bad maxitems %q", val)
			}
			opts.maxItems = &n
		default:
			return opts, fmt.Errorf("unknown survey tag token %q", key)
		}
	}
	return opts, nil
}

// fieldPathName returns the path segment for a struct field: the json tag
// name when present, the lower-camel field name otherwise.
func fieldPathName(f reflect.StructField) string {
	if tag := f.Tag.Get("json"); tag != "" {
		name, _, _ := strings.Cut(tag, ",")
		if name != "" {
			return name
		}
	}
	return lowerFirst(f.Name)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// humanize renders a field name as a default prompt: "CustomerName" becomes
// "Customer Name".
func humanize(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && unicode.IsLower(runes[i-1]) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
