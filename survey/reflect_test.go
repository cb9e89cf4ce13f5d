package survey

import (
	"strings"
	"testing"
)

type testAddress struct {
	Street string
	City   string
}

type testProfile struct {
	CustomerName string `survey:"ask=Full name"`
	Age          uint8  `survey:"min=0,max=150"`
	Secret       string `survey:"mask"`
	Bio          string `survey:"multiline"`
	Score        float64
	Subscribed   bool
	Address      testAddress
	Referral     *string
	Tags         []string `survey:"minitems=1,maxitems=5"`
}

type testEmployment interface{ isTestEmployment() }

type testUnemployed struct{}
type testEmployed struct {
	Company string
	Weeks   uint8 `survey:"ask=Notice (weeks),max=52"`
}

func (testUnemployed) isTestEmployment() {}
func (testEmployed) isTestEmployment()   {}

type testPerk interface{ isTestPerk() }

type testGym struct{}
type testHomeOffice struct {
	Days uint8 `survey:"min=1,max=5"`
}
type testTransit struct{}

func (testGym) isTestPerk()        {}
func (testHomeOffice) isTestPerk() {}
func (testTransit) isTestPerk()    {}

type testApplicant struct {
	Name   string
	Status testEmployment
	Perks  []testPerk
}

func init() {
	RegisterUnion[testEmployment](
		NewCase("Unemployed", testUnemployed{}),
		NewCase("Employed", testEmployed{}),
	)
	RegisterUnion[testPerk](
		NewCase("Gym", testGym{}),
		NewCase("Home office", testHomeOffice{}),
		NewCase("Transit", testTransit{}),
	)
}

func findQuestion(t *testing.T, questions []Question, path string) Question {
	t.Helper()
	var found *Question
	Walk(questions, func(q Question) bool {
		if q.Path == ParsePath(path) {
			cp := q
			found = &cp
			return false
		}
		return true
	})
	if found == nil {
		t.Fatalf("no question at %q", path)
	}
	return *found
}

func TestDeriveFlatStruct(t *testing.T) {
	def, err := Derive[testProfile]()
	if err != nil {
		t.Fatalf("derive failed: %v", err)
	}

	name := findQuestion(t, def.Questions, "customerName")
	if name.Ask != "Full name" {
		t.Fatalf("tag prompt should win, got %q", name.Ask)
	}
	if _, ok := name.Kind.(Input); !ok {
		t.Fatalf("string field should be an Input, got %T", name.Kind)
	}

	age := findQuestion(t, def.Questions, "age")
	ik, ok := age.Kind.(IntInput)
	if !ok {
		t.Fatalf("uint8 field should be an IntInput, got %T", age.Kind)
	}
	if ik.Min == nil || *ik.Min != 0 || ik.Max == nil || *ik.Max != 150 {
		t.Fatalf("bounds not carried from the tag: %+v", ik)
	}

	if _, ok := findQuestion(t, def.Questions, "secret").Kind.(Masked); !ok {
		t.Fatal("mask tag should produce a Masked leaf")
	}
	if _, ok := findQuestion(t, def.Questions, "bio").Kind.(Multiline); !ok {
		t.Fatal("multiline tag should produce a Multiline leaf")
	}
	if _, ok := findQuestion(t, def.Questions, "score").Kind.(FloatInput); !ok {
		t.Fatal("float field should produce a FloatInput leaf")
	}
	if _, ok := findQuestion(t, def.Questions, "subscribed").Kind.(Confirm); !ok {
		t.Fatal("bool field should produce a Confirm leaf")
	}

	tags := findQuestion(t, def.Questions, "tags")
	lk, ok := tags.Kind.(List)
	if !ok {
		t.Fatalf("[]string field should be a List, got %T", tags.Kind)
	}
	if lk.MinItems == nil || *lk.MinItems != 1 || lk.MaxItems == nil || *lk.MaxItems != 5 {
		t.Fatalf("item bounds not carried from the tag: %+v", lk)
	}
}

func TestDeriveDefaultPromptIsHumanized(t *testing.T) {
	def, err := Derive[testProfile]()
	if err != nil {
		t.Fatalf("derive failed: %v", err)
	}
	// No ask tag on Subscribed; the prompt comes from the field name.
	if got := findQuestion(t, def.Questions, "subscribed").Ask; got != "Subscribed" {
		t.Fatalf("expected prompt Subscribed, got %q", got)
	}
	addr := findQuestion(t, def.Questions, "address")
	if addr.Ask != "Address" {
		t.Fatalf("expected prompt Address, got %q", addr.Ask)
	}
}

func TestHumanize(t *testing.T) {
	cases := map[string]string{
		"CustomerName": "Customer Name",
		"Age":          "Age",
		"IBAN":         "IBAN",
		"HomeIBAN":     "Home IBAN",
	}
	for in, want := range cases {
		if got := humanize(in); got != want {
			t.Fatalf("humanize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDeriveNestedStruct(t *testing.T) {
	def, err := Derive[testProfile]()
	if err != nil {
		t.Fatalf("derive failed: %v", err)
	}
	addr := findQuestion(t, def.Questions, "address")
	group, ok := addr.Kind.(AllOf)
	if !ok {
		t.Fatalf("nested struct should be an AllOf, got %T", addr.Kind)
	}
	if len(group.Questions) != 2 {
		t.Fatalf("expected 2 nested questions, got %d", len(group.Questions))
	}
	if group.Questions[0].Path != ParsePath("address.street") {
		t.Fatalf("nested paths extend the parent, got %q", group.Questions[0].Path)
	}
}

func TestDeriveUnion(t *testing.T) {
	def, err := Derive[testApplicant]()
	if err != nil {
		t.Fatalf("derive failed: %v", err)
	}
	status := findQuestion(t, def.Questions, "status")
	sel, ok := status.Kind.(OneOf)
	if !ok {
		t.Fatalf("union field should be a OneOf, got %T", status.Kind)
	}
	if len(sel.Variants) != 2 {
		t.Fatalf("expected 2 variants, got %d", len(sel.Variants))
	}
	if _, ok := sel.Variants[0].Kind.(Unit); !ok {
		t.Fatal("a zero-field case is a Unit variant")
	}
	nested, ok := sel.Variants[1].Kind.(AllOf)
	if !ok {
		t.Fatalf("a case with fields should expand to AllOf, got %T", sel.Variants[1].Kind)
	}
	// Chosen-case fields live directly under the union's path.
	if nested.Questions[0].Path != ParsePath("status.company") {
		t.Fatalf("variant fields are addressed under the parent, got %q", nested.Questions[0].Path)
	}
}

func TestDeriveMultiSelect(t *testing.T) {
	def, err := Derive[testApplicant]()
	if err != nil {
		t.Fatalf("derive failed: %v", err)
	}
	perks := findQuestion(t, def.Questions, "perks")
	sel, ok := perks.Kind.(AnyOf)
	if !ok {
		t.Fatalf("slice of union should be an AnyOf, got %T", perks.Kind)
	}
	if len(sel.Variants) != 3 {
		t.Fatalf("expected 3 variants, got %d", len(sel.Variants))
	}
	// Struct-like case fields are namespaced by variant index.
	nested, ok := sel.Variants[1].Kind.(AllOf)
	if !ok {
		t.Fatalf("home office case should expand, got %T", sel.Variants[1].Kind)
	}
	if nested.Questions[0].Path != ParsePath("perks.1.days") {
		t.Fatalf("multi-select fields carry the variant index, got %q", nested.Questions[0].Path)
	}
}

func TestDeriveRootUnion(t *testing.T) {
	def, err := Derive[testEmployment]()
	if err != nil {
		t.Fatalf("derive failed: %v", err)
	}
	if len(def.Questions) != 1 || !def.Questions[0].Path.IsRoot() {
		t.Fatalf("a root union is a single root question, got %+v", def.Questions)
	}
	if _, ok := def.Questions[0].Kind.(OneOf); !ok {
		t.Fatalf("root union should be a OneOf, got %T", def.Questions[0].Kind)
	}
}

func TestDeriveRejectsUnregisteredUnion(t *testing.T) {
	type hasStranger struct {
		X interface{ anything() }
	}
	if _, err := Derive[hasStranger](); err == nil {
		t.Fatal("an unregistered interface must fail derivation")
	}
}

func TestDeriveRejectsUnsupportedTypes(t *testing.T) {
	type hasMap struct {
		M map[string]int
	}
	if _, err := Derive[hasMap](); err == nil {
		t.Fatal("map fields cannot be asked and must fail derivation")
	}
}

func TestDeriveRejectsDuplicatePaths(t *testing.T) {
	type collides struct {
		A string `json:"name"`
		B string `json:"name"`
	}
	_, err := Derive[collides]()
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected a duplicate path error, got %v", err)
	}
}

func TestDeriveRejectsBadTag(t *testing.T) {
	type badTag struct {
		N int `survey:"mni=3"`
	}
	if _, err := Derive[badTag](); err == nil {
		t.Fatal("a misspelled tag token must fail derivation")
	}
}

func TestSuggestionSeedsLeafDefault(t *testing.T) {
	def, err := Derive[testProfile](WithSuggestion("customerName", "Alice"))
	if err != nil {
		t.Fatalf("derive failed: %v", err)
	}
	q := findQuestion(t, def.Questions, "customerName")
	if !q.Default.IsSuggested() {
		t.Fatalf("expected a suggested default, got %v", q.Default.State())
	}
	if v, _ := q.Default.Value(); !v.Equal(StringValue("Alice")) {
		t.Fatalf("expected Alice, got %s", v)
	}
}

func TestInstanceSeedsSelections(t *testing.T) {
	existing := testApplicant{
		Name:   "Bob",
		Status: testEmployed{Company: "ACME", Weeks: 4},
		Perks:  []testPerk{testTransit{}, testGym{}},
	}
	def, err := Derive[testApplicant](WithSuggestions(existing))
	if err != nil {
		t.Fatalf("derive failed: %v", err)
	}

	status := findQuestion(t, def.Questions, "status").Kind.(OneOf)
	if status.Default == nil || *status.Default != 1 {
		t.Fatalf("union selection should be preselected, got %v", status.Default)
	}
	company := findQuestion(t, def.Questions, "status.company")
	if v, _ := company.Default.Value(); !v.Equal(StringValue("ACME")) {
		t.Fatalf("variant fields should be seeded, got %s", v)
	}

	perks := findQuestion(t, def.Questions, "perks").Kind.(AnyOf)
	if len(perks.Defaults) != 2 || perks.Defaults[0] != 2 || perks.Defaults[1] != 0 {
		t.Fatalf("multi-select preselection should keep order, got %v", perks.Defaults)
	}
}

func TestAssumptionPrunesQuestion(t *testing.T) {
	def, err := Derive[testProfile](WithAssumption("age", 30))
	if err != nil {
		t.Fatalf("derive failed: %v", err)
	}
	present := false
	Walk(def.Questions, func(q Question) bool {
		if q.Path == ParsePath("age") {
			present = true
			return false
		}
		return true
	})
	if present {
		t.Fatal("an assumed question must not be asked")
	}
	if v, err := def.assumed.IntAt(ParsePath("age")); err != nil || v != 30 {
		t.Fatalf("assumed value should be recorded, got %d (%v)", v, err)
	}
}

func TestAssumptionOfCompositeSubtree(t *testing.T) {
	def, err := Derive[testProfile](WithAssumption("address", testAddress{Street: "Main St", City: "Springfield"}))
	if err != nil {
		t.Fatalf("derive failed: %v", err)
	}
	if v, err := def.assumed.StringAt(ParsePath("address.city")); err != nil || v != "Springfield" {
		t.Fatalf("composite assumption should flatten, got %q (%v)", v, err)
	}
}

func TestAssumptionUnknownPathFails(t *testing.T) {
	if _, err := Derive[testProfile](WithAssumption("nope", 1)); err == nil {
		t.Fatal("assuming an unknown path must fail derivation")
	}
}

func TestAssumptionOutOfBoundsFails(t *testing.T) {
	if _, err := Derive[testProfile](WithAssumption("age", 200)); err == nil {
		t.Fatal("an assumption violating declared bounds must fail derivation")
	}
}

func TestSuggestionTypeMismatchFails(t *testing.T) {
	if _, err := Derive[testProfile](WithSuggestion("customerName", 42)); err == nil {
		t.Fatal("seeding a text field with a number must fail derivation")
	}
}
