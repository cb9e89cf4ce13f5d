package survey

import "testing"

func TestParsePathRoundTrip(t *testing.T) {
	p := ParsePath("address.street")
	if got := p.String(); got != "address.street" {
		t.Fatalf("expected %q, got %q", "address.street", got)
	}
	if got := p.Len(); got != 2 {
		t.Fatalf("expected 2 segments, got %d", got)
	}
	if got := p.First(); got != "address" {
		t.Fatalf("expected first segment %q, got %q", "address", got)
	}
	if got := p.Last(); got != "street" {
		t.Fatalf("expected last segment %q, got %q", "street", got)
	}
}

func TestRootPath(t *testing.T) {
	if !RootPath().IsRoot() {
		t.Fatal("root path should report IsRoot")
	}
	if got := RootPath().Child("name"); got != ParsePath("name") {
		t.Fatalf("child of root should be a single segment, got %q", got)
	}
	if got := ParsePath("name").Parent(); !got.IsRoot() {
		t.Fatalf("parent of a single segment should be root, got %q", got)
	}
}

func TestChildSkipsEmptySegments(t *testing.T) {
	if got := NewPath("a", "", "b"); got != ParsePath("a.b") {
		t.Fatalf("expected a.b, got %q", got)
	}
}

func TestStripPrefix(t *testing.T) {
	p := ParsePath("payment.card.number")

	rest, ok := p.StripPrefix(ParsePath("payment"))
	if !ok || rest != ParsePath("card.number") {
		t.Fatalf("expected card.number, got %q (ok=%v)", rest, ok)
	}

	if _, ok := p.StripPrefix(ParsePath("pay")); ok {
		t.Fatal("partial segment must not count as a prefix")
	}

	rest, ok = p.StripPrefix(p)
	if !ok || !rest.IsRoot() {
		t.Fatalf("stripping the whole path should leave root, got %q (ok=%v)", rest, ok)
	}
}

func TestHasPrefixIncludesSelf(t *testing.T) {
	p := ParsePath("a.b")
	if !p.HasPrefix(p) {
		t.Fatal("a path is its own prefix")
	}
	if !p.HasPrefix(RootPath()) {
		t.Fatal("root is a prefix of everything")
	}
	if ParsePath("a-x").HasPrefix(ParsePath("a")) {
		t.Fatal("a is not a prefix of a-x")
	}
}

func TestLessOrdersBySegments(t *testing.T) {
	// Segment ordering, not raw string ordering: "a.b" sorts before "a-x"
	// because segment "a" precedes segment "a-x".
	if !ParsePath("a.b").Less(ParsePath("a-x")) {
		t.Fatal("a.b should sort before a-x")
	}
	if !ParsePath("a").Less(ParsePath("a.b")) {
		t.Fatal("a parent sorts before its children")
	}
	if ParsePath("b").Less(ParsePath("a.z")) {
		t.Fatal("b should not sort before a.z")
	}
}
