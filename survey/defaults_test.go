package survey

import "testing"

func TestDefaultValueStates(t *testing.T) {
	var none DefaultValue
	if !none.IsNone() || none.State() != DefaultNone {
		t.Fatal("the zero value should be the no-default state")
	}
	if _, ok := none.Value(); ok {
		t.Fatal("a no-default carries no value")
	}

	s := Suggested(StringValue("Alice"))
	if !s.IsSuggested() || s.IsAssumed() {
		t.Fatalf("expected a suggested default, got %v", s.State())
	}
	if v, ok := s.Value(); !ok || !v.Equal(StringValue("Alice")) {
		t.Fatalf("expected Alice, got %s (ok=%v)", v, ok)
	}

	a := Assumed(IntValue(7))
	if !a.IsAssumed() || a.IsNone() {
		t.Fatalf("expected an assumed default, got %v", a.State())
	}
	if v, ok := a.Value(); !ok || !v.Equal(IntValue(7)) {
		t.Fatalf("expected 7, got %s (ok=%v)", v, ok)
	}
}
