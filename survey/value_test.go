package survey

import "testing"

func TestValueAccessors(t *testing.T) {
	if s, ok := StringValue("hi").AsString(); !ok || s != "hi" {
		t.Fatalf("expected string hi, got %q (ok=%v)", s, ok)
	}
	if i, ok := IntValue(-3).AsInt(); !ok || i != -3 {
		t.Fatalf("expected -3, got %d (ok=%v)", i, ok)
	}
	if f, ok := FloatValue(2.5).AsFloat(); !ok || f != 2.5 {
		t.Fatalf("expected 2.5, got %g (ok=%v)", f, ok)
	}
	if b, ok := BoolValue(true).AsBool(); !ok || !b {
		t.Fatalf("expected true, got %v (ok=%v)", b, ok)
	}
	if idx, ok := ChosenVariant(2).AsChosenVariant(); !ok || idx != 2 {
		t.Fatalf("expected variant 2, got %d (ok=%v)", idx, ok)
	}
}

func TestValueKindMismatch(t *testing.T) {
	if _, ok := StringValue("42").AsInt(); ok {
		t.Fatal("a string response must not read as an integer")
	}
	if _, ok := IntValue(1).AsBool(); ok {
		t.Fatal("an integer response must not read as a bool")
	}
	if _, ok := ChosenVariant(0).AsChosenVariants(); ok {
		t.Fatal("a single choice must not read as a multi-choice")
	}
}

func TestListValuesCopyTheirInput(t *testing.T) {
	src := []int{1, 0}
	v := ChosenVariants(src...)
	src[0] = 9
	got, ok := v.AsChosenVariants()
	if !ok || len(got) != 2 || got[0] != 1 {
		t.Fatalf("selection must not alias caller memory, got %v", got)
	}
}

func TestValueEqual(t *testing.T) {
	if !StringList("a", "b").Equal(StringList("a", "b")) {
		t.Fatal("equal lists should compare equal")
	}
	if StringList("a").Equal(StringList("b")) {
		t.Fatal("different lists should not compare equal")
	}
	if IntValue(1).Equal(FloatValue(1)) {
		t.Fatal("different kinds should not compare equal")
	}
	if !ChosenVariants(2, 0).Equal(ChosenVariants(2, 0)) {
		t.Fatal("selections compare by order and content")
	}
	if ChosenVariants(2, 0).Equal(ChosenVariants(0, 2)) {
		t.Fatal("selection order is significant")
	}
}
