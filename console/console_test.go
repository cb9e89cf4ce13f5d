package console

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/barafael/elicitor-sub001/survey"
)

type ticket struct {
	Title string `survey:"ask=Event title"`
	Seats uint8  `survey:"min=1,max=4"`
	Notes string `survey:"multiline"`
	Agree bool   `survey:"ask=Accept the terms?"`
}

type payMethod interface{ isPayMethod() }

type cash struct{}
type card struct {
	Number string
}

func (cash) isPayMethod() {}
func (card) isPayMethod() {}

type purchase struct {
	Amount float64 `survey:"min=0"`
	Method payMethod
}

func init() {
	survey.RegisterUnion[payMethod](
		survey.NewCase("Cash", cash{}),
		survey.NewCase("Card", card{}),
	)
}

func collect(t *testing.T, def *survey.Definition, input string) (*survey.Responses, string, error) {
	t.Helper()
	var out bytes.Buffer
	s := New(strings.NewReader(input), &out)
	responses, err := s.Collect(context.Background(), def, def.Accept)
	return responses, out.String(), err
}

func TestCollectLeafAnswers(t *testing.T) {
	def, err := survey.Derive[ticket](survey.WithPrelude("Book your seats."))
	if err != nil {
		t.Fatalf("derive failed: %v", err)
	}

	input := "Concert\n2\nrow 4\nno flash\n.\ny\n"
	responses, output, err := collect(t, def, input)
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}

	if !strings.Contains(output, "Book your seats.") {
		t.Fatal("the prelude should be printed first")
	}
	if !strings.Contains(output, "Event title") {
		t.Fatal("prompts should be printed")
	}
	if got, _ := responses.StringAt(survey.ParsePath("title")); got != "Concert" {
		t.Fatalf("expected Concert, got %q", got)
	}
	if got, _ := responses.IntAt(survey.ParsePath("seats")); got != 2 {
		t.Fatalf("expected 2 seats, got %d", got)
	}
	if got, _ := responses.StringAt(survey.ParsePath("notes")); got != "row 4\nno flash" {
		t.Fatalf("multiline input should join lines, got %q", got)
	}
	if got, _ := responses.BoolAt(survey.ParsePath("agree")); !got {
		t.Fatal("expected agreement")
	}
}

func TestCollectRepromptsOnInvalidInput(t *testing.T) {
	def, err := survey.Derive[ticket]()
	if err != nil {
		t.Fatalf("derive failed: %v", err)
	}

	// "many" fails to parse, "9" fails the declared bounds, "3" passes.
	input := "Concert\nmany\n9\n3\n.\ny\n"
	responses, output, err := collect(t, def, input)
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	if got, _ := responses.IntAt(survey.ParsePath("seats")); got != 3 {
		t.Fatalf("expected the third attempt to stick, got %d", got)
	}
	if !strings.Contains(output, "whole number") {
		t.Fatal("a parse failure should explain itself")
	}
	if !strings.Contains(output, "at most 4") {
		t.Fatal("a bounds failure should explain itself")
	}
}

func TestCollectTakesSuggestedDefaultOnEmptyLine(t *testing.T) {
	def, err := survey.Derive[ticket](survey.WithSuggestion("title", "Concert"))
	if err != nil {
		t.Fatalf("derive failed: %v", err)
	}

	input := "\n1\n.\nn\n"
	responses, output, err := collect(t, def, input)
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	if got, _ := responses.StringAt(survey.ParsePath("title")); got != "Concert" {
		t.Fatalf("an empty line should take the default, got %q", got)
	}
	if !strings.Contains(output, "[Concert]") {
		t.Fatal("the suggested default should be shown in the prompt")
	}
}

func TestCollectSelectionMenu(t *testing.T) {
	def, err := survey.Derive[purchase]()
	if err != nil {
		t.Fatalf("derive failed: %v", err)
	}

	input := "12.50\n2\n4111\n"
	responses, output, err := collect(t, def, input)
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	if !strings.Contains(output, "1) Cash") || !strings.Contains(output, "2) Card") {
		t.Fatalf("the menu should list numbered variants, got:\n%s", output)
	}
	idx, err := responses.ChosenVariantAt(survey.ParsePath("method.selected_variant"))
	if err != nil || idx != 1 {
		t.Fatalf("expected card selected, got %d (%v)", idx, err)
	}
	if got, _ := responses.StringAt(survey.ParsePath("method.number")); got != "4111" {
		t.Fatalf("the chosen variant's questions should follow, got %q", got)
	}
}

func TestCollectSelectionRepromptsOutOfRange(t *testing.T) {
	def, err := survey.Derive[purchase]()
	if err != nil {
		t.Fatalf("derive failed: %v", err)
	}

	input := "12.50\n7\n1\n"
	responses, _, err := collect(t, def, input)
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	idx, err := responses.ChosenVariantAt(survey.ParsePath("method.selected_variant"))
	if err != nil || idx != 0 {
		t.Fatalf("expected the re-prompt to land on cash, got %d (%v)", idx, err)
	}
}

func TestCollectExhaustedInputCancels(t *testing.T) {
	def, err := survey.Derive[ticket]()
	if err != nil {
		t.Fatalf("derive failed: %v", err)
	}

	_, _, err = collect(t, def, "Concert\n")
	if !errors.Is(err, survey.ErrCancelled) {
		t.Fatalf("running out of input should cancel, got %v", err)
	}
}

func TestBackendIsRegistered(t *testing.T) {
	b, err := survey.NewBackend("console")
	if err != nil {
		t.Fatalf("console backend should self-register: %v", err)
	}
	if _, ok := b.(*Surface); !ok {
		t.Fatalf("expected a console surface, got %T", b)
	}
}
