package domain

import (
	"errors"
	"testing"
)

func TestIsApproval(t *testing.T) {
	tests := []struct {
		name     string
		critique string
		want     bool
	}{
		{"exact sentinel", "<OK>", true},
		{"sentinel with whitespace", "\n<OK>\n", true},
		{"sentinel inside prose", "Looks fine <OK>.", true},
		{"sentinel next to defects is still approval", "Q1: distractor C is weak. <OK>", true},
		{"lowercase sentinel", "<ok>", false},
		{"sentinel without brackets", "OK", false},
		{"defect list", "Q2: Answer key missing for question 3.", false},
		{"empty critique", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsApproval(tt.critique); got != tt.want {
				t.Errorf("IsApproval(%q) = %v, want %v", tt.critique, got, tt.want)
			}
		})
	}
}

func TestSessionState_Budget(t *testing.T) {
	state := NewSessionState("notes", 3)
	if state.Phase != PhaseGenerating {
		t.Errorf("expected initial phase %q, got %q", PhaseGenerating, state.Phase)
	}
	if state.CurrentQuiz != "" {
		t.Errorf("expected no quiz before generation, got %q", state.CurrentQuiz)
	}

	var regenerationsAllowed int
	for !state.Exhausted() {
		if state.HasRegenerationBudget() {
			regenerationsAllowed++
		}
		state.IterationIndex++
	}

	if state.IterationIndex != 3 {
		t.Errorf("expected 3 iterations, got %d", state.IterationIndex)
	}
	if regenerationsAllowed != 2 {
		t.Errorf("expected 2 regenerations allowed, got %d", regenerationsAllowed)
	}
}

func TestSessionState_ZeroBudget(t *testing.T) {
	state := NewSessionState("notes", 0)
	if !state.Exhausted() {
		t.Error("zero budget should be exhausted immediately")
	}
	if state.HasRegenerationBudget() {
		t.Error("zero budget should not allow regeneration")
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := errors.New("429 too many requests")
	err := NewLLMServiceError("reflect", cause)

	if !errors.Is(err, cause) {
		t.Error("expected DomainError to unwrap to its cause")
	}
	if !IsCode(err, CodeLLMServiceError) {
		t.Errorf("expected code %s", CodeLLMServiceError)
	}
	if err.Error() != "Failed to process with LLM service during reflect: 429 too many requests" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		NewMissingFieldError("notes"),
		NewOutOfRangeError("max_iterations", 11, 0, 10),
	}
	want := "validation failed: notes: field is required; max_iterations: value 11 is out of range [0, 10]"
	if errs.Error() != want {
		t.Errorf("got %q, want %q", errs.Error(), want)
	}
}
