package problemgen

import (
	"errors"
	"strings"
	"testing"
)

func validQuestion() *Question {
	return &Question{
		ID:            "q-num-addsub-L1-0001",
		Domain:        Numeracy,
		Subskill:      "num-add-sub",
		Family:        "add-sub",
		Difficulty:    1,
		Prompt:        "What is 12 + 7?",
		Choices:       []string{"18", "19", "20", "17"},
		CorrectAnswer: "19",
		Hint:          "Work step by step.",
		Explanation:   "12 + 7 = 19",
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Validator: "test-validator",
		Message:   "something went wrong",
	}
	expected := `validator "test-validator": something went wrong`
	if err.Error() != expected {
		t.Errorf("got %q, want %q", err.Error(), expected)
	}

	err.QuestionID = "q-1"
	expected = `validator "test-validator": question q-1: something went wrong`
	if err.Error() != expected {
		t.Errorf("got %q, want %q", err.Error(), expected)
	}
}

func TestDefaultConfig_ValidatorChain(t *testing.T) {
	cfg := DefaultConfig()
	if len(cfg.Validators) != 3 {
		t.Fatalf("expected 3 validators, got %d", len(cfg.Validators))
	}
	names := []string{"structural", "choices", "math-check"}
	for i, v := range cfg.Validators {
		if v.Name() != names[i] {
			t.Errorf("validator %d: expected %q, got %q", i, names[i], v.Name())
		}
	}
	if cfg.QuestionsPerFamily != 20 {
		t.Errorf("expected QuestionsPerFamily 20, got %d", cfg.QuestionsPerFamily)
	}
}

func TestValidate_StampsQuestionID(t *testing.T) {
	q := validQuestion()
	q.Prompt = "Hi"

	err := Validate(q, DefaultConfig().Validators)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if verr.QuestionID != q.ID {
		t.Errorf("expected question id %q, got %q", q.ID, verr.QuestionID)
	}
	if verr.Validator != "structural" {
		t.Errorf("expected structural to fail first, got %q", verr.Validator)
	}
}

func TestStructural_ValidQuestion(t *testing.T) {
	v := &StructuralValidator{}
	if err := v.Validate(validQuestion()); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestStructural_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(q *Question)
		substr string
	}{
		{"empty id", func(q *Question) { q.ID = "" }, "id"},
		{"unknown domain", func(q *Question) { q.Domain = "art" }, "unknown domain"},
		{"empty subskill", func(q *Question) { q.Subskill = "" }, "subskill"},
		{"difficulty too low", func(q *Question) { q.Difficulty = 0 }, "difficulty"},
		{"difficulty too high", func(q *Question) { q.Difficulty = 6 }, "difficulty"},
		{"short prompt", func(q *Question) { q.Prompt = "12345" }, "prompt"},
	}

	v := &StructuralValidator{}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := validQuestion()
			tc.mutate(q)
			err := v.Validate(q)
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Validator != "structural" {
				t.Errorf("expected validator %q, got %q", "structural", err.Validator)
			}
			if !strings.Contains(err.Message, tc.substr) {
				t.Errorf("message %q should mention %q", err.Message, tc.substr)
			}
		})
	}
}

func TestChoices_Failures(t *testing.T) {
	tests := []struct {
		name    string
		choices []string
		correct string
	}{
		{"three choices", []string{"1", "2", "3"}, "1"},
		{"five choices", []string{"1", "2", "3", "4", "5"}, "1"},
		{"empty choice", []string{"1", "", "3", "4"}, "1"},
		{"duplicate choice", []string{"1", "2", "2", "4"}, "1"},
		{"missing correct", []string{"1", "2", "3", "4"}, "9"},
	}

	v := &ChoiceValidator{}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := validQuestion()
			q.Choices = tc.choices
			q.CorrectAnswer = tc.correct
			if err := v.Validate(q); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestMathCheck_Computable(t *testing.T) {
	v := &MathCheckValidator{}

	tests := []struct {
		prompt string
		answer string
	}{
		{"What is 345 + 278?", "623"},
		{"What is 50 − 18?", "32"},
		{"What is one quarter of 24?", "6"},
		{"What is one tenth of 70?", "7"},
		{"Here is a number pattern:\n3, 5, 7, 9, ?\nWhat is the next number?", "11"},
		{"Here is a number pattern:\n40, 30, 20, 10, ?\nWhat is the next number?", "0"},
		{"A drink costs $1.20 and a snack costs $0.80.\nA student pays with $5.\nHow much change should they get?", "$3.00"},
	}

	for _, tc := range tests {
		q := validQuestion()
		q.Prompt = tc.prompt
		q.CorrectAnswer = tc.answer
		if err := v.Validate(q); err != nil {
			t.Errorf("expected %q with answer %q to pass: %v", tc.prompt, tc.answer, err)
		}

		q.CorrectAnswer = tc.answer + "1"
		if err := v.Validate(q); err == nil {
			t.Errorf("expected %q with answer %q to fail", tc.prompt, q.CorrectAnswer)
		}
	}
}

func TestMathCheck_NonComputable(t *testing.T) {
	v := &MathCheckValidator{}

	prompts := []string{
		"Which words match the time 3:15?",
		"In the number 472, what digit is in the tens place?",
	}
	for _, p := range prompts {
		q := validQuestion()
		q.Prompt = p
		q.CorrectAnswer = "anything"
		if err := v.Validate(q); err != nil {
			t.Errorf("non-computable %q should pass silently: %v", p, err)
		}
	}
}

func TestMathCheck_IgnoresOtherDomains(t *testing.T) {
	q := validQuestion()
	q.Domain = Reading
	q.CorrectAnswer = "wrong"
	if err := (&MathCheckValidator{}).Validate(q); err != nil {
		t.Errorf("reading question should pass: %v", err)
	}
}
