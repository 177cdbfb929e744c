package problemgen

import "fmt"

// minPromptLength is exclusive: prompts must be longer than this.
const minPromptLength = 5

// StructuralValidator checks that required fields are present, within
// limits, and have valid enum values.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question) *ValidationError {
	if q.ID == "" {
		return v.fail("id is empty")
	}
	if _, err := ParseDomain(string(q.Domain)); err != nil {
		return v.fail(err.Error())
	}
	if q.Subskill == "" {
		return v.fail("subskill is empty")
	}
	if q.Difficulty < MinLevel || q.Difficulty > MaxLevel {
		return v.fail(fmt.Sprintf("difficulty must be between %d and %d", MinLevel, MaxLevel))
	}
	if len(q.Prompt) <= minPromptLength {
		return v.fail(fmt.Sprintf("prompt must be longer than %d characters", minPromptLength))
	}
	return nil
}

func (v *StructuralValidator) fail(msg string) *ValidationError {
	return &ValidationError{Validator: v.Name(), Message: msg}
}

// ChoiceValidator enforces the four-unique-choices contract: exactly
// ChoiceCount distinct non-empty options, one of which is the correct answer.
type ChoiceValidator struct{}

func (v *ChoiceValidator) Name() string { return "choices" }

func (v *ChoiceValidator) Validate(q *Question) *ValidationError {
	if len(q.Choices) != ChoiceCount {
		return v.fail(fmt.Sprintf("expected %d choices, got %d", ChoiceCount, len(q.Choices)))
	}
	seen := make(map[string]bool, len(q.Choices))
	for _, c := range q.Choices {
		if c == "" {
			return v.fail("empty choice")
		}
		if seen[c] {
			return v.fail(fmt.Sprintf("duplicate choice %q", c))
		}
		seen[c] = true
	}
	if !seen[q.CorrectAnswer] {
		return v.fail(fmt.Sprintf("correct answer %q not among choices", q.CorrectAnswer))
	}
	return nil
}

func (v *ChoiceValidator) fail(msg string) *ValidationError {
	return &ValidationError{Validator: v.Name(), Message: msg}
}
