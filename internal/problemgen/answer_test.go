package problemgen

import "testing"

func answerQuestion() *Question {
	return &Question{
		ID:            "q-test-L1-0001",
		Choices:       []string{"12", "3", "Cat.", "cat"},
		CorrectAnswer: "3",
	}
}

func TestCheckAnswer_Text(t *testing.T) {
	q := answerQuestion()

	tests := []struct {
		input string
		want  bool
	}{
		{"3", true},
		{" 3 ", true},
		{"12", false},
		{"", false},
		{"   ", false},
		{"dog", false},
	}

	for _, tc := range tests {
		if got := CheckAnswer(tc.input, q); got != tc.want {
			t.Errorf("CheckAnswer(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestCheckAnswer_CaseAndPunctuationMatter(t *testing.T) {
	q := answerQuestion()
	q.CorrectAnswer = "cat"

	if !CheckAnswer("cat", q) {
		t.Error("exact text should be accepted")
	}
	if CheckAnswer("Cat.", q) {
		t.Error("a choice differing in case and punctuation should be rejected")
	}
	if CheckAnswer("CAT", q) {
		t.Error("case-insensitive match should be rejected")
	}
}

func TestCheckAnswer_DigitsAreOptionText(t *testing.T) {
	q := &Question{
		ID:            "q-num-frac-L1-0101",
		Choices:       []string{"6", "9", "2", "1"},
		CorrectAnswer: "9",
	}

	tests := []struct {
		input string
		want  bool
	}{
		{"9", true},
		{"2", false}, // the option "2", not the second option
		{"4", false},
	}
	for _, tc := range tests {
		if got := CheckAnswer(tc.input, q); got != tc.want {
			t.Errorf("CheckAnswer(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestCheckAnswer_NilQuestion(t *testing.T) {
	if CheckAnswer("1", nil) {
		t.Error("nil question should never match")
	}
}
