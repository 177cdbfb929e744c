package problemgen

import "strings"

// CheckAnswer reports whether choice is the correct answer of q.
//
// choice is option text. Comparison is exact after trimming surrounding
// whitespace, because several conventions questions differ only in case or
// punctuation. Numbers are never read as positions: "2" is the option
// "2", whatever sits second in the list.
func CheckAnswer(choice string, q *Question) bool {
	choice = strings.TrimSpace(choice)
	if choice == "" || q == nil {
		return false
	}
	return choice == strings.TrimSpace(q.CorrectAnswer)
}
