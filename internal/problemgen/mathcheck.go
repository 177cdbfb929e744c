package problemgen

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MathCheckValidator independently recomputes the answer of numeracy
// questions whose prompt carries a computable expression (sums,
// differences, unit fractions, arithmetic patterns and change). Other
// questions pass through silently.
type MathCheckValidator struct{}

func (v *MathCheckValidator) Name() string { return "math-check" }

func (v *MathCheckValidator) Validate(q *Question) *ValidationError {
	if q.Domain != Numeracy {
		return nil
	}
	computed, err := computeAnswer(q.Prompt)
	if err != nil {
		// Not computable (time words, place value).
		return nil
	}
	if strings.TrimSpace(q.CorrectAnswer) != computed {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("computed %q but question claims %q", computed, q.CorrectAnswer),
		}
	}
	return nil
}

var (
	// "What is 12 + 7?" and "What is 12 − 7?" (minus sign or hyphen).
	intArithRe = regexp.MustCompile(`What is (\d+)\s*([+−-])\s*(\d+)\?`)

	// "What is one quarter of 24?"
	unitFractionRe = regexp.MustCompile(`What is one (half|third|quarter|fifth|tenth) of (\d+)\?`)

	// "3, 5, 7, 9, ?"
	patternRe = regexp.MustCompile(`(\d+), (\d+), (\d+), (\d+), \?`)

	// "costs $1.20 and a snack costs $0.80. A student pays with $5."
	changeRe = regexp.MustCompile(`costs (\$\d+\.\d{2}) and a snack costs (\$\d+\.\d{2})\.\s*A student pays with \$(\d+)\.`)
)

var unitDenominators = map[string]int{"half": 2, "third": 3, "quarter": 4, "fifth": 5, "tenth": 10}

// computeAnswer extracts an expression from a prompt and evaluates it.
// Returns an error if the prompt holds nothing computable.
func computeAnswer(prompt string) (string, error) {
	if m := intArithRe.FindStringSubmatch(prompt); m != nil {
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[3])
		if m[2] == "+" {
			return strconv.Itoa(a + b), nil
		}
		return strconv.Itoa(a - b), nil
	}

	if m := unitFractionRe.FindStringSubmatch(prompt); m != nil {
		whole, _ := strconv.Atoi(m[2])
		d := unitDenominators[m[1]]
		if whole%d != 0 {
			return "", fmt.Errorf("%d is not divisible by %d", whole, d)
		}
		return strconv.Itoa(whole / d), nil
	}

	if m := patternRe.FindStringSubmatch(prompt); m != nil {
		var seq [4]int
		for i := range seq {
			seq[i], _ = strconv.Atoi(m[i+1])
		}
		step := seq[1] - seq[0]
		if seq[2]-seq[1] != step || seq[3]-seq[2] != step {
			return "", fmt.Errorf("sequence has no constant step")
		}
		return strconv.Itoa(seq[3] + step), nil
	}

	if m := changeRe.FindStringSubmatch(prompt); m != nil {
		pay, _ := strconv.Atoi(m[3])
		return dollars(pay*100 - parseDollars(m[1]) - parseDollars(m[2])), nil
	}

	return "", fmt.Errorf("not computable")
}
