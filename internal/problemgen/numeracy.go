package problemgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/abhisek/ziggy/internal/rng"
)

var numeracyFamilies = []Family{
	{Name: "add-sub", Prefix: "q-num-addsub", Subskill: "num-add-sub", build: buildAddSub},
	{Name: "patterns", Prefix: "q-num-pattern", Subskill: "num-patterns", build: buildPattern},
	{Name: "place-value", Prefix: "q-num-place", Subskill: "num-place-value", build: buildPlaceValue},
	{Name: "time-language", Prefix: "q-num-time", Subskill: "num-time", build: buildTimeLanguage},
	{Name: "money", Prefix: "q-num-money", Subskill: "num-money", build: buildMoney},
	{Name: "fractions", Prefix: "q-num-frac", Subskill: "num-fractions", build: buildFraction},
}

// addSubRanges holds the operand range for each level.
var addSubRanges = map[int][2]int{
	1: {0, 20},
	2: {5, 50},
	3: {10, 100},
	4: {20, 200},
	5: {50, 500},
}

func buildAddSub(level int, r *rng.Rand) draft {
	bounds := addSubRanges[level]
	a := r.Int(bounds[0], bounds[1])
	b := r.Int(bounds[0], bounds[1])
	op := rng.Pick(r, []string{"+", "−"})

	var correct int
	var prompt string
	if op == "+" {
		correct = a + b
		prompt = fmt.Sprintf("What is %d + %d?", a, b)
	} else {
		big, small := max(a, b), min(a, b)
		correct = big - small
		prompt = fmt.Sprintf("What is %d − %d?", big, small)
	}

	return draft{
		prompt:      prompt,
		correct:     strconv.Itoa(correct),
		distractors: ints(correct+1, correct-1, correct+2, correct-2),
		extra: func(c string) string {
			cc := atoi(c)
			delta := rng.Pick(r, []int{3, 4, 5, 6, 7})
			v := cc + rng.Pick(r, []int{1, -1})*delta
			if v < 0 {
				v = cc + delta
			}
			return strconv.Itoa(v)
		},
		hint:        "Work step by step.",
		explanation: "Use number facts and check your answer makes sense.",
	}
}

func buildPattern(level int, r *rng.Rand) draft {
	steps := []int{2, 3, 5}
	if level > 2 {
		steps = []int{2, 3, 4, 5, 10, 20}
	}
	step := rng.Pick(r, steps)
	descending := level >= 4 && r.Next() < 0.5

	var seq [4]int
	var correct int
	if descending {
		start := r.Int(5*step+1, 5*step+80)
		for i := range seq {
			seq[i] = start - i*step
		}
		correct = start - 4*step
	} else {
		hi := 30
		if level > 2 {
			hi = 80
		}
		start := r.Int(1, hi)
		for i := range seq {
			seq[i] = start + i*step
		}
		correct = start + 4*step
	}

	hint, verb := "Look at what is added each time.", "increases"
	if descending {
		hint, verb = "Look at what is taken away each time.", "decreases"
	}

	return draft{
		prompt: fmt.Sprintf("Here is a number pattern:\n%d, %d, %d, %d, ?\nWhat is the next number?",
			seq[0], seq[1], seq[2], seq[3]),
		correct:     strconv.Itoa(correct),
		distractors: ints(correct+step, correct-step, correct+1, correct-1),
		extra: func(c string) string {
			return strconv.Itoa(atoi(c) + rng.Pick(r, []int{step + 2, step + 3, step + 4}))
		},
		hint:        hint,
		explanation: fmt.Sprintf("This pattern %s by %d.", verb, step),
	}
}

var placeValueMax = map[int]int{1: 99, 2: 199, 3: 999, 4: 1999, 5: 9999}

var digits = []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}

func buildPlaceValue(level int, r *rng.Rand) draft {
	hi := placeValueMax[level]
	num := r.Int(hi/4, hi)

	places := []string{"ones", "tens"}
	switch {
	case level == 5:
		places = []string{"ones", "tens", "hundreds", "thousands"}
	case level >= 3:
		places = []string{"ones", "tens", "hundreds"}
	}
	ask := rng.Pick(r, places)

	s := fmt.Sprintf("%03d", num)
	pos := lo.IndexOf(places, ask) + 1
	digit := string(s[len(s)-pos])

	hint := "Ones is the last digit, tens is the second-last."
	if level >= 3 {
		hint = "Count places from the right: ones, tens, hundreds, thousands."
	}

	return draft{
		prompt:      fmt.Sprintf("In the number %d, what digit is in the %s place?", num, ask),
		correct:     digit,
		distractors: pickN(r, others(digits, digit), 3),
		extra:       func(string) string { return strconv.Itoa(r.Int(0, 9)) },
		hint:        hint,
		explanation: fmt.Sprintf("In %d, the %s digit is %s.", num, ask, digit),
	}
}

type clockPhrase struct {
	time  string
	words string
}

var clockPhrases = []tiered[clockPhrase]{
	{1, clockPhrase{"3:00", "three o'clock"}},
	{1, clockPhrase{"6:00", "six o'clock"}},
	{1, clockPhrase{"12:00", "twelve o'clock"}},
	{1, clockPhrase{"3:30", "half past three"}},
	{1, clockPhrase{"7:30", "half past seven"}},
	{1, clockPhrase{"9:00", "nine o'clock"}},
	{1, clockPhrase{"4:00", "four o'clock"}},
	{1, clockPhrase{"1:30", "half past one"}},
	{1, clockPhrase{"10:30", "half past ten"}},
	{2, clockPhrase{"3:15", "quarter past three"}},
	{2, clockPhrase{"3:45", "quarter to four"}},
	{2, clockPhrase{"6:15", "quarter past six"}},
	{2, clockPhrase{"8:45", "quarter to nine"}},
	{3, clockPhrase{"4:10", "ten past four"}},
	{3, clockPhrase{"9:20", "twenty past nine"}},
	{3, clockPhrase{"2:50", "ten to three"}},
	{4, clockPhrase{"5:40", "twenty to six"}},
	{4, clockPhrase{"11:05", "five past eleven"}},
	{4, clockPhrase{"1:55", "five to two"}},
	{5, clockPhrase{"10:25", "twenty-five past ten"}},
	{5, clockPhrase{"7:35", "twenty-five to eight"}},
	{5, clockPhrase{"12:35", "twenty-five to one"}},
}

func buildTimeLanguage(level int, r *rng.Rand) draft {
	pool := eligible(level, clockPhrases)
	words := lo.Map(pool, func(p clockPhrase, _ int) string { return p.words })
	item := rng.Pick(r, pool)

	hint := "O'clock is :00 and half past is :30."
	switch {
	case level >= 3:
		hint = "\"Past\" counts minutes after the hour; \"to\" counts minutes before the next hour."
	case level == 2:
		hint = "Quarter past is :15, half past is :30, quarter to is :45."
	}

	return draft{
		prompt:      fmt.Sprintf("Which words match the time %s?", item.time),
		correct:     item.words,
		distractors: pickN(r, others(words, item.words), 3),
		extra:       pickFrom(r, words),
		hint:        hint,
		explanation: fmt.Sprintf("%s is said as \"%s\".", item.time, item.words),
	}
}

// Prices are in cents so change is always exact.
var itemPrices = []tiered[int]{
	{1, 50}, {1, 80}, {1, 120}, {1, 150}, {1, 200}, {1, 240},
	{1, 310}, {1, 350}, {1, 420}, {1, 480}, {1, 560},
	{3, 95}, {3, 135}, {3, 265}, {3, 385},
	{5, 645}, {5, 790}, {5, 1250},
}

var payOptions = map[int][]int{
	1: {500, 1000},
	2: {500, 1000},
	3: {1000, 2000},
	4: {1000, 2000},
	5: {2000, 5000},
}

func buildMoney(level int, r *rng.Rand) draft {
	prices := eligible(level, itemPrices)
	a := rng.Pick(r, prices)
	b := rng.Pick(r, prices)
	total := a + b

	options := lo.Filter(payOptions[level], func(p, _ int) bool { return p > total })
	pay := (total/500 + 1) * 500
	if len(options) > 0 {
		pay = rng.Pick(r, options)
	}
	change := pay - total

	return draft{
		prompt: fmt.Sprintf("A drink costs %s and a snack costs %s.\nA student pays with $%d.\nHow much change should they get?",
			dollars(a), dollars(b), pay/100),
		correct:     dollars(change),
		distractors: dollarList(change+100, change-100, pay-a, pay-b),
		extra: func(c string) string {
			v := parseDollars(c) + rng.Pick(r, []int{50, 100, 150, 200, -50, -100})
			return dollars(max(0, v))
		},
		hint: "Add the prices first, then subtract from the amount paid.",
		explanation: fmt.Sprintf("%s + %s = %s, and $%d − %s = %s.",
			dollars(a), dollars(b), dollars(total), pay/100, dollars(total), dollars(change)),
	}
}

// dollars formats cents as "$1.50".
func dollars(cents int) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

// dollarList formats candidates in cents, dropping negative amounts.
func dollarList(cents ...int) []string {
	out := make([]string, 0, len(cents))
	for _, c := range cents {
		if c >= 0 {
			out = append(out, dollars(c))
		}
	}
	return out
}

// parseDollars is the inverse of dollars.
func parseDollars(s string) int {
	whole, frac, _ := strings.Cut(strings.TrimPrefix(s, "$"), ".")
	return atoi(whole)*100 + atoi(frac)
}

var fractionNames = map[int]string{2: "half", 3: "third", 4: "quarter", 5: "fifth", 10: "tenth"}

func buildFraction(level int, r *rng.Rand) draft {
	denoms := []int{2, 4}
	switch {
	case level == 5:
		denoms = []int{2, 3, 4, 5, 10}
	case level >= 3:
		denoms = []int{2, 3, 4}
	}
	denom := rng.Pick(r, denoms)
	name := fractionNames[denom]

	kMax := 15
	switch {
	case level == 5:
		kMax = 30
	case level >= 3:
		kMax = 20
	}
	whole := r.Int(2, kMax) * denom
	part := whole / denom

	return draft{
		prompt:      fmt.Sprintf("What is one %s of %d?", name, whole),
		correct:     strconv.Itoa(part),
		distractors: ints(part+1, part-1, whole, part+denom),
		extra: func(c string) string {
			cc := atoi(c)
			v := cc + rng.Pick(r, []int{2, 3, 4, 5, 6})*rng.Pick(r, []int{1, -1})
			if v <= 0 {
				v = cc + 2
			}
			return strconv.Itoa(v)
		},
		hint:        fmt.Sprintf("Divide by %d.", denom),
		explanation: fmt.Sprintf("One %s means split into %d equal parts: %d ÷ %d = %d.", name, denom, whole, denom, part),
	}
}
