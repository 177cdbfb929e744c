package problemgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/ziggy/internal/rng"
)

var conventionsFamilies = []Family{
	{Name: "spelling", Prefix: "q-conv-spell", Subskill: "conv-spelling", build: buildSpelling},
	{Name: "capitals", Prefix: "q-conv-cap", Subskill: "conv-capitals", build: buildCapitals},
	{Name: "punctuation", Prefix: "q-conv-punct", Subskill: "conv-punctuation", build: buildPunctuation},
	{Name: "grammar", Prefix: "q-conv-gram", Subskill: "conv-grammar", build: buildGrammar},
	{Name: "prepositions", Prefix: "q-conv-prep", Subskill: "conv-prepositions", build: buildPrepositions},
	{Name: "parts-of-speech", Prefix: "q-conv-pos", Subskill: "conv-parts-of-speech", build: buildPartsOfSpeech},
}

var (
	convNames   = []string{"Georgia", "Alex", "Mina", "Jack", "Sam", "Rani", "Tara", "Lily", "Ethan"}
	convPlaces  = []string{"the park", "the library", "school", "the beach", "the backyard"}
	convDays    = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	convPets    = []string{"dog", "cat", "rabbit", "bird", "lizard", "koala"}
	convObjects = []string{"backpack", "lunchbox", "helmet", "notebook", "towel", "sandwich", "pencil"}
	convTowns   = []string{"Sydney", "Perth", "Darwin", "Hobart", "Cairns"}
)

type spellingWord struct {
	correct  string
	wrong    []string
	sentence string // {who}, {obj} and {word} are substituted
}

var spellingWords = []tiered[spellingWord]{
	{1, spellingWord{"because", []string{"becaus", "becouse", "becuase"}, "{who} looked in the {obj} {word} it was missing."}},
	{1, spellingWord{"friend", []string{"freind", "frend", "friand"}, "{who} lent the {obj} to a {word}."}},
	{1, spellingWord{"school", []string{"skool", "scool", "schol"}, "{who} took the {obj} to {word}."}},
	{2, spellingWord{"basket", []string{"baskit", "bascket", "baskett"}, "{who} put the {obj} in the {word}."}},
	{2, spellingWord{"minute", []string{"minit", "minuite", "minut"}, "{who} found the {obj} after a {word}."}},
	{3, spellingWord{"exactly", []string{"exatly", "exactley", "exectly"}, "{who} knew {word} where the {obj} was."}},
	{3, spellingWord{"probably", []string{"probly", "proberly", "probabaly"}, "{who} {word} left the {obj} at home."}},
	{4, spellingWord{"beautiful", []string{"beutiful", "beautifull", "butiful"}, "{who} drew a {word} picture on the {obj}."}},
	{4, spellingWord{"different", []string{"diffrent", "differant", "diferent"}, "{who} wanted a {word} {obj}."}},
	{5, spellingWord{"necessary", []string{"neccessary", "necessery", "nessecary"}, "{who} said the {obj} was not {word}."}},
	{5, spellingWord{"separate", []string{"seperate", "separete", "seprate"}, "{who} kept the {obj} in a {word} bag."}},
}

func buildSpelling(level int, r *rng.Rand) draft {
	item := rng.Pick(r, eligible(level, spellingWords))
	who := rng.Pick(r, convNames)
	obj := rng.Pick(r, convObjects)
	wrongWord := rng.Pick(r, item.wrong)

	sentence := strings.NewReplacer("{who}", who, "{obj}", obj, "{word}", wrongWord).Replace(item.sentence)

	return draft{
		prompt:      fmt.Sprintf("Read this sentence:\n\"%s\"\n\nWhich spelling is correct?", sentence),
		correct:     item.correct,
		distractors: item.wrong,
		extra:       pickFrom(r, item.wrong),
		hint:        "Look for common spelling patterns.",
		explanation: fmt.Sprintf("The correct spelling is \"%s\".", item.correct),
	}
}

func buildCapitals(level int, r *rng.Rand) draft {
	who := rng.Pick(r, convNames)
	day := rng.Pick(r, convDays)

	if level >= 3 {
		town := rng.Pick(r, convTowns)
		return draft{
			prompt: fmt.Sprintf("Which sentence uses capital letters correctly?\n\"on %s %s flew to %s.\"",
				strings.ToLower(day), strings.ToLower(who), strings.ToLower(town)),
			correct: fmt.Sprintf("On %s %s flew to %s.", day, who, town),
			distractors: []string{
				fmt.Sprintf("On %s %s flew to %s.", day, who, strings.ToLower(town)),
				fmt.Sprintf("On %s %s flew to %s.", strings.ToLower(day), who, town),
				fmt.Sprintf("on %s %s Flew to %s.", day, who, town),
			},
			extra:       constant(fmt.Sprintf("ON %s %s flew to %s.", day, who, town)),
			hint:        "Names, days and places start with a capital letter.",
			explanation: "Use capitals for proper nouns and the first word of a sentence.",
		}
	}

	place := rng.Pick(r, convPlaces)
	return draft{
		prompt: fmt.Sprintf("Which sentence uses capital letters correctly?\n\"on %s %s went to %s.\"",
			strings.ToLower(day), strings.ToLower(who), place),
		correct: fmt.Sprintf("On %s %s went to %s.", day, who, place),
		distractors: []string{
			fmt.Sprintf("On %s %s went to %s.", strings.ToLower(day), who, place),
			fmt.Sprintf("on %s %s went to %s.", day, who, place),
			fmt.Sprintf("ON %s %s went to %s.", day, who, place),
		},
		extra:       constant(fmt.Sprintf("On %s %s Went to %s.", day, who, place)),
		hint:        "Names and days start with a capital letter.",
		explanation: "Use capitals for proper nouns and the first word of a sentence.",
	}
}

var (
	spokenQuestions    = []string{"do you want to play", "can we go to the park", "is it time for lunch", "where is my hat"}
	spokenExclamations = []string{"what a fantastic day", "that was amazing", "what a huge wave", "we won the game"}
)

func buildPunctuation(level int, r *rng.Rand) draft {
	who := rng.Pick(r, convNames)
	kinds := []string{"question", "exclaim"}
	if level >= 3 {
		kinds = append(kinds, "list")
	}

	d := draft{hint: "Questions need a question mark.", explanation: "Punctuation helps the reader understand meaning."}
	var raw string
	switch rng.Pick(r, kinds) {
	case "question":
		spoken := rng.Pick(r, spokenQuestions)
		quote := capitalize(spoken)
		raw = fmt.Sprintf("%s asked %s", who, spoken)
		d.correct = fmt.Sprintf("%s asked, \"%s?\"", who, quote)
		d.distractors = []string{
			fmt.Sprintf("%s asked, \"%s.\"", who, quote),
			fmt.Sprintf("%s asked \"%s\"?", who, quote),
			fmt.Sprintf("%s asked, %s?", who, quote),
		}
		d.extra = constant(fmt.Sprintf("%s asked, \"%s\"!", who, quote))
	case "exclaim":
		spoken := rng.Pick(r, spokenExclamations)
		quote := capitalize(spoken)
		raw = fmt.Sprintf("%s said %s", spoken, who)
		d.correct = fmt.Sprintf("\"%s!\" said %s.", quote, who)
		d.distractors = []string{
			fmt.Sprintf("\"%s\" said %s!", quote, who),
			fmt.Sprintf("\"%s!\" said %s", quote, who),
			fmt.Sprintf("%s! said %s.", quote, who),
		}
		d.extra = constant(fmt.Sprintf("\"%s?\" said %s.", quote, who))
	default:
		items := pickN(r, []string{"apples", "bananas", "grapes", "pears", "plums"}, 3)
		raw = fmt.Sprintf("%s packed %s %s and %s", who, items[0], items[1], items[2])
		d.correct = fmt.Sprintf("%s packed %s, %s and %s.", who, items[0], items[1], items[2])
		d.distractors = []string{
			fmt.Sprintf("%s packed %s %s and %s.", who, items[0], items[1], items[2]),
			fmt.Sprintf("%s packed, %s, %s, and, %s.", who, items[0], items[1], items[2]),
			fmt.Sprintf("%s packed %s, %s and %s", who, items[0], items[1], items[2]),
		}
		d.extra = constant(fmt.Sprintf("%s packed %s; %s; and %s.", who, items[0], items[1], items[2]))
		d.hint = "Use commas to separate items in a list."
	}
	d.prompt = fmt.Sprintf("Which sentence is punctuated correctly?\n%s", raw)
	return d
}

func buildGrammar(level int, r *rng.Rand) draft {
	who := rng.Pick(r, convNames)
	pet := rng.Pick(r, convPets)
	place := rng.Pick(r, convPlaces)

	modes := []string{"agreement", "tense"}
	if level > 2 {
		modes = append(modes, "either")
	}

	d := draft{
		extra:       constant(fmt.Sprintf("%s walkeded to %s.", who, place)),
		hint:        "Read each option aloud to see what sounds correct.",
		explanation: "Correct sentences use the right verb form and grammar.",
	}
	switch rng.Pick(r, modes) {
	case "agreement":
		d.prompt = "Which is a correct sentence?"
		d.correct = fmt.Sprintf("%s's %s is at %s.", who, pet, place)
		d.distractors = []string{
			fmt.Sprintf("%s's %s are at %s.", who, pet, place),
			fmt.Sprintf("%s's %s am at %s.", who, pet, place),
			fmt.Sprintf("%s's %s be at %s.", who, pet, place),
		}
	case "tense":
		d.prompt = "Which sentence is written in the past tense?"
		d.correct = fmt.Sprintf("%s walked to %s.", who, place)
		d.distractors = []string{
			fmt.Sprintf("%s walks to %s.", who, place),
			fmt.Sprintf("%s will walk to %s.", who, place),
			fmt.Sprintf("%s is walking to %s.", who, place),
		}
	default:
		d.prompt = "Which sentence is correct?"
		d.correct = fmt.Sprintf("%s took a hat and a towel to %s.", who, place)
		d.distractors = []string{
			fmt.Sprintf("%s tooked a hat and a towel to %s.", who, place),
			fmt.Sprintf("%s take a hat and a towel to %s.", who, place),
			fmt.Sprintf("%s took a hat and towel to to %s.", who, place),
		}
	}
	return d
}

type prepositionTemplate struct {
	sentence string // {who}, {obj} and {surface} are substituted
	correct  string
	wrong    []string
}

var prepositionTemplates = []tiered[prepositionTemplate]{
	{1, prepositionTemplate{"{who} put the {obj} ___ {surface}.", "on", []string{"in", "for", "around"}}},
	{1, prepositionTemplate{"{who} waited ___ the bus to arrive.", "for", []string{"around", "to", "as"}}},
	{1, prepositionTemplate{"{who} walked ___ school with a friend.", "to", []string{"of", "as", "since"}}},
	{3, prepositionTemplate{"{who} is very good ___ drawing.", "at", []string{"of", "for", "to"}}},
	{3, prepositionTemplate{"{who} was scared ___ the dark.", "of", []string{"at", "with", "on"}}},
	{4, prepositionTemplate{"Our class trip is ___ Monday.", "on", []string{"at", "in", "since"}}},
	{5, prepositionTemplate{"{who} has lived in this town ___ 2019.", "since", []string{"for", "from", "during"}}},
	{5, prepositionTemplate{"{who} shared the {obj} ___ two friends.", "between", []string{"among", "across", "through"}}},
}

func buildPrepositions(level int, r *rng.Rand) draft {
	who := rng.Pick(r, convNames)
	obj := rng.Pick(r, convObjects)
	surface := rng.Pick(r, []string{"the table", "the shelf", "the chair", "the bed"})
	t := rng.Pick(r, eligible(level, prepositionTemplates))

	sentence := strings.NewReplacer("{who}", who, "{obj}", obj, "{surface}", surface).Replace(t.sentence)

	return draft{
		prompt:      fmt.Sprintf("Which word completes this sentence correctly?\n%s", sentence),
		correct:     t.correct,
		distractors: t.wrong,
		extra:       constant("under"),
		hint:        "Try each word in the sentence.",
		explanation: fmt.Sprintf("The correct word is \"%s\".", t.correct),
	}
}

func buildPartsOfSpeech(level int, r *rng.Rand) draft {
	who := rng.Pick(r, convNames)
	pet := rng.Pick(r, convPets)
	action := rng.Pick(r, []string{"ran", "jumped", "laughed", "whispered", "watched", "climbed"})
	place := rng.Pick(r, convPlaces)
	adj := rng.Pick(r, []string{"blue", "tiny", "cheerful", "noisy", "sleepy", "brave"})

	words := map[string]string{"noun": pet, "adjective": adj, "verb": action}
	asks := []string{"noun", "adjective", "verb"}
	sentence := fmt.Sprintf("%s %s with the %s %s at %s.", who, action, adj, pet, place)
	if level >= 3 {
		adverb := rng.Pick(r, []string{"happily", "slowly", "softly", "suddenly", "proudly"})
		words["adverb"] = adverb
		asks = append(asks, "adverb")
		sentence = fmt.Sprintf("%s %s %s with the %s %s at %s.", who, action, adverb, adj, pet, place)
	}
	ask := rng.Pick(r, asks)

	correct := words[ask]
	var distractors []string
	for _, kind := range asks {
		if kind != ask {
			distractors = append(distractors, words[kind])
		}
	}
	// A name is a proper noun, so it is only a fair distractor for the other kinds.
	if ask != "noun" {
		distractors = append(distractors, who)
	}

	return draft{
		prompt:      fmt.Sprintf("In this sentence, which word is %s %s?\n%s", article(ask), ask, sentence),
		correct:     correct,
		distractors: distractors,
		extra:       constant("the"),
		hint:        "Noun = naming word, verb = doing word, adjective = describing word, adverb = how it was done.",
		explanation: fmt.Sprintf("The correct answer is \"%s\".", correct),
	}
}

// article returns "an" before a vowel sound and "a" otherwise.
func article(word string) string {
	if word != "" && strings.ContainsRune("aeiou", rune(word[0])) {
		return "an"
	}
	return "a"
}
