package problemgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/ziggy/internal/rng"
)

var writingFamilies = []Family{
	{Name: "next-sentence", Prefix: "q-write-next", Subskill: "write-next", build: buildNextSentence},
	{Name: "best-description", Prefix: "q-write-desc", Subskill: "write-description", build: buildBestDescription},
	{Name: "stronger-verb", Prefix: "q-write-verb", Subskill: "write-verbs", build: buildStrongerVerb},
	{Name: "better-opening", Prefix: "q-write-open", Subskill: "write-openings", build: buildBetterOpening},
	{Name: "fix-run-on", Prefix: "q-write-runon", Subskill: "write-sentences", build: buildFixRunOn},
	{Name: "best-ending", Prefix: "q-write-end", Subskill: "write-endings", build: buildBestEnding},
}

var (
	storyCharacters = []string{
		"Alex", "Mina", "Jack", "Sam", "Rani", "Tara", "Lily", "Ethan", "Georgia", "Noah", "Ava", "Kai",
		"Zoe", "Mia", "Ben", "Chloe", "Aria", "Leo",
	}
	storySettings = []string{
		"at the beach", "in the rainforest", "at the zoo", "at the park", "in a quiet town", "at a campsite",
		"near a creek", "at the library", "behind the school hall", "on a bushwalk", "at a market",
		"near an old shed", "in a museum", "at a train station", "in the backyard",
	}
	storyObjects = []string{
		"a mysterious box", "a shiny key", "a torn map", "a strange footprint", "a tiny robot", "a secret message",
		"an old compass", "a locked diary", "a folded note", "a broken watch", "a silver coin", "a lantern",
		"a pair of goggles", "a small whistle", "a glass marble", "a wooden badge", "a painted stone", "a puzzle piece",
	}
	storyMoods  = []string{"excited", "nervous", "curious", "proud", "surprised", "brave", "worried", "hopeful", "confused", "determined"}
	storyTimes  = []string{"early in the morning", "after school", "just before dinner", "on Saturday", "at sunset", "in the middle of the night"}
	storySounds = []string{"a creak", "a whisper", "a soft thud", "a clang", "a rustle", "a splash", "a tap-tap-tap"}
)

// storyContext builds a short scene. From level 3 the scene gains a second
// sentence with a change of direction.
func storyContext(level int, r *rng.Rand) string {
	who := rng.Pick(r, storyCharacters)
	where := rng.Pick(r, storySettings)
	when := rng.Pick(r, storyTimes)
	obj := rng.Pick(r, storyObjects)
	mood := rng.Pick(r, storyMoods)
	sound := rng.Pick(r, storySounds)

	ctx := fmt.Sprintf("Story:\n%s was %s %s. %s felt %s after hearing %s and noticing %s.",
		who, where, when, who, mood, sound, obj)
	if level >= 3 {
		ctx += fmt.Sprintf(" At first, %s thought it was nothing, but then it happened again.", who)
	}
	return ctx
}

func buildNextSentence(level int, r *rng.Rand) draft {
	ctx := storyContext(level, r)
	return draft{
		prompt:  ctx + "\n\nWhich sentence is the best next sentence?",
		correct: "I took a slow breath, then moved closer to see what was really happening.",
		distractors: []string{
			"I ate a sandwich and forgot about it.",
			"My shoes were blue and my hat was red.",
			"Yesterday is a day that happened.",
		},
		extra:       constant("I looked around carefully and tried to stay calm."),
		hint:        "The best next sentence continues the action or mystery.",
		explanation: "Good stories connect to what just happened.",
	}
}

var describedThings = []string{"storm", "treehouse", "bike", "river", "cave", "puppy", "lantern", "path", "ocean", "forest"}

var descriptions = []tiered[string]{
	{1, "The %s was cold to touch and made my fingers tingle."},
	{1, "The %s looked ordinary at first, but tiny details made it seem unusual."},
	{2, "The %s stood out like it belonged to a different story."},
	{4, "The %s shimmered in the fading light, as if it were keeping a secret."},
	{5, "Every creak of the %s seemed to whisper a warning only I could hear."},
}

func buildBestDescription(level int, r *rng.Rand) draft {
	ctx := storyContext(level, r)
	thing := rng.Pick(r, describedThings)
	correct := fmt.Sprintf(rng.Pick(r, eligible(level, descriptions)), thing)

	return draft{
		prompt:  fmt.Sprintf("%s\n\nWhich sentence describes the %s best?", ctx, thing),
		correct: correct,
		distractors: []string{
			fmt.Sprintf("The %s was nice.", thing),
			fmt.Sprintf("The %s was good.", thing),
			fmt.Sprintf("The %s was there.", thing),
		},
		extra:       constant(fmt.Sprintf("The %s was okay.", thing)),
		hint:        "Good descriptions use specific details.",
		explanation: "Specific details help the reader picture the scene.",
	}
}

func buildStrongerVerb(level int, r *rng.Rand) draft {
	who := rng.Pick(r, storyCharacters)
	place := rng.Pick(r, storySettings)

	strong := []string{"creaked", "opened", "moved", "swung"}
	weak := []string{"did", "was", "got"}
	if level >= 4 {
		strong = []string{"creaked", "slammed", "burst", "swung"}
		weak = []string{"did", "went", "was"}
	}
	correct := rng.Pick(r, strong)

	return draft{
		prompt: fmt.Sprintf("Story:\n%s was %s.\n\nChoose the strongest verb to complete this sentence:\n\"The door ___ open.\"",
			who, place),
		correct:     correct,
		distractors: weak,
		extra:       constant("made"),
		hint:        "Strong verbs make writing clearer and more vivid.",
		explanation: fmt.Sprintf("\"%s\" creates a stronger picture in the reader's mind.", correct),
	}
}

var openings = []tiered[string]{
	{1, "I froze when I realised the quiet was not normal."},
	{1, "Something small changed, and suddenly everything felt different."},
	{2, "Just as I turned around, I saw something I could not explain."},
	{2, "I did not know it yet, but this was the moment everything began."},
	{4, "The note was only four words long, but it changed my whole summer."},
}

func buildBetterOpening(level int, r *rng.Rand) draft {
	who := rng.Pick(r, storyCharacters)
	where := rng.Pick(r, storySettings)
	mood := rng.Pick(r, storyMoods)

	return draft{
		prompt: fmt.Sprintf("Theme:\nA story about %s who feels %s %s.\n\nWhich is the best opening sentence for a story?",
			who, mood, where),
		correct:     rng.Pick(r, eligible(level, openings)),
		distractors: []string{"I woke up.", "It was a day.", "I did something."},
		extra:       constant("I went outside."),
		hint:        "A strong opening creates curiosity.",
		explanation: "Good openings make the reader want to keep reading.",
	}
}

func buildFixRunOn(level int, r *rng.Rand) draft {
	who := rng.Pick(r, storyCharacters)
	where := rng.Pick(r, storySettings)
	obj := rng.Pick(r, storyObjects)
	lower := strings.ToLower(who)

	runOn := fmt.Sprintf("%s ran %s and %s picked up %s and %s tried to hide it and %s felt nervous.",
		who, where, lower, obj, lower, lower)

	return draft{
		prompt:  fmt.Sprintf("Read this run-on sentence:\n\"%s\"\n\nWhich option fixes it best?", runOn),
		correct: fmt.Sprintf("%s ran %s, picked up %s, and tried to hide it.", who, where, obj),
		distractors: []string{
			fmt.Sprintf("%s ran %s picked up %s and tried to hide it.", who, where, obj),
			fmt.Sprintf("%s ran %s, picked up %s tried to hide it.", who, where, obj),
			fmt.Sprintf("%s ran %s and, picked up %s, and tried to hide it.", who, where, obj),
		},
		extra:       constant(fmt.Sprintf("%s ran %s.", who, where)),
		hint:        "Split long ideas into clear parts using punctuation and conjunctions.",
		explanation: "The best option removes repetition and adds clear punctuation.",
	}
}

var endings = []tiered[string]{
	{1, "Inside was a note that said, \"Well done. You found me.\""},
	{3, "Inside was the key I had lost a year ago, and finally I understood the clues."},
	{5, "Inside was a photo of me, taken that very morning, and the mystery was only beginning."},
}

func buildBestEnding(level int, r *rng.Rand) draft {
	ctx := storyContext(level, r)
	obj := rng.Pick(r, storyObjects)

	return draft{
		prompt: fmt.Sprintf("%s\n\nA story ends like this:\n\"I took a deep breath and opened %s.\"\n\nWhich ending is best?",
			ctx, obj),
		correct: rng.Pick(r, eligible(level, endings)),
		distractors: []string{
			"Then I went to sleep.",
			"Inside was nothing and that was it.",
			"I ate an apple and forgot about it.",
		},
		extra:       constant("I closed it quickly and ran."),
		hint:        "A good ending connects to the story's problem or mystery.",
		explanation: "A satisfying ending answers a question or adds a twist.",
	}
}
