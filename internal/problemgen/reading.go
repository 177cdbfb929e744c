package problemgen

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/abhisek/ziggy/internal/rng"
)

var readingFamilies = []Family{
	{Name: "detail", Prefix: "q-read-detail", Subskill: "read-detail", build: buildReadDetail},
	{Name: "inference", Prefix: "q-read-infer", Subskill: "read-inference", build: buildReadInference},
	{Name: "vocab-in-context", Prefix: "q-read-vocab", Subskill: "read-vocab", build: buildReadVocab},
	{Name: "main-idea", Prefix: "q-read-main", Subskill: "read-main-idea", build: buildReadMainIdea},
	{Name: "mini-magazine", Prefix: "q-read-mini-detail", Subskill: "read-detail-mini", build: buildReadMiniMagazine},
	{Name: "author-purpose", Prefix: "q-read-purpose", Subskill: "read-author-purpose", build: buildReadAuthorPurpose},
}

var (
	readingNames  = []string{"Alex", "Mina", "Jack", "Sam", "Rani", "Tara", "Lily", "Ethan", "Georgia", "Noah"}
	readingPlaces = []string{"the park", "the library", "the beach", "the backyard", "school", "the sports oval"}
	readingTimes  = []string{"after school", "on Saturday", "early in the morning", "before dinner"}
	readingPets   = []string{"cat", "dog", "rabbit", "bird", "lizard", "koala"}
)

var readingObjects = []tiered[string]{
	{1, "a shiny shell"}, {1, "a new book"}, {1, "a missing lunchbox"},
	{1, "a tiny robot"}, {1, "a secret note"}, {1, "a torn map"},
	{3, "a rusty key"}, {3, "a feather pen"},
	{5, "an old postcard"}, {5, "a brass compass"},
}

var readingTopics = []tiered[string]{
	{1, "bamboo"}, {1, "seahorses"}, {1, "gardens"}, {1, "rainbows"},
	{2, "microbats"}, {2, "rainforests"}, {2, "recycling"}, {2, "volcanoes"},
	{3, "coral reefs"}, {3, "solar panels"},
	{4, "glaciers"}, {4, "bushfires"},
	{5, "migrating birds"}, {5, "deserts"},
}

func buildReadDetail(level int, r *rng.Rand) draft {
	objects := eligible(level, readingObjects)
	who := rng.Pick(r, readingNames)
	where := rng.Pick(r, readingPlaces)
	when := rng.Pick(r, readingTimes)
	found := rng.Pick(r, objects)

	text := fmt.Sprintf("%s went to %s %s. %s found %s and showed it to a friend.", who, where, when, who, found)
	if level >= 3 {
		// A second object in the passage makes the detail harder to spot.
		seen := rng.Pick(r, others(objects, found))
		text = fmt.Sprintf("%s went to %s %s. On the way, %s noticed %s but kept walking. Later, %s found %s and showed it to a friend.",
			who, where, when, who, seen, who, found)
	}

	return draft{
		prompt:      fmt.Sprintf("Read this:\n%s\n\nWhat did %s find?", text, who),
		correct:     found,
		distractors: pickN(r, others(objects, found), 3),
		extra:       pickFrom(r, objects),
		hint:        "Look for the exact words in the text.",
		explanation: "A detail question is answered directly by the text.",
	}
}

type feelingScene struct {
	text    string // %[1]s is the character, %[2]s a pet
	feeling string
}

var feelingScenes = []tiered[feelingScene]{
	{1, feelingScene{"%[1]s searched everywhere for their %[2]s. Then %[1]s heard a soft sound from under the bed. %[1]s smiled and gently reached out.", "relieved"}},
	{1, feelingScene{"%[1]s practised every day for weeks. When the winners were read out, %[1]s jumped up and cheered.", "proud"}},
	{2, feelingScene{"Thunder boomed outside. %[1]s pulled the blanket up tight and hugged their %[2]s.", "scared"}},
	{2, feelingScene{"%[1]s tore off the wrapping paper, gasped, and could not stop grinning.", "surprised"}},
	{3, feelingScene{"%[1]s kept checking the clock and tapping their foot while the bus was late again.", "impatient"}},
	{4, feelingScene{"%[1]s looked at the broken vase, then quietly went to tell Mum what the %[2]s had done while they were meant to be watching it.", "guilty"}},
	{5, feelingScene{"%[1]s had packed the night before, but when the rain started and the camping trip was cancelled, %[1]s slowly unpacked the bag.", "disappointed"}},
}

var feelingWords = []string{"angry", "bored", "confused", "sleepy", "disappointed", "relieved", "proud", "scared", "surprised", "impatient", "guilty"}

func buildReadInference(level int, r *rng.Rand) draft {
	who := rng.Pick(r, readingNames)
	pet := rng.Pick(r, readingPets)
	scene := rng.Pick(r, eligible(level, feelingScenes))
	wrong := others(feelingWords, scene.feeling)

	return draft{
		prompt:      fmt.Sprintf("Read this:\n%s\n\nHow is %s most likely feeling?", fmt.Sprintf(scene.text, who, pet), who),
		correct:     scene.feeling,
		distractors: pickN(r, wrong, 3),
		extra:       pickFrom(r, wrong),
		hint:        "Use clues from what happened.",
		explanation: "Inference means using clues to work something out.",
	}
}

type vocabWord struct {
	word    string
	meaning string
	wrong   []string
}

var vocabWords = []tiered[vocabWord]{
	{1, vocabWord{"swift", "very fast", []string{"very slow", "very loud", "very small"}}},
	{1, vocabWord{"cheerful", "very happy", []string{"very sad", "very angry", "very scared"}}},
	{1, vocabWord{"ancient", "very old", []string{"very new", "very shiny", "very wet"}}},
	{2, vocabWord{"fragile", "easy to break", []string{"very strong", "very heavy", "very noisy"}}},
	{2, vocabWord{"curious", "wanting to learn", []string{"not interested", "very tired", "very hungry"}}},
	{3, vocabWord{"determined", "decided and not giving up", []string{"not sure", "very sleepy", "not careful"}}},
	{3, vocabWord{"enormous", "extremely big", []string{"extremely thin", "a little wet", "quite quiet"}}},
	{4, vocabWord{"cautious", "careful to avoid danger", []string{"keen to show off", "in a big hurry", "feeling very sick"}}},
	{4, vocabWord{"reluctant", "not wanting to do something", []string{"ready and eager", "unable to hear", "very proud"}}},
	{5, vocabWord{"peculiar", "strange or unusual", []string{"plain and normal", "bright and sunny", "cold and icy"}}},
	{5, vocabWord{"resilient", "able to recover quickly", []string{"easily broken", "always asleep", "hard to see"}}},
}

var vocabNouns = []string{"runner", "puppy", "robot", "tree", "storm", "bicycle", "magician", "kitten", "train", "horse"}

func buildReadVocab(level int, r *rng.Rand) draft {
	item := rng.Pick(r, eligible(level, vocabWords))
	noun := rng.Pick(r, vocabNouns)

	return draft{
		prompt:      fmt.Sprintf("Read: \"The %s %s kept going.\"\n\nWhat does \"%s\" mean?", item.word, noun, item.word),
		correct:     item.meaning,
		distractors: item.wrong,
		extra:       pickFrom(r, []string{"very bright", "very quiet", "very rough"}),
		hint:        "Use the sentence to help you.",
		explanation: fmt.Sprintf("\"%s\" means %s.", item.word, item.meaning),
	}
}

var offTopicIdeas = []string{"How to cook dinner", "A funny story about a party", "Rules for a sport"}

func buildReadMainIdea(level int, r *rng.Rand) draft {
	topics := eligible(level, readingTopics)
	topic := rng.Pick(r, topics)
	heading := rng.Pick(r, []string{"Did You Know?", "Nature Notes", "Quick Facts", "Amazing Things"})
	s1 := capitalize(topic) + " can be surprising."
	s2 := rng.Pick(r, []string{
		fmt.Sprintf("This text shares facts about %s.", topic),
		fmt.Sprintf("This text explains why %s are important.", topic),
		fmt.Sprintf("This text gives examples and details about %s.", topic),
	})
	s3 := rng.Pick(r, []string{
		"It uses short sentences to help the reader learn.",
		"It includes details to help the reader understand.",
		"It gives examples to explain the topic.",
	})

	distractors := offTopicIdeas
	if level >= 3 {
		// A nearby topic is a more tempting wrong answer than an unrelated one.
		near := rng.Pick(r, others(topics, topic))
		distractors = append([]string{"Facts about " + near}, offTopicIdeas[:2]...)
	}

	return draft{
		prompt:      fmt.Sprintf("Read this:\n%s\n%s %s %s\n\nWhat is the main idea of the text?", heading, s1, s2, s3),
		correct:     "Facts about " + topic,
		distractors: distractors,
		extra:       constant("A list of numbers"),
		hint:        "Main idea = what the text is mostly about.",
		explanation: "The text keeps talking about the same topic.",
	}
}

func buildReadMiniMagazine(level int, r *rng.Rand) draft {
	heading := rng.Pick(r, []string{"Amazing Animals", "Outdoor Facts", "Science Snapshot", "Nature News"})
	topic := rng.Pick(r, eligible(level, readingTopics))
	factA := rng.Pick(r, []string{
		fmt.Sprintf("Some %s live near water.", topic),
		fmt.Sprintf("Some %s can be found in warm places.", topic),
		fmt.Sprintf("Some %s live where they can stay hidden.", topic),
	})
	factB := rng.Pick(r, []string{
		"They have features that help them survive.",
		"They can be useful in different ways.",
		"People can learn from studying them.",
	})
	factC := rng.Pick(r, []string{
		"This helps them stay safe.",
		"This helps them find food.",
		"This helps them move around.",
	})

	return draft{
		prompt: fmt.Sprintf("Read this mini-magazine text:\n%s\n%s %s %s\n\nAccording to the text, what helps %s survive?",
			heading, factA, factB, factC, topic),
		correct:     "Their features",
		distractors: []string{"Magic", "Luck", "Their favourite colour"},
		extra:       constant("Their toys"),
		hint:        "Find the sentence that matches the question.",
		explanation: "The text explains survival using features.",
	}
}

type purposeText struct {
	text    string // %s is the topic
	purpose string
}

var purposeTexts = []tiered[purposeText]{
	{1, purposeText{"This text explains %s and gives examples.", "To give information"}},
	{1, purposeText{"This text shares facts about %s.", "To give information"}},
	{1, purposeText{"This text describes what %s look like up close.", "To give information"}},
	{1, purposeText{"This text tells readers how %s change through the year.", "To give information"}},
	{3, purposeText{"This text tells readers why everyone should protect %s and asks them to help.", "To persuade the reader"}},
	{3, purposeText{"This text is a funny story about %s that can talk.", "To entertain the reader"}},
	{5, purposeText{"This text lists the steps for looking after %s at home.", "To explain how to do something"}},
}

var purposeDistractors = []string{"To tell a joke", "To persuade the reader", "To describe a game", "To sell something", "To entertain the reader", "To give information"}

func buildReadAuthorPurpose(level int, r *rng.Rand) draft {
	topic := rng.Pick(r, eligible(level, readingTopics))
	item := rng.Pick(r, eligible(level, purposeTexts))
	wrong := others(purposeDistractors, item.purpose)
	if level < 3 {
		wrong = lo.Without(wrong, "To entertain the reader")
	}

	return draft{
		prompt:      fmt.Sprintf("Read this:\n%s\n\nWhat is the author's purpose?", fmt.Sprintf(item.text, topic)),
		correct:     item.purpose,
		distractors: pickN(r, wrong, 3),
		extra:       constant("To teach a dance"),
		hint:        "Is the text informing, persuading, or entertaining?",
		explanation: fmt.Sprintf("Think about what the writer wants the reader to do or know: %s.", strings.ToLower(item.purpose)),
	}
}

// capitalize upper-cases the first ASCII letter of s.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
