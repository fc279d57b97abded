package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslationPromptDirection(t *testing.T) {
	t.Parallel()

	fromGerman := TranslationPrompt("der Hund", true)
	assert.Contains(t, fromGerman, "German to English")
	assert.Contains(t, fromGerman, "der Hund")

	toGerman := TranslationPrompt("the dog", false)
	assert.Contains(t, toGerman, "English to German")
	assert.Contains(t, toGerman, "the dog")
}

func TestExercisePrompt(t *testing.T) {
	t.Parallel()

	prompt := ExercisePrompt([]string{"der Hund (the dog)", "laufen (to run)"}, "verb_conjugation", 5)
	assert.Contains(t, prompt, "Create 5 German grammar exercises")
	assert.Contains(t, prompt, "der Hund (the dog), laufen (to run)")
	assert.Contains(t, prompt, "verb_conjugation")
	assert.Contains(t, prompt, "Conjugate 'sein'")

	// Unknown kinds fall back to a generic instruction instead of failing.
	generic := ExercisePrompt([]string{"Wort"}, "cloze", 1)
	assert.Contains(t, generic, "Create general grammar exercises")
}

func TestPassagePromptCustomInstructions(t *testing.T) {
	t.Parallel()

	plain := PassagePrompt([]string{"wohnen"}, "")
	assert.NotContains(t, plain, "Additional instructions")

	custom := PassagePrompt([]string{"wohnen"}, "set it in a bakery")
	assert.Contains(t, custom, "Additional instructions: set it in a bakery")
}
