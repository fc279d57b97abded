package generation

import (
	"fmt"
	"strings"
)

// The prompts are shared by every backend so that switching the model
// provider never changes what is asked of it.

// TranslationPrompt asks for a translation of phrase plus etymology and
// synonyms, as a bare JSON object.
func TranslationPrompt(phrase string, fromGerman bool) string {
	if fromGerman {
		return fmt.Sprintf(`Respond only with a JSON following format: {"trans":"translation from German to English of '%s' here", "etym":"etymology of the german phrase here given in English", "synonyms":"2-3 German synonyms for '%s' separated by commas"}.`, phrase, phrase)
	}
	return fmt.Sprintf(`Respond only with a JSON following format: {"trans":"translation from English to German of '%s' here", "etym":"etymology of the german phrase here given in English", "synonyms":"2-3 German synonyms for the translated word separated by commas"}.`, phrase)
}

// Per-kind instructions for grammar exercise generation.
var exerciseInstructions = map[string]string{
	"fill_blank": `- Create sentences with blanks for articles (der/die/das), cases (accusative/dative/genitive), or verb forms
- Format: "Ich gehe in ___ Park" with correct answer "den" (accusative)
- Options should include der, die, das, den, dem, des as appropriate`,
	"sentence_building": `- Provide scrambled German words that form a correct sentence
- Format question as: "Build a sentence: [word1, word2, word3, word4]"
- Correct answer should be the properly ordered sentence
- No options needed (options can be empty array)`,
	"case_selection": `- Focus on correct case usage (Nominativ, Akkusativ, Dativ, Genitiv)
- Format: "Complete: Ich sehe ___ Mann" with options and correct case
- Options should include different case forms of the same article/adjective`,
	"verb_conjugation": `- Present verb infinitives and ask for correct conjugation
- Format: "Conjugate 'sein' for 'wir': wir ___" with correct answer "sind"
- Include common verb forms and tenses`,
}

// ExercisePrompt asks for count German grammar exercises of the given kind
// built from the vocabulary words.
func ExercisePrompt(words []string, kind string, count int) string {
	instructions, ok := exerciseInstructions[kind]
	if !ok {
		instructions = "Create general grammar exercises"
	}

	return fmt.Sprintf(`Create %d German grammar exercises using these vocabulary words when possible: %s.
Exercise type: %s

%s

Respond only with JSON in this exact format: {"exercises": [{"type": "%s", "question": "question here", "correct_answer": "answer", "options": ["option1", "option2", "correct_answer", "option3"], "explanation": "brief explanation of the grammar rule", "difficulty": "beginner", "used_words": ["word1", "word2"]}]}

Rules:
- Each exercise must include a clear question
- Correct answer must be precise and unambiguous
- Include 3-4 options for multiple choice (except sentence_building which can have empty options)
- Explanation should be 1-2 sentences explaining the grammar rule
- Difficulty should be "beginner", "intermediate", or "advanced"
- used_words should list vocabulary words that appear in the exercise
- Make exercises progressively more challenging
- Ensure grammatical accuracy`,
		count, strings.Join(words, ", "), kind, instructions, kind)
}

// PassagePrompt asks for a short reading passage with a four-question
// comprehension quiz built from the vocabulary words.
func PassagePrompt(vocabulary []string, customInstructions string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `Write a short German reading passage for a language learner using these vocabulary words where natural: %s.

`, strings.Join(vocabulary, ", "))

	if customInstructions != "" {
		fmt.Fprintf(&b, "Additional instructions: %s\n\n", customInstructions)
	}

	b.WriteString(`Respond only with JSON in this exact format: {"title": "passage title in German", "content": "the passage text in German, 100-200 words", "questions": [{"question": "comprehension question in German", "options": ["option1", "option2", "option3", "option4"], "correct_answer": 0}]}

Rules:
- Include exactly 4 comprehension questions
- Each question has exactly 4 options
- correct_answer is the zero-based index of the right option
- Keep the language level appropriate for an intermediate learner`)

	return b.String()
}
