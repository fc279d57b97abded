package generation

import "context"

// Translation is the annotated result of translating a single phrase.
type Translation struct {
	// Translation is the other-language rendering of the input phrase.
	Translation string

	// Etymology of the German phrase, given in English.
	Etymology string

	// Synonyms is a comma-separated list of German synonyms.
	Synonyms string
}

// Translator translates a phrase between German and English and annotates
// it with etymology and synonyms.
// This interface is a boundary between the application core and external
// LLM services; implementations live under internal/platform.
type Translator interface {
	// Translate translates phrase from German to English when fromGerman
	// is true, or English to German otherwise.
	Translate(ctx context.Context, phrase string, fromGerman bool) (*Translation, error)
}

// GeneratedExercise is one exercise as produced by the collaborator, before
// it is validated into a domain.GrammarExercise.
type GeneratedExercise struct {
	Kind          string   `json:"type"`
	Prompt        string   `json:"question"`
	CorrectAnswer string   `json:"correct_answer"`
	Options       []string `json:"options"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
	UsedWords     []string `json:"used_words"`
}

// ExerciseGenerator produces grammar exercises referencing the given
// vocabulary words.
type ExerciseGenerator interface {
	// GenerateExercises creates count exercises of the given kind.
	GenerateExercises(ctx context.Context, words []string, kind string, count int) ([]GeneratedExercise, error)
}

// GeneratedQuestion is one comprehension question as produced by the
// collaborator.
type GeneratedQuestion struct {
	Prompt             string   `json:"question"`
	Options            []string `json:"options"`
	CorrectOptionIndex int      `json:"correct_answer"`
}

// GeneratedPassage is a reading passage as produced by the collaborator.
type GeneratedPassage struct {
	Title     string              `json:"title"`
	Body      string              `json:"content"`
	Questions []GeneratedQuestion `json:"questions"`
}

// PassageGenerator produces a reading passage built around the given
// vocabulary words, optionally steered by free-form custom instructions.
type PassageGenerator interface {
	GeneratePassage(ctx context.Context, vocabulary []string, customInstructions string) (*GeneratedPassage, error)
}

// SpeechSynthesizer converts passage text into raw audio bytes.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}
