package domain

import (
	"errors"

	"github.com/google/uuid"
)

// ExerciseKind identifies the style of a grammar exercise.
type ExerciseKind string

// Possible exercise kinds. The string values match the identifiers the
// generation collaborator uses in its responses.
const (
	ExerciseFillBlank        ExerciseKind = "fill_blank"
	ExerciseSentenceBuilding ExerciseKind = "sentence_building"
	ExerciseCaseSelection    ExerciseKind = "case_selection"
	ExerciseVerbConjugation  ExerciseKind = "verb_conjugation"
)

// Difficulty grades a grammar exercise.
type Difficulty string

// Possible difficulty values.
const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Grammar-exercise validation errors
var (
	ErrExerciseIDEmpty     = errors.New("exercise ID cannot be empty")
	ErrExercisePromptEmpty = errors.New("exercise prompt cannot be empty")
	ErrExerciseAnswerEmpty = errors.New("exercise correct answer cannot be empty")
	ErrInvalidExerciseKind = errors.New("invalid exercise kind")
	ErrInvalidDifficulty   = errors.New("invalid difficulty")
)

// GrammarExercise is a single generated exercise. It is immutable once
// created; regeneration replaces the whole value.
type GrammarExercise struct {
	ID            uuid.UUID    `json:"id"`
	Kind          ExerciseKind `json:"kind"`
	Prompt        string       `json:"prompt"`
	CorrectAnswer string       `json:"correct_answer"`
	// Options is empty for sentence-building exercises, which take free
	// text input instead of a multiple choice selection.
	Options     []string   `json:"options,omitempty"`
	Explanation string     `json:"explanation"`
	Difficulty  Difficulty `json:"difficulty"`
	UsedWords   []string   `json:"used_words,omitempty"`
}

// NewGrammarExercise creates a validated GrammarExercise with a generated ID.
func NewGrammarExercise(
	kind ExerciseKind,
	prompt, correctAnswer string,
	options []string,
	explanation string,
	difficulty Difficulty,
	usedWords []string,
) (*GrammarExercise, error) {
	ex := &GrammarExercise{
		ID:            uuid.New(),
		Kind:          kind,
		Prompt:        prompt,
		CorrectAnswer: correctAnswer,
		Options:       options,
		Explanation:   explanation,
		Difficulty:    difficulty,
		UsedWords:     usedWords,
	}

	if err := ex.Validate(); err != nil {
		return nil, err
	}

	return ex, nil
}

// Validate checks if the GrammarExercise has valid data.
func (e *GrammarExercise) Validate() error {
	if e.ID == uuid.Nil {
		return ErrExerciseIDEmpty
	}

	if !isValidExerciseKind(e.Kind) {
		return ErrInvalidExerciseKind
	}

	if e.Prompt == "" {
		return ErrExercisePromptEmpty
	}

	if e.CorrectAnswer == "" {
		return ErrExerciseAnswerEmpty
	}

	if !isValidDifficulty(e.Difficulty) {
		return ErrInvalidDifficulty
	}

	return nil
}

func isValidExerciseKind(kind ExerciseKind) bool {
	switch kind {
	case ExerciseFillBlank, ExerciseSentenceBuilding,
		ExerciseCaseSelection, ExerciseVerbConjugation:
		return true
	default:
		return false
	}
}

func isValidDifficulty(d Difficulty) bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	default:
		return false
	}
}
