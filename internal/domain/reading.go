package domain

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

// Reading-specific validation errors
var (
	ErrPassageIDEmpty      = errors.New("passage ID cannot be empty")
	ErrPassageTitleEmpty   = errors.New("passage title cannot be empty")
	ErrPassageBodyEmpty    = errors.New("passage body cannot be empty")
	ErrQuestionPromptEmpty = errors.New("question prompt cannot be empty")
	ErrQuestionNoOptions   = errors.New("question must have at least two options")
	ErrQuestionBadAnswer   = errors.New("question correct answer index out of range")
	ErrSessionIDEmpty      = errors.New("reading session ID cannot be empty")
	ErrSessionPassageEmpty = errors.New("reading session passage ID cannot be empty")
)

// UnansweredIndex is the sentinel stored in a session's chosen answers for
// a question the user never answered.
const UnansweredIndex = -1

// ComprehensionQuestion is a single multiple-choice question attached to a
// reading passage. Options keep exactly the order they were generated in.
type ComprehensionQuestion struct {
	Prompt             string   `json:"prompt"`
	Options            []string `json:"options"`
	CorrectOptionIndex int      `json:"correct_option_index"`
}

// Validate checks if the ComprehensionQuestion has valid data.
func (q *ComprehensionQuestion) Validate() error {
	if q.Prompt == "" {
		return ErrQuestionPromptEmpty
	}

	if len(q.Options) < 2 {
		return ErrQuestionNoOptions
	}

	if q.CorrectOptionIndex < 0 || q.CorrectOptionIndex >= len(q.Options) {
		return ErrQuestionBadAnswer
	}

	return nil
}

// ReadingPassage is an AI-generated reading text with an attached
// comprehension quiz. AudioAssetRef is attached asynchronously after the
// passage is created, once speech synthesis completes; it may be absent
// for a while, or forever if synthesis failed.
type ReadingPassage struct {
	ID               uuid.UUID               `json:"id"`
	Title            string                  `json:"title"`
	Body             string                  `json:"body"`
	Questions        []ComprehensionQuestion `json:"questions"`
	SourceVocabulary []string                `json:"source_vocabulary"`
	AudioAssetRef    string                  `json:"audio_asset_ref,omitempty"`
	CreatedAt        time.Time               `json:"created_at"`
}

// NewReadingPassage creates a validated ReadingPassage with a generated ID
// and UTC creation timestamp. No audio reference is set yet.
func NewReadingPassage(
	title, body string,
	questions []ComprehensionQuestion,
	sourceVocabulary []string,
) (*ReadingPassage, error) {
	passage := &ReadingPassage{
		ID:               uuid.New(),
		Title:            title,
		Body:             body,
		Questions:        questions,
		SourceVocabulary: sourceVocabulary,
		CreatedAt:        time.Now().UTC(),
	}

	if err := passage.Validate(); err != nil {
		return nil, err
	}

	return passage, nil
}

// Validate checks if the ReadingPassage and all its questions have valid data.
func (p *ReadingPassage) Validate() error {
	if p.ID == uuid.Nil {
		return ErrPassageIDEmpty
	}

	if p.Title == "" {
		return ErrPassageTitleEmpty
	}

	if p.Body == "" {
		return ErrPassageBodyEmpty
	}

	for i := range p.Questions {
		if err := p.Questions[i].Validate(); err != nil {
			return err
		}
	}

	return nil
}

// ReadingSession records one completed comprehension quiz. It references its
// passage by ID only; deleting the passage leaves the record dangling, which
// is acceptable for a history view.
type ReadingSession struct {
	ID            uuid.UUID `json:"id"`
	PassageID     uuid.UUID `json:"passage_id"`
	ChosenAnswers []int     `json:"chosen_answers"`
	Score         int       `json:"score"`
	CompletedAt   time.Time `json:"completed_at"`
}

// NewReadingSession creates a session record for the given passage, scoring
// the chosen answers against the passage's questions. The score is the
// rounded percentage of correctly answered questions.
func NewReadingSession(passage *ReadingPassage, chosenAnswers []int) (*ReadingSession, error) {
	if passage == nil || passage.ID == uuid.Nil {
		return nil, ErrSessionPassageEmpty
	}

	session := &ReadingSession{
		ID:            uuid.New(),
		PassageID:     passage.ID,
		ChosenAnswers: chosenAnswers,
		Score:         scoreAnswers(chosenAnswers, passage.Questions),
		CompletedAt:   time.Now().UTC(),
	}

	return session, nil
}

// Validate checks if the ReadingSession has valid data.
func (s *ReadingSession) Validate() error {
	if s.ID == uuid.Nil {
		return ErrSessionIDEmpty
	}

	if s.PassageID == uuid.Nil {
		return ErrSessionPassageEmpty
	}

	return nil
}

// scoreAnswers counts positions where the chosen index matches the
// question's correct index and converts the ratio to a rounded percentage.
// Answers beyond the question list are ignored; missing answers count as
// wrong.
func scoreAnswers(answers []int, questions []ComprehensionQuestion) int {
	if len(questions) == 0 {
		return 0
	}

	correct := 0
	for i, answer := range answers {
		if i < len(questions) && answer == questions[i].CorrectOptionIndex {
			correct++
		}
	}

	return int(math.Round(float64(correct) / float64(len(questions)) * 100))
}
