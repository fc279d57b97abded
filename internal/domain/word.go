package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Word-specific validation errors
var (
	// ErrWordIDEmpty is returned when a word entry ID is empty or nil.
	ErrWordIDEmpty = errors.New("word ID cannot be empty")

	// ErrWordTextEmpty is returned when both sides of a word entry are empty.
	ErrWordTextEmpty = errors.New("word must have a German or English side")
)

// WordEntry represents one vocabulary item: a German/English pair with
// optional etymology and synonym annotations supplied by the translation
// collaborator. Duplicate headwords are permitted; repetition is meaningful
// for spaced review.
type WordEntry struct {
	ID        uuid.UUID `json:"id"`
	German    string    `json:"german"`
	English   string    `json:"english"`
	Etymology string    `json:"etymology,omitempty"`
	Synonyms  string    `json:"synonyms,omitempty"`
	IsLearned bool      `json:"is_learned"`
	CreatedAt time.Time `json:"created_at"`
}

// NewWordEntry creates a new WordEntry with a generated ID and UTC creation
// timestamp. Either side may be empty (a fallback entry created after a
// failed translation carries only the side the user typed), but not both.
func NewWordEntry(german, english, etymology, synonyms string) (*WordEntry, error) {
	entry := &WordEntry{
		ID:        uuid.New(),
		German:    german,
		English:   english,
		Etymology: etymology,
		Synonyms:  synonyms,
		IsLearned: false,
		CreatedAt: time.Now().UTC(),
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	return entry, nil
}

// Validate checks if the WordEntry has valid data.
func (w *WordEntry) Validate() error {
	if w.ID == uuid.Nil {
		return ErrWordIDEmpty
	}

	if w.German == "" && w.English == "" {
		return ErrWordTextEmpty
	}

	return nil
}

// Headword returns the side of the pair used as the lookup key in passage
// and exercise generation. German is preferred; fallback entries created
// from an English input may only carry the English side.
func (w *WordEntry) Headword() string {
	if w.German != "" {
		return w.German
	}
	return w.English
}

// Label renders the pair as "Haus (house)" for generation prompts. Entries
// missing one side render just the side they have.
func (w *WordEntry) Label() string {
	if w.German != "" && w.English != "" {
		return w.German + " (" + w.English + ")"
	}
	return w.Headword()
}
