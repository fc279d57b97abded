package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewWordEntry(t *testing.T) {
	t.Parallel()

	entry, err := NewWordEntry("der Hund", "the dog", "from Middle High German hunt", "der Köter, der Vierbeiner")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if entry.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if entry.German != "der Hund" {
		t.Errorf("Expected german %q, got %q", "der Hund", entry.German)
	}

	if entry.English != "the dog" {
		t.Errorf("Expected english %q, got %q", "the dog", entry.English)
	}

	if entry.IsLearned {
		t.Error("Expected new entry to not be learned")
	}

	if entry.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}
}

func TestNewWordEntryFallbackSides(t *testing.T) {
	t.Parallel()

	// A fallback entry after a failed translation carries only one side.
	entry, err := NewWordEntry("Fernweh", "", "", "")
	if err != nil {
		t.Fatalf("Expected no error for German-only entry, got %v", err)
	}
	if entry.Headword() != "Fernweh" {
		t.Errorf("Expected headword %q, got %q", "Fernweh", entry.Headword())
	}

	entry, err = NewWordEntry("", "wanderlust", "", "")
	if err != nil {
		t.Fatalf("Expected no error for English-only entry, got %v", err)
	}
	if entry.Headword() != "wanderlust" {
		t.Errorf("Expected headword %q, got %q", "wanderlust", entry.Headword())
	}

	if _, err = NewWordEntry("", "", "", ""); err != ErrWordTextEmpty {
		t.Errorf("Expected error %v, got %v", ErrWordTextEmpty, err)
	}
}

func TestWordEntryValidate(t *testing.T) {
	t.Parallel()

	valid := WordEntry{ID: uuid.New(), German: "die Katze", English: "the cat"}
	if err := valid.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	invalid := valid
	invalid.ID = uuid.Nil
	if err := invalid.Validate(); err != ErrWordIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrWordIDEmpty, err)
	}

	invalid = valid
	invalid.German = ""
	invalid.English = ""
	if err := invalid.Validate(); err != ErrWordTextEmpty {
		t.Errorf("Expected error %v, got %v", ErrWordTextEmpty, err)
	}
}
