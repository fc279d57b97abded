// Package vocab implements the vocabulary store: the persisted list of
// word entries and the translate-then-add flow that feeds it.
package vocab

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/fskogh/lingai/internal/domain"
	"github.com/fskogh/lingai/internal/generation"
	"github.com/fskogh/lingai/internal/store"
	"github.com/google/uuid"
)

// Store owns the vocabulary collection. The in-memory slice is
// authoritative; every mutation re-serializes the whole collection to the
// key-value store, and persistence failures are logged rather than
// surfaced, accepting potential loss on process exit.
type Store struct {
	mu         sync.Mutex
	words      []*domain.WordEntry
	kv         store.KV
	translator generation.Translator
	logger     *slog.Logger
}

// NewStore creates a Store backed by kv and loads any previously persisted
// collection. A corrupt or missing value starts an empty collection.
func NewStore(kv store.KV, translator generation.Translator, logger *slog.Logger) *Store {
	s := &Store{
		kv:         kv,
		translator: translator,
		logger:     logger,
	}
	s.load()
	return s
}

func (s *Store) load() {
	data, err := s.kv.Get(context.Background(), store.KeyWords)
	if err != nil {
		if !errors.Is(err, store.ErrKeyNotFound) {
			s.logger.Warn("failed to load vocabulary, starting empty", "error", err)
		}
		return
	}

	var words []*domain.WordEntry
	if err := json.Unmarshal(data, &words); err != nil {
		s.logger.Warn("failed to decode vocabulary, starting empty", "error", err)
		return
	}
	s.words = words
}

// persist writes the whole collection. Failures are logged only; the
// in-memory state stays authoritative for the rest of the process lifetime.
func (s *Store) persist() {
	data, err := json.Marshal(s.words)
	if err != nil {
		s.logger.Error("failed to encode vocabulary", "error", err)
		return
	}

	if err := s.kv.Set(context.Background(), store.KeyWords, data); err != nil {
		s.logger.Error("failed to persist vocabulary", "error", err)
	}
}

// Add appends an entry and persists the collection. Duplicate headwords
// are allowed; repetition is meaningful for spaced review.
func (s *Store) Add(entry *domain.WordEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.words = append(s.words, entry)
	s.persist()
}

// AddTranslated translates the phrase via the collaborator and appends the
// annotated entry. On translation failure a fallback entry carrying only
// the side the user typed is stored instead, so the word is never lost.
// The returned entry is whichever was stored.
func (s *Store) AddTranslated(ctx context.Context, phrase string, fromGerman bool) (*domain.WordEntry, error) {
	var entry *domain.WordEntry

	result, err := s.translator.Translate(ctx, phrase, fromGerman)
	if err != nil {
		s.logger.Warn("translation failed, storing fallback entry",
			"phrase", phrase, "error", err)
		if fromGerman {
			entry, err = domain.NewWordEntry(phrase, "", "", "")
		} else {
			entry, err = domain.NewWordEntry("", phrase, "", "")
		}
	} else {
		if fromGerman {
			entry, err = domain.NewWordEntry(phrase, result.Translation, result.Etymology, result.Synonyms)
		} else {
			entry, err = domain.NewWordEntry(result.Translation, phrase, result.Etymology, result.Synonyms)
		}
	}
	if err != nil {
		return nil, err
	}

	s.Add(entry)
	return entry, nil
}

// Delete removes the first entry with the given ID and persists. Deleting
// an absent ID is a no-op, not an error.
func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, w := range s.words {
		if w.ID == id {
			s.words = append(s.words[:i], s.words[i+1:]...)
			s.persist()
			return
		}
	}
}

// ToggleLearned flips the learned flag of the entry with the given ID.
// No-op if the ID is absent.
func (s *Store) ToggleLearned(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, w := range s.words {
		if w.ID == id {
			w.IsLearned = !w.IsLearned
			s.persist()
			return
		}
	}
}

// MarkLearned sets the learned flag of the entry with the given ID. Unlike
// ToggleLearned it is idempotent, so grading an already-learned word in a
// practice session never unlearns it. No-op if the ID is absent.
func (s *Store) MarkLearned(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, w := range s.words {
		if w.ID == id {
			if !w.IsLearned {
				w.IsLearned = true
				s.persist()
			}
			return
		}
	}
}

// EntriesSince returns all entries created within the last days days, in
// original insertion order. Zero returns only entries created at or after
// the current instant; negative values are treated as zero.
func (s *Store) EntriesSince(days int) []*domain.WordEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if days < 0 {
		days = 0
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	var result []*domain.WordEntry
	for _, w := range s.words {
		if !w.CreatedAt.Before(cutoff) {
			result = append(result, w)
		}
	}
	return result
}

// Words returns all entries in insertion order.
func (s *Store) Words() []*domain.WordEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*domain.WordEntry, len(s.words))
	copy(result, s.words)
	return result
}

// Get returns the entry with the given ID, or false.
func (s *Store) Get(id uuid.UUID) (*domain.WordEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, w := range s.words {
		if w.ID == id {
			return w, true
		}
	}
	return nil, false
}
