package session

import (
	"math/rand"

	"github.com/fskogh/lingai/internal/domain"
	"github.com/google/uuid"
)

// LearnedMarker is the narrow slice of the vocabulary store a practice
// session needs: marking an entry as learned after a correct answer.
type LearnedMarker interface {
	MarkLearned(id uuid.UUID)
}

// PracticeSession iterates over a shuffled subset of vocabulary entries
// drawn from a recency window. It is single-threaded by contract; all
// mutation happens on the caller's control thread.
//
// Advancing past the last card does not terminate the session: the pool is
// reshuffled and the cursor wraps to zero, so practice continues until the
// caller discards the session.
type PracticeSession struct {
	marker LearnedMarker

	source []*domain.WordEntry
	pool   []*domain.WordEntry

	cursor         int
	correctCount   int
	totalAnswered  int
	answerRevealed bool
}

// NewPracticeSession creates a session that reports correct answers to the
// given marker. The session starts empty; call Start with a candidate pool.
func NewPracticeSession(marker LearnedMarker) *PracticeSession {
	return &PracticeSession{marker: marker}
}

// Start takes a candidate pool (typically the result of EntriesSince),
// produces a uniformly shuffled copy, and resets the cursor, counters and
// answer visibility. The input slice is not modified.
func (s *PracticeSession) Start(pool []*domain.WordEntry) {
	s.source = pool
	s.pool = make([]*domain.WordEntry, len(pool))
	copy(s.pool, pool)
	rand.Shuffle(len(s.pool), func(i, j int) {
		s.pool[i], s.pool[j] = s.pool[j], s.pool[i]
	})

	s.cursor = 0
	s.correctCount = 0
	s.totalAnswered = 0
	s.answerRevealed = false
}

// Current returns the entry under the cursor, or false if the pool is empty.
func (s *PracticeSession) Current() (*domain.WordEntry, bool) {
	if len(s.pool) == 0 {
		return nil, false
	}
	return s.pool[s.cursor], true
}

// Reveal shows the answer side of the current card. No-op on an empty pool
// or if already revealed.
func (s *PracticeSession) Reveal() {
	if len(s.pool) == 0 {
		return
	}
	s.answerRevealed = true
}

// AnswerRevealed reports whether the answer side of the current card is
// visible. It resets on every cursor change.
func (s *PracticeSession) AnswerRevealed() bool {
	return s.answerRevealed
}

// Grade records the outcome for the entry at the current cursor. A correct
// answer marks that entry as learned in the vocabulary store. Grading never
// moves the cursor; callers advance separately, after grading.
func (s *PracticeSession) Grade(correct bool) {
	if len(s.pool) == 0 {
		return
	}

	s.totalAnswered++
	if correct {
		s.correctCount++
		if s.marker != nil {
			s.marker.MarkLearned(s.pool[s.cursor].ID)
		}
	}
}

// Advance moves to the next card. At the last card it restarts the session
// with a fresh shuffle of the same source pool instead of terminating.
func (s *PracticeSession) Advance() {
	if len(s.pool) == 0 {
		return
	}

	if s.cursor < len(s.pool)-1 {
		s.cursor++
		s.answerRevealed = false
		return
	}

	s.Start(s.source)
}

// Retreat moves back one card, hiding the answer again. No-op at the first
// card.
func (s *PracticeSession) Retreat() {
	if len(s.pool) == 0 || s.cursor == 0 {
		return
	}
	s.cursor--
	s.answerRevealed = false
}

// Cursor returns the current position in the pool.
func (s *PracticeSession) Cursor() int { return s.cursor }

// Size returns the number of cards in the pool.
func (s *PracticeSession) Size() int { return len(s.pool) }

// CorrectCount returns how many answers were graded correct this run.
func (s *PracticeSession) CorrectCount() int { return s.correctCount }

// TotalAnswered returns how many answers were graded this run.
func (s *PracticeSession) TotalAnswered() int { return s.totalAnswered }

// Pool returns the shuffled pool in its current order.
func (s *PracticeSession) Pool() []*domain.WordEntry { return s.pool }
