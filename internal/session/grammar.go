package session

import (
	"errors"
	"strings"
	"time"

	"github.com/fskogh/lingai/internal/domain"
)

// ErrNoExercises is returned when a grammar session is started without any
// exercises.
var ErrNoExercises = errors.New("grammar session requires at least one exercise")

// pointsPerCorrectAnswer is added to the score for each exact match.
const pointsPerCorrectAnswer = 100

// GrammarSession iterates linearly over a generated list of exercises.
// Unlike PracticeSession there is no wrap-around: advancing past the last
// exercise is the terminal transition into the completed state, and only
// Restart leaves it.
type GrammarSession struct {
	exercises    []*domain.GrammarExercise
	cursor       int
	score        int
	correctCount int
	startedAt    time.Time
	completed    bool
}

// NewGrammarSession starts a session over the given exercises.
// Returns ErrNoExercises for an empty list.
func NewGrammarSession(exercises []*domain.GrammarExercise) (*GrammarSession, error) {
	if len(exercises) == 0 {
		return nil, ErrNoExercises
	}

	return &GrammarSession{
		exercises: exercises,
		startedAt: time.Now().UTC(),
	}, nil
}

// Current returns the exercise under the cursor.
func (s *GrammarSession) Current() *domain.GrammarExercise {
	return s.exercises[s.cursor]
}

// SubmitAnswer grades the given text against the current exercise's correct
// answer, ignoring case and surrounding whitespace. A match adds to the
// score and correct count. The cursor is not moved.
func (s *GrammarSession) SubmitAnswer(text string) bool {
	correct := normalizeAnswer(text) == normalizeAnswer(s.Current().CorrectAnswer)
	if correct {
		s.score += pointsPerCorrectAnswer
		s.correctCount++
	}
	return correct
}

// Next advances the cursor and returns true, unless the cursor is already
// at the last exercise, in which case the session becomes completed and
// Next returns false.
func (s *GrammarSession) Next() bool {
	if s.cursor < len(s.exercises)-1 {
		s.cursor++
		return true
	}
	s.completed = true
	return false
}

// Previous moves the cursor back one exercise, returning false at the first.
func (s *GrammarSession) Previous() bool {
	if s.cursor == 0 {
		return false
	}
	s.cursor--
	return true
}

// ReplaceCurrent swaps the exercise under the cursor for a regenerated one.
// Cursor, score and completion state are untouched.
func (s *GrammarSession) ReplaceCurrent(ex *domain.GrammarExercise) {
	s.exercises[s.cursor] = ex
}

// Restart resets cursor, score and completion while keeping the same
// exercise list.
func (s *GrammarSession) Restart() {
	s.cursor = 0
	s.score = 0
	s.correctCount = 0
	s.startedAt = time.Now().UTC()
	s.completed = false
}

// Completed reports whether the session reached its terminal state.
func (s *GrammarSession) Completed() bool { return s.completed }

// Cursor returns the current position in the exercise list.
func (s *GrammarSession) Cursor() int { return s.cursor }

// Score returns the accumulated score.
func (s *GrammarSession) Score() int { return s.score }

// CorrectCount returns the number of correctly answered exercises.
func (s *GrammarSession) CorrectCount() int { return s.correctCount }

// StartedAt returns when the session was started or last restarted.
func (s *GrammarSession) StartedAt() time.Time { return s.startedAt }

// Size returns the number of exercises in the session.
func (s *GrammarSession) Size() int { return len(s.exercises) }

func normalizeAnswer(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
