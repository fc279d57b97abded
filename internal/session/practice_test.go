package session

import (
	"testing"

	"github.com/fskogh/lingai/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingMarker records MarkLearned calls for assertions.
type recordingMarker struct {
	marked []uuid.UUID
}

func (m *recordingMarker) MarkLearned(id uuid.UUID) {
	m.marked = append(m.marked, id)
}

func makePool(t *testing.T, n int) []*domain.WordEntry {
	t.Helper()
	pool := make([]*domain.WordEntry, n)
	for i := range pool {
		entry, err := domain.NewWordEntry("Wort", "word", "", "")
		require.NoError(t, err)
		pool[i] = entry
	}
	return pool
}

func TestPracticeSessionStart(t *testing.T) {
	t.Parallel()

	pool := makePool(t, 5)
	s := NewPracticeSession(nil)
	s.Start(pool)

	assert.Equal(t, 0, s.Cursor())
	assert.Equal(t, 5, s.Size())
	assert.Equal(t, 0, s.TotalAnswered())
	assert.False(t, s.AnswerRevealed())

	// Same multiset as the input, regardless of order.
	assert.ElementsMatch(t, pool, s.Pool())
}

func TestPracticeSessionGradeMarksLearned(t *testing.T) {
	t.Parallel()

	pool := makePool(t, 3)
	marker := &recordingMarker{}
	s := NewPracticeSession(marker)
	s.Start(pool)

	current, ok := s.Current()
	require.True(t, ok)

	s.Grade(true)
	require.Len(t, marker.marked, 1)
	assert.Equal(t, current.ID, marker.marked[0])
	assert.Equal(t, 1, s.CorrectCount())
	assert.Equal(t, 1, s.TotalAnswered())

	s.Advance()
	s.Grade(false)
	assert.Len(t, marker.marked, 1, "incorrect answers must not mark entries learned")
	assert.Equal(t, 1, s.CorrectCount())
	assert.Equal(t, 2, s.TotalAnswered())
}

func TestPracticeSessionGradeUsesCursorBeforeAdvance(t *testing.T) {
	t.Parallel()

	pool := makePool(t, 2)
	marker := &recordingMarker{}
	s := NewPracticeSession(marker)
	s.Start(pool)

	first, _ := s.Current()
	s.Grade(true)
	s.Advance()
	second, _ := s.Current()
	s.Grade(true)

	require.Len(t, marker.marked, 2)
	assert.Equal(t, first.ID, marker.marked[0])
	assert.Equal(t, second.ID, marker.marked[1])
}

func TestPracticeSessionAdvanceWrapsWithReshuffle(t *testing.T) {
	t.Parallel()

	pool := makePool(t, 4)
	s := NewPracticeSession(nil)
	s.Start(pool)

	for i := 0; i < len(pool); i++ {
		s.Advance()
	}

	assert.Equal(t, 0, s.Cursor())
	assert.Equal(t, 0, s.TotalAnswered())
	assert.False(t, s.AnswerRevealed())
	assert.ElementsMatch(t, pool, s.Pool())
}

func TestPracticeSessionRevealResetsOnCursorChange(t *testing.T) {
	t.Parallel()

	s := NewPracticeSession(nil)
	s.Start(makePool(t, 3))

	s.Reveal()
	assert.True(t, s.AnswerRevealed())

	s.Advance()
	assert.False(t, s.AnswerRevealed())

	s.Reveal()
	s.Retreat()
	assert.False(t, s.AnswerRevealed())
}

func TestPracticeSessionRetreatAtStart(t *testing.T) {
	t.Parallel()

	s := NewPracticeSession(nil)
	s.Start(makePool(t, 3))

	s.Retreat()
	assert.Equal(t, 0, s.Cursor())

	s.Advance()
	s.Retreat()
	assert.Equal(t, 0, s.Cursor())
}

func TestPracticeSessionEmptyPool(t *testing.T) {
	t.Parallel()

	marker := &recordingMarker{}
	s := NewPracticeSession(marker)
	s.Start(nil)

	_, ok := s.Current()
	assert.False(t, ok)

	// All operations are no-ops on an empty pool.
	s.Reveal()
	s.Grade(true)
	s.Advance()
	s.Retreat()

	assert.False(t, s.AnswerRevealed())
	assert.Equal(t, 0, s.TotalAnswered())
	assert.Empty(t, marker.marked)
}
