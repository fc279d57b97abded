package session

import (
	"fmt"
	"testing"

	"github.com/fskogh/lingai/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeExercises(t *testing.T, n int) []*domain.GrammarExercise {
	t.Helper()
	exercises := make([]*domain.GrammarExercise, n)
	for i := range exercises {
		ex, err := domain.NewGrammarExercise(
			domain.ExerciseFillBlank,
			fmt.Sprintf("Ich gehe in ___ Park (%d)", i),
			"den",
			[]string{"der", "die", "das", "den"},
			"Akkusativ after movement into a place.",
			domain.DifficultyBeginner,
			nil,
		)
		require.NoError(t, err)
		exercises[i] = ex
	}
	return exercises
}

func TestNewGrammarSessionRequiresExercises(t *testing.T) {
	t.Parallel()

	_, err := NewGrammarSession(nil)
	assert.ErrorIs(t, err, ErrNoExercises)

	s, err := NewGrammarSession(makeExercises(t, 1))
	require.NoError(t, err)
	assert.Equal(t, 0, s.Cursor())
	assert.False(t, s.Completed())
	assert.False(t, s.StartedAt().IsZero())
}

func TestSubmitAnswerNormalization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		answer string
		want   bool
	}{
		{answer: "den", want: true},
		{answer: "Den", want: true},
		{answer: "den ", want: true},
		{answer: "  DEN\n", want: true},
		{answer: "dem", want: false},
		{answer: "", want: false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.answer), func(t *testing.T) {
			t.Parallel()
			s, err := NewGrammarSession(makeExercises(t, 1))
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.SubmitAnswer(tt.answer))
		})
	}
}

func TestSubmitAnswerScoring(t *testing.T) {
	t.Parallel()

	s, err := NewGrammarSession(makeExercises(t, 3))
	require.NoError(t, err)

	assert.True(t, s.SubmitAnswer("den"))
	assert.Equal(t, 100, s.Score())
	assert.Equal(t, 1, s.CorrectCount())
	assert.Equal(t, 0, s.Cursor(), "submit must not move the cursor")

	assert.False(t, s.SubmitAnswer("das"))
	assert.Equal(t, 100, s.Score())
	assert.Equal(t, 1, s.CorrectCount())
}

func TestNextCompletesOnFinalCall(t *testing.T) {
	t.Parallel()

	exercises := makeExercises(t, 4)
	s, err := NewGrammarSession(exercises)
	require.NoError(t, err)

	for i := 0; i < len(exercises)-1; i++ {
		assert.True(t, s.Next(), "call %d should advance", i)
		assert.False(t, s.Completed())
	}

	// The final call is the only one that returns false, and it is the
	// transition into the completed state.
	assert.False(t, s.Next())
	assert.True(t, s.Completed())
	assert.Equal(t, len(exercises)-1, s.Cursor())
}

func TestPrevious(t *testing.T) {
	t.Parallel()

	s, err := NewGrammarSession(makeExercises(t, 3))
	require.NoError(t, err)

	assert.False(t, s.Previous())

	s.Next()
	assert.True(t, s.Previous())
	assert.Equal(t, 0, s.Cursor())
}

func TestReplaceCurrent(t *testing.T) {
	t.Parallel()

	s, err := NewGrammarSession(makeExercises(t, 2))
	require.NoError(t, err)

	s.SubmitAnswer("den")
	scoreBefore := s.Score()

	replacement, err := domain.NewGrammarExercise(
		domain.ExerciseVerbConjugation,
		"Conjugate 'haben' for 'du': du ___",
		"hast",
		[]string{"hast", "habt", "haben", "habe"},
		"Second person singular of 'haben'.",
		domain.DifficultyBeginner,
		nil,
	)
	require.NoError(t, err)

	s.ReplaceCurrent(replacement)

	assert.Same(t, replacement, s.Current())
	assert.Equal(t, 0, s.Cursor())
	assert.Equal(t, scoreBefore, s.Score())
	assert.False(t, s.Completed())
}

func TestRestartKeepsExercises(t *testing.T) {
	t.Parallel()

	exercises := makeExercises(t, 2)
	s, err := NewGrammarSession(exercises)
	require.NoError(t, err)

	s.SubmitAnswer("den")
	s.Next()
	s.Next() // completes

	require.True(t, s.Completed())

	s.Restart()

	assert.Equal(t, 0, s.Cursor())
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, 0, s.CorrectCount())
	assert.False(t, s.Completed())
	assert.Equal(t, len(exercises), s.Size())
	assert.Same(t, exercises[0], s.Current())
}
