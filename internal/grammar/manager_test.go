package grammar

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/fskogh/lingai/internal/domain"
	"github.com/fskogh/lingai/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	exercises []generation.GeneratedExercise
	err       error

	gotWords []string
	gotKind  string
	gotCount int
	calls    int
}

func (g *stubGenerator) GenerateExercises(_ context.Context, words []string, kind string, count int) ([]generation.GeneratedExercise, error) {
	g.calls++
	g.gotWords = words
	g.gotKind = kind
	g.gotCount = count
	return g.exercises, g.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testVocabulary(t *testing.T) []*domain.WordEntry {
	t.Helper()
	haus, err := domain.NewWordEntry("Haus", "house", "", "")
	require.NoError(t, err)
	tree, err := domain.NewWordEntry("", "tree", "", "")
	require.NoError(t, err)
	return []*domain.WordEntry{haus, tree}
}

func validExercise(prompt string) generation.GeneratedExercise {
	return generation.GeneratedExercise{
		Kind:          "fill_blank",
		Prompt:        prompt,
		CorrectAnswer: "den",
		Options:       []string{"der", "den", "dem"},
		Explanation:   "Accusative masculine article.",
		Difficulty:    "beginner",
		UsedWords:     []string{"Haus"},
	}
}

func TestManagerStartSession(t *testing.T) {
	gen := &stubGenerator{exercises: []generation.GeneratedExercise{
		validExercise("Ich sehe ___ Baum."),
		validExercise("Er kauft ___ Apfel."),
	}}
	m := NewManager(gen, testLogger())

	err := m.StartSession(context.Background(), testVocabulary(t), domain.ExerciseFillBlank, 2)
	require.NoError(t, err)

	sess := m.Session()
	require.NotNil(t, sess)
	assert.Equal(t, 2, sess.Size())
	assert.Equal(t, "Ich sehe ___ Baum.", sess.Current().Prompt)
	assert.Empty(t, m.LastError())

	assert.Equal(t, []string{"Haus (house)", "tree"}, gen.gotWords)
	assert.Equal(t, "fill_blank", gen.gotKind)
	assert.Equal(t, 2, gen.gotCount)
}

func TestManagerStartSessionRequiresVocabulary(t *testing.T) {
	gen := &stubGenerator{}
	m := NewManager(gen, testLogger())

	err := m.StartSession(context.Background(), nil, domain.ExerciseFillBlank, 5)
	assert.ErrorIs(t, err, ErrNoVocabulary)
	assert.Zero(t, gen.calls, "no generation call without vocabulary")
	assert.NotEmpty(t, m.LastError())
}

func TestManagerStartSessionSkipsInvalidExercises(t *testing.T) {
	gen := &stubGenerator{exercises: []generation.GeneratedExercise{
		validExercise("Ich sehe ___ Baum."),
		{Kind: "fill_blank", Prompt: "", CorrectAnswer: "den", Difficulty: "beginner"},
		{Kind: "bogus", Prompt: "x", CorrectAnswer: "y", Difficulty: "beginner"},
	}}
	m := NewManager(gen, testLogger())

	err := m.StartSession(context.Background(), testVocabulary(t), domain.ExerciseFillBlank, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Session().Size())
}

func TestManagerStartSessionAllInvalid(t *testing.T) {
	gen := &stubGenerator{exercises: []generation.GeneratedExercise{
		{Kind: "bogus", Prompt: "x", CorrectAnswer: "y", Difficulty: "beginner"},
	}}
	m := NewManager(gen, testLogger())

	err := m.StartSession(context.Background(), testVocabulary(t), domain.ExerciseFillBlank, 1)
	assert.ErrorIs(t, err, ErrNoUsableExercises)
	assert.Nil(t, m.Session())
	assert.NotEmpty(t, m.LastError())
}

func TestManagerStartSessionGeneratorError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("upstream down")}
	m := NewManager(gen, testLogger())

	err := m.StartSession(context.Background(), testVocabulary(t), domain.ExerciseFillBlank, 1)
	require.Error(t, err)
	assert.Nil(t, m.Session())
	assert.NotEmpty(t, m.LastError())

	m.DismissError()
	assert.Empty(t, m.LastError())
}

func TestManagerRegenerateCurrent(t *testing.T) {
	gen := &stubGenerator{exercises: []generation.GeneratedExercise{
		validExercise("Ich sehe ___ Baum."),
		validExercise("Er kauft ___ Apfel."),
	}}
	m := NewManager(gen, testLogger())
	require.NoError(t, m.StartSession(context.Background(), testVocabulary(t), domain.ExerciseFillBlank, 2))

	sess := m.Session()
	sess.SubmitAnswer("den")
	require.True(t, sess.Next())

	gen.exercises = []generation.GeneratedExercise{validExercise("Sie trinkt ___ Kaffee.")}
	require.NoError(t, m.RegenerateCurrent(context.Background(), testVocabulary(t)))

	assert.Equal(t, 1, gen.gotCount, "regeneration requests a single exercise")
	assert.Equal(t, "fill_blank", gen.gotKind)
	assert.Equal(t, "Sie trinkt ___ Kaffee.", sess.Current().Prompt)
	assert.Equal(t, 1, sess.Cursor(), "cursor is preserved")
	assert.Equal(t, 100, sess.Score(), "score is preserved")
}

func TestManagerRegenerateCurrentWithoutSession(t *testing.T) {
	m := NewManager(&stubGenerator{}, testLogger())
	err := m.RegenerateCurrent(context.Background(), testVocabulary(t))
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestManagerEndSession(t *testing.T) {
	gen := &stubGenerator{exercises: []generation.GeneratedExercise{validExercise("x ___ y")}}
	m := NewManager(gen, testLogger())
	require.NoError(t, m.StartSession(context.Background(), testVocabulary(t), domain.ExerciseFillBlank, 1))

	m.EndSession()
	assert.Nil(t, m.Session())
}
