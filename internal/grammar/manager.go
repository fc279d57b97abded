// Package grammar coordinates grammar practice: it asks the generation
// collaborator for exercises over the current vocabulary and runs the
// resulting session.
package grammar

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/fskogh/lingai/internal/domain"
	"github.com/fskogh/lingai/internal/generation"
	"github.com/fskogh/lingai/internal/session"
)

// Errors returned by the Manager.
var (
	// ErrNoVocabulary is returned when a session is requested without any
	// vocabulary words to build exercises from.
	ErrNoVocabulary = errors.New("no vocabulary words to generate exercises from")

	// ErrNoUsableExercises is returned when the collaborator responded but
	// none of the returned exercises survived validation.
	ErrNoUsableExercises = errors.New("no usable exercises in response")

	// ErrNoActiveSession is returned by operations that need a session.
	ErrNoActiveSession = errors.New("no active grammar session")
)

// Manager owns the active grammar session and the generation flow that
// produces its exercises. All generation calls are synchronous; callers
// that want them off the UI path run Manager methods in a goroutine. Each
// request carries a token so a slow response that loses the race to a
// newer request is discarded instead of clobbering the newer session.
type Manager struct {
	mu        sync.Mutex
	generator generation.ExerciseGenerator
	logger    *slog.Logger
	sess      *session.GrammarSession
	lastError string
	reqToken  uint64
}

// NewManager creates a Manager that generates exercises through generator.
func NewManager(generator generation.ExerciseGenerator, logger *slog.Logger) *Manager {
	return &Manager{
		generator: generator,
		logger:    logger,
	}
}

// StartSession generates count exercises of the given kind from the
// vocabulary and starts a fresh session over them, replacing any session in
// progress. Invalid exercises in the response are skipped; the session
// starts with whatever survived.
func (m *Manager) StartSession(ctx context.Context, vocabulary []*domain.WordEntry, kind domain.ExerciseKind, count int) error {
	if len(vocabulary) == 0 {
		m.setError("Add some vocabulary words before practicing grammar.")
		return ErrNoVocabulary
	}

	token := m.nextToken()

	generated, err := m.generator.GenerateExercises(ctx, labels(vocabulary), string(kind), count)
	if err != nil {
		m.fail(token, "Could not generate exercises. Please try again.", err)
		return err
	}

	exercises := m.convert(generated)
	if len(exercises) == 0 {
		m.fail(token, "Could not generate exercises. Please try again.", ErrNoUsableExercises)
		return ErrNoUsableExercises
	}

	sess, err := session.NewGrammarSession(exercises)
	if err != nil {
		m.fail(token, "Could not generate exercises. Please try again.", err)
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if token != m.reqToken {
		m.logger.Debug("discarding superseded exercise generation")
		return nil
	}
	m.sess = sess
	m.lastError = ""
	return nil
}

// RegenerateCurrent replaces the exercise under the session cursor with a
// newly generated one of the same kind, keeping cursor and score.
func (m *Manager) RegenerateCurrent(ctx context.Context, vocabulary []*domain.WordEntry) error {
	m.mu.Lock()
	sess := m.sess
	m.mu.Unlock()
	if sess == nil {
		return ErrNoActiveSession
	}
	if len(vocabulary) == 0 {
		m.setError("Add some vocabulary words before practicing grammar.")
		return ErrNoVocabulary
	}

	kind := sess.Current().Kind
	token := m.nextToken()

	generated, err := m.generator.GenerateExercises(ctx, labels(vocabulary), string(kind), 1)
	if err != nil {
		m.fail(token, "Could not regenerate the exercise. Please try again.", err)
		return err
	}

	exercises := m.convert(generated)
	if len(exercises) == 0 {
		m.fail(token, "Could not regenerate the exercise. Please try again.", ErrNoUsableExercises)
		return ErrNoUsableExercises
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if token != m.reqToken || m.sess != sess {
		m.logger.Debug("discarding superseded exercise regeneration")
		return nil
	}
	m.sess.ReplaceCurrent(exercises[0])
	m.lastError = ""
	return nil
}

// convert validates generated exercises into domain values, dropping any
// the constructor rejects.
func (m *Manager) convert(generated []generation.GeneratedExercise) []*domain.GrammarExercise {
	exercises := make([]*domain.GrammarExercise, 0, len(generated))
	for _, g := range generated {
		ex, err := domain.NewGrammarExercise(
			domain.ExerciseKind(g.Kind),
			g.Prompt,
			g.CorrectAnswer,
			g.Options,
			g.Explanation,
			domain.Difficulty(g.Difficulty),
			g.UsedWords,
		)
		if err != nil {
			m.logger.Warn("skipping invalid generated exercise",
				"kind", g.Kind, "error", err)
			continue
		}
		exercises = append(exercises, ex)
	}
	return exercises
}

// Session returns the active session, or nil.
func (m *Manager) Session() *session.GrammarSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sess
}

// EndSession drops the active session.
func (m *Manager) EndSession() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = nil
}

// LastError returns the user-facing message for the most recent failure,
// or "" when there is none or it was dismissed.
func (m *Manager) LastError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastError
}

// DismissError clears the last error message.
func (m *Manager) DismissError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastError = ""
}

func (m *Manager) nextToken() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reqToken++
	return m.reqToken
}

// fail records a user-facing error message unless the request has been
// superseded by a newer one.
func (m *Manager) fail(token uint64, message string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if token != m.reqToken {
		return
	}
	m.lastError = message
	m.logger.Error("exercise generation failed", "error", err)
}

func (m *Manager) setError(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastError = message
}

func labels(vocabulary []*domain.WordEntry) []string {
	words := make([]string, 0, len(vocabulary))
	for _, w := range vocabulary {
		words = append(words, w.Label())
	}
	return words
}
