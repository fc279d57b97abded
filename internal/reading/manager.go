// Package reading coordinates the reading and listening flow: generating
// passages from the current vocabulary, persisting them with their quiz
// results, synthesizing audio in the background, and driving playback.
package reading

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"sync"

	"github.com/fskogh/lingai/internal/audio"
	"github.com/fskogh/lingai/internal/domain"
	"github.com/fskogh/lingai/internal/generation"
	"github.com/fskogh/lingai/internal/store"
	"github.com/fskogh/lingai/internal/task"
	"github.com/google/uuid"
)

// ErrNoUsableQuestions is returned when a generated passage carried no
// questions that survived validation.
var ErrNoUsableQuestions = errors.New("no usable comprehension questions in response")

// TaskQueue is the slice of the task runner the manager uses: submitting
// synthesis work and cancelling it by passage ID.
type TaskQueue interface {
	Submit(t task.Task) error
	Cancel(id uuid.UUID)
}

// Manager owns the passage library and its quiz history. The in-memory
// collections are authoritative; every mutation re-serializes the affected
// collection to the key-value store, and persistence failures are logged
// rather than surfaced. AttachAudio is called from the task runner's worker
// goroutine, so all state is guarded by a mutex.
type Manager struct {
	mu        sync.Mutex
	passages  []*domain.ReadingPassage
	sessions  []*domain.ReadingSession
	generator generation.PassageGenerator
	synth     generation.SpeechSynthesizer
	queue     TaskQueue
	player    *audio.Manager
	kv        store.KV
	audioDir  string
	logger    *slog.Logger
	lastError string
	reqToken  uint64
}

// NewManager creates a Manager and loads previously persisted passages and
// sessions. Corrupt or missing values start empty collections.
func NewManager(
	generator generation.PassageGenerator,
	synth generation.SpeechSynthesizer,
	queue TaskQueue,
	player *audio.Manager,
	kv store.KV,
	audioDir string,
	logger *slog.Logger,
) *Manager {
	m := &Manager{
		generator: generator,
		synth:     synth,
		queue:     queue,
		player:    player,
		kv:        kv,
		audioDir:  audioDir,
		logger:    logger,
	}
	m.load()
	return m
}

func (m *Manager) load() {
	loadCollection(m.kv, store.KeyPassages, &m.passages, m.logger)
	loadCollection(m.kv, store.KeyReadingSessions, &m.sessions, m.logger)
}

func loadCollection[T any](kv store.KV, key string, dst *[]T, logger *slog.Logger) {
	data, err := kv.Get(context.Background(), key)
	if err != nil {
		if !errors.Is(err, store.ErrKeyNotFound) {
			logger.Warn("failed to load collection, starting empty", "key", key, "error", err)
		}
		return
	}
	if err := json.Unmarshal(data, dst); err != nil {
		logger.Warn("failed to decode collection, starting empty", "key", key, "error", err)
	}
}

// persistPassages and persistSessions write the whole collection. Failures
// are logged only. Caller holds mu.
func (m *Manager) persistPassages() {
	m.persistCollection(store.KeyPassages, m.passages)
}

func (m *Manager) persistSessions() {
	m.persistCollection(store.KeyReadingSessions, m.sessions)
}

func (m *Manager) persistCollection(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		m.logger.Error("failed to encode collection", "key", key, "error", err)
		return
	}
	if err := m.kv.Set(context.Background(), key, data); err != nil {
		m.logger.Error("failed to persist collection", "key", key, "error", err)
	}
}

// GeneratePassage asks the collaborator for a passage built around the
// given vocabulary and stores it. Speech synthesis for the passage body is
// submitted to the task queue fire and forget; the passage is usable
// immediately and gains its audio reference when synthesis completes.
//
// An empty vocabulary fails fast without any collaborator call.
func (m *Manager) GeneratePassage(ctx context.Context, vocabulary []*domain.WordEntry, customInstructions string) (*domain.ReadingPassage, error) {
	if len(vocabulary) == 0 {
		m.setError("Add some vocabulary words before generating a passage.")
		return nil, generation.ErrEmptyVocabulary
	}

	token := m.nextToken()

	words := make([]string, 0, len(vocabulary))
	for _, w := range vocabulary {
		words = append(words, w.Label())
	}

	generated, err := m.generator.GeneratePassage(ctx, words, customInstructions)
	if err != nil {
		m.fail(token, "Could not generate a passage. Please try again.", err)
		return nil, err
	}

	passage, err := m.buildPassage(generated, words)
	if err != nil {
		m.fail(token, "Could not generate a passage. Please try again.", err)
		return nil, err
	}

	m.mu.Lock()
	m.passages = append(m.passages, passage)
	m.persistPassages()
	m.lastError = ""
	m.mu.Unlock()

	m.submitSynthesis(passage)
	return passage, nil
}

// buildPassage validates a generated passage into a domain value. Invalid
// questions are dropped; a passage whose questions all fail validation is
// rejected since the quiz is the point of the flow.
func (m *Manager) buildPassage(g *generation.GeneratedPassage, words []string) (*domain.ReadingPassage, error) {
	questions := make([]domain.ComprehensionQuestion, 0, len(g.Questions))
	for _, q := range g.Questions {
		question := domain.ComprehensionQuestion{
			Prompt:             q.Prompt,
			Options:            q.Options,
			CorrectOptionIndex: q.CorrectOptionIndex,
		}
		if err := question.Validate(); err != nil {
			m.logger.Warn("skipping invalid comprehension question", "error", err)
			continue
		}
		questions = append(questions, question)
	}
	if len(questions) == 0 {
		return nil, ErrNoUsableQuestions
	}

	return domain.NewReadingPassage(g.Title, g.Body, questions, words)
}

func (m *Manager) submitSynthesis(passage *domain.ReadingPassage) {
	t, err := task.NewSpeechSynthesisTask(passage.ID, passage.Body, m.synth, m.audioDir, m, m.logger)
	if err != nil {
		m.logger.Error("failed to create synthesis task", "passage_id", passage.ID, "error", err)
		return
	}
	if err := m.queue.Submit(t); err != nil {
		m.logger.Error("failed to submit synthesis task", "passage_id", passage.ID, "error", err)
	}
}

// AttachAudio records the synthesized asset reference on the passage. It is
// called from the task runner once synthesis finishes. A passage deleted in
// the meantime is ignored.
func (m *Manager) AttachAudio(_ context.Context, passageID uuid.UUID, assetRef string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.passages {
		if p.ID == passageID {
			p.AudioAssetRef = assetRef
			m.persistPassages()
			return
		}
	}
	m.logger.Debug("audio attached to a deleted passage, ignoring", "passage_id", passageID)
}

// DeletePassage removes the passage, cancels any pending synthesis for it,
// stops playback if its audio is active, and deletes the audio file.
// Deleting an absent ID is a no-op. Past quiz sessions for the passage are
// kept for the history view.
func (m *Manager) DeletePassage(id uuid.UUID) {
	m.queue.Cancel(id)
	if m.player != nil && m.player.ActiveID() == id {
		m.player.Stop()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, p := range m.passages {
		if p.ID == id {
			if p.AudioAssetRef != "" {
				if err := os.Remove(p.AudioAssetRef); err != nil && !os.IsNotExist(err) {
					m.logger.Warn("failed to delete audio file", "path", p.AudioAssetRef, "error", err)
				}
			}
			m.passages = append(m.passages[:i], m.passages[i+1:]...)
			m.persistPassages()
			return
		}
	}
}

// CompleteSession records a finished comprehension quiz for the passage and
// returns the scored session. Completing against a deleted passage is a
// no-op returning nil.
func (m *Manager) CompleteSession(passageID uuid.UUID, chosenAnswers []int) (*domain.ReadingSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	passage := m.findLocked(passageID)
	if passage == nil {
		return nil, nil
	}

	session, err := domain.NewReadingSession(passage, chosenAnswers)
	if err != nil {
		return nil, err
	}

	m.sessions = append(m.sessions, session)
	m.persistSessions()
	return session, nil
}

// PlayAudio starts or resumes playback of the passage's audio. A passage
// without a synthesized asset yet is a logged no-op.
func (m *Manager) PlayAudio(passageID uuid.UUID) {
	m.mu.Lock()
	passage := m.findLocked(passageID)
	m.mu.Unlock()

	if passage == nil || passage.AudioAssetRef == "" {
		m.logger.Warn("no audio available for passage", "passage_id", passageID)
		return
	}
	m.player.Play(passageID, passage.AudioAssetRef)
}

// PauseAudio pauses playback.
func (m *Manager) PauseAudio() { m.player.Pause() }

// StopAudio stops playback and releases the asset.
func (m *Manager) StopAudio() { m.player.Stop() }

// RestartAudio plays the passage's audio from the beginning, loading the
// asset fresh if it is not the active one. A passage without a synthesized
// asset yet is a logged no-op.
func (m *Manager) RestartAudio(passageID uuid.UUID) {
	m.mu.Lock()
	passage := m.findLocked(passageID)
	m.mu.Unlock()

	if passage == nil || passage.AudioAssetRef == "" {
		m.logger.Warn("no audio available for passage", "passage_id", passageID)
		return
	}
	m.player.Restart(passageID, passage.AudioAssetRef)
}

// AudioState returns the current playback state.
func (m *Manager) AudioState() audio.State { return m.player.State() }

// Passages returns all stored passages in creation order.
func (m *Manager) Passages() []*domain.ReadingPassage {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]*domain.ReadingPassage, len(m.passages))
	copy(result, m.passages)
	return result
}

// Passage returns the passage with the given ID, or false.
func (m *Manager) Passage(id uuid.UUID) (*domain.ReadingPassage, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := m.findLocked(id)
	return p, p != nil
}

// Sessions returns all recorded quiz sessions in completion order.
func (m *Manager) Sessions() []*domain.ReadingSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]*domain.ReadingSession, len(m.sessions))
	copy(result, m.sessions)
	return result
}

// SessionsForPassage returns the quiz history of one passage.
func (m *Manager) SessionsForPassage(passageID uuid.UUID) []*domain.ReadingSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []*domain.ReadingSession
	for _, s := range m.sessions {
		if s.PassageID == passageID {
			result = append(result, s)
		}
	}
	return result
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

func (m *Manager) findLocked(id uuid.UUID) *domain.ReadingPassage {
	for _, p := range m.passages {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (m *Manager) nextToken() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reqToken++
	return m.reqToken
}

func (m *Manager) fail(token uint64, message string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if token != m.reqToken {
		return
	}
	m.lastError = message
	m.logger.Error("passage generation failed", "error", err)
}

func (m *Manager) setError(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastError = message
}
