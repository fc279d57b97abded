package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fskogh/lingai/internal/generation"
	"github.com/google/uuid"
)

// KindSpeechSynthesis identifies passage audio synthesis tasks.
const KindSpeechSynthesis = "speech_synthesis"

// Dependency validation errors
var (
	ErrNilSynthesizer = errors.New("synthesizer cannot be nil")
	ErrNilAttacher    = errors.New("audio attacher cannot be nil")
	ErrNilLogger      = errors.New("logger cannot be nil")
	ErrEmptyPassageID = errors.New("passage ID cannot be empty")
	ErrEmptyText      = errors.New("passage text cannot be empty")
)

// AudioAttacher is the narrow slice of the reading manager a synthesis task
// needs: attaching the finished asset reference to its passage. The attacher
// must look the passage up by ID at call time; indices may have shifted
// since the task was submitted.
type AudioAttacher interface {
	AttachAudio(ctx context.Context, passageID uuid.UUID, assetRef string)
}

// SpeechSynthesisTask converts a passage body to speech, writes the audio
// next to the database, and attaches the file reference to the passage.
// Its task ID is the passage ID: there is at most one synthesis per passage,
// and deleting the passage cancels it by the same key.
type SpeechSynthesisTask struct {
	passageID   uuid.UUID
	text        string
	synthesizer generation.SpeechSynthesizer
	audioDir    string
	attacher    AudioAttacher
	logger      *slog.Logger
}

// NewSpeechSynthesisTask creates a synthesis task for one passage.
func NewSpeechSynthesisTask(
	passageID uuid.UUID,
	text string,
	synthesizer generation.SpeechSynthesizer,
	audioDir string,
	attacher AudioAttacher,
	logger *slog.Logger,
) (*SpeechSynthesisTask, error) {
	if synthesizer == nil {
		return nil, ErrNilSynthesizer
	}
	if attacher == nil {
		return nil, ErrNilAttacher
	}
	if logger == nil {
		return nil, ErrNilLogger
	}
	if passageID == uuid.Nil {
		return nil, ErrEmptyPassageID
	}
	if text == "" {
		return nil, ErrEmptyText
	}

	return &SpeechSynthesisTask{
		passageID:   passageID,
		text:        text,
		synthesizer: synthesizer,
		audioDir:    audioDir,
		attacher:    attacher,
		logger:      logger.With("task_kind", KindSpeechSynthesis, "passage_id", passageID),
	}, nil
}

// ID returns the passage ID the task serves.
func (t *SpeechSynthesisTask) ID() uuid.UUID {
	return t.passageID
}

// Kind returns the task type identifier.
func (t *SpeechSynthesisTask) Kind() string {
	return KindSpeechSynthesis
}

// Execute synthesizes the audio and attaches the resulting file to the
// passage. Failures are returned for the runner to log; they never affect
// the passage itself.
func (t *SpeechSynthesisTask) Execute(ctx context.Context) error {
	audio, err := t.synthesizer.Synthesize(ctx, t.text)
	if err != nil {
		return fmt.Errorf("synthesis failed: %w", err)
	}

	if err := os.MkdirAll(t.audioDir, 0o755); err != nil {
		return fmt.Errorf("failed to create audio directory: %w", err)
	}

	path := filepath.Join(t.audioDir, t.passageID.String()+".mp3")
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}

	t.attacher.AttachAudio(ctx, t.passageID, path)

	t.logger.Info("passage audio attached", "path", path, "bytes", len(audio))
	return nil
}
