// Package main is the entry point for the lingai core: a German/English
// vocabulary learning engine with LLM-backed translation, grammar practice,
// and reading passages with synthesized audio.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fskogh/lingai/internal/audio"
	"github.com/fskogh/lingai/internal/config"
	"github.com/fskogh/lingai/internal/generation"
	"github.com/fskogh/lingai/internal/generation/extract"
	"github.com/fskogh/lingai/internal/grammar"
	"github.com/fskogh/lingai/internal/platform/gemini"
	"github.com/fskogh/lingai/internal/platform/logger"
	"github.com/fskogh/lingai/internal/platform/mistral"
	"github.com/fskogh/lingai/internal/platform/speech"
	"github.com/fskogh/lingai/internal/platform/sqlitekv"
	"github.com/fskogh/lingai/internal/reading"
	"github.com/fskogh/lingai/internal/store"
	"github.com/fskogh/lingai/internal/task"
	"github.com/fskogh/lingai/internal/vocab"
)

func main() {
	app, err := initializeApp(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.Close()

	slog.Info("lingai core ready",
		"backend", app.backend,
		"vocabulary_words", len(app.Vocabulary.Words()),
		"passages", len(app.Reading.Passages()))

	// Run until interrupted; background synthesis keeps working meanwhile.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	slog.Info("shutting down")
}

// App bundles the initialized services. A frontend embeds this and calls
// into the managers directly.
type App struct {
	Config     *config.Config
	Vocabulary *vocab.Store
	Grammar    *grammar.Manager
	Reading    *reading.Manager
	Audio      *audio.Manager

	backend string
	runner  *task.Runner
	kv      store.KV
}

// initializeApp loads configuration and wires every component together.
//
// The LLM backend is chosen by configuration: when a Gemini API key is set
// the strict structured-output Gemini client serves translation, exercise
// and passage generation; otherwise the Mistral chat-completions client
// with lenient JSON extraction is used.
func initializeApp(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.App)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	var (
		translator generation.Translator
		exercises  generation.ExerciseGenerator
		passages   generation.PassageGenerator
		backend    string
	)
	if cfg.LLM.GeminiAPIKey != "" {
		client, err := gemini.NewClient(ctx, appLogger, cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		translator, exercises, passages = client, client, client
		backend = "gemini"
	} else {
		client, err := mistral.NewClient(appLogger, cfg.LLM, extract.Brace{})
		if err != nil {
			return nil, fmt.Errorf("failed to create mistral client: %w", err)
		}
		translator, exercises, passages = client, client, client
		backend = "mistral"
	}

	synthesizer, err := speech.NewClient(appLogger, cfg.Speech)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech client: %w", err)
	}

	var kv store.KV
	if sqliteKV, err := sqlitekv.Open(cfg.Storage.Path); err != nil {
		appLogger.Warn("failed to open database, data will not survive restarts",
			"path", cfg.Storage.Path, "error", err)
		kv = store.NewMemKV()
	} else {
		kv = sqliteKV
	}

	runner := task.NewRunner(task.DefaultRunnerConfig(), appLogger)

	// Real frontends supply a platform audio backend; the bare core plays
	// silently so playback state can still be exercised.
	player := audio.NewManager(silentPlayerFactory, appLogger)

	vocabStore := vocab.NewStore(kv, translator, appLogger)
	grammarManager := grammar.NewManager(exercises, appLogger)
	readingManager := reading.NewManager(passages, synthesizer, runner, player,
		kv, cfg.Storage.AudioDir, appLogger)

	return &App{
		Config:     cfg,
		Vocabulary: vocabStore,
		Grammar:    grammarManager,
		Reading:    readingManager,
		Audio:      player,
		backend:    backend,
		runner:     runner,
		kv:         kv,
	}, nil
}

// Close stops background work and releases resources.
func (a *App) Close() {
	a.runner.Stop()
	a.Audio.Stop()
	if err := a.kv.Close(); err != nil {
		slog.Warn("failed to close database", "error", err)
	}
}

// silentPlayer satisfies the audio player contract without producing sound.
type silentPlayer struct{}

func silentPlayerFactory(string) (audio.Player, error) {
	return silentPlayer{}, nil
}

func (silentPlayer) Play() error  { return nil }
func (silentPlayer) Pause()       {}
func (silentPlayer) SeekToStart() {}
func (silentPlayer) Release()     {}
