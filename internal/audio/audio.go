// Package audio manages playback of synthesized passage audio. It tracks
// which passage is active and in what state, and delegates the actual sound
// output to a Player supplied by the platform layer.
package audio

import (
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"
)

// Player is a loaded, playable audio asset. Implementations wrap whatever
// system audio facility is available; tests substitute a fake.
type Player interface {
	// Play starts or resumes playback from the current position.
	Play() error
	// Pause halts playback, keeping the current position.
	Pause()
	// SeekToStart rewinds to position zero without changing play state.
	SeekToStart()
	// Release frees the underlying resources. The Player must not be used
	// after Release.
	Release()
}

// PlayerFactory creates a Player for the audio file at path.
type PlayerFactory func(path string) (Player, error)

// State is the playback state of the manager.
type State int

const (
	// Idle means no asset is loaded.
	Idle State = iota
	// Playing means the active asset is audible.
	Playing
	// Paused means the active asset is loaded and halted mid-stream.
	Paused
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "idle"
	}
}

// Manager coordinates playback so that at most one asset is active at a
// time. Switching passages releases the previous player before loading the
// next one.
type Manager struct {
	mu          sync.Mutex
	newPlayer   PlayerFactory
	logger      *slog.Logger
	state       State
	activeID    uuid.UUID
	player      Player
	everStarted bool
}

// NewManager creates a Manager that loads assets through newPlayer.
func NewManager(newPlayer PlayerFactory, logger *slog.Logger) *Manager {
	return &Manager{
		newPlayer: newPlayer,
		logger:    logger,
	}
}

// Play starts playback of the asset at path for the given passage.
//
// If the same passage is already playing this is a no-op; if it is paused,
// playback resumes where it left off. Playing a different passage releases
// the previous player first. A missing or unloadable file leaves the
// manager idle with a logged warning.
func (m *Manager) Play(passageID uuid.UUID, path string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.activeID == passageID && m.player != nil {
		switch m.state {
		case Playing:
			return
		case Paused:
			if err := m.player.Play(); err != nil {
				m.logger.Warn("failed to resume audio", "passage_id", passageID, "error", err)
				return
			}
			m.state = Playing
			return
		}
	}

	m.loadAndPlayLocked(passageID, path, false)
}

// Pause halts the active asset. No-op unless something is playing.
func (m *Manager) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != Playing {
		return
	}
	m.player.Pause()
	m.state = Paused
}

// Stop releases the active asset and returns the manager to idle.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.releaseLocked()
}

// Restart plays the asset at path for the given passage from position
// zero, regardless of prior state. If the passage is already loaded its
// player is rewound and restarted in place; otherwise the previous player
// is released and the asset loaded fresh, so restarting from idle or while
// another passage is active both work. A missing or unloadable file leaves
// the manager idle with a logged warning.
func (m *Manager) Restart(passageID uuid.UUID, path string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.activeID == passageID && m.player != nil {
		m.player.SeekToStart()
		if err := m.player.Play(); err != nil {
			m.logger.Warn("failed to restart audio", "passage_id", passageID, "error", err)
			return
		}
		m.state = Playing
		return
	}

	m.loadAndPlayLocked(passageID, path, true)
}

// loadAndPlayLocked tears down the active player, loads the asset at path,
// and starts playback, optionally rewinding first. Caller holds mu.
func (m *Manager) loadAndPlayLocked(passageID uuid.UUID, path string, fromStart bool) {
	m.releaseLocked()

	if _, err := os.Stat(path); err != nil {
		m.logger.Warn("audio file unavailable", "passage_id", passageID, "path", path, "error", err)
		return
	}

	player, err := m.newPlayer(path)
	if err != nil {
		m.logger.Warn("failed to load audio", "passage_id", passageID, "path", path, "error", err)
		return
	}
	if fromStart {
		player.SeekToStart()
	}
	if err := player.Play(); err != nil {
		player.Release()
		m.logger.Warn("failed to start audio", "passage_id", passageID, "error", err)
		return
	}

	m.player = player
	m.activeID = passageID
	m.state = Playing
	m.everStarted = true
}

// PlaybackFinished is called by the platform layer when the active asset
// reaches its end. The asset is released and the manager becomes idle.
// Finish notifications for a passage that is no longer active are ignored.
func (m *Manager) PlaybackFinished(passageID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.player == nil || m.activeID != passageID {
		return
	}
	m.releaseLocked()
}

// releaseLocked tears down the active player. Caller holds mu.
func (m *Manager) releaseLocked() {
	if m.player != nil {
		m.player.Release()
		m.player = nil
	}
	m.activeID = uuid.Nil
	m.state = Idle
	m.everStarted = false
}

// State returns the current playback state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// ActiveID returns the passage whose asset is loaded, or uuid.Nil when idle.
func (m *Manager) ActiveID() uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeID
}

// EverStarted reports whether playback of the given passage has started
// since it became the active asset. It is false once the asset is released
// or another passage takes over.
func (m *Manager) EverStarted(passageID uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.everStarted && m.activeID == passageID
}
