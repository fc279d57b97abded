// Package session implements the ephemeral iteration state for flashcard
// practice and grammar exercise runs. Sessions are never persisted; they are
// recreated from the vocabulary store or a fresh generation whenever the
// user starts over.
package session
