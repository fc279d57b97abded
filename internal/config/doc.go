// Package config loads and validates application settings. Values come
// from LINGAI_-prefixed environment variables, optionally layered over a
// config.yaml in the working directory, and are unmarshalled into typed
// sections (app, llm, speech, storage) so callers never touch raw keys.
package config
