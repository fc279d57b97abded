// Package generation defines the contracts for the external AI
// collaborators: translation, grammar exercise generation, reading passage
// generation and speech synthesis. The interfaces are a boundary between
// the application core and vendor-specific clients under internal/platform.
package generation
