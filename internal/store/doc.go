// Package store defines the persistence contracts for the application.
// The only contract is a flat key-value byte store with three logical keys
// (vocabulary, passages, completed reading sessions); collections are
// serialized and rewritten whole on every mutation.
package store
