// Package task runs fire-and-forget background work, currently speech
// synthesis for reading passages. Submissions are tracked by ID so a
// pending or running task can be cancelled when the entity it serves is
// deleted.
package task
