// Package domain defines the core business entities of the vocabulary
// learning application: word entries, grammar exercises, reading passages
// with comprehension quizzes, and completed reading session records.
package domain
