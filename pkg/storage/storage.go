// Package storage defines the persistent cache for guess results.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates no record exists for the requested name.
var ErrNotFound = errors.New("record not found")

// GuessRecord is one cached pipeline result. Properties and Confidence hold
// the flattened aggregate as JSON objects keyed by property name.
type GuessRecord struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Properties string    `json:"properties"`
	Confidence string    `json:"confidence"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Storage caches guess results keyed by the guessed name.
type Storage interface {
	// Init prepares the schema; safe to call more than once.
	Init(ctx context.Context) error
	// PutGuess stores a record, replacing any previous record for the name.
	PutGuess(ctx context.Context, record GuessRecord) (int64, error)
	// GetGuess returns the record for a name or ErrNotFound.
	GetGuess(ctx context.Context, name string) (GuessRecord, error)
	// ListGuesses returns all records, newest first.
	ListGuesses(ctx context.Context) ([]GuessRecord, error)
	// DeleteGuess removes the record for a name; missing records are not an error.
	DeleteGuess(ctx context.Context, name string) error
}
