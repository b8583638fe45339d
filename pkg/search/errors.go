package search

import (
	"errors"
	"fmt"
)

var (
	// ErrCanceled is returned when the caller's context ends the run before
	// the match limit is reached.
	ErrCanceled = errors.New("search canceled")

	// ErrRunning is returned when Run is called on a Coordinator that is
	// already searching.
	ErrRunning = errors.New("search already running")
)

// ConfigError reports invalid input detected before any worker starts.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("invalid %s %v", e.Field, e.Value)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

// GenerationError reports a worker whose keypair source failed. It stops the
// whole run.
type GenerationError struct {
	Worker int
	Err    error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("worker %d: keypair generation failed: %v", e.Worker, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// PersistError reports a match that could not be handed to the persister.
// It stops the whole run.
type PersistError struct {
	Address string
	Err     error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Address, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }
