package session

import (
	"errors"
	"fmt"

	"github.com/abhisek/iqfieldbot/internal/store"
)

var (
	// ErrNotFound is returned when no session exists for an id.
	ErrNotFound = store.ErrNotFound

	// ErrInvalidState is returned when an operation is not allowed in the
	// session's current state.
	ErrInvalidState = errors.New("invalid session state")

	// ErrNoActiveQuestion is returned when an answer is submitted while no
	// question is pending. It matches ErrInvalidState with errors.Is.
	ErrNoActiveQuestion = fmt.Errorf("%w: no active question", ErrInvalidState)

	// ErrInvalidField is returned for a field name outside the enumeration.
	ErrInvalidField = errors.New("invalid field")

	// ErrPersistence wraps store failures. The transition it belongs to is
	// not durable.
	ErrPersistence = errors.New("session persistence failed")
)
