package server

import (
	"errors"
	"fmt"
)

// ErrConversationNotFound is returned when a referenced conversation does
// not exist and the request carries no recipient to lazily create one.
var ErrConversationNotFound = errors.New("conversation not found")

// ValidationError indicates missing or malformed input. It is raised
// before any write happens.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

// StorageError wraps a durable-write failure. Request/response flows
// surface it to the caller; push-event flows log it and drop the event.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IntegrityError reports persisted state that violates a data invariant,
// such as a direct conversation without exactly two participants. It is
// reported, never retried.
type IntegrityError struct {
	ConversationId string
	Msg            string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("conversation %q: %s", e.ConversationId, e.Msg)
}
