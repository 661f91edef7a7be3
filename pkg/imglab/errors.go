package imglab

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrInvalidContentType indicates the requested content type is not in
	// the configured allow-list
	ErrInvalidContentType = errors.New("invalid content type")

	// ErrSlotAlreadyUsed indicates the user already holds a submission in
	// some moderation state
	ErrSlotAlreadyUsed = errors.New("upload slot already used")

	// ErrMissingUserID indicates a slot was requested without a user id
	ErrMissingUserID = errors.New("user id is required")

	// ErrInvalidSourceState indicates a transition was requested for a key
	// that does not live under the expected source prefix
	ErrInvalidSourceState = errors.New("key is not under the expected source prefix")

	// ErrInvalidPrefix indicates a misconfigured state prefix
	ErrInvalidPrefix = errors.New("state prefixes must be distinct and end with /")

	// ErrObjectNotFound indicates an object was not found in the blob store
	ErrObjectNotFound = errors.New("object not found")
)

// StorageError represents a failure of an underlying blob store operation.
// The service surfaces these unretried; retry policy belongs to the caller.
type StorageError struct {
	Backend string
	Key     string
	Op      string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed for key %s on backend %s: %v", e.Op, e.Key, e.Backend, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// SlotError represents a failed slot allocation for a user.
type SlotError struct {
	UserID string
	Err    error
}

func (e *SlotError) Error() string {
	return fmt.Sprintf("slot allocation failed for user %s: %v", e.UserID, e.Err)
}

func (e *SlotError) Unwrap() error {
	return e.Err
}

// TransitionError represents a failed moderation state transition.
type TransitionError struct {
	Key string
	Op  string
	Err error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transition %s failed for key %s: %v", e.Op, e.Key, e.Err)
}

func (e *TransitionError) Unwrap() error {
	return e.Err
}
