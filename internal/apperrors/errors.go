package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrImmutableState indicates an attempt to mutate an entry outside the
// draft state. Posted and cancelled entries are append-only history.
var ErrImmutableState = errors.New("entry state does not allow this operation")

// ErrCollision indicates that entry number allocation kept colliding after
// the retry budget was exhausted.
var ErrCollision = errors.New("entry number collision")

// ErrConflict indicates the request conflicts with the current state of the
// resource (e.g. reversing an entry that is itself a reversal).
var ErrConflict = errors.New("conflict with current resource state")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")
