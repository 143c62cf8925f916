package repositories

import "errors"

// ErrNotFound is returned when a record does not exist. Implementations wrap it
// with the entity and id so callers can match with errors.Is.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert violates a unique constraint. It can
// surface even after an existence pre-check, since the check and the insert are
// not atomic.
var ErrDuplicate = errors.New("duplicate record")
