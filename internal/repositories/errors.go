package repositories

import "errors"

// ErrNotFound is returned when a record does not exist, or exists but is not
// owned by the requesting user. Callers cannot tell the two apart.
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned when an insert violates a uniqueness constraint,
// such as an already registered email.
var ErrConflict = errors.New("record already exists")
