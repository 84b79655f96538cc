package store

import "errors"

// ErrNotFound is returned when a record doesn't exist
var ErrNotFound = errors.New("record not found")

// ErrDuplicateName is returned when a name is already in use
var ErrDuplicateName = errors.New("name already in use")

// ErrProtectedResource is returned when a reserved record is renamed or deleted
var ErrProtectedResource = errors.New("resource is protected")
