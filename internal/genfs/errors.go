package genfs

import "errors"

var (
	// ErrNotFound is returned when no file exists at the given path or id.
	ErrNotFound = errors.New("file not found")

	// ErrNoVersion is returned when a file exists but its head does not
	// resolve to a version of that file.
	ErrNoVersion = errors.New("file has no version")

	// ErrLockTimeout is returned when the path lock or the store's write lock
	// could not be acquired in time.
	ErrLockTimeout = errors.New("lock timeout")

	// ErrInvalidContent is returned when a write carries neither or both of
	// text and binary content.
	ErrInvalidContent = errors.New("invalid content")

	// ErrInvalidPath is returned when a path is empty after normalisation.
	ErrInvalidPath = errors.New("invalid path")
)
