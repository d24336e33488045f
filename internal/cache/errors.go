package cache

import "errors"

var (
	// ErrInvalidArgument is matched by every argument validation failure in Put.
	ErrInvalidArgument = errors.New("invalid argument")

	ErrInvalidKey   = errors.Join(ErrInvalidArgument, errors.New("key must not be empty"))
	ErrInvalidValue = errors.Join(ErrInvalidArgument, errors.New("value must not be nil"))

	ErrClosed = errors.New("cache is closed")
)
